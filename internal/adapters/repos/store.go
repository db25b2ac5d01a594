package repos

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/architeacher/pedalpal/internal/domain/model"
	"github.com/architeacher/pedalpal/internal/domain/query"
	"github.com/architeacher/pedalpal/pkg/circuitbreaker"
	"github.com/architeacher/pedalpal/pkg/logger"
	"github.com/architeacher/pedalpal/pkg/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type (
	// PoolOps is the slice of a connection pool the repositories use.
	// *pgxpool.Pool, *postgres.BoundedPool and pgxmock pools satisfy it.
	PoolOps interface {
		QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
		Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
		Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
		Ping(ctx context.Context) error
	}

	// store runs the statements of one entity table and records how each
	// repository operation went.
	store struct {
		entity   string
		table    string
		columns  []query.Column
		id       query.Column
		pool     PoolOps
		scanner  Scanner
		renderer *Renderer
		breaker  *circuitbreaker.CircuitBreaker[struct{}]
		metrics  metrics.Client
		tracer   trace.Tracer
		logger   logger.Logger
	}
)

func newStore(entity, table string, columns []query.Column, id query.Column, pool PoolOps, s settings) *store {
	return &store{
		entity:   entity,
		table:    table,
		columns:  columns,
		id:       id,
		pool:     pool,
		scanner:  s.scanner,
		renderer: NewRenderer(s.logger),
		breaker:  s.breaker,
		metrics:  s.metrics,
		tracer:   s.tracerProvider.Tracer(tracerName),
		logger:   s.logger.Component(entity + "_repository"),
	}
}

// run executes fn as the repository operation op. The returned error is
// always nil or wraps one of the model sentinels.
func (s *store) run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, s.entity+"Repository."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.collection.name", s.table),
			attribute.String("db.operation.name", op),
		),
	)
	defer span.End()

	err := classifyError(circuitbreaker.Do(s.breaker, func() error {
		return classifyError(fn(ctx))
	}))

	outcome := outcomeOf(err)
	attributes := []attribute.KeyValue{
		attribute.String("entity", s.entity),
		attribute.String("operation", op),
		attribute.String("outcome", outcome),
	}

	s.metrics.Inc(ctx, metrics.StoreOperationsTotal, 1, attributes...)

	log := s.logger.WithContext(ctx)

	switch outcome {
	case outcomeSuccess:
		return nil
	case outcomeNotFound:
		log.Debug().Str("operation", op).Msg("record not found")

		return err
	case outcomeConstraint:
		log.Warn().Err(err).Str("operation", op).Msg("store rejected write")
	default:
		log.Error().Err(err).Str("operation", op).Msg("store operation failed")
	}

	s.metrics.Inc(ctx, metrics.StoreOperationErrors, 1, attributes...)
	span.RecordError(err)
	span.SetStatus(codes.Error, outcome)

	return err
}

func (s *store) selectAll(ctx context.Context, builder sq.Sqlizer, dst any) error {
	statement, args, err := s.build(ctx, builder)
	if err != nil {
		return err
	}

	rows, err := s.pool.Query(ctx, statement, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	return s.scanner.ScanAll(dst, rows)
}

// selectOne scans the single row builder returns, or fails with model.ErrNotFound.
func (s *store) selectOne(ctx context.Context, builder sq.Sqlizer, dst any) error {
	statement, args, err := s.build(ctx, builder)
	if err != nil {
		return err
	}

	rows, err := s.pool.Query(ctx, statement, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	if err := s.scanner.ScanOne(dst, rows); err != nil {
		if s.scanner.IsNotFound(err) {
			return model.ErrNotFound
		}

		return err
	}

	return nil
}

// exec runs a statement that returns no rows and reports the affected row count.
func (s *store) exec(ctx context.Context, builder sq.Sqlizer) (int64, error) {
	statement, args, err := s.build(ctx, builder)
	if err != nil {
		return 0, err
	}

	tag, err := s.pool.Exec(ctx, statement, args...)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (s *store) build(ctx context.Context, builder sq.Sqlizer) (string, []any, error) {
	statement, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("building statement: %w", err)
	}

	log := s.logger.WithContext(ctx)
	log.Debug().
		Str("sql", statement).
		Int("args", len(args)).
		Msg("executing statement")

	return statement, args, nil
}

// scan is an unjoined, unfiltered read of the entity table.
func (s *store) scan() query.Scan {
	return query.Scan{Table: s.table, Columns: s.columns}
}

func (s *store) findByID(id string) sq.SelectBuilder {
	scan := s.scan()
	scan.Where = query.Comparison{Column: s.id, Operator: model.OpEqual, Value: id}

	return s.renderer.Select(scan).Limit(1)
}

func (s *store) findAll() sq.SelectBuilder {
	return s.renderer.Select(s.scan())
}

// findFiltered renders a compiled scan. Joins and subqueries can repeat rows,
// so the result is always DISTINCT.
func (s *store) findFiltered(scan query.Scan) sq.SelectBuilder {
	return s.renderer.Select(scan.Unique())
}

func (s *store) deleteByID(id string) sq.DeleteBuilder {
	return psql.Delete(s.table).Where(sq.Eq{s.id.Name: id})
}

// returning lists the entity columns for INSERT and UPDATE ... RETURNING.
func (s *store) returning() string {
	names := make([]string, 0, len(s.columns))
	for _, column := range s.columns {
		names = append(names, column.Name)
	}

	return "RETURNING " + strings.Join(names, ", ")
}
