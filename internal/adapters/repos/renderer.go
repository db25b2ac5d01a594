package repos

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/architeacher/pedalpal/internal/domain/model"
	"github.com/architeacher/pedalpal/internal/domain/query"
	"github.com/architeacher/pedalpal/pkg/logger"
)

// psql numbers placeholders. Only outermost statements may use it: a nested
// statement numbered on its own would restart at $1 inside the outer one.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// matchNone stands in for anything the renderer cannot express. It must never widen a filter.
var matchNone = sq.Expr("1=0")

// Renderer turns compiled scans into PostgreSQL statements.
type Renderer struct {
	logger logger.Logger
}

func NewRenderer(log logger.Logger) *Renderer {
	return &Renderer{logger: log}
}

// Select builds the SELECT for scan, including its join, filter and DISTINCT flag.
func (r *Renderer) Select(scan query.Scan) sq.SelectBuilder {
	return r.selectWith(psql, scan)
}

// subquery renders scan with "?" placeholders so the enclosing statement numbers them.
func (r *Renderer) subquery(scan query.Scan) sq.SelectBuilder {
	return r.selectWith(sq.StatementBuilder, scan)
}

func (r *Renderer) selectWith(statements sq.StatementBuilderType, scan query.Scan) sq.SelectBuilder {
	builder := statements.Select(columnNames(scan.Columns)...).From(scan.Table)

	if scan.Join != nil {
		builder = builder.LeftJoin(fmt.Sprintf("%s ON %s = %s", scan.Join.Table, scan.Join.Left, scan.Join.Right))
	}

	if scan.Distinct {
		builder = builder.Distinct()
	}

	if scan.Filtered() {
		builder = builder.Where(r.Where(scan.Where))
	}

	return builder
}

func (r *Renderer) Where(expr query.Expr) sq.Sqlizer {
	switch e := expr.(type) {
	case query.Comparison:
		return r.comparison(e)

	case query.Junction:
		if e.Logic == query.Or {
			conditions := make(sq.Or, 0, len(e.Exprs))
			for _, child := range e.Exprs {
				conditions = append(conditions, r.Where(child))
			}

			return conditions
		}

		conditions := make(sq.And, 0, len(e.Exprs))
		for _, child := range e.Exprs {
			conditions = append(conditions, r.Where(child))
		}

		return conditions

	case query.Membership:
		return sq.Expr(e.Column.String()+" IN (?)", r.subquery(e.Subquery))
	}

	r.logger.Warn().
		Str("expression", fmt.Sprintf("%T", expr)).
		Msg("unsupported filter expression, matching no rows")

	return matchNone
}

func (r *Renderer) comparison(c query.Comparison) sq.Sqlizer {
	col := c.Column.String()

	switch c.Operator {
	case model.OpEqual, model.OpIn, model.OpIsNull:
		return sq.Eq{col: c.Value}
	case model.OpNotEqual, model.OpIsNotNull:
		return sq.NotEq{col: c.Value}
	case model.OpLike:
		return sq.Like{col: c.Value}
	case model.OpGreater:
		return sq.Gt{col: c.Value}
	case model.OpLess:
		return sq.Lt{col: c.Value}
	case model.OpTrue:
		return sq.Eq{col: true}
	case model.OpFalse:
		return sq.Eq{col: false}
	}

	r.logger.Warn().
		Str("column", col).
		Str("operator", string(c.Operator)).
		Msg("unknown predicate operator, matching no rows")

	return matchNone
}

func columnNames(columns []query.Column) []string {
	names := make([]string, 0, len(columns))
	for _, column := range columns {
		names = append(names, column.String())
	}

	return names
}
