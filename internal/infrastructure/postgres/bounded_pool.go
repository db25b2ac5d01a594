package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/architeacher/pedalpal/internal/config"
	"github.com/architeacher/pedalpal/internal/domain/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BoundedPool lends one pooled connection to each call and applies the
// configured policy when every connection is taken.
type BoundedPool struct {
	pool           *pgxpool.Pool
	policy         string
	acquireTimeout time.Duration
}

func NewBoundedPool(pool *pgxpool.Pool, cfg config.Database) *BoundedPool {
	return &BoundedPool{
		pool:           pool,
		policy:         cfg.AcquirePolicy,
		acquireTimeout: cfg.AcquireTimeout,
	}
}

func (p *BoundedPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	conn, err := p.acquire(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		conn.Release()

		return nil, err
	}

	return &releasingRows{Rows: rows, conn: conn}, nil
}

func (p *BoundedPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	conn, err := p.acquire(ctx)
	if err != nil {
		return errRow{err: err}
	}

	return &releasingRow{row: conn.QueryRow(ctx, sql, args...), conn: conn}
}

func (p *BoundedPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	conn, err := p.acquire(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	defer conn.Release()

	return conn.Exec(ctx, sql, args...)
}

func (p *BoundedPool) Ping(ctx context.Context) error {
	conn, err := p.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return conn.Ping(ctx)
}

func (p *BoundedPool) Stat() *pgxpool.Stat {
	return p.pool.Stat()
}

func (p *BoundedPool) Close() {
	p.pool.Close()
}

func (p *BoundedPool) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	if p.policy == config.AcquirePolicyFail {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, p.acquireTimeout)
		defer cancel()
	}

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: acquiring connection: %w", model.ErrConnectionUnavailable, err)
	}

	return conn, nil
}

// releasingRows hands the connection back once the rows are closed.
type releasingRows struct {
	pgx.Rows

	conn *pgxpool.Conn
	once sync.Once
}

func (r *releasingRows) Close() {
	r.Rows.Close()
	r.once.Do(r.conn.Release)
}

type releasingRow struct {
	row  pgx.Row
	conn *pgxpool.Conn
}

func (r *releasingRow) Scan(dest ...any) error {
	defer r.conn.Release()

	return r.row.Scan(dest...)
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}
