package poco

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/microsoft/go-mssqldb"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/maxshaw/poco/config"
	"github.com/maxshaw/poco/qb"
)

// DB executes model statements. Each call takes its own connection from the
// underlying handle and returns it before the call completes.
type DB struct {
	db       *sqlx.DB
	registry *Registry
	logger   zerolog.Logger
}

// Option configures a DB.
type Option func(*DB)

// WithRegistry makes the DB resolve model metadata from r instead of the
// default registry.
func WithRegistry(r *Registry) Option {
	return func(d *DB) { d.registry = r }
}

// New wraps an open handle. It works on a copy of db that maps rows onto
// struct fields by Go field name and ignores columns with no matching field;
// db itself is left as is.
func New(db *sqlx.DB, logger zerolog.Logger, opts ...Option) *DB {
	x := sqlx.NewDb(db.DB, db.DriverName()).Unsafe()
	x.Mapper = fieldMapper

	d := &DB{db: x, registry: defaultRegistry, logger: logger}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open connects to the database selected by cfg.Driver.
func Open(ctx context.Context, cfg config.Database, logger zerolog.Logger, opts ...Option) (*DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Str("driver", cfg.Driver).
		Msg("Database opened")

	return New(db, logger, opts...), nil
}

// Close closes the underlying handle.
func (d *DB) Close() error {
	return d.db.Close()
}

// DB returns the underlying handle.
func (d *DB) DB() *sqlx.DB {
	return d.db
}

// Query runs query, or the model's Select statement when query is empty,
// filtered on filter, and maps every row onto a T.
func Query[T any](ctx context.Context, d *DB, query string, param any, filter ...string) ([]T, error) {
	meta, err := d.registry.Meta(typeOf[T]())
	if err != nil {
		return nil, err
	}

	if query == "" {
		query = meta.Select
	}
	query = qb.Filter(query, filter...)

	args, err := bind(query, param)
	if err != nil {
		return nil, err
	}

	conn, err := d.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	defer d.release(conn)

	d.trace(query, args)

	var items []T
	if err := conn.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}

	return items, nil
}

// Execute runs query filtered on filter and returns the number of affected
// rows.
func Execute[T any](ctx context.Context, d *DB, query string, param any, filter ...string) (int64, error) {
	if _, err := d.registry.Meta(typeOf[T]()); err != nil {
		return 0, err
	}

	query = qb.Filter(query, filter...)

	args, err := bind(query, param)
	if err != nil {
		return 0, err
	}

	conn, err := d.db.Connx(ctx)
	if err != nil {
		return 0, err
	}
	defer d.release(conn)

	d.trace(query, args)

	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func (d *DB) release(conn *sqlx.Conn) {
	if err := conn.Close(); err != nil {
		d.logger.Warn().Err(err).Msg("failed to release connection")
	}
}

func (d *DB) trace(query string, args []any) {
	d.logger.Debug().
		Str("sql", query).
		Int("args", len(args)).
		Msg("[SQL]")
}
