package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/juho05/crossview"
	"github.com/juho05/crossview/repos"
	"github.com/juho05/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/nullism/bqb"
	migrate "github.com/rubenv/sql-migrate"
)

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

func (d Dialect) Valid() bool {
	return d == DialectPostgres || d == DialectSQLite
}

func (d Dialect) driverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite3"
}

// build renders q with the placeholder style of the dialect.
func (d Dialect) build(q *bqb.Query) (string, []any, error) {
	if d == DialectPostgres {
		return q.ToPgsql()
	}
	return q.ToSql()
}

type DB struct {
	db      *sqlx.DB
	tx      *sqlx.Tx
	dialect Dialect
}

type Options struct {
	Dialect     Dialect
	DSN         string
	AutoMigrate bool
}

func NewDB(opts Options) (*DB, error) {
	if !opts.Dialect.Valid() {
		return nil, repos.NewError(fmt.Sprintf("open db: unsupported dialect %q", opts.Dialect), repos.ErrInvalidParams, nil)
	}
	db, err := sqlx.Open(opts.Dialect.driverName(), opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("open db: %s: %w", opts.Dialect, err)
	}
	if opts.Dialect == DialectSQLite {
		// every connection to an in-memory database sees its own database
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}
	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("open db: %s: %w", opts.Dialect, err)
	}

	if opts.AutoMigrate {
		err = autoMigrate(db.DB, opts.Dialect)
		if err != nil {
			return nil, fmt.Errorf("open db: %s: %w", opts.Dialect, err)
		}
	}

	return &DB{
		db:      db,
		dialect: opts.Dialect,
	}, nil
}

func migrationSource() migrate.MigrationSource {
	return &migrate.HttpFileSystemMigrationSource{
		FileSystem: http.FS(crossview.MigrationsFS),
	}
}

func autoMigrate(db *sql.DB, dialect Dialect) error {
	log.Trace("Migrating database...")
	n, err := migrate.Exec(db, string(dialect), migrationSource(), migrate.Up)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Tracef("Applied %d migrations!", n)
	return nil
}

// Migrate applies all pending migrations and returns their count.
func (d *DB) Migrate() (int, error) {
	if d.db == nil {
		return 0, repos.NewError("migrate", repos.ErrNestedTransaction, nil)
	}
	n, err := migrate.Exec(d.db.DB, string(d.dialect), migrationSource(), migrate.Up)
	if err != nil {
		return 0, fmt.Errorf("migrate: %w", err)
	}
	return n, nil
}

func (d *DB) Dialect() Dialect {
	return d.dialect
}

func (d *DB) conn() conn {
	if d.tx != nil {
		return conn{exec: d.tx, dialect: d.dialect}
	}
	return conn{exec: d.db, dialect: d.dialect}
}

func (d *DB) Track() repos.TrackRepository {
	return trackRepository{
		db: d.conn(),
	}
}

func (d *DB) Album() repos.AlbumRepository {
	return albumRepository{
		db: d.conn(),
	}
}

func (d *DB) Artist() repos.ArtistRepository {
	return artistRepository{
		db: d.conn(),
	}
}

func (d *DB) TrackIndex() repos.IndexRepository[*repos.Track] {
	return newIndexRepository(d, trackSchema)
}

func (d *DB) AlbumIndex() repos.IndexRepository[*repos.Album] {
	return newIndexRepository(d, albumSchema)
}

func (d *DB) ArtistIndex() repos.IndexRepository[*repos.Artist] {
	return newIndexRepository(d, artistSchema)
}

func (d *DB) Random() repos.RandomRepository {
	return randomRepository{
		db: d.conn(),
	}
}

func (d *DB) MaxModelID(ctx context.Context) (int64, error) {
	return getQuery[int64](ctx, d.conn(), bqb.New("SELECT COALESCE(MAX(model_id), 0) FROM cache_entries"))
}

func (d *DB) Transaction(ctx context.Context, fn func(tx repos.Tx) error) error {
	if d.db == nil {
		return repos.NewError("create transaction", repos.ErrNestedTransaction, nil)
	}
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapErr("begin transaction", err)
	}
	defer rollback(tx)
	err = fn(&DB{
		tx:      tx,
		dialect: d.dialect,
	})
	if err != nil {
		return err
	}
	return wrapErr("commit transaction", tx.Commit())
}

// newTransactionFn returns a function that runs fn inside a transaction.
// If db already is a transaction, fn joins it.
func newTransactionFn[R any](db *DB, newRepo func(tx conn) R) func(ctx context.Context, fn func(R) error) error {
	return func(ctx context.Context, fn func(R) error) error {
		if db.tx != nil {
			return fn(newRepo(conn{exec: db.tx, dialect: db.dialect}))
		}
		tx, err := db.db.BeginTxx(ctx, nil)
		if err != nil {
			return wrapErr("", fmt.Errorf("begin transaction: %w", err))
		}
		defer rollback(tx)
		err = fn(newRepo(conn{exec: tx, dialect: db.dialect}))
		if err != nil {
			return wrapErr("", err)
		}
		err = tx.Commit()
		if err != nil {
			return wrapErr("", fmt.Errorf("commit transaction: %w", err))
		}
		return nil
	}
}

func rollback(tx *sqlx.Tx) {
	err := tx.Rollback()
	if err != nil {
		if errors.Is(err, sql.ErrTxDone) {
			return
		}
		log.Errorf("rollback transaction: %s", err)
	}
}

func (d *DB) NewTransaction(ctx context.Context) (repos.Transaction, error) {
	if d.db == nil {
		return nil, repos.NewError("create transaction", repos.ErrNestedTransaction, nil)
	}
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, wrapErr("begin transaction", err)
	}
	return &DB{
		tx:      tx,
		dialect: d.dialect,
	}, nil
}

func (d *DB) Commit() error {
	if d.tx != nil {
		return d.tx.Commit()
	}
	return nil
}

func (d *DB) Rollback() error {
	if d.tx != nil {
		err := d.tx.Rollback()
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			return err
		}
	}
	return nil
}

func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

func nowMS() int64 {
	return time.Now().UnixMilli()
}
