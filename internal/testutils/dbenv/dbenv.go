// helpers for tests which talk to a real postgres.
//
// Tests using this package are guarded with `-tags integration` and
// read the database location from TEST_DATABASE_URL. When the
// variable is not set, they skip.
package dbenv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
	kpool "github.com/pantrylab/cookbookd/pkg/db/postgres/pool"
	"github.com/pantrylab/cookbookd/pkg/db/postgres/schema"
)

const EnvDatabaseURL = "TEST_DATABASE_URL"

// PoolBroaker is a interface to get a pool.
type PoolBroaker interface {
	// GetPool returns a pool.
	//
	// Tables are cleaned up before returning and after t.
	GetPool(ctx context.Context, t *testing.T) kpool.Pool
}

type pg struct {
	pool *pgxpool.Pool
}

func (p *pg) GetPool(ctx context.Context, t *testing.T) kpool.Pool {
	t.Cleanup(func() {
		t.Helper()
		ClearTables(ctx, p.pool, t)
	})

	ClearTables(ctx, p.pool, t)
	return kpool.Wrap(p.pool)
}

// NewPoolBroaker connects to the database TEST_DATABASE_URL points at
// and brings its schema up to date.
//
// The test is skipped when TEST_DATABASE_URL is not set.
func NewPoolBroaker(ctx context.Context, t *testing.T) PoolBroaker {
	t.Helper()

	pool := connect(ctx, t)

	sch := schema.New(kpool.Wrap(pool), SchemaRepository(t))
	if err := sch.Upgrade(ctx); err != nil {
		t.Fatal(err)
	}

	return &pg{pool: pool}
}

type blank struct {
	pool   *pgxpool.Pool
	tables []string
}

func (b *blank) GetPool(ctx context.Context, t *testing.T) kpool.Pool {
	t.Cleanup(func() {
		t.Helper()
		DropTables(ctx, b.pool, t, b.tables...)
	})

	DropTables(ctx, b.pool, t, b.tables...)
	return kpool.Wrap(b.pool)
}

// NewBlankPoolBroaker connects like NewPoolBroaker, but applies no
// schema: its pools come with no tables at all, extraTables and the
// cookbook tables dropped. For tests managing the schema themselves.
func NewBlankPoolBroaker(ctx context.Context, t *testing.T, extraTables ...string) PoolBroaker {
	t.Helper()

	return &blank{
		pool:   connect(ctx, t),
		tables: append(extraTables, cookbookTables...),
	}
}

func connect(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv(EnvDatabaseURL)
	if url == "" {
		t.Skipf("%s is not set; skipping tests against postgres", EnvDatabaseURL)
	}

	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(pool.Close)

	return pool
}

// SchemaRepository locates db/schema upwards from the working
// directory of the test.
func SchemaRepository(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	for {
		candidate := filepath.Join(dir, "db", "schema")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("db/schema is not found in any parent directory")
		}
		dir = parent
	}
}

func ClearTables(ctx context.Context, p *pgxpool.Pool, t *testing.T) {
	t.Helper()

	conn, err := p.Acquire(ctx)
	if err != nil {
		t.Fatalf("fail to clean-up tables.: %v", err)
	}
	defer conn.Release()

	// by cascade, recipes, tags, ingredients and assignments go too.
	if _, err := conn.Exec(
		ctx, `truncate "account" RESTART IDENTITY cascade`,
	); err != nil {
		t.Errorf("fail to clean-up tables.: %v", err)
	}
}

var cookbookTables = []string{
	"recipe_ingredient", "recipe_tag", "ingredient", "tag",
	"recipe", "account", "schema_version",
}

func DropTables(ctx context.Context, p *pgxpool.Pool, t *testing.T, tables ...string) {
	t.Helper()

	conn, err := p.Acquire(ctx)
	if err != nil {
		t.Fatalf("fail to drop tables.: %v", err)
	}
	defer conn.Release()

	for _, table := range tables {
		if _, err := conn.Exec(
			ctx, `drop table if exists "`+table+`" cascade`,
		); err != nil {
			t.Errorf("fail to drop tables.: %v", err)
		}
	}
}
