package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	kdb "github.com/pantrylab/cookbookd/pkg/db"
	kpgingr "github.com/pantrylab/cookbookd/pkg/db/postgres/ingredients"
	kpool "github.com/pantrylab/cookbookd/pkg/db/postgres/pool"
	kpgrcp "github.com/pantrylab/cookbookd/pkg/db/postgres/recipes"
	kpgschema "github.com/pantrylab/cookbookd/pkg/db/postgres/schema"
	kpgtags "github.com/pantrylab/cookbookd/pkg/db/postgres/tags"
	kpguser "github.com/pantrylab/cookbookd/pkg/db/postgres/users"
	xe "github.com/pantrylab/cookbookd/pkg/errors"
)

type cookbookDBPostgres struct {
	pool        *pgxpool.Pool
	users       kdb.UserInterface
	recipes     kdb.RecipeInterface
	tags        kdb.TagInterface
	ingredients kdb.IngredientInterface
	schema      kdb.SchemaInterface
}

type Config struct {
	SchemaRepository string
}

func DefaultConfig() Config {
	return Config{}
}

type Option func(*Config) *Config

// WithSchemaRepository lets the database know where its schema
// definitions are, so that Schema() can upgrade and watch them.
// Without this option, Schema() is a null implementation.
func WithSchemaRepository(repository string) Option {
	return func(c *Config) *Config {
		c.SchemaRepository = repository
		return c
	}
}

func New(
	ctx context.Context,
	url string,
	options ...Option,
) (kdb.CookbookDatabase, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	c := DefaultConfig()
	for _, option := range options {
		c = *option(&c)
	}

	p := kpool.Wrap(pool)
	var schema kdb.SchemaInterface = kpgschema.Null()
	if c.SchemaRepository != "" {
		schema = kpgschema.New(p, c.SchemaRepository)
	}

	return &cookbookDBPostgres{
		pool:        pool,
		users:       kpguser.New(p),
		recipes:     kpgrcp.New(p),
		tags:        kpgtags.New(p),
		ingredients: kpgingr.New(p),
		schema:      schema,
	}, nil
}

func (k *cookbookDBPostgres) Users() kdb.UserInterface {
	return k.users
}

func (k *cookbookDBPostgres) Recipes() kdb.RecipeInterface {
	return k.recipes
}

func (k *cookbookDBPostgres) Tags() kdb.TagInterface {
	return k.tags
}

func (k *cookbookDBPostgres) Ingredients() kdb.IngredientInterface {
	return k.ingredients
}

func (k *cookbookDBPostgres) Schema() kdb.SchemaInterface {
	return k.schema
}

func (k *cookbookDBPostgres) Close() error {
	k.pool.Close()
	return nil
}
