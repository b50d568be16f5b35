package ingredients

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	kdb "github.com/pantrylab/cookbookd/pkg/db"
	kpgerr "github.com/pantrylab/cookbookd/pkg/db/postgres/errors"
	kpool "github.com/pantrylab/cookbookd/pkg/db/postgres/pool"
)

type ingredientPG struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) *ingredientPG {
	return &ingredientPG{pool: pool}
}

var _ kdb.IngredientInterface = &ingredientPG{}

func (i *ingredientPG) Find(ctx context.Context, accountId int, query kdb.IngredientFindQuery) ([]kdb.Ingredient, error) {
	conn, err := i.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	sql := `select "id", "name" from "ingredient" where "account_id" = $1`
	if query.AssignedOnly {
		sql += ` and exists (
			select 1 from "recipe_ingredient"
			where "recipe_ingredient"."ingredient_id" = "ingredient"."id"
		)`
	}
	sql += ` order by "name" desc`

	rows, err := conn.Query(ctx, sql, accountId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ingredients := []kdb.Ingredient{}
	for rows.Next() {
		var ing kdb.Ingredient
		if err := rows.Scan(&ing.Id, &ing.Name); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ingredients, nil
}

func (i *ingredientPG) Get(ctx context.Context, accountId int, ingredientId int) (kdb.Ingredient, error) {
	conn, err := i.pool.Acquire(ctx)
	if err != nil {
		return kdb.Ingredient{}, err
	}
	defer conn.Release()

	var ing kdb.Ingredient
	err = conn.QueryRow(
		ctx,
		`select "id", "name" from "ingredient" where "account_id" = $1 and "id" = $2`,
		accountId, ingredientId,
	).Scan(&ing.Id, &ing.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return kdb.Ingredient{}, kpgerr.Missing{
			Table: "ingredient", Identity: fmt.Sprintf("id=%d", ingredientId),
		}
	}
	if err != nil {
		return kdb.Ingredient{}, err
	}

	return ing, nil
}

func (i *ingredientPG) GetOrCreate(ctx context.Context, accountId int, name string) (kdb.Ingredient, error) {
	conn, err := i.pool.Acquire(ctx)
	if err != nil {
		return kdb.Ingredient{}, err
	}
	defer conn.Release()

	var ing kdb.Ingredient
	err = conn.QueryRow(
		ctx,
		`
		with "ingredient_insert" as (
			insert into "ingredient" ("account_id", "name") values ($1, $2)
			on conflict do nothing
			returning "id", "name"
		)
		select "id", "name" from "ingredient_insert"
		union
		select "id", "name" from "ingredient"
			where "account_id" = $1 and "name" = $2
		limit 1
		`,
		accountId, name,
	).Scan(&ing.Id, &ing.Name)
	if err != nil {
		return kdb.Ingredient{}, err
	}

	return ing, nil
}

func (i *ingredientPG) Rename(ctx context.Context, accountId int, ingredientId int, name string) (kdb.Ingredient, error) {
	conn, err := i.pool.Acquire(ctx)
	if err != nil {
		return kdb.Ingredient{}, err
	}
	defer conn.Release()

	var ing kdb.Ingredient
	err = conn.QueryRow(
		ctx,
		`
		update "ingredient" set "name" = $3
		where "account_id" = $1 and "id" = $2
		returning "id", "name"
		`,
		accountId, ingredientId, name,
	).Scan(&ing.Id, &ing.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return kdb.Ingredient{}, kpgerr.Missing{
			Table: "ingredient", Identity: fmt.Sprintf("id=%d", ingredientId),
		}
	}
	if err != nil {
		return kdb.Ingredient{}, kpgerr.AsConflict(err, fmt.Sprintf("name=%s", name))
	}

	return ing, nil
}

func (i *ingredientPG) Delete(ctx context.Context, accountId int, ingredientId int) error {
	conn, err := i.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	ctag, err := conn.Exec(
		ctx,
		`delete from "ingredient" where "account_id" = $1 and "id" = $2`,
		accountId, ingredientId,
	)
	if err != nil {
		return err
	}
	if ctag.RowsAffected() < 1 {
		return kpgerr.Missing{
			Table: "ingredient", Identity: fmt.Sprintf("id=%d", ingredientId),
		}
	}

	return nil
}
