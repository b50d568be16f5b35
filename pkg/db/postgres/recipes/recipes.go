package recipes

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	kdb "github.com/pantrylab/cookbookd/pkg/db"
	kpgerr "github.com/pantrylab/cookbookd/pkg/db/postgres/errors"
	"github.com/pantrylab/cookbookd/pkg/db/postgres/marshal"
	kpool "github.com/pantrylab/cookbookd/pkg/db/postgres/pool"
)

type recipePG struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) *recipePG {
	return &recipePG{pool: pool}
}

var _ kdb.RecipeInterface = &recipePG{}

func (r *recipePG) Find(ctx context.Context, accountId int, query kdb.RecipeFindQuery) ([]kdb.Recipe, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	recipeIds, err := find(ctx, conn, accountId, query)
	if err != nil {
		return nil, err
	}

	bodies, err := get(ctx, conn, accountId, recipeIds)
	if err != nil {
		return nil, err
	}

	recipes := make([]kdb.Recipe, 0, len(recipeIds))
	for _, recipeId := range recipeIds {
		if rcp, ok := bodies[recipeId]; ok {
			recipes = append(recipes, rcp)
		}
	}

	return recipes, nil
}

func find(ctx context.Context, conn kpool.Queryer, accountId int, query kdb.RecipeFindQuery) ([]int, error) {
	sql := `select "id" from "recipe" where "account_id" = $1`
	args := []interface{}{accountId}

	if 0 < len(query.TagIds) {
		args = append(args, query.TagIds)
		sql += fmt.Sprintf(
			` and exists (
				select 1 from "recipe_tag"
				where "recipe_tag"."recipe_id" = "recipe"."id"
					and "recipe_tag"."tag_id" = any($%d::int[])
			)`,
			len(args),
		)
	}
	if 0 < len(query.IngredientIds) {
		args = append(args, query.IngredientIds)
		sql += fmt.Sprintf(
			` and exists (
				select 1 from "recipe_ingredient"
				where "recipe_ingredient"."recipe_id" = "recipe"."id"
					and "recipe_ingredient"."ingredient_id" = any($%d::int[])
			)`,
			len(args),
		)
	}
	sql += ` order by "id" desc`

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipeIds := []int{}
	for rows.Next() {
		var recipeId int
		if err := rows.Scan(&recipeId); err != nil {
			return nil, err
		}
		recipeIds = append(recipeIds, recipeId)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return recipeIds, nil
}

// get retrieves the recipes with their tags and ingredients.
//
// returns:
//
// - map[int]kdb.Recipe: found recipes, keyed with recipe id.
// Ids the account does not own are left out silently.
func get(ctx context.Context, conn kpool.Queryer, accountId int, recipeIds []int) (map[int]kdb.Recipe, error) {
	if len(recipeIds) == 0 {
		return map[int]kdb.Recipe{}, nil
	}

	recipes := map[int]kdb.Recipe{}
	{
		rows, err := conn.Query(
			ctx,
			`
			select
				"id", "title", "description", "time_minutes",
				"price", "link", "image_path"
			from "recipe"
			where "account_id" = $1 and "id" = any($2::int[])
			`,
			accountId, recipeIds,
		)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		for rows.Next() {
			var rcp kdb.Recipe
			var price pgtype.Numeric
			if err := rows.Scan(
				&rcp.Id, &rcp.Title, &rcp.Description, &rcp.TimeMinutes,
				&price, &rcp.Link, &rcp.ImagePath,
			); err != nil {
				return nil, err
			}

			cents, err := marshal.CentsFromNumeric(price)
			if err != nil {
				return nil, err
			}
			rcp.Price = cents
			rcp.Tags = []kdb.Tag{}
			rcp.Ingredients = []kdb.Ingredient{}
			recipes[rcp.Id] = rcp
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}

	{
		rows, err := conn.Query(
			ctx,
			`
			select "recipe_tag"."recipe_id", "tag"."id", "tag"."name"
			from "tag"
			inner join "recipe_tag" on "tag"."id" = "recipe_tag"."tag_id"
			where "recipe_tag"."recipe_id" = any($1::int[])
			order by "tag"."id"
			`,
			recipeIds,
		)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		for rows.Next() {
			var recipeId int
			var tag kdb.Tag
			if err := rows.Scan(&recipeId, &tag.Id, &tag.Name); err != nil {
				return nil, err
			}
			rcp, ok := recipes[recipeId]
			if !ok {
				continue
			}
			rcp.Tags = append(rcp.Tags, tag)
			recipes[recipeId] = rcp
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}

	{
		rows, err := conn.Query(
			ctx,
			`
			select "recipe_ingredient"."recipe_id", "ingredient"."id", "ingredient"."name"
			from "ingredient"
			inner join "recipe_ingredient" on "ingredient"."id" = "recipe_ingredient"."ingredient_id"
			where "recipe_ingredient"."recipe_id" = any($1::int[])
			order by "ingredient"."id"
			`,
			recipeIds,
		)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		for rows.Next() {
			var recipeId int
			var ing kdb.Ingredient
			if err := rows.Scan(&recipeId, &ing.Id, &ing.Name); err != nil {
				return nil, err
			}
			rcp, ok := recipes[recipeId]
			if !ok {
				continue
			}
			rcp.Ingredients = append(rcp.Ingredients, ing)
			recipes[recipeId] = rcp
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}

	return recipes, nil
}

func getOne(ctx context.Context, conn kpool.Queryer, accountId int, recipeId int) (kdb.Recipe, error) {
	found, err := get(ctx, conn, accountId, []int{recipeId})
	if err != nil {
		return kdb.Recipe{}, err
	}

	rcp, ok := found[recipeId]
	if !ok {
		return kdb.Recipe{}, kpgerr.Missing{
			Table: "recipe", Identity: fmt.Sprintf("id=%d", recipeId),
		}
	}
	return rcp, nil
}

func (r *recipePG) Get(ctx context.Context, accountId int, recipeId int) (kdb.Recipe, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return kdb.Recipe{}, err
	}
	defer conn.Release()

	return getOne(ctx, conn, accountId, recipeId)
}

func (r *recipePG) Create(ctx context.Context, accountId int, spec kdb.RecipeSpec) (kdb.Recipe, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return kdb.Recipe{}, err
	}
	defer tx.Rollback(ctx)

	var recipeId int
	if err := tx.QueryRow(
		ctx,
		`
		insert into "recipe" ("account_id", "title", "description", "time_minutes", "price", "link")
		values ($1, $2, $3, $4, $5, $6)
		returning "id"
		`,
		accountId, spec.Title, spec.Description, spec.TimeMinutes,
		marshal.NumericFromCents(spec.Price), spec.Link,
	).Scan(&recipeId); err != nil {
		return kdb.Recipe{}, err
	}

	if err := assignTags(ctx, tx, accountId, recipeId, spec.Tags); err != nil {
		return kdb.Recipe{}, err
	}
	if err := assignIngredients(ctx, tx, accountId, recipeId, spec.Ingredients); err != nil {
		return kdb.Recipe{}, err
	}

	created, err := getOne(ctx, tx, accountId, recipeId)
	if err != nil {
		return kdb.Recipe{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return kdb.Recipe{}, err
	}

	return created, nil
}

func (r *recipePG) Update(ctx context.Context, accountId int, recipeId int, delta kdb.RecipeDelta) (kdb.Recipe, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return kdb.Recipe{}, err
	}
	defer tx.Rollback(ctx)

	if err := lockRecipe(ctx, tx, accountId, recipeId); err != nil {
		return kdb.Recipe{}, err
	}

	price := marshal.NullNumeric()
	if delta.Price != nil {
		price = marshal.NumericFromCents(*delta.Price)
	}

	// nil deltas turn into NULL, and coalesce keeps the stored value.
	if _, err := tx.Exec(
		ctx,
		`
		update "recipe"
		set
			"title" = coalesce($3, "title"),
			"description" = coalesce($4, "description"),
			"time_minutes" = coalesce($5, "time_minutes"),
			"price" = coalesce($6, "price"),
			"link" = coalesce($7, "link")
		where "account_id" = $1 and "id" = $2
		`,
		accountId, recipeId,
		delta.Title, delta.Description, delta.TimeMinutes, price, delta.Link,
	); err != nil {
		return kdb.Recipe{}, err
	}

	if delta.Tags != nil {
		if _, err := tx.Exec(
			ctx, `delete from "recipe_tag" where "recipe_id" = $1`, recipeId,
		); err != nil {
			return kdb.Recipe{}, err
		}
		if err := assignTags(ctx, tx, accountId, recipeId, *delta.Tags); err != nil {
			return kdb.Recipe{}, err
		}
	}

	if delta.Ingredients != nil {
		if _, err := tx.Exec(
			ctx, `delete from "recipe_ingredient" where "recipe_id" = $1`, recipeId,
		); err != nil {
			return kdb.Recipe{}, err
		}
		if err := assignIngredients(ctx, tx, accountId, recipeId, *delta.Ingredients); err != nil {
			return kdb.Recipe{}, err
		}
	}

	updated, err := getOne(ctx, tx, accountId, recipeId)
	if err != nil {
		return kdb.Recipe{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return kdb.Recipe{}, err
	}

	return updated, nil
}

func (r *recipePG) Delete(ctx context.Context, accountId int, recipeId int) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	ctag, err := conn.Exec(
		ctx,
		`delete from "recipe" where "account_id" = $1 and "id" = $2`,
		accountId, recipeId,
	)
	if err != nil {
		return err
	}
	if ctag.RowsAffected() < 1 {
		return kpgerr.Missing{
			Table: "recipe", Identity: fmt.Sprintf("id=%d", recipeId),
		}
	}

	return nil
}

func (r *recipePG) SetImage(ctx context.Context, accountId int, recipeId int, imagePath string) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	var prev string
	err = tx.QueryRow(
		ctx,
		`select "image_path" from "recipe" where "account_id" = $1 and "id" = $2 for update`,
		accountId, recipeId,
	).Scan(&prev)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", kpgerr.Missing{
			Table: "recipe", Identity: fmt.Sprintf("id=%d", recipeId),
		}
	}
	if err != nil {
		return "", err
	}

	if _, err := tx.Exec(
		ctx,
		`update "recipe" set "image_path" = $3 where "account_id" = $1 and "id" = $2`,
		accountId, recipeId, imagePath,
	); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}

	return prev, nil
}

// lockRecipe takes a row lock on the recipe for the rest of the
// transaction.
func lockRecipe(ctx context.Context, conn kpool.Queryer, accountId int, recipeId int) error {
	rows, err := conn.Query(
		ctx,
		`select "id" from "recipe" where "account_id" = $1 and "id" = $2 for update`,
		accountId, recipeId,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	locked := false
	for rows.Next() {
		locked = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if !locked {
		return kpgerr.Missing{
			Table: "recipe", Identity: fmt.Sprintf("id=%d", recipeId),
		}
	}
	return nil
}

// assignTags links the named tags to the recipe. Names the account
// does not have yet come into being here.
func assignTags(ctx context.Context, conn kpool.Queryer, accountId int, recipeId int, names []string) error {
	for _, name := range names {
		_, err := conn.Exec(
			ctx,
			`
			with "tag_insert" as (
				insert into "tag" ("account_id", "name") values ($1, $2)
				on conflict do nothing
				returning "id"
			),
			"tag_in" as (
				select "id" as "tag_id" from "tag_insert"
				union
				select "id" as "tag_id" from "tag"
					where "account_id" = $1 and "name" = $2
				limit 1
			)
			insert into "recipe_tag" ("recipe_id", "tag_id")
			select $3 as "recipe_id", "tag_id" from "tag_in"
			on conflict do nothing
			`,
			accountId, name, recipeId,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if !errors.As(err, &pgErr) {
				return err
			} else if pgErr.Code != pgerrcode.ForeignKeyViolation {
				return err
			}

			return kpgerr.Missing{
				Table: pgErr.TableName,
				Identity: fmt.Sprintf(
					"recipe_id=%d (constraint: %s)", recipeId, pgErr.ConstraintName,
				),
			}
		}
	}

	return nil
}

// assignIngredients links the named ingredients to the recipe. Names
// the account does not have yet come into being here.
func assignIngredients(ctx context.Context, conn kpool.Queryer, accountId int, recipeId int, names []string) error {
	for _, name := range names {
		_, err := conn.Exec(
			ctx,
			`
			with "ingredient_insert" as (
				insert into "ingredient" ("account_id", "name") values ($1, $2)
				on conflict do nothing
				returning "id"
			),
			"ingredient_in" as (
				select "id" as "ingredient_id" from "ingredient_insert"
				union
				select "id" as "ingredient_id" from "ingredient"
					where "account_id" = $1 and "name" = $2
				limit 1
			)
			insert into "recipe_ingredient" ("recipe_id", "ingredient_id")
			select $3 as "recipe_id", "ingredient_id" from "ingredient_in"
			on conflict do nothing
			`,
			accountId, name, recipeId,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if !errors.As(err, &pgErr) {
				return err
			} else if pgErr.Code != pgerrcode.ForeignKeyViolation {
				return err
			}

			return kpgerr.Missing{
				Table: pgErr.TableName,
				Identity: fmt.Sprintf(
					"recipe_id=%d (constraint: %s)", recipeId, pgErr.ConstraintName,
				),
			}
		}
	}

	return nil
}
