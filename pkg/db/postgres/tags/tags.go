package tags

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	kdb "github.com/pantrylab/cookbookd/pkg/db"
	kpgerr "github.com/pantrylab/cookbookd/pkg/db/postgres/errors"
	kpool "github.com/pantrylab/cookbookd/pkg/db/postgres/pool"
)

type tagPG struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) *tagPG {
	return &tagPG{pool: pool}
}

var _ kdb.TagInterface = &tagPG{}

func (t *tagPG) Find(ctx context.Context, accountId int, query kdb.TagFindQuery) ([]kdb.Tag, error) {
	conn, err := t.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	sql := `select "id", "name" from "tag" where "account_id" = $1`
	if query.AssignedOnly {
		sql += ` and exists (
			select 1 from "recipe_tag" where "recipe_tag"."tag_id" = "tag"."id"
		)`
	}
	sql += ` order by "name" desc`

	rows, err := conn.Query(ctx, sql, accountId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []kdb.Tag{}
	for rows.Next() {
		var tag kdb.Tag
		if err := rows.Scan(&tag.Id, &tag.Name); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}

func (t *tagPG) Get(ctx context.Context, accountId int, tagId int) (kdb.Tag, error) {
	conn, err := t.pool.Acquire(ctx)
	if err != nil {
		return kdb.Tag{}, err
	}
	defer conn.Release()

	var tag kdb.Tag
	err = conn.QueryRow(
		ctx,
		`select "id", "name" from "tag" where "account_id" = $1 and "id" = $2`,
		accountId, tagId,
	).Scan(&tag.Id, &tag.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return kdb.Tag{}, kpgerr.Missing{
			Table: "tag", Identity: fmt.Sprintf("id=%d", tagId),
		}
	}
	if err != nil {
		return kdb.Tag{}, err
	}

	return tag, nil
}

func (t *tagPG) GetOrCreate(ctx context.Context, accountId int, name string) (kdb.Tag, error) {
	conn, err := t.pool.Acquire(ctx)
	if err != nil {
		return kdb.Tag{}, err
	}
	defer conn.Release()

	return getOrCreate(ctx, conn, accountId, name)
}

// getOrCreate inserts the name unless the account has it already,
// and yields the row either way.
func getOrCreate(ctx context.Context, conn kpool.Queryer, accountId int, name string) (kdb.Tag, error) {
	var tag kdb.Tag
	err := conn.QueryRow(
		ctx,
		`
		with "tag_insert" as (
			insert into "tag" ("account_id", "name") values ($1, $2)
			on conflict do nothing
			returning "id", "name"
		)
		select "id", "name" from "tag_insert"
		union
		select "id", "name" from "tag"
			where "account_id" = $1 and "name" = $2
		limit 1
		`,
		accountId, name,
	).Scan(&tag.Id, &tag.Name)
	if err != nil {
		return kdb.Tag{}, err
	}

	return tag, nil
}

func (t *tagPG) Rename(ctx context.Context, accountId int, tagId int, name string) (kdb.Tag, error) {
	conn, err := t.pool.Acquire(ctx)
	if err != nil {
		return kdb.Tag{}, err
	}
	defer conn.Release()

	var tag kdb.Tag
	err = conn.QueryRow(
		ctx,
		`
		update "tag" set "name" = $3
		where "account_id" = $1 and "id" = $2
		returning "id", "name"
		`,
		accountId, tagId, name,
	).Scan(&tag.Id, &tag.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return kdb.Tag{}, kpgerr.Missing{
			Table: "tag", Identity: fmt.Sprintf("id=%d", tagId),
		}
	}
	if err != nil {
		return kdb.Tag{}, kpgerr.AsConflict(err, fmt.Sprintf("name=%s", name))
	}

	return tag, nil
}

func (t *tagPG) Delete(ctx context.Context, accountId int, tagId int) error {
	conn, err := t.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	ctag, err := conn.Exec(
		ctx,
		`delete from "tag" where "account_id" = $1 and "id" = $2`,
		accountId, tagId,
	)
	if err != nil {
		return err
	}
	if ctag.RowsAffected() < 1 {
		return kpgerr.Missing{
			Table: "tag", Identity: fmt.Sprintf("id=%d", tagId),
		}
	}

	return nil
}
