package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	kdb "github.com/pantrylab/cookbookd/pkg/db"
	kpgerr "github.com/pantrylab/cookbookd/pkg/db/postgres/errors"
	kpool "github.com/pantrylab/cookbookd/pkg/db/postgres/pool"
)

type userPG struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) *userPG {
	return &userPG{pool: pool}
}

var _ kdb.UserInterface = &userPG{}

const userColumns = `"id", "email", "name", "password_hash", "is_active", "is_staff", "is_superuser"`

func scanUser(row pgx.Row) (kdb.User, error) {
	var user kdb.User
	err := row.Scan(
		&user.Id, &user.Email, &user.Name, &user.PasswordHash,
		&user.IsActive, &user.IsStaff, &user.IsSuperuser,
	)
	return user, err
}

func (u *userPG) Register(ctx context.Context, param kdb.UserParam) (kdb.User, error) {
	return u.register(ctx, param, false)
}

func (u *userPG) RegisterSuperuser(ctx context.Context, param kdb.UserParam) (kdb.User, error) {
	return u.register(ctx, param, true)
}

func (u *userPG) register(ctx context.Context, param kdb.UserParam, superuser bool) (kdb.User, error) {
	email, err := kdb.NormalizeEmail(param.Email)
	if err != nil {
		return kdb.User{}, err
	}

	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return kdb.User{}, err
	}
	defer conn.Release()

	user, err := scanUser(conn.QueryRow(
		ctx,
		`
		insert into "account" ("email", "name", "password_hash", "is_staff", "is_superuser")
		values ($1, $2, $3, $4, $4)
		returning `+userColumns,
		email, param.Name, param.PasswordHash, superuser,
	))
	if err != nil {
		return kdb.User{}, kpgerr.AsConflict(err, fmt.Sprintf("email=%s", email))
	}

	return user, nil
}

func (u *userPG) Get(ctx context.Context, id int) (kdb.User, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return kdb.User{}, err
	}
	defer conn.Release()

	user, err := scanUser(conn.QueryRow(
		ctx,
		`select `+userColumns+` from "account" where "id" = $1`,
		id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return kdb.User{}, kpgerr.Missing{
			Table: "account", Identity: fmt.Sprintf("id=%d", id),
		}
	}
	if err != nil {
		return kdb.User{}, err
	}

	return user, nil
}

func (u *userPG) GetByEmail(ctx context.Context, email string) (kdb.User, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return kdb.User{}, err
	}
	defer conn.Release()

	user, err := scanUser(conn.QueryRow(
		ctx,
		`select `+userColumns+` from "account" where "email" = $1`,
		email,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return kdb.User{}, kpgerr.Missing{
			Table: "account", Identity: fmt.Sprintf("email=%s", email),
		}
	}
	if err != nil {
		return kdb.User{}, err
	}

	return user, nil
}

func (u *userPG) Update(ctx context.Context, id int, delta kdb.UserUpdate) (kdb.User, error) {
	if delta.Email != nil {
		email, err := kdb.NormalizeEmail(*delta.Email)
		if err != nil {
			return kdb.User{}, err
		}
		delta.Email = &email
	}

	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return kdb.User{}, err
	}
	defer conn.Release()

	// nil deltas turn into NULL, and coalesce keeps the stored value.
	user, err := scanUser(conn.QueryRow(
		ctx,
		`
		update "account"
		set
			"email" = coalesce($2, "email"),
			"name" = coalesce($3, "name"),
			"password_hash" = coalesce($4, "password_hash")
		where "id" = $1
		returning `+userColumns,
		id, delta.Email, delta.Name, delta.PasswordHash,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return kdb.User{}, kpgerr.Missing{
			Table: "account", Identity: fmt.Sprintf("id=%d", id),
		}
	}
	if err != nil {
		identity := ""
		if delta.Email != nil {
			identity = fmt.Sprintf("email=%s", *delta.Email)
		}
		return kdb.User{}, kpgerr.AsConflict(err, identity)
	}

	return user, nil
}
