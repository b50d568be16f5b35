package db

import (
	"context"
	"fmt"
	"strings"
)

// User is an account of cookbookd.
//
// Recipes, tags and ingredients always belong to exactly one User.
type User struct {
	Id    int
	Email string
	Name  string

	// bcrypt digest of the password. Never the password itself.
	PasswordHash string

	// deactivated accounts cannot authenticate, but their rows stay.
	IsActive bool

	IsStaff     bool
	IsSuperuser bool
}

// UserParam is the attribute set to register a new User.
type UserParam struct {
	Email        string
	Name         string
	PasswordHash string
}

// UserUpdate carries changes for an existing User.
//
// nil fields are left as is.
type UserUpdate struct {
	Email        *string
	Name         *string
	PasswordHash *string
}

// NormalizeEmail canonicalizes the domain part of an email address
// to lower case. The local part is kept as the user typed it.
//
// # Returns
//
// - string: normalized address
//
// - error: ErrInvalidUser when the address is empty.
func NormalizeEmail(email string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("%w: email address is required", ErrInvalidUser)
	}

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email, nil
	}

	return email[:at+1] + strings.ToLower(email[at+1:]), nil
}

type UserInterface interface {
	// Register creates a new account.
	//
	// The email address is normalized with NormalizeEmail before
	// storing.
	//
	// args:
	//     - ctx: context
	//     - UserParam: attributes of the new account
	//
	// returns:
	//     - User: the account as stored
	//     - error: ErrInvalidUser when the email is empty,
	//       ErrConflict when the email is already taken.
	Register(context.Context, UserParam) (User, error)

	// RegisterSuperuser creates a new account with staff and
	// superuser rights.
	//
	// Otherwise same as Register.
	RegisterSuperuser(context.Context, UserParam) (User, error)

	// Get retrieves an account by id.
	//
	// returns:
	//     - User
	//     - error: ErrMissing when no such account exists.
	Get(ctx context.Context, id int) (User, error)

	// GetByEmail retrieves an account by its (normalized) email.
	//
	// returns:
	//     - User
	//     - error: ErrMissing when no such account exists.
	GetByEmail(ctx context.Context, email string) (User, error)

	// Update modifies the account identified by id.
	//
	// args:
	//     - ctx: context
	//     - id: account to be changed
	//     - UserUpdate: changes. nil fields are left as is.
	//
	// returns:
	//     - User: the account after the change
	//     - error: ErrMissing when no such account exists,
	//       ErrConflict when the new email is already taken.
	Update(ctx context.Context, id int, delta UserUpdate) (User, error)
}
