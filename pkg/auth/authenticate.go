package auth

import (
	"context"
	"errors"

	kdb "github.com/pantrylab/cookbookd/pkg/db"
)

// ErrAuthentication means the credentials do not name an active
// account. On purpose it does not say which part was wrong.
var ErrAuthentication = errors.New("authentication failed")

// Authenticate looks up the account of email and checks password
// against its digest.
//
// The email is matched as stored. Deactivated accounts fail
// authentication like wrong passwords do.
//
// # Returns
//
// - kdb.User: the authenticated account.
//
// - error: ErrAuthentication for unknown email, wrong password or a
// deactivated account. Other errors mean the lookup itself failed.
func Authenticate(ctx context.Context, users kdb.UserInterface, email string, password string) (kdb.User, error) {
	user, err := users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, kdb.ErrMissing) {
			// burn about as much time as a real comparison, so that
			// unknown addresses do not answer faster.
			HashPassword(password)
			return kdb.User{}, ErrAuthentication
		}
		return kdb.User{}, err
	}

	if !VerifyPassword(user.PasswordHash, password) {
		return kdb.User{}, ErrAuthentication
	}
	if !user.IsActive {
		return kdb.User{}, ErrAuthentication
	}

	return user, nil
}
