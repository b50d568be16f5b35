package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pantrylab/cookbookd/pkg/auth"
	kdb "github.com/pantrylab/cookbookd/pkg/db"
	"github.com/pantrylab/cookbookd/pkg/db/mocks"
	kpgerr "github.com/pantrylab/cookbookd/pkg/db/postgres/errors"
	"github.com/pantrylab/cookbookd/pkg/utils/try"
)

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	activeUser := func(t *testing.T, password string) kdb.User {
		t.Helper()
		return kdb.User{
			Id: 42, Email: "cook@example.com", Name: "cook",
			PasswordHash: try.To(auth.HashPassword(password)).OrFatal(t),
			IsActive:     true,
		}
	}

	t.Run("it passes for the right password", func(t *testing.T) {
		expected := activeUser(t, "op3n sesame")
		users := mocks.NewUserInterface()
		users.Impl.GetByEmail = func(_ context.Context, email string) (kdb.User, error) {
			if email != "cook@example.com" {
				t.Errorf("unexpected email: %s", email)
			}
			return expected, nil
		}

		actual := try.To(auth.Authenticate(
			ctx, users, "cook@example.com", "op3n sesame",
		)).OrFatal(t)

		if actual != expected {
			t.Errorf("(actual, expected) = (%+v, %+v)", actual, expected)
		}
	})

	t.Run("when the password is wrong, it causes ErrAuthentication", func(t *testing.T) {
		users := mocks.NewUserInterface()
		users.Impl.GetByEmail = func(context.Context, string) (kdb.User, error) {
			return activeUser(t, "op3n sesame"), nil
		}

		_, err := auth.Authenticate(ctx, users, "cook@example.com", "wrong")
		if !errors.Is(err, auth.ErrAuthentication) {
			t.Error("(actual, expected) = ", err, auth.ErrAuthentication)
		}
	})

	t.Run("when the email is unknown, it causes ErrAuthentication", func(t *testing.T) {
		users := mocks.NewUserInterface()
		users.Impl.GetByEmail = func(context.Context, string) (kdb.User, error) {
			return kdb.User{}, kpgerr.Missing{Table: "account", Identity: "email"}
		}

		_, err := auth.Authenticate(ctx, users, "nobody@example.com", "op3n sesame")
		if !errors.Is(err, auth.ErrAuthentication) {
			t.Error("(actual, expected) = ", err, auth.ErrAuthentication)
		}
	})

	t.Run("when the account is deactivated, it causes ErrAuthentication", func(t *testing.T) {
		users := mocks.NewUserInterface()
		users.Impl.GetByEmail = func(context.Context, string) (kdb.User, error) {
			deactivated := activeUser(t, "op3n sesame")
			deactivated.IsActive = false
			return deactivated, nil
		}

		_, err := auth.Authenticate(ctx, users, "cook@example.com", "op3n sesame")
		if !errors.Is(err, auth.ErrAuthentication) {
			t.Error("(actual, expected) = ", err, auth.ErrAuthentication)
		}
	})

	t.Run("when the lookup fails otherwise, the error passes through", func(t *testing.T) {
		expectedErr := errors.New("fake error")
		users := mocks.NewUserInterface()
		users.Impl.GetByEmail = func(context.Context, string) (kdb.User, error) {
			return kdb.User{}, expectedErr
		}

		_, err := auth.Authenticate(ctx, users, "cook@example.com", "op3n sesame")
		if !errors.Is(err, expectedErr) {
			t.Error("(actual, expected) = ", err, expectedErr)
		}
		if errors.Is(err, auth.ErrAuthentication) {
			t.Error("a lookup failure is taken for bad credentials")
		}
	})
}
