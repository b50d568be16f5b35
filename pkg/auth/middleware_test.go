package auth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	httptestutil "github.com/pantrylab/cookbookd/internal/testutils/http"
	"github.com/pantrylab/cookbookd/pkg/auth"
	kdb "github.com/pantrylab/cookbookd/pkg/db"
	"github.com/pantrylab/cookbookd/pkg/db/mocks"
	kpgerr "github.com/pantrylab/cookbookd/pkg/db/postgres/errors"
	"github.com/pantrylab/cookbookd/pkg/utils/try"
)

func TestBearer(t *testing.T) {
	secret := []byte("test-secret")
	user := kdb.User{
		Id: 42, Email: "cook@example.com", Name: "cook",
		PasswordHash: "fake-hash", IsActive: true,
	}

	t.Run("it lets a valid token through and stashes the account", func(t *testing.T) {
		tokens := auth.NewTokens(secret, 1*time.Hour)
		users := mocks.NewUserInterface()
		users.Impl.Get = func(_ context.Context, id int) (kdb.User, error) {
			if id != 42 {
				t.Errorf("unexpected account id: %d", id)
			}
			return user, nil
		}

		token := try.To(tokens.Issue(user)).OrFatal(t)

		nextCalled := false
		testee := auth.Bearer(tokens, users)(func(c echo.Context) error {
			nextCalled = true
			account, ok := auth.Account(c)
			if !ok {
				t.Error("no account is stashed")
			} else if account != user {
				t.Errorf("(actual, expected) = (%+v, %+v)", account, user)
			}
			return c.NoContent(http.StatusOK)
		})

		e := echo.New()
		ectx, _ := httptestutil.Get(e, "/api/recipe/recipes/", httptestutil.BearerToken(token))

		if err := testee(ectx); err != nil {
			t.Fatal(err)
		}
		if !nextCalled {
			t.Error("the handler is not called")
		}
	})

	type Then struct {
		Code          int
		WithChallenge bool
	}

	theory := func(colophon string, header []httptestutil.RequestOption, users *mocks.UserInterface, then Then) func(*testing.T) {
		return func(t *testing.T) {
			tokens := auth.NewTokens(secret, 1*time.Hour)
			testee := auth.Bearer(tokens, users)(func(c echo.Context) error {
				t.Error("the handler is called")
				return nil
			})

			e := echo.New()
			ectx, resp := httptestutil.Get(e, "/api/recipe/recipes/", header...)

			err := testee(ectx)
			if err == nil {
				t.Fatal("no error is caused: " + colophon)
			}

			echoErr := new(echo.HTTPError)
			if !errors.As(err, &echoErr) {
				t.Fatalf("error is not echo.HTTPError. actual = %#v", err)
			}
			if echoErr.Code != then.Code {
				t.Errorf("unmatch error code:%d, expected:%d", echoErr.Code, then.Code)
			}

			challenge := resp.Header().Get(echo.HeaderWWWAuthenticate)
			if then.WithChallenge && challenge != "Bearer" {
				t.Errorf(`unexpected WWW-Authenticate: %q`, challenge)
			}
			if !then.WithChallenge && challenge != "" {
				t.Errorf(`unexpected WWW-Authenticate: %q`, challenge)
			}
		}
	}

	t.Run("when there is no Authorization header, it responds 401", theory(
		"no header",
		nil,
		mocks.NewUserInterface(),
		Then{Code: http.StatusUnauthorized, WithChallenge: true},
	))

	t.Run("when the scheme is not Bearer, it responds 401", theory(
		"Token scheme",
		[]httptestutil.RequestOption{
			httptestutil.WithHeader("Authorization", "Token abcdef"),
		},
		mocks.NewUserInterface(),
		Then{Code: http.StatusUnauthorized, WithChallenge: true},
	))

	t.Run("when the token does not verify, it responds 401", theory(
		"garbage token",
		[]httptestutil.RequestOption{httptestutil.BearerToken("not.a.token")},
		mocks.NewUserInterface(),
		Then{Code: http.StatusUnauthorized, WithChallenge: true},
	))

	t.Run("when the account is deleted, it responds 401", func(t *testing.T) {
		users := mocks.NewUserInterface()
		users.Impl.Get = func(context.Context, int) (kdb.User, error) {
			return kdb.User{}, kpgerr.Missing{Table: "account", Identity: "id=42"}
		}

		tokens := auth.NewTokens(secret, 1*time.Hour)
		token := try.To(tokens.Issue(user)).OrFatal(t)

		theory(
			"deleted account",
			[]httptestutil.RequestOption{httptestutil.BearerToken(token)},
			users,
			Then{Code: http.StatusUnauthorized, WithChallenge: true},
		)(t)
	})

	t.Run("when the account is deactivated, it responds 401", func(t *testing.T) {
		users := mocks.NewUserInterface()
		users.Impl.Get = func(context.Context, int) (kdb.User, error) {
			deactivated := user
			deactivated.IsActive = false
			return deactivated, nil
		}

		tokens := auth.NewTokens(secret, 1*time.Hour)
		token := try.To(tokens.Issue(user)).OrFatal(t)

		theory(
			"deactivated account",
			[]httptestutil.RequestOption{httptestutil.BearerToken(token)},
			users,
			Then{Code: http.StatusUnauthorized, WithChallenge: true},
		)(t)
	})

	t.Run("when the account lookup fails, it responds 500 without challenge", func(t *testing.T) {
		users := mocks.NewUserInterface()
		users.Impl.Get = func(context.Context, int) (kdb.User, error) {
			return kdb.User{}, errors.New("fake error")
		}

		tokens := auth.NewTokens(secret, 1*time.Hour)
		token := try.To(tokens.Issue(user)).OrFatal(t)

		theory(
			"lookup failure",
			[]httptestutil.RequestOption{httptestutil.BearerToken(token)},
			users,
			Then{Code: http.StatusInternalServerError, WithChallenge: false},
		)(t)
	})
}
