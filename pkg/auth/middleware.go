package auth

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	binderr "github.com/pantrylab/cookbookd/pkg/api/bind/errors"
	kdb "github.com/pantrylab/cookbookd/pkg/db"
)

// key under which Bearer stashes the account in echo.Context.
const contextKeyAccount = "cookbookd/account"

// Account reads the authenticated account stashed by Bearer.
func Account(c echo.Context) (kdb.User, bool) {
	user, ok := c.Get(contextKeyAccount).(kdb.User)
	return user, ok
}

// StashAccount stores user where Account finds it, as Bearer does
// after verifying a token.
func StashAccount(c echo.Context, user kdb.User) {
	c.Set(contextKeyAccount, user)
}

// Bearer guards routes with bearer tokens.
//
// The token from "Authorization: Bearer ..." is verified, its account
// is resolved and stashed in the context for Account. Anything short
// of that, a deactivated or deleted account included, is answered 401
// with a WWW-Authenticate challenge.
func Bearer(tokens *Tokens, users kdb.UserInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			challenge := func(message string, err error) error {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
				return binderr.Unauthorized(message, err)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return challenge("bearer token is required", nil)
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				return challenge("invalid token", err)
			}
			accountId, err := claims.AccountId()
			if err != nil {
				return challenge("invalid token", err)
			}

			user, err := users.Get(c.Request().Context(), accountId)
			if errors.Is(err, kdb.ErrMissing) {
				return challenge("invalid token", err)
			} else if err != nil {
				return binderr.InternalServerError(err)
			}
			if !user.IsActive {
				return challenge("account is deactivated", nil)
			}

			StashAccount(c, user)
			return next(c)
		}
	}
}
