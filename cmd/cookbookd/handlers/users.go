package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	binderr "github.com/pantrylab/cookbookd/pkg/api/bind/errors"
	bindusers "github.com/pantrylab/cookbookd/pkg/api/bind/users"
	apiusers "github.com/pantrylab/cookbookd/pkg/api/types/users"
	"github.com/pantrylab/cookbookd/pkg/auth"
	kdb "github.com/pantrylab/cookbookd/pkg/db"
)

func CreateUserHandler(dbuser kdb.UserInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		ctx := req.Context()
		if strings.ToLower(req.Header.Get("content-type")) != "application/json" {
			return binderr.BadRequest(
				"unexpected content type. it shoule be application/json", nil,
			)
		}

		registration := new(apiusers.Registration)
		if err := json.NewDecoder(req.Body).Decode(registration); err != nil {
			return binderr.BadRequest(
				"can not understand the requested json", err,
			)
		}

		if registration.Name == "" {
			return binderr.BadRequest(`"name" is required`, nil)
		}
		if len(registration.Password) < apiusers.PasswordMinLength {
			return binderr.BadRequest(
				fmt.Sprintf(
					`"password" must be %d characters at least`,
					apiusers.PasswordMinLength,
				),
				nil,
			)
		}

		hash, err := auth.HashPassword(registration.Password)
		if err != nil {
			return binderr.InternalServerError(err)
		}

		user, err := dbuser.Register(ctx, kdb.UserParam{
			Email:        registration.Email,
			Name:         registration.Name,
			PasswordHash: hash,
		})
		if err != nil {
			if errors.Is(err, kdb.ErrInvalidUser) {
				return binderr.BadRequest(err.Error(), err)
			}
			if errors.Is(err, kdb.ErrConflict) {
				return binderr.BadRequest(
					"an account with this email address already exists", err,
				)
			}
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusCreated, bindusers.ComposeProfile(user))
	}
}

func CreateTokenHandler(dbuser kdb.UserInterface, tokens *auth.Tokens) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		credential := new(apiusers.TokenRequest)
		if err := c.Bind(credential); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if credential.Email == "" || credential.Password == "" {
			return binderr.BadRequest(`"email" and "password" are required`, nil)
		}

		user, err := auth.Authenticate(ctx, dbuser, credential.Email, credential.Password)
		if err != nil {
			if errors.Is(err, auth.ErrAuthentication) {
				// kept 400, not 401: failing here is a validation
				// problem of the credential body, and there is no
				// token to challenge for yet.
				return binderr.BadRequest(
					"unable to authenticate with provided credentials", err,
				)
			}
			return binderr.InternalServerError(err)
		}

		token, err := tokens.Issue(user)
		if err != nil {
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apiusers.TokenResponse{Token: token})
	}
}

func GetMeHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := auth.Account(c)
		if !ok {
			return binderr.InternalServerError(errors.New("no account in request context"))
		}

		return c.JSON(http.StatusOK, bindusers.ComposeProfile(user))
	}
}

// UpdateMeHandler modifies the authenticated account.
//
// With requireAll (PUT), email, password and name all have to be sent.
// Without (PATCH), fields not sent are left as is.
func UpdateMeHandler(dbuser kdb.UserInterface, requireAll bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		user, ok := auth.Account(c)
		if !ok {
			return binderr.InternalServerError(errors.New("no account in request context"))
		}

		change := new(apiusers.Update)
		if err := c.Bind(change); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}

		if requireAll {
			if change.Email == nil {
				return binderr.BadRequest(`"email" is required`, nil)
			}
			if change.Password == nil {
				return binderr.BadRequest(`"password" is required`, nil)
			}
			if change.Name == nil {
				return binderr.BadRequest(`"name" is required`, nil)
			}
		}
		if change.Name != nil && *change.Name == "" {
			return binderr.BadRequest(`"name" may not be blank`, nil)
		}

		delta := kdb.UserUpdate{Email: change.Email, Name: change.Name}
		if change.Password != nil {
			if len(*change.Password) < apiusers.PasswordMinLength {
				return binderr.BadRequest(
					fmt.Sprintf(
						`"password" must be %d characters at least`,
						apiusers.PasswordMinLength,
					),
					nil,
				)
			}
			hash, err := auth.HashPassword(*change.Password)
			if err != nil {
				return binderr.InternalServerError(err)
			}
			delta.PasswordHash = &hash
		}

		updated, err := dbuser.Update(ctx, user.Id, delta)
		if err != nil {
			if errors.Is(err, kdb.ErrInvalidUser) {
				return binderr.BadRequest(err.Error(), err)
			}
			if errors.Is(err, kdb.ErrConflict) {
				return binderr.BadRequest(
					"an account with this email address already exists", err,
				)
			}
			if errors.Is(err, kdb.ErrMissing) {
				return binderr.NotFound()
			}
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, bindusers.ComposeProfile(updated))
	}
}
