package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	binderr "github.com/pantrylab/cookbookd/pkg/api/bind/errors"
	bindingr "github.com/pantrylab/cookbookd/pkg/api/bind/ingredients"
	apiingr "github.com/pantrylab/cookbookd/pkg/api/types/ingredients"
	"github.com/pantrylab/cookbookd/pkg/auth"
	kdb "github.com/pantrylab/cookbookd/pkg/db"
	"github.com/pantrylab/cookbookd/pkg/utils"
)

func FindIngredientHandler(dbingr kdb.IngredientInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := auth.Account(c)
		if !ok {
			return binderr.InternalServerError(errors.New("no account in request context"))
		}

		assignedOnly, err := queryParamToAssignedOnly(c.QueryParam("assigned_only"))
		if err != nil {
			return binderr.BadRequest(`"assigned_only" should be 0 or 1`, err)
		}

		ingredients, err := dbingr.Find(
			ctx, user.Id, kdb.IngredientFindQuery{AssignedOnly: assignedOnly},
		)
		if err != nil {
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, utils.Map(ingredients, bindingr.Compose))
	}
}

func CreateIngredientHandler(dbingr kdb.IngredientInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := auth.Account(c)
		if !ok {
			return binderr.InternalServerError(errors.New("no account in request context"))
		}

		spec := new(apiingr.Spec)
		if err := json.NewDecoder(c.Request().Body).Decode(spec); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if spec.Name == "" {
			return binderr.BadRequest(`"name" is required`, nil)
		}

		ingredient, err := dbingr.GetOrCreate(ctx, user.Id, spec.Name)
		if err != nil {
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusCreated, bindingr.Compose(ingredient))
	}
}

func UpdateIngredientHandler(dbingr kdb.IngredientInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := auth.Account(c)
		if !ok {
			return binderr.InternalServerError(errors.New("no account in request context"))
		}

		ingredientId, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return binderr.NotFound()
		}

		spec := new(apiingr.Spec)
		if err := json.NewDecoder(c.Request().Body).Decode(spec); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if spec.Name == "" {
			return binderr.BadRequest(`"name" is required`, nil)
		}

		ingredient, err := dbingr.Rename(ctx, user.Id, ingredientId, spec.Name)
		if err != nil {
			if errors.Is(err, kdb.ErrMissing) {
				return binderr.NotFound()
			}
			if errors.Is(err, kdb.ErrConflict) {
				return binderr.Conflict(
					"an ingredient with this name already exists", binderr.WithError(err),
				)
			}
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, bindingr.Compose(ingredient))
	}
}

func DeleteIngredientHandler(dbingr kdb.IngredientInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := auth.Account(c)
		if !ok {
			return binderr.InternalServerError(errors.New("no account in request context"))
		}

		ingredientId, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return binderr.NotFound()
		}

		if err := dbingr.Delete(ctx, user.Id, ingredientId); err != nil {
			if errors.Is(err, kdb.ErrMissing) {
				return binderr.NotFound()
			}
			return binderr.InternalServerError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}
