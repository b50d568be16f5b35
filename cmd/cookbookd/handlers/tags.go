package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	binderr "github.com/pantrylab/cookbookd/pkg/api/bind/errors"
	bindtags "github.com/pantrylab/cookbookd/pkg/api/bind/tags"
	apitags "github.com/pantrylab/cookbookd/pkg/api/types/tags"
	"github.com/pantrylab/cookbookd/pkg/auth"
	kdb "github.com/pantrylab/cookbookd/pkg/db"
	"github.com/pantrylab/cookbookd/pkg/utils"
)

var (
	// query parameter errors
	errIncorrectQueryAssignedOnly = errors.New("incorrect query param assigned_only")
	errIncorrectQueryIds          = errors.New("incorrect query param id list")
)

// reads ?assigned_only=... . Absent means false, any other number
// than 0 means true.
func queryParamToAssignedOnly(queryParam string) (bool, error) {
	if queryParam == "" {
		return false, nil
	}
	flag, err := strconv.Atoi(queryParam)
	if err != nil {
		return false, errIncorrectQueryAssignedOnly
	}
	return flag != 0, nil
}

func FindTagHandler(dbtag kdb.TagInterface) echo.HandlerFunc {
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

		tags, err := dbtag.Find(ctx, user.Id, kdb.TagFindQuery{AssignedOnly: assignedOnly})
		if err != nil {
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, utils.Map(tags, bindtags.Compose))
	}
}

func CreateTagHandler(dbtag kdb.TagInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := auth.Account(c)
		if !ok {
			return binderr.InternalServerError(errors.New("no account in request context"))
		}

		spec := new(apitags.Spec)
		if err := json.NewDecoder(c.Request().Body).Decode(spec); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if spec.Name == "" {
			return binderr.BadRequest(`"name" is required`, nil)
		}

		tag, err := dbtag.GetOrCreate(ctx, user.Id, spec.Name)
		if err != nil {
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusCreated, bindtags.Compose(tag))
	}
}

func UpdateTagHandler(dbtag kdb.TagInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := auth.Account(c)
		if !ok {
			return binderr.InternalServerError(errors.New("no account in request context"))
		}

		tagId, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return binderr.NotFound()
		}

		spec := new(apitags.Spec)
		if err := json.NewDecoder(c.Request().Body).Decode(spec); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if spec.Name == "" {
			return binderr.BadRequest(`"name" is required`, nil)
		}

		tag, err := dbtag.Rename(ctx, user.Id, tagId, spec.Name)
		if err != nil {
			if errors.Is(err, kdb.ErrMissing) {
				return binderr.NotFound()
			}
			if errors.Is(err, kdb.ErrConflict) {
				return binderr.Conflict(
					"a tag with this name already exists", binderr.WithError(err),
				)
			}
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, bindtags.Compose(tag))
	}
}

func DeleteTagHandler(dbtag kdb.TagInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := auth.Account(c)
		if !ok {
			return binderr.InternalServerError(errors.New("no account in request context"))
		}

		tagId, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return binderr.NotFound()
		}

		if err := dbtag.Delete(ctx, user.Id, tagId); err != nil {
			if errors.Is(err, kdb.ErrMissing) {
				return binderr.NotFound()
			}
			return binderr.InternalServerError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}
