package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	binderr "github.com/pantrylab/cookbookd/pkg/api/bind/errors"
	bindrecipes "github.com/pantrylab/cookbookd/pkg/api/bind/recipes"
	apirecipes "github.com/pantrylab/cookbookd/pkg/api/types/recipes"
	"github.com/pantrylab/cookbookd/pkg/auth"
	kdb "github.com/pantrylab/cookbookd/pkg/db"
	kio "github.com/pantrylab/cookbookd/pkg/io"
	"github.com/pantrylab/cookbookd/pkg/utils"
)

// converts a comma separated query parameter to ids.
//
// "1,2,3" ---> [1, 2, 3]
//
// When queryParam is empty, it assumes no id is specified and
// returns an empty list.
func queryParamToIds(queryParam string) ([]int, error) {
	if queryParam == "" {
		return nil, nil
	}

	parts := strings.Split(queryParam, ",")
	ids := make([]int, len(parts))
	for nth, p := range parts {
		id, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf(
				`%w: "%s" is not an id`, errIncorrectQueryIds, p,
			)
		}
		ids[nth] = id
	}

	return ids, nil
}

func FindRecipeHandler(dbrecipe kdb.RecipeInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := auth.Account(c)
		if !ok {
			return binderr.InternalServerError(errors.New("no account in request context"))
		}

		query := kdb.RecipeFindQuery{}
		{
			tagIds, err := queryParamToIds(c.QueryParam("tags"))
			if err != nil {
				return binderr.BadRequest(`"tags" should be a comma separated id list`, err)
			}
			query.TagIds = tagIds

			ingredientIds, err := queryParamToIds(c.QueryParam("ingredients"))
			if err != nil {
				return binderr.BadRequest(`"ingredients" should be a comma separated id list`, err)
			}
			query.IngredientIds = ingredientIds
		}

		recipes, err := dbrecipe.Find(ctx, user.Id, query)
		if err != nil {
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, utils.Map(recipes, bindrecipes.ComposeSummary))
	}
}

func GetRecipeHandler(dbrecipe kdb.RecipeInterface, mediaURL string, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := auth.Account(c)
		if !ok {
			return binderr.InternalServerError(errors.New("no account in request context"))
		}

		recipeId, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return binderr.NotFound()
		}

		recipe, err := dbrecipe.Get(ctx, user.Id, recipeId)
		if err != nil {
			if errors.Is(err, kdb.ErrMissing) {
				return binderr.NotFound()
			}
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, bindrecipes.ComposeDetail(mediaURL, recipe))
	}
}

func CreateRecipeHandler(dbrecipe kdb.RecipeInterface, mediaURL string) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		ctx := req.Context()
		user, ok := auth.Account(c)
		if !ok {
			return binderr.InternalServerError(errors.New("no account in request context"))
		}

		if strings.ToLower(req.Header.Get("content-type")) != "application/json" {
			return binderr.BadRequest(
				"unexpected content type. it shoule be application/json", nil,
			)
		}

		specInReq := new(apirecipes.Spec)
		if err := json.NewDecoder(req.Body).Decode(specInReq); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}

		spec, err := bindrecipes.AsCreate(*specInReq)
		if err != nil {
			return binderr.BadRequest(err.Error(), err)
		}

		recipe, err := dbrecipe.Create(ctx, user.Id, spec)
		if err != nil {
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusCreated, bindrecipes.ComposeDetail(mediaURL, recipe))
	}
}

// UpdateRecipeHandler modifies the recipe addressed by paramKey.
//
// With requireAll (PUT), title, time_minutes and price all have to be
// sent. Without (PATCH), fields not sent are left as is. Either way a
// sent tags or ingredients array replaces the whole assignment.
func UpdateRecipeHandler(
	dbrecipe kdb.RecipeInterface, mediaURL string, paramKey string, requireAll bool,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := auth.Account(c)
		if !ok {
			return binderr.InternalServerError(errors.New("no account in request context"))
		}

		recipeId, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return binderr.NotFound()
		}

		specInReq := new(apirecipes.Spec)
		if err := json.NewDecoder(c.Request().Body).Decode(specInReq); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}

		if requireAll {
			if _, err := bindrecipes.AsCreate(*specInReq); err != nil {
				return binderr.BadRequest(err.Error(), err)
			}
		}
		delta, err := bindrecipes.AsDelta(*specInReq)
		if err != nil {
			return binderr.BadRequest(err.Error(), err)
		}

		recipe, err := dbrecipe.Update(ctx, user.Id, recipeId, delta)
		if err != nil {
			if errors.Is(err, kdb.ErrMissing) {
				return binderr.NotFound()
			}
			return binderr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, bindrecipes.ComposeDetail(mediaURL, recipe))
	}
}

func DeleteRecipeHandler(dbrecipe kdb.RecipeInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := auth.Account(c)
		if !ok {
			return binderr.InternalServerError(errors.New("no account in request context"))
		}

		recipeId, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return binderr.NotFound()
		}

		if err := dbrecipe.Delete(ctx, user.Id, recipeId); err != nil {
			if errors.Is(err, kdb.ErrMissing) {
				return binderr.NotFound()
			}
			return binderr.InternalServerError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}

// file extensions accepted as recipe images.
var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {},
}

// UploadRecipeImageHandler receives a multipart field `image` and
// stores it below mediaRoot at uploads/recipe/<random name>, replacing
// (and removing) the previously uploaded image of the recipe.
func UploadRecipeImageHandler(
	dbrecipe kdb.RecipeInterface, mediaRoot string, mediaURL string, paramKey string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, ok := auth.Account(c)
		if !ok {
			return binderr.InternalServerError(errors.New("no account in request context"))
		}

		recipeId, err := strconv.Atoi(c.Param(paramKey))
		if err != nil {
			return binderr.NotFound()
		}

		// existence first: nobody learns about other accounts' recipes
		// from upload validation errors.
		if _, err := dbrecipe.Get(ctx, user.Id, recipeId); err != nil {
			if errors.Is(err, kdb.ErrMissing) {
				return binderr.NotFound()
			}
			return binderr.InternalServerError(err)
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			return binderr.BadRequest(`multipart field "image" is required`, err)
		}

		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if _, ok := imageExtensions[ext]; !ok {
			return binderr.BadRequest(
				fmt.Sprintf(`"%s" is not a supported image type`, ext), nil,
			)
		}

		imagePath := path.Join("uploads", "recipe", uuid.NewString()+ext)
		filename := filepath.Join(mediaRoot, filepath.FromSlash(imagePath))

		if err := func() error {
			src, err := fileHeader.Open()
			if err != nil {
				return err
			}
			defer src.Close()

			dst, err := kio.CreateAll(filename, 0644, 0755)
			if err != nil {
				return err
			}
			defer dst.Close()

			_, err = io.Copy(dst, src)
			return err
		}(); err != nil {
			return binderr.InternalServerError(err)
		}

		prev, err := dbrecipe.SetImage(ctx, user.Id, recipeId, imagePath)
		if err != nil {
			os.Remove(filename)
			if errors.Is(err, kdb.ErrMissing) {
				return binderr.NotFound()
			}
			return binderr.InternalServerError(err)
		}

		if prev != "" {
			if err := os.Remove(filepath.Join(mediaRoot, filepath.FromSlash(prev))); err != nil {
				c.Logger().Warnf("could not remove replaced image %s: %s", prev, err)
			}
		}

		return c.JSON(http.StatusOK, bindrecipes.ComposeImage(mediaURL, kdb.Recipe{
			Id: recipeId, ImagePath: imagePath,
		}))
	}
}
