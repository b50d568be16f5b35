package main

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pantrylab/cookbookd/cmd/cookbookd/handlers"
	binderr "github.com/pantrylab/cookbookd/pkg/api/bind/errors"
	"github.com/pantrylab/cookbookd/pkg/auth"
	configs "github.com/pantrylab/cookbookd/pkg/configs/server"
	kdb "github.com/pantrylab/cookbookd/pkg/db"
	kpg "github.com/pantrylab/cookbookd/pkg/db/postgres"
	"github.com/pantrylab/cookbookd/pkg/utils/echoutil"
)

var API_ROOT = "/api"

func api(subpath string) string {
	if !strings.HasSuffix(subpath, "/") {
		subpath += "/"
	}
	return fmt.Sprintf("%s/%s", API_ROOT, subpath)
}

func BuildServer(
	db kdb.CookbookDatabase,
	tokens *auth.Tokens,
	media *configs.MediaConfig,
	openapi []byte,
	loglevel string,
) *echo.Echo {

	e := echo.New()

	echoutil.SetLevel(e, loglevel)

	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		if kpg.IsConnectionError(err) {
			err = binderr.ServiceUnavailable("try again later", err)
		}
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}

	mediaPrefix := strings.TrimSuffix(media.URL(), "/")
	e.Pre(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		// media files are files, not API resources.
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, mediaPrefix+"/")
		},
	}))

	// logging for server-side latency.
	e.Use(echoutil.LogHandlerFunc)

	bearer := auth.Bearer(tokens, db.Users())

	{
		e.POST(api("user/create"), handlers.CreateUserHandler(db.Users()))
		e.POST(api("user/token"), handlers.CreateTokenHandler(db.Users(), tokens))

		e.GET(api("user/me"), handlers.GetMeHandler(), bearer)
		e.PUT(api("user/me"), handlers.UpdateMeHandler(db.Users(), true), bearer)
		e.PATCH(api("user/me"), handlers.UpdateMeHandler(db.Users(), false), bearer)
	}

	{
		recipeId := "recipeId"
		e.GET(api("recipe/recipes"), handlers.FindRecipeHandler(db.Recipes()), bearer)
		e.POST(api("recipe/recipes"), handlers.CreateRecipeHandler(db.Recipes(), media.URL()), bearer)

		e.GET(
			api("recipe/recipes/:recipeId/"),
			handlers.GetRecipeHandler(db.Recipes(), media.URL(), recipeId),
			bearer,
		)
		e.PUT(
			api("recipe/recipes/:recipeId/"),
			handlers.UpdateRecipeHandler(db.Recipes(), media.URL(), recipeId, true),
			bearer,
		)
		e.PATCH(
			api("recipe/recipes/:recipeId/"),
			handlers.UpdateRecipeHandler(db.Recipes(), media.URL(), recipeId, false),
			bearer,
		)
		e.DELETE(
			api("recipe/recipes/:recipeId/"),
			handlers.DeleteRecipeHandler(db.Recipes(), recipeId),
			bearer,
		)
		e.POST(
			api("recipe/recipes/:recipeId/upload-image"),
			handlers.UploadRecipeImageHandler(db.Recipes(), media.Root(), media.URL(), recipeId),
			bearer,
		)
	}

	{
		tagId := "tagId"
		e.GET(api("recipe/tags"), handlers.FindTagHandler(db.Tags()), bearer)
		e.POST(api("recipe/tags"), handlers.CreateTagHandler(db.Tags()), bearer)
		e.PUT(api("recipe/tags/:tagId/"), handlers.UpdateTagHandler(db.Tags(), tagId), bearer)
		e.PATCH(api("recipe/tags/:tagId/"), handlers.UpdateTagHandler(db.Tags(), tagId), bearer)
		e.DELETE(api("recipe/tags/:tagId/"), handlers.DeleteTagHandler(db.Tags(), tagId), bearer)
	}

	{
		ingredientId := "ingredientId"
		e.GET(api("recipe/ingredients"), handlers.FindIngredientHandler(db.Ingredients()), bearer)
		e.POST(api("recipe/ingredients"), handlers.CreateIngredientHandler(db.Ingredients()), bearer)
		e.PUT(
			api("recipe/ingredients/:ingredientId/"),
			handlers.UpdateIngredientHandler(db.Ingredients(), ingredientId),
			bearer,
		)
		e.PATCH(
			api("recipe/ingredients/:ingredientId/"),
			handlers.UpdateIngredientHandler(db.Ingredients(), ingredientId),
			bearer,
		)
		e.DELETE(
			api("recipe/ingredients/:ingredientId/"),
			handlers.DeleteIngredientHandler(db.Ingredients(), ingredientId),
			bearer,
		)
	}

	{
		e.GET(api("schema"), handlers.SchemaHandler(openapi))
		e.GET(api("docs"), handlers.DocsHandler(api("schema")))
	}

	e.Static(mediaPrefix, media.Root())

	return e
}
