package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	httptestutil "github.com/pantrylab/cookbookd/internal/testutils/http"
	apiingr "github.com/pantrylab/cookbookd/pkg/api/types/ingredients"
	"github.com/pantrylab/cookbookd/pkg/auth"
	kdb "github.com/pantrylab/cookbookd/pkg/db"
	dbmock "github.com/pantrylab/cookbookd/pkg/db/mocks"
	kpgerr "github.com/pantrylab/cookbookd/pkg/db/postgres/errors"
	"github.com/pantrylab/cookbookd/pkg/utils/cmp"

	"github.com/pantrylab/cookbookd/cmd/cookbookd/handlers"
)

func TestFindIngredientHandler(t *testing.T) {

	t.Run("it lists the ingredients of the account", func(t *testing.T) {
		mckdbingr := dbmock.NewIngredientInterface()
		mckdbingr.Impl.Find = func(ctx context.Context, accountId int, query kdb.IngredientFindQuery) ([]kdb.Ingredient, error) {
			return []kdb.Ingredient{
				{Id: 3, Name: "salt"},
				{Id: 1, Name: "kale"},
			}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/recipe/ingredients/")
		auth.StashAccount(c, testAccount)

		testee := handlers.FindIngredientHandler(mckdbingr)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if respRec.Result().StatusCode != http.StatusOK {
			t.Errorf(
				"status code %d != %d",
				respRec.Result().StatusCode, http.StatusOK,
			)
		}

		if !cmp.SliceEq(
			mckdbingr.Calls.Find,
			[]struct {
				AccountId int
				Query     kdb.IngredientFindQuery
			}{
				{AccountId: 42, Query: kdb.IngredientFindQuery{AssignedOnly: false}},
			},
		) {
			t.Error("IngredientInterface.Find did not call with correct args.")
		}

		actualResponse := []apiingr.Ingredient{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actualResponse); err != nil {
			t.Fatalf("response is not an ingredient list. error = %v", err)
		}
		expectedResponse := []apiingr.Ingredient{
			{Id: 3, Name: "salt"},
			{Id: 1, Name: "kale"},
		}
		if !cmp.SliceEqWith(actualResponse, expectedResponse, apiingr.Ingredient.Equal) {
			t.Errorf(
				"unmatch body. (actual, expected) = (%+v, %+v)",
				actualResponse, expectedResponse,
			)
		}
	})

	t.Run("when assigned_only=1 is sent, it narrows to assigned ingredients", func(t *testing.T) {
		mckdbingr := dbmock.NewIngredientInterface()
		mckdbingr.Impl.Find = func(context.Context, int, kdb.IngredientFindQuery) ([]kdb.Ingredient, error) {
			return nil, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/recipe/ingredients/?assigned_only=1")
		auth.StashAccount(c, testAccount)

		testee := handlers.FindIngredientHandler(mckdbingr)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if len(mckdbingr.Calls.Find) != 1 {
			t.Fatalf("Find is called %d times ( != 1 )", len(mckdbingr.Calls.Find))
		}
		if !mckdbingr.Calls.Find[0].Query.AssignedOnly {
			t.Error("Find is not narrowed to assigned ingredients")
		}

		// empty listings stay a list on the wire.
		if body := strings.TrimSpace(respRec.Body.String()); body != "[]" {
			t.Errorf(`unmatch body: %s (expected: [])`, body)
		}
	})

	t.Run("when assigned_only is not a number, it responds 400", func(t *testing.T) {
		mckdbingr := dbmock.NewIngredientInterface()

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/recipe/ingredients/?assigned_only=yes")
		auth.StashAccount(c, testAccount)

		testee := handlers.FindIngredientHandler(mckdbingr)
		err := testee(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. acutal = %#v", err)
		}
		if echoErr.Code != http.StatusBadRequest {
			t.Errorf("unmatch error code:%d, expeced:%d", echoErr.Code, http.StatusBadRequest)
		}
	})
}

func TestCreateIngredientHandler(t *testing.T) {

	t.Run("it stores the ingredient and responds 201", func(t *testing.T) {
		mckdbingr := dbmock.NewIngredientInterface()
		mckdbingr.Impl.GetOrCreate = func(ctx context.Context, accountId int, name string) (kdb.Ingredient, error) {
			return kdb.Ingredient{Id: 7, Name: name}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/recipe/ingredients/", strings.NewReader(`{"name": "kale"}`),
			httptestutil.ContentType("application/json"),
		)
		auth.StashAccount(c, testAccount)

		testee := handlers.CreateIngredientHandler(mckdbingr)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if respRec.Result().StatusCode != http.StatusCreated {
			t.Errorf(
				"status code %d != %d",
				respRec.Result().StatusCode, http.StatusCreated,
			)
		}

		if !cmp.SliceEq(
			mckdbingr.Calls.GetOrCreate,
			[]struct {
				AccountId int
				Name      string
			}{
				{AccountId: 42, Name: "kale"},
			},
		) {
			t.Error("IngredientInterface.GetOrCreate did not call with correct args.")
		}

		actualResponse := apiingr.Ingredient{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actualResponse); err != nil {
			t.Fatalf("response is not an ingredient. error = %v", err)
		}
		if expected := (apiingr.Ingredient{Id: 7, Name: "kale"}); !actualResponse.Equal(expected) {
			t.Errorf(
				"unmatch body. (actual, expected) = (%+v, %+v)",
				actualResponse, expected,
			)
		}
	})

	t.Run("when name is not sent, it responds 400", func(t *testing.T) {
		mckdbingr := dbmock.NewIngredientInterface()

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/recipe/ingredients/", strings.NewReader(`{}`),
			httptestutil.ContentType("application/json"),
		)
		auth.StashAccount(c, testAccount)

		testee := handlers.CreateIngredientHandler(mckdbingr)
		err := testee(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. acutal = %#v", err)
		}
		if echoErr.Code != http.StatusBadRequest {
			t.Errorf("unmatch error code:%d, expeced:%d", echoErr.Code, http.StatusBadRequest)
		}
		if len(mckdbingr.Calls.GetOrCreate) != 0 {
			t.Error("GetOrCreate is called for a rejected request")
		}
	})
}

func TestUpdateIngredientHandler(t *testing.T) {

	t.Run("it renames the ingredient and responds 200", func(t *testing.T) {
		mckdbingr := dbmock.NewIngredientInterface()
		mckdbingr.Impl.Rename = func(ctx context.Context, accountId int, ingredientId int, name string) (kdb.Ingredient, error) {
			return kdb.Ingredient{Id: ingredientId, Name: name}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Patch(
			e, "/api/recipe/ingredients/7/", strings.NewReader(`{"name": "curly kale"}`),
			httptestutil.ContentType("application/json"),
		)
		c.SetPath("/api/recipe/ingredients/:ingredientId/")
		c.SetParamNames("ingredientId")
		c.SetParamValues("7")
		auth.StashAccount(c, testAccount)

		testee := handlers.UpdateIngredientHandler(mckdbingr, "ingredientId")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if respRec.Result().StatusCode != http.StatusOK {
			t.Errorf(
				"status code %d != %d",
				respRec.Result().StatusCode, http.StatusOK,
			)
		}

		if !cmp.SliceEq(
			mckdbingr.Calls.Rename,
			[]struct {
				AccountId    int
				IngredientId int
				Name         string
			}{
				{AccountId: 42, IngredientId: 7, Name: "curly kale"},
			},
		) {
			t.Error("IngredientInterface.Rename did not call with correct args.")
		}
	})

	type When struct {
		Param  string
		Rename func(context.Context, int, int, string) (kdb.Ingredient, error)
	}
	type Then struct {
		Code int
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			mckdbingr := dbmock.NewIngredientInterface()
			mckdbingr.Impl.Rename = when.Rename

			e := echo.New()
			c, _ := httptestutil.Patch(
				e, "/api/recipe/ingredients/"+when.Param+"/",
				strings.NewReader(`{"name": "curly kale"}`),
				httptestutil.ContentType("application/json"),
			)
			c.SetPath("/api/recipe/ingredients/:ingredientId/")
			c.SetParamNames("ingredientId")
			c.SetParamValues(when.Param)
			auth.StashAccount(c, testAccount)

			testee := handlers.UpdateIngredientHandler(mckdbingr, "ingredientId")
			err := testee(c)

			var echoErr *echo.HTTPError
			if !errors.As(err, &echoErr) {
				t.Fatalf("error is not echo.HTTPError. acutal = %#v", err)
			}
			if echoErr.Code != then.Code {
				t.Errorf("unmatch error code:%d, expeced:%d", echoErr.Code, then.Code)
			}
		}
	}

	t.Run("when the id is not a number, it responds 404", theory(
		When{Param: "seven"},
		Then{Code: http.StatusNotFound},
	))
	t.Run("when the account has no such ingredient, it responds 404", theory(
		When{
			Param: "7",
			Rename: func(context.Context, int, int, string) (kdb.Ingredient, error) {
				return kdb.Ingredient{}, kpgerr.Missing{Table: "ingredient", Identity: "id=7"}
			},
		},
		Then{Code: http.StatusNotFound},
	))
	t.Run("when the new name is taken by another ingredient, it responds 409", theory(
		When{
			Param: "7",
			Rename: func(context.Context, int, int, string) (kdb.Ingredient, error) {
				return kdb.Ingredient{}, kpgerr.Conflict{Table: "ingredient", Identity: "name=curly kale"}
			},
		},
		Then{Code: http.StatusConflict},
	))
}

func TestDeleteIngredientHandler(t *testing.T) {

	t.Run("it deletes the ingredient and responds 204 without a body", func(t *testing.T) {
		mckdbingr := dbmock.NewIngredientInterface()
		mckdbingr.Impl.Delete = func(ctx context.Context, accountId int, ingredientId int) error {
			return nil
		}

		e := echo.New()
		c, respRec := httptestutil.Delete(e, "/api/recipe/ingredients/7/")
		c.SetPath("/api/recipe/ingredients/:ingredientId/")
		c.SetParamNames("ingredientId")
		c.SetParamValues("7")
		auth.StashAccount(c, testAccount)

		testee := handlers.DeleteIngredientHandler(mckdbingr, "ingredientId")
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if respRec.Result().StatusCode != http.StatusNoContent {
			t.Errorf(
				"status code %d != %d",
				respRec.Result().StatusCode, http.StatusNoContent,
			)
		}
		if respRec.Body.Len() != 0 {
			t.Errorf("unexpected body: %s", respRec.Body.String())
		}

		if !cmp.SliceEq(
			mckdbingr.Calls.Delete,
			[]struct {
				AccountId    int
				IngredientId int
			}{
				{AccountId: 42, IngredientId: 7},
			},
		) {
			t.Error("IngredientInterface.Delete did not call with correct args.")
		}
	})

	t.Run("when the account has no such ingredient, it responds 404", func(t *testing.T) {
		mckdbingr := dbmock.NewIngredientInterface()
		mckdbingr.Impl.Delete = func(context.Context, int, int) error {
			return kpgerr.Missing{Table: "ingredient", Identity: "id=7"}
		}

		e := echo.New()
		c, _ := httptestutil.Delete(e, "/api/recipe/ingredients/7/")
		c.SetPath("/api/recipe/ingredients/:ingredientId/")
		c.SetParamNames("ingredientId")
		c.SetParamValues("7")
		auth.StashAccount(c, testAccount)

		testee := handlers.DeleteIngredientHandler(mckdbingr, "ingredientId")
		err := testee(c)

		var echoErr *echo.HTTPError
		if !errors.As(err, &echoErr) {
			t.Fatalf("error is not echo.HTTPError. acutal = %#v", err)
		}
		if echoErr.Code != http.StatusNotFound {
			t.Errorf("unmatch error code:%d, expeced:%d", echoErr.Code, http.StatusNotFound)
		}
	})
}
