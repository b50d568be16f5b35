package db

import (
	"context"

	"github.com/pantrylab/cookbookd/pkg/utils/cmp"
)

// Recipe is a dish and how to cook it, owned by one account.
type Recipe struct {
	Id          int
	Title       string
	Description string
	TimeMinutes int

	// price in hundredths of the currency unit: 1250 means 12.50.
	Price int64

	Link string

	// path of the uploaded image below the media root.
	// Empty when no image has been uploaded.
	ImagePath string

	Tags        []Tag
	Ingredients []Ingredient
}

func (r Recipe) Equal(o Recipe) bool {
	return r.Id == o.Id &&
		r.Title == o.Title &&
		r.Description == o.Description &&
		r.TimeMinutes == o.TimeMinutes &&
		r.Price == o.Price &&
		r.Link == o.Link &&
		r.ImagePath == o.ImagePath &&
		cmp.SliceEq(r.Tags, o.Tags) &&
		cmp.SliceEq(r.Ingredients, o.Ingredients)
}

// RecipeSpec is the attribute set to create a new Recipe.
//
// Tags and Ingredients are names. Names unknown for the account
// come into being together with the recipe, in the same transaction.
type RecipeSpec struct {
	Title       string
	Description string
	TimeMinutes int
	Price       int64
	Link        string
	Tags        []string
	Ingredients []string
}

// RecipeDelta carries changes for an existing Recipe.
//
// nil fields are left as is. Non-nil Tags or Ingredients replace the
// whole assignment of the recipe, get-or-creating names as in
// RecipeSpec. An empty non-nil slice clears the assignment.
type RecipeDelta struct {
	Title       *string
	Description *string
	TimeMinutes *int
	Price       *int64
	Link        *string
	Tags        *[]string
	Ingredients *[]string
}

// RecipeFindQuery narrows recipe listings.
//
// Zero value means "everything of the account".
type RecipeFindQuery struct {
	// when not empty, only recipes assigned any of these tags.
	TagIds []int

	// when not empty, only recipes assigned any of these ingredients.
	IngredientIds []int
}

type RecipeInterface interface {
	// Find lists recipes of the account matching query, newest first
	// (id descending). Each recipe carries its tags and ingredients.
	Find(ctx context.Context, accountId int, query RecipeFindQuery) ([]Recipe, error)

	// Get retrieves one recipe of the account.
	//
	// returns:
	//     - Recipe
	//     - error: ErrMissing when the account has no such recipe.
	Get(ctx context.Context, accountId int, recipeId int) (Recipe, error)

	// Create stores a new recipe with its tag and ingredient
	// assignments, atomically.
	Create(ctx context.Context, accountId int, spec RecipeSpec) (Recipe, error)

	// Update modifies the account's recipe, atomically with its
	// assignment changes.
	//
	// returns:
	//     - Recipe: the recipe after the change
	//     - error: ErrMissing when the account has no such recipe.
	Update(ctx context.Context, accountId int, recipeId int, delta RecipeDelta) (Recipe, error)

	// Delete removes the account's recipe and its assignments.
	//
	// returns:
	//     - error: ErrMissing when the account has no such recipe.
	Delete(ctx context.Context, accountId int, recipeId int) error

	// SetImage records the image path of the account's recipe and
	// returns the path it replaces.
	//
	// args:
	//     - imagePath: new path below the media root. Pass "" to unset.
	//
	// returns:
	//     - string: previous path ("" when there was none)
	//     - error: ErrMissing when the account has no such recipe.
	SetImage(ctx context.Context, accountId int, recipeId int, imagePath string) (string, error)
}
