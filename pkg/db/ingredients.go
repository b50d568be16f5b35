package db

import "context"

// Ingredient is something recipes are cooked from, within one account.
//
// Like Tag, (account id, name) is unique.
type Ingredient struct {
	Id   int
	Name string
}

// IngredientFindQuery narrows ingredient listings.
type IngredientFindQuery struct {
	// list only ingredients assigned to at least one recipe of the account.
	AssignedOnly bool
}

type IngredientInterface interface {
	// Find lists ingredients of the account, name descending.
	Find(ctx context.Context, accountId int, query IngredientFindQuery) ([]Ingredient, error)

	// Get retrieves one ingredient of the account.
	//
	// returns:
	//     - Ingredient
	//     - error: ErrMissing when the account has no such ingredient.
	Get(ctx context.Context, accountId int, ingredientId int) (Ingredient, error)

	// GetOrCreate finds the account's ingredient by name, creating it
	// first when it does not exist yet.
	GetOrCreate(ctx context.Context, accountId int, name string) (Ingredient, error)

	// Rename changes the name of the account's ingredient.
	//
	// returns:
	//     - Ingredient: the ingredient after renaming
	//     - error: ErrMissing when the account has no such ingredient,
	//       ErrConflict when the account already has the new name.
	Rename(ctx context.Context, accountId int, ingredientId int, name string) (Ingredient, error)

	// Delete removes the account's ingredient and its recipe
	// assignments. Recipes themselves are kept.
	//
	// returns:
	//     - error: ErrMissing when the account has no such ingredient.
	Delete(ctx context.Context, accountId int, ingredientId int) error
}
