package db

// CookbookDatabase is the persistence layer of cookbookd.
//
// Each accessor exposes the storage of one resource kind. All of them
// scope their operations to a single account: no operation can reach
// rows owned by someone else.
type CookbookDatabase interface {
	Users() UserInterface
	Recipes() RecipeInterface
	Tags() TagInterface
	Ingredients() IngredientInterface
	Schema() SchemaInterface
	Close() error
}
