package ingredients

// Ingredient is something a recipe is cooked from, owned by a single account.
type Ingredient struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

func (i Ingredient) Equal(o Ingredient) bool {
	return i.Id == o.Id && i.Name == o.Name
}

// Spec is the client-sent body to create or rename an ingredient.
type Spec struct {
	Name string `json:"name"`
}
