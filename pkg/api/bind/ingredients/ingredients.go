package ingredients

import (
	apiingr "github.com/pantrylab/cookbookd/pkg/api/types/ingredients"
	kdb "github.com/pantrylab/cookbookd/pkg/db"
)

func Compose(ing kdb.Ingredient) apiingr.Ingredient {
	return apiingr.Ingredient{Id: ing.Id, Name: ing.Name}
}
