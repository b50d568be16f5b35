package recipes

import (
	"github.com/pantrylab/cookbookd/pkg/api/types/ingredients"
	"github.com/pantrylab/cookbookd/pkg/api/types/tags"
	"github.com/pantrylab/cookbookd/pkg/utils/cmp"
)

// Summary is one entry of recipe listings.
type Summary struct {
	Id          int                      `json:"id"`
	Title       string                   `json:"title"`
	TimeMinutes int                      `json:"time_minutes"`
	Price       Price                    `json:"price"`
	Link        string                   `json:"link"`
	Tags        []tags.Tag               `json:"tags"`
	Ingredients []ingredients.Ingredient `json:"ingredients"`
}

func (s Summary) Equal(o Summary) bool {
	return s.Id == o.Id &&
		s.Title == o.Title &&
		s.TimeMinutes == o.TimeMinutes &&
		s.Price == o.Price &&
		s.Link == o.Link &&
		cmp.SliceContentEqWith(s.Tags, o.Tags, tags.Tag.Equal) &&
		cmp.SliceContentEqWith(s.Ingredients, o.Ingredients, ingredients.Ingredient.Equal)
}

// Detail is a single recipe with everything shown.
//
// Image is a URL when an image has been uploaded, and null otherwise.
type Detail struct {
	Summary
	Description string  `json:"description"`
	Image       *string `json:"image"`
}

func (d Detail) Equal(o Detail) bool {
	if (d.Image == nil) != (o.Image == nil) {
		return false
	}
	if d.Image != nil && *d.Image != *o.Image {
		return false
	}
	return d.Summary.Equal(o.Summary) && d.Description == o.Description
}

// Image is the response of an image upload: the recipe by its id and
// the URL of the image now assigned.
type Image struct {
	Id    int     `json:"id"`
	Image *string `json:"image"`
}

// Spec is the client-sent body to create or modify a recipe.
//
// nil fields are "not sent". For partial modification they are left
// as is; creation requires Title, TimeMinutes and Price.
//
// Tags and Ingredients, when sent, replace the whole assignment:
// names not yet known for the account come into being on the fly.
type Spec struct {
	Title       *string             `json:"title"`
	TimeMinutes *int                `json:"time_minutes"`
	Price       *Price              `json:"price"`
	Link        *string             `json:"link"`
	Description *string             `json:"description"`
	Tags        *[]tags.Spec        `json:"tags"`
	Ingredients *[]ingredients.Spec `json:"ingredients"`
}
