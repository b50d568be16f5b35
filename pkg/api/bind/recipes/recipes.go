package recipes

import (
	"errors"
	"strings"

	bindingr "github.com/pantrylab/cookbookd/pkg/api/bind/ingredients"
	bindtags "github.com/pantrylab/cookbookd/pkg/api/bind/tags"
	apiingr "github.com/pantrylab/cookbookd/pkg/api/types/ingredients"
	apirecipes "github.com/pantrylab/cookbookd/pkg/api/types/recipes"
	apitags "github.com/pantrylab/cookbookd/pkg/api/types/tags"
	kdb "github.com/pantrylab/cookbookd/pkg/db"
	"github.com/pantrylab/cookbookd/pkg/utils"
)

func ComposeSummary(r kdb.Recipe) apirecipes.Summary {
	return apirecipes.Summary{
		Id:          r.Id,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       apirecipes.Price(r.Price),
		Link:        r.Link,
		Tags:        utils.Map(r.Tags, bindtags.Compose),
		Ingredients: utils.Map(r.Ingredients, bindingr.Compose),
	}
}

// ComposeDetail shows r whole, its image as a URL below mediaURL.
func ComposeDetail(mediaURL string, r kdb.Recipe) apirecipes.Detail {
	return apirecipes.Detail{
		Summary:     ComposeSummary(r),
		Description: r.Description,
		Image:       imageURL(mediaURL, r.ImagePath),
	}
}

// ComposeImage shows the outcome of an image upload.
func ComposeImage(mediaURL string, r kdb.Recipe) apirecipes.Image {
	return apirecipes.Image{
		Id:    r.Id,
		Image: imageURL(mediaURL, r.ImagePath),
	}
}

func imageURL(mediaURL string, imagePath string) *string {
	if imagePath == "" {
		return nil
	}
	u := strings.TrimSuffix(mediaURL, "/") + "/" + imagePath
	return &u
}

// AsCreate reads spec as the attributes of a brand new recipe.
//
// returns:
//     - kdb.RecipeSpec
//     - error: when a required field is not sent or a nested name
//       is empty. The message names the field for the client.
func AsCreate(spec apirecipes.Spec) (kdb.RecipeSpec, error) {
	if spec.Title == nil || *spec.Title == "" {
		return kdb.RecipeSpec{}, errors.New(`"title" is required`)
	}
	if spec.TimeMinutes == nil {
		return kdb.RecipeSpec{}, errors.New(`"time_minutes" is required`)
	}
	if spec.Price == nil {
		return kdb.RecipeSpec{}, errors.New(`"price" is required`)
	}

	created := kdb.RecipeSpec{
		Title:       *spec.Title,
		TimeMinutes: *spec.TimeMinutes,
		Price:       int64(*spec.Price),
	}
	if spec.Description != nil {
		created.Description = *spec.Description
	}
	if spec.Link != nil {
		created.Link = *spec.Link
	}

	if spec.Tags != nil {
		names, err := tagNames(*spec.Tags)
		if err != nil {
			return kdb.RecipeSpec{}, err
		}
		created.Tags = names
	}
	if spec.Ingredients != nil {
		names, err := ingredientNames(*spec.Ingredients)
		if err != nil {
			return kdb.RecipeSpec{}, err
		}
		created.Ingredients = names
	}

	return created, nil
}

// AsDelta reads spec as changes for an existing recipe. Fields not
// sent stay nil, meaning "leave as is".
//
// returns:
//     - kdb.RecipeDelta
//     - error: when a sent field is blank where it may not be, or a
//       nested name is empty.
func AsDelta(spec apirecipes.Spec) (kdb.RecipeDelta, error) {
	if spec.Title != nil && *spec.Title == "" {
		return kdb.RecipeDelta{}, errors.New(`"title" may not be blank`)
	}

	delta := kdb.RecipeDelta{
		Title:       spec.Title,
		Description: spec.Description,
		TimeMinutes: spec.TimeMinutes,
		Link:        spec.Link,
	}
	if spec.Price != nil {
		price := int64(*spec.Price)
		delta.Price = &price
	}

	if spec.Tags != nil {
		names, err := tagNames(*spec.Tags)
		if err != nil {
			return kdb.RecipeDelta{}, err
		}
		delta.Tags = &names
	}
	if spec.Ingredients != nil {
		names, err := ingredientNames(*spec.Ingredients)
		if err != nil {
			return kdb.RecipeDelta{}, err
		}
		delta.Ingredients = &names
	}

	return delta, nil
}

func tagNames(specs []apitags.Spec) ([]string, error) {
	names := make([]string, 0, len(specs))
	for _, s := range specs {
		if s.Name == "" {
			return nil, errors.New(`"name" is required for each tag`)
		}
		names = append(names, s.Name)
	}
	return names, nil
}

func ingredientNames(specs []apiingr.Spec) ([]string, error) {
	names := make([]string, 0, len(specs))
	for _, s := range specs {
		if s.Name == "" {
			return nil, errors.New(`"name" is required for each ingredient`)
		}
		names = append(names, s.Name)
	}
	return names, nil
}
