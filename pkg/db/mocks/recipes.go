package mocks

import (
	"context"
	"errors"

	kdb "github.com/pantrylab/cookbookd/pkg/db"
)

type RecipeInterface struct {
	Impl struct {
		Find     func(context.Context, int, kdb.RecipeFindQuery) ([]kdb.Recipe, error)
		Get      func(context.Context, int, int) (kdb.Recipe, error)
		Create   func(context.Context, int, kdb.RecipeSpec) (kdb.Recipe, error)
		Update   func(context.Context, int, int, kdb.RecipeDelta) (kdb.Recipe, error)
		Delete   func(context.Context, int, int) error
		SetImage func(context.Context, int, int, string) (string, error)
	}
	Calls struct {
		Find CallLog[struct {
			AccountId int
			Query     kdb.RecipeFindQuery
		}]
		Get CallLog[struct {
			AccountId int
			RecipeId  int
		}]
		Create CallLog[struct {
			AccountId int
			Spec      kdb.RecipeSpec
		}]
		Update CallLog[struct {
			AccountId int
			RecipeId  int
			Delta     kdb.RecipeDelta
		}]
		Delete CallLog[struct {
			AccountId int
			RecipeId  int
		}]
		SetImage CallLog[struct {
			AccountId int
			RecipeId  int
			ImagePath string
		}]
	}
}

func NewRecipeInterface() *RecipeInterface {
	return &RecipeInterface{}
}

var _ kdb.RecipeInterface = &RecipeInterface{}

func (ri *RecipeInterface) Find(ctx context.Context, accountId int, query kdb.RecipeFindQuery) ([]kdb.Recipe, error) {
	ri.Calls.Find = append(ri.Calls.Find, struct {
		AccountId int
		Query     kdb.RecipeFindQuery
	}{AccountId: accountId, Query: query})
	if ri.Impl.Find != nil {
		return ri.Impl.Find(ctx, accountId, query)
	}
	panic(errors.New("it should not be called"))
}

func (ri *RecipeInterface) Get(ctx context.Context, accountId int, recipeId int) (kdb.Recipe, error) {
	ri.Calls.Get = append(ri.Calls.Get, struct {
		AccountId int
		RecipeId  int
	}{AccountId: accountId, RecipeId: recipeId})
	if ri.Impl.Get != nil {
		return ri.Impl.Get(ctx, accountId, recipeId)
	}
	panic(errors.New("it should not be called"))
}

func (ri *RecipeInterface) Create(ctx context.Context, accountId int, spec kdb.RecipeSpec) (kdb.Recipe, error) {
	ri.Calls.Create = append(ri.Calls.Create, struct {
		AccountId int
		Spec      kdb.RecipeSpec
	}{AccountId: accountId, Spec: spec})
	if ri.Impl.Create != nil {
		return ri.Impl.Create(ctx, accountId, spec)
	}
	panic(errors.New("it should not be called"))
}

func (ri *RecipeInterface) Update(ctx context.Context, accountId int, recipeId int, delta kdb.RecipeDelta) (kdb.Recipe, error) {
	ri.Calls.Update = append(ri.Calls.Update, struct {
		AccountId int
		RecipeId  int
		Delta     kdb.RecipeDelta
	}{AccountId: accountId, RecipeId: recipeId, Delta: delta})
	if ri.Impl.Update != nil {
		return ri.Impl.Update(ctx, accountId, recipeId, delta)
	}
	panic(errors.New("it should not be called"))
}

func (ri *RecipeInterface) Delete(ctx context.Context, accountId int, recipeId int) error {
	ri.Calls.Delete = append(ri.Calls.Delete, struct {
		AccountId int
		RecipeId  int
	}{AccountId: accountId, RecipeId: recipeId})
	if ri.Impl.Delete != nil {
		return ri.Impl.Delete(ctx, accountId, recipeId)
	}
	panic(errors.New("it should not be called"))
}

func (ri *RecipeInterface) SetImage(ctx context.Context, accountId int, recipeId int, imagePath string) (string, error) {
	ri.Calls.SetImage = append(ri.Calls.SetImage, struct {
		AccountId int
		RecipeId  int
		ImagePath string
	}{AccountId: accountId, RecipeId: recipeId, ImagePath: imagePath})
	if ri.Impl.SetImage != nil {
		return ri.Impl.SetImage(ctx, accountId, recipeId, imagePath)
	}
	panic(errors.New("it should not be called"))
}
