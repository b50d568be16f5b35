package mocks

import (
	"context"
	"errors"

	kdb "github.com/pantrylab/cookbookd/pkg/db"
)

type IngredientInterface struct {
	Impl struct {
		Find        func(context.Context, int, kdb.IngredientFindQuery) ([]kdb.Ingredient, error)
		Get         func(context.Context, int, int) (kdb.Ingredient, error)
		GetOrCreate func(context.Context, int, string) (kdb.Ingredient, error)
		Rename      func(context.Context, int, int, string) (kdb.Ingredient, error)
		Delete      func(context.Context, int, int) error
	}
	Calls struct {
		Find CallLog[struct {
			AccountId int
			Query     kdb.IngredientFindQuery
		}]
		Get CallLog[struct {
			AccountId    int
			IngredientId int
		}]
		GetOrCreate CallLog[struct {
			AccountId int
			Name      string
		}]
		Rename CallLog[struct {
			AccountId    int
			IngredientId int
			Name         string
		}]
		Delete CallLog[struct {
			AccountId    int
			IngredientId int
		}]
	}
}

func NewIngredientInterface() *IngredientInterface {
	return &IngredientInterface{}
}

var _ kdb.IngredientInterface = &IngredientInterface{}

func (ii *IngredientInterface) Find(ctx context.Context, accountId int, query kdb.IngredientFindQuery) ([]kdb.Ingredient, error) {
	ii.Calls.Find = append(ii.Calls.Find, struct {
		AccountId int
		Query     kdb.IngredientFindQuery
	}{AccountId: accountId, Query: query})
	if ii.Impl.Find != nil {
		return ii.Impl.Find(ctx, accountId, query)
	}
	panic(errors.New("it should not be called"))
}

func (ii *IngredientInterface) Get(ctx context.Context, accountId int, ingredientId int) (kdb.Ingredient, error) {
	ii.Calls.Get = append(ii.Calls.Get, struct {
		AccountId    int
		IngredientId int
	}{AccountId: accountId, IngredientId: ingredientId})
	if ii.Impl.Get != nil {
		return ii.Impl.Get(ctx, accountId, ingredientId)
	}
	panic(errors.New("it should not be called"))
}

func (ii *IngredientInterface) GetOrCreate(ctx context.Context, accountId int, name string) (kdb.Ingredient, error) {
	ii.Calls.GetOrCreate = append(ii.Calls.GetOrCreate, struct {
		AccountId int
		Name      string
	}{AccountId: accountId, Name: name})
	if ii.Impl.GetOrCreate != nil {
		return ii.Impl.GetOrCreate(ctx, accountId, name)
	}
	panic(errors.New("it should not be called"))
}

func (ii *IngredientInterface) Rename(ctx context.Context, accountId int, ingredientId int, name string) (kdb.Ingredient, error) {
	ii.Calls.Rename = append(ii.Calls.Rename, struct {
		AccountId    int
		IngredientId int
		Name         string
	}{AccountId: accountId, IngredientId: ingredientId, Name: name})
	if ii.Impl.Rename != nil {
		return ii.Impl.Rename(ctx, accountId, ingredientId, name)
	}
	panic(errors.New("it should not be called"))
}

func (ii *IngredientInterface) Delete(ctx context.Context, accountId int, ingredientId int) error {
	ii.Calls.Delete = append(ii.Calls.Delete, struct {
		AccountId    int
		IngredientId int
	}{AccountId: accountId, IngredientId: ingredientId})
	if ii.Impl.Delete != nil {
		return ii.Impl.Delete(ctx, accountId, ingredientId)
	}
	panic(errors.New("it should not be called"))
}
