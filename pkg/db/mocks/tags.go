package mocks

import (
	"context"
	"errors"

	kdb "github.com/pantrylab/cookbookd/pkg/db"
)

type TagInterface struct {
	Impl struct {
		Find        func(context.Context, int, kdb.TagFindQuery) ([]kdb.Tag, error)
		Get         func(context.Context, int, int) (kdb.Tag, error)
		GetOrCreate func(context.Context, int, string) (kdb.Tag, error)
		Rename      func(context.Context, int, int, string) (kdb.Tag, error)
		Delete      func(context.Context, int, int) error
	}
	Calls struct {
		Find CallLog[struct {
			AccountId int
			Query     kdb.TagFindQuery
		}]
		Get CallLog[struct {
			AccountId int
			TagId     int
		}]
		GetOrCreate CallLog[struct {
			AccountId int
			Name      string
		}]
		Rename CallLog[struct {
			AccountId int
			TagId     int
			Name      string
		}]
		Delete CallLog[struct {
			AccountId int
			TagId     int
		}]
	}
}

func NewTagInterface() *TagInterface {
	return &TagInterface{}
}

var _ kdb.TagInterface = &TagInterface{}

func (ti *TagInterface) Find(ctx context.Context, accountId int, query kdb.TagFindQuery) ([]kdb.Tag, error) {
	ti.Calls.Find = append(ti.Calls.Find, struct {
		AccountId int
		Query     kdb.TagFindQuery
	}{AccountId: accountId, Query: query})
	if ti.Impl.Find != nil {
		return ti.Impl.Find(ctx, accountId, query)
	}
	panic(errors.New("it should not be called"))
}

func (ti *TagInterface) Get(ctx context.Context, accountId int, tagId int) (kdb.Tag, error) {
	ti.Calls.Get = append(ti.Calls.Get, struct {
		AccountId int
		TagId     int
	}{AccountId: accountId, TagId: tagId})
	if ti.Impl.Get != nil {
		return ti.Impl.Get(ctx, accountId, tagId)
	}
	panic(errors.New("it should not be called"))
}

func (ti *TagInterface) GetOrCreate(ctx context.Context, accountId int, name string) (kdb.Tag, error) {
	ti.Calls.GetOrCreate = append(ti.Calls.GetOrCreate, struct {
		AccountId int
		Name      string
	}{AccountId: accountId, Name: name})
	if ti.Impl.GetOrCreate != nil {
		return ti.Impl.GetOrCreate(ctx, accountId, name)
	}
	panic(errors.New("it should not be called"))
}

func (ti *TagInterface) Rename(ctx context.Context, accountId int, tagId int, name string) (kdb.Tag, error) {
	ti.Calls.Rename = append(ti.Calls.Rename, struct {
		AccountId int
		TagId     int
		Name      string
	}{AccountId: accountId, TagId: tagId, Name: name})
	if ti.Impl.Rename != nil {
		return ti.Impl.Rename(ctx, accountId, tagId, name)
	}
	panic(errors.New("it should not be called"))
}

func (ti *TagInterface) Delete(ctx context.Context, accountId int, tagId int) error {
	ti.Calls.Delete = append(ti.Calls.Delete, struct {
		AccountId int
		TagId     int
	}{AccountId: accountId, TagId: tagId})
	if ti.Impl.Delete != nil {
		return ti.Impl.Delete(ctx, accountId, tagId)
	}
	panic(errors.New("it should not be called"))
}
