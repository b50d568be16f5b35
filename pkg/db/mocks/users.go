package mocks

import (
	"context"
	"errors"

	kdb "github.com/pantrylab/cookbookd/pkg/db"
)

type UserInterface struct {
	Impl struct {
		Register          func(context.Context, kdb.UserParam) (kdb.User, error)
		RegisterSuperuser func(context.Context, kdb.UserParam) (kdb.User, error)
		Get               func(context.Context, int) (kdb.User, error)
		GetByEmail        func(context.Context, string) (kdb.User, error)
		Update            func(context.Context, int, kdb.UserUpdate) (kdb.User, error)
	}
	Calls struct {
		Register          CallLog[kdb.UserParam]
		RegisterSuperuser CallLog[kdb.UserParam]
		Get               CallLog[struct{ Id int }]
		GetByEmail        CallLog[struct{ Email string }]
		Update            CallLog[struct {
			Id    int
			Delta kdb.UserUpdate
		}]
	}
}

func NewUserInterface() *UserInterface {
	return &UserInterface{}
}

var _ kdb.UserInterface = &UserInterface{}

func (ui *UserInterface) Register(ctx context.Context, param kdb.UserParam) (kdb.User, error) {
	ui.Calls.Register = append(ui.Calls.Register, param)
	if ui.Impl.Register != nil {
		return ui.Impl.Register(ctx, param)
	}
	panic(errors.New("it should not be called"))
}

func (ui *UserInterface) RegisterSuperuser(ctx context.Context, param kdb.UserParam) (kdb.User, error) {
	ui.Calls.RegisterSuperuser = append(ui.Calls.RegisterSuperuser, param)
	if ui.Impl.RegisterSuperuser != nil {
		return ui.Impl.RegisterSuperuser(ctx, param)
	}
	panic(errors.New("it should not be called"))
}

func (ui *UserInterface) Get(ctx context.Context, id int) (kdb.User, error) {
	ui.Calls.Get = append(ui.Calls.Get, struct{ Id int }{Id: id})
	if ui.Impl.Get != nil {
		return ui.Impl.Get(ctx, id)
	}
	panic(errors.New("it should not be called"))
}

func (ui *UserInterface) GetByEmail(ctx context.Context, email string) (kdb.User, error) {
	ui.Calls.GetByEmail = append(ui.Calls.GetByEmail, struct{ Email string }{Email: email})
	if ui.Impl.GetByEmail != nil {
		return ui.Impl.GetByEmail(ctx, email)
	}
	panic(errors.New("it should not be called"))
}

func (ui *UserInterface) Update(ctx context.Context, id int, delta kdb.UserUpdate) (kdb.User, error) {
	ui.Calls.Update = append(ui.Calls.Update, struct {
		Id    int
		Delta kdb.UserUpdate
	}{Id: id, Delta: delta})
	if ui.Impl.Update != nil {
		return ui.Impl.Update(ctx, id, delta)
	}
	panic(errors.New("it should not be called"))
}
