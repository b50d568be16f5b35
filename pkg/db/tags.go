package db

import "context"

// Tag is a label grouping recipes within one account.
//
// (account id, name) is unique: creating a name twice yields
// the row already there.
type Tag struct {
	Id   int
	Name string
}

// TagFindQuery narrows tag listings.
type TagFindQuery struct {
	// list only tags assigned to at least one recipe of the account.
	AssignedOnly bool
}

type TagInterface interface {
	// Find lists tags of the account, name descending.
	Find(ctx context.Context, accountId int, query TagFindQuery) ([]Tag, error)

	// Get retrieves one tag of the account.
	//
	// returns:
	//     - Tag
	//     - error: ErrMissing when the account has no such tag.
	Get(ctx context.Context, accountId int, tagId int) (Tag, error)

	// GetOrCreate finds the account's tag by name, creating it first
	// when it does not exist yet.
	GetOrCreate(ctx context.Context, accountId int, name string) (Tag, error)

	// Rename changes the name of the account's tag.
	//
	// returns:
	//     - Tag: the tag after renaming
	//     - error: ErrMissing when the account has no such tag,
	//       ErrConflict when the account already has the new name.
	Rename(ctx context.Context, accountId int, tagId int, name string) (Tag, error)

	// Delete removes the account's tag and its recipe assignments.
	// Recipes themselves are kept.
	//
	// returns:
	//     - error: ErrMissing when the account has no such tag.
	Delete(ctx context.Context, accountId int, tagId int) error
}
