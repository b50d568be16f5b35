package users

import (
	apiusers "github.com/pantrylab/cookbookd/pkg/api/types/users"
	kdb "github.com/pantrylab/cookbookd/pkg/db"
)

func ComposeProfile(user kdb.User) apiusers.Profile {
	return apiusers.Profile{Email: user.Email, Name: user.Name}
}
