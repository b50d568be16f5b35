package tags

import (
	apitags "github.com/pantrylab/cookbookd/pkg/api/types/tags"
	kdb "github.com/pantrylab/cookbookd/pkg/db"
)

func Compose(tag kdb.Tag) apitags.Tag {
	return apitags.Tag{Id: tag.Id, Name: tag.Name}
}
