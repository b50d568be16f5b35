package tags

// Tag is a label grouping recipes, owned by a single account.
type Tag struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

func (t Tag) Equal(o Tag) bool {
	return t.Id == o.Id && t.Name == o.Name
}

// Spec is the client-sent body to create or rename a tag.
type Spec struct {
	Name string `json:"name"`
}
