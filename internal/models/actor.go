package models

// Actor is a user or a group unified under one signed identity space:
// positive IDs are users, negative IDs are groups.
type Actor struct {
	ID    int64
	Name  string
	Photo string
}

// IsGroup reports whether the actor is a group.
func (a Actor) IsGroup() bool {
	return a.ID < 0
}
