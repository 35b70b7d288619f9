package model

import "strings"

// EditStatus is the lifecycle state of an Edit.
type EditStatus int

const (
	StatusPending  EditStatus = 1
	StatusAccepted EditStatus = 2
	StatusDeclined EditStatus = 3
)

// Valid reports whether s is one of the known statuses.
func (s EditStatus) Valid() bool {
	return s >= StatusPending && s <= StatusDeclined
}

// Terminal reports whether no further transition is allowed.
func (s EditStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// Edit is a suggested replacement for a page's content.
type Edit struct {
	Content string     `json:"Content"`
	Date    string     `json:"Date"`
	Status  EditStatus `json:"Status"`
	Editor  string     `json:"Editor"`
}

// IsBy compares the editor case-insensitively.
func (e Edit) IsBy(username string) bool {
	return strings.EqualFold(e.Editor, username)
}
