package service

import (
	"errors"

	"github.com/emrgen/wiki/internal/store"
)

var (
	// ErrPageNotFound is returned when the page does not exist.
	ErrPageNotFound = store.ErrPageNotFound
	// ErrPageExists is returned when uploading a page under a taken name.
	ErrPageExists = store.ErrPageExists
	// ErrPreconditionFailed is returned when a decision is requested for a page
	// whose latest edit is missing or no longer pending.
	ErrPreconditionFailed = errors.New("precondition failed")
	// ErrEditPending is returned when an edit is submitted while another one awaits review.
	ErrEditPending = errors.New("page already has a pending edit")
	// ErrNotPageAuthor is returned when someone other than the author decides on an edit.
	ErrNotPageAuthor = errors.New("only the page author can review edits")
	// ErrConflict is returned when a page kept changing during every update attempt.
	ErrConflict = errors.New("page was modified concurrently, please retry")
	// ErrInvalidArgument is returned for empty page names or usernames.
	ErrInvalidArgument = errors.New("invalid argument")
)
