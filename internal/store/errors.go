package store

import (
	"errors"
)

// Error taxonomy surfaced to handlers. Store methods never retry; a failure
// goes straight back to the caller, who decides whether to re-trigger.
var (
	ErrValidation      = errors.New("missing required field")
	ErrNotFound        = errors.New("post not found")
	ErrAlreadyVoted    = errors.New("already voted")
	ErrIdentityMissing = errors.New("no resolvable identity")
	ErrEmptyText       = errors.New("comment text is empty")
)
