package models

import "errors"

// Custom errors
var (
	ErrNotFound       = errors.New("record not found")
	ErrAlreadyPending = errors.New("fixture already has a pending bet")
	ErrNoData         = errors.New("data unavailable")
)
