package models

import "errors"

// Catalog errors. Callers wrap these with detail and match them with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("game not found")
	ErrConflict        = errors.New("conflict")
	ErrUnavailable     = errors.New("catalog store unavailable")
)
