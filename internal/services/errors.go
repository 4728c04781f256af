package services

import "errors"

var (
	// ErrNotFound is returned by any single-row lookup that matches
	// nothing. Handlers map it to a 404 instead of letting the driver
	// error surface as a 500.
	ErrNotFound = errors.New("record not found")
)
