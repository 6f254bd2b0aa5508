package service

import "errors"

// Sentinel errors matched with errors.Is at the handler boundary and
// translated there into HTTP statuses. Anything else coming out of a service
// is treated as an internal error.
var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrPrimaryEmailNotFound = errors.New("primary email not found")
)
