package errors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrCapacityExceeded   = errors.New("capacity exceeded")
	ErrOverflow           = errors.New("count overflow")
	ErrConflict           = errors.New("concurrent update conflict")
	ErrInvalidState       = errors.New("invalid state")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
