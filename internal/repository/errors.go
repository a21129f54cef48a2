package repository

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
