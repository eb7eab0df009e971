package domain

import "errors"

var (
	// Common domain errors
	ErrCardNotFound    = errors.New("card not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotConfigured   = errors.New("required configuration missing")
	ErrEmptyCatalog    = errors.New("card catalog is empty")
)
