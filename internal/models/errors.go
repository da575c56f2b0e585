package models

import "errors"

// Custom errors
var (
	ErrInvalidRule  = errors.New("invalid betting rule")
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key violation")
	ErrInvalidID    = errors.New("invalid ID format")
)
