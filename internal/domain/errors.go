package domain

import "errors"

var (
	// ErrRecordNotFound signals a missing corpus record.
	ErrRecordNotFound = errors.New("record not found")
	// ErrRecordExists signals a duplicate corpus record.
	ErrRecordExists = errors.New("record already exists")
	// ErrInvalidRecord signals a record that fails structural validation.
	ErrInvalidRecord = errors.New("invalid record")
)
