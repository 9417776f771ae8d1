// Package domain holds sentinel errors shared across use cases.
package domain

import "errors"

var (
	// ErrRecordNotFound signals a missing catalog record.
	ErrRecordNotFound = errors.New("record not found")
	// ErrSessionNotFound signals a missing comparison session.
	ErrSessionNotFound = errors.New("comparison session not found")
	// ErrInvalidRecord signals a record that failed validation.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrDatasetFormat signals an unsupported or unreadable dataset payload.
	ErrDatasetFormat = errors.New("unsupported dataset format")
	// ErrNotImplemented signals an unimplemented feature.
	ErrNotImplemented = errors.New("not implemented")
)
