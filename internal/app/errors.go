package service

import "errors"

// Service validation errors.
var (
	// ErrEmptyEventName is returned when an event definition has no name.
	ErrEmptyEventName = errors.New("event name must not be empty")
	// ErrInvalidEvaluationType is returned when an activity definition names
	// an unknown evaluation type.
	ErrInvalidEvaluationType = errors.New("invalid evaluation type")
	// ErrNoRecords is returned when a bulk submission carries no records.
	ErrNoRecords = errors.New("no records to submit")
)
