package repository

import "errors"

// Sentinel kinds for storage errors.
var (
	ErrEventNotFound       = errors.New("event not found")
	ErrGroupNotFound       = errors.New("group not found")
	ErrActivityNotFound    = errors.New("activity not found")
	ErrParticipantNotFound = errors.New("participant not found")
)
