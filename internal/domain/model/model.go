// Package model contains domain entities passed between layers.
package model

import "time"

// EvaluationType tags how an activity's raw values are compared.
type EvaluationType string

// Supported evaluation types.
const (
	NumericHigh EvaluationType = "NUMERIC_HIGH"
	NumericLow  EvaluationType = "NUMERIC_LOW"
	Boolean     EvaluationType = "BOOLEAN"
	ScoreSet    EvaluationType = "SCORE_SET"
)

// Valid reports whether t is one of the supported evaluation types.
func (t EvaluationType) Valid() bool {
	switch t {
	case NumericHigh, NumericLow, Boolean, ScoreSet:
		return true
	}
	return false
}

// EventStatus is the lifecycle state of an event.
type EventStatus string

// Event lifecycle states.
const (
	StatusDraft    EventStatus = "DRAFT"
	StatusActive   EventStatus = "ACTIVE"
	StatusArchived EventStatus = "ARCHIVED"
)

// Event is the top-level competition entity.
type Event struct {
	ID        int64
	Name      string
	Status    EventStatus
	CreatedAt time.Time
}

// Group is a team of participants within an event.
type Group struct {
	ID         int64
	EventID    int64
	Name       string
	Identifier string
}

// Participant belongs to exactly one group. Gender and Age are optional;
// nil means unknown and is cohorted separately.
type Participant struct {
	ID          int64
	GroupID     int64
	DisplayName string
	ExternalID  string
	Gender      *string
	Age         *int
}

// AgeCategory defines an inclusive [MinAge, MaxAge] band within an event.
// Bands may overlap; the first match in stored order wins.
type AgeCategory struct {
	ID      int64
	EventID int64
	Name    string
	MinAge  int
	MaxAge  int
}

// Activity is a scored discipline within an event.
type Activity struct {
	ID             int64
	EventID        int64
	Name           string
	Description    string
	EvaluationType EvaluationType
	CreatedAt      time.Time
}

// ScoreRecord holds one evaluated (participant, activity) pair. The raw value
// stays an untyped string to tolerate numeric, boolean, and free-text encodings.
// At most one record exists per pair; submissions upsert.
type ScoreRecord struct {
	ID            int64
	ParticipantID int64
	ActivityID    int64
	ValueRaw      string
	EvaluatorID   int64
	CreatedAt     time.Time
}

// RosterEntry pairs a participant with its owning group's name. Aggregation
// flattens all groups of an event into a participant-id keyed roster so
// ranking never goes back to storage.
type RosterEntry struct {
	Participant Participant
	GroupName   string
}

// Roster maps participant id to its roster entry.
type Roster = map[int64]RosterEntry
