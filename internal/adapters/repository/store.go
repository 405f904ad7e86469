// Package repository defines the event storage interface and its adapters.
package repository

import (
	"context"

	"github.com/eventscore/rankd/internal/domain/model"
)

// Store provides read/write access to event data. Reads used by the
// aggregation path are bulk, scoped by event id, so one leaderboard
// computation costs a fixed number of store calls regardless of roster size.
type Store interface {
	// CreateEvent persists a new event and returns it with its id assigned.
	CreateEvent(ctx context.Context, ev model.Event) (model.Event, error)
	// CreateGroup persists a new group under an existing event.
	CreateGroup(ctx context.Context, g model.Group) (model.Group, error)
	// CreateParticipant persists a new participant under an existing group.
	CreateParticipant(ctx context.Context, p model.Participant) (model.Participant, error)
	// CreateAgeCategory persists a new age category under an existing event.
	// Category order is creation order; the cohort assigner depends on it.
	CreateAgeCategory(ctx context.Context, c model.AgeCategory) (model.AgeCategory, error)
	// CreateActivity persists a new activity under an existing event.
	CreateActivity(ctx context.Context, a model.Activity) (model.Activity, error)

	// Event returns the event with the given id.
	// Returns ErrEventNotFound if it does not exist.
	Event(ctx context.Context, id int64) (model.Event, error)
	// Activity returns the activity with the given id.
	// Returns ErrActivityNotFound if it does not exist.
	Activity(ctx context.Context, id int64) (model.Activity, error)
	// AgeCategories returns the event's age categories in stored order.
	AgeCategories(ctx context.Context, eventID int64) ([]model.AgeCategory, error)
	// Activities returns the event's activities in stored order.
	Activities(ctx context.Context, eventID int64) ([]model.Activity, error)
	// Roster returns every participant of the event keyed by id, each paired
	// with its owning group's name.
	Roster(ctx context.Context, eventID int64) (model.Roster, error)
	// EventRecords returns all score records of the event's activities,
	// grouped by activity id.
	EventRecords(ctx context.Context, eventID int64) (map[int64][]model.ScoreRecord, error)
	// ActivityRecords returns all score records for one activity.
	ActivityRecords(ctx context.Context, activityID int64) ([]model.ScoreRecord, error)

	// UpsertRecord inserts or overwrites the record for the
	// (participant, activity) pair and returns the stored row. At most one
	// record ever exists per pair. Returns ErrActivityNotFound or
	// ErrParticipantNotFound for dangling references.
	UpsertRecord(ctx context.Context, rec model.ScoreRecord) (model.ScoreRecord, error)

	// Close releases underlying resources.
	Close() error
}
