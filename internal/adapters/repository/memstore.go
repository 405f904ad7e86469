package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/eventscore/rankd/internal/domain/model"
)

// MemStore implements Store with plain in-process maps guarded by a RWMutex.
// Stored order is creation order. It is the default backend and the test
// double for everything above the storage boundary.
type MemStore struct {
	mu     sync.RWMutex
	nextID int64

	events       map[int64]model.Event
	groups       map[int64]model.Group
	participants map[int64]model.Participant
	categories   map[int64]model.AgeCategory
	activities   map[int64]model.Activity
	// records indexed by (participant, activity) to enforce the upsert invariant.
	records map[recordKey]model.ScoreRecord

	// Creation order per event, so list reads are deterministic.
	groupOrder    map[int64][]int64
	categoryOrder map[int64][]int64
	activityOrder map[int64][]int64
	memberOrder   map[int64][]int64 // group id -> participant ids
}

type recordKey struct {
	participantID int64
	activityID    int64
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		events:        make(map[int64]model.Event),
		groups:        make(map[int64]model.Group),
		participants:  make(map[int64]model.Participant),
		categories:    make(map[int64]model.AgeCategory),
		activities:    make(map[int64]model.Activity),
		records:       make(map[recordKey]model.ScoreRecord),
		groupOrder:    make(map[int64][]int64),
		categoryOrder: make(map[int64][]int64),
		activityOrder: make(map[int64][]int64),
		memberOrder:   make(map[int64][]int64),
	}
}

func (s *MemStore) allocID() int64 {
	s.nextID++
	return s.nextID
}

// CreateEvent persists a new event.
func (s *MemStore) CreateEvent(_ context.Context, ev model.Event) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev.ID = s.allocID()
	if ev.Status == "" {
		ev.Status = model.StatusDraft
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	s.events[ev.ID] = ev
	return ev, nil
}

// CreateGroup persists a new group under an existing event.
func (s *MemStore) CreateGroup(_ context.Context, g model.Group) (model.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[g.EventID]; !ok {
		return model.Group{}, ErrEventNotFound
	}
	g.ID = s.allocID()
	s.groups[g.ID] = g
	s.groupOrder[g.EventID] = append(s.groupOrder[g.EventID], g.ID)
	return g, nil
}

// CreateParticipant persists a new participant under an existing group.
func (s *MemStore) CreateParticipant(_ context.Context, p model.Participant) (model.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[p.GroupID]; !ok {
		return model.Participant{}, ErrGroupNotFound
	}
	p.ID = s.allocID()
	s.participants[p.ID] = p
	s.memberOrder[p.GroupID] = append(s.memberOrder[p.GroupID], p.ID)
	return p, nil
}

// CreateAgeCategory persists a new age category under an existing event.
func (s *MemStore) CreateAgeCategory(_ context.Context, c model.AgeCategory) (model.AgeCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[c.EventID]; !ok {
		return model.AgeCategory{}, ErrEventNotFound
	}
	c.ID = s.allocID()
	s.categories[c.ID] = c
	s.categoryOrder[c.EventID] = append(s.categoryOrder[c.EventID], c.ID)
	return c, nil
}

// CreateActivity persists a new activity under an existing event.
func (s *MemStore) CreateActivity(_ context.Context, a model.Activity) (model.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[a.EventID]; !ok {
		return model.Activity{}, ErrEventNotFound
	}
	a.ID = s.allocID()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	s.activities[a.ID] = a
	s.activityOrder[a.EventID] = append(s.activityOrder[a.EventID], a.ID)
	return a, nil
}

// Event returns the event with the given id.
func (s *MemStore) Event(_ context.Context, id int64) (model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.events[id]
	if !ok {
		return model.Event{}, ErrEventNotFound
	}
	return ev, nil
}

// Activity returns the activity with the given id.
func (s *MemStore) Activity(_ context.Context, id int64) (model.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.activities[id]
	if !ok {
		return model.Activity{}, ErrActivityNotFound
	}
	return a, nil
}

// AgeCategories returns the event's age categories in stored order.
func (s *MemStore) AgeCategories(_ context.Context, eventID int64) ([]model.AgeCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.categoryOrder[eventID]
	out := make([]model.AgeCategory, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.categories[id])
	}
	return out, nil
}

// Activities returns the event's activities in stored order.
func (s *MemStore) Activities(_ context.Context, eventID int64) ([]model.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.activityOrder[eventID]
	out := make([]model.Activity, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.activities[id])
	}
	return out, nil
}

// Roster returns every participant of the event keyed by id.
func (s *MemStore) Roster(_ context.Context, eventID int64) (model.Roster, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roster := make(model.Roster)
	for _, gid := range s.groupOrder[eventID] {
		group := s.groups[gid]
		for _, pid := range s.memberOrder[gid] {
			roster[pid] = model.RosterEntry{
				Participant: s.participants[pid],
				GroupName:   group.Name,
			}
		}
	}
	return roster, nil
}

// EventRecords returns all score records of the event grouped by activity id.
func (s *MemStore) EventRecords(_ context.Context, eventID int64) (map[int64][]model.ScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[int64]struct{}, len(s.activityOrder[eventID]))
	for _, aid := range s.activityOrder[eventID] {
		wanted[aid] = struct{}{}
	}
	out := make(map[int64][]model.ScoreRecord)
	for _, rec := range s.records {
		if _, ok := wanted[rec.ActivityID]; ok {
			out[rec.ActivityID] = append(out[rec.ActivityID], rec)
		}
	}
	// Map iteration order is random; present records in insertion order.
	for _, recs := range out {
		sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	}
	return out, nil
}

// ActivityRecords returns all score records for one activity.
func (s *MemStore) ActivityRecords(_ context.Context, activityID int64) ([]model.ScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.activities[activityID]; !ok {
		return nil, ErrActivityNotFound
	}
	var out []model.ScoreRecord
	for _, rec := range s.records {
		if rec.ActivityID == activityID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpsertRecord inserts or overwrites the record for the (participant, activity) pair.
func (s *MemStore) UpsertRecord(_ context.Context, rec model.ScoreRecord) (model.ScoreRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.activities[rec.ActivityID]; !ok {
		return model.ScoreRecord{}, ErrActivityNotFound
	}
	if _, ok := s.participants[rec.ParticipantID]; !ok {
		return model.ScoreRecord{}, ErrParticipantNotFound
	}

	key := recordKey{participantID: rec.ParticipantID, activityID: rec.ActivityID}
	if existing, ok := s.records[key]; ok {
		existing.ValueRaw = rec.ValueRaw
		existing.EvaluatorID = rec.EvaluatorID
		s.records[key] = existing
		return existing, nil
	}
	rec.ID = s.allocID()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	s.records[key] = rec
	return rec, nil
}

// Close is a no-op for the in-memory store.
func (s *MemStore) Close() error { return nil }
