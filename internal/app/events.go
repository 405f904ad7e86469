package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/eventscore/rankd/internal/domain/model"
	"github.com/eventscore/rankd/pkg/logger"
)

// EventDefinition describes a complete event to create in one call: its
// groups with their participants, the age category bands, and the activities.
type EventDefinition struct {
	Name          string
	Groups        []GroupDefinition
	AgeCategories []AgeCategoryDefinition
	Activities    []ActivityDefinition
}

// GroupDefinition describes one group and its members.
type GroupDefinition struct {
	Name         string
	Identifier   string
	Participants []ParticipantDefinition
}

// ParticipantDefinition describes one participant within a group.
type ParticipantDefinition struct {
	DisplayName string
	ExternalID  string
	Gender      *string
	Age         *int
}

// AgeCategoryDefinition describes one inclusive age band. Definition order is
// stored order, which decides which band wins when bands overlap.
type AgeCategoryDefinition struct {
	Name   string
	MinAge int
	MaxAge int
}

// ActivityDefinition describes one scored discipline.
type ActivityDefinition struct {
	Name           string
	Description    string
	EvaluationType model.EvaluationType
}

// CreatedEvent is the result of CreateEvent, carrying every created entity
// with its assigned id so callers can start submitting scores immediately.
type CreatedEvent struct {
	Event         model.Event
	Groups        []model.Group
	Participants  []model.Participant
	AgeCategories []model.AgeCategory
	Activities    []model.Activity
}

// CreateEvent validates the definition and persists the whole tree in
// definition order.
func (s *Service) CreateEvent(ctx context.Context, def EventDefinition) (CreatedEvent, error) {
	if strings.TrimSpace(def.Name) == "" {
		return CreatedEvent{}, ErrEmptyEventName
	}
	for _, a := range def.Activities {
		if !a.EvaluationType.Valid() {
			return CreatedEvent{}, fmt.Errorf("activity %q: %w: %q", a.Name, ErrInvalidEvaluationType, a.EvaluationType)
		}
	}

	event, err := s.store.CreateEvent(ctx, model.Event{
		Name:   def.Name,
		Status: model.StatusActive,
	})
	if err != nil {
		return CreatedEvent{}, fmt.Errorf("create event: %w", err)
	}

	out := CreatedEvent{Event: event}
	for _, gd := range def.Groups {
		group, err := s.store.CreateGroup(ctx, model.Group{
			EventID:    event.ID,
			Name:       gd.Name,
			Identifier: gd.Identifier,
		})
		if err != nil {
			return CreatedEvent{}, fmt.Errorf("create group %q: %w", gd.Name, err)
		}
		out.Groups = append(out.Groups, group)

		for _, pd := range gd.Participants {
			p, err := s.store.CreateParticipant(ctx, model.Participant{
				GroupID:     group.ID,
				DisplayName: pd.DisplayName,
				ExternalID:  pd.ExternalID,
				Gender:      pd.Gender,
				Age:         pd.Age,
			})
			if err != nil {
				return CreatedEvent{}, fmt.Errorf("create participant %q: %w", pd.DisplayName, err)
			}
			out.Participants = append(out.Participants, p)
		}
	}

	for _, cd := range def.AgeCategories {
		cat, err := s.store.CreateAgeCategory(ctx, model.AgeCategory{
			EventID: event.ID,
			Name:    cd.Name,
			MinAge:  cd.MinAge,
			MaxAge:  cd.MaxAge,
		})
		if err != nil {
			return CreatedEvent{}, fmt.Errorf("create age category %q: %w", cd.Name, err)
		}
		out.AgeCategories = append(out.AgeCategories, cat)
	}

	for _, ad := range def.Activities {
		activity, err := s.store.CreateActivity(ctx, model.Activity{
			EventID:        event.ID,
			Name:           ad.Name,
			Description:    ad.Description,
			EvaluationType: ad.EvaluationType,
		})
		if err != nil {
			return CreatedEvent{}, fmt.Errorf("create activity %q: %w", ad.Name, err)
		}
		out.Activities = append(out.Activities, activity)
	}

	s.log.Info(ctx, "event created",
		logger.Int64("eventID", event.ID),
		logger.String("name", event.Name),
		logger.Int("groups", len(out.Groups)),
		logger.Int("participants", len(out.Participants)),
		logger.Int("activities", len(out.Activities)),
	)
	return out, nil
}
