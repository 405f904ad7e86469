// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/eventscore/rankd/internal/app"
	"github.com/eventscore/rankd/internal/domain/model"
)

// EventsHandler handles event creation requests.
type EventsHandler struct {
	deps Dependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps Dependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// createEventRequest mirrors the OpenAPI schema for POST /events.
type createEventRequest struct {
	Name          string               `json:"name"`
	Groups        []groupRequest       `json:"groups"`
	AgeCategories []ageCategoryRequest `json:"age_categories"`
	Activities    []activityRequest    `json:"activities"`
}

type groupRequest struct {
	Name         string               `json:"name"`
	Identifier   string               `json:"identifier"`
	Participants []participantRequest `json:"participants"`
}

type participantRequest struct {
	DisplayName string  `json:"display_name"`
	ExternalID  string  `json:"external_id"`
	Gender      *string `json:"gender"`
	Age         *int    `json:"age"`
}

type ageCategoryRequest struct {
	Name   string `json:"name"`
	MinAge int    `json:"min_age"`
	MaxAge int    `json:"max_age"`
}

type activityRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	EvaluationType string `json:"evaluation_type"`
}

func (r createEventRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("missing name")
	}
	for _, a := range r.Activities {
		if strings.TrimSpace(a.Name) == "" {
			return errors.New("missing activity name")
		}
		if !model.EvaluationType(a.EvaluationType).Valid() {
			return errors.New("invalid evaluation_type: " + a.EvaluationType)
		}
	}
	for _, g := range r.Groups {
		if strings.TrimSpace(g.Name) == "" {
			return errors.New("missing group name")
		}
		for _, p := range g.Participants {
			if strings.TrimSpace(p.DisplayName) == "" {
				return errors.New("missing participant display_name")
			}
		}
	}
	return nil
}

func (r createEventRequest) toDefinition() service.EventDefinition {
	def := service.EventDefinition{Name: r.Name}
	for _, g := range r.Groups {
		gd := service.GroupDefinition{Name: g.Name, Identifier: g.Identifier}
		for _, p := range g.Participants {
			gd.Participants = append(gd.Participants, service.ParticipantDefinition{
				DisplayName: p.DisplayName,
				ExternalID:  p.ExternalID,
				Gender:      p.Gender,
				Age:         p.Age,
			})
		}
		def.Groups = append(def.Groups, gd)
	}
	for _, c := range r.AgeCategories {
		def.AgeCategories = append(def.AgeCategories, service.AgeCategoryDefinition{
			Name:   c.Name,
			MinAge: c.MinAge,
			MaxAge: c.MaxAge,
		})
	}
	for _, a := range r.Activities {
		def.Activities = append(def.Activities, service.ActivityDefinition{
			Name:           a.Name,
			Description:    a.Description,
			EvaluationType: model.EvaluationType(a.EvaluationType),
		})
	}
	return def
}

// createEventResponse carries every created entity with its assigned id.
type createEventResponse struct {
	EventID       int64                 `json:"event_id"`
	Name          string                `json:"name"`
	Status        string                `json:"status"`
	Groups        []groupResponse       `json:"groups"`
	AgeCategories []ageCategoryResponse `json:"age_categories"`
	Activities    []activityResponse    `json:"activities"`
}

type groupResponse struct {
	ID           int64                 `json:"id"`
	Name         string                `json:"name"`
	Identifier   string                `json:"identifier"`
	Participants []participantResponse `json:"participants"`
}

type participantResponse struct {
	ID          int64   `json:"id"`
	DisplayName string  `json:"display_name"`
	ExternalID  string  `json:"external_id"`
	Gender      *string `json:"gender"`
	Age         *int    `json:"age"`
}

type ageCategoryResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	MinAge int    `json:"min_age"`
	MaxAge int    `json:"max_age"`
}

type activityResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	EvaluationType string `json:"evaluation_type"`
}

func toCreateEventResponse(created service.CreatedEvent) createEventResponse {
	resp := createEventResponse{
		EventID: created.Event.ID,
		Name:    created.Event.Name,
		Status:  string(created.Event.Status),
	}
	membersByGroup := make(map[int64][]participantResponse)
	for _, p := range created.Participants {
		membersByGroup[p.GroupID] = append(membersByGroup[p.GroupID], participantResponse{
			ID:          p.ID,
			DisplayName: p.DisplayName,
			ExternalID:  p.ExternalID,
			Gender:      p.Gender,
			Age:         p.Age,
		})
	}
	for _, g := range created.Groups {
		resp.Groups = append(resp.Groups, groupResponse{
			ID:           g.ID,
			Name:         g.Name,
			Identifier:   g.Identifier,
			Participants: membersByGroup[g.ID],
		})
	}
	for _, c := range created.AgeCategories {
		resp.AgeCategories = append(resp.AgeCategories, ageCategoryResponse{
			ID:     c.ID,
			Name:   c.Name,
			MinAge: c.MinAge,
			MaxAge: c.MaxAge,
		})
	}
	for _, a := range created.Activities {
		resp.Activities = append(resp.Activities, activityResponse{
			ID:             a.ID,
			Name:           a.Name,
			EvaluationType: string(a.EvaluationType),
		})
	}
	return resp
}

// HandlePostEvent handles POST /events requests.
func (h *EventsHandler) HandlePostEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_event"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	created, err := h.deps.CreateEvent(r.Context(), req.toDefinition())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCreateEventResponse(created))
}
