// Package seed generates demo events and loads them into a running service
// over its HTTP API.
package seed

import "time"

// Config holds configuration for a seed run.
type Config struct {
	BaseURL       string        // Base URL of the service
	Groups        int           // Number of groups to create
	GroupSize     int           // Participants per group
	Activities    int           // Number of activities to create
	Timeout       time.Duration // HTTP request timeout
	Verbose       bool          // Enable verbose logging
	EventName     string        // Name of the generated event
	AgeCategories bool          // Whether to configure age category bands
}

// Stats holds the outcome of a seed run.
type Stats struct {
	EventID          int64
	Participants     int
	RecordsSubmitted int
	StartTime        time.Time
	Duration         time.Duration
}

// Wire types mirroring the service API schemas.

type eventRequest struct {
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

type eventResponse struct {
	EventID int64  `json:"event_id"`
	Name    string `json:"name"`
	Groups  []struct {
		ID           int64  `json:"id"`
		Name         string `json:"name"`
		Participants []struct {
			ID          int64  `json:"id"`
			DisplayName string `json:"display_name"`
		} `json:"participants"`
	} `json:"groups"`
	Activities []struct {
		ID             int64  `json:"id"`
		Name           string `json:"name"`
		EvaluationType string `json:"evaluation_type"`
	} `json:"activities"`
}

type recordRequest struct {
	ParticipantID int64  `json:"participant_id"`
	ActivityID    int64  `json:"activity_id"`
	Value         string `json:"value"`
	EvaluatorID   int64  `json:"evaluator_id"`
}

type bulkRecordsRequest struct {
	Records []recordRequest `json:"records"`
}

type bulkRecordsResponse struct {
	Submitted int `json:"submitted"`
}
