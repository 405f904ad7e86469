// Package types contains the HTTP-facing view shapes shared across the application.
package types

// ParticipantRank is one ranked row inside a category.
type ParticipantRank struct {
	Rank          int     `json:"rank"`
	ParticipantID int64   `json:"participant_id"`
	DisplayName   string  `json:"display_name"`
	Gender        *string `json:"gender"`
	Age           *int    `json:"age"`
	Value         string  `json:"value"`
	GroupName     string  `json:"group_name"`
}

// CategoryRanking is one (gender, age category) cohort's ordered ranking.
type CategoryRanking struct {
	Gender          string            `json:"gender"`
	AgeCategoryName string            `json:"age_category_name"`
	Participants    []ParticipantRank `json:"participants"`
}

// ActivityLeaderboard is the full ranking of one activity.
type ActivityLeaderboard struct {
	ActivityID     int64             `json:"activity_id"`
	ActivityName   string            `json:"activity_name"`
	EvaluationType string            `json:"evaluation_type"`
	Categories     []CategoryRanking `json:"categories"`
}

// LeaderboardView is the assembled per-event leaderboard response. Snapshots
// of this shape are what the cache stores.
type LeaderboardView struct {
	EventID          int64                 `json:"event_id"`
	EventName        string                `json:"event_name"`
	HasAgeCategories bool                  `json:"has_age_categories"`
	Activities       []ActivityLeaderboard `json:"activities"`
}
