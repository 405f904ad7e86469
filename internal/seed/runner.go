package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/eventscore/rankd/pkg/logger"
)

// Run generates a demo event, loads it through the HTTP API, and fetches the
// resulting leaderboard once as a smoke check.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	log := logger.Get()
	stats := &Stats{StartTime: time.Now()}
	client := newHTTPClient(cfg.Timeout)

	log.Info(ctx, "seeding event",
		logger.String("url", cfg.BaseURL),
		logger.Int("groups", cfg.Groups),
		logger.Int("groupSize", cfg.GroupSize),
		logger.Int("activities", cfg.Activities),
	)

	def := generateEvent(cfg)
	var created eventResponse
	if err := client.postJSON(ctx, cfg.BaseURL+"/events", def, &created); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	stats.EventID = created.EventID
	for _, g := range created.Groups {
		stats.Participants += len(g.Participants)
	}
	log.Info(ctx, "event created",
		logger.Int64("eventID", created.EventID),
		logger.Int("participants", stats.Participants),
	)

	// One record per (participant, activity) pair, submitted activity by
	// activity so each batch exercises the bulk endpoint.
	for _, activity := range created.Activities {
		batch := bulkRecordsRequest{}
		for _, g := range created.Groups {
			for _, p := range g.Participants {
				batch.Records = append(batch.Records, recordRequest{
					ParticipantID: p.ID,
					ActivityID:    activity.ID,
					Value:         generateValue(activity.EvaluationType),
				})
			}
		}
		var resp bulkRecordsResponse
		if err := client.postJSON(ctx, cfg.BaseURL+"/records/bulk", batch, &resp); err != nil {
			return nil, fmt.Errorf("submit records for %s: %w", activity.Name, err)
		}
		stats.RecordsSubmitted += resp.Submitted
		if cfg.Verbose {
			log.Info(ctx, "records submitted",
				logger.String("activity", activity.Name),
				logger.Int("count", resp.Submitted),
			)
		}
	}

	// Smoke check: the leaderboard must be computable after the load.
	var view map[string]any
	url := fmt.Sprintf("%s/events/%d/leaderboard", cfg.BaseURL, created.EventID)
	if err := client.getJSON(ctx, url, &view); err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}

	stats.Duration = time.Since(stats.StartTime)
	log.Info(ctx, "seed completed",
		logger.Int64("eventID", stats.EventID),
		logger.Int("records", stats.RecordsSubmitted),
		logger.Duration("duration", stats.Duration),
	)
	return stats, nil
}
