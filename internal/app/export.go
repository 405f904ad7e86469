package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/eventscore/rankd/internal/domain/ranking"
	"github.com/eventscore/rankd/pkg/metrics"
)

// exportHeader is the fixed CSV header row.
var exportHeader = []string{"rank", "podium", "activity", "gender", "age_category", "participant_name", "group_name", "age", "score"}

// Podium ranks.
const (
	rankGold   = 1
	rankSilver = 2
	rankBronze = 3
)

// WriteCSV streams the podium-labeled result export for an event to w.
// It reuses the same per-activity rankings as the leaderboard view but never
// touches the cache: exports always reflect the latest committed data.
//
// Row order: activities in stored order; within an activity, cohorts in
// ascending (gender, age category name) order. This differs from the
// leaderboard view's min-age category ordering on purpose.
func (s *Service) WriteCSV(ctx context.Context, eventID int64, w io.Writer) error {
	if _, err := s.store.Event(ctx, eventID); err != nil {
		return err
	}
	categories, err := s.store.AgeCategories(ctx, eventID)
	if err != nil {
		return err
	}
	activities, err := s.store.Activities(ctx, eventID)
	if err != nil {
		return err
	}
	roster, err := s.store.Roster(ctx, eventID)
	if err != nil {
		return err
	}
	recordsByActivity, err := s.store.EventRecords(ctx, eventID)
	if err != nil {
		return err
	}
	hasCategories := len(categories) > 0

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	rows := 0
	for _, activity := range activities {
		cohorts := s.ranker.Rank(ctx, ranking.Input{
			Records:        recordsByActivity[activity.ID],
			EvaluationType: activity.EvaluationType,
			Categories:     categories,
			HasCategories:  hasCategories,
			Roster:         roster,
		})

		keys := make([]ranking.Cohort, 0, len(cohorts))
		for c := range cohorts {
			keys = append(keys, c)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].Gender != keys[j].Gender {
				return keys[i].Gender < keys[j].Gender
			}
			return keys[i].AgeCategory < keys[j].AgeCategory
		})

		for _, c := range keys {
			for _, e := range cohorts[c] {
				age := ""
				if e.Participant.Age != nil {
					age = strconv.Itoa(*e.Participant.Age)
				}
				row := []string{
					strconv.Itoa(e.Rank),
					podiumLabel(e.Rank),
					activity.Name,
					c.Gender,
					c.AgeCategory,
					e.Participant.DisplayName,
					e.GroupName,
					age,
					e.ValueRaw,
				}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("write csv row: %w", err)
				}
				rows++
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	metrics.RecordExportRows(rows)
	return nil
}

// podiumLabel maps ranks 1-3 to their medal names; everything else is blank.
func podiumLabel(rank int) string {
	switch rank {
	case rankGold:
		return "Gold"
	case rankSilver:
		return "Silver"
	case rankBronze:
		return "Bronze"
	}
	return ""
}
