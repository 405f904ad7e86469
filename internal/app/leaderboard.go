package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/eventscore/rankd/internal/adapters/cache"
	"github.com/eventscore/rankd/internal/domain/ranking"
	"github.com/eventscore/rankd/internal/domain/types"
	"github.com/eventscore/rankd/pkg/logger"
	"github.com/eventscore/rankd/pkg/metrics"
)

// minAge used for ordering categories whose name is not a configured band
// ("All", "Unassigned"); they sort after every real band.
const unknownMinAge = 9999

// Leaderboard returns the full leaderboard view for an event through the
// read-through cache. Cache failures of any kind degrade to a fresh
// computation; only a missing event is an error.
func (s *Service) Leaderboard(ctx context.Context, eventID int64) (types.LeaderboardView, error) {
	key := leaderboardKey(eventID)

	if buf, err := s.cache.Get(ctx, key); err == nil {
		var view types.LeaderboardView
		if err := json.Unmarshal(buf, &view); err == nil {
			metrics.RecordCacheHit()
			return view, nil
		}
		s.log.Warn(ctx, "discarding undecodable leaderboard snapshot",
			logger.Int64("eventID", eventID),
			logger.Error(err),
		)
		metrics.RecordCacheError()
	} else if errors.Is(err, cache.ErrMiss) {
		metrics.RecordCacheMiss()
	} else {
		s.log.Warn(ctx, "leaderboard cache read failed",
			logger.Int64("eventID", eventID),
			logger.Error(err),
		)
		metrics.RecordCacheError()
	}

	view, err := s.computeLeaderboard(ctx, eventID)
	if err != nil {
		return types.LeaderboardView{}, err
	}

	if buf, err := json.Marshal(view); err == nil {
		if err := s.cache.SetWithTTL(ctx, key, buf, s.cacheTTL); err != nil {
			s.log.Warn(ctx, "leaderboard cache write failed",
				logger.Int64("eventID", eventID),
				logger.Error(err),
			)
			metrics.RecordCacheError()
		}
	}
	return view, nil
}

// computeLeaderboard recomputes the view from storage: a fixed number of
// bulk reads, then one ranking pass per activity.
func (s *Service) computeLeaderboard(ctx context.Context, eventID int64) (types.LeaderboardView, error) {
	start := time.Now()
	defer func() {
		metrics.RecordLeaderboardComputation()
		metrics.RecordLeaderboardComputeDuration(float64(time.Since(start).Milliseconds()))
	}()

	event, err := s.store.Event(ctx, eventID)
	if err != nil {
		return types.LeaderboardView{}, err
	}
	categories, err := s.store.AgeCategories(ctx, eventID)
	if err != nil {
		return types.LeaderboardView{}, err
	}
	activities, err := s.store.Activities(ctx, eventID)
	if err != nil {
		return types.LeaderboardView{}, err
	}
	roster, err := s.store.Roster(ctx, eventID)
	if err != nil {
		return types.LeaderboardView{}, err
	}
	recordsByActivity, err := s.store.EventRecords(ctx, eventID)
	if err != nil {
		return types.LeaderboardView{}, err
	}

	hasCategories := len(categories) > 0
	// Duplicate names keep the last configured band's min age.
	minAges := make(map[string]int, len(categories))
	for _, cat := range categories {
		minAges[cat.Name] = cat.MinAge
	}

	boards := make([]types.ActivityLeaderboard, 0, len(activities))
	for _, activity := range activities {
		cohorts := s.ranker.Rank(ctx, ranking.Input{
			Records:        recordsByActivity[activity.ID],
			EvaluationType: activity.EvaluationType,
			Categories:     categories,
			HasCategories:  hasCategories,
			Roster:         roster,
		})

		rankings := make([]types.CategoryRanking, 0, len(cohorts))
		for c, entries := range cohorts {
			rows := make([]types.ParticipantRank, len(entries))
			for i, e := range entries {
				rows[i] = types.ParticipantRank{
					Rank:          e.Rank,
					ParticipantID: e.Participant.ID,
					DisplayName:   e.Participant.DisplayName,
					Gender:        e.Participant.Gender,
					Age:           e.Participant.Age,
					Value:         e.ValueRaw,
					GroupName:     e.GroupName,
				}
			}
			rankings = append(rankings, types.CategoryRanking{
				Gender:          c.Gender,
				AgeCategoryName: c.AgeCategory,
				Participants:    rows,
			})
		}
		sort.SliceStable(rankings, func(i, j int) bool {
			if rankings[i].Gender != rankings[j].Gender {
				return rankings[i].Gender < rankings[j].Gender
			}
			iAge := categoryMinAge(minAges, rankings[i].AgeCategoryName)
			jAge := categoryMinAge(minAges, rankings[j].AgeCategoryName)
			if iAge != jAge {
				return iAge < jAge
			}
			// Bands can share a min age; the name keeps the order stable
			// across recomputations of the same input.
			return rankings[i].AgeCategoryName < rankings[j].AgeCategoryName
		})

		boards = append(boards, types.ActivityLeaderboard{
			ActivityID:     activity.ID,
			ActivityName:   activity.Name,
			EvaluationType: string(activity.EvaluationType),
			Categories:     rankings,
		})
	}

	return types.LeaderboardView{
		EventID:          event.ID,
		EventName:        event.Name,
		HasAgeCategories: hasCategories,
		Activities:       boards,
	}, nil
}

func categoryMinAge(minAges map[string]int, name string) int {
	if age, ok := minAges[name]; ok {
		return age
	}
	return unknownMinAge
}
