package service

import (
	"context"

	"github.com/eventscore/rankd/internal/domain/model"
	"github.com/eventscore/rankd/pkg/logger"
	"github.com/eventscore/rankd/pkg/metrics"
)

// SubmitScore validates the target activity, commits the record, and evicts
// the owning event's cached leaderboard before returning. Resubmitting the
// same (participant, activity) pair overwrites the previous value.
func (s *Service) SubmitScore(ctx context.Context, rec model.ScoreRecord) (model.ScoreRecord, error) {
	activity, err := s.store.Activity(ctx, rec.ActivityID)
	if err != nil {
		metrics.RecordScoreSubmissionError()
		return model.ScoreRecord{}, err
	}

	stored, err := s.store.UpsertRecord(ctx, rec)
	if err != nil {
		metrics.RecordScoreSubmissionError()
		return model.ScoreRecord{}, err
	}

	// Evict after commit so the next read cannot resurrect the old snapshot.
	s.invalidate(ctx, activity.EventID)
	metrics.RecordScoreSubmission()

	s.log.Debug(ctx, "score submitted",
		logger.Int64("recordID", stored.ID),
		logger.Int64("participantID", stored.ParticipantID),
		logger.Int64("activityID", stored.ActivityID),
	)
	return stored, nil
}

// SubmitScores commits a batch of records sequentially and stops at the first
// failure. Events touched by committed records are still invalidated before
// the error is returned, so partial progress is never served stale.
func (s *Service) SubmitScores(ctx context.Context, recs []model.ScoreRecord) ([]model.ScoreRecord, error) {
	if len(recs) == 0 {
		return nil, ErrNoRecords
	}

	stored := make([]model.ScoreRecord, 0, len(recs))
	touched := make(map[int64]struct{})
	var firstErr error

	for _, rec := range recs {
		activity, err := s.store.Activity(ctx, rec.ActivityID)
		if err != nil {
			metrics.RecordScoreSubmissionError()
			firstErr = err
			break
		}
		committed, err := s.store.UpsertRecord(ctx, rec)
		if err != nil {
			metrics.RecordScoreSubmissionError()
			firstErr = err
			break
		}
		touched[activity.EventID] = struct{}{}
		metrics.RecordScoreSubmission()
		stored = append(stored, committed)
	}

	for eventID := range touched {
		s.invalidate(ctx, eventID)
	}
	if firstErr != nil {
		return stored, firstErr
	}
	return stored, nil
}

// ActivityRecords returns every stored record for one activity.
func (s *Service) ActivityRecords(ctx context.Context, activityID int64) ([]model.ScoreRecord, error) {
	return s.store.ActivityRecords(ctx, activityID)
}
