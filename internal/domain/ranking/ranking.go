// Package ranking buckets raw score records into cohorts and assigns
// competition-style ranks within each cohort.
package ranking

import (
	"context"
	"sort"

	"github.com/eventscore/rankd/internal/domain/cohort"
	"github.com/eventscore/rankd/internal/domain/model"
	"github.com/eventscore/rankd/internal/domain/scoring"
	"github.com/eventscore/rankd/pkg/logger"
	"github.com/eventscore/rankd/pkg/metrics"
)

// Cohort identifies one independently ranked bucket within an activity.
type Cohort struct {
	Gender      string
	AgeCategory string
}

// Entry is one ranked row. Entries are derived per computation and never stored.
type Entry struct {
	Rank        int
	Participant model.Participant
	ValueRaw    string
	GroupName   string
}

// Input carries everything one ranking computation needs. Records referencing
// participants missing from Roster are dropped, not errors: the participant
// may have been deleted while scores were in flight.
type Input struct {
	Records        []model.ScoreRecord
	EvaluationType model.EvaluationType
	Categories     []model.AgeCategory
	HasCategories  bool
	Roster         model.Roster
}

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithLogger sets a custom logger for the ranker.
func WithLogger(log logger.Logger) Option {
	return func(r *Ranker) {
		if log != nil {
			r.log = log
		}
	}
}

// Ranker computes cohort rankings. It holds no mutable state and is safe for
// concurrent use; every call operates on the snapshot passed in.
type Ranker struct {
	log logger.Logger
}

// New constructs a Ranker.
func New(opts ...Option) *Ranker {
	r := &Ranker{log: logger.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// keyed pairs an entry with its precomputed sort key so the comparator runs
// once per record.
type keyed struct {
	entry Entry
	key   scoring.Key
}

// Rank groups records into (gender, age-category) cohorts, sorts each cohort
// by the evaluation type's comparator, and assigns "1224" competition ranks.
// Ties are detected by comparing each entry's key to the immediately preceding
// entry's key, not to the key that opened the tie group.
func (r *Ranker) Rank(ctx context.Context, in Input) map[Cohort][]Entry {
	buckets := make(map[Cohort][]keyed)
	for _, rec := range in.Records {
		ros, ok := in.Roster[rec.ParticipantID]
		if !ok {
			r.log.Debug(ctx, "dropping score record with unknown participant",
				logger.Int64("participantID", rec.ParticipantID),
				logger.Int64("activityID", rec.ActivityID),
			)
			metrics.RecordStaleRecordDropped()
			continue
		}
		key := scoring.SortKey(in.EvaluationType, rec.ValueRaw)
		if key.Unparseable {
			metrics.RecordUnparseableValue()
		}
		c := Cohort{
			Gender:      cohort.Gender(ros.Participant.Gender),
			AgeCategory: cohort.AgeCategoryName(ros.Participant.Age, in.Categories, in.HasCategories),
		}
		buckets[c] = append(buckets[c], keyed{
			entry: Entry{
				Participant: ros.Participant,
				ValueRaw:    rec.ValueRaw,
				GroupName:   ros.GroupName,
			},
			key: key,
		})
	}

	out := make(map[Cohort][]Entry, len(buckets))
	ranked := 0
	for c, entries := range buckets {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].key.Less(entries[j].key)
		})
		rows := make([]Entry, len(entries))
		rank := 1
		for i, e := range entries {
			if i > 0 && !e.key.Equal(entries[i-1].key) {
				rank = i + 1
			}
			row := e.entry
			row.Rank = rank
			rows[i] = row
		}
		out[c] = rows
		ranked += len(rows)
	}
	metrics.RecordRecordsRanked(ranked)
	return out
}
