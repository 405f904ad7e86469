package ranking

import (
	"context"
	"testing"

	"github.com/eventscore/rankd/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// roster builds a single-group roster from (id, gender, age) triples.
func testRoster(entries ...model.Participant) model.Roster {
	r := make(model.Roster, len(entries))
	for _, p := range entries {
		r[p.ID] = model.RosterEntry{Participant: p, GroupName: "Group A"}
	}
	return r
}

func record(participantID int64, value string) model.ScoreRecord {
	return model.ScoreRecord{ParticipantID: participantID, ActivityID: 1, ValueRaw: value}
}

func TestRankCompetitionTies(t *testing.T) {
	Convey("Given an activity ranked higher-is-better", t, func() {
		ranker := New()
		roster := testRoster(
			model.Participant{ID: 1, DisplayName: "A", Gender: strPtr("M")},
			model.Participant{ID: 2, DisplayName: "B", Gender: strPtr("M")},
			model.Participant{ID: 3, DisplayName: "C", Gender: strPtr("M")},
			model.Participant{ID: 4, DisplayName: "D", Gender: strPtr("M")},
		)

		Convey("When two entries tie at the top", func() {
			out := ranker.Rank(context.Background(), Input{
				Records: []model.ScoreRecord{
					record(1, "10"), record(2, "10"), record(3, "8"), record(4, "7"),
				},
				EvaluationType: model.NumericHigh,
				Roster:         roster,
			})

			Convey("Then ranks follow the 1-1-3-4 pattern", func() {
				entries := out[Cohort{Gender: "M", AgeCategory: "All"}]
				So(entries, ShouldHaveLength, 4)
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[1].Rank, ShouldEqual, 1)
				So(entries[2].Rank, ShouldEqual, 3)
				So(entries[3].Rank, ShouldEqual, 4)
			})
		})

		Convey("When three entries tie in the middle", func() {
			out := ranker.Rank(context.Background(), Input{
				Records: []model.ScoreRecord{
					record(1, "10"), record(2, "9"), record(3, "9"), record(4, "9"),
				},
				EvaluationType: model.NumericHigh,
				Roster:         roster,
			})

			Convey("Then all tied entries share the rank after the leader", func() {
				entries := out[Cohort{Gender: "M", AgeCategory: "All"}]
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[1].Rank, ShouldEqual, 2)
				So(entries[2].Rank, ShouldEqual, 2)
				So(entries[3].Rank, ShouldEqual, 2)
			})
		})

		Convey("When values are equal numerically but differ textually", func() {
			out := ranker.Rank(context.Background(), Input{
				Records: []model.ScoreRecord{
					record(1, "10"), record(2, "10.0"), record(3, "9"),
				},
				EvaluationType: model.NumericHigh,
				Roster:         roster,
			})

			Convey("Then they still tie on the parsed value", func() {
				entries := out[Cohort{Gender: "M", AgeCategory: "All"}]
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[1].Rank, ShouldEqual, 1)
				So(entries[2].Rank, ShouldEqual, 3)
			})
		})
	})
}

func TestRankLowerIsBetter(t *testing.T) {
	Convey("Given a timed activity where lower is better", t, func() {
		ranker := New()
		roster := testRoster(
			model.Participant{ID: 1, DisplayName: "A", Gender: strPtr("F")},
			model.Participant{ID: 2, DisplayName: "B", Gender: strPtr("F")},
			model.Participant{ID: 3, DisplayName: "C", Gender: strPtr("F")},
		)

		out := ranker.Rank(context.Background(), Input{
			Records: []model.ScoreRecord{
				record(1, "12.9"), record(2, "11.2"), record(3, "14.1"),
			},
			EvaluationType: model.NumericLow,
			Roster:         roster,
		})

		Convey("Then the fastest time ranks first", func() {
			entries := out[Cohort{Gender: "F", AgeCategory: "All"}]
			So(entries[0].Participant.DisplayName, ShouldEqual, "B")
			So(entries[0].Rank, ShouldEqual, 1)
			So(entries[1].Participant.DisplayName, ShouldEqual, "A")
			So(entries[2].Participant.DisplayName, ShouldEqual, "C")
		})
	})
}

func TestRankUnparseableValues(t *testing.T) {
	Convey("Given records with unparseable values", t, func() {
		ranker := New()
		roster := testRoster(
			model.Participant{ID: 1, DisplayName: "A", Gender: strPtr("M")},
			model.Participant{ID: 2, DisplayName: "B", Gender: strPtr("M")},
			model.Participant{ID: 3, DisplayName: "C", Gender: strPtr("M")},
		)

		out := ranker.Rank(context.Background(), Input{
			Records: []model.ScoreRecord{
				record(1, "DNF"), record(2, "5"), record(3, "abstained"),
			},
			EvaluationType: model.NumericHigh,
			Roster:         roster,
		})

		Convey("Then parseable values rank ahead and unparseable ones tie last", func() {
			entries := out[Cohort{Gender: "M", AgeCategory: "All"}]
			So(entries, ShouldHaveLength, 3)
			So(entries[0].Participant.DisplayName, ShouldEqual, "B")
			So(entries[0].Rank, ShouldEqual, 1)
			So(entries[1].Rank, ShouldEqual, 2)
			So(entries[2].Rank, ShouldEqual, 2)
		})
	})
}

func TestRankCohortAssignment(t *testing.T) {
	Convey("Given participants with mixed genders and ages", t, func() {
		ranker := New()
		categories := []model.AgeCategory{
			{Name: "U12", MinAge: 0, MaxAge: 11},
			{Name: "Open", MinAge: 12, MaxAge: 99},
		}
		roster := testRoster(
			model.Participant{ID: 1, DisplayName: "A", Gender: strPtr("F"), Age: intPtr(10)},
			model.Participant{ID: 2, DisplayName: "B", Gender: strPtr("F"), Age: intPtr(15)},
			model.Participant{ID: 3, DisplayName: "C", Gender: strPtr("M"), Age: intPtr(10)},
			model.Participant{ID: 4, DisplayName: "D", Age: intPtr(10)},
			model.Participant{ID: 5, DisplayName: "E", Gender: strPtr("F")},
		)

		out := ranker.Rank(context.Background(), Input{
			Records: []model.ScoreRecord{
				record(1, "10"), record(2, "9"), record(3, "8"), record(4, "7"), record(5, "6"),
			},
			EvaluationType: model.NumericHigh,
			Categories:     categories,
			HasCategories:  true,
			Roster:         roster,
		})

		Convey("Then each (gender, category) pair ranks independently", func() {
			So(out, ShouldHaveLength, 5)
			So(out[Cohort{Gender: "F", AgeCategory: "U12"}], ShouldHaveLength, 1)
			So(out[Cohort{Gender: "F", AgeCategory: "Open"}], ShouldHaveLength, 1)
			So(out[Cohort{Gender: "M", AgeCategory: "U12"}], ShouldHaveLength, 1)
			So(out[Cohort{Gender: "?", AgeCategory: "U12"}], ShouldHaveLength, 1)
			So(out[Cohort{Gender: "F", AgeCategory: "Unassigned"}], ShouldHaveLength, 1)
		})

		Convey("Then every cohort leader has rank 1", func() {
			for _, entries := range out {
				So(entries[0].Rank, ShouldEqual, 1)
			}
		})
	})
}

func TestRankStaleRecords(t *testing.T) {
	Convey("Given a record referencing a participant not on the roster", t, func() {
		ranker := New()
		roster := testRoster(
			model.Participant{ID: 1, DisplayName: "A", Gender: strPtr("M")},
		)

		out := ranker.Rank(context.Background(), Input{
			Records: []model.ScoreRecord{
				record(1, "5"), record(42, "99"),
			},
			EvaluationType: model.NumericHigh,
			Roster:         roster,
		})

		Convey("Then the stale record is dropped silently", func() {
			entries := out[Cohort{Gender: "M", AgeCategory: "All"}]
			So(entries, ShouldHaveLength, 1)
			So(entries[0].Participant.ID, ShouldEqual, 1)
		})
	})
}

func TestRankEmptyInput(t *testing.T) {
	Convey("Given no records", t, func() {
		ranker := New()

		out := ranker.Rank(context.Background(), Input{
			EvaluationType: model.NumericHigh,
			Roster:         model.Roster{},
		})

		Convey("Then the result is empty, not nil rows", func() {
			So(out, ShouldHaveLength, 0)
		})
	})
}

func TestRankCarriesGroupName(t *testing.T) {
	Convey("Given a roster entry with a group name", t, func() {
		ranker := New()
		roster := model.Roster{
			1: {Participant: model.Participant{ID: 1, DisplayName: "A", Gender: strPtr("F")}, GroupName: "Red Team"},
		}

		out := ranker.Rank(context.Background(), Input{
			Records:        []model.ScoreRecord{record(1, "3")},
			EvaluationType: model.NumericHigh,
			Roster:         roster,
		})

		Convey("Then the group name flows into the entry", func() {
			entries := out[Cohort{Gender: "F", AgeCategory: "All"}]
			So(entries[0].GroupName, ShouldEqual, "Red Team")
			So(entries[0].ValueRaw, ShouldEqual, "3")
		})
	})
}
