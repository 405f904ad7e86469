package repository

import (
	"context"
	"testing"

	"github.com/eventscore/rankd/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func seedStore(ctx context.Context, s Store) (model.Event, model.Group, []model.Participant, model.Activity) {
	ev, err := s.CreateEvent(ctx, model.Event{Name: "Sports Day", Status: model.StatusActive})
	So(err, ShouldBeNil)
	g, err := s.CreateGroup(ctx, model.Group{EventID: ev.ID, Name: "Red Team", Identifier: "red"})
	So(err, ShouldBeNil)

	gender := "F"
	age := 10
	p1, err := s.CreateParticipant(ctx, model.Participant{GroupID: g.ID, DisplayName: "Ada", Gender: &gender, Age: &age})
	So(err, ShouldBeNil)
	p2, err := s.CreateParticipant(ctx, model.Participant{GroupID: g.ID, DisplayName: "Ben"})
	So(err, ShouldBeNil)

	a, err := s.CreateActivity(ctx, model.Activity{EventID: ev.ID, Name: "Sprint", EvaluationType: model.NumericLow})
	So(err, ShouldBeNil)
	return ev, g, []model.Participant{p1, p2}, a
}

func TestMemStoreCreateAndRead(t *testing.T) {
	Convey("Given an in-memory store", t, func() {
		ctx := context.Background()
		s := NewMemStore()

		Convey("When creating an event tree", func() {
			ev, g, ps, a := seedStore(ctx, s)

			Convey("Then ids are assigned monotonically", func() {
				So(ev.ID, ShouldBeGreaterThan, 0)
				So(g.ID, ShouldBeGreaterThan, ev.ID)
				So(a.ID, ShouldBeGreaterThan, ps[1].ID)
			})

			Convey("Then the event can be read back", func() {
				got, err := s.Event(ctx, ev.ID)
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "Sports Day")
				So(got.CreatedAt.IsZero(), ShouldBeFalse)
			})

			Convey("Then the roster flattens groups with their names", func() {
				roster, err := s.Roster(ctx, ev.ID)
				So(err, ShouldBeNil)
				So(roster, ShouldHaveLength, 2)
				So(roster[ps[0].ID].GroupName, ShouldEqual, "Red Team")
				So(roster[ps[0].ID].Participant.DisplayName, ShouldEqual, "Ada")
			})

			Convey("Then activities list in creation order", func() {
				second, err := s.CreateActivity(ctx, model.Activity{EventID: ev.ID, Name: "Throw", EvaluationType: model.NumericHigh})
				So(err, ShouldBeNil)

				acts, err := s.Activities(ctx, ev.ID)
				So(err, ShouldBeNil)
				So(acts, ShouldHaveLength, 2)
				So(acts[0].ID, ShouldEqual, a.ID)
				So(acts[1].ID, ShouldEqual, second.ID)
			})

			Convey("Then age categories list in creation order", func() {
				_, err := s.CreateAgeCategory(ctx, model.AgeCategory{EventID: ev.ID, Name: "U12", MinAge: 0, MaxAge: 11})
				So(err, ShouldBeNil)
				_, err = s.CreateAgeCategory(ctx, model.AgeCategory{EventID: ev.ID, Name: "Open", MinAge: 12, MaxAge: 99})
				So(err, ShouldBeNil)

				cats, err := s.AgeCategories(ctx, ev.ID)
				So(err, ShouldBeNil)
				So(cats, ShouldHaveLength, 2)
				So(cats[0].Name, ShouldEqual, "U12")
				So(cats[1].Name, ShouldEqual, "Open")
			})
		})

		Convey("When referencing missing parents", func() {
			_, err := s.CreateGroup(ctx, model.Group{EventID: 999, Name: "X"})
			So(err, ShouldEqual, ErrEventNotFound)

			_, err = s.CreateParticipant(ctx, model.Participant{GroupID: 999, DisplayName: "X"})
			So(err, ShouldEqual, ErrGroupNotFound)

			_, err = s.Event(ctx, 999)
			So(err, ShouldEqual, ErrEventNotFound)

			_, err = s.Activity(ctx, 999)
			So(err, ShouldEqual, ErrActivityNotFound)
		})
	})
}

func TestMemStoreUpsertRecord(t *testing.T) {
	Convey("Given a seeded store", t, func() {
		ctx := context.Background()
		s := NewMemStore()
		ev, _, ps, a := seedStore(ctx, s)

		Convey("When inserting a record", func() {
			rec, err := s.UpsertRecord(ctx, model.ScoreRecord{ParticipantID: ps[0].ID, ActivityID: a.ID, ValueRaw: "12.5"})
			So(err, ShouldBeNil)
			So(rec.ID, ShouldBeGreaterThan, 0)
			So(rec.CreatedAt.IsZero(), ShouldBeFalse)

			Convey("And upserting the same pair again", func() {
				again, err := s.UpsertRecord(ctx, model.ScoreRecord{ParticipantID: ps[0].ID, ActivityID: a.ID, ValueRaw: "11.9", EvaluatorID: 7})
				So(err, ShouldBeNil)

				Convey("Then the row is overwritten in place", func() {
					So(again.ID, ShouldEqual, rec.ID)
					So(again.ValueRaw, ShouldEqual, "11.9")
					So(again.EvaluatorID, ShouldEqual, 7)

					recs, err := s.ActivityRecords(ctx, a.ID)
					So(err, ShouldBeNil)
					So(recs, ShouldHaveLength, 1)
				})
			})

			Convey("And a second participant's record", func() {
				_, err := s.UpsertRecord(ctx, model.ScoreRecord{ParticipantID: ps[1].ID, ActivityID: a.ID, ValueRaw: "13.0"})
				So(err, ShouldBeNil)

				Convey("Then both appear in insertion order", func() {
					recs, err := s.ActivityRecords(ctx, a.ID)
					So(err, ShouldBeNil)
					So(recs, ShouldHaveLength, 2)
					So(recs[0].ParticipantID, ShouldEqual, ps[0].ID)
					So(recs[1].ParticipantID, ShouldEqual, ps[1].ID)
				})

				Convey("Then EventRecords groups them by activity", func() {
					byActivity, err := s.EventRecords(ctx, ev.ID)
					So(err, ShouldBeNil)
					So(byActivity[a.ID], ShouldHaveLength, 2)
				})
			})
		})

		Convey("When the record references missing entities", func() {
			_, err := s.UpsertRecord(ctx, model.ScoreRecord{ParticipantID: ps[0].ID, ActivityID: 999, ValueRaw: "1"})
			So(err, ShouldEqual, ErrActivityNotFound)

			_, err = s.UpsertRecord(ctx, model.ScoreRecord{ParticipantID: 999, ActivityID: a.ID, ValueRaw: "1"})
			So(err, ShouldEqual, ErrParticipantNotFound)
		})

		Convey("When listing records of an unknown activity", func() {
			_, err := s.ActivityRecords(ctx, 999)
			So(err, ShouldEqual, ErrActivityNotFound)
		})
	})
}
