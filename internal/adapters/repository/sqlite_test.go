package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/eventscore/rankd/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "rankd.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	Convey("Given a sqlite store", t, func() {
		ctx := context.Background()
		s := openTestSQLite(t)

		Convey("When creating an event tree", func() {
			ev, _, ps, a := seedStore(ctx, s)

			Convey("Then the event reads back with its fields intact", func() {
				got, err := s.Event(ctx, ev.ID)
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "Sports Day")
				So(got.Status, ShouldEqual, model.StatusActive)
			})

			Convey("Then nullable participant fields survive the round trip", func() {
				roster, err := s.Roster(ctx, ev.ID)
				So(err, ShouldBeNil)

				ada := roster[ps[0].ID].Participant
				So(ada.Gender, ShouldNotBeNil)
				So(*ada.Gender, ShouldEqual, "F")
				So(*ada.Age, ShouldEqual, 10)

				ben := roster[ps[1].ID].Participant
				So(ben.Gender, ShouldBeNil)
				So(ben.Age, ShouldBeNil)
			})

			Convey("Then upserts overwrite on the (participant, activity) pair", func() {
				rec, err := s.UpsertRecord(ctx, model.ScoreRecord{ParticipantID: ps[0].ID, ActivityID: a.ID, ValueRaw: "12.5"})
				So(err, ShouldBeNil)

				again, err := s.UpsertRecord(ctx, model.ScoreRecord{ParticipantID: ps[0].ID, ActivityID: a.ID, ValueRaw: "11.9"})
				So(err, ShouldBeNil)
				So(again.ID, ShouldEqual, rec.ID)

				recs, err := s.ActivityRecords(ctx, a.ID)
				So(err, ShouldBeNil)
				So(recs, ShouldHaveLength, 1)
				So(recs[0].ValueRaw, ShouldEqual, "11.9")
			})

			Convey("Then missing references surface the shared sentinels", func() {
				_, err := s.Event(ctx, 999)
				So(err, ShouldEqual, ErrEventNotFound)

				_, err = s.UpsertRecord(ctx, model.ScoreRecord{ParticipantID: 999, ActivityID: a.ID, ValueRaw: "1"})
				So(err, ShouldEqual, ErrParticipantNotFound)

				_, err = s.UpsertRecord(ctx, model.ScoreRecord{ParticipantID: ps[0].ID, ActivityID: 999, ValueRaw: "1"})
				So(err, ShouldEqual, ErrActivityNotFound)
			})
		})
	})
}
