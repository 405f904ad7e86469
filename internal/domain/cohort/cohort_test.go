package cohort

import (
	"testing"

	"github.com/eventscore/rankd/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestAgeCategoryName(t *testing.T) {
	Convey("Given an event's age categories", t, func() {
		categories := []model.AgeCategory{
			{Name: "U10", MinAge: 0, MaxAge: 9},
			{Name: "U14", MinAge: 8, MaxAge: 13},
			{Name: "Open", MinAge: 14, MaxAge: 99},
		}

		Convey("When the event has no categories at all", func() {
			So(AgeCategoryName(intPtr(11), nil, false), ShouldEqual, LabelAll)
			So(AgeCategoryName(nil, nil, false), ShouldEqual, LabelAll)
		})

		Convey("When the participant's age is unknown", func() {
			So(AgeCategoryName(nil, categories, true), ShouldEqual, LabelUnassigned)
		})

		Convey("When the age falls inside exactly one band", func() {
			So(AgeCategoryName(intPtr(12), categories, true), ShouldEqual, "U14")
			So(AgeCategoryName(intPtr(20), categories, true), ShouldEqual, "Open")
		})

		Convey("When bands overlap", func() {
			Convey("Then the first band in stored order wins", func() {
				So(AgeCategoryName(intPtr(9), categories, true), ShouldEqual, "U10")
			})
		})

		Convey("When the band bounds are hit exactly", func() {
			So(AgeCategoryName(intPtr(0), categories, true), ShouldEqual, "U10")
			So(AgeCategoryName(intPtr(14), categories, true), ShouldEqual, "Open")
			So(AgeCategoryName(intPtr(99), categories, true), ShouldEqual, "Open")
		})

		Convey("When no band contains the age", func() {
			So(AgeCategoryName(intPtr(120), categories, true), ShouldEqual, LabelUnassigned)
		})
	})
}

func TestGender(t *testing.T) {
	Convey("Given participant gender values", t, func() {
		Convey("When the gender is set", func() {
			So(Gender(strPtr("F")), ShouldEqual, "F")
			So(Gender(strPtr("M")), ShouldEqual, "M")
		})

		Convey("When the gender is nil", func() {
			So(Gender(nil), ShouldEqual, UnknownGender)
		})

		Convey("When the gender is an empty string", func() {
			So(Gender(strPtr("")), ShouldEqual, UnknownGender)
		})

		Convey("When the gender uses a nonstandard value", func() {
			Convey("Then it passes through verbatim", func() {
				So(Gender(strPtr("x")), ShouldEqual, "x")
				So(Gender(strPtr(" F ")), ShouldEqual, " F ")
			})
		})
	})
}
