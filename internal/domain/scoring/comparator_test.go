package scoring

import (
	"testing"

	"github.com/eventscore/rankd/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSortKey(t *testing.T) {
	Convey("Given raw values under different evaluation types", t, func() {
		Convey("When the type ranks higher values first", func() {
			a := SortKey(model.NumericHigh, "42.5")
			b := SortKey(model.NumericHigh, "40")

			Convey("Then the larger value orders first", func() {
				So(a.Less(b), ShouldBeTrue)
				So(b.Less(a), ShouldBeFalse)
			})
		})

		Convey("When the type ranks lower values first", func() {
			fast := SortKey(model.NumericLow, "11.2")
			slow := SortKey(model.NumericLow, "12.9")

			Convey("Then the smaller value orders first", func() {
				So(fast.Less(slow), ShouldBeTrue)
				So(slow.Less(fast), ShouldBeFalse)
			})
		})

		Convey("When boolean and score set values are compared", func() {
			yes := SortKey(model.Boolean, "1")
			no := SortKey(model.Boolean, "0")
			high := SortKey(model.ScoreSet, "9.5")
			low := SortKey(model.ScoreSet, "3.0")

			Convey("Then higher values order first", func() {
				So(yes.Less(no), ShouldBeTrue)
				So(high.Less(low), ShouldBeTrue)
			})
		})

		Convey("When the value carries surrounding whitespace", func() {
			padded := SortKey(model.NumericHigh, "  7.5\n")

			Convey("Then it still parses", func() {
				So(padded.Unparseable, ShouldBeFalse)
				So(padded.Value, ShouldEqual, -7.5)
			})
		})

		Convey("When the value does not parse as a number", func() {
			bad := SortKey(model.NumericHigh, "DNF")
			good := SortKey(model.NumericHigh, "0.1")

			Convey("Then it is not an error, it just orders last", func() {
				So(bad.Unparseable, ShouldBeTrue)
				So(good.Less(bad), ShouldBeTrue)
				So(bad.Less(good), ShouldBeFalse)
			})

			Convey("And two unparseable values tie", func() {
				other := SortKey(model.NumericLow, "n/a")
				So(bad.Equal(other), ShouldBeTrue)
				So(bad.Less(other), ShouldBeFalse)
			})
		})

		Convey("When two equal values are compared", func() {
			a := SortKey(model.NumericHigh, "10")
			b := SortKey(model.NumericHigh, "10.0")

			Convey("Then they tie under Equal", func() {
				So(a.Equal(b), ShouldBeTrue)
				So(a.Less(b), ShouldBeFalse)
				So(b.Less(a), ShouldBeFalse)
			})
		})
	})
}
