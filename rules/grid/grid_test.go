package grid

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func board(rows ...[]string) [][]string {
	return rows
}

func TestGrid(t *testing.T) {
	Convey("grid primitives", t, func() {
		b := board(
			[]string{"X", "X", ""},
			[]string{"", "O", ""},
			[]string{"", "", "O"},
		)
		Convey("InBounds", func() {
			So(InBounds(b, 0, 0), ShouldBeTrue)
			So(InBounds(b, 2, 2), ShouldBeTrue)
			So(InBounds(b, -1, 0), ShouldBeFalse)
			So(InBounds(b, 0, 3), ShouldBeFalse)
			So(InBounds(b, 3, 0), ShouldBeFalse)
		})
		Convey("RunThrough", func() {
			Convey("counts forward and backward on the same axis", func() {
				So(RunThrough(b, 0, 0, "X"), ShouldEqual, 2)
				So(RunThrough(b, 0, 1, "X"), ShouldEqual, 2)
			})
			Convey("finds diagonal runs", func() {
				So(RunThrough(b, 1, 1, "O"), ShouldEqual, 2)
				So(RunThrough(b, 2, 2, "O"), ShouldEqual, 2)
			})
			Convey("is zero off the mark or off the board", func() {
				So(RunThrough(b, 0, 2, "X"), ShouldEqual, 0)
				So(RunThrough(b, 5, 5, "X"), ShouldEqual, 0)
				So(RunThrough(b, 0, 0, ""), ShouldEqual, 0)
			})
			Convey("counts the anti-diagonal", func() {
				d := board(
					[]string{"", "", "A"},
					[]string{"", "A", ""},
					[]string{"A", "", ""},
				)
				So(RunThrough(d, 1, 1, "A"), ShouldEqual, 3)
			})
		})
		Convey("HasRunAnywhere", func() {
			w := board(
				[]string{"X", "X", "X"},
				[]string{"", "O", ""},
				[]string{"", "O", ""},
			)
			So(HasRunAnywhere(w, "X", 3), ShouldBeTrue)
			So(HasRunAnywhere(w, "O", 3), ShouldBeFalse)
			So(HasRunAnywhere(w, "O", 2), ShouldBeTrue)
		})
		Convey("Occupants", func() {
			So(Occupants(b), ShouldResemble, []string{"X", "O"})
			So(Occupants(board([]string{"", ""})), ShouldBeEmpty)
		})
		Convey("Full", func() {
			So(Full(b), ShouldBeFalse)
			So(Full(board([]string{"X"}, []string{"O"})), ShouldBeTrue)
		})
	})
}
