package connectfour

import (
	"testing"

	"github.com/Glxy97/glxy-gaming-platform-sub016/rules"
	. "github.com/smartystreets/goconvey/convey"
)

// drawBoard is full with no run of four anywhere: vertical dominoes with a
// swapped middle band.
func drawBoard() [][]string {
	return [][]string{
		{"X", "O", "X", "O", "X", "O", "X"},
		{"X", "O", "X", "O", "X", "O", "X"},
		{"O", "X", "O", "X", "O", "X", "O"},
		{"O", "X", "O", "X", "O", "X", "O"},
		{"X", "O", "X", "O", "X", "O", "X"},
		{"X", "O", "X", "O", "X", "O", "X"},
	}
}

// stack fills the column bottom-up with marks.
func stack(s State, col int, marks ...string) State {
	for i, m := range marks {
		s.Board[Rows-1-i][col] = m
	}
	return s
}

func TestValidate(t *testing.T) {
	Convey("Validate", t, func() {
		Convey("corrects a drop into an empty column to row 5", func() {
			res := Validate(NewState("X", "O"), Move{Player: "X", Column: 3})
			So(res.Valid, ShouldBeTrue)
			c, ok := res.Corrected.(Move)
			So(ok, ShouldBeTrue)
			So(c.Column, ShouldEqual, 3)
			So(c.Row, ShouldEqual, 5)
		})
		Convey("corrects a stacked drop one row higher", func() {
			s := Apply(NewState("X", "O"), Move{Player: "X", Column: 3})
			res := Validate(s, Move{Player: "O", Column: 3})
			So(res.Valid, ShouldBeTrue)
			c := res.Corrected.(Move)
			So(c.Row, ShouldEqual, 4)
		})
		Convey("never mutates its inputs", func() {
			s := stack(NewState("X", "O"), 2, "X", "O")
			before := State{
				Board:         copyBoard(s.Board),
				Players:       append([]string(nil), s.Players...),
				CurrentPlayer: s.CurrentPlayer,
			}
			Validate(s, Move{Player: "X", Column: 2})
			So(s, ShouldResemble, before)
		})
		Convey("refuses a misshapen board", func() {
			s := NewState("X", "O")
			s.Board = s.Board[:5]
			res := Validate(s, Move{Player: "X", Column: 0})
			So(res.Kind, ShouldEqual, rules.KindStructural)
			So(res.Reason, ShouldEqual, "board must be 6 rows of 7 columns")
		})
		Convey("refuses a floating piece", func() {
			s := NewState("X", "O")
			s.Board[2][0] = "X"
			res := Validate(s, Move{Player: "X", Column: 4})
			So(res.Kind, ShouldEqual, rules.KindIntegrity)
			So(res.Reason, ShouldEqual, "floating piece in column 0")
		})
		Convey("refuses a third occupant", func() {
			s := stack(NewState("X", "O"), 1, "X", "O", "Z")
			res := Validate(s, Move{Player: "X", Column: 4})
			So(res.Kind, ShouldEqual, rules.KindIntegrity)
			So(res.Reason, ShouldEqual, "more than two distinct occupants on board")
		})
		Convey("refuses marks from outside the player list", func() {
			s := stack(NewState("X", "O"), 1, "X", "Z")
			res := Validate(s, Move{Player: "X", Column: 4})
			So(res.Kind, ShouldEqual, rules.KindIntegrity)
			So(res.Reason, ShouldEqual, "unknown occupant 'Z' on board")
		})
		Convey("refuses a board where both players won", func() {
			s := stack(NewState("X", "O"), 0, "X", "X", "X", "X")
			s = stack(s, 1, "O", "O", "O", "O")
			res := Validate(s, Move{Player: "X", Column: 4})
			So(res.Kind, ShouldEqual, rules.KindIntegrity)
			So(res.Reason, ShouldEqual, "both players hold a winning run")
		})
		Convey("refuses moves once the game is won", func() {
			s := stack(NewState("X", "O"), 0, "X", "X", "X", "X")
			res := Validate(s, Move{Player: "O", Column: 4})
			So(res.Kind, ShouldEqual, rules.KindRule)
			So(res.Reason, ShouldEqual, "game already won by 'X'")
		})
		Convey("refuses moves after a draw", func() {
			s := NewState("X", "O")
			s.Board = drawBoard()
			res := Validate(s, Move{Player: "X", Column: 0})
			So(res.Kind, ShouldEqual, rules.KindRule)
			So(res.Reason, ShouldEqual, "game ended in a draw")
		})
		Convey("refuses an out-of-range column", func() {
			res := Validate(NewState("X", "O"), Move{Player: "X", Column: 7})
			So(res.Kind, ShouldEqual, rules.KindStructural)
			So(res.Reason, ShouldEqual, "column 7 out of range")
		})
		Convey("refuses a full column", func() {
			s := stack(NewState("X", "O"), 0, "X", "O", "X", "O", "X", "O")
			res := Validate(s, Move{Player: "X", Column: 0})
			So(res.Kind, ShouldEqual, rules.KindRule)
			So(res.Reason, ShouldEqual, "column 0 is full")
		})
		Convey("refuses a move out of turn", func() {
			res := Validate(NewState("X", "O"), Move{Player: "O", Column: 3})
			So(res.Kind, ShouldEqual, rules.KindRule)
			So(res.Reason, ShouldEqual, "not your turn, waiting on 'X'")
		})
	})
}

func TestApply(t *testing.T) {
	Convey("Apply", t, func() {
		Convey("resolves the landing row itself", func() {
			s := Apply(NewState("X", "O"), Move{Player: "X", Column: 3, Row: 0})
			So(s.Board[5][3], ShouldEqual, "X")
			So(s.Board[0][3], ShouldEqual, "")
			So(s.CurrentPlayer, ShouldEqual, "O")
		})
		Convey("leaves the prior state untouched", func() {
			s := NewState("X", "O")
			Apply(s, Move{Player: "X", Column: 3})
			So(s.Board[5][3], ShouldEqual, "")
			So(s.CurrentPlayer, ShouldEqual, "X")
		})
		Convey("panics on a full column", func() {
			s := stack(NewState("X", "O"), 0, "X", "O", "X", "O", "X", "O")
			So(func() { Apply(s, Move{Player: "X", Column: 0}) }, ShouldPanic)
			So(func() { Apply(s, Move{Player: "X", Column: -1}) }, ShouldPanic)
		})
	})
}

func TestLegalMoves(t *testing.T) {
	Convey("LegalMoves", t, func() {
		Convey("offers all seven columns on an empty board, corrected to row 5", func() {
			moves := LegalMoves(NewState("X", "O"))
			So(len(moves), ShouldEqual, 7)
			for _, m := range moves {
				So(m.Row, ShouldEqual, 5)
				So(m.Player, ShouldEqual, "X")
			}
		})
		Convey("drops full columns from the list", func() {
			s := stack(NewState("X", "O"), 0, "X", "O", "X", "O", "X", "O")
			moves := LegalMoves(s)
			So(len(moves), ShouldEqual, 6)
			for _, m := range moves {
				So(m.Column, ShouldNotEqual, 0)
			}
		})
		Convey("never re-offers the just-filled slot", func() {
			s := Apply(NewState("X", "O"), Move{Player: "X", Column: 3})
			for _, m := range LegalMoves(s) {
				if m.Column == 3 {
					So(m.Row, ShouldEqual, 4)
				}
			}
		})
		Convey("offers nothing once the game is over", func() {
			s := stack(NewState("X", "O"), 0, "X", "X", "X", "X")
			So(LegalMoves(s), ShouldBeEmpty)
		})
	})
}

func TestScore(t *testing.T) {
	Convey("Score", t, func() {
		Convey("rates the winning drop highest", func() {
			s := stack(NewState("X", "O"), 2, "X", "X", "X")
			win := Score(s, Move{Column: 2}, "X")
			So(win, ShouldBeGreaterThan, 1000)
			for _, m := range LegalMoves(s) {
				if m.Column == 2 {
					continue
				}
				So(win, ShouldBeGreaterThan, Score(s, m, "X"))
			}
		})
		Convey("penalizes ignoring an opponent's winning reply", func() {
			s := stack(NewState("X", "O"), 5, "O", "O", "O")
			block := Score(s, Move{Column: 5}, "X")
			ignore := Score(s, Move{Column: 0}, "X")
			So(block, ShouldBeGreaterThan, ignore)
			So(ignore, ShouldBeLessThan, 0)
		})
		Convey("prefers the center column on an open board", func() {
			s := NewState("X", "O")
			So(Score(s, Move{Column: 3}, "X"), ShouldBeGreaterThan, Score(s, Move{Column: 0}, "X"))
		})
	})
}

func TestTerminal(t *testing.T) {
	Convey("Terminal", t, func() {
		Convey("spots a vertical run", func() {
			s := stack(NewState("X", "O"), 4, "X", "X", "X", "X")
			winner, over := Terminal(s)
			So(over, ShouldBeTrue)
			So(winner, ShouldEqual, "X")
		})
		Convey("spots a diagonal run", func() {
			s := NewState("X", "O")
			s = stack(s, 0, "X")
			s = stack(s, 1, "O", "X")
			s = stack(s, 2, "O", "O", "X")
			s = stack(s, 3, "O", "O", "O", "X")
			winner, over := Terminal(s)
			So(over, ShouldBeTrue)
			So(winner, ShouldEqual, "X")
		})
		Convey("reports a draw on the full no-run board", func() {
			s := NewState("X", "O")
			s.Board = drawBoard()
			winner, over := Terminal(s)
			So(over, ShouldBeTrue)
			So(winner, ShouldEqual, "")
		})
		Convey("is idempotent against an unchanged state", func() {
			s := stack(NewState("X", "O"), 4, "X", "X", "X", "X")
			w1, o1 := Terminal(s)
			w2, o2 := Terminal(s)
			So(w1, ShouldEqual, w2)
			So(o1, ShouldEqual, o2)
		})
		Convey("reports nothing mid-game", func() {
			_, over := Terminal(stack(NewState("X", "O"), 4, "X", "X", "X"))
			So(over, ShouldBeFalse)
		})
	})
}
