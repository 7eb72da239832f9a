package hub

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Glxy97/glxy-gaming-platform-sub016/pkg/event"
	"github.com/Glxy97/glxy-gaming-platform-sub016/rules"
	"github.com/Glxy97/glxy-gaming-platform-sub016/rules/blockfall"
	"github.com/Glxy97/glxy-gaming-platform-sub016/rules/connectfour"
	"github.com/Glxy97/glxy-gaming-platform-sub016/rules/tictactoe"
	"github.com/Glxy97/glxy-gaming-platform-sub016/rules/wildcard"
)

func mustJSON(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func TestDispatch(t *testing.T) {
	Convey("Dispatch", t, func() {
		Convey("refuses an unknown game type", func() {
			v := Dispatch(&event.MoveSubmission{GameType: "CHESS"})
			So(v.Valid, ShouldBeFalse)
			So(v.Kind, ShouldEqual, rules.KindStructural)
			So(v.Reason, ShouldEqual, "unknown game type 'CHESS'")
		})
		Convey("refuses an undecodable state", func() {
			v := Dispatch(&event.MoveSubmission{
				GameType:   rules.GameTicTacToe,
				PlayerID:   "x",
				Move:       json.RawMessage(`{"playerId":"x","cell":4}`),
				PriorState: json.RawMessage(`[1,2,3]`),
			})
			So(v.Valid, ShouldBeFalse)
			So(v.Kind, ShouldEqual, rules.KindStructural)
			So(v.Reason, ShouldStartWith, "undecodable state:")
		})
		Convey("refuses an undecodable move", func() {
			v := Dispatch(&event.MoveSubmission{
				GameType:   rules.GameTicTacToe,
				PlayerID:   "x",
				Move:       json.RawMessage(`{"playerId":"x","cell":"four"}`),
				PriorState: mustJSON(tictactoe.NewState("x", "o")),
			})
			So(v.Valid, ShouldBeFalse)
			So(v.Reason, ShouldStartWith, "undecodable move:")
		})
		Convey("stamps the envelope's player id over the move payload", func() {
			v := Dispatch(&event.MoveSubmission{
				GameType:   rules.GameTicTacToe,
				PlayerID:   "o",
				Move:       json.RawMessage(`{"playerId":"x","cell":4}`),
				PriorState: mustJSON(tictactoe.NewState("x", "o")),
			})
			So(v.Valid, ShouldBeFalse)
			So(v.Kind, ShouldEqual, rules.KindRule)
			So(v.Reason, ShouldEqual, "not your turn, waiting on 'x'")
		})
		Convey("rules a board move end to end", func() {
			v := Dispatch(&event.MoveSubmission{
				GameType:   rules.GameTicTacToe,
				PlayerID:   "x",
				Move:       json.RawMessage(`{"playerId":"x","cell":4}`),
				PriorState: mustJSON(tictactoe.NewState("x", "o")),
			})
			So(v.Valid, ShouldBeTrue)
			So(v.Over, ShouldBeFalse)
			s := tictactoe.State{}
			So(json.Unmarshal(v.State, &s), ShouldBeNil)
			So(s.Board[4], ShouldEqual, "x")
			So(s.CurrentPlayer, ShouldEqual, "o")
		})
		Convey("reports the win on the resulting state", func() {
			prior := tictactoe.NewState("x", "o")
			prior.Board[0], prior.Board[1] = "x", "x"
			prior.Board[4], prior.Board[7] = "o", "o"
			v := Dispatch(&event.MoveSubmission{
				GameType:   rules.GameTicTacToe,
				PlayerID:   "x",
				Move:       json.RawMessage(`{"playerId":"x","cell":2}`),
				PriorState: mustJSON(prior),
			})
			So(v.Valid, ShouldBeTrue)
			So(v.Over, ShouldBeTrue)
			So(v.Winner, ShouldEqual, "x")
		})
		Convey("reports terminal standing when refusing a dead game", func() {
			prior := tictactoe.NewState("x", "o")
			prior.Board[0], prior.Board[1], prior.Board[2] = "x", "x", "x"
			prior.Board[4], prior.Board[7] = "o", "o"
			prior.CurrentPlayer = "o"
			v := Dispatch(&event.MoveSubmission{
				GameType:   rules.GameTicTacToe,
				PlayerID:   "o",
				Move:       json.RawMessage(`{"playerId":"o","cell":5}`),
				PriorState: mustJSON(prior),
			})
			So(v.Valid, ShouldBeFalse)
			So(v.Reason, ShouldEqual, "game already won by 'x'")
			So(v.Over, ShouldBeTrue)
			So(v.Winner, ShouldEqual, "x")
		})
		Convey("carries the corrected drop row into the applied move", func() {
			v := Dispatch(&event.MoveSubmission{
				GameType:   rules.GameConnectFour,
				PlayerID:   "r",
				Move:       json.RawMessage(`{"playerId":"r","column":3,"row":0}`),
				PriorState: mustJSON(connectfour.NewState("r", "y")),
			})
			So(v.Valid, ShouldBeTrue)
			So(v.Corrected, ShouldNotBeNil)
			s := connectfour.State{}
			So(json.Unmarshal(v.State, &s), ShouldBeNil)
			So(s.Board[5][3], ShouldEqual, "r")
			So(s.Board[0][3], ShouldEqual, "")
		})
		Convey("advances the card turn through the table arithmetic", func() {
			five := 5
			top := wildcard.Card{Color: wildcard.ColorRed, Type: wildcard.TypeNumber, Value: &five}
			prior := wildcard.NewState([]string{"ada", "bob"}, top)
			move := wildcard.Move{
				Player: "ada",
				Card:   wildcard.Card{Color: wildcard.ColorRed, Type: wildcard.TypeReverse},
				Hand:   []wildcard.Card{{Color: wildcard.ColorRed, Type: wildcard.TypeReverse}},
			}
			v := Dispatch(&event.MoveSubmission{
				GameType:   rules.GameWildcard,
				PlayerID:   "ada",
				Move:       mustJSON(move),
				PriorState: mustJSON(prior),
			})
			So(v.Valid, ShouldBeTrue)
			s := wildcard.State{}
			So(json.Unmarshal(v.State, &s), ShouldBeNil)
			Convey("a two-seat reverse skips the opponent", func() {
				So(s.Direction, ShouldEqual, -1)
				So(s.CurrentPlayer, ShouldEqual, "ada")
				So(s.Players[0].HandCount, ShouldEqual, wildcard.StartingHand-1)
			})
		})
		Convey("audits claimed clears against the supplied board", func() {
			prior := blockfall.NewState()
			for c := 0; c < blockfall.BoardCols; c++ {
				prior.Board[blockfall.BoardRows-1][c] = 1
			}
			claimed := 2
			move := blockfall.Move{
				Player: "solo",
				Piece: blockfall.Piece{
					Type:  "I",
					Cells: [][]int{{1, 1, 1, 1}},
					X:     3,
				},
				Action:       "hardDrop",
				LinesCleared: &claimed,
			}
			v := Dispatch(&event.MoveSubmission{
				GameType:   rules.GameBlockfall,
				PlayerID:   "solo",
				Move:       mustJSON(move),
				PriorState: mustJSON(prior),
			})
			So(v.Valid, ShouldBeFalse)
			So(v.Kind, ShouldEqual, rules.KindIntegrity)
			So(v.Reason, ShouldEqual, "claimed 2 cleared lines but found 1")
		})
	})
}
