// Package tictactoe validates the three-in-a-row grid game on a fixed 3x3
// board. All functions are pure: the supplied state is never mutated and a
// fresh state is returned by Apply.
package tictactoe

import (
	"fmt"

	"github.com/Glxy97/glxy-gaming-platform-sub016/rules"
	"github.com/Glxy97/glxy-gaming-platform-sub016/rules/grid"
)

// Board geometry, fixed by the game contract.
const (
	Rows      = 3
	Cols      = 3
	Cells     = Rows * Cols
	RunLength = 3
)

// Heuristic weights, advisory only.
const (
	scoreWin         = 1000
	scoreMissedBlock = -400
	scoreCenter      = 8
	scoreCorner      = 4
)

// Move places the mover's mark on a flat cell index, row-major from the
// top-left corner.
type Move struct {
	Player string `json:"playerId"`
	Cell   int    `json:"cell"`
}

// State is the full prior state for one board. Empty cells hold "".
type State struct {
	Board         []string `json:"board"`
	Players       []string `json:"players"`
	CurrentPlayer string   `json:"currentPlayer"`
}

// NewState returns an empty board with p1 to move.
func NewState(p1, p2 string) State {
	return State{
		Board:         make([]string, Cells),
		Players:       []string{p1, p2},
		CurrentPlayer: p1,
	}
}

func boardRows(cells []string) [][]string {
	return [][]string{cells[0:3], cells[3:6], cells[6:9]}
}

func copyState(s State) State {
	return State{
		Board:         append([]string(nil), s.Board...),
		Players:       append([]string(nil), s.Players...),
		CurrentPlayer: s.CurrentPlayer,
	}
}

func seated(s State, id string) bool {
	for _, p := range s.Players {
		if p == id {
			return true
		}
	}
	return false
}

func opponent(s State, id string) string {
	if len(s.Players) == 2 && s.Players[0] == id {
		return s.Players[1]
	}
	return s.Players[0]
}

// Validate decides whether the move is legal against the supplied state.
// It never mutates its inputs and never errors for caller data.
func Validate(s State, m Move) rules.Result {
	if len(s.Board) != Cells {
		return rules.Structural("board must have %d cells, got %d", Cells, len(s.Board))
	}
	if len(s.Players) != 2 || s.Players[0] == "" || s.Players[1] == "" || s.Players[0] == s.Players[1] {
		return rules.Structural("state must name two distinct players")
	}
	if !seated(s, s.CurrentPlayer) {
		return rules.Integrity("current player '%s' is not seated at this board", s.CurrentPlayer)
	}
	cells := boardRows(s.Board)
	occupants := grid.Occupants(cells)
	if len(occupants) > 2 {
		return rules.Integrity("more than two distinct occupants on board")
	}
	for _, o := range occupants {
		if !seated(s, o) {
			return rules.Integrity("unknown occupant '%s' on board", o)
		}
	}
	if grid.HasRunAnywhere(cells, s.Players[0], RunLength) && grid.HasRunAnywhere(cells, s.Players[1], RunLength) {
		return rules.Integrity("both players hold a winning run")
	}
	if winner, over := Terminal(s); over {
		if winner != "" {
			return rules.Rule("game already won by '%s'", winner)
		}
		return rules.Rule("game ended in a draw")
	}
	if m.Cell < 0 || m.Cell >= Cells {
		return rules.Structural("cell %d out of range", m.Cell)
	}
	if s.Board[m.Cell] != "" {
		return rules.Rule("cell %d already occupied", m.Cell)
	}
	if m.Player != s.CurrentPlayer {
		return rules.Rule("not your turn, waiting on '%s'", s.CurrentPlayer)
	}
	return rules.OK()
}

// Apply places the mover's mark and hands the turn to the other player.
// The move must already have passed Validate; applying an unvalidated move
// panics.
func Apply(s State, m Move) State {
	if len(s.Board) != Cells || m.Cell < 0 || m.Cell >= Cells || s.Board[m.Cell] != "" {
		panic(fmt.Sprintf("tictactoe: apply of unvalidated move at cell %d", m.Cell))
	}
	next := copyState(s)
	next.Board[m.Cell] = m.Player
	next.CurrentPlayer = opponent(s, m.Player)
	return next
}

// LegalMoves enumerates every open cell for the current player, or nothing
// once the game is over.
func LegalMoves(s State) []Move {
	if len(s.Board) != Cells {
		return nil
	}
	if _, over := Terminal(s); over {
		return nil
	}
	moves := []Move{}
	for i, mark := range s.Board {
		if mark == "" {
			moves = append(moves, Move{Player: s.CurrentPlayer, Cell: i})
		}
	}
	return moves
}

// Score rates a candidate move for playerID with a shallow single-ply
// heuristic: finishing a win scores highest, leaving the opponent an
// immediate winning reply is penalized, center and corners get a small
// bonus. Advisory only, never used for legality.
func Score(s State, m Move, playerID string) int {
	if len(s.Board) != Cells || m.Cell < 0 || m.Cell >= Cells || s.Board[m.Cell] != "" {
		return 0
	}
	board := append([]string(nil), s.Board...)
	board[m.Cell] = playerID
	cells := boardRows(board)
	score := 0
	if grid.RunThrough(cells, m.Cell/Cols, m.Cell%Cols, playerID) >= RunLength {
		score += scoreWin
	} else if replyWins(board, opponent(s, playerID)) {
		score += scoreMissedBlock
	}
	switch m.Cell {
	case 4:
		score += scoreCenter
	case 0, 2, 6, 8:
		score += scoreCorner
	}
	return score
}

func replyWins(board []string, mark string) bool {
	for i, m := range board {
		if m != "" {
			continue
		}
		board[i] = mark
		won := grid.RunThrough(boardRows(board), i/Cols, i%Cols, mark) >= RunLength
		board[i] = ""
		if won {
			return true
		}
	}
	return false
}

// Terminal reports the winner, or a finished draw, derived purely from the
// board. Repeated calls against an unchanged state always agree.
func Terminal(s State) (string, bool) {
	if len(s.Board) != Cells {
		return "", false
	}
	cells := boardRows(s.Board)
	for _, p := range s.Players {
		if p == "" {
			continue
		}
		if grid.HasRunAnywhere(cells, p, RunLength) {
			return p, true
		}
	}
	if grid.Full(cells) {
		return "", true
	}
	return "", false
}
