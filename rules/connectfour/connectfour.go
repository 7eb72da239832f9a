// Package connectfour validates the gravity-based four-in-a-row game on a
// fixed 7-column, 6-row board. Clients submit only a column; the validator
// resolves the landing row and hands it back as a corrected move, which
// callers must use in place of the raw submission.
package connectfour

import (
	"fmt"

	"github.com/Glxy97/glxy-gaming-platform-sub016/rules"
	"github.com/Glxy97/glxy-gaming-platform-sub016/rules/grid"
)

// Board geometry, fixed by the game contract. Row 0 is the top row, so a
// disc dropped into an empty column lands on row 5.
const (
	Cols      = 7
	Rows      = 6
	RunLength = 4
)

// Heuristic weights, advisory only.
const (
	scoreWin         = 1000
	scoreMissedBlock = -400
	scoreCenterStep  = 2
)

// Move drops the mover's disc into a column. Row is resolved by the
// validator through the gravity scan and is never trusted from the client.
type Move struct {
	Player string `json:"playerId"`
	Column int    `json:"column"`
	Row    int    `json:"row"`
}

// State is the full prior state for one board. Empty cells hold "".
type State struct {
	Board         [][]string `json:"board"`
	Players       []string   `json:"players"`
	CurrentPlayer string     `json:"currentPlayer"`
}

// NewState returns an empty board with p1 to move.
func NewState(p1, p2 string) State {
	board := make([][]string, Rows)
	for r := range board {
		board[r] = make([]string, Cols)
	}
	return State{
		Board:         board,
		Players:       []string{p1, p2},
		CurrentPlayer: p1,
	}
}

func wellShaped(board [][]string) bool {
	if len(board) != Rows {
		return false
	}
	for _, row := range board {
		if len(row) != Cols {
			return false
		}
	}
	return true
}

func copyBoard(board [][]string) [][]string {
	next := make([][]string, len(board))
	for r, row := range board {
		next[r] = append([]string(nil), row...)
	}
	return next
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

// dropRow returns the lowest empty row of the column, scanning from the
// bottom, or -1 when the column is full.
func dropRow(board [][]string, col int) int {
	for r := Rows - 1; r >= 0; r-- {
		if board[r][col] == "" {
			return r
		}
	}
	return -1
}

// floatingColumn returns the first column holding an occupied cell above an
// empty one, or -1 when gravity holds everywhere.
func floatingColumn(board [][]string) int {
	for c := 0; c < Cols; c++ {
		emptySeen := false
		for r := Rows - 1; r >= 0; r-- {
			if board[r][c] == "" {
				emptySeen = true
			} else if emptySeen {
				return c
			}
		}
	}
	return -1
}

// Validate decides whether the drop is legal against the supplied state.
// On success the Result carries a corrected move with the resolved row.
func Validate(s State, m Move) rules.Result {
	if !wellShaped(s.Board) {
		return rules.Structural("board must be %d rows of %d columns", Rows, Cols)
	}
	if len(s.Players) != 2 || s.Players[0] == "" || s.Players[1] == "" || s.Players[0] == s.Players[1] {
		return rules.Structural("state must name two distinct players")
	}
	if !seated(s, s.CurrentPlayer) {
		return rules.Integrity("current player '%s' is not seated at this board", s.CurrentPlayer)
	}
	occupants := grid.Occupants(s.Board)
	if len(occupants) > 2 {
		return rules.Integrity("more than two distinct occupants on board")
	}
	for _, o := range occupants {
		if !seated(s, o) {
			return rules.Integrity("unknown occupant '%s' on board", o)
		}
	}
	if c := floatingColumn(s.Board); c >= 0 {
		return rules.Integrity("floating piece in column %d", c)
	}
	if grid.HasRunAnywhere(s.Board, s.Players[0], RunLength) && grid.HasRunAnywhere(s.Board, s.Players[1], RunLength) {
		return rules.Integrity("both players hold a winning run")
	}
	if winner, over := Terminal(s); over {
		if winner != "" {
			return rules.Rule("game already won by '%s'", winner)
		}
		return rules.Rule("game ended in a draw")
	}
	if m.Column < 0 || m.Column >= Cols {
		return rules.Structural("column %d out of range", m.Column)
	}
	row := dropRow(s.Board, m.Column)
	if row < 0 {
		return rules.Rule("column %d is full", m.Column)
	}
	if m.Player != s.CurrentPlayer {
		return rules.Rule("not your turn, waiting on '%s'", s.CurrentPlayer)
	}
	return rules.OKCorrected(Move{Player: m.Player, Column: m.Column, Row: row})
}

// Apply drops the disc, resolving the landing row itself rather than
// trusting the one on the move, and hands the turn to the other player.
// Applying a drop into a full or out-of-range column panics.
func Apply(s State, m Move) State {
	if !wellShaped(s.Board) || m.Column < 0 || m.Column >= Cols {
		panic(fmt.Sprintf("connectfour: apply of unvalidated move in column %d", m.Column))
	}
	row := dropRow(s.Board, m.Column)
	if row < 0 {
		panic(fmt.Sprintf("connectfour: apply of unvalidated move in full column %d", m.Column))
	}
	board := copyBoard(s.Board)
	board[row][m.Column] = m.Player
	return State{
		Board:         board,
		Players:       append([]string(nil), s.Players...),
		CurrentPlayer: opponent(s, m.Player),
	}
}

// LegalMoves enumerates every non-full column for the current player, each
// already corrected with its resolved landing row.
func LegalMoves(s State) []Move {
	if !wellShaped(s.Board) {
		return nil
	}
	if _, over := Terminal(s); over {
		return nil
	}
	moves := []Move{}
	for c := 0; c < Cols; c++ {
		if r := dropRow(s.Board, c); r >= 0 {
			moves = append(moves, Move{Player: s.CurrentPlayer, Column: c, Row: r})
		}
	}
	return moves
}

// Score rates a candidate drop for playerID with a shallow single-ply
// heuristic: finishing a win scores highest, leaving the opponent an
// immediate winning reply is penalized, central columns get a small bonus.
func Score(s State, m Move, playerID string) int {
	if !wellShaped(s.Board) || m.Column < 0 || m.Column >= Cols {
		return 0
	}
	row := dropRow(s.Board, m.Column)
	if row < 0 {
		return 0
	}
	board := copyBoard(s.Board)
	board[row][m.Column] = playerID
	score := 0
	if grid.RunThrough(board, row, m.Column, playerID) >= RunLength {
		score += scoreWin
	} else if replyWins(board, opponent(s, playerID)) {
		score += scoreMissedBlock
	}
	center := m.Column - Cols/2
	if center < 0 {
		center = -center
	}
	score += scoreCenterStep * (Cols/2 - center)
	return score
}

func replyWins(board [][]string, mark string) bool {
	for c := 0; c < Cols; c++ {
		r := dropRow(board, c)
		if r < 0 {
			continue
		}
		board[r][c] = mark
		won := grid.RunThrough(board, r, c, mark) >= RunLength
		board[r][c] = ""
		if won {
			return true
		}
	}
	return false
}

// Terminal reports the winner, or a finished draw, derived purely from the
// board. Repeated calls against an unchanged state always agree.
func Terminal(s State) (string, bool) {
	if !wellShaped(s.Board) {
		return "", false
	}
	for _, p := range s.Players {
		if p == "" {
			continue
		}
		if grid.HasRunAnywhere(s.Board, p, RunLength) {
			return p, true
		}
	}
	if grid.Full(s.Board) {
		return "", true
	}
	return "", false
}
