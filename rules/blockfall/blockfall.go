// Package blockfall validates the falling-piece stacking game on a fixed
// 10-column, 20-row board. Clients report piece placements and line-clear
// claims; the validator audits both, offering a best-effort horizontal
// repair when a piece position does not fit.
package blockfall

import (
	"fmt"

	"github.com/Glxy97/glxy-gaming-platform-sub016/rules"
)

// Board geometry, fixed by the game contract. Row 0 is the top row.
const (
	BoardCols = 10
	BoardRows = 20
	MaxClear  = 4
)

// Action and direction tags, fixed enumerations on the wire.
const (
	ActionMove     = "move"
	ActionRotate   = "rotate"
	ActionDrop     = "drop"
	ActionHardDrop = "hardDrop"

	DirLeft  = "left"
	DirRight = "right"
	DirDown  = "down"
)

// baseScore maps cleared lines to the pre-multiplier score.
var baseScore = map[int]int{1: 40, 2: 100, 3: 300, 4: 1200}

// attackLines maps cleared lines to versus-mode attack lines.
var attackLines = map[int]int{1: 0, 2: 1, 3: 2, 4: 4}

// pieceShapes holds the canonical spawn matrix per piece type.
var pieceShapes = map[string][][]int{
	"I": {{1, 1, 1, 1}},
	"O": {{1, 1}, {1, 1}},
	"T": {{1, 1, 1}, {0, 1, 0}},
	"S": {{0, 1, 1}, {1, 1, 0}},
	"Z": {{1, 1, 0}, {0, 1, 1}},
	"J": {{1, 0, 0}, {1, 1, 1}},
	"L": {{0, 0, 1}, {1, 1, 1}},
}

// repairOffsets is the probe order for horizontal repair, nearest first.
var repairOffsets = []int{-1, 1, -2, 2}

// Piece is a falling piece: a rectangular cell-presence matrix anchored on
// the board at (X, Y), its top-left cell.
type Piece struct {
	Type  string  `json:"type"`
	Cells [][]int `json:"cells"`
	X     int     `json:"x"`
	Y     int     `json:"y"`
}

// Move reports a piece action. LinesCleared, when present, is the client's
// claimed line-clear count and is audited against the supplied board.
type Move struct {
	Player       string `json:"playerId"`
	Piece        Piece  `json:"piece"`
	Action       string `json:"action"`
	Direction    string `json:"direction,omitempty"`
	LinesCleared *int   `json:"linesCleared,omitempty"`
}

// State is the full prior state for one board. Cells hold 0 when empty and
// any other value when filled.
type State struct {
	Board [][]int `json:"board"`
	Level int     `json:"level"`
	Combo int     `json:"combo"`
	Lines int     `json:"lines"`
}

// NewState returns an empty board at level zero.
func NewState() State {
	board := make([][]int, BoardRows)
	for r := range board {
		board[r] = make([]int, BoardCols)
	}
	return State{Board: board}
}

// NewPiece spawns the canonical shape for a piece type, centered on the top
// row. Unknown types error.
func NewPiece(pieceType string) (Piece, error) {
	shape, ok := pieceShapes[pieceType]
	if !ok {
		return Piece{}, fmt.Errorf("unknown piece type '%s'", pieceType)
	}
	cells := make([][]int, len(shape))
	for r, row := range shape {
		cells[r] = append([]int(nil), row...)
	}
	return Piece{
		Type:  pieceType,
		Cells: cells,
		X:     (BoardCols - len(cells[0])) / 2,
	}, nil
}

func wellShaped(board [][]int) bool {
	if len(board) != BoardRows {
		return false
	}
	for _, row := range board {
		if len(row) != BoardCols {
			return false
		}
	}
	return true
}

func copyBoard(board [][]int) [][]int {
	next := make([][]int, len(board))
	for r, row := range board {
		next[r] = append([]int(nil), row...)
	}
	return next
}

func rectangular(cells [][]int) bool {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return false
	}
	for _, row := range cells {
		if len(row) != len(cells[0]) {
			return false
		}
	}
	return true
}

func anyOccupied(cells [][]int) bool {
	for _, row := range cells {
		for _, v := range row {
			if v != 0 {
				return true
			}
		}
	}
	return false
}

// Placement fit outcomes.
const (
	fitOK = iota
	fitOutOfBounds
	fitCollision
)

// placement checks every occupied piece cell against the board and returns
// the first failing board coordinate.
func placement(board [][]int, p Piece) (fit, row, col int) {
	for r, cells := range p.Cells {
		for c, v := range cells {
			if v == 0 {
				continue
			}
			br, bc := p.Y+r, p.X+c
			if br < 0 || br >= BoardRows || bc < 0 || bc >= BoardCols {
				return fitOutOfBounds, br, bc
			}
			if board[br][bc] != 0 {
				return fitCollision, br, bc
			}
		}
	}
	return fitOK, 0, 0
}

// repairMove probes the symmetric horizontal offsets nearest first and
// returns the first shifted move that fits.
func repairMove(board [][]int, m Move) (Move, bool) {
	for _, dx := range repairOffsets {
		p := m.Piece
		p.X += dx
		if fit, _, _ := placement(board, p); fit == fitOK {
			fixed := m
			fixed.Piece = p
			return fixed, true
		}
	}
	return Move{}, false
}

func fullRowCount(board [][]int) int {
	count := 0
	for _, row := range board {
		full := true
		for _, v := range row {
			if v == 0 {
				full = false
				break
			}
		}
		if full {
			count++
		}
	}
	return count
}

// Validate decides whether the reported action is legal against the
// supplied state. A refusal for a horizontally misplaced piece carries a
// repaired move when one of the probed offsets fits.
func Validate(s State, m Move) rules.Result {
	if !wellShaped(s.Board) {
		return rules.Structural("board must be %d rows of %d columns", BoardRows, BoardCols)
	}
	if m.LinesCleared != nil {
		if actual := fullRowCount(s.Board); actual != *m.LinesCleared {
			return rules.Integrity("claimed %d cleared lines but found %d", *m.LinesCleared, actual)
		}
	}
	if _, over := Terminal(s); over {
		return rules.Rule("game already over")
	}
	if !rectangular(m.Piece.Cells) {
		return rules.Structural("piece matrix must be a non-empty rectangle")
	}
	if !anyOccupied(m.Piece.Cells) {
		return rules.Structural("piece matrix has no occupied cells")
	}
	if _, ok := pieceShapes[m.Piece.Type]; !ok {
		return rules.Structural("unknown piece type '%s'", m.Piece.Type)
	}
	if fit, row, col := placement(s.Board, m.Piece); fit != fitOK {
		kind := rules.KindStructural
		reason := fmt.Sprintf("piece cell out of bounds at row %d column %d", row, col)
		if fit == fitCollision {
			kind = rules.KindRule
			reason = fmt.Sprintf("piece overlaps a filled cell at row %d column %d", row, col)
		}
		if fixed, ok := repairMove(s.Board, m); ok {
			return rules.Repaired(kind, fixed, reason)
		}
		return rules.Result{Kind: kind, Reason: reason}
	}
	switch m.Action {
	case ActionMove:
		switch m.Direction {
		case DirLeft, DirRight, DirDown:
		case "":
			return rules.Structural("move action requires a direction")
		default:
			return rules.Structural("unknown direction '%s'", m.Direction)
		}
	case ActionRotate, ActionDrop, ActionHardDrop:
	default:
		return rules.Structural("unknown action '%s'", m.Action)
	}
	return rules.OK()
}

func canDescend(board [][]int, p Piece) bool {
	below := p
	below.Y++
	fit, _, _ := placement(board, below)
	return fit == fitOK
}

// restingPiece slides the piece straight down to its resting row.
func restingPiece(board [][]int, p Piece) Piece {
	for canDescend(board, p) {
		p.Y++
	}
	return p
}

func merge(board [][]int, p Piece) [][]int {
	next := copyBoard(board)
	for r, cells := range p.Cells {
		for c, v := range cells {
			if v != 0 {
				next[p.Y+r][p.X+c] = 1
			}
		}
	}
	return next
}

// clearFull drops every fully-occupied row and feeds fresh rows in at the
// top.
func clearFull(board [][]int) ([][]int, int) {
	kept := [][]int{}
	for _, row := range board {
		full := true
		for _, v := range row {
			if v == 0 {
				full = false
				break
			}
		}
		if !full {
			kept = append(kept, append([]int(nil), row...))
		}
	}
	cleared := BoardRows - len(kept)
	next := make([][]int, 0, BoardRows)
	for i := 0; i < cleared; i++ {
		next = append(next, make([]int, BoardCols))
	}
	return append(next, kept...), cleared
}

// lock merges the piece, clears full rows, and rolls lines, level, and
// combo forward.
func lock(s State, p Piece) State {
	board, cleared := clearFull(merge(s.Board, p))
	next := State{
		Board: board,
		Lines: s.Lines + cleared,
		Combo: 0,
	}
	if cleared > 0 {
		next.Combo = s.Combo + 1
	}
	next.Level = next.Lines / 10
	return next
}

// Apply advances the state for a validated action. Repositioning actions
// leave the board untouched (the piece lives client-side between locks);
// a hard drop, or a drop that cannot descend, locks the piece, clears full
// rows, and updates lines, level, and combo. Applying an unvalidated move
// panics.
func Apply(s State, m Move) State {
	if !wellShaped(s.Board) {
		panic("blockfall: apply on a misshapen board")
	}
	if fit, row, col := placement(s.Board, m.Piece); fit != fitOK {
		panic(fmt.Sprintf("blockfall: apply of unvalidated piece at row %d column %d", row, col))
	}
	switch m.Action {
	case ActionMove, ActionRotate:
		return s
	case ActionDrop:
		if canDescend(s.Board, m.Piece) {
			return s
		}
		return lock(s, m.Piece)
	case ActionHardDrop:
		return lock(s, restingPiece(s.Board, m.Piece))
	default:
		panic(fmt.Sprintf("blockfall: apply of unvalidated action '%s'", m.Action))
	}
}

// rotateCW turns the cell matrix a quarter turn clockwise around the
// anchor.
func rotateCW(p Piece) Piece {
	rows, cols := len(p.Cells), len(p.Cells[0])
	cells := make([][]int, cols)
	for r := range cells {
		cells[r] = make([]int, rows)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cells[c][rows-1-r] = p.Cells[r][c]
		}
	}
	p.Cells = cells
	return p
}

// LegalMoves enumerates the actions the piece could take from its current
// position: shifts and the rotation only where the result still fits,
// drops always.
func LegalMoves(s State, p Piece) []Move {
	if !wellShaped(s.Board) || !rectangular(p.Cells) {
		return nil
	}
	if _, over := Terminal(s); over {
		return nil
	}
	if fit, _, _ := placement(s.Board, p); fit != fitOK {
		return nil
	}
	moves := []Move{}
	shifts := []struct {
		dx, dy    int
		direction string
	}{
		{-1, 0, DirLeft},
		{1, 0, DirRight},
		{0, 1, DirDown},
	}
	for _, sh := range shifts {
		shifted := p
		shifted.X += sh.dx
		shifted.Y += sh.dy
		if fit, _, _ := placement(s.Board, shifted); fit == fitOK {
			moves = append(moves, Move{Piece: p, Action: ActionMove, Direction: sh.direction})
		}
	}
	if fit, _, _ := placement(s.Board, rotateCW(p)); fit == fitOK {
		moves = append(moves, Move{Piece: p, Action: ActionRotate})
	}
	moves = append(moves,
		Move{Piece: p, Action: ActionDrop},
		Move{Piece: p, Action: ActionHardDrop},
	)
	return moves
}

// Score rates a candidate action by simulating its placement and a hard
// drop to rest: 100 per line the lock would clear, deeper landings better,
// 20 against per hole opened. Advisory only.
func Score(s State, m Move, playerID string) int {
	if !wellShaped(s.Board) || !rectangular(m.Piece.Cells) {
		return 0
	}
	p := m.Piece
	switch m.Action {
	case ActionMove:
		switch m.Direction {
		case DirLeft:
			p.X--
		case DirRight:
			p.X++
		case DirDown:
			p.Y++
		default:
			return 0
		}
	case ActionRotate:
		p = rotateCW(p)
	case ActionDrop, ActionHardDrop:
	default:
		return 0
	}
	if fit, _, _ := placement(s.Board, p); fit != fitOK {
		return 0
	}
	rested := restingPiece(s.Board, p)
	merged := merge(s.Board, rested)
	gained := fullRowCount(merged) - fullRowCount(s.Board)
	depth := 0
	for r, cells := range rested.Cells {
		for _, v := range cells {
			if v != 0 && rested.Y+r > depth {
				depth = rested.Y + r
			}
		}
	}
	holes := countHoles(merged) - countHoles(s.Board)
	return gained*100 + depth - holes*20
}

func countHoles(board [][]int) int {
	holes := 0
	for c := 0; c < BoardCols; c++ {
		seen := false
		for r := 0; r < BoardRows; r++ {
			if board[r][c] != 0 {
				seen = true
			} else if seen {
				holes++
			}
		}
	}
	return holes
}

// ScoreLines scores a lock that cleared between 1 and 4 lines:
// base[lines] x (level+1) plus 50 per combo step.
func ScoreLines(lines, level, combo int) (int, error) {
	base, ok := baseScore[lines]
	if !ok {
		return 0, fmt.Errorf("cleared lines must be between 1 and %d, got %d", MaxClear, lines)
	}
	return base*(level+1) + combo*50, nil
}

// AttackLines maps a clear onto versus-mode attack lines, with a bonus
// line for every two combo steps.
func AttackLines(lines, combo int) int {
	attack, ok := attackLines[lines]
	if !ok {
		return 0
	}
	return attack + combo/2
}

// Terminal reports game over once any filled cell reaches the top row.
func Terminal(s State) (string, bool) {
	if len(s.Board) != BoardRows {
		return "", false
	}
	for _, v := range s.Board[0] {
		if v != 0 {
			return "", true
		}
	}
	return "", false
}
