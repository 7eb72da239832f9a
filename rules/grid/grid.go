// Package grid holds the cell-matrix primitives shared by the grid game
// validators: line scanning for win detection, occupant census, bounds and
// fill checks. Cells hold "" when empty, otherwise one occupant identifier.
package grid

// The four scan axes: horizontal, vertical, and the two diagonals.
// Each direction is walked forward and backward from the anchor cell.
var axes = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// InBounds reports whether (row, col) addresses a cell of the matrix.
func InBounds(cells [][]string, row, col int) bool {
	return row >= 0 && row < len(cells) && col >= 0 && col < len(cells[row])
}

// RunThrough returns the longest consecutive run of mark passing through
// (row, col), checking all four axes. The anchor cell itself counts only
// when it holds mark.
func RunThrough(cells [][]string, row, col int, mark string) int {
	if mark == "" || !InBounds(cells, row, col) || cells[row][col] != mark {
		return 0
	}
	best := 1
	for _, axis := range axes {
		run := 1
		for _, sign := range [2]int{1, -1} {
			r, c := row+axis[0]*sign, col+axis[1]*sign
			for InBounds(cells, r, c) && cells[r][c] == mark {
				run++
				r += axis[0] * sign
				c += axis[1] * sign
			}
		}
		if run > best {
			best = run
		}
	}
	return best
}

// HasRunAnywhere reports whether mark holds a run of at least runLength
// anywhere on the board. Full rescan, used by state-sanity checks that
// have no anchor cell to start from.
func HasRunAnywhere(cells [][]string, mark string, runLength int) bool {
	for r := range cells {
		for c := range cells[r] {
			if cells[r][c] != mark {
				continue
			}
			if RunThrough(cells, r, c, mark) >= runLength {
				return true
			}
		}
	}
	return false
}

// Occupants returns the distinct non-empty marks in scan order.
func Occupants(cells [][]string) []string {
	seen := map[string]bool{}
	marks := []string{}
	for r := range cells {
		for _, m := range cells[r] {
			if m == "" || seen[m] {
				continue
			}
			seen[m] = true
			marks = append(marks, m)
		}
	}
	return marks
}

// Full reports whether no empty cell remains.
func Full(cells [][]string) bool {
	for r := range cells {
		for _, m := range cells[r] {
			if m == "" {
				return false
			}
		}
	}
	return true
}
