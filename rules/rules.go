// Package rules holds the verdict contract shared by every game validator.
// Validators are pure and stateless: they never raise for caller-controlled
// data, they refuse it with a Result instead.
package rules

import "fmt"

// GameType identifies one of the supported game families.
type GameType string

const (
	GameTicTacToe   GameType = "TICTACTOE"
	GameConnectFour GameType = "CONNECTFOUR"
	GameBlockfall   GameType = "BLOCKFALL"
	GameWildcard    GameType = "WILDCARD"
)

// Kind classifies why a move was refused.
type Kind string

const (
	// KindStructural marks malformed board or move shapes, wrong
	// dimensions, missing fields, and unknown enum tags.
	KindStructural Kind = "STRUCTURAL_ERROR"
	// KindRule marks well-formed but illegal moves, like playing out of
	// turn or onto an occupied cell.
	KindRule Kind = "RULE_VIOLATION"
	// KindIntegrity marks prior states that are internally inconsistent.
	// Callers should treat these as a tampering or desync signal rather
	// than ordinary gameplay rejection.
	KindIntegrity Kind = "STATE_INTEGRITY_VIOLATION"
)

// Result is the uniform validation verdict. Corrected, when present, is a
// legal move value computed in place of the client's approximate
// submission, e.g. a resolved gravity-drop row.
type Result struct {
	Valid     bool        `json:"valid"`
	Kind      Kind        `json:"kind,omitempty"`
	Reason    string      `json:"reason,omitempty"`
	Corrected interface{} `json:"correctedMove,omitempty"`
}

// OK accepts a move as submitted.
func OK() Result {
	return Result{Valid: true}
}

// OKCorrected accepts a move but substitutes a corrected value the caller
// must use instead of the raw submission.
func OKCorrected(corrected interface{}) Result {
	return Result{Valid: true, Corrected: corrected}
}

// Structural refuses a malformed submission.
func Structural(format string, a ...interface{}) Result {
	return Result{Kind: KindStructural, Reason: fmt.Sprintf(format, a...)}
}

// Rule refuses a well-formed but illegal submission.
func Rule(format string, a ...interface{}) Result {
	return Result{Kind: KindRule, Reason: fmt.Sprintf(format, a...)}
}

// Integrity refuses a submission whose prior state fails a sanity check.
func Integrity(format string, a ...interface{}) Result {
	return Result{Kind: KindIntegrity, Reason: fmt.Sprintf(format, a...)}
}

// Repaired refuses a submission but offers a best-effort corrected move
// that would have been accepted.
func Repaired(kind Kind, corrected interface{}, format string, a ...interface{}) Result {
	return Result{Kind: kind, Reason: fmt.Sprintf(format, a...), Corrected: corrected}
}
