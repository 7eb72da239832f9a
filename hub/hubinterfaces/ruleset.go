package hubinterfaces

import (
	"encoding/json"

	"github.com/Glxy97/glxy-gaming-platform-sub016/rules"
)

// Ruleset holds the interface required for a game family to be served up
// by the hub. Implementations are pure: every call carries its own state
// and nothing is retained between calls.
type Ruleset interface {
	Type() rules.GameType
	NewState(playerIDs []string) (json.RawMessage, error)
	Validate(prior, move json.RawMessage) rules.Result
	Apply(prior, move json.RawMessage) (json.RawMessage, error)
	// LegalMoves enumerates playable moves; aux carries the per-game
	// extras a family needs, like a hand of cards or a falling piece.
	LegalMoves(prior, aux json.RawMessage, playerID string) (json.RawMessage, error)
	Score(prior, move json.RawMessage, playerID string) int
	Terminal(prior json.RawMessage) (winner string, over bool, err error)
}
