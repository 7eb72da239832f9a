package hub

import (
	"encoding/json"
	"errors"
	"fmt"

	hi "github.com/Glxy97/glxy-gaming-platform-sub016/hub/hubinterfaces"
	"github.com/Glxy97/glxy-gaming-platform-sub016/rules"
	"github.com/Glxy97/glxy-gaming-platform-sub016/rules/blockfall"
	"github.com/Glxy97/glxy-gaming-platform-sub016/rules/connectfour"
	"github.com/Glxy97/glxy-gaming-platform-sub016/rules/tictactoe"
	"github.com/Glxy97/glxy-gaming-platform-sub016/rules/wildcard"
)

// Rulesets returns every game family the hub can referee.
func Rulesets() map[rules.GameType]hi.Ruleset {
	return map[rules.GameType]hi.Ruleset{
		rules.GameTicTacToe:   tictactoeRules{},
		rules.GameConnectFour: connectfourRules{},
		rules.GameBlockfall:   blockfallRules{},
		rules.GameWildcard:    wildcardRules{},
	}
}

func decodePair(prior, move json.RawMessage, s, m interface{}) error {
	if err := json.Unmarshal(prior, s); err != nil {
		return fmt.Errorf("undecodable state: %s", err)
	}
	if err := json.Unmarshal(move, m); err != nil {
		return fmt.Errorf("undecodable move: %s", err)
	}
	return nil
}

type tictactoeRules struct{}

func (tictactoeRules) Type() rules.GameType {
	return rules.GameTicTacToe
}

func (tictactoeRules) NewState(playerIDs []string) (json.RawMessage, error) {
	if len(playerIDs) != 2 {
		return nil, fmt.Errorf("tictactoe seats exactly two players, got %d", len(playerIDs))
	}
	return json.Marshal(tictactoe.NewState(playerIDs[0], playerIDs[1]))
}

func (tictactoeRules) Validate(prior, move json.RawMessage) rules.Result {
	var s tictactoe.State
	var m tictactoe.Move
	if err := decodePair(prior, move, &s, &m); err != nil {
		return rules.Structural("%s", err)
	}
	return tictactoe.Validate(s, m)
}

func (tictactoeRules) Apply(prior, move json.RawMessage) (json.RawMessage, error) {
	var s tictactoe.State
	var m tictactoe.Move
	if err := decodePair(prior, move, &s, &m); err != nil {
		return nil, err
	}
	return json.Marshal(tictactoe.Apply(s, m))
}

func (tictactoeRules) LegalMoves(prior, aux json.RawMessage, playerID string) (json.RawMessage, error) {
	var s tictactoe.State
	if err := json.Unmarshal(prior, &s); err != nil {
		return nil, fmt.Errorf("undecodable state: %s", err)
	}
	return json.Marshal(tictactoe.LegalMoves(s))
}

func (tictactoeRules) Score(prior, move json.RawMessage, playerID string) int {
	var s tictactoe.State
	var m tictactoe.Move
	if err := decodePair(prior, move, &s, &m); err != nil {
		return 0
	}
	return tictactoe.Score(s, m, playerID)
}

func (tictactoeRules) Terminal(prior json.RawMessage) (string, bool, error) {
	var s tictactoe.State
	if err := json.Unmarshal(prior, &s); err != nil {
		return "", false, fmt.Errorf("undecodable state: %s", err)
	}
	winner, over := tictactoe.Terminal(s)
	return winner, over, nil
}

type connectfourRules struct{}

func (connectfourRules) Type() rules.GameType {
	return rules.GameConnectFour
}

func (connectfourRules) NewState(playerIDs []string) (json.RawMessage, error) {
	if len(playerIDs) != 2 {
		return nil, fmt.Errorf("connectfour seats exactly two players, got %d", len(playerIDs))
	}
	return json.Marshal(connectfour.NewState(playerIDs[0], playerIDs[1]))
}

func (connectfourRules) Validate(prior, move json.RawMessage) rules.Result {
	var s connectfour.State
	var m connectfour.Move
	if err := decodePair(prior, move, &s, &m); err != nil {
		return rules.Structural("%s", err)
	}
	return connectfour.Validate(s, m)
}

func (connectfourRules) Apply(prior, move json.RawMessage) (json.RawMessage, error) {
	var s connectfour.State
	var m connectfour.Move
	if err := decodePair(prior, move, &s, &m); err != nil {
		return nil, err
	}
	return json.Marshal(connectfour.Apply(s, m))
}

func (connectfourRules) LegalMoves(prior, aux json.RawMessage, playerID string) (json.RawMessage, error) {
	var s connectfour.State
	if err := json.Unmarshal(prior, &s); err != nil {
		return nil, fmt.Errorf("undecodable state: %s", err)
	}
	return json.Marshal(connectfour.LegalMoves(s))
}

func (connectfourRules) Score(prior, move json.RawMessage, playerID string) int {
	var s connectfour.State
	var m connectfour.Move
	if err := decodePair(prior, move, &s, &m); err != nil {
		return 0
	}
	return connectfour.Score(s, m, playerID)
}

func (connectfourRules) Terminal(prior json.RawMessage) (string, bool, error) {
	var s connectfour.State
	if err := json.Unmarshal(prior, &s); err != nil {
		return "", false, fmt.Errorf("undecodable state: %s", err)
	}
	winner, over := connectfour.Terminal(s)
	return winner, over, nil
}

type blockfallRules struct{}

func (blockfallRules) Type() rules.GameType {
	return rules.GameBlockfall
}

func (blockfallRules) NewState(playerIDs []string) (json.RawMessage, error) {
	if len(playerIDs) != 1 {
		return nil, fmt.Errorf("blockfall seats exactly one player, got %d", len(playerIDs))
	}
	return json.Marshal(blockfall.NewState())
}

func (blockfallRules) Validate(prior, move json.RawMessage) rules.Result {
	var s blockfall.State
	var m blockfall.Move
	if err := decodePair(prior, move, &s, &m); err != nil {
		return rules.Structural("%s", err)
	}
	return blockfall.Validate(s, m)
}

func (blockfallRules) Apply(prior, move json.RawMessage) (json.RawMessage, error) {
	var s blockfall.State
	var m blockfall.Move
	if err := decodePair(prior, move, &s, &m); err != nil {
		return nil, err
	}
	return json.Marshal(blockfall.Apply(s, m))
}

func (blockfallRules) LegalMoves(prior, aux json.RawMessage, playerID string) (json.RawMessage, error) {
	if len(aux) == 0 {
		return nil, errors.New("blockfall legal moves require a piece")
	}
	var s blockfall.State
	if err := json.Unmarshal(prior, &s); err != nil {
		return nil, fmt.Errorf("undecodable state: %s", err)
	}
	var p blockfall.Piece
	if err := json.Unmarshal(aux, &p); err != nil {
		return nil, fmt.Errorf("undecodable piece: %s", err)
	}
	return json.Marshal(blockfall.LegalMoves(s, p))
}

func (blockfallRules) Score(prior, move json.RawMessage, playerID string) int {
	var s blockfall.State
	var m blockfall.Move
	if err := decodePair(prior, move, &s, &m); err != nil {
		return 0
	}
	return blockfall.Score(s, m, playerID)
}

func (blockfallRules) Terminal(prior json.RawMessage) (string, bool, error) {
	var s blockfall.State
	if err := json.Unmarshal(prior, &s); err != nil {
		return "", false, fmt.Errorf("undecodable state: %s", err)
	}
	winner, over := blockfall.Terminal(s)
	return winner, over, nil
}

type wildcardRules struct{}

func (wildcardRules) Type() rules.GameType {
	return rules.GameWildcard
}

// The red zero stands in as the flipped card until the table's dealer
// reports a real deal.
func (wildcardRules) NewState(playerIDs []string) (json.RawMessage, error) {
	if len(playerIDs) < 2 {
		return nil, fmt.Errorf("wildcard seats at least two players, got %d", len(playerIDs))
	}
	zero := 0
	top := wildcard.Card{Color: wildcard.ColorRed, Type: wildcard.TypeNumber, Value: &zero}
	return json.Marshal(wildcard.NewState(playerIDs, top))
}

func (wildcardRules) Validate(prior, move json.RawMessage) rules.Result {
	var s wildcard.State
	var m wildcard.Move
	if err := decodePair(prior, move, &s, &m); err != nil {
		return rules.Structural("%s", err)
	}
	return wildcard.Validate(s, m)
}

// skipFor translates the played card into how many seats the turn jumps:
// a skip always jumps one, and at a two-player table a reverse acts as a
// skip instead of handing the turn straight back.
func skipFor(c wildcard.Card, seats int) int {
	switch c.Type {
	case wildcard.TypeSkip:
		return 1
	case wildcard.TypeReverse:
		if seats == 2 {
			return 1
		}
	}
	return 0
}

func (wildcardRules) Apply(prior, move json.RawMessage) (json.RawMessage, error) {
	var s wildcard.State
	var m wildcard.Move
	if err := decodePair(prior, move, &s, &m); err != nil {
		return nil, err
	}
	next := wildcard.Apply(s, m)
	next = wildcard.Advance(next, skipFor(m.Card, len(next.Players)))
	return json.Marshal(next)
}

func (wildcardRules) LegalMoves(prior, aux json.RawMessage, playerID string) (json.RawMessage, error) {
	if len(aux) == 0 {
		return nil, errors.New("wildcard legal moves require a hand")
	}
	var s wildcard.State
	if err := json.Unmarshal(prior, &s); err != nil {
		return nil, fmt.Errorf("undecodable state: %s", err)
	}
	var hand []wildcard.Card
	if err := json.Unmarshal(aux, &hand); err != nil {
		return nil, fmt.Errorf("undecodable hand: %s", err)
	}
	return json.Marshal(wildcard.LegalMoves(s, hand))
}

func (wildcardRules) Score(prior, move json.RawMessage, playerID string) int {
	var s wildcard.State
	var m wildcard.Move
	if err := decodePair(prior, move, &s, &m); err != nil {
		return 0
	}
	return wildcard.Score(s, m, playerID)
}

func (wildcardRules) Terminal(prior json.RawMessage) (string, bool, error) {
	var s wildcard.State
	if err := json.Unmarshal(prior, &s); err != nil {
		return "", false, fmt.Errorf("undecodable state: %s", err)
	}
	winner, over := wildcard.Terminal(s)
	return winner, over, nil
}
