package hub

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"github.com/Glxy97/glxy-gaming-platform-sub016/pkg/event"
	"github.com/Glxy97/glxy-gaming-platform-sub016/rules"
)

// Dispatch rules on a single submission against the caller-supplied prior
// state. Nothing is stored: the verdict carries everything the caller
// needs to continue, including the successor state for a legal move. The
// envelope's player id overrides any id inside the move payload.
func Dispatch(sub *event.MoveSubmission) *event.MoveVerdict {
	rs, ok := Rulesets()[sub.GameType]
	if !ok {
		return &event.MoveVerdict{Result: rules.Structural("unknown game type '%s'", sub.GameType)}
	}
	move := stampPlayer(sub.Move, sub.PlayerID)
	res := rs.Validate(sub.PriorState, move)
	v := &event.MoveVerdict{Result: res}
	if !res.Valid {
		if winner, over, err := rs.Terminal(sub.PriorState); err == nil {
			v.Winner, v.Over = winner, over
		}
		log.Debugf("refused %s move from '%s': %s", sub.GameType, sub.PlayerID, res.Reason)
		return v
	}
	if res.Corrected != nil {
		if b, err := json.Marshal(res.Corrected); err == nil {
			move = b
		}
	}
	next, err := rs.Apply(sub.PriorState, move)
	if err != nil {
		log.Error(err)
		return &event.MoveVerdict{Result: rules.Structural("%s", err)}
	}
	v.State = next
	if winner, over, err := rs.Terminal(next); err == nil {
		v.Winner, v.Over = winner, over
	}
	log.Debugf("accepted %s move from '%s'", sub.GameType, sub.PlayerID)
	return v
}

// stampPlayer overwrites the move payload's player id with the envelope's.
// Undecodable payloads pass through untouched for the validators to refuse.
func stampPlayer(move json.RawMessage, playerID string) json.RawMessage {
	if playerID == "" || len(move) == 0 {
		return move
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(move, &fields); err != nil || fields == nil {
		return move
	}
	fields["playerId"] = playerID
	b, err := json.Marshal(fields)
	if err != nil {
		return move
	}
	return b
}
