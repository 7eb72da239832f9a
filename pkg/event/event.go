package event

import (
	"encoding/json"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Glxy97/glxy-gaming-platform-sub016/rules"
)

// General is the envelope every message travels in. The event name routes
// to a channel module and everything else flattens into the payload.
type General struct {
	Event   string
	Payload map[string]interface{}
}

func (g *General) MarshalJSON() ([]byte, error) {
	e := map[string]interface{}{}
	if g.Event != "" {
		e["event"] = g.Event
	}
	for k, v := range g.Payload {
		e[k] = v
	}
	if b, err := json.Marshal(e); err == nil {
		return b, nil
	}
	return []byte(""), nil
}

// Colon-chained event names like "ROOM:STATE" keep the first segment as
// the routable event and push the remainder into the payload.
func (g *General) UnmarshalJSON(b []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if g.Payload == nil {
		g.Payload = map[string]interface{}{}
	}
	for k, v := range m {
		if k == "event" {
			if e, ok := m["event"].(string); ok {
				events := strings.Split(e, ":")
				g.Event = events[0]
				if len(events) > 1 {
					g.Payload["event"] = strings.Join(events[1:], ":")
				}
			}
		} else {
			g.Payload[k] = v
		}
	}
	return nil
}

// MoveSubmission is one candidate move against a caller-supplied prior
// state. Move and PriorState stay raw until the named game decodes them.
type MoveSubmission struct {
	GameType   rules.GameType  `json:"gameType"`
	RoomID     string          `json:"roomId,omitempty"`
	PlayerID   string          `json:"playerId"`
	Move       json.RawMessage `json:"move"`
	PriorState json.RawMessage `json:"state"`
}

// MoveVerdict is the ruling on one submission: the validation result,
// the successor state when the move was applied, and the terminal status.
type MoveVerdict struct {
	rules.Result
	State  json.RawMessage `json:"state,omitempty"`
	Winner string          `json:"winner,omitempty"`
	Over   bool            `json:"over"`
}

func WrapError(err error) []byte {
	msg, merr := json.Marshal(&General{
		Event: "ERROR",
		Payload: map[string]interface{}{
			"error": err.Error(),
		},
	})
	if merr != nil {
		log.Errorf("error wrapping err.Error() %s", err.Error())
		return []byte(``)
	}
	return msg
}

func WrapValues(t string, keyvalues map[string]interface{}) []byte {
	msg, err := json.Marshal(&General{
		Event:   t,
		Payload: keyvalues,
	})
	if err != nil {
		log.Errorf("error wrapping keyvalues %v", keyvalues)
		return []byte(``)
	}
	return msg
}

func WrapValue(t string, key, value string) []byte {
	return WrapValues(t, map[string]interface{}{key: value})
}
