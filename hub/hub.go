// Package hub hosts game rooms and routes move submissions through the
// rules engine. Each room keeps the authoritative state for its match; a
// submission carrying its own claimed state is audited against the
// room's copy before any ruling.
package hub

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	namesgenerator "github.com/moby/moby/pkg/namesgenerator"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"

	hi "github.com/Glxy97/glxy-gaming-platform-sub016/hub/hubinterfaces"
	"github.com/Glxy97/glxy-gaming-platform-sub016/pkg/channels"
	"github.com/Glxy97/glxy-gaming-platform-sub016/pkg/event"
	"github.com/Glxy97/glxy-gaming-platform-sub016/rules"
)

// Room Statuses
const (
	StatusCreated  = "Created"
	StatusStarted  = "Started"
	StatusFinished = "Finished"
)

// Room is one hosted match: the authoritative state plus its bookkeeping.
type Room struct {
	mtx      sync.Mutex
	UUID     string
	Name     string
	GameType rules.GameType
	Status   string
	Players  []string
	Created  time.Time
	State    json.RawMessage
}

// RoomInfo is the listener-facing snapshot of a room.
type RoomInfo struct {
	UUID     string          `json:"uuid"`
	Name     string          `json:"name"`
	GameType rules.GameType  `json:"gameType"`
	Status   string          `json:"status"`
	Players  []string        `json:"players"`
	Created  time.Time       `json:"created"`
	State    json.RawMessage `json:"state,omitempty"`
}

func (r *Room) info() *RoomInfo {
	return &RoomInfo{
		UUID:     r.UUID,
		Name:     r.Name,
		GameType: r.GameType,
		Status:   r.Status,
		Players:  append([]string(nil), r.Players...),
		Created:  r.Created,
		State:    append(json.RawMessage(nil), r.State...),
	}
}

// Info snapshots the room for listeners and the room list.
func (r *Room) Info() *RoomInfo {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return r.info()
}

type roomFinished struct {
	UUID   string `json:"uuid"`
	Winner string `json:"winner,omitempty"`
}

// Hub is the room registry. Room state mutates under each room's own
// lock, so rulings in different rooms never wait on each other.
type Hub struct {
	rmtx     sync.RWMutex
	rooms    map[string]*Room
	lmtx     sync.RWMutex
	lobby    map[string]hi.RoomListener
	rulesets map[rules.GameType]hi.Ruleset
}

// New will initialize a new hub with every served game family registered.
func New() *Hub {
	return &Hub{
		rooms:    make(map[string]*Room),
		lobby:    make(map[string]hi.RoomListener),
		rulesets: Rulesets(),
	}
}

// CreateRoom opens a room for the given game family and seats the
// players. An empty name draws a generated one.
func (h *Hub) CreateRoom(gameType rules.GameType, name string, playerIDs []string) (string, error) {
	rs, ok := h.rulesets[gameType]
	if !ok {
		return "", fmt.Errorf("unknown game type '%s'", gameType)
	}
	state, err := rs.NewState(playerIDs)
	if err != nil {
		return "", err
	}
	u := uuid.NewV4().String()
	if name == "" {
		genName := strings.Split(namesgenerator.GetRandomName(0), "_")
		name = fmt.Sprintf("%s %s", strings.Title(genName[0]), strings.Title(genName[1]))
	}
	room := &Room{
		UUID:     u,
		Name:     name,
		GameType: gameType,
		Status:   StatusCreated,
		Players:  append([]string(nil), playerIDs...),
		Created:  time.Now(),
		State:    state,
	}
	h.rmtx.Lock()
	h.rooms[u] = room
	h.rmtx.Unlock()
	h.UpdateRoomList()
	log.Debugf("room '%s' created", u)
	return u, nil
}

// CloseRoom finishes and forgets a room.
func (h *Hub) CloseRoom(u string) error {
	if u == "" {
		return errors.New("UUID empty")
	}
	h.rmtx.Lock()
	room, ok := h.rooms[u]
	if ok {
		delete(h.rooms, u)
	}
	h.rmtx.Unlock()
	if !ok {
		return fmt.Errorf("could not find room with UUID '%s'", u)
	}
	room.mtx.Lock()
	room.Status = StatusFinished
	room.mtx.Unlock()
	h.UpdateRoomList()
	log.Debugf("room '%s' closed", u)
	return nil
}

// Rooms snapshots every hosted room keyed by UUID.
func (h *Hub) Rooms() map[string]*RoomInfo {
	h.rmtx.RLock()
	defer h.rmtx.RUnlock()
	rooms := make(map[string]*RoomInfo, len(h.rooms))
	for u, r := range h.rooms {
		rooms[u] = r.Info()
	}
	return rooms
}

// Submit rules on a move against the room's authoritative state. A legal
// move advances the room and broadcasts the fresh state; the verdict is
// returned to the submitter either way. The envelope's player id
// overrides any id inside the move payload.
func (h *Hub) Submit(sub *event.MoveSubmission) *event.MoveVerdict {
	if sub.RoomID == "" {
		return &event.MoveVerdict{Result: rules.Structural("missing room UUID")}
	}
	h.rmtx.RLock()
	room, ok := h.rooms[sub.RoomID]
	h.rmtx.RUnlock()
	if !ok {
		return &event.MoveVerdict{Result: rules.Structural("could not find room with UUID '%s'", sub.RoomID)}
	}
	room.mtx.Lock()
	defer room.mtx.Unlock()
	if !seated(room.Players, sub.PlayerID) {
		return &event.MoveVerdict{Result: rules.Rule("player '%s' is not seated in room '%s'", sub.PlayerID, sub.RoomID)}
	}
	if len(sub.PriorState) > 0 && !jsonEqual(sub.PriorState, room.State) {
		log.Debugf("room '%s' state mismatch from '%s'", room.UUID, sub.PlayerID)
		return &event.MoveVerdict{Result: rules.Integrity("submitted state diverges from the room state")}
	}
	rs := h.rulesets[room.GameType]
	move := stampPlayer(sub.Move, sub.PlayerID)
	res := rs.Validate(room.State, move)
	v := &event.MoveVerdict{Result: res}
	if !res.Valid {
		if winner, over, err := rs.Terminal(room.State); err == nil {
			v.Winner, v.Over = winner, over
		}
		log.Debugf("room '%s' refused move from '%s': %s", room.UUID, sub.PlayerID, res.Reason)
		return v
	}
	if res.Corrected != nil {
		if b, err := json.Marshal(res.Corrected); err == nil {
			move = b
		}
	}
	next, err := rs.Apply(room.State, move)
	if err != nil {
		log.Error(err)
		return &event.MoveVerdict{Result: rules.Structural("%s", err)}
	}
	room.State = next
	if room.Status == StatusCreated {
		room.Status = StatusStarted
	}
	v.State = next
	winner := ""
	if w, over, err := rs.Terminal(next); err == nil {
		v.Winner, v.Over = w, over
		if over {
			room.Status = StatusFinished
			winner = w
		}
	}
	h.broadcastRoom(room.info(), winner)
	log.Debugf("room '%s' accepted move from '%s'", room.UUID, sub.PlayerID)
	return v
}

// Hint picks the highest-scoring legal move for a player. aux carries the
// same per-game extras LegalMoves needs, like a hand or a falling piece.
func (h *Hub) Hint(roomUUID, playerID string, aux json.RawMessage) (json.RawMessage, error) {
	h.rmtx.RLock()
	room, ok := h.rooms[roomUUID]
	h.rmtx.RUnlock()
	if !ok {
		return nil, fmt.Errorf("could not find room with UUID '%s'", roomUUID)
	}
	rs := h.rulesets[room.GameType]
	room.mtx.Lock()
	state := append(json.RawMessage(nil), room.State...)
	room.mtx.Unlock()
	moves, err := rs.LegalMoves(state, aux, playerID)
	if err != nil {
		return nil, err
	}
	var candidates []json.RawMessage
	if err := json.Unmarshal(moves, &candidates); err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, errors.New("no legal moves available")
	}
	best := candidates[0]
	bestScore := rs.Score(state, best, playerID)
	for _, c := range candidates[1:] {
		if score := rs.Score(state, c, playerID); score > bestScore {
			best, bestScore = c, score
		}
	}
	log.Debugf("room '%s' hint for '%s' scored %d", roomUUID, playerID, bestScore)
	return best, nil
}

// AttachListener adds a listener to the lobby and sends it the current
// room list.
func (h *Hub) AttachListener(u string, l hi.RoomListener) error {
	if l == nil {
		return errors.New("missing listener")
	}
	h.lmtx.Lock()
	h.lobby[u] = l
	h.lmtx.Unlock()
	log.Debugf("listener '%s' attached", u)
	return h.UpdateRoomList(l)
}

// DetachListener drops a listener from the lobby.
func (h *Hub) DetachListener(u string) error {
	h.lmtx.Lock()
	defer h.lmtx.Unlock()
	if _, ok := h.lobby[u]; !ok {
		return fmt.Errorf("listener with uuid '%s' not in lobby", u)
	}
	delete(h.lobby, u)
	log.Debugf("listener '%s' detached", u)
	return nil
}

// UpdateRoomList sends the room list to the given listeners, or to the
// whole lobby when none are named.
func (h *Hub) UpdateRoomList(listeners ...hi.RoomListener) error {
	h.rmtx.RLock()
	infos := make(map[string]*RoomInfo, len(h.rooms))
	for u, r := range h.rooms {
		infos[u] = r.Info()
	}
	h.rmtx.RUnlock()
	rooms, err := json.Marshal(infos)
	if err != nil {
		log.Error(err)
		return err
	}
	targets := listeners
	if len(targets) == 0 {
		h.lmtx.RLock()
		for _, l := range h.lobby {
			targets = append(targets, l)
		}
		h.lmtx.RUnlock()
	}
	for _, l := range targets {
		if err := l.MessageListener(&hi.MessageToListener{
			EventChannel: channels.Global,
			Type:         "ROOM_LIST",
			Message:      string(rooms),
		}); err != nil {
			log.Error(err)
		}
	}
	log.Debugf("send ROOM_LIST to %d listeners", len(targets))
	return nil
}

func (h *Hub) broadcastRoom(info *RoomInfo, winner string) {
	b, err := json.Marshal(info)
	if err != nil {
		log.Error(err)
		return
	}
	msgs := []*hi.MessageToListener{{
		EventChannel: channels.Room,
		Type:         "ROOM_STATE",
		Message:      string(b),
	}}
	if info.Status == StatusFinished {
		if fin, err := json.Marshal(&roomFinished{UUID: info.UUID, Winner: winner}); err == nil {
			msgs = append(msgs, &hi.MessageToListener{
				EventChannel: channels.Room,
				Type:         "ROOM_FINISHED",
				Message:      string(fin),
			})
		}
	}
	h.lmtx.RLock()
	defer h.lmtx.RUnlock()
	for _, l := range h.lobby {
		if err := l.MessageListener(msgs...); err != nil {
			log.Error(err)
		}
	}
	log.Debugf("send ROOM_STATE to %d listeners", len(h.lobby))
}

func seated(players []string, playerID string) bool {
	for _, p := range players {
		if p == playerID {
			return true
		}
	}
	return false
}

// jsonEqual compares two documents structurally, so key order and
// whitespace never count as divergence.
func jsonEqual(a, b json.RawMessage) bool {
	var av, bv interface{}
	if err := json.Unmarshal(a, &av); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bv); err != nil {
		return false
	}
	return reflect.DeepEqual(av, bv)
}
