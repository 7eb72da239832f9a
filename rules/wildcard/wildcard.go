// Package wildcard validates the turn-based card game: four colors plus a
// wild color, six card types. Hands are never tracked here; the mover's
// hand arrives with every submission and only its consistency is checked.
package wildcard

import (
	"fmt"

	"github.com/Glxy97/glxy-gaming-platform-sub016/rules"
)

// Color tags. ColorWild is reserved for unplayed wild cards.
const (
	ColorRed    = "red"
	ColorYellow = "yellow"
	ColorGreen  = "green"
	ColorBlue   = "blue"
	ColorWild   = "wild"
)

// The six card-type tags, a fixed enumeration on the wire.
const (
	TypeNumber       = "number"
	TypeSkip         = "skip"
	TypeReverse      = "reverse"
	TypeDrawTwo      = "drawTwo"
	TypeWild         = "wild"
	TypeWildDrawFour = "wildDrawFour"
)

// Deck constants, used by state constructors only; the validator itself
// never deals.
const (
	DeckSize     = 108
	StartingHand = 7
)

// Penalty values for scoring a remaining hand.
const (
	penaltyAction = 20
	penaltyWild   = 50
)

// Heuristic weights, advisory only.
const (
	scoreWin       = 1000
	scorePressure  = 15
	scoreWasteWild = -10
)

var realColors = []string{ColorRed, ColorYellow, ColorGreen, ColorBlue}

// Card is one playing card. Value is present exactly for number cards.
type Card struct {
	Color string `json:"color"`
	Type  string `json:"type"`
	Value *int   `json:"value,omitempty"`
}

// PlayerStanding is one seat: who sits there and how many cards they hold.
type PlayerStanding struct {
	ID        string `json:"playerId"`
	HandCount int    `json:"handCount"`
}

// Move plays a card. ChosenColor is required for wild cards and forbidden
// otherwise. Hand is the caller-supplied hand the play is audited against.
type Move struct {
	Player      string `json:"playerId"`
	Card        Card   `json:"card"`
	ChosenColor string `json:"chosenColor,omitempty"`
	Hand        []Card `json:"hand"`
}

// State is the full table state between plays.
type State struct {
	TopCard       Card             `json:"topCard"`
	Direction     int              `json:"direction"`
	CurrentPlayer string           `json:"currentPlayer"`
	Players       []PlayerStanding `json:"players"`
	PendingDraw   int              `json:"pendingDraw"`
	DeckCount     int              `json:"deckCount"`
}

// NewState seats the players with fresh hands and the given top card;
// play starts at the first seat, clockwise.
func NewState(playerIDs []string, top Card) State {
	players := make([]PlayerStanding, len(playerIDs))
	for i, id := range playerIDs {
		players[i] = PlayerStanding{ID: id, HandCount: StartingHand}
	}
	return State{
		TopCard:       top,
		Direction:     1,
		CurrentPlayer: first(playerIDs),
		Players:       players,
		DeckCount:     DeckSize - len(playerIDs)*StartingHand - 1,
	}
}

func first(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

func isWild(cardType string) bool {
	return cardType == TypeWild || cardType == TypeWildDrawFour
}

func realColor(color string) bool {
	for _, c := range realColors {
		if c == color {
			return true
		}
	}
	return false
}

// cardShape reports what is malformed about a card, or "". A top card is
// relaxed: a played wild keeps its wild type but takes the chosen real
// color.
func cardShape(c Card, top bool) string {
	switch c.Type {
	case TypeNumber:
		if c.Value == nil {
			return "number card missing its value"
		}
		if *c.Value < 0 || *c.Value > 9 {
			return fmt.Sprintf("card value must be between 0 and 9, got %d", *c.Value)
		}
		if !realColor(c.Color) {
			return fmt.Sprintf("unknown card color '%s'", c.Color)
		}
	case TypeSkip, TypeReverse, TypeDrawTwo:
		if c.Value != nil {
			return "only number cards carry a value"
		}
		if !realColor(c.Color) {
			return fmt.Sprintf("unknown card color '%s'", c.Color)
		}
	case TypeWild, TypeWildDrawFour:
		if c.Value != nil {
			return "only number cards carry a value"
		}
		if top {
			if c.Color != ColorWild && !realColor(c.Color) {
				return fmt.Sprintf("unknown card color '%s'", c.Color)
			}
		} else if c.Color != ColorWild {
			return "wild cards must carry the wild color"
		}
	default:
		return fmt.Sprintf("unknown card type '%s'", c.Type)
	}
	return ""
}

func cardsEqual(a, b Card) bool {
	if a.Color != b.Color || a.Type != b.Type {
		return false
	}
	if (a.Value == nil) != (b.Value == nil) {
		return false
	}
	return a.Value == nil || *a.Value == *b.Value
}

func inHand(hand []Card, c Card) bool {
	for _, h := range hand {
		if cardsEqual(h, c) {
			return true
		}
	}
	return false
}

// legalAgainst implements the compatibility rule: wild cards always play;
// a non-wild card plays on the same color, the same action type, or the
// same numeric value.
func legalAgainst(c, top Card) bool {
	if isWild(c.Type) {
		return true
	}
	if c.Color == top.Color {
		return true
	}
	switch c.Type {
	case TypeNumber:
		return top.Type == TypeNumber && c.Value != nil && top.Value != nil && *c.Value == *top.Value
	case TypeSkip, TypeReverse, TypeDrawTwo:
		return c.Type == top.Type
	}
	return false
}

func seatIndex(s State, id string) int {
	for i, p := range s.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func copyState(s State) State {
	next := s
	next.Players = append([]PlayerStanding(nil), s.Players...)
	return next
}

// Validate decides whether the play is legal against the supplied state.
// It never mutates its inputs and never errors for caller data.
func Validate(s State, m Move) rules.Result {
	if issue := cardShape(m.Card, false); issue != "" {
		return rules.Structural("played card: %s", issue)
	}
	if issue := cardShape(s.TopCard, true); issue != "" {
		return rules.Structural("top card: %s", issue)
	}
	if s.Direction != 1 && s.Direction != -1 {
		return rules.Structural("direction must be +1 or -1, got %d", s.Direction)
	}
	if len(s.Players) < 2 {
		return rules.Structural("state must seat at least two players")
	}
	seen := map[string]bool{}
	for _, p := range s.Players {
		if p.ID == "" || seen[p.ID] {
			return rules.Structural("players must have distinct non-empty ids")
		}
		seen[p.ID] = true
	}
	for _, p := range s.Players {
		if p.HandCount < 0 {
			return rules.Integrity("negative hand count for player '%s'", p.ID)
		}
	}
	if s.PendingDraw < 0 {
		return rules.Integrity("negative pending draw count")
	}
	if s.DeckCount < 0 {
		return rules.Integrity("negative deck count")
	}
	if seatIndex(s, s.CurrentPlayer) < 0 {
		return rules.Integrity("current player '%s' is not seated at this table", s.CurrentPlayer)
	}
	if winner, over := Terminal(s); over {
		return rules.Rule("game already won by '%s'", winner)
	}
	if m.Player != s.CurrentPlayer {
		return rules.Rule("not your turn, waiting on '%s'", s.CurrentPlayer)
	}
	for i, c := range m.Hand {
		if issue := cardShape(c, false); issue != "" {
			return rules.Structural("hand card %d: %s", i, issue)
		}
	}
	if !inHand(m.Hand, m.Card) {
		return rules.Rule("played card is not in the supplied hand")
	}
	if !legalAgainst(m.Card, s.TopCard) {
		return rules.Rule("card does not match the top card's color, type, or value")
	}
	if isWild(m.Card.Type) {
		if m.ChosenColor == "" {
			return rules.Structural("wild card requires a chosen color")
		}
		if !realColor(m.ChosenColor) {
			return rules.Structural("unknown chosen color '%s'", m.ChosenColor)
		}
	} else if m.ChosenColor != "" {
		return rules.Structural("only wild cards carry a chosen color")
	}
	return rules.OK()
}

// Apply replaces the top card, runs the card's side effects, and drops the
// mover's hand count by one. The turn does not advance here; callers run
// Advance with the skip count they derive from the card. Applying an
// unvalidated move panics.
func Apply(s State, m Move) State {
	if seatIndex(s, m.Player) < 0 {
		panic(fmt.Sprintf("wildcard: apply for unseated player '%s'", m.Player))
	}
	top := m.Card
	if isWild(m.Card.Type) {
		if m.ChosenColor == "" {
			panic("wildcard: apply of a wild card without a chosen color")
		}
		top.Color = m.ChosenColor
	}
	next := copyState(s)
	next.TopCard = top
	switch m.Card.Type {
	case TypeReverse:
		next.Direction = -s.Direction
	case TypeDrawTwo:
		next.PendingDraw = 2
	case TypeWildDrawFour:
		next.PendingDraw = 4
	}
	return AdjustHandCount(next, m.Player, -1)
}

// NextIndex resolves the turn-advancement arithmetic:
// (current + direction + skip*direction) mod playerCount, wrapped into
// range for negative operands.
func NextIndex(current, direction, skip, playerCount int) int {
	if playerCount <= 0 {
		return 0
	}
	idx := (current + direction + skip*direction) % playerCount
	if idx < 0 {
		idx += playerCount
	}
	return idx
}

// Advance moves CurrentPlayer along the seat order. The skip count comes
// from the caller based on the played card's type; this package resolves
// only the index arithmetic. Advancing from an unseated player panics.
func Advance(s State, skipCount int) State {
	idx := seatIndex(s, s.CurrentPlayer)
	if idx < 0 {
		panic(fmt.Sprintf("wildcard: advance from unseated player '%s'", s.CurrentPlayer))
	}
	next := copyState(s)
	next.CurrentPlayer = s.Players[NextIndex(idx, s.Direction, skipCount, len(s.Players))].ID
	return next
}

// AdjustHandCount applies an externally reported hand-count delta, clamped
// at zero. Unknown players are left untouched.
func AdjustHandCount(s State, playerID string, delta int) State {
	next := copyState(s)
	for i, p := range next.Players {
		if p.ID != playerID {
			continue
		}
		p.HandCount += delta
		if p.HandCount < 0 {
			p.HandCount = 0
		}
		next.Players[i] = p
	}
	return next
}

// LegalMoves enumerates every playable card from the supplied hand for the
// current player; wild cards expand to one descriptor per chosen color.
func LegalMoves(s State, hand []Card) []Move {
	if _, over := Terminal(s); over {
		return nil
	}
	moves := []Move{}
	for _, c := range hand {
		if cardShape(c, false) != "" || !legalAgainst(c, s.TopCard) {
			continue
		}
		if isWild(c.Type) {
			for _, color := range realColors {
				moves = append(moves, Move{Player: s.CurrentPlayer, Card: c, ChosenColor: color})
			}
			continue
		}
		moves = append(moves, Move{Player: s.CurrentPlayer, Card: c})
	}
	return moves
}

func penaltyValue(c Card) int {
	switch c.Type {
	case TypeNumber:
		if c.Value == nil {
			return 0
		}
		return *c.Value
	case TypeSkip, TypeReverse, TypeDrawTwo:
		return penaltyAction
	case TypeWild, TypeWildDrawFour:
		return penaltyWild
	}
	return 0
}

// HandPenalty scores a remaining hand: numeric cards at face value,
// skip/reverse/drawTwo at 20, wild variants at 50.
func HandPenalty(hand []Card) int {
	total := 0
	for _, c := range hand {
		total += penaltyValue(c)
	}
	return total
}

// Score rates a candidate play with a shallow single-ply heuristic:
// dumping expensive cards first, a winning play highest, penalty pressure
// when the next seat runs low, and a nudge against wasting wilds.
func Score(s State, m Move, playerID string) int {
	if cardShape(m.Card, false) != "" || !legalAgainst(m.Card, s.TopCard) {
		return 0
	}
	score := penaltyValue(m.Card)
	idx := seatIndex(s, playerID)
	if idx >= 0 && s.Players[idx].HandCount == 1 {
		score += scoreWin
	}
	if idx >= 0 {
		next := s.Players[NextIndex(idx, s.Direction, 0, len(s.Players))]
		pressure := m.Card.Type == TypeSkip || m.Card.Type == TypeReverse ||
			m.Card.Type == TypeDrawTwo || m.Card.Type == TypeWildDrawFour
		if pressure && next.HandCount <= 2 {
			score += scorePressure
		}
	}
	if isWild(m.Card.Type) {
		for _, c := range m.Hand {
			if !isWild(c.Type) && legalAgainst(c, s.TopCard) {
				score += scoreWasteWild
				break
			}
		}
	}
	return score
}

// Terminal reports the first seat holding zero cards as the winner.
// Repeated calls against an unchanged state always agree.
func Terminal(s State) (string, bool) {
	for _, p := range s.Players {
		if p.HandCount == 0 {
			return p.ID, true
		}
	}
	return "", false
}
