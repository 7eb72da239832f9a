package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	cli "github.com/urfave/cli"

	"github.com/Glxy97/glxy-gaming-platform-sub016/hub"
	hi "github.com/Glxy97/glxy-gaming-platform-sub016/hub/hubinterfaces"
	"github.com/Glxy97/glxy-gaming-platform-sub016/pkg/event"
	"github.com/Glxy97/glxy-gaming-platform-sub016/rules"
	"github.com/Glxy97/glxy-gaming-platform-sub016/rules/blockfall"
	"github.com/Glxy97/glxy-gaming-platform-sub016/rules/wildcard"
)

func main() {
	app := cli.NewApp()
	app.Name = "referee"
	app.Usage = "rule on game moves without trusting the client"
	app.Version = "0.1"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "log-level,l",
			Usage:  "Log `level` for output",
			Value:  "info",
			EnvVar: "LOG_LEVEL",
		},
	}
	app.Before = setLogLevel
	app.Commands = []cli.Command{
		{
			Name:   "check",
			Usage:  "read submissions from stdin, one JSON document per line, and print a verdict for each",
			Action: checkEntry,
		},
		{
			Name:  "demo",
			Usage: "self-play a hosted room using hints",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "game,g",
					Usage:  "Game `type` to play",
					Value:  string(rules.GameTicTacToe),
					EnvVar: "DEMO_GAME",
				},
				cli.IntFlag{
					Name:  "moves,m",
					Usage: "Maximum `number` of moves to play",
					Value: 40,
				},
			},
			Action: demoEntry,
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Error(err)
	}
}

func setLogLevel(c *cli.Context) error {
	switch strings.ToLower(c.String("log-level")) {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	case "fatal":
		log.SetLevel(log.FatalLevel)
	}
	return nil
}

func checkEntry(c *cli.Context) error {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	out := json.NewEncoder(os.Stdout)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		sub := &event.MoveSubmission{}
		if err := json.Unmarshal([]byte(line), sub); err != nil {
			os.Stdout.Write(append(event.WrapError(err), '\n'))
			continue
		}
		if err := out.Encode(hub.Dispatch(sub)); err != nil {
			log.Error(err)
		}
	}
	return scanner.Err()
}

func demoEntry(c *cli.Context) error {
	gameType := rules.GameType(strings.ToUpper(c.String("game")))
	maxMoves := c.Int("moves")

	h := hub.New()
	l := &hi.ChannelListener{
		Name:     "demo",
		Messages: make(chan *hi.MessageToListener, 256),
	}
	if err := h.AttachListener("demo", l); err != nil {
		return err
	}
	go func() {
		for msg := range l.Messages {
			log.Debugf("%s %s: %s", msg.EventChannel, msg.Type, msg.Message)
		}
	}()

	players := seatsFor(gameType)
	u, err := h.CreateRoom(gameType, "Demo", players)
	if err != nil {
		return err
	}
	log.Infof("demo room '%s' playing %s", u, gameType)

	hands := map[string][]wildcard.Card{}
	if gameType == rules.GameWildcard {
		hands = deal(players)
	}

	for i := 0; i < maxMoves; i++ {
		info, ok := h.Rooms()[u]
		if !ok {
			break
		}
		player := currentPlayer(info.State, players[0])
		aux, err := auxFor(gameType, hands, player)
		if err != nil {
			return err
		}
		hint, err := h.Hint(u, player, aux)
		if err != nil {
			log.Infof("no move left for '%s': %s", player, err)
			break
		}
		move, err := buildMove(gameType, hint, hands, player)
		if err != nil {
			return err
		}
		v := h.Submit(&event.MoveSubmission{
			GameType: gameType,
			RoomID:   u,
			PlayerID: player,
			Move:     move,
		})
		if !v.Valid {
			return fmt.Errorf("demo move refused: %s", v.Reason)
		}
		log.Infof("move %d by '%s' accepted", i+1, player)
		if gameType == rules.GameWildcard {
			m := wildcard.Move{}
			if err := json.Unmarshal(move, &m); err == nil {
				hands[player] = removeCard(hands[player], m.Card)
			}
		}
		if v.Over {
			if v.Winner != "" {
				log.Infof("game over, won by '%s'", v.Winner)
			} else {
				log.Info("game over, drawn")
			}
			break
		}
	}
	return h.CloseRoom(u)
}

func seatsFor(gameType rules.GameType) []string {
	switch gameType {
	case rules.GameBlockfall:
		return []string{"solo"}
	case rules.GameWildcard:
		return []string{"ada", "bob", "cyd"}
	default:
		return []string{"x", "o"}
	}
}

type turnState struct {
	CurrentPlayer string `json:"currentPlayer"`
}

func currentPlayer(state json.RawMessage, fallback string) string {
	t := turnState{}
	if err := json.Unmarshal(state, &t); err == nil && t.CurrentPlayer != "" {
		return t.CurrentPlayer
	}
	return fallback
}

var pieceTypes = []string{"I", "O", "T", "S", "Z", "J", "L"}

func auxFor(gameType rules.GameType, hands map[string][]wildcard.Card, player string) (json.RawMessage, error) {
	switch gameType {
	case rules.GameBlockfall:
		p, err := blockfall.NewPiece(pieceTypes[rand.Intn(len(pieceTypes))])
		if err != nil {
			return nil, err
		}
		return json.Marshal(p)
	case rules.GameWildcard:
		return json.Marshal(hands[player])
	}
	return nil, nil
}

// buildMove turns a hint into a submittable move. Card hints need the
// demo's dealt hand attached; piece hints always lock, since
// repositioning actions leave the server board untouched.
func buildMove(gameType rules.GameType, hint json.RawMessage, hands map[string][]wildcard.Card, player string) (json.RawMessage, error) {
	switch gameType {
	case rules.GameWildcard:
		m := wildcard.Move{}
		if err := json.Unmarshal(hint, &m); err != nil {
			return nil, err
		}
		m.Hand = hands[player]
		return json.Marshal(m)
	case rules.GameBlockfall:
		m := blockfall.Move{}
		if err := json.Unmarshal(hint, &m); err != nil {
			return nil, err
		}
		m.Player = player
		m.Action = "hardDrop"
		m.Direction = ""
		return json.Marshal(m)
	}
	return hint, nil
}

// deal shuffles the full 108-card deck and deals the starting hands.
func deal(players []string) map[string][]wildcard.Card {
	deck := []wildcard.Card{}
	for _, color := range []string{wildcard.ColorRed, wildcard.ColorYellow, wildcard.ColorGreen, wildcard.ColorBlue} {
		for value := 0; value <= 9; value++ {
			copies := 2
			if value == 0 {
				copies = 1
			}
			for i := 0; i < copies; i++ {
				v := value
				deck = append(deck, wildcard.Card{Color: color, Type: wildcard.TypeNumber, Value: &v})
			}
		}
		for i := 0; i < 2; i++ {
			deck = append(deck,
				wildcard.Card{Color: color, Type: wildcard.TypeSkip},
				wildcard.Card{Color: color, Type: wildcard.TypeReverse},
				wildcard.Card{Color: color, Type: wildcard.TypeDrawTwo})
		}
	}
	for i := 0; i < 4; i++ {
		deck = append(deck,
			wildcard.Card{Color: wildcard.ColorWild, Type: wildcard.TypeWild},
			wildcard.Card{Color: wildcard.ColorWild, Type: wildcard.TypeWildDrawFour})
	}
	for a, b := range rand.Perm(len(deck)) {
		deck[a], deck[b] = deck[b], deck[a]
	}
	hands := map[string][]wildcard.Card{}
	for i, p := range players {
		hands[p] = append([]wildcard.Card(nil), deck[i*wildcard.StartingHand:(i+1)*wildcard.StartingHand]...)
	}
	return hands
}

func removeCard(hand []wildcard.Card, c wildcard.Card) []wildcard.Card {
	next := []wildcard.Card{}
	removed := false
	for _, h := range hand {
		if !removed && h.Color == c.Color && h.Type == c.Type && eqValue(h.Value, c.Value) {
			removed = true
			continue
		}
		next = append(next, h)
	}
	return next
}

func eqValue(a, b *int) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}
