package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/peterkuimelis/rpsx/internal/game"
	"github.com/peterkuimelis/rpsx/internal/log"
)

// NetworkController serves a Session over a connection, one JSON message
// per line in each direction.
type NetworkController struct {
	conn    net.Conn
	enc     *json.Encoder
	dec     *json.Decoder
	session *Session
	mu      sync.Mutex
}

// NewNetworkController creates a new controller for the given connection.
func NewNetworkController(conn net.Conn, session *Session) *NetworkController {
	return &NetworkController{
		conn:    conn,
		enc:     json.NewEncoder(conn),
		dec:     json.NewDecoder(conn),
		session: session,
	}
}

// Serve answers client messages until the client quits, disconnects or ctx
// is cancelled. A clean disconnect is not an error.
func (nc *NetworkController) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { nc.conn.Close() })
	defer stop()

	for {
		msg, err := nc.recv()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
				return nil
			}
			return fmt.Errorf("recv: %w", err)
		}
		if msg.Type == "quit" {
			return nil
		}
		for _, reply := range nc.session.Handle(msg) {
			if err := nc.Send(reply); err != nil {
				return fmt.Errorf("send %s: %w", reply.Type, err)
			}
		}
	}
}

// Send writes one server message to the client.
func (nc *NetworkController) Send(msg ServerMessage) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.enc.Encode(msg)
}

func (nc *NetworkController) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := nc.dec.Decode(&msg)
	return msg, err
}

// BuildStateView creates a StateView from the human's perspective. The AI's
// hand is reported only by size.
func BuildStateView(m *game.Match) *StateView {
	if m == nil {
		return nil
	}
	sv := &StateView{
		PlayerName: m.PlayerName,
		Turn:       m.TurnCount,
		Stage:      m.Stage.String(),
		IsOver:     m.IsOver,
		Result:     m.Result(),
		You:        buildPlayerView(m.Player),
		Opponent:   buildPlayerView(m.AI),
	}
	for i, c := range m.Player.Hand {
		sv.You.Hand = append(sv.You.Hand, BuildCardView(i, c))
	}
	return sv
}

func buildPlayerView(c *game.Combatant) PlayerView {
	return PlayerView{
		HP:            c.HP,
		HandCount:     len(c.Hand),
		DeckCount:     c.DeckCount(),
		DiscardCount:  len(c.Discard),
		IsStunned:     c.IsStunned,
		LastReshuffle: c.LastReshuffle.String(),
	}
}

// BuildCardView describes a card at the given position.
func BuildCardView(index int, c *game.Card) CardView {
	cv := CardView{
		Index:       index,
		Name:        c.Name.String(),
		Kind:        c.Kind.String(),
		Description: c.Description,
	}
	if c.IsBase() {
		cv.Damage = c.Damage
	} else {
		cv.Effect = c.Effect.String()
		cv.Value = c.Value
	}
	return cv
}

// BuildTurnView converts a turn record for the client.
func BuildTurnView(rec game.TurnRecord) *TurnView {
	return &TurnView{
		Turn:            rec.Turn,
		You:             moveView(rec.PlayerMove),
		Opponent:        moveView(rec.AIMove),
		Winner:          rec.Result.Winner.String(),
		DamageDealt:     rec.Result.PlayerDamage,
		DamageTaken:     rec.Result.AIDamage,
		YouStunned:      rec.Result.PlayerStunned,
		OpponentStunned: rec.Result.AIStunned,
		GameOver:        rec.GameOver,
	}
}

func moveView(mv game.Move) MoveView {
	v := MoveView{Base: mv.Base.String()}
	if mv.Power != nil {
		v.Power = mv.Power.String()
	}
	return v
}

// BuildDrawView converts an end-of-turn draw report for the client.
func BuildDrawView(r game.DrawReport) *DrawView {
	return &DrawView{
		YouReshuffled:      r.PlayerReshuffled,
		YouReason:          r.PlayerReason.String(),
		OpponentReshuffled: r.AIReshuffled,
		OpponentReason:     r.AIReason.String(),
	}
}

// BuildEventView converts a logged event for the client.
func BuildEventView(event log.GameEvent) EventView {
	return EventView{
		Turn:    event.Turn,
		Phase:   event.Phase,
		Player:  event.Player,
		Type:    event.Type.String(),
		Card:    event.Card,
		Details: event.Details,
	}
}
