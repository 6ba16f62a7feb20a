package net

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/peterkuimelis/rpsx/internal/game"
	"github.com/peterkuimelis/rpsx/internal/log"
)

// DefaultSaveFile is used when a save or load request names no path.
const DefaultSaveFile = "rpsx-save.yaml"

// SessionConfig configures matches started by a Session.
type SessionConfig struct {
	DeckFile string          // YAML deck file for "join"; empty = standard deck
	SaveDir  string          // when set, save paths must stay inside it
	Seed     int64           // 0 = random
	Logger   log.EventLogger // optional mirror of every match event
}

// Session runs one match on behalf of a single client. It turns client
// messages into match operations and collects the events they produce.
type Session struct {
	cfg SessionConfig

	mu      sync.Mutex
	match   *game.Match
	seq     int
	pending []log.GameEvent
}

// NewSession creates a session with no match in progress.
func NewSession(cfg SessionConfig) *Session {
	return &Session{cfg: cfg}
}

// Log implements log.EventLogger. Events are numbered for the life of the
// session and held only until the next reply delivers them.
func (s *Session) Log(event log.GameEvent) {
	s.seq++
	event.Seq = s.seq
	s.pending = append(s.pending, event)
	if s.cfg.Logger != nil {
		s.cfg.Logger.Log(event)
	}
}

// Events implements log.EventLogger. It returns the events not yet delivered.
func (s *Session) Events() []log.GameEvent {
	return s.pending
}

// Match returns the current match, or nil before "join" or "load".
func (s *Session) Match() *game.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match
}

// Handle applies one client message and returns the replies in send order.
func (s *Session) Handle(msg ClientMessage) []ServerMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	var reply []ServerMessage
	var err error
	switch msg.Type {
	case "join":
		reply, err = s.join(msg)
	case "play":
		reply, err = s.play(msg)
	case "state":
		reply, err = s.state()
	case "save":
		reply, err = s.save(msg)
	case "load":
		reply, err = s.load(msg)
	default:
		err = fmt.Errorf("unknown message type %q", msg.Type)
	}

	out := s.drainNotifications()
	if err != nil {
		return append(out, ServerMessage{Type: "error", Error: err.Error()})
	}
	return append(out, reply...)
}

func (s *Session) matchConfig() game.MatchConfig {
	return game.MatchConfig{Logger: s, Seed: s.cfg.Seed}
}

func (s *Session) join(msg ClientMessage) ([]ServerMessage, error) {
	deckNumber := msg.DeckNumber
	if deckNumber == 0 {
		deckNumber = 1
	}
	_, deck, err := game.DeckByNumber(s.cfg.DeckFile, deckNumber)
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}

	cfg := s.matchConfig()
	cfg.PlayerDeck = deck
	s.match = game.NewMatch(msg.PlayerName, cfg)
	return s.stateReply("state"), nil
}

func (s *Session) play(msg ClientMessage) ([]ServerMessage, error) {
	m, err := s.current()
	if err != nil {
		return nil, err
	}
	move, err := parseMove(msg.Base, msg.Power)
	if err != nil {
		return nil, err
	}

	rec, err := m.PlayTurn(move)
	if err != nil {
		return nil, err
	}
	turn := ServerMessage{Type: "turn", Turn: BuildTurnView(rec)}
	if rec.GameOver {
		return append([]ServerMessage{turn}, s.gameOver()), nil
	}

	report, err := m.DrawForEndOfTurn()
	if err != nil {
		return nil, err
	}
	turn.Draw = BuildDrawView(report)
	return append([]ServerMessage{turn}, s.stateReply("state")...), nil
}

func (s *Session) state() ([]ServerMessage, error) {
	m, err := s.current()
	if err != nil {
		return nil, err
	}
	if m.IsOver {
		return []ServerMessage{s.gameOver()}, nil
	}
	return s.stateReply("state"), nil
}

func (s *Session) save(msg ClientMessage) ([]ServerMessage, error) {
	m, err := s.current()
	if err != nil {
		return nil, err
	}
	path, err := s.savePath(msg.Path)
	if err != nil {
		return nil, err
	}
	if err := game.WriteSaveFile(path, m.Serialize()); err != nil {
		return nil, fmt.Errorf("save: %w", err)
	}
	reply := s.stateReply("saved")
	reply[0].Path = path
	return reply, nil
}

func (s *Session) load(msg ClientMessage) ([]ServerMessage, error) {
	path, err := s.savePath(msg.Path)
	if err != nil {
		return nil, err
	}
	snap, err := game.ReadSaveFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	m, err := game.LoadMatch(snap, s.matchConfig())
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	s.match = m
	if m.IsOver {
		return []ServerMessage{s.gameOver()}, nil
	}
	return s.stateReply("state"), nil
}

func (s *Session) current() (*game.Match, error) {
	if s.match == nil {
		return nil, errors.New("no match in progress: send join or load first")
	}
	return s.match, nil
}

func (s *Session) savePath(path string) (string, error) {
	if path == "" {
		path = DefaultSaveFile
	}
	if s.cfg.SaveDir == "" {
		return path, nil
	}
	if !filepath.IsLocal(path) {
		return "", fmt.Errorf("save path %q must be relative to the save directory", path)
	}
	return filepath.Join(s.cfg.SaveDir, path), nil
}

func (s *Session) stateReply(typ string) []ServerMessage {
	return []ServerMessage{{Type: typ, State: BuildStateView(s.match)}}
}

func (s *Session) gameOver() ServerMessage {
	winner, _ := s.match.Winner()
	return ServerMessage{
		Type:   "game_over",
		State:  BuildStateView(s.match),
		Winner: winner.String(),
		Result: s.match.Result(),
	}
}

func (s *Session) drainNotifications() []ServerMessage {
	out := make([]ServerMessage, 0, len(s.pending)+2)
	for _, event := range s.pending {
		ev := BuildEventView(event)
		out = append(out, ServerMessage{Type: "notify", Event: &ev})
	}
	s.pending = nil
	return out
}

// parseMove resolves card names, ignoring case, into a move. The match
// itself checks that the cards are in hand.
func parseMove(base, power string) (game.Move, error) {
	var move game.Move
	var err error
	if move.Base, err = lookupCard(base); err != nil {
		return game.Move{}, fmt.Errorf("%w: base: %v", game.ErrInvalidMove, err)
	}
	if strings.TrimSpace(power) == "" {
		return move, nil
	}
	if move.Power, err = lookupCard(power); err != nil {
		return game.Move{}, fmt.Errorf("%w: power: %v", game.ErrInvalidMove, err)
	}
	return move, nil
}

func lookupCard(name string) (*game.Card, error) {
	name = strings.TrimSpace(name)
	for _, known := range game.CatalogOrder {
		if strings.EqualFold(known, name) {
			return game.FindCard(known)
		}
	}
	return nil, fmt.Errorf("unknown card %q", name)
}
