package net

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/peterkuimelis/rpsx/internal/game"
	"github.com/peterkuimelis/rpsx/internal/log"
)

// last returns the message that ends a reply.
func last(t *testing.T, msgs []ServerMessage) ServerMessage {
	t.Helper()
	if len(msgs) == 0 {
		t.Fatal("empty reply")
	}
	return msgs[len(msgs)-1]
}

func ofType(msgs []ServerMessage, typ string) []ServerMessage {
	var out []ServerMessage
	for _, m := range msgs {
		if m.Type == typ {
			out = append(out, m)
		}
	}
	return out
}

// firstBase returns the first Base card in the visible hand.
func firstBase(t *testing.T, sv *StateView) string {
	t.Helper()
	for _, cv := range sv.You.Hand {
		if cv.Kind == "Base" {
			return cv.Name
		}
	}
	t.Fatalf("no base card in hand %+v", sv.You.Hand)
	return ""
}

func joinedSession(t *testing.T, cfg SessionConfig) (*Session, *StateView) {
	t.Helper()
	s := NewSession(cfg)
	reply := s.Handle(ClientMessage{Type: "join", PlayerName: "Ada"})
	msg := last(t, reply)
	if msg.Type != "state" {
		t.Fatalf("join reply ended with %q: %s", msg.Type, msg.Error)
	}
	return s, msg.State
}

func TestSessionRequiresMatch(t *testing.T) {
	s := NewSession(SessionConfig{Seed: 1})
	for _, typ := range []string{"play", "state", "save"} {
		msg := last(t, s.Handle(ClientMessage{Type: typ, Base: "Rock"}))
		if msg.Type != "error" || !strings.Contains(msg.Error, "no match") {
			t.Errorf("%s before join: got %+v", typ, msg)
		}
	}
	if msg := last(t, s.Handle(ClientMessage{Type: "dance"})); msg.Type != "error" {
		t.Errorf("unknown type: got %+v", msg)
	}
}

func TestSessionJoin(t *testing.T) {
	s := NewSession(SessionConfig{Seed: 4})
	reply := s.Handle(ClientMessage{Type: "join", PlayerName: "  Ada "})

	if n := len(ofType(reply, "notify")); n < 2*game.HandSize {
		t.Errorf("got %d notifications, want at least %d draws", n, 2*game.HandSize)
	}
	sv := last(t, reply).State
	if sv.PlayerName != "Ada" || sv.Turn != 0 {
		t.Errorf("state = %+v", sv)
	}
	if len(sv.You.Hand) != game.HandSize || sv.Opponent.Hand != nil {
		t.Errorf("hands: you=%d opponent=%v", len(sv.You.Hand), sv.Opponent.Hand)
	}
	if sv.You.HP != game.StartingHP || sv.Opponent.HandCount != game.HandSize {
		t.Errorf("unexpected table: %+v", sv)
	}
	if s.Match() == nil {
		t.Fatal("no match after join")
	}

	// Notifications are delivered once.
	if n := len(ofType(s.Handle(ClientMessage{Type: "state"}), "notify")); n != 0 {
		t.Errorf("state replayed %d notifications", n)
	}
}

func TestSessionJoinBadDeck(t *testing.T) {
	s := NewSession(SessionConfig{DeckFile: filepath.Join(t.TempDir(), "missing.yaml")})
	if msg := last(t, s.Handle(ClientMessage{Type: "join"})); msg.Type != "error" {
		t.Fatalf("got %+v, want error", msg)
	}
}

func TestSessionPlay(t *testing.T) {
	s, sv := joinedSession(t, SessionConfig{Seed: 8})

	reply := s.Handle(ClientMessage{Type: "play", Base: strings.ToLower(firstBase(t, sv))})
	turns := ofType(reply, "turn")
	if len(turns) != 1 {
		t.Fatalf("got %d turn messages: %+v", len(turns), reply)
	}
	tv := turns[0].Turn
	if tv.Turn != 1 || tv.You.Base != firstBase(t, sv) || tv.Opponent.Base == "" {
		t.Errorf("turn = %+v", tv)
	}
	if turns[0].Draw == nil {
		t.Error("missing draw report")
	}
	next := last(t, reply)
	if next.Type != "state" || next.State.Turn != 1 {
		t.Fatalf("reply ended with %+v", next)
	}
	if next.State.You.HandCount != game.HandSize {
		t.Errorf("hand not replenished: %d", next.State.You.HandCount)
	}
}

func TestSessionKeepsOnlyUndeliveredEvents(t *testing.T) {
	mirror := log.NewMemoryLogger()
	s, sv := joinedSession(t, SessionConfig{Seed: 8, Logger: mirror})
	if n := len(s.Events()); n != 0 {
		t.Fatalf("%d events held after join was delivered", n)
	}

	reply := s.Handle(ClientMessage{Type: "play", Base: firstBase(t, sv)})
	if len(ofType(reply, "notify")) == 0 {
		t.Fatal("play produced no notifications")
	}
	if n := len(s.Events()); n != 0 {
		t.Fatalf("%d events held after play was delivered", n)
	}

	// Numbering continues across replies.
	s.Log(log.NewTurnEvent(99))
	held := s.Events()
	if len(held) != 1 || held[0].Seq != len(mirror.Events()) {
		t.Fatalf("held = %+v, want one event numbered %d", held, len(mirror.Events()))
	}
}

func TestSessionPlayRejected(t *testing.T) {
	s, sv := joinedSession(t, SessionConfig{Seed: 8})
	before := s.Match().Serialize()

	tests := []struct {
		name string
		msg  ClientMessage
	}{
		{"unknown base", ClientMessage{Type: "play", Base: "Lizard"}},
		{"unknown power", ClientMessage{Type: "play", Base: firstBase(t, sv), Power: "Spock"}},
		{"power as base", ClientMessage{Type: "play", Base: "Thunder"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := last(t, s.Handle(tt.msg))
			if msg.Type != "error" || !strings.Contains(msg.Error, game.ErrInvalidMove.Error()) {
				t.Fatalf("got %+v, want invalid move error", msg)
			}
		})
	}
	if s.Match().TurnCount != before.TurnCount || len(s.Match().Player.Hand) != len(before.Player.Hand) {
		t.Error("rejected plays changed the match")
	}
}

func TestSessionSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	s, sv := joinedSession(t, SessionConfig{Seed: 12, SaveDir: dir})
	s.Handle(ClientMessage{Type: "play", Base: firstBase(t, sv)})
	want := s.Match().Serialize()

	saved := last(t, s.Handle(ClientMessage{Type: "save", Path: "slot1.json"}))
	if saved.Type != "saved" || saved.Path != filepath.Join(dir, "slot1.json") {
		t.Fatalf("save reply = %+v", saved)
	}

	fresh := NewSession(SessionConfig{Seed: 99, SaveDir: dir})
	loaded := last(t, fresh.Handle(ClientMessage{Type: "load", Path: "slot1.json"}))
	if loaded.Type != "state" || loaded.State.Turn != 1 {
		t.Fatalf("load reply = %+v", loaded)
	}
	if got := fresh.Match().Serialize(); got.TurnCount != want.TurnCount || got.Player.HP != want.Player.HP ||
		strings.Join(got.Player.Hand, ",") != strings.Join(want.Player.Hand, ",") {
		t.Errorf("loaded match differs:\nwant %+v\ngot  %+v", want, got)
	}

	if msg := last(t, s.Handle(ClientMessage{Type: "save"})); msg.Path != filepath.Join(dir, DefaultSaveFile) {
		t.Errorf("default save path = %q", msg.Path)
	}
	if msg := last(t, s.Handle(ClientMessage{Type: "save", Path: "../escape.yaml"})); msg.Type != "error" {
		t.Errorf("escaping path accepted: %+v", msg)
	}
	if msg := last(t, fresh.Handle(ClientMessage{Type: "load", Path: "nope.yaml"})); msg.Type != "error" {
		t.Errorf("missing save accepted: %+v", msg)
	}
}

func TestSessionGameOver(t *testing.T) {
	dir := t.TempDir()
	snap := game.Snapshot{
		PlayerName: "Ada",
		Player: game.CombatantSnapshot{
			HP:   30,
			Hand: []string{"Rock", "Paper", "Scissors", "Fire", "Water"},
			Deck: []string{"Rock", "Rock"},
		},
		AI: game.CombatantSnapshot{
			HP:   1,
			Hand: []string{"Scissors", "Scissors", "Scissors", "Scissors", "Scissors"},
			Deck: []string{"Rock"},
		},
	}
	if err := game.WriteSaveFile(filepath.Join(dir, "end.yaml"), snap); err != nil {
		t.Fatal(err)
	}

	s := NewSession(SessionConfig{Seed: 1, SaveDir: dir})
	if msg := last(t, s.Handle(ClientMessage{Type: "load", Path: "end.yaml"})); msg.Type != "state" {
		t.Fatalf("load reply = %+v", msg)
	}

	reply := s.Handle(ClientMessage{Type: "play", Base: "Rock"})
	over := last(t, reply)
	if over.Type != "game_over" || over.Winner != "player" || over.Result == "" {
		t.Fatalf("reply ended with %+v", over)
	}
	if turns := ofType(reply, "turn"); len(turns) != 1 || !turns[0].Turn.GameOver || turns[0].Draw != nil {
		t.Errorf("final turn = %+v", turns)
	}

	if msg := last(t, s.Handle(ClientMessage{Type: "play", Base: "Paper"})); msg.Type != "error" {
		t.Errorf("play after game over: %+v", msg)
	}
	if msg := last(t, s.Handle(ClientMessage{Type: "state"})); msg.Type != "game_over" {
		t.Errorf("state after game over: %+v", msg)
	}
}
