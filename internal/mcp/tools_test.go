package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/peterkuimelis/rpsx/internal/game"
)

type handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// resetGlobals gives each test a clean process-wide state.
func resetGlobals(t *testing.T) {
	t.Helper()
	activeSession = nil
	SetDecksFile("")
	SetSaveDir(t.TempDir())
	t.Cleanup(func() { activeSession = nil })
}

func call(t *testing.T, h handler, args map[string]any) (*ToolResponse, string) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	text := resultText(t, res)
	if res.IsError {
		return nil, text
	}
	var resp ToolResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("bad JSON %q: %v", text, err)
	}
	return &resp, ""
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	t.Fatalf("unexpected content %T", res.Content[0])
	return ""
}

func baseInHand(t *testing.T, resp *ToolResponse) string {
	t.Helper()
	for _, cv := range resp.State.You.Hand {
		if cv.Kind == "Base" {
			return cv.Name
		}
	}
	t.Fatal("no base card in hand")
	return ""
}

func TestToolsRequireGame(t *testing.T) {
	resetGlobals(t)
	for name, h := range map[string]handler{
		"play_cards":     handlePlayCards,
		"get_game_state": handleGetGameState,
		"save_game":      handleSaveGame,
	} {
		if _, errText := call(t, h, map[string]any{"base": "Rock"}); !strings.Contains(errText, "No game") {
			t.Errorf("%s without a game: %q", name, errText)
		}
	}
}

func TestStartAndPlay(t *testing.T) {
	resetGlobals(t)

	resp, errText := call(t, handleStartGame, map[string]any{"player_name": "Ada", "seed": float64(7)})
	if resp == nil {
		t.Fatalf("start_game: %s", errText)
	}
	if resp.State.PlayerName != "Ada" || len(resp.State.You.Hand) != game.HandSize || len(resp.Events) == 0 {
		t.Fatalf("opening = %+v", resp)
	}

	if _, errText := call(t, handleStartGame, nil); !strings.Contains(errText, "already running") {
		t.Errorf("second start_game: %q", errText)
	}

	if _, errText := call(t, handlePlayCards, map[string]any{"base": "Lizard"}); !strings.Contains(errText, "Invalid move") {
		t.Errorf("bad card: %q", errText)
	}

	played, errText := call(t, handlePlayCards, map[string]any{"base": baseInHand(t, resp)})
	if played == nil {
		t.Fatalf("play_cards: %s", errText)
	}
	if played.Turn == nil || played.Turn.Turn != 1 || played.State.Turn != 1 {
		t.Errorf("play = %+v", played)
	}

	state, _ := call(t, handleGetGameState, nil)
	if state == nil || len(state.Events) != 0 || state.State.Turn != 1 {
		t.Errorf("get_game_state = %+v", state)
	}
}

func TestSaveAndLoad(t *testing.T) {
	resetGlobals(t)

	start, _ := call(t, handleStartGame, map[string]any{"seed": float64(2)})
	call(t, handlePlayCards, map[string]any{"base": baseInHand(t, start)})

	saved, errText := call(t, handleSaveGame, map[string]any{"path": "mcp.json"})
	if saved == nil || !strings.HasSuffix(saved.Saved, "mcp.json") {
		t.Fatalf("save_game: %+v %s", saved, errText)
	}

	activeSession = nil
	loaded, errText := call(t, handleLoadGame, map[string]any{"path": "mcp.json"})
	if loaded == nil {
		t.Fatalf("load_game: %s", errText)
	}
	if loaded.State.Turn != 1 || loaded.State.You.HP != saved.State.You.HP {
		t.Errorf("loaded = %+v, saved = %+v", loaded.State, saved.State)
	}
	if activeSession == nil {
		t.Error("load_game did not install a session")
	}

	if _, errText := call(t, handleLoadGame, map[string]any{"path": "../outside.yaml"}); errText == "" {
		t.Error("load_game accepted a path outside the save directory")
	}
}

func TestGameOverEndsSession(t *testing.T) {
	resetGlobals(t)
	snap := game.Snapshot{
		PlayerName: "Ada",
		Player:     game.CombatantSnapshot{HP: 30, Hand: []string{"Paper", "Rock", "Rock", "Rock", "Rock"}},
		AI:         game.CombatantSnapshot{HP: 3, Hand: []string{"Rock", "Rock", "Rock", "Rock", "Rock"}},
	}
	if err := game.WriteSaveFile(saveDir+"/end.yaml", snap); err != nil {
		t.Fatal(err)
	}
	if _, errText := call(t, handleLoadGame, map[string]any{"path": "end.yaml"}); errText != "" {
		t.Fatal(errText)
	}

	resp, errText := call(t, handlePlayCards, map[string]any{"base": "paper"})
	if resp == nil {
		t.Fatal(errText)
	}
	if !resp.GameOver || resp.Winner != "player" || resp.Result == "" {
		t.Errorf("final response = %+v", resp)
	}
	if activeSession != nil {
		t.Error("session should be cleared after game over")
	}
}
