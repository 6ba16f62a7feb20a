package mcp

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	rpsxnet "github.com/peterkuimelis/rpsx/internal/net"
)

var (
	// mu guards activeSession.
	mu sync.Mutex
	// activeSession is the singleton game session (one per stdio process).
	activeSession *GameSession
)

// decksFile is the path to the decks YAML file, set by main.
var decksFile string

// saveDir confines save_game and load_game paths, set by main.
var saveDir string

// SetDecksFile sets the path to the decks YAML file.
func SetDecksFile(path string) {
	decksFile = path
}

// SetSaveDir sets the directory save files are read from and written to.
func SetSaveDir(dir string) {
	saveDir = dir
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(playCardsTool(), handlePlayCards)
	s.AddTool(getGameStateTool(), handleGetGameState)
	s.AddTool(saveGameTool(), handleSaveGame)
	s.AddTool(loadGameTool(), handleLoadGame)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new Rock-Paper-Scissors card match against the AI. You play the human side. "+
			"Both sides start at 30 HP with a 24-card deck and a 5-card hand. Returns the opening state."),
		mcp.WithString("player_name", mcp.Description("Your display name (default \"Player\")")),
		mcp.WithNumber("deck", mcp.Description("Deck number from the decks file, 1-indexed (default 1)")),
		mcp.WithNumber("seed", mcp.Description("Random seed for a reproducible match (default random)")),
	)
}

func playCardsTool() mcp.Tool {
	return mcp.NewTool("play_cards",
		mcp.WithDescription("Play one Base card (Rock, Paper or Scissors) from your hand, optionally with one power-up "+
			"(Fire, Water or Thunder). Rock beats Scissors, Scissors beats Paper, Paper beats Rock. "+
			"Power-ups cannot be used while stunned. Returns the round result and the new state."),
		mcp.WithString("base", mcp.Required(), mcp.Description("Base card name")),
		mcp.WithString("power", mcp.Description("Optional power-up card name")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current match state without playing. Read-only."),
	)
}

func saveGameTool() mcp.Tool {
	return mcp.NewTool("save_game",
		mcp.WithDescription("Save the current match. Paths ending in .json are written as JSON, anything else as YAML."),
		mcp.WithString("path", mcp.Description("Save file path (default "+rpsxnet.DefaultSaveFile+")")),
	)
}

func loadGameTool() mcp.Tool {
	return mcp.NewTool("load_game",
		mcp.WithDescription("Restore a saved match, replacing any match in progress."),
		mcp.WithString("path", mcp.Description("Save file path (default "+rpsxnet.DefaultSaveFile+")")),
	)
}

// --- Tool handlers ---

func newSession(seed int64) *GameSession {
	return NewGameSession(rpsxnet.SessionConfig{
		DeckFile: decksFile,
		SaveDir:  saveDir,
		Seed:     seed,
	})
}

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mu.Lock()
	defer mu.Unlock()

	if activeSession != nil {
		return mcp.NewToolResultError("A game is already running. Finish it or use load_game to replace it."), nil
	}

	deck := request.GetInt("deck", 1)
	if deck < 1 {
		return mcp.NewToolResultError("deck must be >= 1"), nil
	}

	sess := newSession(int64(request.GetInt("seed", 0)))
	resp, err := sess.Do(rpsxnet.ClientMessage{
		Type:       "join",
		PlayerName: request.GetString("player_name", ""),
		DeckNumber: deck,
	})
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}

	activeSession = sess
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handlePlayCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mu.Lock()
	defer mu.Unlock()

	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	base := request.GetString("base", "")
	if base == "" {
		return mcp.NewToolResultError("base is required"), nil
	}

	resp, err := activeSession.Do(rpsxnet.ClientMessage{
		Type:  "play",
		Base:  base,
		Power: request.GetString("power", ""),
	})
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid move: %v", err), nil
	}

	if resp.GameOver {
		activeSession = nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mu.Lock()
	defer mu.Unlock()

	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	resp, err := activeSession.Do(rpsxnet.ClientMessage{Type: "state"})
	if err != nil {
		return mcp.NewToolResultErrorf("Error reading state: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleSaveGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mu.Lock()
	defer mu.Unlock()

	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	resp, err := activeSession.Do(rpsxnet.ClientMessage{Type: "save", Path: request.GetString("path", "")})
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to save: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleLoadGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mu.Lock()
	defer mu.Unlock()

	sess := newSession(0)
	resp, err := sess.Do(rpsxnet.ClientMessage{Type: "load", Path: request.GetString("path", "")})
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load: %v", err), nil
	}

	activeSession = sess
	if resp.GameOver {
		activeSession = nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}
