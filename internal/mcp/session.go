package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	rpsxnet "github.com/peterkuimelis/rpsx/internal/net"
)

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events   []rpsxnet.EventView `json:"events"`
	State    *rpsxnet.StateView  `json:"state,omitempty"`
	Turn     *rpsxnet.TurnView   `json:"turn,omitempty"`
	Draw     *rpsxnet.DrawView   `json:"draw,omitempty"`
	Saved    string              `json:"saved,omitempty"`
	GameOver bool                `json:"game_over"`
	Winner   string              `json:"winner,omitempty"`
	Result   string              `json:"result,omitempty"`
}

// GameSession holds the state of a single MCP game session. The MCP client
// plays the human side; the built-in strategist plays the AI.
type GameSession struct {
	mu      sync.Mutex
	session *rpsxnet.Session
}

// NewGameSession creates a session with no match in progress.
func NewGameSession(cfg rpsxnet.SessionConfig) *GameSession {
	return &GameSession{session: rpsxnet.NewSession(cfg)}
}

// Do sends one protocol message to the match and folds the replies into a
// tool response. Protocol errors are returned as errors.
func (s *GameSession) Do(msg rpsxnet.ClientMessage) (*ToolResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return collect(s.session.Handle(msg))
}

// collect merges a reply sequence into one response. Events are never null
// in the resulting JSON.
func collect(msgs []rpsxnet.ServerMessage) (*ToolResponse, error) {
	resp := &ToolResponse{Events: []rpsxnet.EventView{}}
	for _, msg := range msgs {
		switch msg.Type {
		case "notify":
			if msg.Event != nil {
				resp.Events = append(resp.Events, *msg.Event)
			}
		case "turn":
			resp.Turn = msg.Turn
			resp.Draw = msg.Draw
		case "state":
			resp.State = msg.State
		case "saved":
			resp.State = msg.State
			resp.Saved = msg.Path
		case "game_over":
			resp.State = msg.State
			resp.GameOver = true
			resp.Winner = msg.Winner
			resp.Result = msg.Result
		case "error":
			return nil, errors.New(msg.Error)
		default:
			return nil, fmt.Errorf("unexpected reply %q", msg.Type)
		}
	}
	return resp, nil
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
