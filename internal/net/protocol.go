package net

// Message types for the JSON-lines protocol. Every client request is answered
// by zero or more "notify" messages followed by exactly one of "state",
// "turn" (then "state" or "game_over"), "saved" or "error".

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "state", "saved" and "game_over"
	State *StateView `json:"state,omitempty"`

	// For "turn"
	Turn *TurnView `json:"turn,omitempty"`
	Draw *DrawView `json:"draw,omitempty"`

	// For "saved"
	Path string `json:"path,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`

	// For "game_over"
	Winner string `json:"winner,omitempty"`
	Result string `json:"result,omitempty"`
}

// EventView is a simplified match event for the client.
type EventView struct {
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// CardView describes a card in hand or in the catalog.
type CardView struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Damage      int    `json:"damage,omitempty"`
	Effect      string `json:"effect,omitempty"`
	Value       int    `json:"value,omitempty"`
	Description string `json:"description,omitempty"`
}

// MoveView is one side's play for a round.
type MoveView struct {
	Base  string `json:"base"`
	Power string `json:"power,omitempty"`
}

// TurnView reports a resolved round from the human's perspective.
type TurnView struct {
	Turn            int      `json:"turn"`
	You             MoveView `json:"you"`
	Opponent        MoveView `json:"opponent"`
	Winner          string   `json:"winner"` // "player", "ai" or "tie"
	DamageDealt     int      `json:"damage_dealt"`
	DamageTaken     int      `json:"damage_taken"`
	YouStunned      bool     `json:"you_stunned,omitempty"`
	OpponentStunned bool     `json:"opponent_stunned,omitempty"`
	GameOver        bool     `json:"game_over,omitempty"`
}

// DrawView reports end-of-turn reshuffles.
type DrawView struct {
	YouReshuffled      bool   `json:"you_reshuffled,omitempty"`
	YouReason          string `json:"you_reason,omitempty"`
	OpponentReshuffled bool   `json:"opponent_reshuffled,omitempty"`
	OpponentReason     string `json:"opponent_reason,omitempty"`
}

// StateView is the match state from the human's perspective.
type StateView struct {
	PlayerName string     `json:"player_name"`
	You        PlayerView `json:"you"`
	Opponent   PlayerView `json:"opponent"`
	Turn       int        `json:"turn"`
	Stage      string     `json:"stage"`
	IsOver     bool       `json:"is_over"`
	Result     string     `json:"result,omitempty"`
}

// PlayerView shows one side of the table.
type PlayerView struct {
	HP            int        `json:"hp"`
	HandCount     int        `json:"hand_count"`
	Hand          []CardView `json:"hand,omitempty"` // only for "you"
	DeckCount     int        `json:"deck_count"`
	DiscardCount  int        `json:"discard_count"`
	IsStunned     bool       `json:"is_stunned"`
	LastReshuffle string     `json:"last_reshuffle,omitempty"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "join" (starts a new match)
	PlayerName string `json:"player_name,omitempty"`
	DeckNumber int    `json:"deck_number,omitempty"`

	// For "play"
	Base  string `json:"base,omitempty"`
	Power string `json:"power,omitempty"`

	// For "save" and "load"
	Path string `json:"path,omitempty"`
}
