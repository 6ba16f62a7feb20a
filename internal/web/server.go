package web

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/peterkuimelis/rpsx/internal/game"
	rpsxnet "github.com/peterkuimelis/rpsx/internal/net"
)

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Damage      int    `json:"damage,omitempty"`
	Beats       string `json:"beats,omitempty"`
	Effect      string `json:"effect,omitempty"`
	Value       int    `json:"value,omitempty"`
	Description string `json:"description"`
}

// Server is the rpsx HTTP server: a card catalog API plus a websocket that
// speaks the same protocol as the TCP server.
type Server struct {
	decksFile string
	session   rpsxnet.SessionConfig
	mux       *http.ServeMux
}

// NewServer creates a new web server. An empty decksFile offers only the
// standard deck.
func NewServer(decksFile, saveDir string) (*Server, error) {
	if decksFile != "" {
		if _, err := readDecks(decksFile); err != nil {
			return nil, err
		}
	}
	s := &Server{
		decksFile: decksFile,
		session:   rpsxnet.SessionConfig{DeckFile: decksFile, SaveDir: saveDir},
		mux:       http.NewServeMux(),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	var cards []CardInfo
	for _, c := range game.Catalog() {
		ci := CardInfo{
			Name:        c.Name.String(),
			Kind:        c.Kind.String(),
			Description: c.Description,
		}
		if c.IsBase() {
			ci.Damage = c.Damage
			for _, other := range game.Catalog() {
				if game.Beats(c.Name, other.Name) {
					ci.Beats = other.Name.String()
				}
			}
		} else {
			ci.Effect = c.Effect.String()
			ci.Value = c.Value
		}
		cards = append(cards, ci)
	}
	writeJSON(w, cards)
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	if s.decksFile == "" {
		writeJSON(w, deckInfos(game.DeckFile{Decks: []game.DeckEntry{game.StandardDeckEntry}}))
		return
	}
	df, err := readDecks(s.decksFile)
	if err != nil {
		http.Error(w, "could not read decks file", http.StatusInternalServerError)
		return
	}
	writeJSON(w, deckInfos(df))
}

// handleWebSocket runs one match per websocket connection.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	if err := s.serveSession(r.Context(), wsConn); err != nil {
		log.Printf("WebSocket session: %v", err)
		return
	}
	wsConn.Close(websocket.StatusNormalClosure, "bye")
}

func (s *Server) serveSession(ctx context.Context, wsConn *websocket.Conn) error {
	session := rpsxnet.NewSession(s.session)
	for {
		var msg rpsxnet.ClientMessage
		if err := wsjson.Read(ctx, wsConn, &msg); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway ||
				errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if msg.Type == "quit" {
			return nil
		}
		for _, reply := range session.Handle(msg) {
			if err := wsjson.Write(ctx, wsConn, reply); err != nil {
				return err
			}
		}
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
