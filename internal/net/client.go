package net

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/peterkuimelis/rpsx/internal/game"
)

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder
	in   *bufio.Reader
	out  io.Writer

	join ClientMessage
	hand []CardView
}

// NewClient wraps an open connection. Commands are read from in and the
// table is rendered to out.
func NewClient(conn net.Conn, in io.Reader, out io.Writer) *Client {
	return &Client{
		conn: conn,
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
		in:   bufio.NewReader(in),
		out:  out,
	}
}

// Connect dials a server, starts a match and runs the REPL on stdin/stdout.
func Connect(ctx context.Context, addr, playerName string, deckNumber int) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	fmt.Println("Connected!")
	join := ClientMessage{Type: "join", PlayerName: playerName, DeckNumber: deckNumber}
	return NewClient(conn, os.Stdin, os.Stdout).Run(ctx, join)
}

// Run sends the first request, then alternates between rendering the
// server's reply and reading the next command. It returns when the user
// quits or input ends.
func (c *Client) Run(ctx context.Context, first ClientMessage) error {
	stop := context.AfterFunc(ctx, func() { c.conn.Close() })
	defer stop()

	if first.Type == "join" {
		c.join = first
	}
	req := first
	for {
		if err := c.enc.Encode(req); err != nil {
			return fmt.Errorf("send %s: %w", req.Type, err)
		}
		if req.Type == "quit" {
			return nil
		}
		if err := c.readReply(); err != nil {
			return err
		}
		req = c.prompt()
	}
}

// readReply renders messages up to and including the one that ends a reply.
func (c *Client) readReply() error {
	for {
		var msg ServerMessage
		if err := c.dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case "notify":
			c.renderEvent(msg.Event)

		case "turn":
			c.renderTurn(msg.Turn, msg.Draw)

		case "state":
			c.renderState(msg.State)
			return nil

		case "saved":
			fmt.Fprintf(c.out, "Saved to %s\n", msg.Path)
			return nil

		case "error":
			fmt.Fprintf(c.out, "Error: %s\n", msg.Error)
			return nil

		case "game_over":
			c.renderState(msg.State)
			c.hand = nil
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, "          GAME OVER")
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, msg.Result)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, "Type 'new' to play again, 'load' to restore a save, or 'quit'.")
			return nil
		}
	}
}

// prompt reads commands until one produces a request. End of input quits.
func (c *Client) prompt() ClientMessage {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		if strings.TrimSpace(line) == "" && err != nil {
			return ClientMessage{Type: "quit"}
		}

		msg, perr := parseCommand(line, c.hand)
		switch {
		case perr != nil:
			fmt.Fprintf(c.out, "%v (type 'help' for commands)\n", perr)
		case msg.Type == "help":
			fmt.Fprint(c.out, helpText)
		case msg.Type == "new":
			if c.join.Type == "" {
				return ClientMessage{Type: "join"}
			}
			return c.join
		default:
			return msg
		}
	}
}

const helpText = `Commands:
  <base> [power]   play a card, by name, first letter or hand number (e.g. "r f" or "1 4")
  play <base> [power]
  state            show the table
  save [path]      save the match
  load [path]      restore a saved match
  new              start a new match
  quit             leave
`

// parseCommand turns a REPL line into a client message. Cards may be given
// by hand position (1-based), full name or first letter.
func parseCommand(line string, hand []CardView) (ClientMessage, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ClientMessage{}, errors.New("enter a command")
	}

	args := fields[1:]
	switch strings.ToLower(fields[0]) {
	case "help", "?":
		return ClientMessage{Type: "help"}, nil
	case "quit", "exit":
		return ClientMessage{Type: "quit"}, nil
	case "state", "show":
		return ClientMessage{Type: "state"}, nil
	case "new":
		return ClientMessage{Type: "new"}, nil
	case "save", "load":
		msg := ClientMessage{Type: strings.ToLower(fields[0])}
		if len(args) > 0 {
			msg.Path = args[0]
		}
		return msg, nil
	case "play":
		return parsePlay(args, hand)
	default:
		return parsePlay(fields, hand)
	}
}

func parsePlay(args []string, hand []CardView) (ClientMessage, error) {
	if len(args) == 0 || len(args) > 2 {
		return ClientMessage{}, errors.New("play one base card and at most one power-up")
	}
	msg := ClientMessage{Type: "play"}
	var err error
	if msg.Base, err = resolveCard(args[0], hand); err != nil {
		return ClientMessage{}, err
	}
	if len(args) == 2 {
		if msg.Power, err = resolveCard(args[1], hand); err != nil {
			return ClientMessage{}, err
		}
	}
	return msg, nil
}

func resolveCard(token string, hand []CardView) (string, error) {
	if n, err := strconv.Atoi(token); err == nil {
		if n < 1 || n > len(hand) {
			return "", fmt.Errorf("hand position must be between 1 and %d", len(hand))
		}
		return hand[n-1].Name, nil
	}

	var match string
	for _, name := range game.CatalogOrder {
		if strings.HasPrefix(strings.ToLower(name), strings.ToLower(token)) {
			if match != "" {
				return "", fmt.Errorf("%q is ambiguous", token)
			}
			match = name
		}
	}
	if match == "" {
		return "", fmt.Errorf("unknown card %q", token)
	}
	return match, nil
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	// Format like the TextLogger
	phase := ev.Phase
	for len(phase) < 14 {
		phase += " "
	}
	fmt.Fprintf(c.out, "T%-2d %s| %s\n", ev.Turn, phase, ev.Details)
}

func (c *Client) renderTurn(tv *TurnView, dv *DrawView) {
	if tv == nil {
		return
	}
	fmt.Fprintf(c.out, "\nYou played %s, the AI played %s.\n", formatMove(tv.You), formatMove(tv.Opponent))
	switch tv.Winner {
	case "player":
		fmt.Fprintf(c.out, "You win the round and deal %d damage.\n", tv.DamageDealt)
	case "ai":
		fmt.Fprintf(c.out, "The AI wins the round and deals %d damage.\n", tv.DamageTaken)
	default:
		fmt.Fprintln(c.out, "The round is a tie.")
	}
	if tv.YouStunned {
		fmt.Fprintln(c.out, "You are stunned: no power-ups next turn.")
	}
	if tv.OpponentStunned {
		fmt.Fprintln(c.out, "The AI is stunned: no power-ups next turn.")
	}
	if dv != nil {
		if dv.YouReshuffled {
			fmt.Fprintf(c.out, "Your discard pile was reshuffled (%s).\n", dv.YouReason)
		}
		if dv.OpponentReshuffled {
			fmt.Fprintf(c.out, "The AI's discard pile was reshuffled (%s).\n", dv.OpponentReason)
		}
	}
}

func formatMove(mv MoveView) string {
	if mv.Power == "" {
		return mv.Base
	}
	return mv.Base + " + " + mv.Power
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}
	c.hand = sv.You.Hand

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "╔══════════════════════════════════════════════════════╗")
	fmt.Fprintf(c.out, "║  AI         %s\n", formatPlayer(sv.Opponent))
	fmt.Fprintln(c.out, "║──────────────────────────────────────────────────────")
	fmt.Fprintf(c.out, "║  %-10s %s\n", sv.PlayerName, formatPlayer(sv.You))
	fmt.Fprintln(c.out, "╚══════════════════════════════════════════════════════╝")
	fmt.Fprintf(c.out, "Turn %d | %s\n", sv.Turn, sv.Stage)

	if len(sv.You.Hand) > 0 {
		fmt.Fprintf(c.out, "\nHand: ")
		for i, cv := range sv.You.Hand {
			fmt.Fprintf(c.out, "[%d] %s  ", i+1, cv.Name)
		}
		fmt.Fprintln(c.out)
	}
}

func formatPlayer(pv PlayerView) string {
	s := fmt.Sprintf("HP: %-3d Hand: %d  Deck: %d  Discard: %d", pv.HP, pv.HandCount, pv.DeckCount, pv.DiscardCount)
	if pv.IsStunned {
		s += "  STUNNED"
	}
	return s
}
