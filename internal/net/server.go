package net

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"sync"

	"github.com/peterkuimelis/rpsx/internal/log"
)

// Server hosts matches for TCP clients, one independent match per connection.
type Server struct {
	DeckFile string
	Port     string
	SaveDir  string
	Seed     int64 // 0 = random; otherwise connection n uses Seed+n-1
	Verbose  bool  // echo every match event to stdout
}

// Run listens on the configured port and serves clients until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()

	fmt.Printf("Waiting for players on port %s...\n", s.Port)
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled. It returns once
// every connection has been closed.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	for n := int64(1); ; n++ {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		fmt.Printf("Player connected from %s\n", conn.RemoteAddr())

		session := NewSession(s.sessionConfig(n))
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer conn.Close()
			if err := NewNetworkController(conn, session).Serve(ctx); err != nil && ctx.Err() == nil {
				fmt.Printf("Connection %s: %v\n", conn.RemoteAddr(), err)
			}
			fmt.Printf("Player at %s left\n", conn.RemoteAddr())
		}()
	}
}

func (s *Server) sessionConfig(n int64) SessionConfig {
	cfg := SessionConfig{
		DeckFile: s.DeckFile,
		SaveDir:  s.SaveDir,
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed + n - 1
	}
	if s.Verbose {
		cfg.Logger = log.NewTextLogger(os.Stdout)
	}
	return cfg
}

// PlayLocal runs a match in-process: the terminal REPL talks to a session
// over a pipe, exactly as a remote client would. first is sent before the
// prompt opens; a message with no type is treated as a join.
func PlayLocal(ctx context.Context, cfg SessionConfig, first ClientMessage) error {
	return playLocal(ctx, cfg, first, os.Stdin, os.Stdout)
}

func playLocal(ctx context.Context, cfg SessionConfig, first ClientMessage, in io.Reader, out io.Writer) error {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	errCh := make(chan error, 1)
	go func() {
		defer serverConn.Close()
		errCh <- NewNetworkController(serverConn, NewSession(cfg)).Serve(ctx)
	}()

	if first.Type == "" {
		first.Type = "join"
	}
	if err := NewClient(clientConn, in, out).Run(ctx, first); err != nil {
		return err
	}
	clientConn.Close()
	return <-errCh
}
