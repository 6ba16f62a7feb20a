package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	rpsxnet "github.com/peterkuimelis/rpsx/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "play":
		err = runPlay(ctx, os.Args[2:])
	case "serve":
		err = runServe(ctx, os.Args[2:])
	case "join":
		err = runJoin(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  rpsx play  [--name NAME] [--deck N] [--decks FILE] [--seed S] [--load FILE]")
	fmt.Println("  rpsx serve [--port P] [--decks FILE] [--saves DIR] [--seed S] [-v]")
	fmt.Println("  rpsx join  [--name NAME] [--deck N] [--addr ADDR]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Play against the AI in this terminal")
	fmt.Println("  serve   Host matches against the AI for remote players")
	fmt.Println("  join    Connect to a server and play")
}

func runPlay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	name := fs.String("name", "Player", "your display name")
	deck := fs.Int("deck", 1, "deck number to use (from the decks file)")
	decksFile := fs.String("decks", "", "path to decks file (default: standard deck)")
	seed := fs.Int64("seed", 0, "random seed (0 for random)")
	load := fs.String("load", "", "resume from a save file instead of starting a new match")
	fs.Parse(args)

	cfg := rpsxnet.SessionConfig{DeckFile: *decksFile, Seed: *seed}
	first := rpsxnet.ClientMessage{Type: "join", PlayerName: *name, DeckNumber: *deck}
	if *load != "" {
		first = rpsxnet.ClientMessage{Type: "load", Path: *load}
	}
	return rpsxnet.PlayLocal(ctx, cfg, first)
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.String("port", "9000", "TCP port to listen on")
	decksFile := fs.String("decks", "", "path to decks file (default: standard deck)")
	saves := fs.String("saves", "saves", "directory for save files")
	seed := fs.Int64("seed", 0, "base random seed (0 for random)")
	verbose := fs.Bool("v", false, "log every match event")
	fs.Parse(args)

	srv := &rpsxnet.Server{
		DeckFile: *decksFile,
		Port:     *port,
		SaveDir:  *saves,
		Seed:     *seed,
		Verbose:  *verbose,
	}
	return srv.Run(ctx)
}

func runJoin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	name := fs.String("name", "Player", "your display name")
	deck := fs.Int("deck", 1, "deck number to use (from the server's decks file)")
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	fs.Parse(args)

	return rpsxnet.Connect(ctx, *addr, *name, *deck)
}
