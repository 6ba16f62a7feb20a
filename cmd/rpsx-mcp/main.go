package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	rpsxmcp "github.com/peterkuimelis/rpsx/internal/mcp"
)

func main() {
	decks := flag.String("decks", "", "path to decks YAML file (default: standard deck)")
	saves := flag.String("saves", "saves", "directory for save files")
	flag.Parse()

	rpsxmcp.SetDecksFile(*decks)
	rpsxmcp.SetSaveDir(*saves)

	s := server.NewMCPServer("rpsx", "1.0.0")
	rpsxmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
