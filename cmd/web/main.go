package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/peterkuimelis/rpsx/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	decksFile := flag.String("decks", "", "path to decks YAML file (default: standard deck)")
	saves := flag.String("saves", "saves", "directory for save files")
	flag.Parse()

	srv, err := web.NewServer(*decksFile, *saves)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("rpsx web server listening on http://localhost:%d", *port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
