package main

import (
	"context"
	"fmt"
	"log"

	"github.com/raysh454/toru/internal/fetch"
	"github.com/raysh454/toru/internal/logging"
)

// Example entry point: fetch a single page and print its body.
// Run the demo server (cmd/demoserver) and point exampleURL at it to
// try the fetcher against a local site.
const exampleURL = "https://example.com"

func main() {
	// Nop logger so only the page body reaches stdout.
	f, err := fetch.New(fetch.DefaultConfig(), logging.Nop())
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	body, err := f.Fetch(context.Background(), exampleURL)
	if err != nil {
		log.Fatalf("Error fetching %s: %v", exampleURL, err)
	}

	fmt.Print(body)
}
