// Command demoserver starts a local demo site for exercising the fetcher.
// Usage: go run ./cmd/demoserver [port]
// Default port: 9999
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/raysh454/toru/internal/demoserver"
	"github.com/raysh454/toru/internal/logging"
)

func main() {
	cfg := demoserver.DefaultConfig()

	// Optional: custom port from command line
	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil || port < 1 || port > 65535 {
			log.Fatalf("Invalid port: %s", os.Args[1])
		}
		cfg.Port = port
	}

	fmt.Println("===========================================")
	fmt.Println("   toru demo server")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("Routes:")
	fmt.Println("  GET /            - index page listing all routes")
	fmt.Println("  GET /test        - 200 with body \"Mock response data\"")
	fmt.Println("  GET /status/{code} - responds with the given status")
	fmt.Println("  GET /slow        - responds after a delay")
	fmt.Println()

	server := demoserver.NewDemoServer(cfg, logging.NewStdoutLogger("demoserver"))
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
