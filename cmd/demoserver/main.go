// Command demoserver starts a local stand-in for the FinShield analysis
// service, so the console can be exercised without the production backend.
// Usage: go run ./cmd/demoserver [-addr :8000] [-db finshield-demo.db]
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/finshield/console/internal/demoserver"
	"github.com/finshield/console/internal/logging"
)

func main() {
	cfg := demoserver.DefaultConfig()

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	flag.StringVar(&cfg.JWTSecret, "secret", cfg.JWTSecret, "token signing secret")
	flag.Parse()

	server, err := demoserver.NewServer(cfg, logging.NewStderrLogger("DemoServer"))
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
	defer server.Close()

	fmt.Println("===========================================")
	fmt.Println("   FinShield Demo Analysis Server")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Printf("Listening on %s\n", cfg.Addr)
	fmt.Printf("Swagger UI:  http://127.0.0.1%s/swagger/index.html\n", cfg.Addr)
	fmt.Println()
	fmt.Println("Endpoints:")
	fmt.Println("  POST /auth/signup /auth/login /auth/refresh")
	fmt.Println("  POST /analyze /analyze-image /analyze-audio /analyze-video")
	fmt.Println("  GET  /history/ /history/stats /history/{id}")
	fmt.Println("  GET  /user/profile /intel/status")
	fmt.Println()

	if err := server.HTTPServer().ListenAndServe(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
