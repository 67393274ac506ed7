package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hexfield/internal/server"
)

func main() {
	var (
		port   = flag.String("port", "30000", "port to listen on")
		dbPath = flag.String("db", "data/hexfield.db", "path to the sqlite database")
	)
	flag.Parse()

	// Environment variables win over flags for container deployments.
	cfg := server.Config{
		Addr:   ":" + envOr("PORT", *port),
		DBPath: envOr("DB_PATH", *dbPath),
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errc:
		log.Fatalf("server error: %v", err)
	case sig := <-stop:
		log.Printf("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// envOr returns the named environment variable or a fallback.
func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
