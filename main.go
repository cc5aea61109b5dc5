package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net"
	"os"

	"gridtris/client"
	"gridtris/config"
	"gridtris/server"

	"golang.org/x/term"
	"google.golang.org/grpc"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[25;0H\n\r\033[?25h"
)

func main() {
	configPath := flag.String("config", "", "YAML game configuration, defaults are used when empty")
	spectate := flag.String("spectate", "", "address to serve spectators on, e.g. :9000")
	logPath := flag.String("log", "", "file to write debug logs to")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Fatal("gridtris needs an interactive terminal")
	}

	logger, closeLog := newLogger(*logPath)
	defer closeLog()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	gameOpts, err := cfg.GameOptions()
	if err != nil {
		log.Fatal(err)
	}

	opts := &client.Options{Game: gameOpts, Logger: logger}
	if *spectate != "" {
		hub := server.NewHub(logger)
		stop, err := serveSpectators(*spectate, hub, logger)
		if err != nil {
			log.Fatal(err)
		}
		defer stop()
		opts.Publisher = hub
	}

	c, err := client.New(opts)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(hideCursor)
	defer fmt.Print(showCursor)
	defer func() {
		if err := c.Close(); err != nil {
			logger.Error("unable to close client", slog.String("error", err.Error()))
		}
	}()
	c.Start()
}

func newLogger(path string) (*slog.Logger, func()) {
	if path == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("unable to open log file: %v", err)
	}
	l := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return l, func() { f.Close() }
}

func serveSpectators(addr string, hub *server.Hub, logger *slog.Logger) (func(), error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}
	s := grpc.NewServer()
	server.Register(s, hub)
	go func() {
		if err := s.Serve(lis); err != nil {
			logger.Error("spectator server stopped", slog.String("error", err.Error()))
		}
	}()
	logger.Info("serving spectators", slog.String("addr", lis.Addr().String()))
	return s.Stop, nil
}
