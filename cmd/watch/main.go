// Command watch follows a game served with gridtris -spectate.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"gridtris/server"
	"gridtris/terminal"

	"golang.org/x/term"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[25;0H\n\r\033[?25h"
	ctrlC      = 3
)

func main() {
	addr := flag.String("addr", "localhost:9000", "address of the game to watch")
	flag.Parse()

	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("unable to connect to %s: %v", *addr, err)
	}
	defer conn.Close()

	restore := startRawConsole()
	defer restore()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go quitOnKey(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r, err := terminal.NewSpectator(os.Stdout, logger, "Gridtris (spectating)")
	if err != nil {
		log.Fatal(err)
	}
	if err := watch(ctx, conn, r); err != nil {
		restore()
		log.Fatal(err)
	}
}

func watch(ctx context.Context, conn grpc.ClientConnInterface, r *terminal.Renderer) error {
	w, err := server.Watch(ctx, conn)
	if err != nil {
		return err
	}
	var current string
	for {
		session, s, err := w.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("lost the game: %w", err)
		}
		if session != current {
			current = session
			r.Reset()
		}
		r.Game(s)
	}
}

// quitOnKey cancels the watch on 'q' or Ctrl-C. The console is raw so
// Ctrl-C doesn't raise a signal.
func quitOnKey(cancel func()) {
	b := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(b); err != nil {
			cancel()
			return
		}
		if b[0] == 'q' || b[0] == ctrlC {
			cancel()
			return
		}
	}
}

func startRawConsole() func() {
	fmt.Print(hideCursor)
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		log.Fatalf("Error setting terminal to raw mode: %v", err)
	}

	var restored bool
	return func() {
		if restored {
			return
		}
		restored = true
		if err := term.Restore(int(os.Stdin.Fd()), oldState); err != nil {
			log.Fatalf("unable to restore the terminal original state: %v", err)
		}
		fmt.Print(showCursor)
	}
}
