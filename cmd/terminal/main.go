package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/terminal"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// main - plays a game in the terminal without any storage or network.
func main() {
	rawMode := flag.String("mode", "hvc", "game mode: hvh or hvc")
	delay := flag.Duration("delay", 300*time.Millisecond, "pause before the computer moves")
	verbose := flag.Bool("v", false, "log debug messages to stderr")
	flag.Parse()

	mode, err := entity.ParseMode(*rawMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	controller := tictactoe.NewGameController(service.NewBotService(logger))
	game := terminal.NewGame(logger, controller, terminal.NewRenderer(os.Stdout), *delay)

	if err = game.Run(ctx, mode, os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "game failed: %v\n", err)
		os.Exit(1)
	}
}
