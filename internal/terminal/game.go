package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const localGameID = "local"

type gameController interface {
	StartGame(id string, mode entity.Mode) *entity.Session
	Reset(session *entity.Session)
	ApplyMove(session *entity.Session, cell int, mark entity.Mark) (entity.GameStatus, error)
	ApplyComputerMove(session *entity.Session) (int, entity.GameStatus, error)
}

// Game runs a single local game loop on top of the game controller.
type Game struct {
	logger        *slog.Logger
	controller    gameController
	renderer      *Renderer
	computerDelay time.Duration
}

func NewGame(logger *slog.Logger, controller gameController, renderer *Renderer, computerDelay time.Duration) *Game {
	return &Game{
		logger:        logger.With("component", "terminal"),
		controller:    controller,
		renderer:      renderer,
		computerDelay: computerDelay,
	}
}

// Run - plays until the input ends, the player quits or ctx is canceled.
func (that *Game) Run(ctx context.Context, mode entity.Mode, input io.Reader) error {
	log := that.logger.With("method", "Run", "mode", mode)

	session := that.controller.StartGame(localGameID, mode)
	lines := readLines(ctx, input)

	that.renderer.Board(session.Board)

	for {
		that.renderer.Status(session)

		if session.AwaitsComputer() {
			if err := that.computerTurn(ctx, session); err != nil {
				return err
			}

			continue
		}

		var line string
		select {
		case <-ctx.Done():
			return nil
		case next, ok := <-lines:
			if !ok {
				return nil
			}
			line = strings.TrimSpace(next)
		}

		switch strings.ToLower(line) {
		case "":
			continue
		case "q":
			log.Debug("player quit")
			return nil
		case "r":
			that.controller.Reset(session)
			that.renderer.Board(session.Board)
			continue
		}

		cell, err := strconv.Atoi(line)
		if err != nil {
			that.renderer.Message("type a cell from 0 to 8, r to reset or q to quit")
			continue
		}

		status, err := that.controller.ApplyMove(session, cell, session.Turn)
		if err != nil {
			that.renderer.Error(err)
			continue
		}

		that.renderer.Board(session.Board)

		if status.IsFinished() {
			log.Debug("game finished", "state", status.State, "winner", status.Winner)
		}
	}
}

// computerTurn - pauses for the configured delay so the human move stays visible first.
func (that *Game) computerTurn(ctx context.Context, session *entity.Session) error {
	select {
	case <-ctx.Done():
		return nil
	case <-time.After(that.computerDelay):
	}

	cell, _, err := that.controller.ApplyComputerMove(session)
	if err != nil {
		return fmt.Errorf("computer failed to move: %w", err)
	}

	that.renderer.Message("%s plays %d", that.renderer.Mark(entity.ComputerMark), cell)
	that.renderer.Board(session.Board)

	return nil
}

// readLines - feeds input lines into a channel so the loop can also watch ctx.
func readLines(ctx context.Context, input io.Reader) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(input)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	return lines
}
