package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameController interface {
	StartGame(id string, mode entity.Mode) *entity.Session
	Reset(session *entity.Session)
	ApplyMove(session *entity.Session, cell int, mark entity.Mark) (entity.GameStatus, error)
	ApplyComputerMove(session *entity.Session) (int, entity.GameStatus, error)
}

type bot interface {
	FindBestMove(board entity.Board, mark entity.Mark) (int, error)
}

// GameManager drives sessions stored in the repository through the game controller.
type GameManager struct {
	logger *slog.Logger

	gameRepo       gameRepo
	gameController gameController
	bot            bot
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, gameController gameController, bot bot) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:       gameRepo,
		gameController: gameController,
		bot:            bot,
	}
}

func (that *GameManager) StartGame(ctx context.Context, mode entity.Mode) (*entity.Session, error) {
	if mode != entity.HumanVsHuman && mode != entity.HumanVsComputer {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownMode, mode)
	}

	session := that.gameController.StartGame(uuid.NewString(), mode)

	if err := that.gameRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	that.logger.Info("game started", "gameID", session.ID, "mode", mode)

	return session, nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Session, error) {
	session, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return session, nil
}

// MakeTurn - applies a human move. A rejected move is returned together with the
// unchanged session so the caller can redraw it.
func (that *GameManager) MakeTurn(ctx context.Context, gameID string, cell int, mark entity.Mark) (*entity.Session, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", gameID)

	session, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	status, err := that.gameController.ApplyMove(session, cell, mark)
	if err != nil {
		if errors.Is(err, apperror.ErrInvalidMove) {
			log.Debug("move rejected", "cell", cell, "mark", mark, "error", err)
		}

		return session, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if status.IsFinished() {
		log.Info("game finished", "state", status.State, "winner", status.Winner)
	}

	return session, nil
}

// ComputerTurn - lets the computer answer and returns the cell it played.
func (that *GameManager) ComputerTurn(ctx context.Context, gameID string) (*entity.Session, int, error) {
	log := that.logger.With("method", "ComputerTurn", "gameID", gameID)

	session, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, -1, err
	}

	cell, status, err := that.gameController.ApplyComputerMove(session)
	if err != nil {
		return session, -1, fmt.Errorf("failed to make computer turn: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, -1, fmt.Errorf("failed to update game: %w", err)
	}

	if status.IsFinished() {
		log.Info("game finished", "state", status.State, "winner", status.Winner)
	}

	return session, cell, nil
}

func (that *GameManager) ResetGame(ctx context.Context, gameID string) (*entity.Session, error) {
	session, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	that.gameController.Reset(session)

	if err = that.gameRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return session, nil
}

// EndGame - drops a session before its TTL runs out.
func (that *GameManager) EndGame(ctx context.Context, gameID string) error {
	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game ended", "gameID", gameID)

	return nil
}

// BestMove - suggests a move for any position without touching stored sessions.
func (that *GameManager) BestMove(board entity.Board, mark entity.Mark) (int, error) {
	cell, err := that.bot.FindBestMove(board, mark)
	if err != nil {
		return -1, fmt.Errorf("failed to find best move: %w", err)
	}

	return cell, nil
}
