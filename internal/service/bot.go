package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/minimax"
)

type BotService interface {
	FindBestMove(board entity.Board, mark entity.Mark) (int, error)
}

type botService struct {
	logger *slog.Logger
}

func NewBotService(logger *slog.Logger) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
	}
}

func (that *botService) FindBestMove(board entity.Board, mark entity.Mark) (int, error) {
	log := that.logger.With("method", "FindBestMove", "board", board.String(), "mark", mark)

	if board.IsFull() {
		return -1, apperror.ErrNoAvailableMoves
	}

	started := time.Now()

	cell, err := minimax.FindBestMove(board, mark)
	if err != nil {
		return -1, fmt.Errorf("bot failed to find a move: %w", err)
	}

	log.Debug("bot picked a cell", "cell", cell, "took", time.Since(started))

	return cell, nil
}
