package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBot() BotService {
	return NewBotService(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func TestBotService_FindBestMove(t *testing.T) {
	t.Run("Blocks a threat", func(t *testing.T) {
		// Given: X threatens the left column
		board := entity.Board{
			entity.MarkX, entity.MarkO, entity.Empty,
			entity.MarkX, entity.Empty, entity.Empty,
			entity.Empty, entity.Empty, entity.Empty,
		}

		// When: the bot plays O
		cell, err := newTestBot().FindBestMove(board, entity.MarkO)

		// Then: it blocks at cell 6
		require.NoError(t, err)
		assert.Equal(t, 6, cell)
	})

	t.Run("Returns ErrNoAvailableMoves on a full board", func(t *testing.T) {
		// Given: a full board
		board := entity.Board{
			entity.MarkX, entity.MarkO, entity.MarkX,
			entity.MarkO, entity.MarkX, entity.MarkO,
			entity.MarkO, entity.MarkX, entity.MarkO,
		}

		// When: the bot is asked to move
		_, err := newTestBot().FindBestMove(board, entity.MarkX)

		// Then: there is nothing to play
		assert.ErrorIs(t, err, apperror.ErrNoAvailableMoves)
	})

	t.Run("Wraps search precondition errors", func(t *testing.T) {
		// Given: a board that is already won
		board := entity.Board{
			entity.MarkX, entity.MarkX, entity.MarkX,
			entity.MarkO, entity.MarkO, entity.Empty,
			entity.Empty, entity.Empty, entity.Empty,
		}

		// When: the bot is asked to move
		_, err := newTestBot().FindBestMove(board, entity.MarkO)

		// Then: the precondition violation is reported
		assert.ErrorIs(t, err, apperror.ErrPreconditionViolation)
	})
}
