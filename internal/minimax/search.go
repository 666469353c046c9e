// Package minimax picks optimal tic-tac-toe moves by exhaustive game tree search.
package minimax

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// winScore is the value of an immediate win; every extra ply costs one point.
const winScore = 10

// FindBestMove returns the cell where mark gets the best achievable outcome under
// optimal play by both sides. Among equally valued moves the lowest index wins.
// The board is passed by value and never modified.
func FindBestMove(board entity.Board, mark entity.Mark) (int, error) {
	if !mark.IsPlayer() {
		return -1, fmt.Errorf("%w: unknown mark %q", apperror.ErrPreconditionViolation, mark)
	}

	if status := board.Status(); status.IsFinished() {
		return -1, fmt.Errorf("%w: game is %s", apperror.ErrPreconditionViolation, status.State)
	}

	bestMove := -1
	bestScore := math.MinInt

	for cell, current := range board {
		if current != entity.Empty {
			continue
		}

		next := board
		next[cell] = mark

		score := evaluate(next, 1, mark, mark.Opponent())
		if score > bestScore {
			bestScore = score
			bestMove = cell
		}
	}

	return bestMove, nil
}

// Score returns the minimax value of board for maximizer with toMove to play.
func Score(board entity.Board, maximizer, toMove entity.Mark) int {
	return evaluate(board, 0, maximizer, toMove)
}

// evaluate - scores board from maximizer's point of view. Each branch gets its own
// copy of the board, so nothing has to be restored on the way back.
func evaluate(board entity.Board, depth int, maximizer, toMove entity.Mark) int {
	if board.HasLine(maximizer) {
		return winScore - depth
	}

	if board.HasLine(maximizer.Opponent()) {
		return depth - winScore
	}

	if board.IsFull() {
		return 0
	}

	maximizing := toMove == maximizer

	best := math.MaxInt
	if maximizing {
		best = math.MinInt
	}

	for cell, current := range board {
		if current != entity.Empty {
			continue
		}

		next := board
		next[cell] = toMove

		score := evaluate(next, depth+1, maximizer, toMove.Opponent())
		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	return best
}
