package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type bot interface {
	FindBestMove(board entity.Board, mark entity.Mark) (int, error)
}

// GameController enforces move legality and turn order on a session it is handed.
// It holds no game state of its own.
type GameController struct {
	bot bot
}

func NewGameController(bot bot) *GameController {
	return &GameController{
		bot: bot,
	}
}

// StartGame - creates a fresh session with X to move.
func (that *GameController) StartGame(id string, mode entity.Mode) *entity.Session {
	return entity.NewSession(id, mode)
}

// Reset - starts over with the same id and mode.
func (that *GameController) Reset(session *entity.Session) {
	*session = *that.StartGame(session.ID, session.Mode)
}

func (that *GameController) GetStatus(session *entity.Session) (entity.GameStatus, entity.Mark) {
	return session.Status(), session.Turn
}

// ApplyMove - places a human move. A rejected move leaves the session untouched.
func (that *GameController) ApplyMove(session *entity.Session, cell int, mark entity.Mark) (entity.GameStatus, error) {
	if session.AwaitsComputer() {
		return session.Status(), invalidMove(apperror.ErrComputerTurn)
	}

	return that.makeTurn(session, cell, mark)
}

// ApplyComputerMove - lets the bot play the computer's mark.
func (that *GameController) ApplyComputerMove(session *entity.Session) (int, entity.GameStatus, error) {
	if !session.AwaitsComputer() {
		if session.Status().IsFinished() {
			return -1, session.Status(), invalidMove(apperror.ErrGameFinished)
		}

		return -1, session.Status(), invalidMove(apperror.ErrNotYourTurn)
	}

	cell, err := that.bot.FindBestMove(session.Board, entity.ComputerMark)
	if err != nil {
		return -1, session.Status(), fmt.Errorf("failed to find computer move: %w", err)
	}

	status, err := that.makeTurn(session, cell, entity.ComputerMark)
	if err != nil {
		return -1, status, err
	}

	return cell, status, nil
}

func (that *GameController) makeTurn(session *entity.Session, cell int, mark entity.Mark) (entity.GameStatus, error) {
	if err := validateMove(session, cell, mark); err != nil {
		return session.Status(), err
	}

	session.Board[cell] = mark

	status := session.Status()
	if status.IsInProgress() {
		session.Turn = mark.Opponent()
	}

	return status, nil
}

// validateMove - checks if the move is valid.
func validateMove(session *entity.Session, cell int, mark entity.Mark) error {
	if cell < 0 || cell >= len(session.Board) {
		return invalidMove(fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell))
	}

	if session.Status().IsFinished() {
		return invalidMove(apperror.ErrGameFinished)
	}

	if session.Turn != mark {
		return invalidMove(apperror.ErrNotYourTurn)
	}

	if session.Board[cell] != entity.Empty {
		return invalidMove(apperror.ErrCellOccupied)
	}

	return nil
}

func invalidMove(reason error) error {
	return fmt.Errorf("%w: %w", apperror.ErrInvalidMove, reason)
}
