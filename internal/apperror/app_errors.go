package apperror

import "errors"

var (
	ErrInvalidMove           = errors.New("invalid move")
	ErrPreconditionViolation = errors.New("search precondition violated")

	ErrInvalidCell  = errors.New("invalid cell index")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrComputerTurn = errors.New("it's the computer's turn")

	ErrGameNotFound     = errors.New("game not found")
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrUnknownMode      = errors.New("unknown game mode")
)
