package rest

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type gameUseCase interface {
	StartGame(ctx context.Context, mode entity.Mode) (*entity.Session, error)
	GetGame(ctx context.Context, gameID string) (*entity.Session, error)
	MakeTurn(ctx context.Context, gameID string, cell int, mark entity.Mark) (*entity.Session, error)
	ComputerTurn(ctx context.Context, gameID string) (*entity.Session, int, error)
	ResetGame(ctx context.Context, gameID string) (*entity.Session, error)
	EndGame(ctx context.Context, gameID string) error
	BestMove(board entity.Board, mark entity.Mark) (int, error)
}

type startGameRequest struct {
	Mode string `json:"mode"`
}

type turnRequest struct {
	Cell *int        `json:"cell"`
	Mark entity.Mark `json:"mark"`
}

type bestMoveRequest struct {
	Board entity.Board `json:"board"`
	Mark  entity.Mark  `json:"mark"`
}

type gameResponse struct {
	Game  *entity.GameView `json:"game,omitempty"`
	Cell  *int             `json:"cell,omitempty"`
	Error string           `json:"error,omitempty"`
}

type handlers struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
}

func newHandlers(logger *slog.Logger, gameUseCase gameUseCase) *handlers {
	return &handlers{
		logger:      logger,
		gameUseCase: gameUseCase,
	}
}

func (that *handlers) startGame(c *fiber.Ctx) error {
	var req startGameRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	mode, err := entity.ParseMode(req.Mode)
	if err != nil {
		return badRequest(c, err.Error())
	}

	session, err := that.gameUseCase.StartGame(c.UserContext(), mode)
	if err != nil {
		return that.sendError(c, "startGame", nil, err)
	}

	return c.Status(fiber.StatusCreated).JSON(gameResponse{Game: session.View()})
}

func (that *handlers) getGame(c *fiber.Ctx) error {
	session, err := that.gameUseCase.GetGame(c.UserContext(), c.Params("id"))
	if err != nil {
		return that.sendError(c, "getGame", nil, err)
	}

	return c.JSON(gameResponse{Game: session.View()})
}

func (that *handlers) makeTurn(c *fiber.Ctx) error {
	var req turnRequest
	if err := c.BodyParser(&req); err != nil || req.Cell == nil {
		return badRequest(c, "cell is required")
	}

	session, err := that.gameUseCase.MakeTurn(c.UserContext(), c.Params("id"), *req.Cell, req.Mark)
	if err != nil {
		return that.sendError(c, "makeTurn", session, err)
	}

	return c.JSON(gameResponse{Game: session.View()})
}

func (that *handlers) computerTurn(c *fiber.Ctx) error {
	session, cell, err := that.gameUseCase.ComputerTurn(c.UserContext(), c.Params("id"))
	if err != nil {
		return that.sendError(c, "computerTurn", session, err)
	}

	return c.JSON(gameResponse{Game: session.View(), Cell: &cell})
}

func (that *handlers) resetGame(c *fiber.Ctx) error {
	session, err := that.gameUseCase.ResetGame(c.UserContext(), c.Params("id"))
	if err != nil {
		return that.sendError(c, "resetGame", nil, err)
	}

	return c.JSON(gameResponse{Game: session.View()})
}

func (that *handlers) endGame(c *fiber.Ctx) error {
	if err := that.gameUseCase.EndGame(c.UserContext(), c.Params("id")); err != nil {
		return that.sendError(c, "endGame", nil, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (that *handlers) bestMove(c *fiber.Ctx) error {
	var req bestMoveRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cell, err := that.gameUseCase.BestMove(req.Board, req.Mark)
	if err != nil {
		return that.sendError(c, "bestMove", nil, err)
	}

	return c.JSON(gameResponse{Cell: &cell})
}

// sendError - maps domain errors to status codes; session, if known, is sent back for redrawing.
func (that *handlers) sendError(c *fiber.Ctx, method string, session *entity.Session, err error) error {
	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, apperror.ErrUnknownMode):
		status = fiber.StatusBadRequest
	case errors.Is(err, apperror.ErrInvalidMove),
		errors.Is(err, apperror.ErrPreconditionViolation),
		errors.Is(err, apperror.ErrNoAvailableMoves):
		status = fiber.StatusUnprocessableEntity
	default:
		that.logger.Error("request failed", "method", method, "error", err)
	}

	resp := gameResponse{Error: err.Error()}
	if session != nil {
		resp.Game = session.View()
	}

	return c.Status(status).JSON(resp)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(gameResponse{Error: message})
}
