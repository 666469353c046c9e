package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var errNoGame = errors.New("no game on this connection, send game:new first")

func (that *Server) handleNewGame(ctx context.Context, conn *connection, msg *Message) error {
	payload, err := decodePayload(msg)
	if err != nil {
		return conn.send(msg.Action, ResponsePayload{Error: err.Error()})
	}

	mode, err := entity.ParseMode(payload.Mode)
	if err != nil {
		return conn.send(msg.Action, ResponsePayload{Error: err.Error()})
	}

	session, err := that.gameUseCase.StartGame(ctx, mode)
	if err != nil {
		return that.sendFailure(conn, msg.Action, nil, err)
	}

	if conn.gameID != "" {
		if err = that.gameUseCase.EndGame(ctx, conn.gameID); err != nil {
			that.logger.Debug("failed to end previous game", "gameID", conn.gameID, "error", err)
		}
	}

	conn.gameID = session.ID

	return conn.send(msg.Action, ResponsePayload{Game: session.View()})
}

func (that *Server) handleTurn(ctx context.Context, conn *connection, msg *Message) error {
	if conn.gameID == "" {
		return conn.send(msg.Action, ResponsePayload{Error: errNoGame.Error()})
	}

	payload, err := decodePayload(msg)
	if err != nil || payload.Cell == nil {
		return conn.send(msg.Action, ResponsePayload{Error: "cell is required"})
	}

	session, err := that.gameUseCase.MakeTurn(ctx, conn.gameID, *payload.Cell, payload.Mark)
	if err != nil {
		return that.sendFailure(conn, msg.Action, session, err)
	}

	if err = conn.send(msg.Action, ResponsePayload{Game: session.View()}); err != nil {
		return err
	}

	if !session.AwaitsComputer() {
		return nil
	}

	return that.playComputer(ctx, conn)
}

// playComputer - waits the configured delay so the reply is visible, then lets the computer move.
func (that *Server) playComputer(ctx context.Context, conn *connection) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(that.computerDelay):
	}

	session, cell, err := that.gameUseCase.ComputerTurn(ctx, conn.gameID)
	if err != nil {
		return that.sendFailure(conn, actionComputerTurn, session, err)
	}

	return conn.send(actionComputerTurn, ResponsePayload{Game: session.View(), Cell: &cell})
}

func (that *Server) handleReset(ctx context.Context, conn *connection, msg *Message) error {
	if conn.gameID == "" {
		return conn.send(msg.Action, ResponsePayload{Error: errNoGame.Error()})
	}

	session, err := that.gameUseCase.ResetGame(ctx, conn.gameID)
	if err != nil {
		return that.sendFailure(conn, msg.Action, nil, err)
	}

	return conn.send(msg.Action, ResponsePayload{Game: session.View()})
}

func (that *Server) handleState(ctx context.Context, conn *connection, msg *Message) error {
	if conn.gameID == "" {
		return conn.send(msg.Action, ResponsePayload{Error: errNoGame.Error()})
	}

	session, err := that.gameUseCase.GetGame(ctx, conn.gameID)
	if err != nil {
		return that.sendFailure(conn, msg.Action, nil, err)
	}

	return conn.send(msg.Action, ResponsePayload{Game: session.View()})
}

// handleHint - suggests a move for the side to play in the current game.
func (that *Server) handleHint(ctx context.Context, conn *connection, msg *Message) error {
	if conn.gameID == "" {
		return conn.send(msg.Action, ResponsePayload{Error: errNoGame.Error()})
	}

	session, err := that.gameUseCase.GetGame(ctx, conn.gameID)
	if err != nil {
		return that.sendFailure(conn, msg.Action, nil, err)
	}

	cell, err := that.gameUseCase.BestMove(session.Board, session.Turn)
	if err != nil {
		return that.sendFailure(conn, msg.Action, session, err)
	}

	return conn.send(msg.Action, ResponsePayload{Game: session.View(), Cell: &cell})
}

// sendFailure - reports recoverable errors to the client; anything else is logged as well.
func (that *Server) sendFailure(conn *connection, action string, session *entity.Session, err error) error {
	if !errors.Is(err, apperror.ErrInvalidMove) && !errors.Is(err, apperror.ErrPreconditionViolation) &&
		!errors.Is(err, apperror.ErrGameNotFound) {
		that.logger.Error("error processing message", "action", action, "gameID", conn.gameID, "error", err)
	}

	resp := ResponsePayload{Error: err.Error()}
	if session != nil {
		resp.Game = session.View()
	}

	return conn.send(action, resp)
}

func decodePayload(msg *Message) (RequestPayload, error) {
	var payload RequestPayload
	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}
