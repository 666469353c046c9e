package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
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

type handlerFunc func(ctx context.Context, conn *connection, msg *Message) error

type Server struct {
	logger        *slog.Logger
	gameUseCase   gameUseCase
	computerDelay time.Duration
	upgrader      websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, gameUseCase gameUseCase, computerDelay time.Duration) *Server {
	server := &Server{
		logger:        logger.With("component", "websocket"),
		gameUseCase:   gameUseCase,
		computerDelay: computerDelay,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionNewGame] = server.handleNewGame
	server.handlers[actionTurn] = server.handleTurn
	server.handlers[actionReset] = server.handleReset
	server.handlers[actionState] = server.handleState
	server.handlers[actionHint] = server.handleHint

	return server
}

// Start - starts WebSocket server and stops it when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", that.Handler(ctx))

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		if err := srv.Close(); err != nil {
			that.logger.Error("failed to close server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Handler - exposes the upgrade endpoint, mainly for tests.
func (that *Server) Handler(ctx context.Context) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		that.serveWS(ctx, w, r)
	})
}

// serveWS - upgrades the connection and processes its messages until it closes.
func (that *Server) serveWS(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")

	ws, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer ws.Close()

	log.Info("WebSocket connection established", "remote", req.RemoteAddr)

	conn := &connection{ws: ws}
	if err = that.handleMessages(ctx, conn); err != nil {
		log.Info("WebSocket connection closed", "reason", err)
	}

	// sessions belong to the connection that started them
	if conn.gameID != "" {
		if err = that.gameUseCase.EndGame(ctx, conn.gameID); err != nil {
			log.Debug("failed to end game", "gameID", conn.gameID, "error", err)
		}
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := conn.ws.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			if err = conn.send(actionUnknown, ResponsePayload{Error: "invalid message"}); err != nil {
				return err
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)
			if err = conn.send(actionUnknown, ResponsePayload{Error: "unknown action " + message.Action}); err != nil {
				return err
			}
			continue
		}

		if err = handler(ctx, conn, &message); err != nil {
			return fmt.Errorf("failed to process %s: %w", message.Action, err)
		}
	}
}

// connection is owned by a single goroutine, together with the game it plays.
type connection struct {
	ws     *websocket.Conn
	gameID string
}

func (that *connection) send(action string, payload ResponsePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = that.ws.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
