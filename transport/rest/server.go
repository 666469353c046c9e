package rest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	logger *slog.Logger
	app    *fiber.App
}

func New(logger *slog.Logger, gameUseCase gameUseCase) *Server {
	log := logger.With("component", "rest")

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           30 * time.Second,
	})

	app.Use(recover.New())
	app.Use(requestLogger(log))

	app.Get("/ping", pingHandler)

	h := newHandlers(log, gameUseCase)

	api := app.Group("/api")
	api.Post("/games", h.startGame)
	api.Get("/games/:id", h.getGame)
	api.Post("/games/:id/moves", h.makeTurn)
	api.Post("/games/:id/computer-move", h.computerTurn)
	api.Post("/games/:id/reset", h.resetGame)
	api.Delete("/games/:id", h.endGame)
	api.Post("/best-move", h.bestMove)

	return &Server{
		logger: log,
		app:    app,
	}
}

// Start - serves HTTP until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	go func() {
		<-ctx.Done()
		if err := that.app.Shutdown(); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := that.app.Listen(":" + port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// requestLogger - logs route, status code and latency of every request.
func requestLogger(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		started := time.Now()
		err := c.Next()

		log.Debug("request served",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"latency", time.Since(started),
		)

		return err
	}
}
