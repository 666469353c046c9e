package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

type memoryRepo struct {
	mu    sync.Mutex
	games map[string]entity.Session
}

func (that *memoryRepo) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[session.ID] = *session

	return nil
}

func (that *memoryRepo) GetByID(_ context.Context, id string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, ok := that.games[id]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	return &session, nil
}

func (that *memoryRepo) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[id]; !ok {
		return apperror.ErrGameNotFound
	}

	delete(that.games, id)

	return nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	bot := service.NewBotService(logger)
	manager := usecase.NewGameManager(logger, &memoryRepo{games: map[string]entity.Session{}}, tictactoe.NewGameController(bot), bot)

	return New(logger, manager)
}

func doRequest(t *testing.T, server *Server, method, path, body string) (int, gameResponse) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := server.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded gameResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))

	return resp.StatusCode, decoded
}

func TestPing(t *testing.T) {
	server := newTestServer(t)

	resp, err := server.app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
}

func TestGameFlow(t *testing.T) {
	server := newTestServer(t)

	// Given: a new game against the computer
	code, resp := doRequest(t, server, http.MethodPost, "/api/games", `{"mode":"hvc"}`)
	require.Equal(t, http.StatusCreated, code)
	require.NotNil(t, resp.Game)
	gameID := resp.Game.ID
	assert.Equal(t, entity.HumanVsComputer, resp.Game.Mode)
	assert.Equal(t, entity.StatusInProgress, resp.Game.Status.State)

	// When: X plays the centre
	code, resp = doRequest(t, server, http.MethodPost, "/api/games/"+gameID+"/moves", `{"cell":4,"mark":"X"}`)

	// Then: it is the computer's turn
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, entity.MarkX, resp.Game.Board[4])
	assert.Equal(t, entity.MarkO, resp.Game.Turn)

	// When: the human tries to move again
	code, resp = doRequest(t, server, http.MethodPost, "/api/games/"+gameID+"/moves", `{"cell":0,"mark":"O"}`)

	// Then: the move is rejected and the unchanged game is returned
	require.Equal(t, http.StatusUnprocessableEntity, code)
	assert.NotEmpty(t, resp.Error)
	assert.Equal(t, entity.Empty, resp.Game.Board[0])

	// When: the computer moves
	code, resp = doRequest(t, server, http.MethodPost, "/api/games/"+gameID+"/computer-move", "")

	// Then: it takes the first corner
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, resp.Cell)
	assert.Equal(t, 0, *resp.Cell)
	assert.Equal(t, entity.MarkO, resp.Game.Board[0])

	// When: reading the game back
	code, resp = doRequest(t, server, http.MethodGet, "/api/games/"+gameID, "")

	// Then: both moves are stored
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, entity.MarkX, resp.Game.Board[4])
	assert.Equal(t, entity.MarkO, resp.Game.Board[0])

	// When: resetting
	code, resp = doRequest(t, server, http.MethodPost, "/api/games/"+gameID+"/reset", "")

	// Then: the board is empty again
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, entity.Board{}, resp.Game.Board)
	assert.Equal(t, entity.MarkX, resp.Game.Turn)
}

func TestStartGame_BadRequests(t *testing.T) {
	server := newTestServer(t)

	code, resp := doRequest(t, server, http.MethodPost, "/api/games", `{"mode":"online"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, resp.Error)

	code, _ = doRequest(t, server, http.MethodPost, "/api/games", `not json`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestMakeTurn_Errors(t *testing.T) {
	server := newTestServer(t)

	t.Run("Unknown game", func(t *testing.T) {
		code, _ := doRequest(t, server, http.MethodPost, "/api/games/missing/moves", `{"cell":0,"mark":"X"}`)

		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("Missing cell", func(t *testing.T) {
		code, _ := doRequest(t, server, http.MethodPost, "/api/games/missing/moves", `{"mark":"X"}`)

		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestBestMove(t *testing.T) {
	server := newTestServer(t)

	t.Run("Blocks a threat", func(t *testing.T) {
		code, resp := doRequest(t, server, http.MethodPost, "/api/best-move",
			`{"board":["O","O","","X","","","","",""],"mark":"X"}`)

		require.Equal(t, http.StatusOK, code)
		require.NotNil(t, resp.Cell)
		assert.Equal(t, 2, *resp.Cell)
	})

	t.Run("Finished board", func(t *testing.T) {
		code, resp := doRequest(t, server, http.MethodPost, "/api/best-move",
			`{"board":["X","X","X","O","O","","","",""],"mark":"O"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, code)
		assert.NotEmpty(t, resp.Error)
	})
}

func TestEndGame(t *testing.T) {
	server := newTestServer(t)

	_, resp := doRequest(t, server, http.MethodPost, "/api/games", `{"mode":"hvh"}`)
	require.NotNil(t, resp.Game)

	// When: the game is ended
	res, err := server.app.Test(httptest.NewRequest(http.MethodDelete, "/api/games/"+resp.Game.ID, nil), -1)
	require.NoError(t, err)
	_ = res.Body.Close()

	// Then: it is gone
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	code, _ := doRequest(t, server, http.MethodGet, "/api/games/"+resp.Game.ID, "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = doRequest(t, server, http.MethodDelete, "/api/games/"+resp.Game.ID, "")
	assert.Equal(t, http.StatusNotFound, code)
}
