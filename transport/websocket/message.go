package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	actionNewGame      = "game:new"
	actionTurn         = "game:turn"
	actionComputerTurn = "game:computer_turn"
	actionReset        = "game:reset"
	actionState        = "game:state"
	actionHint         = "game:hint"
	actionUnknown      = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	Mode string      `json:"mode,omitempty"`
	Cell *int        `json:"cell,omitempty"`
	Mark entity.Mark `json:"mark,omitempty"`
}

type ResponsePayload struct {
	Game  *entity.GameView `json:"game,omitempty"`
	Cell  *int             `json:"cell,omitempty"`
	Error string           `json:"error,omitempty"`
}
