package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/entity"
)

const (
	actionConnect = "connect"
	actionError   = "error"
	actionNew     = "game:new"
	actionChoice  = "game:choice"
	actionRematch = "game:rematch"
	actionReplay  = "game:replay"
	actionChoices = "game:choices"
	actionState   = "game:state"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	SessionID string          `json:"session_id,omitempty"`
	Human     bool            `json:"human,omitempty"`
	PlayerID  entity.PlayerID `json:"player_id,omitempty"`
	ChoiceID  entity.ChoiceID `json:"choice_id,omitempty"`
	Game      *entity.Game    `json:"game,omitempty"`
	Choices   *entity.Catalog `json:"choices,omitempty"`
	Error     string          `json:"error,omitempty"`
}
