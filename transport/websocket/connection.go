package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/entity"
	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/usecase"
)

// connection is one client socket with its own session. It renders the session into the socket.
type connection struct {
	id      string
	socket  *websocket.Conn
	session *usecase.Session
}

func (that *connection) Render(ctx context.Context, snapshot *entity.Game) error {
	return that.send(ctx, actionState, Payload{Game: snapshot})
}

func (that *connection) send(ctx context.Context, action string, payload Payload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err = wsjson.Write(ctx, that.socket, Message{Action: action, Payload: raw}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *connection) sendError(ctx context.Context, action, message string) error {
	return that.send(ctx, action, Payload{Error: message})
}
