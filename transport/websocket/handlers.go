package websocket

import (
	"context"
	"fmt"
)

func (that *Server) handleNewGame(ctx context.Context, conn *connection, payload *Payload) error {
	if _, err := conn.session.StartGame(ctx, payload.Human); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.logger.Info("game started", "sessionID", conn.id, "human", payload.Human)

	return nil
}

func (that *Server) handleChoice(ctx context.Context, conn *connection, payload *Payload) error {
	return conn.session.SubmitHumanChoice(ctx, payload.PlayerID, payload.ChoiceID)
}

func (that *Server) handleRematch(ctx context.Context, conn *connection, payload *Payload) error {
	var err error
	if payload.Human {
		_, err = conn.session.RequestRematchAsHuman(ctx)
	} else {
		_, err = conn.session.RequestRematchAsCPU(ctx)
	}

	if err != nil {
		return fmt.Errorf("failed to start rematch: %w", err)
	}

	return nil
}

func (that *Server) handleReplay(ctx context.Context, conn *connection, _ *Payload) error {
	return conn.session.ReplayAutomatedOnly(ctx)
}

func (that *Server) handleChoices(ctx context.Context, conn *connection, _ *Payload) error {
	return conn.send(ctx, actionChoices, Payload{Choices: that.sessions.Catalog()})
}
