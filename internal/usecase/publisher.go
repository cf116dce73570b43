package usecase

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/entity"
)

type viewRepo interface {
	Save(ctx context.Context, sessionID string, view *entity.Game) error
}

// ViewPublisher is a Presenter that stores and broadcasts every snapshot of one session.
type ViewPublisher struct {
	sessionID string
	viewRepo  viewRepo
}

func NewViewPublisher(sessionID string, viewRepo viewRepo) *ViewPublisher {
	return &ViewPublisher{
		sessionID: sessionID,
		viewRepo:  viewRepo,
	}
}

func (that *ViewPublisher) Render(ctx context.Context, snapshot *entity.Game) error {
	if err := that.viewRepo.Save(ctx, that.sessionID, snapshot); err != nil {
		return fmt.Errorf("failed to publish view: %w", err)
	}

	return nil
}
