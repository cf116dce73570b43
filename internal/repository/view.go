package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/apperror"
	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/entity"
)

const (
	viewKeyPrefix     = "view:"
	viewChannelPrefix = "game:"
)

// ViewRepository keeps the last rendered view of each session and fans it out to subscribers.
// Views expire after their TTL and are never read back into a session.
type ViewRepository interface {
	Save(ctx context.Context, sessionID string, view *entity.Game) error
	GetByID(ctx context.Context, sessionID string) (*entity.Game, error)
	Subscribe(ctx context.Context, sessionID string) *redis.PubSub
}

type dbView struct {
	client *redis.Client
	ttl    time.Duration
}

func NewViewRepository(client *redis.Client, ttl time.Duration) ViewRepository {
	return &dbView{
		client: client,
		ttl:    ttl,
	}
}

func ViewChannel(sessionID string) string {
	return viewChannelPrefix + sessionID
}

func (that *dbView) Save(ctx context.Context, sessionID string, view *entity.Game) error {
	viewJSON, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("could not marshal view: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, viewKeyPrefix+sessionID, viewJSON, that.ttl)
		pipe.Publish(ctx, ViewChannel(sessionID), viewJSON)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save view: %w", err)
	}

	return nil
}

func (that *dbView) GetByID(ctx context.Context, sessionID string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, viewKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrViewNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get view by id: %w", err)
	}

	var view entity.Game
	if err = json.Unmarshal([]byte(response), &view); err != nil {
		return nil, fmt.Errorf("failed to unmarshal view: %w", err)
	}

	return &view, nil
}

// Subscribe listens for views saved after the call. The caller closes the subscription.
func (that *dbView) Subscribe(ctx context.Context, sessionID string) *redis.PubSub {
	return that.client.Subscribe(ctx, ViewChannel(sessionID))
}
