package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/apperror"
	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/entity"
)

// Presenter receives a read-only snapshot after every change of the game.
type Presenter interface {
	Render(ctx context.Context, snapshot *entity.Game) error
}

type engine interface {
	AssignChoice(game *entity.Game, playerID entity.PlayerID, choiceID entity.ChoiceID) error
	AssignAutomatedChoices(game *entity.Game)
	ResolveRound(game *entity.Game) error
}

// Session owns one game at a time and is driven by a single presentation collaborator.
// It is not safe for concurrent use.
type Session struct {
	logger     *slog.Logger
	engine     engine
	presenters []Presenter

	game *entity.Game
}

func NewSession(logger *slog.Logger, engine engine, presenters ...Presenter) *Session {
	return &Session{
		logger:     logger.With("component", "session"),
		engine:     engine,
		presenters: presenters,
	}
}

// StartGame replaces the current game with a fresh one and renders it.
func (that *Session) StartGame(ctx context.Context, playerIsHuman bool) (*entity.Game, error) {
	that.game = entity.NewGame(playerIsHuman)

	that.logger.Debug("game started", "human", playerIsHuman)

	if err := that.render(ctx); err != nil {
		return nil, err
	}

	return that.game.Clone(), nil
}

func (that *Session) RequestRematchAsHuman(ctx context.Context) (*entity.Game, error) {
	return that.StartGame(ctx, true)
}

func (that *Session) RequestRematchAsCPU(ctx context.Context) (*entity.Game, error) {
	return that.StartGame(ctx, false)
}

// SubmitHumanChoice records the choice, then draws automated choices, resolves and renders.
func (that *Session) SubmitHumanChoice(ctx context.Context, playerID entity.PlayerID, choiceID entity.ChoiceID) error {
	log := that.logger.With("method", "SubmitHumanChoice", "player", playerID, "choice", choiceID)

	if that.game == nil {
		return apperror.ErrNoActiveGame
	}

	if err := that.engine.AssignChoice(that.game, playerID, choiceID); err != nil {
		log.Warn("choice rejected", "error", err)
		return fmt.Errorf("failed to submit choice: %w", err)
	}

	return that.playRound(ctx)
}

// ReplayAutomatedOnly draws new automated choices and resolves against the current human choice, if any.
func (that *Session) ReplayAutomatedOnly(ctx context.Context) error {
	if that.game == nil {
		return apperror.ErrNoActiveGame
	}

	return that.playRound(ctx)
}

// Snapshot returns a copy of the current game.
func (that *Session) Snapshot() (*entity.Game, error) {
	if that.game == nil {
		return nil, apperror.ErrNoActiveGame
	}

	return that.game.Clone(), nil
}

func (that *Session) playRound(ctx context.Context) error {
	log := that.logger.With("method", "playRound")

	// a human without a choice fails the round before any draw
	for _, player := range that.game.Players {
		if !player.IsCPU && !player.HasChoice() {
			return fmt.Errorf("failed to resolve round: %w", apperror.ErrIncompleteRound)
		}
	}

	that.engine.AssignAutomatedChoices(that.game)

	if err := that.engine.ResolveRound(that.game); err != nil {
		return fmt.Errorf("failed to resolve round: %w", err)
	}

	for _, player := range that.game.Players {
		log.Debug("round resolved", "player", player.ID, "result", player.Result.String(), "score", player.Score)
	}

	return that.render(ctx)
}

// render hands a snapshot to every presenter. The game counts as initialized after its first render.
func (that *Session) render(ctx context.Context) error {
	snapshot := that.game.Clone()

	var errs []error
	for _, presenter := range that.presenters {
		if err := presenter.Render(ctx, snapshot); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to render game: %w", err)
	}

	that.game.Initialized = true

	return nil
}
