package apperror

import "errors"

var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrChoiceNotFound  = errors.New("choice not found")
	ErrIncompleteRound = errors.New("round is incomplete, not every player has a choice")
	ErrNoActiveGame    = errors.New("no active game")
	ErrInvalidRuleset  = errors.New("invalid ruleset")
	ErrViewNotFound    = errors.New("view not found")
)
