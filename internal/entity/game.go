package entity

import (
	"fmt"

	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/apperror"
)

type Game struct {
	Initialized bool      `json:"initialized"`
	Players     []*Player `json:"players"`
}

// NewGame creates a game for two players. Player 2 is always automated.
func NewGame(playerIsHuman bool) *Game {
	return &Game{
		Players: []*Player{
			NewPlayer(Player1, !playerIsHuman),
			NewPlayer(Player2, true),
		},
	}
}

func (that *Game) FindPlayer(id PlayerID) (*Player, error) {
	for _, player := range that.Players {
		if player.ID == id {
			return player, nil
		}
	}

	return nil, fmt.Errorf("%w: id %d", apperror.ErrPlayerNotFound, id)
}

func (that *Game) IsComplete() bool {
	for _, player := range that.Players {
		if !player.HasChoice() {
			return false
		}
	}

	return true
}

// Clone returns a copy that shares only the immutable choices.
func (that *Game) Clone() *Game {
	players := make([]*Player, 0, len(that.Players))
	for _, player := range that.Players {
		copied := *player
		players = append(players, &copied)
	}

	return &Game{
		Initialized: that.Initialized,
		Players:     players,
	}
}
