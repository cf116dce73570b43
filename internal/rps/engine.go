package rps

import (
	"fmt"

	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/apperror"
	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/entity"
)

// Randomizer is a uniform source over [0, n).
type Randomizer interface {
	Intn(n int) int
}

// Engine applies choices to a game and resolves rounds against a catalog.
// It holds no game state and is not safe for concurrent use when the
// randomizer is not.
type Engine struct {
	catalog *entity.Catalog
	rnd     Randomizer
}

func NewEngine(catalog *entity.Catalog, rnd Randomizer) *Engine {
	return &Engine{
		catalog: catalog,
		rnd:     rnd,
	}
}

func (that *Engine) Catalog() *entity.Catalog {
	return that.catalog
}

// AssignChoice sets the player's choice. Nothing is changed when a lookup fails.
func (that *Engine) AssignChoice(game *entity.Game, playerID entity.PlayerID, choiceID entity.ChoiceID) error {
	player, err := game.FindPlayer(playerID)
	if err != nil {
		return fmt.Errorf("failed to assign choice: %w", err)
	}

	choice, err := that.catalog.Lookup(choiceID)
	if err != nil {
		return fmt.Errorf("failed to assign choice: %w", err)
	}

	player.Choice = choice

	return nil
}

// AssignRandomChoice draws a choice uniformly from the whole catalog.
func (that *Engine) AssignRandomChoice(game *entity.Game, playerID entity.PlayerID) error {
	player, err := game.FindPlayer(playerID)
	if err != nil {
		return fmt.Errorf("failed to assign random choice: %w", err)
	}

	that.assignRandom(player)

	return nil
}

// AssignAutomatedChoices draws a choice for every automated player.
func (that *Engine) AssignAutomatedChoices(game *entity.Game) {
	for _, player := range game.Players {
		if !player.IsCPU {
			continue
		}

		that.assignRandom(player)
	}
}

func (that *Engine) assignRandom(player *entity.Player) {
	player.Choice = that.catalog.At(that.rnd.Intn(that.catalog.Len()))
}

// ResolveRound compares every pair of players and updates results and scores.
//
// The round is a draw when every player beat someone or when nobody beat
// anyone. Otherwise each player who beat at least one opponent wins a point
// and the rest lose.
func (that *Engine) ResolveRound(game *entity.Game) error {
	if !game.IsComplete() {
		return apperror.ErrIncompleteRound
	}

	beatsSomeone := make([]bool, len(game.Players))
	for i, player := range game.Players {
		for _, other := range game.Players {
			if player.ID == other.ID {
				continue
			}

			if player.Choice.Beats(other.Choice) {
				beatsSomeone[i] = true
				break
			}
		}
	}

	if isDraw(beatsSomeone) {
		for _, player := range game.Players {
			player.Draw()
		}

		return nil
	}

	for i, player := range game.Players {
		if beatsSomeone[i] {
			player.Win()
		} else {
			player.Lose()
		}
	}

	return nil
}

func isDraw(beatsSomeone []bool) bool {
	everybody, nobody := true, true
	for _, won := range beatsSomeone {
		if won {
			nobody = false
		} else {
			everybody = false
		}
	}

	return everybody || nobody
}
