// Package ruleset builds the choice catalog a server plays with.
//
// Two rulesets ship with the server. Any other dominance graph can be
// described in a Lua script that returns a list of choices:
//
//	return {
//	    { id = 1, label = "Rock",     icon = "/img/icons/rock.png",     strengths = { 3 } },
//	    { id = 2, label = "Paper",    icon = "/img/icons/paper.png",    strengths = { 1 } },
//	    { id = 3, label = "Scissors", icon = "/img/icons/scissors.png", strengths = { 2 } },
//	}
package ruleset

import (
	"context"
	"fmt"
	"os"

	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/apperror"
	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/entity"
)

const (
	Classic  = "classic"
	Extended = "extended"
	Script   = "script"
)

// Load returns the catalog for name. scriptPath is only read for the script ruleset.
func Load(ctx context.Context, name, scriptPath string) (*entity.Catalog, error) {
	switch name {
	case Classic, "":
		return entity.ClassicCatalog(), nil
	case Extended:
		return entity.ExtendedCatalog(), nil
	case Script:
		if scriptPath == "" {
			return nil, fmt.Errorf("%w: script ruleset needs a script path", apperror.ErrInvalidRuleset)
		}

		source, err := os.ReadFile(scriptPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read ruleset script: %w", err)
		}

		return FromLua(ctx, string(source))
	default:
		return nil, fmt.Errorf("%w: unknown ruleset %q", apperror.ErrInvalidRuleset, name)
	}
}
