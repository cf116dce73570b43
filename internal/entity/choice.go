package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/apperror"
)

type ChoiceID int

const (
	Rock ChoiceID = iota + 1
	Paper
	Scissors
	Lizard
	Spock
)

// Choice is a selectable option of a round together with the choices it defeats.
type Choice struct {
	ID        ChoiceID   `json:"id"`
	Label     string     `json:"label"`
	Icon      string     `json:"icon"`
	Strengths []ChoiceID `json:"-"`
}

func NewChoice(id ChoiceID, label, icon string, strengths ...ChoiceID) *Choice {
	return &Choice{
		ID:        id,
		Label:     label,
		Icon:      icon,
		Strengths: strengths,
	}
}

// Beats reports whether other is in the strengths of that.
func (that *Choice) Beats(other *Choice) bool {
	for _, id := range that.Strengths {
		if id == other.ID {
			return true
		}
	}

	return false
}

// Catalog is the immutable set of choices of a ruleset.
type Catalog struct {
	choices []*Choice
}

// NewCatalog validates the dominance graph and returns a catalog preserving the given order.
func NewCatalog(choices ...*Choice) (*Catalog, error) {
	if len(choices) == 0 {
		return nil, fmt.Errorf("%w: no choices", apperror.ErrInvalidRuleset)
	}

	known := make(map[ChoiceID]*Choice, len(choices))
	for _, choice := range choices {
		if choice == nil {
			return nil, fmt.Errorf("%w: nil choice", apperror.ErrInvalidRuleset)
		}

		if choice.ID <= 0 {
			return nil, fmt.Errorf("%w: choice id %d must be positive", apperror.ErrInvalidRuleset, choice.ID)
		}

		if choice.Label == "" {
			return nil, fmt.Errorf("%w: choice %d has no label", apperror.ErrInvalidRuleset, choice.ID)
		}

		if _, ok := known[choice.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate choice id %d", apperror.ErrInvalidRuleset, choice.ID)
		}

		known[choice.ID] = choice
	}

	for _, choice := range choices {
		for _, id := range choice.Strengths {
			other, ok := known[id]
			if !ok {
				return nil, fmt.Errorf("%w: %s beats unknown choice %d", apperror.ErrInvalidRuleset, choice.Label, id)
			}

			if other.ID == choice.ID {
				return nil, fmt.Errorf("%w: %s beats itself", apperror.ErrInvalidRuleset, choice.Label)
			}

			if other.Beats(choice) {
				return nil, fmt.Errorf("%w: %s and %s beat each other", apperror.ErrInvalidRuleset, choice.Label, other.Label)
			}
		}
	}

	list := make([]*Choice, len(choices))
	copy(list, choices)

	return &Catalog{choices: list}, nil
}

func (that *Catalog) Lookup(id ChoiceID) (*Choice, error) {
	for _, choice := range that.choices {
		if choice.ID == id {
			return choice, nil
		}
	}

	return nil, fmt.Errorf("%w: id %d", apperror.ErrChoiceNotFound, id)
}

func (that *Catalog) Len() int {
	return len(that.choices)
}

func (that *Catalog) At(index int) *Choice {
	return that.choices[index]
}

// Choices returns a copy of the ordered choice list.
func (that *Catalog) Choices() []*Choice {
	list := make([]*Choice, len(that.choices))
	copy(list, that.choices)

	return list
}

type catalogEntry struct {
	ID        ChoiceID   `json:"id"`
	Label     string     `json:"label"`
	Icon      string     `json:"icon"`
	Strengths []ChoiceID `json:"strengths"`
}

// MarshalJSON lists the choices with their strengths, which a snapshot leaves out.
func (that *Catalog) MarshalJSON() ([]byte, error) {
	entries := make([]catalogEntry, 0, len(that.choices))
	for _, choice := range that.choices {
		strengths := choice.Strengths
		if strengths == nil {
			strengths = []ChoiceID{}
		}

		entries = append(entries, catalogEntry{
			ID:        choice.ID,
			Label:     choice.Label,
			Icon:      choice.Icon,
			Strengths: strengths,
		})
	}

	return json.Marshal(entries)
}

// ClassicCatalog is Rock Paper Scissors.
func ClassicCatalog() *Catalog {
	return mustCatalog(
		NewChoice(Rock, "Rock", "/img/icons/rock.png", Scissors),
		NewChoice(Paper, "Paper", "/img/icons/paper.png", Rock),
		NewChoice(Scissors, "Scissors", "/img/icons/scissors.png", Paper),
	)
}

// ExtendedCatalog is Rock Paper Scissors Lizard Spock.
func ExtendedCatalog() *Catalog {
	return mustCatalog(
		NewChoice(Rock, "Rock", "/img/icons/rock.png", Lizard, Scissors),
		NewChoice(Paper, "Paper", "/img/icons/paper.png", Rock, Spock),
		NewChoice(Scissors, "Scissors", "/img/icons/scissors.png", Paper, Lizard),
		NewChoice(Lizard, "Lizard", "/img/icons/lizard.png", Spock, Paper),
		NewChoice(Spock, "Spock", "/img/icons/spock.png", Scissors, Rock),
	)
}

func mustCatalog(choices ...*Choice) *Catalog {
	catalog, err := NewCatalog(choices...)
	if err != nil {
		panic(err)
	}

	return catalog
}
