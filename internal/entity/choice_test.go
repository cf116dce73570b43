package entity

import (
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Lookup(t *testing.T) {
	catalog := ClassicCatalog()

	t.Run("Returns a choice", func(t *testing.T) {
		choice, err := catalog.Lookup(Rock)

		require.NoError(t, err)
		assert.Equal(t, Rock, choice.ID)
		assert.Equal(t, "Rock", choice.Label)
	})

	t.Run("Returns other choices", func(t *testing.T) {
		choice, err := catalog.Lookup(Paper)

		require.NoError(t, err)
		assert.Equal(t, Paper, choice.ID)
	})

	t.Run("Returns ErrChoiceNotFound for an unknown id", func(t *testing.T) {
		choice, err := catalog.Lookup(0)

		require.ErrorIs(t, err, apperror.ErrChoiceNotFound)
		assert.Nil(t, choice)
	})

	t.Run("Classic ruleset has no Spock", func(t *testing.T) {
		_, err := catalog.Lookup(Spock)

		require.ErrorIs(t, err, apperror.ErrChoiceNotFound)
	})
}

func TestCatalog_Dominance(t *testing.T) {
	for name, catalog := range map[string]*Catalog{
		"classic":  ClassicCatalog(),
		"extended": ExtendedCatalog(),
	} {
		t.Run(name+" ruleset has exactly one winner per pair", func(t *testing.T) {
			choices := catalog.Choices()

			for i, a := range choices {
				assert.False(t, a.Beats(a), "%s beats itself", a.Label)

				for _, b := range choices[i+1:] {
					assert.True(t, a.Beats(b) != b.Beats(a), "%s vs %s", a.Label, b.Label)
				}
			}
		})
	}

	t.Run("Paper beats Rock", func(t *testing.T) {
		catalog := ClassicCatalog()
		rock, _ := catalog.Lookup(Rock)
		paper, _ := catalog.Lookup(Paper)

		assert.True(t, paper.Beats(rock))
		assert.False(t, rock.Beats(paper))
	})
}

func TestNewCatalog(t *testing.T) {
	t.Run("Rejects an empty ruleset", func(t *testing.T) {
		_, err := NewCatalog()

		assert.ErrorIs(t, err, apperror.ErrInvalidRuleset)
	})

	t.Run("Rejects a choice that beats itself", func(t *testing.T) {
		_, err := NewCatalog(
			NewChoice(Rock, "Rock", "", Rock),
		)

		assert.ErrorIs(t, err, apperror.ErrInvalidRuleset)
	})

	t.Run("Rejects mutual dominance", func(t *testing.T) {
		_, err := NewCatalog(
			NewChoice(Rock, "Rock", "", Paper),
			NewChoice(Paper, "Paper", "", Rock),
		)

		require.ErrorIs(t, err, apperror.ErrInvalidRuleset)
		assert.Contains(t, err.Error(), "beat each other")
	})

	t.Run("Rejects unknown strengths", func(t *testing.T) {
		_, err := NewCatalog(
			NewChoice(Rock, "Rock", "", Lizard),
		)

		assert.ErrorIs(t, err, apperror.ErrInvalidRuleset)
	})

	t.Run("Rejects duplicate ids", func(t *testing.T) {
		_, err := NewCatalog(
			NewChoice(Rock, "Rock", ""),
			NewChoice(Rock, "Stone", ""),
		)

		assert.ErrorIs(t, err, apperror.ErrInvalidRuleset)
	})

	t.Run("Rejects a missing label", func(t *testing.T) {
		_, err := NewCatalog(NewChoice(Rock, "", ""))

		assert.ErrorIs(t, err, apperror.ErrInvalidRuleset)
	})

	t.Run("Keeps the given order", func(t *testing.T) {
		catalog, err := NewCatalog(
			NewChoice(Scissors, "Scissors", "", Paper),
			NewChoice(Paper, "Paper", ""),
		)

		require.NoError(t, err)
		require.Equal(t, 2, catalog.Len())
		assert.Equal(t, Scissors, catalog.At(0).ID)
		assert.Equal(t, Paper, catalog.At(1).ID)
	})
}

func TestCatalog_MarshalJSON(t *testing.T) {
	// Given: a two choice catalog where one choice beats nothing
	catalog, err := NewCatalog(
		NewChoice(Rock, "Rock", "/rock.png", Scissors),
		NewChoice(Scissors, "Scissors", "/scissors.png"),
	)
	require.NoError(t, err)

	// When: the catalog is encoded
	data, err := json.Marshal(catalog)
	require.NoError(t, err)

	// Then: every choice lists its strengths
	assert.JSONEq(t, `[
		{"id": 1, "label": "Rock", "icon": "/rock.png", "strengths": [3]},
		{"id": 3, "label": "Scissors", "icon": "/scissors.png", "strengths": []}
	]`, string(data))
}
