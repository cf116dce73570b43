package ruleset

import (
	"context"
	"errors"
	"fmt"
	"math"

	lua "github.com/yuin/gopher-lua"

	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/apperror"
	"github.com/rocketscienceinc/rockpaperscissors-backend/internal/entity"
)

var (
	errIDNotNumber    = errors.New("id must be a number")
	errLabelNotString = errors.New("label must be a string")
	errNotInteger     = errors.New("must be an integer")
)

// globals of the base library that reach the file system.
var fileGlobals = []string{"dofile", "loadfile"}

// FromLua runs source with only the base, table, string and math libraries,
// without file loading, and converts the returned table.
func FromLua(ctx context.Context, source string) (*entity.Catalog, error) {
	state := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer state.Close()

	state.SetContext(ctx)

	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := state.CallByParam(lua.P{
			Fn:      state.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			return nil, fmt.Errorf("failed to open lua library %s: %w", lib.name, err)
		}
	}

	for _, name := range fileGlobals {
		state.SetGlobal(name, lua.LNil)
	}

	if err := state.DoString(source); err != nil {
		return nil, fmt.Errorf("%w: script failed: %w", apperror.ErrInvalidRuleset, err)
	}

	table, ok := state.Get(-1).(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: script must return a table", apperror.ErrInvalidRuleset)
	}

	choices := make([]*entity.Choice, 0, table.Len())
	for i := 1; i <= table.Len(); i++ {
		choice, err := toChoice(table.RawGetInt(i))
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", apperror.ErrInvalidRuleset, i, err)
		}

		choices = append(choices, choice)
	}

	catalog, err := entity.NewCatalog(choices...)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}

	return catalog, nil
}

func toChoice(value lua.LValue) (*entity.Choice, error) {
	entry, ok := value.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("expected a table, got %s", value.Type())
	}

	rawID, ok := entry.RawGetString("id").(lua.LNumber)
	if !ok {
		return nil, errIDNotNumber
	}

	id, err := toChoiceID(rawID)
	if err != nil {
		return nil, fmt.Errorf("id %v %w", rawID, err)
	}

	label, ok := entry.RawGetString("label").(lua.LString)
	if !ok {
		return nil, errLabelNotString
	}

	// icon is optional
	icon, _ := entry.RawGetString("icon").(lua.LString)

	var strengths []entity.ChoiceID
	switch raw := entry.RawGetString("strengths").(type) {
	case *lua.LTable:
		for i := 1; i <= raw.Len(); i++ {
			rawStrength, ok := raw.RawGetInt(i).(lua.LNumber)
			if !ok {
				return nil, fmt.Errorf("strength %d of %s must be a number", i, label)
			}

			strength, err := toChoiceID(rawStrength)
			if err != nil {
				return nil, fmt.Errorf("strength %d of %s %w", i, label, err)
			}

			strengths = append(strengths, strength)
		}
	case *lua.LNilType:
	default:
		return nil, fmt.Errorf("strengths of %s must be a list", label)
	}

	return entity.NewChoice(id, string(label), string(icon), strengths...), nil
}

func toChoiceID(number lua.LNumber) (entity.ChoiceID, error) {
	value := float64(number)
	if value != math.Trunc(value) || math.IsInf(value, 0) {
		return 0, errNotInteger
	}

	return entity.ChoiceID(value), nil
}
