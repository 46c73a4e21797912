package presets

import (
	"fmt"

	"github.com/dekarrin/codex/internal/puzzle"
	"github.com/dekarrin/codex/internal/util"
)

// parsePresets converts unmarshaled presets into a checked Set. Later
// definitions of a key replace earlier ones in place.
func parsePresets(cxp topLevelPresets) (Set, error) {
	var s Set
	index := map[string]int{}

	for i, d := range cxp.Difficulties {
		key := puzzle.NormalizeKey(d.Key)
		if key == "" {
			return Set{}, fmt.Errorf("difficulty #%d: 'key' must be set", i+1)
		}

		diff := puzzle.Difficulty{
			Key:             key,
			Label:           d.Label,
			Symbols:         d.Symbols,
			Rules:           d.Rules,
			ExampleCount:    d.ExampleCount,
			StringLength:    d.StringLength,
			MinStringLength: d.MinLength,
		}
		if diff.Label == "" {
			diff.Label = key
		}

		if err := diff.Validate(); err != nil {
			return Set{}, fmt.Errorf("difficulty %q: %w", key, err)
		}

		if pos, ok := index[key]; ok {
			s.Difficulties[pos] = diff
		} else {
			index[key] = len(s.Difficulties)
			s.Difficulties = append(s.Difficulties, diff)
		}
	}

	if cxp.Default != "" {
		s.Default = puzzle.NormalizeKey(cxp.Default)
		if _, ok := index[s.Default]; !ok {
			return Set{}, fmt.Errorf("default: no difficulty with key %q; must be one of %s", cxp.Default, util.MakeTextList(s.Keys(), true))
		}
	} else if len(s.Difficulties) > 0 {
		s.Default = s.Difficulties[0].Key
	}

	return s, nil
}
