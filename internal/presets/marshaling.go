package presets

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	formatName   = "CODEX"
	typePresets  = "PRESETS"
	typeManifest = "MANIFEST"
)

type difficulty struct {
	Key          string `toml:"key"`
	Label        string `toml:"label,omitempty"`
	Symbols      int    `toml:"symbols"`
	Rules        int    `toml:"rules"`
	ExampleCount int    `toml:"examples"`
	StringLength int    `toml:"length"`
	MinLength    int    `toml:"min_length,omitempty"`
}

type topLevelPresets struct {
	Format       string       `toml:"format"`
	Type         string       `toml:"type"`
	Default      string       `toml:"default,omitempty"`
	Difficulties []difficulty `toml:"difficulty"`
}

type topLevelManifest struct {
	Format string   `toml:"format"`
	Type   string   `toml:"type"`
	Files  []string `toml:"files"`
}

// recursiveUnmarshalResource loads the file at path, following manifests.
// manifStack is for two reasons ->
// * detect circular refs
// * avoid infinite recursion (allow up to MaxManifestRecursionDepth levels)
//
// Returns ErrManifestEmpty if and only if the first manifest in the stack is
// empty, otherwise it is not an error.
func recursiveUnmarshalResource(path string, manifStack []string) (topLevelPresets, error) {
	path = filepath.Clean(path)

	fileData, err := os.ReadFile(path)
	if err != nil {
		return topLevelPresets{}, fmt.Errorf("%q: reading from disk: %w", path, err)
	}

	fileInfo, err := ScanFileInfo(fileData)
	if err != nil {
		return topLevelPresets{}, fmt.Errorf("%q: detecting file type: %w", path, err)
	}

	if strings.ToUpper(fileInfo.Format) != formatName {
		return topLevelPresets{}, fmt.Errorf("%q: file does not have a 'format = \"%s\"' entry", path, formatName)
	}

	switch strings.ToUpper(fileInfo.Type) {
	case typePresets:
		unmarshaled, err := unmarshalPresets(fileData)
		if err != nil {
			return unmarshaled, fmt.Errorf("presets file %q: %w", path, err)
		}
		return unmarshaled, nil
	case typeManifest:
		if len(manifStack) >= MaxManifestRecursionDepth {
			return topLevelPresets{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestStackOverflow)
		}
		for i := range manifStack {
			if manifStack[i] == path {
				return topLevelPresets{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestCircularRef)
			}
		}

		manif, err := unmarshalManifest(fileData)
		if err != nil {
			return topLevelPresets{}, fmt.Errorf("manifest file %q: %w", path, err)
		}

		// an empty manifest is really only a problem for the very first one.
		if len(manif.Files) < 1 && len(manifStack) == 0 {
			return topLevelPresets{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestEmpty)
		}

		manifSubStack := make([]string, len(manifStack)+1)
		copy(manifSubStack, manifStack)
		manifSubStack[len(manifSubStack)-1] = path

		dir := filepath.Dir(path)
		combined := topLevelPresets{Format: formatName, Type: typePresets}
		for _, f := range manif.Files {
			if !filepath.IsAbs(f) {
				f = filepath.Join(dir, f)
			}

			included, err := recursiveUnmarshalResource(f, manifSubStack)
			if err != nil {
				return topLevelPresets{}, err
			}

			combined.Difficulties = append(combined.Difficulties, included.Difficulties...)
			if included.Default != "" {
				combined.Default = included.Default
			}
		}
		return combined, nil
	default:
		return topLevelPresets{}, fmt.Errorf("%q: unknown file type %q; must be one of %q or %q", path, fileInfo.Type, typePresets, typeManifest)
	}
}

// unmarshalPresets unmarshals presets from the given bytes. It does not check
// the difficulties.
func unmarshalPresets(tomlData []byte) (topLevelPresets, error) {
	var cxp topLevelPresets
	if _, tomlErr := toml.Decode(string(tomlData), &cxp); tomlErr != nil {
		return cxp, tomlErr
	}

	if strings.ToUpper(cxp.Format) != formatName {
		return cxp, fmt.Errorf("in header: 'format' key must exist and be set to '%s'", formatName)
	}
	if strings.ToUpper(cxp.Type) != typePresets {
		return cxp, fmt.Errorf("in header: 'type' must exist and be set to '%s'", typePresets)
	}

	return cxp, nil
}

// unmarshalManifest unmarshals a manifest from the given bytes.
func unmarshalManifest(tomlData []byte) (topLevelManifest, error) {
	var cxp topLevelManifest
	if _, tomlErr := toml.Decode(string(tomlData), &cxp); tomlErr != nil {
		return cxp, tomlErr
	}

	if strings.ToUpper(cxp.Format) != formatName {
		return cxp, fmt.Errorf("in header: 'format' key must exist and be set to '%s'", formatName)
	}
	if strings.ToUpper(cxp.Type) != typeManifest {
		return cxp, fmt.Errorf("in header: 'type' must exist and be set to '%s'", typeManifest)
	}

	return cxp, nil
}

func marshalPresets(s Set) ([]byte, error) {
	cxp := topLevelPresets{
		Format:  formatName,
		Type:    typePresets,
		Default: s.Default,
	}
	for _, d := range s.Difficulties {
		cxp.Difficulties = append(cxp.Difficulties, difficulty{
			Key:          d.Key,
			Label:        d.Label,
			Symbols:      d.Symbols,
			Rules:        d.Rules,
			ExampleCount: d.ExampleCount,
			StringLength: d.StringLength,
			MinLength:    d.MinStringLength,
		})
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cxp); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
