package scenario

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
)

//go:embed presets/*.toml
var presetFS embed.FS

// DefaultPreset is loaded when no scenario is named
const DefaultPreset = "solar"

// Presets lists the embedded preset names, sorted
func Presets() []string {
	entries, err := fs.ReadDir(presetFS, "presets")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".toml"); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Preset parses the embedded preset called name
func Preset(name string) (*File, error) {
	data, err := presetFS.ReadFile(path.Join("presets", name+".toml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("preset %q: %w", name, err)
	}
	return f, nil
}

// Resolve loads ref as a file when it exists on disk, otherwise as a preset
// Returns the file and its source label
func Resolve(ref string) (*File, string, error) {
	if ref == "" {
		ref = DefaultPreset
	}
	if _, err := os.Stat(ref); err == nil {
		f, err := Load(ref)
		return f, ref, err
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, "", fmt.Errorf("scenario %q: %w", ref, err)
	}
	f, err := Preset(ref)
	if err != nil {
		return nil, "", err
	}
	return f, "preset:" + ref, nil
}
