package formconfig

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a JSON or YAML form configuration. The format is inferred
// from the path extension; anything that is not .json is treated as YAML,
// which also covers JSON payloads with a .yaml/.yml name.
func Parse(data []byte, path string) (FormConfig, error) {
	var cfg FormConfig
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return FormConfig{}, fmt.Errorf("formconfig: parse %s: %w", path, err)
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FormConfig{}, fmt.Errorf("formconfig: parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFS reads and parses a configuration file from the provided filesystem.
func LoadFS(fsys fs.FS, path string) (FormConfig, error) {
	if fsys == nil {
		return FormConfig{}, fmt.Errorf("formconfig: nil filesystem")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return FormConfig{}, fmt.Errorf("formconfig: read %s: %w", path, err)
	}
	return Parse(data, path)
}
