package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/avolkov/tessera/internal/model"
)

// CaseFile is the on-disk bundle of a case: its context and the raw
// inputs to verify. JSON and YAML are supported, chosen by extension.
type CaseFile struct {
	Title  string            `json:"title" yaml:"title"`
	Case   model.CaseContext `json:"case" yaml:"case"`
	Inputs []model.RawInput  `json:"inputs" yaml:"inputs"`
}

// LoadCaseFile reads and decodes a case bundle from disk.
func LoadCaseFile(path string) (*CaseFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read case file: %w", err)
	}

	var cf CaseFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cf); err != nil {
			return nil, fmt.Errorf("parse YAML case file %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cf); err != nil {
			return nil, fmt.Errorf("parse JSON case file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported case file extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}

	if cf.Title == "" {
		cf.Title = cf.Case.CaseID
	}
	return &cf, nil
}

// ReadCasePathsFromFile reads case file paths from a manifest, one per
// line. Blank lines and lines starting with # are skipped; duplicates
// are dropped.
func ReadCasePathsFromFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var paths []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}
	return paths, nil
}
