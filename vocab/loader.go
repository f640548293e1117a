package vocab

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// vocabFile is the on-disk vocabulary format, accepted as JSON or YAML.
type vocabFile struct {
	Namespace string      `json:"namespace" yaml:"namespace"`
	Terms     []vocabTerm `json:"terms" yaml:"terms"`
}

type vocabTerm struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// LoadFile reads one vocabulary file into v. The format is selected by
// extension: .json, or .yaml/.yml.
func LoadFile(v *InMemory, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read vocabulary %s: %w", path, err)
	}

	var vf vocabFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &vf); err != nil {
			return fmt.Errorf("parse vocabulary %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &vf); err != nil {
			return fmt.Errorf("parse vocabulary %s: %w", path, err)
		}
	default:
		return fmt.Errorf("vocabulary %s: unsupported extension %q", path, filepath.Ext(path))
	}

	for _, term := range vf.Terms {
		if term.ID == "" {
			continue
		}
		v.Add(term.ID, term.Label)
	}
	return nil
}

// LoadDir reads every vocabulary file in dir (non-recursive) into v.
// Files with unrecognized extensions are skipped.
func LoadDir(v *InMemory, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read vocabulary dir %s: %w", dir, err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
			if err := LoadFile(v, filepath.Join(dir, e.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}
