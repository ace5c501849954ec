package tuner

import (
	"encoding/json"
	"os"

	"checkers-engine/engine"
)

// SaveWeights writes w as indented JSON, replacing path atomically.
func SaveWeights(path string, w engine.Weights) error {
	b, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadWeights reads weights written by SaveWeights. Fields missing from the file keep
// the values already in w.
func LoadWeights(path string, w *engine.Weights) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, w)
}
