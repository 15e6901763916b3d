package store

import (
	"encoding/json"
	"fmt"
	"os"

	"cashplan/internal/model"
)

// ReadSnapshot loads a plan from a JSON snapshot file.
func ReadSnapshot(path string) (*model.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var plan model.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return &plan, nil
}

// WriteSnapshot saves a plan to a JSON snapshot file.
func WriteSnapshot(path string, plan *model.Plan) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
