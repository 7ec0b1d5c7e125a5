package notesvc

import (
	"encoding/json"
	"fmt"
	"os"

	"brain/internal/types"
)

// LoadSeedFile reads a JSON array of notes in the same shape the service
// serves.
func LoadSeedFile(path string) ([]types.Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var notes []types.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return notes, nil
}
