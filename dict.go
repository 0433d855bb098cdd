package anvil

import (
	"encoding/json"
	"fmt"
	"os"
)

// BlockDict maps block names (with the minecraft: namespace stripped) to the
// numeric ids the caller wants in the grid.
type BlockDict map[string]BlockID

// LoadBlockDict reads a dictionary from a flat JSON object of name to id.
func LoadBlockDict(path string) (BlockDict, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("anvil: read block dictionary: %w", err)
	}
	var dict BlockDict
	if err := json.Unmarshal(raw, &dict); err != nil {
		return nil, fmt.Errorf("anvil: parse block dictionary: %w", err)
	}
	return dict, nil
}
