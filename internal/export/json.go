package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/abcreative1/soulcount/internal/store"
)

type jsonExport struct {
	ExportedAt string         `json:"exported_at"`
	Count      int            `json:"count"`
	Tasbihs    []store.Tasbih `json:"tasbihs"`
}

// ToJSON writes the full collection, in the same document shape the store
// persists, so an export can be inspected or re-imported by hand.
func ToJSON(tasbihs []store.Tasbih, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(tasbihs),
		Tasbihs:    tasbihs,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
