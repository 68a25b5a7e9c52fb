package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
)

const tasbihsKey = "tasbihs"

// LoadTasbihs returns the stored collection in insertion order. A missing or
// unreadable document yields the built-in seed set; individually damaged
// entries are repaired field by field rather than rejected wholesale.
func (s *Store) LoadTasbihs() []Tasbih {
	raw, err := s.getDocument(tasbihsKey)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Warn("failed to read tasbih collection, using seed set", "error", err)
		}
		return PredefinedTasbihs()
	}

	var tasbihs []Tasbih
	if err := json.Unmarshal([]byte(raw), &tasbihs); err != nil {
		slog.Warn("tasbih collection is corrupt, using seed set", "error", err)
		return PredefinedTasbihs()
	}
	return repairTasbihs(tasbihs)
}

// SaveTasbihs serializes and stores the full collection. The caller decides
// whether a failure is worth surfacing; the repository only logs it.
func (s *Store) SaveTasbihs(tasbihs []Tasbih) error {
	data, err := json.Marshal(tasbihs)
	if err != nil {
		return err
	}
	return s.putDocument(tasbihsKey, string(data))
}

// repairTasbihs applies defaults to entries written by older versions or
// damaged in place: nil daily maps become empty, negative counters clamp to
// zero, and entries without an identity or title are dropped.
func repairTasbihs(tasbihs []Tasbih) []Tasbih {
	out := make([]Tasbih, 0, len(tasbihs))
	for _, t := range tasbihs {
		if t.ID == "" || t.Title == "" {
			slog.Warn("dropping unidentifiable tasbih entry", "id", t.ID)
			continue
		}
		if t.Target < 0 {
			t.Target = 0
		}
		if t.Count < 0 {
			t.Count = 0
		}
		if t.TotalCount < 0 {
			t.TotalCount = 0
		}
		if t.DailyCounts == nil {
			t.DailyCounts = map[string]int{}
		}
		for day, n := range t.DailyCounts {
			if n < 0 {
				t.DailyCounts[day] = 0
			}
		}
		out = append(out, t)
	}
	return out
}
