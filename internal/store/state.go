package store

import (
	"encoding/json"
	"log/slog"
)

const (
	stateKey     = "app_state"
	onboardedKey = "onboarded"
)

// LoadState returns the persisted navigation/preference record, or safe
// defaults when it is absent or unreadable. The caller is responsible for
// revalidating ActiveTasbihID against the live collection.
func (s *Store) LoadState() AppState {
	def := AppState{View: ViewLibrary, SoundEnabled: true}

	raw, err := s.getDocument(stateKey)
	if err != nil {
		return def
	}

	// hapticEnabled is the pre-v1 name for the sound preference.
	var doc struct {
		ActiveTasbihID *string `json:"activeTasbihId"`
		View           string  `json:"view"`
		SoundEnabled   *bool   `json:"soundEnabled"`
		HapticEnabled  *bool   `json:"hapticEnabled"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		slog.Warn("app state document is corrupt, using defaults", "error", err)
		return def
	}

	st := def
	if doc.ActiveTasbihID != nil {
		st.ActiveTasbihID = *doc.ActiveTasbihID
	}
	switch View(doc.View) {
	case ViewLibrary, ViewCounter, ViewStats, ViewGlobalStats:
		st.View = View(doc.View)
	}
	if doc.SoundEnabled != nil {
		st.SoundEnabled = *doc.SoundEnabled
	} else if doc.HapticEnabled != nil {
		st.SoundEnabled = *doc.HapticEnabled
	}
	return st
}

// SaveState serializes and stores the navigation/preference record.
func (s *Store) SaveState(st AppState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.putDocument(stateKey, string(data))
}

// HasOnboarded reports whether the first-run landing screen was dismissed.
func (s *Store) HasOnboarded() bool {
	raw, err := s.getDocument(onboardedKey)
	return err == nil && raw == "true"
}

// SetOnboarded records that onboarding completed.
func (s *Store) SetOnboarded() error {
	return s.putDocument(onboardedKey, "true")
}
