package store

// SeedPrefix marks the built-in tasbihs shipped with the app. Entities whose
// id carries this prefix refuse deletion.
const SeedPrefix = "default-"

// Tasbih is a named repeating counter with an optional cyclical target.
// The JSON tags match the persisted document shape.
type Tasbih struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	ArabicTitle string         `json:"arabicTitle,omitempty"`
	Target      int            `json:"target"` // 0 means unbounded, no rollover
	Count       int            `json:"count"`  // position within the current cycle
	TotalCount  int            `json:"totalCount"`
	Color       string         `json:"color,omitempty"`
	DailyCounts map[string]int `json:"dailyCounts"` // "YYYY-MM-DD" -> ticks that day
	IsFavorite  bool           `json:"isFavorite"`
}

// IsSeed reports whether t is one of the built-in tasbihs.
func (t Tasbih) IsSeed() bool {
	return len(t.ID) >= len(SeedPrefix) && t.ID[:len(SeedPrefix)] == SeedPrefix
}

// View selects which screen is showing.
type View string

const (
	ViewLanding     View = "LANDING"
	ViewLibrary     View = "LIBRARY"
	ViewCounter     View = "COUNTER"
	ViewStats       View = "STATS"
	ViewGlobalStats View = "GLOBAL_STATS"
)

// AppState is the persisted navigation/preference record. ActiveTasbihID is
// a weak reference: it must be revalidated against the live collection on
// load, since the tasbih may have been deleted.
type AppState struct {
	ActiveTasbihID string `json:"activeTasbihId"`
	View           View   `json:"view"`
	SoundEnabled   bool   `json:"soundEnabled"`
}

// PredefinedTasbihs returns a fresh copy of the built-in seed set, used
// whenever no stored collection exists or the stored record is unreadable.
func PredefinedTasbihs() []Tasbih {
	return []Tasbih{
		{
			ID:          "default-1",
			Title:       "SubhanAllah",
			ArabicTitle: "سُبْحَانَ ٱللَّٰهِ",
			Target:      33,
			Color:       "emerald",
			DailyCounts: map[string]int{},
		},
		{
			ID:          "default-2",
			Title:       "Alhamdulillah",
			ArabicTitle: "ٱلْحَمْدُ لِلَّٰهِ",
			Target:      33,
			Color:       "emerald",
			DailyCounts: map[string]int{},
		},
		{
			ID:          "default-3",
			Title:       "Allahu Akbar",
			ArabicTitle: "ٱللَّٰهُ أَكْبَرُ",
			Target:      33,
			Color:       "emerald",
			DailyCounts: map[string]int{},
		},
		{
			ID:          "default-4",
			Title:       "Astaghfirullah",
			ArabicTitle: "أَسْتَغْفِرُ ٱللَّٰهَ",
			Target:      100,
			Color:       "gold",
			DailyCounts: map[string]int{},
		},
		{
			ID:          "default-5",
			Title:       "La ilaha illallah",
			ArabicTitle: "لَا إِلَٰهَ إِلَّا ٱللَّٰهُ",
			Target:      100,
			Color:       "gold",
			DailyCounts: map[string]int{},
		},
	}
}
