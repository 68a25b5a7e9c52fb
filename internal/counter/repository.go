// Package counter owns the tasbih collection and is its only mutation
// surface. Every operation runs synchronously against the in-memory
// snapshot and immediately writes the whole collection back through the
// store; a failed save is logged, never raised.
package counter

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abcreative1/soulcount/internal/store"
)

var (
	ErrNotFound      = errors.New("tasbih not found")
	ErrEmptyTitle    = errors.New("title must not be empty")
	ErrInvalidCount  = errors.New("count must be non-negative")
	ErrInvalidTarget = errors.New("target must be non-negative")
	ErrBuiltIn       = errors.New("built-in tasbih cannot be deleted")
)

const defaultColor = "emerald"

// Repository holds the ordered tasbih collection and the navigation state.
type Repository struct {
	store     *store.Store
	tasbihs   []store.Tasbih
	state     store.AppState
	onboarded bool

	now func() time.Time // injectable clock for tests
}

// NewRepository loads the collection and navigation state from s. A stale
// active reference is silently dropped, and a view that needs an active
// tasbih falls back to the library.
func NewRepository(s *store.Store) *Repository {
	r := &Repository{
		store: s,
		now:   time.Now,
	}
	r.tasbihs = s.LoadTasbihs()
	r.onboarded = s.HasOnboarded()

	st := s.LoadState()
	if !r.onboarded {
		st.View = store.ViewLanding
		st.ActiveTasbihID = ""
	} else if st.ActiveTasbihID != "" && r.indexOf(st.ActiveTasbihID) < 0 {
		st.ActiveTasbihID = ""
		if st.View == store.ViewCounter || st.View == store.ViewStats {
			st.View = store.ViewLibrary
		}
	}
	r.state = st
	return r
}

// dateKey formats t as the local calendar day, the key for daily history.
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func (r *Repository) indexOf(id string) int {
	for i := range r.tasbihs {
		if r.tasbihs[i].ID == id {
			return i
		}
	}
	return -1
}

// persist writes the full collection through the store. Storage failures
// degrade to in-memory operation.
func (r *Repository) persist() {
	if err := r.store.SaveTasbihs(r.tasbihs); err != nil {
		slog.Error("failed to save tasbih collection", "error", err)
	}
}

// persistState writes the navigation state, except during onboarding: no
// navigation state is recorded until the landing screen is dismissed.
func (r *Repository) persistState() {
	if r.state.View == store.ViewLanding {
		return
	}
	if err := r.store.SaveState(r.state); err != nil {
		slog.Error("failed to save app state", "error", err)
	}
}

// --- Read side ---

// Tasbihs returns a snapshot copy of the collection in insertion order.
func (r *Repository) Tasbihs() []store.Tasbih {
	out := make([]store.Tasbih, len(r.tasbihs))
	copy(out, r.tasbihs)
	return out
}

// Get returns the tasbih with the given id.
func (r *Repository) Get(id string) (store.Tasbih, error) {
	i := r.indexOf(id)
	if i < 0 {
		return store.Tasbih{}, ErrNotFound
	}
	return r.tasbihs[i], nil
}

// Active returns the active tasbih, or false when none is selected.
func (r *Repository) Active() (store.Tasbih, bool) {
	if r.state.ActiveTasbihID == "" {
		return store.Tasbih{}, false
	}
	i := r.indexOf(r.state.ActiveTasbihID)
	if i < 0 {
		return store.Tasbih{}, false
	}
	return r.tasbihs[i], true
}

// State returns the current navigation/preference state.
func (r *Repository) State() store.AppState {
	return r.state
}

// Onboarded reports whether the first-run landing was dismissed.
func (r *Repository) Onboarded() bool {
	return r.onboarded
}

// --- Counter operations ---

// Tick advances the tasbih by one. When a target is set and the next count
// would pass it, the cycle rolls over to 1: the tick that crosses the bound
// is itself the first count of the new cycle. The lifetime total and
// today's history entry always advance by one.
func (r *Repository) Tick(id string) (store.Tasbih, error) {
	i := r.indexOf(id)
	if i < 0 {
		return store.Tasbih{}, ErrNotFound
	}
	t := &r.tasbihs[i]

	next := t.Count + 1
	if t.Target > 0 && next > t.Target {
		t.Count = 1
	} else {
		t.Count = next
	}
	t.TotalCount++

	if t.DailyCounts == nil {
		t.DailyCounts = map[string]int{}
	}
	t.DailyCounts[dateKey(r.now())]++

	r.persist()
	return *t, nil
}

// Reset returns the cycle position to zero. Lifetime total and daily
// history are preserved.
func (r *Repository) Reset(id string) (store.Tasbih, error) {
	i := r.indexOf(id)
	if i < 0 {
		return store.Tasbih{}, ErrNotFound
	}
	r.tasbihs[i].Count = 0
	r.persist()
	return r.tasbihs[i], nil
}

// SetCount sets the cycle position directly. Raising the count adds the
// difference to the lifetime total; lowering it leaves the total alone.
// Daily history is not touched either way: manual corrections are not
// ticks.
func (r *Repository) SetCount(id string, count int) (store.Tasbih, error) {
	if count < 0 {
		return store.Tasbih{}, ErrInvalidCount
	}
	i := r.indexOf(id)
	if i < 0 {
		return store.Tasbih{}, ErrNotFound
	}
	t := &r.tasbihs[i]
	if diff := count - t.Count; diff > 0 {
		t.TotalCount += diff
	}
	t.Count = count
	r.persist()
	return *t, nil
}

// SetTarget changes the cycle bound. The current count is not clamped; the
// next tick applies the new bound.
func (r *Repository) SetTarget(id string, target int) (store.Tasbih, error) {
	if target < 0 {
		return store.Tasbih{}, ErrInvalidTarget
	}
	i := r.indexOf(id)
	if i < 0 {
		return store.Tasbih{}, ErrNotFound
	}
	r.tasbihs[i].Target = target
	r.persist()
	return r.tasbihs[i], nil
}

// Create appends a new tasbih with zeroed counters and a fresh id.
func (r *Repository) Create(title, arabicTitle string, target int) (store.Tasbih, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return store.Tasbih{}, ErrEmptyTitle
	}
	if target < 0 {
		return store.Tasbih{}, ErrInvalidTarget
	}
	t := store.Tasbih{
		ID:          uuid.NewString(),
		Title:       title,
		ArabicTitle: strings.TrimSpace(arabicTitle),
		Target:      target,
		Color:       defaultColor,
		DailyCounts: map[string]int{},
	}
	r.tasbihs = append(r.tasbihs, t)
	r.persist()
	return t, nil
}

// Edit replaces title, arabic title and target in place. Identity and
// accumulated counters are preserved.
func (r *Repository) Edit(id, title, arabicTitle string, target int) (store.Tasbih, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return store.Tasbih{}, ErrEmptyTitle
	}
	if target < 0 {
		return store.Tasbih{}, ErrInvalidTarget
	}
	i := r.indexOf(id)
	if i < 0 {
		return store.Tasbih{}, ErrNotFound
	}
	t := &r.tasbihs[i]
	t.Title = title
	t.ArabicTitle = strings.TrimSpace(arabicTitle)
	t.Target = target
	r.persist()
	return *t, nil
}

// Delete removes the tasbih from the collection. Built-in seed tasbihs
// refuse deletion. Deleting the active tasbih clears the active reference
// and returns navigation to the library.
func (r *Repository) Delete(id string) error {
	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	if r.tasbihs[i].IsSeed() {
		return ErrBuiltIn
	}
	r.tasbihs = append(r.tasbihs[:i], r.tasbihs[i+1:]...)
	r.persist()

	if r.state.ActiveTasbihID == id {
		r.state.ActiveTasbihID = ""
		r.state.View = store.ViewLibrary
		r.persistState()
	}
	return nil
}

// ToggleFavorite flips the favorite flag.
func (r *Repository) ToggleFavorite(id string) (store.Tasbih, error) {
	i := r.indexOf(id)
	if i < 0 {
		return store.Tasbih{}, ErrNotFound
	}
	r.tasbihs[i].IsFavorite = !r.tasbihs[i].IsFavorite
	r.persist()
	return r.tasbihs[i], nil
}

// --- Navigation ---

// SetActive selects the tasbih shown on the counter screen.
func (r *Repository) SetActive(id string) error {
	if r.indexOf(id) < 0 {
		return ErrNotFound
	}
	r.state.ActiveTasbihID = id
	r.persistState()
	return nil
}

// ClearActive deselects the active tasbih.
func (r *Repository) ClearActive() {
	r.state.ActiveTasbihID = ""
	r.persistState()
}

// SetView records which screen is showing.
func (r *Repository) SetView(v store.View) {
	r.state.View = v
	r.persistState()
}

// ToggleSound flips the sound preference.
func (r *Repository) ToggleSound() bool {
	r.state.SoundEnabled = !r.state.SoundEnabled
	r.persistState()
	return r.state.SoundEnabled
}

// CompleteOnboarding dismisses the landing screen permanently and moves to
// the library. From this point navigation state is persisted again.
func (r *Repository) CompleteOnboarding() {
	r.onboarded = true
	if err := r.store.SetOnboarded(); err != nil {
		slog.Error("failed to record onboarding", "error", err)
	}
	r.state.View = store.ViewLibrary
	r.persistState()
}
