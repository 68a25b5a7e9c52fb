package counter

import (
	"errors"
	"testing"
	"time"

	"github.com/abcreative1/soulcount/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	r := NewRepository(newTestStore(t))
	r.now = func() time.Time {
		return time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
	}
	return r
}

func today(r *Repository) string {
	return dateKey(r.now())
}

// ============================================================
// Loading
// ============================================================

func TestNewRepositoryLoadsSeeds(t *testing.T) {
	r := newTestRepo(t)
	tasbihs := r.Tasbihs()
	if len(tasbihs) != 5 {
		t.Fatalf("expected 5 seed tasbihs, got %d", len(tasbihs))
	}
	if tasbihs[0].Title != "SubhanAllah" || tasbihs[0].Target != 33 {
		t.Fatalf("unexpected first seed: %+v", tasbihs[0])
	}
	for _, tb := range tasbihs {
		if !tb.IsSeed() {
			t.Fatalf("seed tasbih %q should carry the seed prefix", tb.ID)
		}
	}
}

func TestNewRepositoryDropsStaleActiveRef(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveState(store.AppState{ActiveTasbihID: "gone", View: store.ViewCounter, SoundEnabled: true}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetOnboarded(); err != nil {
		t.Fatal(err)
	}

	r := NewRepository(s)
	if _, ok := r.Active(); ok {
		t.Fatal("stale active reference should be dropped")
	}
	if r.State().View != store.ViewLibrary {
		t.Fatalf("counter view without an active tasbih should fall back to library, got %s", r.State().View)
	}
}

func TestNewRepositoryKeepsValidActiveRef(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetOnboarded(); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveState(store.AppState{ActiveTasbihID: "default-2", View: store.ViewCounter, SoundEnabled: true}); err != nil {
		t.Fatal(err)
	}

	r := NewRepository(s)
	active, ok := r.Active()
	if !ok || active.ID != "default-2" {
		t.Fatalf("expected default-2 active, got %+v ok=%v", active, ok)
	}
	if r.State().View != store.ViewCounter {
		t.Fatalf("expected counter view, got %s", r.State().View)
	}
}

func TestNewRepositoryBeforeOnboarding(t *testing.T) {
	r := newTestRepo(t)
	if r.Onboarded() {
		t.Fatal("fresh repository should not be onboarded")
	}
	if r.State().View != store.ViewLanding {
		t.Fatalf("expected landing view, got %s", r.State().View)
	}
}

// ============================================================
// Tick
// ============================================================

func TestTickUnbounded(t *testing.T) {
	r := newTestRepo(t)
	tb, err := r.Create("Salawat", "", 0)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 40; i++ {
		got, err := r.Tick(tb.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Count != i {
			t.Fatalf("tick %d: count = %d, want %d", i, got.Count, i)
		}
		if got.TotalCount != i {
			t.Fatalf("tick %d: totalCount = %d, want %d", i, got.TotalCount, i)
		}
	}
}

func TestTickRollsOverToOne(t *testing.T) {
	r := newTestRepo(t)
	tb, _ := r.Create("Test", "", 33)
	seedCounts(t, r, tb.ID, 32, 500)

	got, err := r.Tick(tb.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Count != 33 || got.TotalCount != 501 {
		t.Fatalf("at target: count=%d total=%d, want 33/501", got.Count, got.TotalCount)
	}

	got, err = r.Tick(tb.ID)
	if err != nil {
		t.Fatal(err)
	}
	// The tick past the target is the first count of the new cycle, not zero.
	if got.Count != 1 || got.TotalCount != 502 {
		t.Fatalf("after rollover: count=%d total=%d, want 1/502", got.Count, got.TotalCount)
	}
}

// seedCounts puts a tasbih into a known count/total state via manual edits.
func seedCounts(t *testing.T, r *Repository, id string, count, total int) {
	t.Helper()
	if _, err := r.SetCount(id, total); err != nil {
		t.Fatal(err)
	}
	if _, err := r.SetCount(id, count); err != nil {
		t.Fatal(err)
	}
}

func TestTickRecordsDailyHistory(t *testing.T) {
	r := newTestRepo(t)
	tb, _ := r.Create("Test", "", 0)

	r.Tick(tb.ID)
	r.Tick(tb.ID)
	r.Tick(tb.ID)

	got, _ := r.Get(tb.ID)
	if got.DailyCounts[today(r)] != 3 {
		t.Fatalf("dailyCounts[today] = %d, want 3", got.DailyCounts[today(r)])
	}
	if len(got.DailyCounts) != 1 {
		t.Fatalf("only today should have an entry, got %v", got.DailyCounts)
	}
}

func TestTickAcrossDays(t *testing.T) {
	r := newTestRepo(t)
	tb, _ := r.Create("Test", "", 0)

	day1 := time.Date(2026, 9, 1, 23, 59, 0, 0, time.Local)
	day2 := time.Date(2026, 9, 2, 0, 1, 0, 0, time.Local)

	r.now = func() time.Time { return day1 }
	r.Tick(tb.ID)
	r.Tick(tb.ID)

	r.now = func() time.Time { return day2 }
	r.Tick(tb.ID)

	got, _ := r.Get(tb.ID)
	if got.DailyCounts["2026-09-01"] != 2 || got.DailyCounts["2026-09-02"] != 1 {
		t.Fatalf("unexpected daily history: %v", got.DailyCounts)
	}
	if got.TotalCount != 3 {
		t.Fatalf("totalCount = %d, want 3", got.TotalCount)
	}
}

func TestTickUnknownID(t *testing.T) {
	r := newTestRepo(t)
	if _, err := r.Tick("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// ============================================================
// Reset and manual edits
// ============================================================

func TestResetPreservesLifetimeStats(t *testing.T) {
	r := newTestRepo(t)
	tb, _ := r.Create("Test", "", 33)
	r.Tick(tb.ID)
	r.Tick(tb.ID)

	got, err := r.Reset(tb.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Count != 0 {
		t.Fatalf("count = %d, want 0", got.Count)
	}
	if got.TotalCount != 2 {
		t.Fatalf("reset must not touch totalCount, got %d", got.TotalCount)
	}
	if got.DailyCounts[today(r)] != 2 {
		t.Fatalf("reset must not touch dailyCounts, got %v", got.DailyCounts)
	}
}

func TestSetCountLowerKeepsTotal(t *testing.T) {
	r := newTestRepo(t)
	tb, _ := r.Create("Test", "", 0)
	seedCounts(t, r, tb.ID, 10, 200)

	got, err := r.SetCount(tb.ID, 5)
	if err != nil {
		t.Fatal(err)
	}
	if got.Count != 5 || got.TotalCount != 200 {
		t.Fatalf("lower edit: count=%d total=%d, want 5/200", got.Count, got.TotalCount)
	}
}

func TestSetCountHigherAddsDelta(t *testing.T) {
	r := newTestRepo(t)
	tb, _ := r.Create("Test", "", 0)
	seedCounts(t, r, tb.ID, 10, 200)

	got, err := r.SetCount(tb.ID, 15)
	if err != nil {
		t.Fatal(err)
	}
	if got.Count != 15 || got.TotalCount != 205 {
		t.Fatalf("higher edit: count=%d total=%d, want 15/205", got.Count, got.TotalCount)
	}
}

func TestSetCountDoesNotTouchDailyHistory(t *testing.T) {
	r := newTestRepo(t)
	tb, _ := r.Create("Test", "", 0)
	r.Tick(tb.ID)

	r.SetCount(tb.ID, 50)
	got, _ := r.Get(tb.ID)
	if got.DailyCounts[today(r)] != 1 {
		t.Fatalf("manual edits must not touch dailyCounts, got %v", got.DailyCounts)
	}
}

func TestSetCountRejectsNegative(t *testing.T) {
	r := newTestRepo(t)
	tb, _ := r.Create("Test", "", 0)
	r.Tick(tb.ID)

	if _, err := r.SetCount(tb.ID, -1); !errors.Is(err, ErrInvalidCount) {
		t.Fatalf("expected ErrInvalidCount, got %v", err)
	}
	got, _ := r.Get(tb.ID)
	if got.Count != 1 || got.TotalCount != 1 {
		t.Fatalf("rejected edit must leave state unchanged, got %+v", got)
	}
}

func TestSetTargetDoesNotClampCount(t *testing.T) {
	r := newTestRepo(t)
	tb, _ := r.Create("Test", "", 100)
	seedCounts(t, r, tb.ID, 50, 50)

	got, err := r.SetTarget(tb.ID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got.Count != 50 {
		t.Fatalf("target change must not clamp count, got %d", got.Count)
	}

	// The next tick applies the new bound.
	got, _ = r.Tick(tb.ID)
	if got.Count != 1 {
		t.Fatalf("tick past new target should roll over to 1, got %d", got.Count)
	}
}

func TestSetTargetRejectsNegative(t *testing.T) {
	r := newTestRepo(t)
	tb, _ := r.Create("Test", "", 33)
	if _, err := r.SetTarget(tb.ID, -5); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
}

// ============================================================
// Create / Edit / Delete / Favorite
// ============================================================

func TestCreate(t *testing.T) {
	r := newTestRepo(t)
	tb, err := r.Create("Salawat", "صَلَوَات", 100)
	if err != nil {
		t.Fatal(err)
	}
	if tb.ID == "" {
		t.Fatal("expected generated id")
	}
	if tb.IsSeed() {
		t.Fatal("created tasbih must not carry the seed prefix")
	}
	if tb.Count != 0 || tb.TotalCount != 0 || len(tb.DailyCounts) != 0 {
		t.Fatalf("new tasbih should start zeroed: %+v", tb)
	}
	if tb.IsFavorite {
		t.Fatal("new tasbih should not be favorite")
	}
	if tb.Color != defaultColor {
		t.Fatalf("expected default color, got %q", tb.Color)
	}

	tasbihs := r.Tasbihs()
	if tasbihs[len(tasbihs)-1].ID != tb.ID {
		t.Fatal("created tasbih should append to the collection")
	}
}

func TestCreateUniqueIDs(t *testing.T) {
	r := newTestRepo(t)
	a, _ := r.Create("One", "", 0)
	b, _ := r.Create("Two", "", 0)
	if a.ID == b.ID {
		t.Fatalf("ids must be unique, both %q", a.ID)
	}
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	r := newTestRepo(t)
	before := len(r.Tasbihs())
	if _, err := r.Create("   ", "", 33); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if len(r.Tasbihs()) != before {
		t.Fatal("rejected create must not change the collection")
	}
}

func TestEditPreservesIdentityAndCounters(t *testing.T) {
	r := newTestRepo(t)
	tb, _ := r.Create("Old", "", 33)
	r.Tick(tb.ID)
	r.Tick(tb.ID)

	got, err := r.Edit(tb.ID, "New", "جديد", 99)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != tb.ID {
		t.Fatal("edit must preserve the id")
	}
	if got.Title != "New" || got.ArabicTitle != "جديد" || got.Target != 99 {
		t.Fatalf("unexpected edit result: %+v", got)
	}
	if got.Count != 2 || got.TotalCount != 2 {
		t.Fatalf("edit must preserve counters: %+v", got)
	}
}

func TestEditRejectsEmptyTitle(t *testing.T) {
	r := newTestRepo(t)
	tb, _ := r.Create("Keep", "", 33)
	if _, err := r.Edit(tb.ID, "", "", 33); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	got, _ := r.Get(tb.ID)
	if got.Title != "Keep" {
		t.Fatalf("rejected edit must leave title unchanged, got %q", got.Title)
	}
}

func TestDelete(t *testing.T) {
	r := newTestRepo(t)
	tb, _ := r.Create("Gone", "", 0)
	before := len(r.Tasbihs())

	if err := r.Delete(tb.ID); err != nil {
		t.Fatal(err)
	}
	if len(r.Tasbihs()) != before-1 {
		t.Fatal("delete should shrink the collection")
	}
	if _, err := r.Get(tb.ID); !errors.Is(err, ErrNotFound) {
		t.Fatal("deleted tasbih should be gone")
	}
}

func TestDeleteRefusesSeeds(t *testing.T) {
	r := newTestRepo(t)
	if err := r.Delete("default-1"); !errors.Is(err, ErrBuiltIn) {
		t.Fatalf("expected ErrBuiltIn, got %v", err)
	}
	if len(r.Tasbihs()) != 5 {
		t.Fatal("seed set must survive a refused delete")
	}
}

func TestDeleteActiveClearsReference(t *testing.T) {
	r := newTestRepo(t)
	r.CompleteOnboarding()
	tb, _ := r.Create("Active", "", 0)
	other, _ := r.Create("Other", "", 0)
	r.Tick(other.ID)

	r.SetActive(tb.ID)
	r.SetView(store.ViewCounter)

	if err := r.Delete(tb.ID); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Active(); ok {
		t.Fatal("active reference should be cleared")
	}
	if r.State().View != store.ViewLibrary {
		t.Fatalf("navigation should fall back to library, got %s", r.State().View)
	}

	// Other tasbihs are untouched.
	got, _ := r.Get(other.ID)
	if got.TotalCount != 1 || got.DailyCounts[today(r)] != 1 {
		t.Fatalf("sibling tasbih was affected by delete: %+v", got)
	}
}

func TestToggleFavorite(t *testing.T) {
	r := newTestRepo(t)
	tb, _ := r.Create("Fav", "", 0)

	got, _ := r.ToggleFavorite(tb.ID)
	if !got.IsFavorite {
		t.Fatal("expected favorite after first toggle")
	}
	got, _ = r.ToggleFavorite(tb.ID)
	if got.IsFavorite {
		t.Fatal("expected not favorite after second toggle")
	}
}

// ============================================================
// Persistence and navigation
// ============================================================

func TestMutationsSurviveReload(t *testing.T) {
	s := newTestStore(t)
	r := NewRepository(s)
	r.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local) }

	tb, _ := r.Create("Persist", "عَرَبِيّ", 33)
	r.Tick(tb.ID)
	r.Tick(tb.ID)
	r.ToggleFavorite(tb.ID)

	r2 := NewRepository(s)
	got, err := r2.Get(tb.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Count != 2 || got.TotalCount != 2 || !got.IsFavorite {
		t.Fatalf("reloaded tasbih lost state: %+v", got)
	}
	if got.ArabicTitle != "عَرَبِيّ" {
		t.Fatalf("reloaded tasbih lost arabic title: %q", got.ArabicTitle)
	}
	if got.DailyCounts["2026-09-01"] != 2 {
		t.Fatalf("reloaded tasbih lost daily history: %v", got.DailyCounts)
	}
}

func TestNavigationStateNotPersistedDuringLanding(t *testing.T) {
	s := newTestStore(t)
	r := NewRepository(s)
	if r.State().View != store.ViewLanding {
		t.Fatalf("fresh repo should be on landing, got %s", r.State().View)
	}

	// Changes before onboarding leave no record.
	r.ToggleSound()
	if st := s.LoadState(); !st.SoundEnabled || st.View != store.ViewLibrary {
		t.Fatalf("landing-phase state should not be persisted, got %+v", st)
	}
}

func TestCompleteOnboarding(t *testing.T) {
	s := newTestStore(t)
	r := NewRepository(s)
	r.CompleteOnboarding()

	if !r.Onboarded() || r.State().View != store.ViewLibrary {
		t.Fatalf("unexpected post-onboarding state: %+v", r.State())
	}

	r2 := NewRepository(s)
	if r2.State().View == store.ViewLanding {
		t.Fatal("landing must not show again after onboarding")
	}
}

func TestSetActiveUnknownID(t *testing.T) {
	r := newTestRepo(t)
	if err := r.SetActive("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestToggleSoundPersists(t *testing.T) {
	s := newTestStore(t)
	r := NewRepository(s)
	r.CompleteOnboarding()

	if on := r.ToggleSound(); on {
		t.Fatal("sound should be off after toggling the default on")
	}

	r2 := NewRepository(s)
	if r2.State().SoundEnabled {
		t.Fatal("sound preference should persist")
	}
}

func TestTasbihsReturnsSnapshotCopy(t *testing.T) {
	r := newTestRepo(t)
	snap := r.Tasbihs()
	snap[0].Title = "mutated"

	got, _ := r.Get(snap[0].ID)
	if got.Title == "mutated" {
		t.Fatal("snapshot mutation must not leak into the repository")
	}
}
