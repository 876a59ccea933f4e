package session

import (
	"strings"
	"testing"

	appErrors "careerlens/internal/errors"
	"careerlens/internal/types"
)

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get("nope")
	if err == nil {
		t.Fatal("Get() expected error for missing session")
	}
	if appErrors.CodeOf(err) != appErrors.ErrCodeSessionNotFound {
		t.Errorf("error code = %s, want %s", appErrors.CodeOf(err), appErrors.ErrCodeSessionNotFound)
	}
}

func TestMemoryStoreSetAndGet(t *testing.T) {
	store := NewMemoryStore()

	store.Set(&Session{ID: "s1", ResumeText: "ten years of Go"})

	got, err := store.Get("s1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ResumeText != "ten years of Go" {
		t.Errorf("ResumeText = %q", got.ResumeText)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestMemoryStoreUpdateMergesShallowly(t *testing.T) {
	store := NewMemoryStore()
	store.Set(&Session{
		ID:         "s1",
		ResumeText: "original resume",
		Jobs:       []types.JobListing{{ID: "j1", Title: "Backend Engineer"}},
	})

	profile := types.ExtractedProfile{Name: "Sam Ortiz", ExperienceLevel: "senior"}
	updated := store.Update("s1", Patch{Profile: &profile})

	// Patched field applied
	if updated.Profile == nil || updated.Profile.Name != "Sam Ortiz" {
		t.Fatalf("Profile not applied: %+v", updated.Profile)
	}
	// Untouched fields preserved
	if updated.ResumeText != "original resume" {
		t.Errorf("ResumeText = %q, want preserved original", updated.ResumeText)
	}
	if len(updated.Jobs) != 1 || updated.Jobs[0].ID != "j1" {
		t.Errorf("Jobs = %+v, want preserved", updated.Jobs)
	}
}

func TestMemoryStoreUpdateCreatesMissingSession(t *testing.T) {
	store := NewMemoryStore()

	text := "fresh resume text"
	got := store.Update("brand-new", Patch{ResumeText: &text})

	if got.ID != "brand-new" {
		t.Errorf("ID = %q", got.ID)
	}
	if got.ResumeText != text {
		t.Errorf("ResumeText = %q", got.ResumeText)
	}
	if store.Count() != 1 {
		t.Errorf("Count() = %d, want 1", store.Count())
	}
}

func TestMemoryStoreUpdateLastWriteWins(t *testing.T) {
	store := NewMemoryStore()
	first := "first"
	second := "second"

	store.Update("s1", Patch{ResumeText: &first})
	store.Update("s1", Patch{ResumeText: &second})

	got, err := store.Get("s1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ResumeText != "second" {
		t.Errorf("ResumeText = %q, want \"second\"", got.ResumeText)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	store.Set(&Session{ID: "s1"})

	if err := store.Delete("s1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get("s1"); err == nil {
		t.Error("Get() after Delete() should fail")
	}
	if err := store.Delete("s1"); appErrors.CodeOf(err) != appErrors.ErrCodeSessionNotFound {
		t.Errorf("second Delete() code = %s, want %s", appErrors.CodeOf(err), appErrors.ErrCodeSessionNotFound)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	store.Set(&Session{ID: "s1", Jobs: []types.JobListing{{ID: "j1"}}})

	got, _ := store.Get("s1")
	got.Jobs[0].ID = "mutated"
	got.ResumeText = "mutated"

	fresh, _ := store.Get("s1")
	if fresh.Jobs[0].ID != "j1" || fresh.ResumeText != "" {
		t.Error("mutating a returned session leaked into the store")
	}
}

func TestNewSessionID(t *testing.T) {
	id1 := NewSessionID("resume text")
	id2 := NewSessionID("resume text")

	if len(id1) != 16 {
		t.Errorf("len(id) = %d, want 16", len(id1))
	}
	if strings.ToLower(id1) != id1 {
		t.Errorf("id %q is not lowercase hex", id1)
	}
	// Same content at different instants yields different ids
	if id1 == id2 {
		t.Error("expected distinct ids for repeated uploads")
	}
}
