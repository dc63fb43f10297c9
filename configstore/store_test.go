package configstore

import (
	"os"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStoreAt(filepath.Join(t.TempDir(), "nested", "config.yaml"))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	store := tempStore(t)

	prefs := store.Load()
	want := DefaultPreferences()
	if prefs != want {
		t.Errorf("Load() = %+v, want defaults %+v", prefs, want)
	}
	if store.Exists() {
		t.Errorf("Exists() = true before any Save()")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := tempStore(t)

	saved := Preferences{
		AutoDescribe: true,
		ScreenReader: "Orca",
		Model:        "gpt-4o-mini",
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if !store.Exists() {
		t.Errorf("Exists() = false after Save()")
	}

	got := store.Load()
	if got != saved {
		t.Errorf("Load() = %+v, want %+v", got, saved)
	}
}

func TestLoadCorruptFileReturnsDefaults(t *testing.T) {
	store := tempStore(t)

	if err := os.MkdirAll(filepath.Dir(store.Path()), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(store.Path(), []byte("{not yaml: [[["), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	prefs := store.Load()
	if prefs != DefaultPreferences() {
		t.Errorf("Load() of corrupt file = %+v, want defaults", prefs)
	}
}

func TestLoadFillsEmptyModel(t *testing.T) {
	store := tempStore(t)

	if err := store.Save(Preferences{AutoDescribe: true}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	prefs := store.Load()
	if prefs.Model != DefaultPreferences().Model {
		t.Errorf("Load() Model = %q, want default %q", prefs.Model, DefaultPreferences().Model)
	}
	if !prefs.AutoDescribe {
		t.Errorf("Load() AutoDescribe = false, want true")
	}
}
