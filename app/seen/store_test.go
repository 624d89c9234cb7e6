package seen

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIdentityIsDeterministic(t *testing.T) {
	url := "https://example.com/press/launch-42"

	first := Identity(url)
	second := Identity(url)

	if first != second {
		t.Errorf("Expected identical identities, got '%s' and '%s'", first, second)
	}
	if len(first) != 40 {
		t.Errorf("Expected 40-character hex identity, got %d characters", len(first))
	}

	// Known sha1 vector, so persisted caches stay valid across versions
	if got := Identity("https://x/a"); got != "8641f359d3f846628e2f58b7d1e6b135bf780a9f" {
		t.Errorf("Identity changed for known input: %s", got)
	}
}

func TestIdentityDistinguishesVariants(t *testing.T) {
	base := Identity("https://example.com/article")
	slash := Identity("https://example.com/article/")
	query := Identity("https://example.com/article?ref=home")

	if base == slash || base == query {
		t.Error("Expected URL variants to produce distinct identities")
	}
}

func TestLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "sent_urls.json"))

	set, err := store.Load()
	if err != nil {
		t.Fatalf("Expected no error for missing file, got: %v", err)
	}
	if len(set) != 0 {
		t.Errorf("Expected empty set, got %d entries", len(set))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sent_urls.json")
	store := NewStore(path)

	set := Set{}
	set.Add(Identity("https://example.com/b"))
	set.Add(Identity("https://example.com/a"))

	if err := store.Save(set); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(loaded))
	}
	for id := range set {
		if !loaded.Contains(id) {
			t.Errorf("Expected loaded set to contain %s", id)
		}
	}
}

func TestSaveWritesSortedArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sent_urls.json")
	store := NewStore(path)

	set := Set{"ccc": {}, "aaa": {}, "bbb": {}}
	if err := store.Save(set); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `["aaa","bbb","ccc"]` {
		t.Errorf("Expected sorted JSON array, got: %s", data)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sent_urls.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(path)
	if _, err := store.Load(); err == nil {
		t.Error("Expected error for corrupt file, got nil")
	}
}

func TestUnion(t *testing.T) {
	a := Set{"one": {}, "two": {}}
	b := Set{"two": {}, "three": {}}

	merged := a.Union(b)
	if len(merged) != 3 {
		t.Errorf("Expected 3 entries, got %d", len(merged))
	}
	// Union must not mutate its inputs
	if len(a) != 2 || len(b) != 2 {
		t.Error("Expected Union inputs to be unchanged")
	}
}
