package dictionary

import (
	"strings"
	"testing"
)

func TestPersonalStoreSaveAndGet(t *testing.T) {
	p := NewPersonalStore()
	p.SaveWord("zeb", "ra")

	got, ok := p.Get("zeb")
	if !ok || got != "ra" {
		t.Errorf("Get(zeb) = %q, %v", got, ok)
	}
	if _, ok := p.Get("ze"); ok {
		t.Error("Get must match the exact prefix only")
	}

	// re-saving the same prefix overwrites
	p.SaveWord("zeb", "u")
	if got, _ := p.Get("zeb"); got != "u" {
		t.Errorf("Get after resave = %q, want %q", got, "u")
	}
	if p.Len() != 1 {
		t.Errorf("Len = %d, want 1", p.Len())
	}
}

func TestPersonalStoreIgnoresEmpty(t *testing.T) {
	p := NewPersonalStore()
	p.SaveWord("", "x")
	p.SaveWord("x", "")
	if p.Len() != 0 {
		t.Errorf("Len = %d, empty prefix or completion must not save", p.Len())
	}
}

func TestPersonalStorePrefixFamily(t *testing.T) {
	p := NewPersonalStore()
	p.SaveWord("auto", "bahn")
	p.SaveWord("autom", "ation")

	// saving a shorter prefix displaces everything that extends it
	p.SaveWord("aut", "umn")
	if p.Len() != 1 {
		t.Fatalf("Len = %d, want 1 after family displacement", p.Len())
	}
	if _, ok := p.Get("auto"); ok {
		t.Error("displaced entry still present")
	}
	if got, _ := p.Get("aut"); got != "umn" {
		t.Errorf("Get(aut) = %q, want %q", got, "umn")
	}

	// the other direction: a longer prefix only displaces its own extensions
	p.SaveWord("auto", "bahn")
	if p.Len() != 2 {
		t.Errorf("Len = %d, longer prefix must not displace the shorter one", p.Len())
	}
}

func TestPersonalStoreDisplacementKeepsSiblings(t *testing.T) {
	p := NewPersonalStore()
	p.SaveWord("auto", "bahn")
	p.SaveWord("autom", "ation")
	p.SaveWord("zeb", "ra")

	p.SaveWord("aut", "umn")
	if got, _ := p.Get("aut"); got != "umn" {
		t.Errorf("Get(aut) = %q, want %q", got, "umn")
	}
	for _, stale := range []string{"auto", "autom"} {
		if got, ok := p.Get(stale); ok {
			t.Errorf("Get(%s) = %q, displaced entry still present", stale, got)
		}
	}
	if got, _ := p.Get("zeb"); got != "ra" {
		t.Errorf("Get(zeb) = %q, sibling must survive displacement", got)
	}
	if p.Len() != 2 {
		t.Errorf("Len = %d, want 2", p.Len())
	}
}

func TestPersonalStoreRemove(t *testing.T) {
	p := NewPersonalStore()
	p.SaveWord("zeb", "ra")
	if !p.Remove("zeb") {
		t.Error("Remove(zeb) = false, want true")
	}
	if p.Remove("zeb") {
		t.Error("second Remove must report nothing removed")
	}
}

func TestPersonalStoreLoadAndLines(t *testing.T) {
	p := NewPersonalStore()
	p.Load(strings.Join([]string{
		"zeb|ra #42",
		"",
		"malformed",
		"|nopre",
		"nopost|",
		"aut|umn",
	}, "\n"))

	if p.Len() != 2 {
		t.Fatalf("Len = %d, want 2", p.Len())
	}

	lines := p.Lines()
	want := "aut|umn #1000000\nzeb|ra #1000000"
	if lines != want {
		t.Errorf("Lines() = %q, want %q", lines, want)
	}

	// round trip
	p2 := NewPersonalStore()
	p2.Load(lines)
	if p2.Len() != 2 {
		t.Errorf("round-trip Len = %d, want 2", p2.Len())
	}
}
