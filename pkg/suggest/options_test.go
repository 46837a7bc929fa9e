package suggest

import (
	"fmt"
	"strings"
	"testing"
)

func rankTrie() *Trie {
	return FromLines(strings.Join([]string{
		"app|le #500",
		"appr|oach #200",
		"apol|ogy #800",
		"ace|tone #200",
	}, "\n"), DefaultOptions())
}

func TestListOptionsRanking(t *testing.T) {
	opts := rankTrie().Cursor().ListOptions(0)
	if len(opts) != 4 {
		t.Fatalf("got %d options, want 4", len(opts))
	}

	// freq descending; equal freqs fall back to insertion order
	wantPrefixes := []string{"apol", "app", "appr", "ace"}
	for i, want := range wantPrefixes {
		if opts[i].Prefix != want {
			t.Errorf("opts[%d].Prefix = %q, want %q", i, opts[i].Prefix, want)
		}
	}
}

func TestListOptionsSharedPrefix(t *testing.T) {
	// words inserted at the same prefix stay individually rankable through
	// their completion chains even though the prefix node only keeps the
	// last completion
	tr := FromLines("a|pple #1\na|rt #5\na|ce #5", DefaultOptions())
	opts := tr.Cursor().WalkTo("a").ListOptions(0)
	if len(opts) != 3 {
		t.Fatalf("got %d options %v, want 3", len(opts), opts)
	}
	words := make([]string, len(opts))
	for i, o := range opts {
		words[i] = o.Prefix + o.Completion
	}
	want := []string{"art", "ace", "apple"}
	for i := range want {
		if words[i] != want[i] {
			t.Fatalf("ranked words = %v, want %v", words, want)
		}
	}
}

func TestCompletionOptionsTruncation(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = fmt.Sprintf("wo%s|d #%d", strings.Repeat("r", i+1), i+1)
	}
	tr := FromLines(strings.Join(lines, "\n"), DefaultOptions())
	opts := tr.Cursor().WalkTo("wo").CompletionOptions(3)
	if len(opts) != 3 {
		t.Fatalf("got %d options, want exactly 3", len(opts))
	}
	if opts[0].Freq < opts[1].Freq || opts[1].Freq < opts[2].Freq {
		t.Errorf("options not rank ordered: %+v", opts)
	}
}

func TestListOptionsScopedToSubtree(t *testing.T) {
	c := rankTrie().Cursor().WalkTo("ap")
	opts := c.ListOptions(0)
	if len(opts) != 3 {
		t.Fatalf("got %d options under %q, want 3", len(opts), "ap")
	}
	for _, o := range opts {
		if !strings.HasPrefix(o.Prefix, "ap") {
			t.Errorf("option %q leaked from outside the subtree", o.Prefix)
		}
	}
}

func TestListOptionsTruncation(t *testing.T) {
	c := rankTrie().Cursor()
	if got := len(c.ListOptions(2)); got != 2 {
		t.Errorf("max=2 returned %d options", got)
	}
	if got := len(c.ListOptions(-1)); got != 4 {
		t.Errorf("max<=0 must be unbounded, returned %d options", got)
	}
}

func TestListOptionsIncludesOwnCompletion(t *testing.T) {
	c := rankTrie().Cursor().WalkTo("app")
	opts := c.ListOptions(0)
	found := false
	for _, o := range opts {
		if o.Prefix == "app" && o.Completion == "le" {
			found = true
		}
	}
	if !found {
		t.Error("the current node's own completion must be listed")
	}
}

func TestCompletionOptionsSplit(t *testing.T) {
	c := rankTrie().Cursor().WalkTo("ap")
	opts := c.CompletionOptions(0)

	for _, o := range opts {
		if o.FullReplacement {
			t.Errorf("unexpected full replacement for %q", o.TypedPrefix)
			continue
		}
		if o.TypedPrefix != "ap" {
			t.Errorf("TypedPrefix = %q, want %q", o.TypedPrefix, "ap")
		}
		full := o.TypedPrefix + o.RemainingPrefix
		if !strings.HasPrefix(full, "ap") || len(full) < 3 {
			t.Errorf("prefix split %q+%q does not rebuild an entry prefix", o.TypedPrefix, o.RemainingPrefix)
		}
	}
}

func TestCompletionOptionsFullReplacement(t *testing.T) {
	tr := FromLines("btw||by the way #50", DefaultOptions())
	c := tr.Cursor().WalkTo("bt")
	opts := c.CompletionOptions(0)
	if len(opts) != 1 {
		t.Fatalf("got %d options, want 1", len(opts))
	}
	o := opts[0]
	if !o.FullReplacement {
		t.Fatal("expected a full-replacement option")
	}
	if o.TypedPrefix != "btw" {
		t.Errorf("TypedPrefix = %q, want the whole entry prefix", o.TypedPrefix)
	}
	if o.Completion != "by the way" {
		t.Errorf("display completion = %q, want backspaces stripped", o.Completion)
	}
	if !strings.HasPrefix(o.AcceptText(), "\b") {
		t.Error("accept text must keep the replacement backspaces")
	}
}

func TestSelect(t *testing.T) {
	tr := rankTrie()

	t.Run("mid-word", func(t *testing.T) {
		c := tr.Cursor().WalkTo("the ap")
		opts := c.CompletionOptions(0)
		var apple CompletionOption
		for _, o := range opts {
			if o.TypedPrefix+o.RemainingPrefix == "app" {
				apple = o
			}
		}
		got := c.Select(apple)
		if got.Text() != "the apple" {
			t.Errorf("text = %q, want %q", got.Text(), "the apple")
		}
		if got.Suggestion() != "" {
			t.Errorf("suggestion = %q, want empty after select", got.Suggestion())
		}
	})

	t.Run("full replacement", func(t *testing.T) {
		tr := FromLines("btw||by the way", DefaultOptions())
		c := tr.Cursor().WalkTo("so bt")
		opts := c.CompletionOptions(0)
		got := c.Select(opts[0])
		if got.Text() != "so by the way" {
			t.Errorf("text = %q, want %q", got.Text(), "so by the way")
		}
	})

	t.Run("empty field", func(t *testing.T) {
		c := tr.Cursor()
		opts := c.CompletionOptions(1)
		got := c.Select(opts[0])
		if got.Text() != "apology" {
			t.Errorf("text = %q, want %q", got.Text(), "apology")
		}
	})
}

func TestCommonRunEnd(t *testing.T) {
	testCases := []struct {
		a, b string
		fold bool
		want int
	}{
		{"apple", "ap", false, 2},
		{"apple", "apple", false, 5},
		{"apple", "", false, 0},
		{"apple", "ax", false, 1},
		{"Apple", "ap", true, 2},
		{"Apple", "ap", false, 0},
	}
	for _, tc := range testCases {
		if got := commonRunEnd(tc.a, tc.b, tc.fold); got != tc.want {
			t.Errorf("commonRunEnd(%q, %q, %v) = %d, want %d", tc.a, tc.b, tc.fold, got, tc.want)
		}
	}
}
