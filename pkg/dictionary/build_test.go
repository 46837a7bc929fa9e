package dictionary

import (
	"strings"
	"testing"

	"github.com/modularizer/automobile-complete/pkg/wordlist"
)

func TestBuildCompletions(t *testing.T) {
	entries := wordlist.Parse(strings.Join([]string{
		"automobile #500",
		"autumn #100",
	}, "\n"))

	lines := BuildCompletions(entries, DefaultBuildOptions())
	want := []string{
		// automobile dominates everything under "au"
		"au|tomobile #500",
		// autumn only dominates once the paths split
		"autu|mn #100",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines %v, want %d", len(lines), lines, len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("lines[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestBuildCompletionsMinSuffix(t *testing.T) {
	// dog dominates "do" but its suffix there is a single char, and at "dog"
	// nothing is left to complete
	entries := wordlist.Parse("dog #150\ndot #100")
	lines := BuildCompletions(entries, DefaultBuildOptions())
	if len(lines) != 0 {
		t.Errorf("got %v, want no lines with suffixes below the minimum", lines)
	}
}

func TestBuildCompletionsThresholds(t *testing.T) {
	// hello holds 60% of the mass under "he", helper only wins at "help"
	entries := wordlist.Parse("hello #120\nhelper #80")
	lines := BuildCompletions(entries, DefaultBuildOptions())
	want := []string{"he|llo #120", "help|er #80"}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("lines = %v, want %v", lines, want)
	}

	// raising the bar suppresses the shared-prefix placement
	o := DefaultBuildOptions()
	o.WordThreshold = 0.9
	lines = BuildCompletions(entries, o)
	for _, l := range lines {
		if strings.HasPrefix(l, "he|") {
			t.Errorf("hello must not place at %q under a 0.9 threshold", l)
		}
	}
}

func TestBuildCompletionsNoFreqs(t *testing.T) {
	entries := wordlist.Parse("automobile #500")
	o := DefaultBuildOptions()
	o.PreserveFreqs = false
	lines := BuildCompletions(entries, o)
	if len(lines) != 1 || strings.Contains(lines[0], "#") {
		t.Errorf("lines = %v, want one line without a frequency tag", lines)
	}
}

func TestBuildCompletionsUnsortedEntries(t *testing.T) {
	// entries built by hand, deliberately not in frequency order
	entries := []wordlist.Entry{
		{Word: "zebra", Freq: 100},
		{Word: "automobile", Freq: 900},
	}
	lines := BuildCompletions(entries, DefaultBuildOptions())
	want := []string{"au|tomobile #900", "ze|bra #100"}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("lines = %v, want %v (frequency descending)", lines, want)
	}
}

func TestBuildCompletionsEmpty(t *testing.T) {
	if lines := BuildCompletions(nil, DefaultBuildOptions()); lines != nil {
		t.Errorf("got %v, want nil for an empty wordlist", lines)
	}
}

func TestBuildCompletionTextFeedsTrie(t *testing.T) {
	entries := wordlist.Parse("automobile #500\nautumn #100")
	text := BuildCompletionText(entries, DefaultBuildOptions())
	if !strings.Contains(text, "au|tomobile #500") {
		t.Fatalf("text = %q", text)
	}
}
