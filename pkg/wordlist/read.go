// Package wordlist parses plain word-frequency lists, the raw material the
// completion-list builder turns into PREFIX|COMPLETION dictionaries.
package wordlist

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Entry is one word with its corpus frequency.
type Entry struct {
	Word string
	Freq float64
}

// Parse reads "word #freq" lines (freq optional, default 1). Malformed
// frequency values drop the line; duplicate words keep the last value.
// The result is sorted by frequency descending.
func Parse(text string) []Entry {
	freqs := make(map[string]float64)
	order := make(map[string]int)
	seq := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		word := line
		freq := 1.0
		if head, tail, found := cutLast(line, " #"); found {
			v, err := strconv.ParseFloat(tail, 64)
			if err != nil {
				continue
			}
			word, freq = head, v
		}
		if _, seen := freqs[word]; !seen {
			order[word] = seq
			seq++
		}
		freqs[word] = freq
	}

	entries := make([]Entry, 0, len(freqs))
	for w, f := range freqs {
		entries = append(entries, Entry{Word: w, Freq: f})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Freq != entries[j].Freq {
			return entries[i].Freq > entries[j].Freq
		}
		return order[entries[i].Word] < order[entries[j].Word]
	})
	return entries
}

// ReadFile parses a wordlist file.
func ReadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wordlist %s: %w", path, err)
	}
	entries := Parse(string(data))
	if len(entries) == 0 {
		return nil, fmt.Errorf("no words found in wordlist %s", path)
	}
	return entries, nil
}

// cutLast splits s at the last occurrence of sep.
func cutLast(s, sep string) (string, string, bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}
