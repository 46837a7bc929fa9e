package dictionary

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/modularizer/automobile-complete/pkg/wordlist"
)

// BuildOptions tunes the wordlist -> completion-list conversion. Thresholds
// are shares of a prefix subtree's total frequency mass: a word is only worth
// suggesting at a prefix where it dominates what the user might be typing.
type BuildOptions struct {
	// WordThreshold is the minimum share of the prefix subtree's mass the
	// word's own frequency must hold.
	WordThreshold float64
	// SubtreeThreshold is the minimum share the word's own subtree (the word
	// plus its extensions) must hold.
	SubtreeThreshold float64
	// MinPrefixLen is the shortest prefix allowed to carry a completion.
	MinPrefixLen int
	// MinSuffixLen is the shortest completion worth emitting.
	MinSuffixLen int
	// PreserveFreqs appends " #FREQ" to emitted lines.
	PreserveFreqs bool
}

// DefaultBuildOptions returns the builder defaults.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		WordThreshold:    0.5,
		SubtreeThreshold: 0.5,
		MinPrefixLen:     2,
		MinSuffixLen:     2,
		PreserveFreqs:    true,
	}
}

type buildNode struct {
	children map[rune]*buildNode
	wordID   int
	wordFreq float64

	// Filled by the stats pass.
	sumFreq     float64
	bestID      int     // word with the heaviest own subtree below here
	bestFreq    float64 // that word's own frequency
	bestSubFreq float64 // that word's subtree mass
}

func newBuildNode() *buildNode {
	return &buildNode{children: make(map[rune]*buildNode), wordID: -1, bestID: -1}
}

// BuildCompletions converts a wordlist into dictionary lines. For every
// prefix of every word it asks whether one word so dominates the prefix that
// completing it outright is safe, and emits "prefix|suffix" for the
// shallowest qualifying prefix of each word. Output is sorted by frequency
// descending.
func BuildCompletions(entries []wordlist.Entry, o BuildOptions) []string {
	if len(entries) == 0 {
		return nil
	}
	if o.MinPrefixLen < 1 {
		o.MinPrefixLen = 1
	}
	if o.MinSuffixLen < 1 {
		o.MinSuffixLen = 1
	}

	root := newBuildNode()
	for id, e := range entries {
		n := root
		for _, r := range e.Word {
			child := n.children[r]
			if child == nil {
				child = newBuildNode()
				n.children[r] = child
			}
			n = child
		}
		n.wordID = id
		n.wordFreq = e.Freq
	}

	stats(root)

	type placement struct {
		prefix string
		suffix string
	}
	placed := make(map[int]placement)

	var descend func(n *buildNode, prefix []rune)
	descend = func(n *buildNode, prefix []rune) {
		if len(prefix) >= o.MinPrefixLen && n.bestID >= 0 && n.sumFreq > 0 {
			word := []rune(entries[n.bestID].Word)
			suffix := word[len(prefix):]
			if _, done := placed[n.bestID]; !done &&
				len(suffix) >= o.MinSuffixLen &&
				n.bestFreq/n.sumFreq >= o.WordThreshold &&
				n.bestSubFreq/n.sumFreq >= o.SubtreeThreshold {
				placed[n.bestID] = placement{prefix: string(prefix), suffix: string(suffix)}
			}
		}
		for r, child := range n.children {
			descend(child, append(prefix, r))
		}
	}
	descend(root, nil)

	ids := make([]int, 0, len(placed))
	for id := range placed {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if entries[ids[i]].Freq != entries[ids[j]].Freq {
			return entries[ids[i]].Freq > entries[ids[j]].Freq
		}
		return ids[i] < ids[j]
	})

	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		p := placed[id]
		if o.PreserveFreqs {
			lines = append(lines, fmt.Sprintf("%s|%s #%d", p.prefix, p.suffix, int(math.Round(entries[id].Freq))))
		} else {
			lines = append(lines, fmt.Sprintf("%s|%s", p.prefix, p.suffix))
		}
	}
	log.Debugf("Built %d completions from %d words", len(lines), len(entries))
	return lines
}

// BuildCompletionText is BuildCompletions joined into dictionary text.
func BuildCompletionText(entries []wordlist.Entry, o BuildOptions) string {
	return strings.Join(BuildCompletions(entries, o), "\n")
}

// stats fills sumFreq and the dominant-word fields bottom-up. The dominant
// word of a node is the one whose own subtree carries the most mass; ties go
// to the heavier word.
func stats(n *buildNode) {
	n.sumFreq = n.wordFreq
	if n.wordID >= 0 {
		n.bestID = n.wordID
		n.bestFreq = n.wordFreq
	}
	for _, child := range n.children {
		stats(child)
		n.sumFreq += child.sumFreq
	}
	if n.wordID >= 0 {
		// A word node's own subtree is everything below it, itself included.
		n.bestSubFreq = n.sumFreq
	}
	for _, child := range n.children {
		if child.bestID < 0 {
			continue
		}
		if child.bestSubFreq > n.bestSubFreq ||
			(child.bestSubFreq == n.bestSubFreq && child.bestFreq > n.bestFreq) {
			n.bestID = child.bestID
			n.bestFreq = child.bestFreq
			n.bestSubFreq = child.bestSubFreq
		}
	}
}
