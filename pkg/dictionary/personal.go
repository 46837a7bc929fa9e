package dictionary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

// PersonalFrequency is the sentinel weight for saved words. It is far above
// any bulk dictionary frequency so personal entries always rank first.
const PersonalFrequency = 1000000

// PersonalStore holds a user's saved completions, keyed by prefix. Saving a
// prefix removes every earlier entry whose prefix equals or extends it:
// last-saved-wins within a prefix family.
type PersonalStore struct {
	trie *patricia.Trie
}

// NewPersonalStore returns an empty store.
func NewPersonalStore() *PersonalStore {
	return &PersonalStore{trie: patricia.NewTrie()}
}

// SaveWord records completion under prefix, displacing the whole prefix
// family first. Set overwrites unconditionally, so re-saving a prefix always
// takes the newest completion.
func (p *PersonalStore) SaveWord(prefix, completion string) {
	if prefix == "" || completion == "" {
		return
	}
	p.removeFamily(prefix)
	p.trie.Set(patricia.Prefix(prefix), completion)
}

// Remove deletes prefix and every saved entry extending it. It reports
// whether anything was removed.
func (p *PersonalStore) Remove(prefix string) bool {
	return p.removeFamily(prefix)
}

// removeFamily deletes every entry whose prefix equals or extends prefix.
// Entries are collected first and deleted one by one: patricia's
// DeleteSubtree can leave the root item in place when the family spans the
// whole trie, so it cannot be trusted for the displacement rule.
func (p *PersonalStore) removeFamily(prefix string) bool {
	var hits []patricia.Prefix
	p.trie.VisitSubtree(patricia.Prefix(prefix), func(key patricia.Prefix, _ patricia.Item) error {
		hits = append(hits, append(patricia.Prefix(nil), key...))
		return nil
	})
	removed := false
	for _, key := range hits {
		if p.trie.Delete(key) {
			removed = true
		}
	}
	return removed
}

// Get returns the completion saved for exactly prefix.
func (p *PersonalStore) Get(prefix string) (string, bool) {
	item := p.trie.Get(patricia.Prefix(prefix))
	if item == nil {
		return "", false
	}
	return item.(string), true
}

// Len returns the number of saved entries.
func (p *PersonalStore) Len() int {
	n := 0
	p.trie.Visit(func(patricia.Prefix, patricia.Item) error {
		n++
		return nil
	})
	return n
}

// Load inserts entries from dictionary-syntax text, ignoring frequencies;
// saved words always carry the sentinel. Malformed lines are skipped.
func (p *PersonalStore) Load(text string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if cut, _, found := strings.Cut(line, " #"); found {
			line = cut
		}
		pre, post, ok := strings.Cut(line, "|")
		if !ok || pre == "" || post == "" {
			continue
		}
		p.SaveWord(pre, post)
	}
}

// Lines exports the store as dictionary-syntax text at the sentinel
// frequency, sorted by prefix for stable merges.
func (p *PersonalStore) Lines() string {
	var lines []string
	p.trie.Visit(func(prefix patricia.Prefix, item patricia.Item) error {
		lines = append(lines, fmt.Sprintf("%s|%s #%d", prefix, item.(string), PersonalFrequency))
		return nil
	})
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}
