// Package suggest is the completion core: the trie store, the character-stream
// walk interpreter, and option ranking for prefix-based text completion.
package suggest

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Options controls trie matching behavior. A single Options value is owned by
// the Trie and shared by every node; it is never copied per node.
type Options struct {
	// CaseInsensitive folds child keys so "Hello" and "hello" walk the same path.
	CaseInsensitive bool
	// CacheFullText keeps the accumulated input on cursors returned by walks.
	// The session controller requires this to diff text changes.
	CacheFullText bool
	// HandleControlChars enables tab/backspace/NUL interpretation during walks.
	// When disabled every byte is treated as a literal character.
	HandleControlChars bool
}

// DefaultOptions returns the documented defaults: everything enabled.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive:    true,
		CacheFullText:      true,
		HandleControlChars: true,
	}
}

// Node is a single trie position. Nodes are created lazily and never deleted;
// parent and trie references are non-owning and used only for navigation.
type Node struct {
	prefix     string
	completion string
	freq       int
	index      int
	children   map[rune]*Node
	parent     *Node
	trie       *Trie
}

// Prefix returns the characters consumed from the root to reach this node.
func (n *Node) Prefix() string { return n.prefix }

// Completion returns the suggested suffix stored at this node. It may contain
// backspace characters for full-replacement entries.
func (n *Node) Completion() string { return n.completion }

// Freq returns the ranking weight of this node's completion.
func (n *Node) Freq() int { return n.freq }

// Index returns the insertion sequence number, or 0 for non-word nodes.
// Re-inserting at the same prefix always leaves the most recent number.
func (n *Node) Index() int { return n.index }

// IsEmpty reports whether the node has neither a completion nor children.
// Empty nodes are dead ends; completion-less nodes with children are mid
// points of shared prefixes and must not be treated as dead ends.
func (n *Node) IsEmpty() bool {
	return n.completion == "" && len(n.children) == 0
}

// fold maps a rune to its child-map key.
func (n *Node) fold(r rune) rune {
	if n.trie.opts.CaseInsensitive {
		return unicode.ToLower(r)
	}
	return r
}

// newChild allocates a child node for r without linking it into the tree.
// Walks use these as transient positions for unmatched input.
func (n *Node) newChild(r rune) *Node {
	return &Node{
		prefix: n.prefix + string(r),
		freq:   1,
		parent: n,
		trie:   n.trie,
	}
}

// syncChild is the position reached by typing the next character of this
// node's own pending completion. It carries the remainder of the completion
// and inherits freq/index so typing through a suggestion does not demote it.
func (n *Node) syncChild(r rune) *Node {
	_, size := firstRune(n.completion)
	return &Node{
		prefix:     n.prefix + string(r),
		completion: n.completion[size:],
		freq:       n.freq,
		index:      n.index,
		parent:     n,
		trie:       n.trie,
	}
}

// step advances one character from n: completion sync first, then a linked
// child, then a transient node for unmatched input.
func (n *Node) step(r rune) *Node {
	k := n.fold(r)
	if n.completion != "" {
		if first, _ := firstRune(n.completion); n.fold(first) == k {
			return n.syncChild(r)
		}
	}
	if child := n.children[k]; child != nil {
		return child
	}
	return n.newChild(r)
}

// Trie is the completion tree header. It owns the root node, the shared
// Options, and the word inventory (insertion counter + word nodes).
type Trie struct {
	root    *Node
	opts    Options
	counter int
	words   []*Node
}

// New creates an empty trie with the given options.
func New(opts Options) *Trie {
	t := &Trie{opts: opts}
	t.root = &Node{trie: t, freq: 1}
	t.root.parent = t.root
	return t
}

// FromLines creates a trie and inserts the given dictionary text.
func FromLines(text string, opts Options) *Trie {
	t := New(opts)
	t.Insert(text)
	return t
}

// Root returns the root node.
func (t *Trie) Root() *Node { return t.root }

// Options returns the trie's shared configuration.
func (t *Trie) Options() Options { return t.opts }

// WordCount returns the number of insertions recorded by the trie.
func (t *Trie) WordCount() int { return len(t.words) }

// Words returns the word nodes in insertion order. Overwritten entries keep
// their original slot; the node itself carries the freshest completion.
func (t *Trie) Words() []*Node { return t.words }

// Stats returns basic inventory counters.
func (t *Trie) Stats() map[string]int {
	maxFreq := 0
	for _, w := range t.words {
		if w.freq > maxFreq {
			maxFreq = w.freq
		}
	}
	return map[string]int{
		"totalWords":   len(t.words),
		"maxFrequency": maxFreq,
		"counter":      t.counter,
	}
}

// Dictionary line: PRE|POST, optionally trailed by " #FREQ". POST may start
// with "|" (the PRE||POST full-replacement form) but cannot contain "#".
var lineRe = regexp.MustCompile(`^([^|]+)\|([^#]+?)( #([0-9]+))?$`)

// Insert parses dictionary text, one entry per line, and grows the tree.
// Blank lines and lines that do not match the syntax are skipped, not errors.
func (t *Trie) Insert(text string) *Trie {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, "|") {
			continue
		}
		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		pre, post := m[1], m[2]
		freq := 1
		if m[4] != "" {
			if v, err := strconv.Atoi(m[4]); err == nil && v > 0 {
				freq = v
			}
		}
		if rest, ok := strings.CutPrefix(post, "|"); ok {
			// PRE||POST: accepting first erases the typed prefix, then
			// inserts POST.
			post = strings.Repeat("\b", len([]rune(pre))) + rest
		}
		t.InsertPair(pre, post, freq)
	}
	return t
}

// InsertPair walks/creates the node chain for prefix and stores the completion
// there. Inserting at an existing prefix overwrites completion, freq and index:
// last write wins. The completion itself is then materialized as a chain of
// children carrying progressively shorter remainders, so words sharing a
// prefix stay individually reachable for ranking after later overwrites.
func (t *Trie) InsertPair(prefix, completion string, freq int) {
	if prefix == "" || completion == "" {
		return
	}
	if freq < 1 {
		freq = 1
	}
	n := t.root
	for _, r := range prefix {
		n = n.linkChild(r)
	}
	n.completion = completion
	n.freq = freq
	t.counter++
	n.index = t.counter
	t.words = append(t.words, n)

	// Chain stops at the first control character: replacement completions
	// must keep their backspaces interpretable, not navigable.
	for i, r := range completion {
		rest := completion[i+len(string(r)):]
		if r < 32 || rest == "" {
			break
		}
		n = n.linkChild(r)
		n.completion = rest
		n.freq = freq
		n.index = t.counter
	}
}

// linkChild returns the linked child for r, creating it if needed.
func (n *Node) linkChild(r rune) *Node {
	k := n.fold(r)
	child := n.children[k]
	if child == nil {
		child = n.newChild(r)
		if n.children == nil {
			n.children = make(map[rune]*Node)
		}
		n.children[k] = child
	}
	return child
}

// Lookup returns the linked node for prefix, or nil if no such chain exists.
// Unlike walks it never fabricates transient nodes.
func (t *Trie) Lookup(prefix string) *Node {
	n := t.root
	for _, r := range prefix {
		n = n.children[n.fold(r)]
		if n == nil {
			return nil
		}
	}
	return n
}

// Disable clears the completion stored at prefix while keeping the node in
// place. When completion is non-empty it must match the stored value.
func (t *Trie) Disable(prefix, completion string) bool {
	n := t.Lookup(prefix)
	if n == nil || n.completion == "" {
		return false
	}
	if completion != "" && n.completion != completion {
		return false
	}
	n.completion = ""
	return true
}

func firstRune(s string) (rune, int) {
	for _, r := range s {
		return r, len(string(r))
	}
	return 0, 0
}
