package suggest

import (
	"sort"
	"strings"
)

// Option is one reachable completion: the full prefix that owns it, the raw
// completion text, and its ranking keys.
type Option struct {
	Prefix     string
	Completion string
	Freq       int
	Index      int
}

// CompletionOption is an Option prepared for display relative to the current
// position: the part of its prefix the user has already typed, the remainder
// still needed, and the completion. Full-replacement entries keep the raw
// backspace-bearing completion aside for acceptance.
type CompletionOption struct {
	TypedPrefix     string
	RemainingPrefix string
	Completion      string
	Freq            int
	Index           int
	FullReplacement bool

	accept string
}

// AcceptText is the string acceptance replays: the display completion, or the
// original backspace-bearing completion for full replacements.
func (o CompletionOption) AcceptText() string { return o.accept }

// ListOptions collects every completion reachable from the current node (its
// own pending completion plus a full descent of children), ranked by freq
// descending with insertion order breaking ties. A word surfaces once even
// though its completion chain repeats it at every depth; the shallowest node
// wins. max <= 0 means unbounded. The list is recomputed on every call; cost
// is bounded by the subtree.
func (c Cursor) ListOptions(max int) []Option {
	if c.node == nil {
		return nil
	}
	var opts []Option
	var collect func(n *Node)
	collect = func(n *Node) {
		if n.completion != "" {
			opts = append(opts, Option{
				Prefix:     n.prefix,
				Completion: n.completion,
				Freq:       n.freq,
				Index:      n.index,
			})
		}
		for _, child := range n.children {
			collect(child)
		}
	}
	collect(c.node)

	sort.SliceStable(opts, func(i, j int) bool {
		if opts[i].Freq != opts[j].Freq {
			return opts[i].Freq > opts[j].Freq
		}
		return opts[i].Index < opts[j].Index
	})

	seen := make(map[string]bool, len(opts))
	kept := opts[:0]
	for _, o := range opts {
		word := o.Prefix + o.Completion
		if seen[word] {
			continue
		}
		seen[word] = true
		kept = append(kept, o)
	}
	opts = kept

	if max > 0 && len(opts) > max {
		opts = opts[:max]
	}
	return opts
}

// CompletionOptions returns the ranked options split for display against the
// current prefix. An option whose completion opens with backspaces is a full
// replacement: the whole entry prefix counts as typed, and the displayed
// completion has the backspaces stripped.
func (c Cursor) CompletionOptions(max int) []CompletionOption {
	ranked := c.ListOptions(max)
	if len(ranked) == 0 {
		return nil
	}
	cur := ""
	if c.node != nil {
		cur = c.node.prefix
	}
	out := make([]CompletionOption, 0, len(ranked))
	for _, o := range ranked {
		co := CompletionOption{
			Freq:   o.Freq,
			Index:  o.Index,
			accept: o.Completion,
		}
		if strings.HasPrefix(o.Completion, "\b") {
			co.FullReplacement = true
			co.TypedPrefix = o.Prefix
			co.Completion = strings.TrimLeft(o.Completion, "\b")
		} else {
			split := commonRunEnd(o.Prefix, cur, c.trie.opts.CaseInsensitive)
			co.TypedPrefix = o.Prefix[:split]
			co.RemainingPrefix = o.Prefix[split:]
			co.Completion = o.Completion
		}
		out = append(out, co)
	}
	return out
}

// Select accepts a dropdown entry: it replaces the word in progress with
// exactly what typing typedPrefix+remainingPrefix+completion would produce,
// replayed through the walk interpreter from the root. Text preceding the
// current word is kept.
func (c Cursor) Select(opt CompletionOption) Cursor {
	before := c.text
	if c.node != nil && c.node.prefix != "" {
		keep := len(before) - len(c.node.prefix)
		if keep < 0 {
			keep = 0
		}
		before = before[:keep]
	}
	root := Cursor{trie: c.trie, node: c.trie.root, text: before}
	return root.walk(opt.TypedPrefix+opt.RemainingPrefix+opt.accept, c.trie.opts.HandleControlChars)
}

// commonRunEnd returns the byte offset in a where the longest common leading
// run of a and b ends.
func commonRunEnd(a, b string, fold bool) int {
	br := []rune(b)
	i := 0
	end := 0
	for _, ra := range a {
		if i >= len(br) {
			break
		}
		rb := br[i]
		if fold {
			if strings.EqualFold(string(ra), string(rb)) {
				end += len(string(ra))
				i++
				continue
			}
			break
		}
		if ra != rb {
			break
		}
		end += len(string(ra))
		i++
	}
	return end
}
