package suggest

import (
	"strings"
	"unicode/utf8"
)

const (
	nul       = '\x00'
	backspace = '\b'
	tab       = '\t'
	newline   = '\n'
	del       = '\x7f'
)

// Cursor is a by-value position in the trie: the current node, the text
// accumulated so far, and the escape flag. Re-anchoring at the root keeps the
// accumulated text, so a cursor is never a structural clone of the tree.
type Cursor struct {
	trie *Trie
	node *Node
	text string
	esc  bool
}

// Cursor returns a cursor positioned at the root with empty text.
func (t *Trie) Cursor() Cursor {
	return Cursor{trie: t, node: t.root}
}

// Node returns the current node.
func (c Cursor) Node() *Node { return c.node }

// Text returns the accumulated input tracked by this cursor. Always empty
// when full-text caching is disabled.
func (c Cursor) Text() string { return c.text }

// Escaped reports whether tab acceptance is currently suppressed (NUL toggled).
func (c Cursor) Escaped() bool { return c.esc }

// Completion returns the raw pending completion at the current node,
// backspaces included for full-replacement entries.
func (c Cursor) Completion() string {
	if c.node == nil {
		return ""
	}
	return c.node.completion
}

// Suggestion returns the display form of the pending completion, with any
// leading replacement backspaces stripped. Empty while escaped.
func (c Cursor) Suggestion() string {
	if c.esc {
		return ""
	}
	return strings.TrimLeft(c.Completion(), "\b")
}

// WalkTo consumes a character stream and returns the resulting cursor,
// interpreting control characters when the trie is configured to. It never
// panics: backspace past empty text, tab with no completion and stray bytes
// are all no-ops.
func (c Cursor) WalkTo(v string) Cursor {
	return c.walk(v, c.trie.opts.HandleControlChars)
}

// WalkLiteral consumes the stream with control-character interpretation off,
// so tabs and backspaces land as ordinary characters.
func (c Cursor) WalkLiteral(v string) Cursor {
	return c.walk(v, false)
}

func (c Cursor) walk(v string, handleControl bool) Cursor {
	node := c.node
	s := c.text
	esc := c.esc

	for i, ch := range v {
		if ch == del {
			ch = backspace
		}
		if isDroppedControl(ch) {
			if i == 0 {
				// A stray escape burst opens with one of these; drop the
				// whole event rather than interpret its payload.
				return c
			}
			continue
		}

		switch {
		case handleControl && ch == nul:
			esc = !esc
			continue

		case handleControl && ch == backspace && node.children[backspace] == nil:
			// Rewind: drop one character, then re-derive the position by
			// replaying the trailing word run from the root. Replaying is
			// correct even when free text ran past where matching stopped;
			// popping parents is not.
			s = trimLastRune(s)
			node = c.trie.replay(trailingWordRun(s))

		case handleControl && ch == tab && !esc:
			comp := node.completion
			if comp == "" {
				continue
			}
			// Accepting is replaying the suggestion through this same
			// interpreter, so embedded backspaces perform a replace.
			sub := Cursor{trie: c.trie, node: node, text: s}
			sub = sub.walk(comp, handleControl)
			node, s, esc = sub.node, sub.text, sub.esc

		default:
			node = node.step(ch)
			s += string(ch)
		}

		if ch == newline || ch == tab {
			esc = false
		}
		if node.IsEmpty() && isResetChar(ch, handleControl) {
			// Dead end at a word boundary: re-anchor matching at the root
			// while keeping the accumulated text for later backspaces.
			node = c.trie.root
		}
	}

	out := Cursor{trie: c.trie, node: node, text: s, esc: esc}
	if !c.trie.opts.CacheFullText {
		out.text = ""
	}
	return out
}

// replay walks a plain word run from the root, position only. Runs contain no
// control characters by construction.
func (t *Trie) replay(run string) *Node {
	n := t.root
	for _, r := range run {
		n = n.step(r)
	}
	return n
}

// isDroppedControl reports C0 codes that are silently discarded: 1..31 minus
// backspace, tab and newline.
func isDroppedControl(ch rune) bool {
	if ch < 1 || ch > 31 {
		return false
	}
	return ch != backspace && ch != tab && ch != newline
}

// isWordChar matches the trailing-run class used by backspace rewind:
// ASCII letters, digits and apostrophe.
func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '\''
}

func isAlphaRune(ch rune) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '\''
}

// isResetChar reports characters that re-anchor matching at word boundaries:
// anything that is neither alphabetic/apostrophe nor a handled control char.
func isResetChar(ch rune, handleControl bool) bool {
	if isAlphaRune(ch) {
		return false
	}
	if handleControl && (ch == tab || ch == backspace || ch == nul) {
		return false
	}
	return true
}

// trailingWordRun returns the suffix of s matching [A-Za-z0-9']+.
func trailingWordRun(s string) string {
	i := len(s)
	for i > 0 && isWordChar(s[i-1]) {
		i--
	}
	return s[i:]
}

func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
