// Package session holds the per-field completion controller: it turns raw
// text-change and key events into trie walks and applies the configured tab
// behavior. Each text field owns one Session and one tree; nothing is shared.
package session

import (
	"errors"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/modularizer/automobile-complete/pkg/dictionary"
	"github.com/modularizer/automobile-complete/pkg/suggest"
)

// Contract violations. Data problems (malformed lines, out-of-range limits,
// backspace past empty text) degrade silently and never produce these.
var (
	// ErrNotInitialized is returned when a Session is used before its tree
	// has been built.
	ErrNotInitialized = errors.New("session: not initialized")
	// ErrNoSource is returned when a Session is constructed without any
	// completion source.
	ErrNoSource = errors.New("session: no completion source")
)

// TabBehavior is the policy applied by Tab/Enter when no focused option and no
// literal suggestion is pending.
type TabBehavior string

const (
	// TabInsertTab appends a literal tab and re-derives the suggestion.
	TabInsertTab TabBehavior = "insert-tab"
	// TabInsertSpaces appends Settings.TabSpaces spaces.
	TabInsertSpaces TabBehavior = "insert-spaces"
	// TabDoNothing ignores the key.
	TabDoNothing TabBehavior = "do-nothing"
	// TabSelectBest always picks the top-ranked option if any exist.
	TabSelectBest TabBehavior = "select-best"
	// TabSelectIfSingle picks the sole option only when exactly one exists.
	TabSelectIfSingle TabBehavior = "select-if-single"
)

// ParseTabBehavior maps a config string to a TabBehavior, falling back to
// do-nothing for unknown values.
func ParseTabBehavior(s string) TabBehavior {
	switch TabBehavior(s) {
	case TabInsertTab, TabInsertSpaces, TabDoNothing, TabSelectBest, TabSelectIfSingle:
		return TabBehavior(s)
	default:
		log.Warnf("Unknown tab behavior %q, using %q", s, TabDoNothing)
		return TabDoNothing
	}
}

// Settings holds controller policy, distinct from the trie's matching Options.
type Settings struct {
	TabBehavior    TabBehavior
	TabSpaces      int
	MaxCompletions int // <= 0 means unbounded
}

// DefaultSettings returns the documented controller defaults.
func DefaultSettings() Settings {
	return Settings{
		TabBehavior:    TabSelectIfSingle,
		TabSpaces:      4,
		MaxCompletions: 10,
	}
}

// State is the plain data record exposed to renderers. No core type ever
// touches a rendering primitive.
type State struct {
	// Text is the tracked full text of the field.
	Text string
	// Prefix is the word portion currently matched by the tree.
	Prefix string
	// Suggestion is the pending completion in display form, empty if none.
	Suggestion string
	// Options is the ranked completion list, bounded by MaxCompletions.
	Options []suggest.CompletionOption
	// Focused is the arrow-key focused index, -1 when unset.
	Focused int
	// TabTarget is the option index Tab would select right now, -1 when Tab
	// would accept the literal suggestion or fall through to policy.
	TabTarget int
}

// Session tracks a single field's position in the tree. All operations are
// synchronous and run to completion; the session is Uninitialized until a
// tree is built and Positioned ever after.
type Session struct {
	trie     *suggest.Trie
	cur      suggest.Cursor
	engine   suggest.Options
	settings Settings
	focused  int

	baseText string
	personal *dictionary.PersonalStore
}

// New builds a session from merged dictionary text. The caller is responsible
// for merging baked-in, personal and per-site dictionaries into one text.
func New(dictText string, engine suggest.Options, settings Settings) (*Session, error) {
	if strings.TrimSpace(dictText) == "" {
		return nil, ErrNoSource
	}
	s := &Session{
		engine:   engine,
		settings: settings,
		focused:  -1,
		baseText: dictText,
		personal: dictionary.NewPersonalStore(),
	}
	s.trie = suggest.FromLines(dictText, engine)
	s.cur = s.trie.Cursor()
	return s, nil
}

// Settings returns the controller policy in effect.
func (s *Session) Settings() Settings { return s.settings }

// Trie exposes the underlying tree, mainly for stats.
func (s *Session) Trie() *suggest.Trie { return s.trie }

// Text returns the tracked full text.
func (s *Session) Text() string { return s.cur.Text() }

// Suggestion returns the pending completion in display form.
func (s *Session) Suggestion() string { return s.cur.Suggestion() }

func (s *Session) ready() error {
	if s == nil || s.trie == nil {
		return ErrNotInitialized
	}
	return nil
}

// HandleTextChange diffs newText against the tracked text and applies the
// cheapest walk: an appended suffix walks forward, a truncation walks
// backspaces, anything else (paste, mid-string edit) replays from the root.
// Arrow focus resets on any actual change.
func (s *Session) HandleTextChange(newText string) error {
	if err := s.ready(); err != nil {
		return err
	}
	prev := s.cur.Text()
	if newText == prev {
		return nil
	}
	switch {
	case strings.HasPrefix(newText, prev):
		s.cur = s.cur.WalkTo(newText[len(prev):])
	case strings.HasPrefix(prev, newText):
		n := len([]rune(prev)) - len([]rune(newText))
		s.cur = s.cur.WalkTo(strings.Repeat("\b", n))
	default:
		s.cur = s.trie.Cursor().WalkTo(newText)
	}
	s.focused = -1
	return nil
}

// pending reports whether Tab would accept a literal suggestion right now.
func (s *Session) pending() bool {
	return s.cur.Completion() != "" && !s.cur.Escaped()
}

// HandleTabOrEnter applies the documented precedence: a focused option always
// wins; else a pending literal suggestion is accepted; else the configured tab
// behavior runs.
func (s *Session) HandleTabOrEnter() error {
	if err := s.ready(); err != nil {
		return err
	}
	opts := s.cur.CompletionOptions(s.settings.MaxCompletions)
	defer func() { s.focused = -1 }()

	if s.focused >= 0 && s.focused < len(opts) {
		s.cur = s.cur.Select(opts[s.focused])
		return nil
	}
	if s.pending() {
		s.cur = s.cur.WalkTo("\t")
		return nil
	}
	switch s.settings.TabBehavior {
	case TabInsertTab:
		s.cur = s.cur.WalkLiteral("\t")
	case TabInsertSpaces:
		n := s.settings.TabSpaces
		if n <= 0 {
			n = 1
		}
		s.cur = s.cur.WalkTo(strings.Repeat(" ", n))
	case TabSelectBest:
		if len(opts) > 0 {
			s.cur = s.cur.Select(opts[0])
		}
	case TabSelectIfSingle:
		if len(opts) == 1 {
			s.cur = s.cur.Select(opts[0])
		}
	case TabDoNothing:
	}
	return nil
}

// HandleArrowDown moves the focused index down, clamped to the option list.
func (s *Session) HandleArrowDown() error {
	if err := s.ready(); err != nil {
		return err
	}
	n := len(s.cur.CompletionOptions(s.settings.MaxCompletions))
	if n == 0 {
		s.focused = -1
		return nil
	}
	if s.focused < n-1 {
		s.focused++
	}
	return nil
}

// HandleArrowUp moves the focused index up, clamped at the top.
func (s *Session) HandleArrowUp() error {
	if err := s.ready(); err != nil {
		return err
	}
	n := len(s.cur.CompletionOptions(s.settings.MaxCompletions))
	if n == 0 {
		s.focused = -1
		return nil
	}
	if s.focused > 0 {
		s.focused--
	}
	return nil
}

// tabTarget is the option index Tab would select right now.
func (s *Session) tabTarget(opts []suggest.CompletionOption) int {
	if s.focused >= 0 && s.focused < len(opts) {
		return s.focused
	}
	if s.pending() {
		return -1
	}
	switch s.settings.TabBehavior {
	case TabSelectBest:
		if len(opts) > 0 {
			return 0
		}
	case TabSelectIfSingle:
		if len(opts) == 1 {
			return 0
		}
	}
	return -1
}

// State snapshots the session as plain data.
func (s *Session) State() (State, error) {
	if err := s.ready(); err != nil {
		return State{}, err
	}
	opts := s.cur.CompletionOptions(s.settings.MaxCompletions)
	return State{
		Text:       s.cur.Text(),
		Prefix:     s.cur.Node().Prefix(),
		Suggestion: s.cur.Suggestion(),
		Options:    opts,
		Focused:    s.focused,
		TabTarget:  s.tabTarget(opts),
	}, nil
}

// SaveWord records a personal entry at the sentinel frequency and rebuilds the
// tree. Saving replaces any earlier personal entry whose prefix equals or
// extends the new one.
func (s *Session) SaveWord(prefix, completion string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if prefix == "" || completion == "" {
		return nil
	}
	s.personal.SaveWord(prefix, completion)
	return s.rebuild(s.baseText)
}

// Reload swaps in a tree built from new dictionary text. The replacement is
// built fully off to the side and swapped in one step; a half-built tree is
// never observable. The tracked text is replayed to restore the position.
func (s *Session) Reload(dictText string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(dictText) == "" {
		return ErrNoSource
	}
	s.baseText = dictText
	return s.rebuild(dictText)
}

func (s *Session) rebuild(dictText string) error {
	text := dictionary.Merge(dictText, s.personal.Lines())
	next := suggest.FromLines(text, s.engine)
	prev := s.cur.Text()
	cur := next.Cursor()
	if prev != "" {
		cur = cur.WalkTo(prev)
	}
	s.trie = next
	s.cur = cur
	s.focused = -1
	log.Debugf("Rebuilt tree: %d entries, replayed %d bytes of text", next.WordCount(), len(prev))
	return nil
}
