package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/modularizer/automobile-complete/internal/utils"
	"github.com/modularizer/automobile-complete/pkg/suggest"
)

// SimOptions controls playback pacing for the typing simulator.
type SimOptions struct {
	LetterDelay time.Duration
	WordDelay   time.Duration
	Colors      bool
}

// Simulate replays script rune by rune through a cursor, rendering the
// field after every keystroke. Escapes \t \b \n \0 and \\ in the script are
// decoded first, so Tab accepts and backspaces can be scripted inline.
func Simulate(trie *suggest.Trie, script string, o SimOptions) {
	r := NewRenderer(o.Colors)
	cur := trie.Cursor()
	decoded := utils.UnescapeControls(script)

	for _, ch := range decoded {
		cur = cur.WalkTo(string(ch))
		prefix := cur.Node().Prefix()
		fmt.Printf("\r\033[K%s", r.StateLine(cur.Text(), prefix, cur.Suggestion()))
		if ch == ' ' || ch == '\n' {
			time.Sleep(o.WordDelay)
		} else {
			time.Sleep(o.LetterDelay)
		}
	}
	fmt.Println()
	log.Debug("simulation done", "chars", len([]rune(decoded)), "text", cur.Text())
}
