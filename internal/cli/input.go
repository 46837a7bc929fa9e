// Package cli provides the interactive terminal front end: a line-oriented
// field emulator for poking at a live session, and a typing simulator that
// replays scripted keystrokes through the walk interpreter.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/modularizer/automobile-complete/internal/logger"
	"github.com/modularizer/automobile-complete/internal/utils"
	"github.com/modularizer/automobile-complete/pkg/session"
)

var clog = logger.New("cli")

// InputHandler drives a session from stdin. Every plain line becomes the new
// field text; lines starting with ':' are key commands (:tab, :up, :down,
// :save PRE|POST, :state, :quit).
type InputHandler struct {
	sess     *session.Session
	renderer *Renderer
	limit    int
}

// NewInputHandler wires a session into the interactive loop.
func NewInputHandler(sess *session.Session, colors bool, limit int) *InputHandler {
	return &InputHandler{
		sess:     sess,
		renderer: NewRenderer(colors),
		limit:    limit,
	}
}

// Start begins the interface loop. It reads a line from stdin, applies it to
// the session, and prints the resulting state with its ranked options.
// The loop terminates on read error or the :quit command.
func (h *InputHandler) Start() error {
	clog.Print("automobile CLI")
	clog.Print("type a line to set the field text, :tab / :up / :down for keys, :quit to exit")
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimRight(line, "\r\n")
		if strings.HasPrefix(line, ":") {
			if h.handleCommand(line) {
				return nil
			}
			continue
		}
		h.handleText(line)
	}
}

// handleCommand runs one ':' command; returns true when the loop should stop.
func (h *InputHandler) handleCommand(line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	var err error
	switch cmd {
	case "quit", "q":
		return true
	case "tab", "enter":
		err = h.sess.HandleTabOrEnter()
	case "down":
		err = h.sess.HandleArrowDown()
	case "up":
		err = h.sess.HandleArrowUp()
	case "save":
		pre, post, ok := strings.Cut(arg, "|")
		if !ok {
			clog.Errorf("usage: :save PRE|POST")
			return false
		}
		err = h.sess.SaveWord(pre, post)
	case "state":
	default:
		clog.Errorf("unknown command :%s", cmd)
		return false
	}
	if err != nil {
		clog.Error("command failed", "cmd", cmd, "err", err)
		return false
	}
	h.printState()
	return false
}

func (h *InputHandler) handleText(text string) {
	start := time.Now()
	if err := h.sess.HandleTextChange(utils.UnescapeControls(text)); err != nil {
		clog.Error("text change failed", "err", err)
		return
	}
	clog.Debugf("took [ %v ]", time.Since(start))
	h.printState()
}

func (h *InputHandler) printState() {
	st, err := h.sess.State()
	if err != nil {
		clog.Error("state unavailable", "err", err)
		return
	}
	fmt.Println(h.renderer.StateLine(st.Text, st.Prefix, st.Suggestion))
	for i, opt := range st.Options {
		if h.limit > 0 && i >= h.limit {
			break
		}
		marker := "  "
		if i == st.Focused {
			marker = "> "
		} else if i == st.TabTarget {
			marker = "* "
		}
		fmtFreq := utils.FormatWithCommas(opt.Freq)
		fmt.Printf("%s%2d. %-32s (freq: %10s)\n", marker, i+1, h.renderer.OptionLine(opt, i == st.Focused), fmtFreq)
	}
}
