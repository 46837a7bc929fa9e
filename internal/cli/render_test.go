package cli

import (
	"testing"

	"github.com/modularizer/automobile-complete/pkg/suggest"
)

func TestStateLine(t *testing.T) {
	r := NewRenderer(false)
	testCases := []struct {
		text, prefix, completion string
		want                     string
		description              string
	}{
		{"the aut", "aut", "omobile", "the aut│omobile", "mid word"},
		{"", "", "", "│", "empty field"},
		{"done ", "", "", "done │", "between words"},
		{"btw", "btw", "by the way", "btw│by█the█way", "spaces shown as blocks"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := r.StateLine(tc.text, tc.prefix, tc.completion); got != tc.want {
				t.Errorf("StateLine = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestOptionLine(t *testing.T) {
	r := NewRenderer(false)
	o := suggest.CompletionOption{TypedPrefix: "au", RemainingPrefix: "t", Completion: "omobile"}
	if got := r.OptionLine(o, false); got != "automobile" {
		t.Errorf("OptionLine = %q", got)
	}

	full := suggest.CompletionOption{TypedPrefix: "btw", Completion: "by the way", FullReplacement: true}
	if got := r.OptionLine(full, false); got != "btw -> by the way" {
		t.Errorf("full replacement OptionLine = %q", got)
	}
}
