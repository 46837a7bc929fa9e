package utils

import "testing"

func TestFormatWithCommas(t *testing.T) {
	testCases := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1000000, "1,000,000"},
		{123456789, "123,456,789"},
		{-1234, "-1,234"},
	}
	for _, tc := range testCases {
		if got := FormatWithCommas(tc.in); got != tc.want {
			t.Errorf("FormatWithCommas(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestUnescapeControls(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{`aut\t`, "aut\t"},
		{`oops\b\b`, "oops\b\b"},
		{`line\nnext`, "line\nnext"},
		{`\0esc`, "\x00esc"},
		{`back\\slash`, `back\slash`},
		{`trailing\`, `trailing\`},
		{`\x`, `\x`},
	}
	for _, tc := range testCases {
		if got := UnescapeControls(tc.in); got != tc.want {
			t.Errorf("UnescapeControls(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
