package dictionary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("b.txt", "wor|ld #300")
	write("a.txt", "aut|omobile #500")
	write("notes.md", "aut|onomy #999") // wrong extension, ignored

	text, err := LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if text != "aut|omobile #500\nwor|ld #300" {
		t.Errorf("merged text = %q, want files joined in name order", text)
	}
	if strings.Contains(text, "autonomy") {
		t.Error("non-.txt file must be ignored")
	}
}

func TestLoadDirErrors(t *testing.T) {
	if _, err := LoadDir(t.TempDir()); err == nil {
		t.Error("empty directory must be an error")
	}
	if _, err := LoadDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("missing directory must be an error")
	}
}

func TestMerge(t *testing.T) {
	testCases := []struct {
		parts []string
		want  string
	}{
		{[]string{"a|b", "c|d"}, "a|b\nc|d"},
		{[]string{"a|b", "", "c|d"}, "a|b\nc|d"},
		{[]string{"  ", "\n"}, ""},
		{[]string{}, ""},
	}
	for _, tc := range testCases {
		if got := Merge(tc.parts...); got != tc.want {
			t.Errorf("Merge(%q) = %q, want %q", tc.parts, got, tc.want)
		}
	}
}
