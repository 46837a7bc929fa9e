// Package dictionary loads plain-text completion dictionaries, keeps the
// user's personal word store, and builds completion lists from wordlists.
//
// The on-disk format is the line syntax consumed by the suggest package:
//
//	PREFIX|COMPLETION[ #FREQ]
//	PREFIX||COMPLETION[ #FREQ]
//
// one entry per line, UTF-8. There is no binary format.
package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// LoadFile reads one dictionary file.
func LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read dictionary %s: %w", path, err)
	}
	return string(data), nil
}

// LoadDir reads every *.txt dictionary under dirPath in name order and merges
// them into one text. Unreadable files are skipped with a warning; having no
// dictionary at all is an error.
func LoadDir(dirPath string) (string, error) {
	pattern := filepath.Join(dirPath, "*.txt")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("failed to scan %s for dictionaries: %w", dirPath, err)
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no dictionary files found in %s", dirPath)
	}
	sort.Strings(files)

	parts := make([]string, 0, len(files))
	for _, file := range files {
		text, err := LoadFile(file)
		if err != nil {
			log.Warnf("Skipping dictionary %s: %v", file, err)
			continue
		}
		log.Debugf("Loaded dictionary %s (%d bytes)", file, len(text))
		parts = append(parts, text)
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no readable dictionary files in %s", dirPath)
	}
	return Merge(parts...), nil
}

// Merge joins dictionary texts, dropping empty parts.
func Merge(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}
