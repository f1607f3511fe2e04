// Package srcscan walks a source tree and reports lines containing
// unwanted fragments, such as merge-conflict markers left behind by a
// botched rebase.
package srcscan

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ConflictMarkers are the git merge-conflict line prefixes.
var ConflictMarkers = []string{"<<<<<<< ", ">>>>>>> ", "||||||| "}

var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
}

var sourceExtensions = map[string]bool{
	".go":   true,
	".sql":  true,
	".ts":   true,
	".tsx":  true,
	".js":   true,
	".json": true,
	".yaml": true,
	".yml":  true,
	".toml": true,
	".md":   true,
}

// Finding is one occurrence of a fragment in a scanned file.
type Finding struct {
	Path     string
	Line     int
	Fragment string
	Text     string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s:%d: %q", f.Path, f.Line, f.Fragment)
}

// Scanner scans source files for unwanted string fragments.
type Scanner struct {
	fragments []string
}

// New creates a Scanner looking for the conflict markers plus any
// extra fragments.
func New(extraFragments ...string) *Scanner {
	fragments := make([]string, 0, len(ConflictMarkers)+len(extraFragments))
	fragments = append(fragments, ConflictMarkers...)
	for _, f := range extraFragments {
		if f != "" {
			fragments = append(fragments, f)
		}
	}
	return &Scanner{fragments: fragments}
}

// ScanTree walks root and scans every source file under it.
func (s *Scanner) ScanTree(root string) ([]Finding, error) {
	var findings []Finding
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !sourceExtensions[filepath.Ext(path)] {
			return nil
		}
		found, err := s.ScanFile(path)
		if err != nil {
			return err
		}
		findings = append(findings, found...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("srcscan: walk %s: %w", root, err)
	}
	return findings, nil
}

// ScanFile scans a single file line by line.
func (s *Scanner) ScanFile(path string) ([]Finding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("srcscan: open %s: %w", path, err)
	}
	defer f.Close()

	var findings []Finding
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		for _, fragment := range s.fragments {
			if strings.Contains(text, fragment) {
				findings = append(findings, Finding{
					Path:     path,
					Line:     line,
					Fragment: fragment,
					Text:     strings.TrimSpace(text),
				})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("srcscan: read %s: %w", path, err)
	}
	return findings, nil
}
