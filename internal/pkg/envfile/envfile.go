// Package envfile checks and repairs dotenv files that picked up stray
// shell fragments from copy-pasted setup commands.
package envfile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
)

// badMarker is the heredoc residue a broken `cat > .env << EOF` paste
// leaves behind at the end of the file.
const badMarker = "EOF < /dev/null"

var keyPattern = regexp.MustCompile(`^(?:export\s+)?[A-Za-z_][A-Za-z0-9_]*\s*=`)

// IssueKind classifies a repaired line.
type IssueKind string

const (
	IssueUnparseable  IssueKind = "unparseable"
	IssueDuplicateKey IssueKind = "duplicate_key"
	IssueBadMarker    IssueKind = "bad_marker"
)

// Issue describes a line removed during repair.
type Issue struct {
	Line int
	Kind IssueKind
	Text string
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s: %s", i.Line, i.Kind, i.Text)
}

// Repair strips stray fragments from dotenv content: heredoc residue,
// lines that are not comments or KEY=VALUE assignments, and repeated
// keys (the first assignment wins). Returns the repaired content and
// the list of removed lines. Repairing already-clean content is a
// no-op.
func Repair(content string) (string, []Issue) {
	lines := strings.Split(content, "\n")
	seen := make(map[string]bool)

	var kept []string
	var issues []Issue
	for n, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.Contains(line, badMarker):
			issues = append(issues, Issue{Line: n + 1, Kind: IssueBadMarker, Text: trimmed})
			continue
		case trimmed == "" || strings.HasPrefix(trimmed, "#"):
			// blank lines and comments pass through
		case !keyPattern.MatchString(trimmed):
			issues = append(issues, Issue{Line: n + 1, Kind: IssueUnparseable, Text: trimmed})
			continue
		default:
			key := assignmentKey(trimmed)
			if seen[key] {
				issues = append(issues, Issue{Line: n + 1, Kind: IssueDuplicateKey, Text: trimmed})
				continue
			}
			seen[key] = true
		}
		kept = append(kept, line)
	}

	repaired := strings.Join(kept, "\n")
	if repaired != "" && !strings.HasSuffix(repaired, "\n") {
		repaired += "\n"
	}
	return repaired, issues
}

// MissingKeys parses dotenv content and reports which of the required
// keys are absent or empty.
func MissingKeys(content string, required []string) ([]string, error) {
	values, err := godotenv.Unmarshal(content)
	if err != nil {
		return nil, fmt.Errorf("envfile: parse: %w", err)
	}

	var missing []string
	for _, key := range required {
		if values[key] == "" {
			missing = append(missing, key)
		}
	}
	return missing, nil
}

func assignmentKey(line string) string {
	line = strings.TrimPrefix(line, "export")
	line = strings.TrimSpace(line)
	key, _, _ := strings.Cut(line, "=")
	return strings.TrimSpace(key)
}
