// Command envcheck validates and repairs a dotenv file. It strips
// stray shell fragments (heredoc residue, unparseable lines, repeated
// keys) and reports required keys that are missing.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/colaai/backend/internal/pkg/envfile"
)

var defaultRequiredKeys = []string{
	"COLAAI_DATABASE_HOST",
	"COLAAI_DATABASE_PASSWORD",
	"COLAAI_JWT_SECRET",
	"COLAAI_STRIPE_SECRET_KEY",
	"COLAAI_STRIPE_WEBHOOK_SECRET",
}

func main() {
	var (
		file     string
		dryRun   bool
		required string
	)
	flag.StringVar(&file, "file", ".env", "Path to the dotenv file")
	flag.BoolVar(&dryRun, "dry-run", false, "Report issues without rewriting the file")
	flag.StringVar(&required, "required", strings.Join(defaultRequiredKeys, ","), "Comma-separated required keys")
	flag.Parse()

	raw, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "envcheck: %v\n", err)
		os.Exit(1)
	}

	repaired, issues := envfile.Repair(string(raw))
	for _, issue := range issues {
		fmt.Printf("%s: %s\n", file, issue)
	}

	requiredKeys := splitKeys(required)
	missing, err := envfile.MissingKeys(repaired, requiredKeys)
	if err != nil {
		fmt.Fprintf(os.Stderr, "envcheck: %v\n", err)
		os.Exit(1)
	}
	for _, key := range missing {
		fmt.Printf("%s: missing required key %s\n", file, key)
	}

	if len(issues) == 0 && len(missing) == 0 {
		fmt.Printf("%s: ok\n", file)
		return
	}

	if dryRun {
		fmt.Printf("%s: %d issue(s) found (dry run, file unchanged)\n", file, len(issues)+len(missing))
		os.Exit(1)
	}

	if len(issues) > 0 {
		if err := os.WriteFile(file, []byte(repaired), 0o600); err != nil {
			fmt.Fprintf(os.Stderr, "envcheck: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s: repaired, %d line(s) removed\n", file, len(issues))
	}
	if len(missing) > 0 {
		os.Exit(1)
	}
}

func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
