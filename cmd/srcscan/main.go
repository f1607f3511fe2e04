// Command srcscan reports merge-conflict markers and other unwanted
// string fragments left in source files.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/colaai/backend/internal/pkg/srcscan"
)

func main() {
	var (
		root      string
		fragments string
	)
	flag.StringVar(&root, "root", ".", "Directory to scan")
	flag.StringVar(&fragments, "fragments", "", "Extra comma-separated fragments to flag")
	flag.Parse()

	var extra []string
	for _, f := range strings.Split(fragments, ",") {
		if f = strings.TrimSpace(f); f != "" {
			extra = append(extra, f)
		}
	}

	findings, err := srcscan.New(extra...).ScanTree(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "srcscan: %v\n", err)
		os.Exit(1)
	}

	if len(findings) == 0 {
		fmt.Println("srcscan: clean")
		return
	}

	for _, finding := range findings {
		fmt.Println(finding)
	}
	fmt.Printf("srcscan: %d finding(s)\n", len(findings))
	os.Exit(1)
}
