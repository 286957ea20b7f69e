//go:build mage

// Package main contains Mage build targets for grade-report developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "grade-report"
	cmdPkg  = "./cmd/grade-report"
)

// sampleConfig is written by Init when no grade-report.yaml exists.
const sampleConfig = `# grade-report configuration. Every key can also be set with a
# GRADE_REPORT_ environment variable, e.g. GRADE_REPORT_LOG_LEVEL=debug.
document: ""
log_level: info
layout:
  columns: [date, teacher, subject, grade]
dates:
  mode: auto
  layout: "2.1.2006"
notation:
  letter_denominator: 8
  exceptions: []
  modifiers: []
terms:
  month_gap: 3
  split_month: 7
  labels: [Spring, Autumn]
`

// Init creates the local directories and a starter grade-report.yaml.
func Init() error {
	for _, dir := range []string{binDir, "reports"} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	if _, err := os.Stat("grade-report.yaml"); err == nil {
		fmt.Println("grade-report.yaml exists, leaving it alone.")
		return nil
	}
	if err := os.WriteFile("grade-report.yaml", []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("writing grade-report.yaml: %w", err)
	}
	fmt.Println("   grade-report.yaml")
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + version()
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Vet runs go vet over every package.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Test vets the module, then runs the test suite.
func Test() error {
	mg.Deps(Vet)
	return sh.RunV("go", "test", "./...")
}

// Stats prints project metrics: Go production and test LOC.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	return nil
}

// version is the short commit hash, or "dev" outside a git checkout.
func version() string {
	out, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil || out == "" {
		return "dev"
	}
	return out
}

// countGoLines counts non-blank lines in Go files under root, skipping
// directories that start with "_" or ".". testOnly selects _test.go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			if strings.TrimSpace(sc.Text()) != "" {
				total++
			}
		}
		return sc.Err()
	})
	return total, err
}
