//go:build mage

// Package main provides build targets for the enumily project using Mage.
//
// Usage:
//
//	mage build          Compile the enumily binary to bin/
//	mage test           Run all tests
//	mage testLibrary    Run only the pkg/ library tests
//	mage cover          Run all tests with a coverage profile
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install enumily to GOPATH/bin
//	mage stats          Print Go LOC per area and documentation word counts
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName  = "enumily"
	binaryDir   = "bin"
	cmdDir      = "./cmd/enumily"
	versionVar  = "github.com/mesh-intelligence/enumily/internal/cli.Version"
	coverFile   = "coverage.out"
	libraryPkgs = "./pkg/..."
)

// version returns the git description of HEAD, or "dev" outside a checkout.
func version() string {
	out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || out == "" {
		return "dev"
	}
	return out
}

// Build compiles the enumily binary to bin/ with the version stamped in.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	ldflags := fmt.Sprintf("-X %s=%s", versionVar, version())
	return sh.RunV("go", "build", "-v", "-ldflags", ldflags, "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// TestLibrary runs only the tests of the importable enum packages.
func TestLibrary() error {
	pkgs, err := sh.Output("go", "list", libraryPkgs)
	if err != nil {
		return err
	}
	var libPkgs []string
	for _, pkg := range strings.Split(pkgs, "\n") {
		if pkg != "" {
			libPkgs = append(libPkgs, pkg)
		}
	}
	if len(libPkgs) == 0 {
		fmt.Println("No library packages found.")
		return nil
	}
	args := append([]string{"test"}, libPkgs...)
	return sh.RunV("go", args...)
}

// Cover runs all tests with a coverage profile and prints the summary.
func Cover() error {
	if err := sh.RunV("go", "test", "-coverprofile="+coverFile, "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func="+coverFile)
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	for _, p := range []string{binaryDir, coverFile} {
		if err := os.RemoveAll(p); err != nil {
			return err
		}
	}
	return sh.RunV("go", "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// statAreas groups the source tree for Stats, in print order.
var statAreas = []struct {
	name   string
	prefix string
}{
	{"library (pkg/enum)", "pkg"},
	{"catalog and support (internal)", "internal"},
	{"command (cmd)", "cmd"},
}

// lineCount holds production and test line totals for one area.
type lineCount struct {
	prod int
	test int
}

// Stats prints Go lines of code per area, split into production and test
// code, and the word count of the Markdown files at the repository root.
func Stats() error {
	counts := make(map[string]*lineCount, len(statAreas))
	for _, a := range statAreas {
		counts[a.prefix] = &lineCount{}
	}

	for _, a := range statAreas {
		err := filepath.WalkDir(a.prefix, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".go") {
				return nil
			}
			n, err := countLines(path)
			if err != nil {
				return err
			}
			if strings.HasSuffix(path, "_test.go") {
				counts[a.prefix].test += n
			} else {
				counts[a.prefix].prod += n
			}
			return nil
		})
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	var total lineCount
	for _, a := range statAreas {
		c := counts[a.prefix]
		fmt.Printf("%-32s production %6d  tests %6d\n", a.name, c.prod, c.test)
		total.prod += c.prod
		total.test += c.test
	}
	fmt.Printf("%-32s production %6d  tests %6d\n", "total", total.prod, total.test)

	words, err := countMarkdownWords()
	if err != nil {
		return err
	}
	fmt.Printf("%-32s words %d\n", "documentation (*.md)", words)
	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}

// countMarkdownWords sums the words of every Markdown file at the root.
func countMarkdownWords() (int, error) {
	matches, err := filepath.Glob("*.md")
	if err != nil {
		return 0, err
	}
	total := 0
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, err
		}
		total += len(strings.FieldsFunc(string(data), unicode.IsSpace))
	}
	return total, nil
}
