//go:build mage

// Package main contains Mage build targets for mlx-exporter developer tooling.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/pdiddy/mlx-exporter/internal/jobstore"
	"github.com/pdiddy/mlx-exporter/internal/workspace"
)

const (
	binDir  = "bin"
	binName = "mlx-exporter"
	cmdPkg  = "./cmd/mlx-exporter"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+version, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Check builds and tests.
func Check() {
	mg.SerialDeps(Build, Test)
}

// Init creates a development workspace under LLM_LAB_ROOT_PATH: the models
// directory and a job database with an empty job table. Existing files are
// left in place.
func Init() error {
	ws, err := workspace.New(os.Getenv(workspace.RootEnv))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(ws.ModelsDir(), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", ws.ModelsDir(), err)
	}
	fmt.Println("  ", ws.ModelsDir())

	store, err := jobstore.Open(ws.DBPath())
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.EnsureSchema(context.Background()); err != nil {
		return err
	}
	fmt.Println("  ", ws.DBPath())
	fmt.Println("Workspace initialized.")
	return nil
}

// Stats prints Go production and test line counts.
func Stats() error {
	var prod, test int
	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), "_") || info.Name() == binDir {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		n, err := countLines(path)
		if err != nil {
			return err
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prod)
	fmt.Printf("Lines of code (Go, tests):      %d\n", test)
	return nil
}

// countLines counts non-blank lines in a file.
func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	return n, sc.Err()
}
