// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workspace resolves the workspace root and the paths derived from it.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RootEnv is the environment variable that supplies the workspace root.
const RootEnv = "LLM_LAB_ROOT_PATH"

const (
	workspaceDir = "workspace"
	modelsDir    = "models"
	dbFile       = "llmlab.sqlite3"
)

// ErrRootNotSet is returned when no workspace root is configured.
var ErrRootNotSet = errors.New(RootEnv + " is not set")

// Workspace locates models and the job store under a root directory.
type Workspace struct {
	root string
}

// New returns a Workspace rooted at root. An empty root is an error.
func New(root string) (Workspace, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return Workspace{}, ErrRootNotSet
	}
	return Workspace{root: root}, nil
}

// Root returns the workspace root directory.
func (w Workspace) Root() string { return w.root }

// ModelsDir returns <root>/workspace/models.
func (w Workspace) ModelsDir() string {
	return filepath.Join(w.root, workspaceDir, modelsDir)
}

// DBPath returns the path of the job store database.
func (w Workspace) DBPath() string {
	return filepath.Join(w.root, workspaceDir, dbFile)
}

// OutputPath returns the directory for a converted model. name must be a
// single path segment so the result always stays inside ModelsDir.
func (w Workspace) OutputPath(name string) (string, error) {
	if err := validateDirName(name); err != nil {
		return "", err
	}
	return filepath.Join(w.ModelsDir(), name), nil
}

// CreateOutputDir creates the output directory for name. It fails with an
// error wrapping fs.ErrExist when the directory is already present; the
// parent models directory is created when missing.
func (w Workspace) CreateOutputDir(name string) (string, error) {
	path, err := w.OutputPath(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(w.ModelsDir(), 0o755); err != nil {
		return "", fmt.Errorf("creating models directory: %w", err)
	}
	if err := os.Mkdir(path, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", path, err)
	}
	return path, nil
}

func validateDirName(name string) error {
	switch {
	case name == "":
		return errors.New("output directory name is required")
	case name == "." || name == "..":
		return fmt.Errorf("invalid output directory name %q", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("output directory name %q must not contain path separators", name)
	}
	return nil
}
