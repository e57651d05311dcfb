// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the configuration and record shapes shared by the
// exporter packages.
package types

// PythonConfig selects the interpreter used to run the converter module.
type PythonConfig struct {
	// Binary is the preferred interpreter name or path (default "python").
	// Detection falls back to "python" and "python3" when it is unavailable.
	Binary string `json:"python" yaml:"python"`

	// PluginDir is the working directory for the converter subprocess.
	PluginDir string `json:"plugin_dir" yaml:"plugin_dir"`

	// Env holds extra KEY=VALUE entries appended to the subprocess
	// environment (e.g. HF_TOKEN).
	Env []string `json:"-" yaml:"-"`
}

// ExportConfig holds settings for a conversion run.
type ExportConfig struct {
	// RootDir is the workspace root (LLM_LAB_ROOT_PATH).
	RootDir string `json:"root" yaml:"root"`

	Python PythonConfig `json:"python" yaml:",inline"`

	// Strict makes a converter failure a command error (non-zero exit).
	// When false a failed conversion is reported and the process exits 0.
	Strict bool `json:"strict" yaml:"strict"`
}
