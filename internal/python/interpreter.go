// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package python detects a Python interpreter and runs modules with it.
// The converter is shipped as a Python module, so every conversion goes
// through an Interpreter.
package python

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const (
	binPython  = "python"
	binPython3 = "python3"
)

// Interpreter runs Python modules as subprocesses.
type Interpreter interface {
	// Name returns the interpreter binary ("python", "python3", or a path).
	Name() string

	// Available reports whether the binary exists on PATH and answers
	// --version.
	Available() bool

	// ModuleExists returns nil when module can be imported. The error
	// carries the interpreter's output (e.g. ModuleNotFoundError).
	ModuleExists(module string) error

	// RunModule runs "python -u -m <module> <args...>" and blocks until it
	// exits.
	RunModule(ctx context.Context, spec RunSpec) (Output, error)
}

// RunSpec describes one module invocation.
type RunSpec struct {
	Module string
	Args   []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env entries are appended to the parent environment.
	Env []string
}

// Output is the result of a process that started and exited.
type Output struct {
	ExitCode int
	// Combined holds interleaved stdout and stderr.
	Combined []byte
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunCombined(ctx context.Context, dir string, env []string, name string, args ...string) (Output, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// RunCombined returns an error only when the process could not be started
// or waited on. A non-zero exit status is reported in Output.ExitCode.
func (o *osExecutor) RunCombined(ctx context.Context, dir string, env []string, name string, args ...string) (Output, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	out := Output{Combined: buf.Bytes()}
	if err == nil {
		return out, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	return out, err
}

// interpreter implements Interpreter for one binary.
type interpreter struct {
	bin  string
	exec executor
}

func (p *interpreter) Name() string { return p.bin }

func (p *interpreter) Available() bool {
	if _, err := p.exec.LookPath(p.bin); err != nil {
		return false
	}
	return p.exec.RunSilent(p.bin, "--version") == nil
}

func (p *interpreter) ModuleExists(module string) error {
	out, err := p.exec.RunCombined(context.Background(), "", nil, p.bin, "-c", "import "+module)
	if err != nil {
		return fmt.Errorf("checking module %s with %s: %w", module, p.bin, err)
	}
	if out.ExitCode != 0 {
		return fmt.Errorf("module %s not importable with %s (exit %d): %s",
			module, p.bin, out.ExitCode, lastLine(out.Combined))
	}
	return nil
}

// lastLine returns the last non-blank line of b, which for a Python
// traceback is the exception message.
func lastLine(b []byte) string {
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

func (p *interpreter) RunModule(ctx context.Context, spec RunSpec) (Output, error) {
	args := make([]string, 0, len(spec.Args)+3)
	args = append(args, "-u", "-m", spec.Module)
	args = append(args, spec.Args...)

	out, err := p.exec.RunCombined(ctx, spec.Dir, spec.Env, p.bin, args...)
	if err != nil {
		return out, fmt.Errorf("running %s -m %s: %w", p.bin, spec.Module, err)
	}
	return out, nil
}

func newInterpreter(bin string, exec executor) *interpreter {
	return &interpreter{bin: bin, exec: exec}
}

var defaultExec = &osExecutor{}

// Detect tries preferred first, then falls back to python and python3.
// Returns an error if none is available.
func Detect(preferred string) (Interpreter, error) {
	return detect(preferred, defaultExec)
}

func detect(preferred string, exec executor) (Interpreter, error) {
	candidates := []string{binPython, binPython3}
	if preferred != "" && preferred != binPython && preferred != binPython3 {
		candidates = append([]string{preferred}, candidates...)
	} else if preferred == binPython3 {
		candidates = []string{binPython3, binPython}
	}

	for _, bin := range candidates {
		p := newInterpreter(bin, exec)
		if p.Available() {
			return p, nil
		}
	}

	return nil, fmt.Errorf("no python interpreter available: tried %v", candidates)
}
