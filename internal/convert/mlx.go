// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"

	"github.com/pdiddy/mlx-exporter/internal/python"
)

const moduleMLXConvert = "mlx_lm.convert"

// MLXConverter quantizes Hugging Face models into MLX format by running the
// mlx_lm.convert module with a Python interpreter.
type MLXConverter struct {
	python python.Interpreter
	dir    string
	env    []string
}

// NewMLXConverter creates a converter that runs mlx_lm.convert with py in
// working directory dir. env entries are added to the subprocess
// environment. A missing mlx_lm is not detected here: the converter
// process fails and reports it through Result.ExitCode.
func NewMLXConverter(py python.Interpreter, dir string, env []string) *MLXConverter {
	return &MLXConverter{python: py, dir: dir, env: env}
}

// Convert runs the quantizing conversion and waits for it to exit.
func (m *MLXConverter) Convert(ctx context.Context, req Request) (Result, error) {
	out, err := m.python.RunModule(ctx, python.RunSpec{
		Module: moduleMLXConvert,
		Args:   mlxArgs(req),
		Dir:    m.dir,
		Env:    m.env,
	})
	if err != nil {
		return Result{}, fmt.Errorf("converting %s: %w", req.Source, err)
	}
	return Result{ExitCode: out.ExitCode, Output: out.Combined}, nil
}

func mlxArgs(req Request) []string {
	return []string{
		"--hf-path", req.Source,
		"--mlx-path", req.Target,
		"-q", "--q-bits", req.QuantBits,
	}
}
