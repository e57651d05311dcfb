// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mlx-exporter/internal/python"
)

// fakeInterpreter implements python.Interpreter for testing.
type fakeInterpreter struct {
	modules map[string]bool
	out     python.Output
	err     error
	gotSpec python.RunSpec
}

func (f *fakeInterpreter) Name() string    { return "python" }
func (f *fakeInterpreter) Available() bool { return true }

func (f *fakeInterpreter) ModuleExists(module string) error {
	if f.modules[module] {
		return nil
	}
	return errors.New("No module named " + module)
}

func (f *fakeInterpreter) RunModule(_ context.Context, spec python.RunSpec) (python.Output, error) {
	f.gotSpec = spec
	return f.out, f.err
}

func TestMLXConverterMissingModuleReportsExitCode(t *testing.T) {
	py := &fakeInterpreter{
		out: python.Output{ExitCode: 1, Combined: []byte("ModuleNotFoundError: No module named 'mlx_lm'")},
	}
	c := NewMLXConverter(py, "", nil)

	res, err := c.Convert(context.Background(), Request{Source: "gpt-j-6b", Target: "/tmp/out", QuantBits: "4"})
	require.NoError(t, err)
	assert.False(t, res.Succeeded())
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, string(res.Output), "mlx_lm")
}

func TestMLXConverterConvert(t *testing.T) {
	tests := []struct {
		name        string
		out         python.Output
		runErr      error
		wantErr     bool
		wantSuccess bool
	}{
		{
			name:        "converter exits zero",
			out:         python.Output{Combined: []byte("[INFO] Saving")},
			wantSuccess: true,
		},
		{
			name: "converter exits non-zero",
			out:  python.Output{ExitCode: 1, Combined: []byte("Traceback")},
		},
		{
			name:    "interpreter cannot start",
			runErr:  errors.New("exec: \"python\": executable file not found"),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			py := &fakeInterpreter{
				modules: map[string]bool{"mlx_lm": true},
				out:     tt.out,
				err:     tt.runErr,
			}
			c := NewMLXConverter(py, "/plugins/mlx_exporter", []string{"HF_TOKEN=hf_x"})

			res, err := c.Convert(context.Background(), Request{
				Source:    "mistralai/Mistral-7B-v0.1",
				Target:    "/lab/workspace/models/run1",
				QuantBits: "8",
			})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "mistralai/Mistral-7B-v0.1")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSuccess, res.Succeeded())
			assert.Equal(t, tt.out.ExitCode, res.ExitCode)
			assert.Equal(t, tt.out.Combined, res.Output)

			assert.Equal(t, "mlx_lm.convert", py.gotSpec.Module)
			assert.Equal(t, "/plugins/mlx_exporter", py.gotSpec.Dir)
			assert.Equal(t, []string{"HF_TOKEN=hf_x"}, py.gotSpec.Env)
			assert.Equal(t,
				"--hf-path mistralai/Mistral-7B-v0.1 --mlx-path /lab/workspace/models/run1 -q --q-bits 8",
				strings.Join(py.gotSpec.Args, " "))
		})
	}
}
