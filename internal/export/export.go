// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export runs one model conversion job: it creates the output
// directory, invokes the converter, writes the model descriptor, and
// records the output model on the job row.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/mlx-exporter/internal/convert"
	"github.com/pdiddy/mlx-exporter/internal/jobstore"
	"github.com/pdiddy/mlx-exporter/internal/workspace"
	"github.com/pdiddy/mlx-exporter/pkg/types"
)

// JobStore is the part of the job database the runner needs.
type JobStore interface {
	MergeJobData(ctx context.Context, id string, fields map[string]any) error
}

// Outcome reports what a run did.
type Outcome struct {
	// InputModelID is the last path segment of the source model name.
	InputModelID string
	OutputPath   string
	// Converted is true when the converter exited with status 0.
	Converted bool
	ExitCode  int
	// JobUpdated is false when no job row matched the job id.
	JobUpdated bool
}

// Runner wires a workspace, a converter and a job store together.
type Runner struct {
	ws        workspace.Workspace
	converter convert.Converter
	jobs      JobStore
	out       io.Writer
}

// NewRunner creates a Runner. Progress messages are written to out.
func NewRunner(ws workspace.Workspace, c convert.Converter, jobs JobStore, out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{ws: ws, converter: c, jobs: jobs, out: out}
}

// Run executes one export. Errors are returned for failures that stop the
// run before or after conversion (existing output directory, converter
// could not start, descriptor or job update failure). A converter that
// exits non-zero is not an error: Outcome.Converted is false and nothing
// further is written.
func (r *Runner) Run(ctx context.Context, p types.ExportParams) (Outcome, error) {
	outcome := Outcome{InputModelID: InputModelID(p.ModelName)}

	outputPath, err := r.ws.CreateOutputDir(p.OutputDir)
	if err != nil {
		return outcome, err
	}
	outcome.OutputPath = outputPath

	fmt.Fprintln(r.out, "Exporting", p.ModelName, "to MLX format in", outputPath)

	res, err := r.converter.Convert(ctx, convert.Request{
		Source:    p.ModelName,
		Target:    outputPath,
		QuantBits: p.QuantBits,
	})
	if err != nil {
		return outcome, err
	}
	outcome.ExitCode = res.ExitCode

	if !res.Succeeded() {
		fmt.Fprintln(r.out, "Export to MLX failed. Return code:", res.ExitCode)
		if len(res.Output) > 0 {
			r.out.Write(res.Output)
			if res.Output[len(res.Output)-1] != '\n' {
				fmt.Fprintln(r.out)
			}
		}
		return outcome, nil
	}
	outcome.Converted = true

	desc := types.NewModelDescriptor(p.ModelName, p.OutputDir, p.OutputModelID, p.QuantBits)
	if err := WriteDescriptor(outputPath, desc); err != nil {
		return outcome, err
	}

	err = r.jobs.MergeJobData(ctx, p.JobID, map[string]any{
		types.JobOutputModelID:           p.OutputModelID,
		types.JobOutputModelName:         p.OutputModelID,
		types.JobOutputModelArchitecture: types.ArchitectureMLX,
		types.JobOutputModelPath:         outputPath,
	})
	switch {
	case errors.Is(err, jobstore.ErrJobNotFound):
		fmt.Fprintln(r.out, "Failed to update job status. No job with id", p.JobID)
	case err != nil:
		return outcome, fmt.Errorf("recording output model on job %s: %w", p.JobID, err)
	default:
		outcome.JobUpdated = true
	}

	fmt.Fprintln(r.out, "Export to MLX completed successfully")
	return outcome, nil
}

// WriteDescriptor writes info.json into dir as a one-element JSON array,
// replacing any existing file.
func WriteDescriptor(dir string, desc types.ModelDescriptor) error {
	data, err := json.Marshal([]types.ModelDescriptor{desc})
	if err != nil {
		return fmt.Errorf("encoding model descriptor: %w", err)
	}
	path := filepath.Join(dir, types.DescriptorFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// InputModelID strips any "org/" style prefix from a model name.
func InputModelID(modelName string) string {
	if i := strings.LastIndex(modelName, "/"); i >= 0 {
		return modelName[i+1:]
	}
	return modelName
}
