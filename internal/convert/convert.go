// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert defines the converter capability used by the exporter and
// its MLX implementation.
package convert

import "context"

// Request describes one conversion.
type Request struct {
	// Source is the model identifier handed to the converter.
	Source string
	// Target is the directory the converted model is written to.
	Target string
	// QuantBits is the quantization bit-width, as text.
	QuantBits string
}

// Result is the outcome of a converter process that ran to completion.
type Result struct {
	ExitCode int
	Output   []byte
}

// Succeeded reports whether the converter exited with status 0.
func (r Result) Succeeded() bool {
	return r.ExitCode == 0
}

// Converter transforms a source model into a converted model directory.
// Convert returns an error only when the conversion could not be started;
// a converter that ran and failed reports a non-zero Result.ExitCode.
type Converter interface {
	Convert(ctx context.Context, req Request) (Result, error)
}
