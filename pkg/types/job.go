// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Keys written into a job's job_data object after a successful export.
const (
	JobOutputModelID           = "output_model_id"
	JobOutputModelName         = "output_model_name"
	JobOutputModelArchitecture = "output_model_architecture"
	JobOutputModelPath         = "output_model_path"
)

// ExportParams are the invocation parameters of one conversion run.
type ExportParams struct {
	// OutputDir is the directory name created under workspace/models/.
	OutputDir string

	// ModelName is the source model passed to the converter (e.g. a
	// Hugging Face repo such as "mistralai/Mistral-7B-v0.1").
	ModelName string

	// ModelArchitecture is recorded but does not select conversion behavior.
	ModelArchitecture string

	// OutputModelID is the display name and suffix of the unique ID.
	OutputModelID string

	// QuantBits is the quantization bit-width, passed through as text.
	QuantBits string

	// JobID keys the job store row to update.
	JobID string
}

// Parameter defaults.
const (
	DefaultModelName         = "gpt-j-6b"
	DefaultModelArchitecture = "hf-causal"
	DefaultOutputModelID     = "New Model"
	DefaultQuantBits         = "4"
)
