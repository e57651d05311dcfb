// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

const (
	// ModelIDPrefix namespaces every exported model's unique ID.
	ModelIDPrefix = "TransformerLab"

	// ArchitectureMLX is the architecture tag recorded for converted models.
	ArchitectureMLX = "MLX"

	// DescriptorFile is the sidecar filename written into the output directory.
	DescriptorFile = "info.json"
)

// ModelInfo is the descriptive part of a model descriptor. The host
// application reads it both at the top level and nested under json_data.
type ModelInfo struct {
	UniqueID         string `json:"uniqueID"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Architecture     string `json:"architecture"`
	QuantizationBits string `json:"quantization_bits"`
	HuggingfaceRepo  string `json:"huggingface_repo"`
}

// ModelDescriptor is one entry of info.json.
type ModelDescriptor struct {
	ModelID       string `json:"model_id"`
	ModelFilename string `json:"model_filename"`
	LocalModel    bool   `json:"local_model"`

	ModelInfo

	JSONData ModelInfo `json:"json_data"`
}

// UniqueModelID returns the namespaced identifier for an exported model
// (e.g. "TransformerLab/MyModel").
func UniqueModelID(outputModelID string) string {
	return fmt.Sprintf("%s/%s", ModelIDPrefix, outputModelID)
}

// NewModelDescriptor builds the descriptor for a model converted from
// sourceModel into outputDir.
func NewModelDescriptor(sourceModel, outputDir, outputModelID, quantBits string) ModelDescriptor {
	info := ModelInfo{
		UniqueID:         UniqueModelID(outputModelID),
		Name:             outputModelID,
		Description:      fmt.Sprintf("An MLX modeled generated by TransformerLab based on %s", sourceModel),
		Architecture:     ArchitectureMLX,
		QuantizationBits: quantBits,
		HuggingfaceRepo:  "",
	}
	return ModelDescriptor{
		ModelID:       info.UniqueID,
		ModelFilename: outputDir,
		LocalModel:    true,
		ModelInfo:     info,
		JSONData:      info,
	}
}
