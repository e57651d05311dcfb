// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatJobData(t *testing.T) {
	data := map[string]any{
		"output_model_id": "MyModel",
		"step":            json.Number("42"),
		"config":          map[string]any{"lr": json.Number("0.5")},
	}

	var yamlOut bytes.Buffer
	require.NoError(t, formatJobData(&yamlOut, data, false))
	assert.Contains(t, yamlOut.String(), "output_model_id: MyModel")
	assert.Contains(t, yamlOut.String(), "step: 42")
	assert.Contains(t, yamlOut.String(), "lr: 0.5")

	var jsonOut bytes.Buffer
	require.NoError(t, formatJobData(&jsonOut, data, true))
	assert.Contains(t, jsonOut.String(), `"step": 42`)
	assert.Contains(t, jsonOut.String(), `"output_model_id": "MyModel"`)
}

func TestExportParamsDefaults(t *testing.T) {
	cmd := exportCmd
	require.NoError(t, cmd.ParseFlags([]string{"--output_dir", "run1", "--job_id", "3", "--unknown", "x"}))

	p := exportParams(cmd)
	assert.Equal(t, "run1", p.OutputDir)
	assert.Equal(t, "3", p.JobID)
	assert.Equal(t, "gpt-j-6b", p.ModelName)
	assert.Equal(t, "hf-causal", p.ModelArchitecture)
	assert.Equal(t, "New Model", p.OutputModelID)
	assert.Equal(t, "4", p.QuantBits)
}
