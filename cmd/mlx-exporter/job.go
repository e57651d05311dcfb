// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mlx-exporter/internal/jobstore"
	"github.com/pdiddy/mlx-exporter/internal/workspace"
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Inspect job records in the workspace database",
}

var jobShowCmd = &cobra.Command{
	Use:   "show <job-id>",
	Short: "Print a job's job_data",
	Long: `Show prints the job_data object of a job as YAML, or as JSON with
--json. Use it to check the output_model_* fields after an export.`,
	Args: cobra.ExactArgs(1),
	RunE: runJobShow,
}

func runJobShow(cmd *cobra.Command, args []string) error {
	ws, err := workspace.New(viper.GetString("root"))
	if err != nil {
		return err
	}
	store, err := jobstore.Open(ws.DBPath())
	if err != nil {
		return err
	}
	defer store.Close()

	data, err := store.JobData(context.Background(), args[0])
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatJobData(cmd.OutOrStdout(), data, jsonOutput)
}

func formatJobData(w io.Writer, data map[string]any, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(plainNumbers(data)); err != nil {
		return err
	}
	return enc.Close()
}

// plainNumbers replaces json.Number values so YAML renders them as
// numbers instead of quoted strings.
func plainNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = plainNumbers(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainNumbers(e)
		}
		return out
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	}
	return v
}

func init() {
	jobShowCmd.Flags().Bool("json", false, "output job_data as JSON")

	jobCmd.AddCommand(jobShowCmd)
	rootCmd.AddCommand(jobCmd)
}
