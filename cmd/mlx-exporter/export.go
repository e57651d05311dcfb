// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mlx-exporter/internal/convert"
	"github.com/pdiddy/mlx-exporter/internal/export"
	"github.com/pdiddy/mlx-exporter/internal/jobstore"
	"github.com/pdiddy/mlx-exporter/internal/python"
	"github.com/pdiddy/mlx-exporter/internal/secrets"
	"github.com/pdiddy/mlx-exporter/internal/workspace"
	"github.com/pdiddy/mlx-exporter/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Convert a model to MLX format (same as running with no subcommand)",
	Long: `Export creates <root>/workspace/models/<output_dir>, runs mlx_lm.convert
into it, and on success writes info.json and sets output_model_id,
output_model_name, output_model_architecture and output_model_path on the
job's job_data. The output directory must not already exist.

A converter failure is reported and exits 0 unless --strict is set.`,
	Args:               cobra.ArbitraryArgs,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE:               runExport,
}

func init() {
	addExportFlags(exportCmd)
	rootCmd.AddCommand(exportCmd)
}

func addExportFlags(cmd *cobra.Command) {
	cmd.Flags().String("output_dir", "", "directory to save the model in, under workspace/models/")
	cmd.Flags().String("model_name", types.DefaultModelName, "name of the model to export")
	cmd.Flags().String("model_architecture", types.DefaultModelArchitecture, "architecture of the model to export")
	cmd.Flags().String("output_model_id", types.DefaultOutputModelID, "ID of the exported model")
	cmd.Flags().String("quant_bits", types.DefaultQuantBits, "bits per weight for quantization")
	cmd.Flags().String("job_id", "", "job to update in the database")
	cmd.Flags().Bool("strict", false, "exit non-zero when the converter fails")
}

func runExport(cmd *cobra.Command, args []string) error {
	// Root and export each own a --strict flag; bind the one being run.
	viper.BindPFlag("strict", cmd.Flags().Lookup("strict"))
	cfg := exportConfig()

	ws, err := workspace.New(cfg.RootDir)
	if err != nil {
		return err
	}

	store, err := jobstore.Open(ws.DBPath())
	if err != nil {
		return err
	}
	defer store.Close()

	params := exportParams(cmd)

	py, err := python.Detect(cfg.Python.Binary)
	if err != nil {
		return err
	}
	if err := py.ModuleExists("mlx_lm"); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	conv := convert.NewMLXConverter(py, cfg.Python.PluginDir, cfg.Python.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	outcome, err := export.NewRunner(ws, conv, store, cmd.OutOrStdout()).Run(ctx, params)
	if err != nil {
		return err
	}
	if !outcome.Converted && cfg.Strict {
		return fmt.Errorf("mlx_lm.convert exited with status %d", outcome.ExitCode)
	}
	return nil
}

// --- shared helpers ---

func exportConfig() types.ExportConfig {
	pluginDir := viper.GetString("plugin_dir")
	if pluginDir == "" {
		pluginDir = executableDir()
	}

	return types.ExportConfig{
		RootDir: viper.GetString("root"),
		Python: types.PythonConfig{
			Binary:    viper.GetString("python"),
			PluginDir: pluginDir,
			Env:       secrets.Env(loadedSecrets),
		},
		Strict: viper.GetBool("strict"),
	}
}

func exportParams(cmd *cobra.Command) types.ExportParams {
	outputDir, _ := cmd.Flags().GetString("output_dir")
	modelName, _ := cmd.Flags().GetString("model_name")
	modelArch, _ := cmd.Flags().GetString("model_architecture")
	outputModelID, _ := cmd.Flags().GetString("output_model_id")
	quantBits, _ := cmd.Flags().GetString("quant_bits")
	jobID, _ := cmd.Flags().GetString("job_id")

	return types.ExportParams{
		OutputDir:         outputDir,
		ModelName:         modelName,
		ModelArchitecture: modelArch,
		OutputModelID:     outputModelID,
		QuantBits:         quantBits,
		JobID:             jobID,
	}
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}
