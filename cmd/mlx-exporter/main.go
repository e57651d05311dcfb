// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mlx-exporter CLI.
// Invoked without a subcommand it runs an export, which is how the host
// application launches plugins:
//
//	mlx-exporter --model_name mistralai/Mistral-7B-v0.1 --output_dir run1 \
//	    --output_model_id MyModel --quant_bits 4 --job_id 12
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mlx-exporter/internal/secrets"
	"github.com/pdiddy/mlx-exporter/internal/workspace"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the mlx-exporter CLI.
var rootCmd = &cobra.Command{
	Use:   "mlx-exporter",
	Short: "Export a model to MLX format and record it on its job",
	Long: `mlx-exporter converts a Hugging Face model to a quantized MLX model with
mlx_lm.convert, writes an info.json descriptor next to the converted
weights, and records the output model on the job that requested it.

The workspace root is read from LLM_LAB_ROOT_PATH. Models are written to
<root>/workspace/models/<output_dir> and the job table lives in
<root>/workspace/llmlab.sqlite3.

Unknown flags are ignored so the host can pass its full plugin parameter set.`,
	Args:               cobra.ArbitraryArgs,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	SilenceUsage:       true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
	RunE: runExport,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./mlx-exporter.yaml or ~/.config/mlx-exporter/mlx-exporter.yaml)")
	rootCmd.PersistentFlags().String("root", "", "workspace root (overrides "+workspace.RootEnv+")")
	rootCmd.PersistentFlags().String("python", "", "python interpreter used to run mlx_lm (default: python, then python3)")
	rootCmd.PersistentFlags().String("plugin_dir", "", "working directory for the converter (default: directory of this executable)")

	viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	viper.BindPFlag("python", rootCmd.PersistentFlags().Lookup("python"))
	viper.BindPFlag("plugin_dir", rootCmd.PersistentFlags().Lookup("plugin_dir"))

	addExportFlags(rootCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mlx-exporter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mlx-exporter"))
		}
	}

	viper.SetEnvPrefix("MLX_EXPORTER")
	viper.AutomaticEnv()
	viper.BindEnv("root", workspace.RootEnv)
	viper.SetDefault("python", "python")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
