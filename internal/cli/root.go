// Package cli wires the seocontent commands.
package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"seo-content-go/internal/config"
	"seo-content-go/pkg/logger"
)

const defaultEnvFile = ".env"

var (
	configPath string
	envFile    string
	debug      bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "seocontent",
	Short: "Build SEO category content from keyword exports, shop pages and SERPs",
	Long: `seocontent normalizes the inputs of a category content brief: keyword exports
from SEO tools, product names from e-commerce category pages and competitor results
from search engines. It assembles the generation prompt and extracts the structured
fields from the generated text.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", defaultEnvFile, "dotenv file with SEOCONTENT_* overrides")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig runs before every command. Variables already set in the environment
// win over the env file; a missing default env file is not an error.
func loadConfig(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || cmd.Flags().Changed("env-file") {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	}

	loaded, err := config.NewManager().Load(configPath)
	if err != nil {
		return err
	}
	if debug {
		loaded.Logger.Level = "debug"
	}
	logger.SetLogger(logger.New(loaded.Logger))
	cfg = loaded
	return nil
}
