package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/avolkov/tessera/internal/model"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Tessera configuration",
	Long: `Manage Tessera configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (TESSERA_*)
3. Config file (~/.tessera/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		if configFile := viper.ConfigFileUsed(); configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}
		fmt.Println(string(yamlData))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.tessera/config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		configDir := home + "/.tessera"
		configPath := configDir + "/config.yaml"

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s\nUse 'tessera config show' to view it, or delete it first to recreate", configPath)
		}

		if err := os.MkdirAll(configDir, 0o755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}

		yamlData, err := yaml.Marshal(model.DefaultConfig())
		if err != nil {
			return fmt.Errorf("error marshaling defaults: %w", err)
		}

		header := `# Tessera Configuration File
#
# Configuration hierarchy (highest to lowest priority):
#   1. CLI flags
#   2. Environment variables (TESSERA_*, OPENAI_API_KEY)
#   3. This config file
#   4. Built-in defaults

`
		if err := os.WriteFile(configPath, append([]byte(header), yamlData...), 0o644); err != nil {
			return fmt.Errorf("error writing config file: %w", err)
		}

		fmt.Printf("Created %s\n", configPath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
