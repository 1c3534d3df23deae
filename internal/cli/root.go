// Package cli implements the tessera command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/avolkov/tessera/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tessera",
	Short: "Tessera - verified-fragment reconstruction for evidentiary records",
	Long: `Tessera reconstructs investigative pictures from fragmentary evidence.

Raw evidentiary records are verified (is it real, is it true, is it
needed), compressed into components with engineered edges, and
assembled into a three-dimensional picture with explicit gaps,
conclusions and a court-readiness score.

Tessera describes how evidence fits together. It never asserts guilt,
and every court-ready picture still requires human review.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("tessera v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.tessera/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(home + "/.tessera")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match TESSERA_*
	viper.SetEnvPrefix("TESSERA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig layers the config file and environment over the defaults.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid configuration, using defaults: %v\n", err)
		cfg = model.DefaultConfig()
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	return cfg
}

// newLogger builds the zap logger selected by configuration.
func newLogger(cfg model.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
