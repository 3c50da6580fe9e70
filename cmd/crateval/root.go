package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes: 0 valid, 1 invalid, 2 anything that kept the run from
// producing a verdict.
const (
	exitValid   = 0
	exitInvalid = 1
	exitError   = 2
)

// errTargetInvalid signals a completed run with a failing verdict.
var errTargetInvalid = errors.New("target does not conform")

var (
	cfgFile string
	verbose bool
)

// rootCmd is the application entry point.
var rootCmd = &cobra.Command{
	Use:   "crateval",
	Short: "Validate structured data packages against conformance profiles",
	Long: `Crateval checks a data package and its metadata descriptor against
hierarchical conformance profiles. Profiles declare requirements at
RFC 2119 levels; crateval runs their checks at a chosen severity
threshold and reports the issues it finds.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
	SilenceUsage: true,
}

// Execute runs the root command and maps the outcome to an exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errTargetInvalid) {
			os.Exit(exitInvalid)
		}
		os.Exit(exitError)
	}
	os.Exit(exitValid)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.crateval.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// initConfig loads configuration from the config file and environment.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			slog.Error("failed to find home directory", "error", err)
			os.Exit(exitError)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".crateval")
	}

	viper.SetEnvPrefix("CRATEVAL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "file", viper.ConfigFileUsed())
	}
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
