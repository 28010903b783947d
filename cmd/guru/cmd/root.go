package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/guru/pkg/core/config"
	"github.com/msto63/guru/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "guru",
	Short: "guru - Fehlerberichte und Halt-Bildschirm",
	Long: `guru protokolliert fatale und nicht-fatale Fehler, erkennt
Fehlerkaskaden und haelt das Programm mit einem Halt-Bildschirm an.

Befehle:
  demo     - Loest einen Halt zu Demonstrationszwecken aus
  logs     - Zeigt eine guru Log-Datei an
  journal  - Durchsucht das Halt-Journal
  version  - Zeigt die Version an`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: $GURU_CONFIG oder ./configs/guru.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
}

// newLogger returns the diagnostic logger for CLI commands
func newLogger(cfg *config.Config) *logging.Logger {
	lc := logging.DefaultLoggerConfig("guru")
	if cfg != nil {
		lc.Level = cfg.Log.Level
		lc.Format = cfg.Log.Format
	}
	if verbose {
		lc.Level = "debug"
	}
	return logging.NewLogger(lc)
}

// loadConfig loads --config, then $GURU_CONFIG and the default locations.
// Without any config file the defaults are used.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		if os.Getenv("GURU_CONFIG") != "" {
			return nil, err
		}
		newLogger(nil).Debug("no config file, using defaults", "reason", err)
		return config.Default(), nil
	}
	return cfg, nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Fehler: %s: %v\n", msg, err)
}
