package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/guru/pkg/core/config"
	"github.com/msto63/guru/pkg/guru"
)

var (
	demoPresenter string
	demoLogPath   string
	demoInterval  time.Duration
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Loest einen Halt zu Demonstrationszwecken aus",
	Long: `Startet einen Reporter mit der aktuellen Konfiguration und loest
einen Halt aus. Das Programm endet immer mit Exit-Code 1.

Szenarien:
  cascade  - Meldet nicht-fatale Warnungen bis zur Fehlerkaskade
  assert   - Fehlgeschlagene Zusicherung
  halt     - Direkter Halt mit Meldung
  panic    - Laufzeit-Panic, abgefangen durch Recover
  signal   - Sendet SIGFPE an den eigenen Prozess`,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.PersistentFlags().StringVar(&demoPresenter, "presenter", "", "Halt-Bildschirm: auto, tui, console, none")
	demoCmd.PersistentFlags().StringVar(&demoLogPath, "log", "", "Log-Datei (default: log.path aus der Konfiguration)")

	cascadeCmd.Flags().DurationVar(&demoInterval, "interval", 100*time.Millisecond, "Abstand zwischen zwei Meldungen")

	demoCmd.AddCommand(cascadeCmd, assertCmd, haltCmd, panicCmd, signalCmd)
}

var cascadeCmd = &cobra.Command{
	Use:   "cascade",
	Short: "Meldet Warnungen bis zur Fehlerkaskade",
	RunE: withReporter(func(r *guru.Reporter) error {
		defer r.Enter("demo.cascade")()
		for i := 1; ; i++ {
			r.ReportNonFatalf("disk slow (%d)", guru.Warn, i)
			time.Sleep(demoInterval)
		}
	}),
}

var assertCmd = &cobra.Command{
	Use:   "assert",
	Short: "Fehlgeschlagene Zusicherung",
	RunE: withReporter(func(r *guru.Reporter) error {
		defer r.Enter("demo.assert")()
		var player interface{}
		r.AssertOrHalt(player != nil, "No player entity.")
		return nil
	}),
}

var haltCmd = &cobra.Command{
	Use:   "halt [meldung]",
	Short: "Direkter Halt mit Meldung",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg := "Demo halt requested."
		if len(args) == 1 {
			msg = args[0]
		}
		return withReporter(func(r *guru.Reporter) error {
			defer r.Enter("demo.halt")()
			r.Halt(msg)
			return nil
		})(cmd, args)
	},
}

var panicCmd = &cobra.Command{
	Use:   "panic",
	Short: "Laufzeit-Panic, abgefangen durch Recover",
	RunE: withReporter(func(r *guru.Reporter) error {
		defer r.Enter("demo.panic")()
		defer r.Recover()
		var table map[string]int
		table["boom"]++
		return nil
	}),
}

var signalCmd = &cobra.Command{
	Use:   "signal",
	Short: "Sendet SIGFPE an den eigenen Prozess",
	RunE: withReporter(func(r *guru.Reporter) error {
		defer r.Enter("demo.signal")()
		if !r.SignalsEnabled() {
			return fmt.Errorf("Signalbehandlung ist deaktiviert (signals.disabled)")
		}
		if err := raiseFPE(); err != nil {
			return err
		}
		// The signal bridge halts from its own goroutine and exits the
		// process; park here until it does.
		<-r.Done()
		return nil
	}),
}

// withReporter builds a reporter from the configuration, opens its log and
// runs fn with the console marked ready.
func withReporter(fn func(r *guru.Reporter) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			printError("Konfiguration", err)
			return err
		}
		if demoPresenter != "" {
			cfg.Halt.Presenter = demoPresenter
		}
		if demoLogPath != "" {
			cfg.Log.Path = demoLogPath
		}
		if err := cfg.Validate(); err != nil {
			printError("Konfiguration", err)
			return err
		}

		logger := newLogger(cfg)
		r, err := guru.NewFromConfig(cfg, guru.WithLogger(logger))
		if err != nil {
			printError("Reporter", err)
			return err
		}
		if err := r.Open(""); err != nil {
			printError("Log-Datei", err)
			return err
		}
		defer r.Close()

		r.ConsoleReady(cfg.Halt.Presenter != config.PresenterNone)
		logger.Info("demo started", "log", r.LogPath(), "presenter", cfg.Halt.Presenter)

		defer r.Enter("main")()
		return fn(r)
	}
}
