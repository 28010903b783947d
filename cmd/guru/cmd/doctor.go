package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/guru/internal/journal"
	"github.com/msto63/guru/internal/signals"
	"github.com/msto63/guru/pkg/core/config"
	"github.com/msto63/guru/pkg/core/health"
	"github.com/msto63/guru/pkg/core/version"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Prueft die Umgebung fuer guru",
	Long: `Prueft, ob guru in der aktuellen Umgebung vollstaendig arbeiten kann:

  log       - Log-Verzeichnis beschreibbar
  journal   - Journal-Datenbank oeffnet (falls aktiviert)
  terminal  - Terminal fuer den Halt-Bildschirm vorhanden
  signals   - Fatale Signale werden abgefangen`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("Konfiguration", err)
		return err
	}

	report := newDoctorRegistry(cfg).CheckWithTimeout(10 * time.Second)

	fmt.Println(headerStyle.Render("guru doctor"))
	fmt.Println("===========")
	for _, c := range report.Checks {
		icon := "[+]"
		switch c.Status {
		case health.StatusDegraded:
			icon = "[~]"
		case health.StatusUnhealthy:
			icon = "[-]"
		}
		fmt.Printf("  %s %-9s %s\n", icon, c.Name, c.Message)
	}
	fmt.Println()
	fmt.Println(report.String())

	if report.Status == health.StatusUnhealthy {
		return fmt.Errorf("%d checks failed", countStatus(report, health.StatusUnhealthy))
	}
	return nil
}

func newDoctorRegistry(cfg *config.Config) *health.Registry {
	registry := health.NewRegistry("guru", version.Guru)

	registry.Register(health.WritableCheck("log", cfg.Log.Path))

	if cfg.Halt.Presenter == config.PresenterAuto || cfg.Halt.Presenter == config.PresenterTUI {
		registry.Register(health.TerminalCheck("terminal", os.Stdout))
	}

	registry.RegisterFunc("signals", func(ctx context.Context) health.CheckResult {
		n := len(signals.Signals())
		switch {
		case cfg.Signals.Disabled:
			return health.CheckResult{Status: health.StatusDegraded, Message: "disabled in config"}
		case n == 0:
			return health.CheckResult{Status: health.StatusDegraded, Message: "no fatal signals on this platform"}
		default:
			return health.CheckResult{Status: health.StatusHealthy, Message: fmt.Sprintf("%d signals hooked", n)}
		}
	})

	if cfg.Journal.Enabled {
		registry.RegisterFunc("journal", func(ctx context.Context) health.CheckResult {
			j, err := journal.Open(journal.Config{Path: cfg.Journal.Path})
			if err != nil {
				return health.CheckResult{Status: health.StatusUnhealthy, Message: err.Error()}
			}
			defer j.Close()

			v, err := j.SchemaVersion()
			if err != nil {
				return health.CheckResult{Status: health.StatusUnhealthy, Message: err.Error()}
			}
			return health.CheckResult{
				Status:  health.StatusHealthy,
				Message: fmt.Sprintf("%s (schema %d)", cfg.Journal.Path, v),
			}
		})
	}

	return registry
}

func countStatus(report *health.Report, status health.Status) int {
	n := 0
	for _, c := range report.Checks {
		if c.Status == status {
			n++
		}
	}
	return n
}
