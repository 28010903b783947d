package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/guru/internal/tui/logviewer"
	"github.com/msto63/guru/pkg/core/logging"
)

var (
	logsMaxLines int
	logsSearch   string
	logsNoWatch  bool
)

var logsCmd = &cobra.Command{
	Use:     "logs [datei]",
	Aliases: []string{"logviewer", "log"},
	Short:   "Zeigt eine guru Log-Datei an",
	Long: `Startet den interaktiven Log Viewer fuer eine guru Log-Datei.

Ohne Angabe einer Datei wird log.path aus der Konfiguration verwendet.
Die Datei wird beobachtet und bei jeder Aenderung neu geladen.

Tastenkuerzel:
  1-4         Schwere togglen (1=INFO, 2=WARN, 3=ERROR, 4=CRITICAL)
  0           Alle anzeigen
  p / Space   Pause/Resume
  r           Neu laden
  a           Auto-Scroll togglen
  g / G       Zum Anfang / Ende springen
  PgUp/PgDn   Scrollen
  q / Esc     Beenden`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogs,
}

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntVar(&logsMaxLines, "max-lines", 1000, "Maximale Anzahl der angezeigten Zeilen")
	logsCmd.Flags().StringVar(&logsSearch, "search", "", "Nur Zeilen mit diesem Text anzeigen")
	logsCmd.Flags().BoolVar(&logsNoWatch, "no-watch", false, "Datei nicht beobachten")
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("Konfiguration", err)
		return err
	}

	path := cfg.Log.Path
	if len(args) == 1 {
		path = args[0]
	}

	// The viewer owns the terminal, so diagnostics only with --verbose
	var logger *logging.Logger
	if verbose {
		logger = newLogger(cfg)
	}

	return logviewer.Run(logviewer.Config{
		Path:     path,
		MaxLines: logsMaxLines,
		Search:   logsSearch,
		Logger:   logger,
	}, !logsNoWatch)
}
