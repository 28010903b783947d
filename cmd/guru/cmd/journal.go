package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/msto63/guru/internal/halt"
	"github.com/msto63/guru/internal/journal"
)

var (
	journalDB     string
	journalKind   string
	journalLimit  int
	journalSince  time.Duration
	journalFrames bool
	journalDays   int
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6"))
	kindStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B"))
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Durchsucht das Halt-Journal",
	Long: `Zeigt die im Halt-Journal (SQLite) gespeicherten Halts an.

Das Journal wird mit journal.enabled = true in der Konfiguration aktiviert.`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "Listet die letzten Halts",
	RunE: withJournal(func(ctx context.Context, j *journal.Journal) error {
		filter := journal.Filter{
			Kind:  halt.Kind(journalKind),
			Limit: journalLimit,
		}
		if journalSince > 0 {
			filter.StartTime = time.Now().Add(-journalSince)
		}

		entries, err := j.Query(ctx, filter)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("Keine Halts gefunden.")
			return nil
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("%-19s  %-8s  %-12s  %s", "Zeit", "Art", "Programm", "Meldung")))
		for _, e := range entries {
			fmt.Printf("%-19s  %s  %-12s  %s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				kindStyle.Render(fmt.Sprintf("%-8s", e.Kind)),
				e.Program,
				e.Message,
			)
			if journalFrames {
				for i, f := range e.Frames {
					fmt.Println(dimStyle.Render(fmt.Sprintf("    %d: %s", len(e.Frames)-1-i, f)))
				}
			}
		}
		return nil
	}),
}

var journalStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Zeigt die Anzahl der Halts pro Art",
	RunE: withJournal(func(ctx context.Context, j *journal.Journal) error {
		stats, err := j.Stats(ctx)
		if err != nil {
			return err
		}

		kinds := make([]string, 0, len(stats))
		var total int64
		for k, n := range stats {
			kinds = append(kinds, string(k))
			total += n
		}
		sort.Strings(kinds)

		fmt.Println(headerStyle.Render("Halt-Journal"))
		fmt.Println(strings.Repeat("=", 12))
		for _, k := range kinds {
			fmt.Printf("  %-8s %d\n", k, stats[halt.Kind(k)])
		}
		fmt.Printf("  %-8s %d\n", "gesamt", total)
		return nil
	}),
}

var journalPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Loescht alte Halts",
	RunE: withJournal(func(ctx context.Context, j *journal.Journal) error {
		n, err := j.Prune(ctx, time.Duration(journalDays)*24*time.Hour)
		if err != nil {
			return err
		}
		fmt.Printf("%d Halts geloescht.\n", n)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd, journalStatsCmd, journalPruneCmd)

	journalCmd.PersistentFlags().StringVar(&journalDB, "db", "", "Journal-Datenbank (default: journal.path aus der Konfiguration)")

	journalListCmd.Flags().StringVar(&journalKind, "kind", "", "Nur diese Art: halt, assert, cascade, signal, panic, error")
	journalListCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "Maximale Anzahl")
	journalListCmd.Flags().DurationVar(&journalSince, "since", 0, "Nur Halts der letzten Zeitspanne (z.B. 24h)")
	journalListCmd.Flags().BoolVar(&journalFrames, "frames", false, "Stack-Trace anzeigen")

	journalPruneCmd.Flags().IntVar(&journalDays, "older-than", 30, "Alter in Tagen")
}

// withJournal opens the configured journal for fn
func withJournal(fn func(ctx context.Context, j *journal.Journal) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			printError("Konfiguration", err)
			return err
		}

		path := cfg.Journal.Path
		if journalDB != "" {
			path = journalDB
		}

		j, err := journal.Open(journal.Config{Path: path})
		if err != nil {
			printError("Journal", err)
			return err
		}
		defer j.Close()

		newLogger(cfg).Debug("journal opened", "path", path)
		return fn(cmd.Context(), j)
	}
}
