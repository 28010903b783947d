package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/msto63/guru/pkg/core/version"
)

var (
	GitCommit = "development"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Zeigt die Version an",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("guru v%s\n", version.Guru)
		fmt.Printf("  Halt-Bildschirm: v%s\n", version.ComponentVersion("haltscreen"))
		fmt.Printf("  Log Viewer:      v%s\n", version.ComponentVersion("logviewer"))
		fmt.Printf("  Journal:         v%s (Schema %d)\n", version.ComponentVersion("journal"), version.JournalSchema)
		fmt.Printf("  Git Commit: %s\n", GitCommit)
		fmt.Printf("  Build Date: %s\n", BuildDate)
		fmt.Printf("  Go Version: %s\n", runtime.Version())
		fmt.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
