package main

import (
	"os"

	"github.com/msto63/guru/cmd/guru/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
