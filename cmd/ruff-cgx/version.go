package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fork-tongue/ruff-cgx/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Println(version.GetFullVersion())
	},
}
