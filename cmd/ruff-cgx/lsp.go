package main

import (
	"github.com/spf13/cobra"

	cgx "github.com/fork-tongue/ruff-cgx"
	"github.com/fork-tongue/ruff-cgx/lsp"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run the CGX language server over stdio",
	RunE:  runLSP,
}

func runLSP(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	server := lsp.NewServer(cgx.New(cfg))
	return server.RunStdio()
}
