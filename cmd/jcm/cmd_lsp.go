package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/jcm/lsp"
)

const version = "0.1.0"

func newLSPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Serve diagnostics for blueprints and Java sources over stdio, and
complete class names inside blueprints.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, closeLoader, err := a.cfg.Loader()
			if err != nil {
				return err
			}
			defer closeLoader()
			return lsp.NewServer(version, loader).RunStdio()
		},
	}
}
