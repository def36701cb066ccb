package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count [blueprint...]",
		Short: "Print how many files the blueprints generate",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := a.blueprintPaths(args)
			if err != nil {
				return err
			}
			m, closeLoader, err := a.model(cmd.Context(), paths)
			if err != nil {
				return err
			}
			defer closeLoader()
			fmt.Fprintln(cmd.OutOrStdout(), m.CountArtifacts())
			return nil
		},
	}
}
