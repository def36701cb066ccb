package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jcm/blueprint"
	"github.com/dhamidi/jcm/config"
)

func newGenCmd(a *app) *cobra.Command {
	var (
		dryRun bool
		stdout bool
		txtar  bool
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "gen [blueprint...]",
		Short: "Generate Java sources from blueprints",
		Long: `Generate Java sources and resources from blueprint files.

Blueprints are taken from the arguments, or from the "blueprints" list of
the config file. Output goes to the configured directories or zip archive.

Examples:
  jcm gen model.yaml -o src/main/java
  jcm gen --dry-run              # list what would be written
  jcm gen --txtar > out.txtar    # everything as one txtar archive
  jcm gen --watch                # regenerate when blueprints or config change`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if countTrue(dryRun, stdout, txtar) > 1 {
				return errors.New("--dry-run, --stdout and --txtar are exclusive")
			}
			mode := toFiles
			switch {
			case dryRun:
				mode = toListing
			case stdout:
				mode = toStream
			case txtar:
				mode = toTxtar
			}
			paths, err := a.blueprintPaths(args)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			err = a.generate(ctx, cmd.OutOrStdout(), paths, mode)
			if !watch {
				return err
			}
			if err != nil {
				log.Errorf("%s", err)
			}
			return watchAndGenerate(ctx, a, cmd, paths, mode)
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "list the files that would be written")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print every generated file to standard output")
	cmd.Flags().BoolVar(&txtar, "txtar", false, "print every generated file as a txtar archive")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "regenerate when a blueprint or the config file changes")

	return cmd
}

func countTrue(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

// watchAndGenerate regenerates on every change until interrupted.
func watchAndGenerate(ctx context.Context, a *app, cmd *cobra.Command, paths []string, mode outputMode) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	regenerate := func() {
		if err := a.generate(ctx, cmd.OutOrStdout(), paths, mode); err != nil {
			log.Errorf("%s", err)
			return
		}
		log.Info("regenerated")
	}
	if a.v.ConfigFileUsed() != "" {
		config.Watch(a.v, func(c *config.Config, err error) {
			if err != nil {
				log.Errorf("keeping previous config: %s", err)
				return
			}
			a.setConfig(c)
			regenerate()
		})
	}
	log.Infof("watching %d blueprints", len(paths))
	return blueprint.Watch(ctx, paths, 100*time.Millisecond, func(path string) {
		log.Infof("%s changed", path)
		regenerate()
	})
}
