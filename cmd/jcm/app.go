package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/jcm/blueprint"
	"github.com/dhamidi/jcm/codemodel"
	"github.com/dhamidi/jcm/config"
	"github.com/dhamidi/jcm/writer"
)

var log = commonlog.GetLogger("jcm")

// app is the state shared by the commands: the loaded configuration and
// the viper instance it came from, which gen --watch reloads.
type app struct {
	mu  sync.Mutex
	v   *viper.Viper
	cfg *config.Config
}

func (a *app) load(cmd *cobra.Command) error {
	v, err := config.New(cmd.Flags())
	if err != nil {
		return err
	}
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(v, path)
	if err != nil {
		return err
	}
	cfg.ConfigureLogging()
	a.v, a.cfg = v, cfg
	return nil
}

func (a *app) setConfig(cfg *config.Config) {
	a.mu.Lock()
	defer a.mu.Unlock()
	cfg.ConfigureLogging()
	a.cfg = cfg
}

// blueprintPaths prefers the command line over the configured list.
func (a *app) blueprintPaths(args []string) ([]string, error) {
	paths := args
	if len(paths) == 0 {
		paths = a.cfg.Blueprints
	}
	if len(paths) == 0 {
		return nil, errors.New("no blueprints given on the command line or in the config")
	}
	return paths, nil
}

func loadBlueprints(paths []string) ([]*blueprint.Blueprint, error) {
	var bps []*blueprint.Blueprint
	var errs []error
	for _, p := range paths {
		bp, err := blueprint.Load(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		bps = append(bps, bp)
	}
	return bps, errors.Join(errs...)
}

// model generates the blueprints into a fresh model configured from the
// current settings. The returned function releases the classpath.
func (a *app) model(ctx context.Context, paths []string) (*codemodel.Model, func() error, error) {
	bps, err := loadBlueprints(paths)
	if err != nil {
		return nil, nil, err
	}
	loader, closeLoader, err := a.cfg.Loader()
	if err != nil {
		return nil, nil, err
	}
	m := codemodel.New(a.cfg.ModelOptions(loader)...)
	if err := blueprint.Generate(ctx, m, bps...); err != nil {
		closeLoader()
		return nil, nil, err
	}
	return m, closeLoader, nil
}

type outputMode int

const (
	toFiles outputMode = iota
	toListing
	toStream
	toTxtar
)

// generate runs the blueprints and writes the result as mode says.
func (a *app) generate(ctx context.Context, out io.Writer, paths []string, mode outputMode) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	m, closeLoader, err := a.model(ctx, paths)
	if err != nil {
		return err
	}
	defer closeLoader()

	switch mode {
	case toListing:
		mem := writer.NewMemoryCodeWriter()
		if err := m.Build(mem, nil); err != nil {
			return err
		}
		for _, p := range mem.Order() {
			fmt.Fprintf(out, "%s\t%d\n", p, len(mem.Get(p)))
		}
		return nil
	case toStream:
		return m.Build(writer.NewSingleStreamCodeWriter(out), nil)
	case toTxtar:
		return m.Build(writer.NewTxtarCodeWriter(out), nil)
	}

	src, res, err := a.cfg.Writers()
	if err != nil {
		return err
	}
	total, done := m.CountArtifacts(), 0
	progress := func(_, _ int, path string) {
		done++
		log.Infof("[%d/%d] %s", done, total, path)
	}
	return m.Build(
		writer.NewProgressCodeWriter(src, total, progress),
		writer.NewProgressCodeWriter(res, total, progress),
	)
}
