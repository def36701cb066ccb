package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jcm/classpath"
	"github.com/dhamidi/jcm/format"
	"github.com/dhamidi/jcm/java"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <class>...",
		Short: "Show what the classpath knows about classes",
		Long: `Resolve classes on the configured classpath and print each as a line
record: the class header, then one line per field and method.

Nested classes may be named with dots or dollars:
  jcm inspect java.util.Map.Entry
  jcm inspect --classpath lib/guava.jar com.google.common.base.Optional`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, closeLoader, err := a.cfg.Loader()
			if err != nil {
				return err
			}
			defer closeLoader()
			return runInspect(format.NewLineModelEncoder(cmd.OutOrStdout()), loader, args)
		},
	}
}

// runInspect resolves each name and hands the class to enc.
func runInspect(enc format.Encoder, loader classpath.Loader, names []string) error {
	var errs []error
	for _, name := range names {
		info, err := resolve(loader, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		if err := enc.Encode(info); err != nil {
			return err
		}
	}
	return errors.Join(errs...)
}

// resolve tries name as given, then with trailing dots read as nested
// class separators.
func resolve(loader classpath.Loader, name string) (*java.ClassModel, error) {
	info, err := loader.Load(name)
	for i := strings.LastIndexByte(name, '.'); errors.Is(err, classpath.ErrNotFound) && i > 0; i = strings.LastIndexByte(name[:i], '.') {
		name = name[:i] + "$" + name[i+1:]
		info, err = loader.Load(name)
	}
	return info, err
}
