package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jcm/config"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "jcm",
		Short: "Generate Java source code from declarative blueprints",
		Long: `jcm builds Java sources from blueprint files describing classes,
interfaces, enums, annotation types and resources.

Settings come from ./jcm.yaml (or --config), JCM_* environment variables
and flags, in increasing order of precedence.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}
	config.Flags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newGenCmd(a))
	rootCmd.AddCommand(newCountCmd(a))
	rootCmd.AddCommand(newInspectCmd(a))
	rootCmd.AddCommand(newVerifyCmd(a))
	rootCmd.AddCommand(newLSPCmd(a))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
