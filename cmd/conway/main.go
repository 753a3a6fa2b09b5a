package main

import (
	"flag"
	"os"
	"strconv"

	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
)

func main() {
	err := newRootCmd().Execute()
	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

// initLogging installs klog's flags into a private flag set and applies the given verbosity level.
func initLogging(level int) {
	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", strconv.Itoa(level))
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})
}

func newRootCmd() *cobra.Command {
	cli := &runFlags{}
	logLevel := 0

	root := &cobra.Command{
		Use:   "conway [flags] notation [input_file]",
		Short: "Builds polyhedra from Conway notation",
		Long: `Builds polyhedra from Conway notation and writes them in OFF format.

If no seed polyhedron is given in the notation, the operators are applied to
the polyhedron read from input_file, or from standard input if no input_file
is given.`,
		Args:          cobra.RangeArgs(0, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cli.notationHelp {
				cmd.OutOrStdout().Write([]byte(notationHelp))
				return nil
			}
			if len(args) == 0 {
				return cmd.Usage()
			}
			err := cli.run(cmd, args)
			if err != nil {
				klog.Errorf("%v", err)
			}
			return err
		},
	}

	root.PersistentFlags().IntVar(&logLevel, "log-level", 0, "klog verbosity level")
	cli.addFlags(root)
	root.AddCommand(newScriptCmd())
	return root
}
