package main

import (
	"fmt"
	"time"

	"github.com/go-python/gpython/py"
	"github.com/go-python/gpython/repl"
	"github.com/go-python/gpython/repl/cli"
	"github.com/spf13/cobra"

	_ "github.com/2x3systems/goconway/pyconway"
	_ "github.com/go-python/gpython/stdlib"
)

func newScriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "script [file.py]",
		Short: "Runs a python script with the _pyconway module available, or a REPL if no script is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pathname := ""
			if len(args) > 0 {
				pathname = args[0]
			}
			return runScript(cmd, pathname)
		},
	}
}

func runScript(cmd *cobra.Command, pathname string) error {
	ctx := py.NewContext(py.DefaultContextOpts())

	var err error
	if len(pathname) == 0 {
		replCtx := repl.New(ctx)
		cli.RunREPL(replCtx)
	} else {
		out := cmd.OutOrStdout()
		startTime := time.Now()
		fmt.Fprintf(out, "<<<>>>   executing '%s'   <<<>>>\n", pathname)

		_, err = py.RunFile(ctx, pathname, py.CompileOpts{}, nil)
		if err == nil {
			fmt.Fprintf(out, "<<<>>>   execution complete: %v   <<<>>>\n", time.Since(startTime))
		}
	}

	ctx.Close()
	<-ctx.Done()

	if err != nil {
		py.TracebackDump(err)
	}
	return err
}
