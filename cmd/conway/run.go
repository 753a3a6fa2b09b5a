package main

import (
	"io"
	"math"
	"os"

	"github.com/2x3systems/goconway/conway"
	"github.com/2x3systems/goconway/libconway"
	"github.com/2x3systems/goconway/libconway/catalog"
	"github.com/2x3systems/goconway/libconway/off"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
)

type runFlags struct {
	noSimplify   bool
	reverse      bool
	truncate     bool
	unitize      bool
	verbose      bool
	notationHelp bool
	info         bool

	planarize       string
	canonicalize    string
	canonicalIters  int
	canonicalLimit  int
	planarizeIters  int
	planarizeLimit  int
	outputPathname  string
	catalogPathname string
}

var defaultLimitExp = int(math.Round(-math.Log10(conway.DefaultTolerance)))

func (cli *runFlags) addFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.BoolVarP(&cli.notationHelp, "notation-help", "H", false, "describe the seeds and operators of Conway notation")
	fs.BoolVarP(&cli.noSimplify, "no-simplify", "d", false, "don't simplify the notation")
	fs.BoolVarP(&cli.reverse, "reverse", "r", false, "run operations in the order written (left to right)")
	fs.BoolVarP(&cli.truncate, "truncate", "t", false, "run t as a vertex truncation instead of dkd, and a as a truncation at 1/2")
	fs.BoolVarP(&cli.unitize, "unitize", "u", false, "scale the result to unit average edge length")
	fs.BoolVarP(&cli.verbose, "verbose", "v", false, "log each operation as it runs")
	fs.StringVarP(&cli.outputPathname, "output", "o", "", "write output to this file (default: standard output)")

	fs.StringVarP(&cli.planarize, "planarize", "p", "p", `inter-step planarization method:
  p - reciprocal of face centroids
  q - reciprocal of face tangent planes
  l - projection onto face planes`)
	fs.StringVarP(&cli.canonicalize, "canonicalize", "c", "", `canonicalize the final product using:
  n - edges tangent to the unit sphere
  m - as n, starting from vertices on the unit sphere
  or planarize the final product with p, q or l above`)
	fs.IntVarP(&cli.canonicalIters, "canonical-iters", "n", -1, "maximum canonicalization iterations (default: no limit)")
	fs.IntVarP(&cli.canonicalLimit, "canonical-limit", "l", defaultLimitExp, "vertex movement that ends canonicalization, as a negative exponent")
	fs.IntVarP(&cli.planarizeIters, "planarize-iters", "i", -1, "maximum inter-step planarization iterations, 0 for none (default: no limit)")
	fs.IntVarP(&cli.planarizeLimit, "planarize-limit", "j", defaultLimitExp, "vertex movement that ends planarization, as a negative exponent")

	fs.BoolVar(&cli.info, "info", false, "print vertex, edge and face counts and spectra to standard error")
	fs.StringVar(&cli.catalogPathname, "db", "", "catalog of previously built meshes to read from and add to")
}

func limitToTolerance(exp int, flagName string) float64 {
	if exp < 0 {
		klog.Warningf("-%s limit is negative, and so ignored", flagName)
		return conway.DefaultTolerance
	}
	if exp > 16 {
		klog.Warningf("-%s limit is very small, may not be attainable", flagName)
	}
	return math.Pow(10, -float64(exp))
}

// options checks the flags and returns the conway.Options they select.
func (cli *runFlags) options(cmd *cobra.Command) (conway.Options, error) {
	opts := conway.DefaultOptions
	opts.NoSimplify = cli.noSimplify
	opts.Reverse = cli.reverse
	opts.TruncateAlgorithm = cli.truncate
	opts.Unitize = cli.unitize
	opts.Verbose = cli.verbose

	if len(cli.planarize) != 1 || !isOneOf(cli.planarize[0], "pql") {
		return opts, errors.Errorf("planarize method type must be p, q or l")
	}
	opts.Planarize.Method = cli.planarize[0]

	switch {
	case len(cli.canonicalize) == 0:
	case len(cli.canonicalize) == 1 && isOneOf(cli.canonicalize[0], "nmpql"):
		opts.Canonicalize.Method = cli.canonicalize[0]
	default:
		return opts, errors.Errorf("canonical method type must be n, m, p, q or l")
	}

	if cmd.Flags().Changed("canonical-iters") && cli.canonicalIters <= 0 {
		return opts, errors.Errorf("number of canonical iterations must be greater than 0")
	}
	if cli.planarizeIters < -1 || (cmd.Flags().Changed("planarize-iters") && cli.planarizeIters < 0) {
		return opts, errors.Errorf("number of planarization iterations must be 0 or greater")
	}
	opts.Canonicalize.MaxIters = cli.canonicalIters
	opts.Planarize.MaxIters = cli.planarizeIters
	opts.Canonicalize.Tolerance = limitToTolerance(cli.canonicalLimit, "l")
	opts.Planarize.Tolerance = limitToTolerance(cli.planarizeLimit, "j")
	return opts, nil
}

func isOneOf(c byte, set string) bool {
	for i := 0; i < len(set); i++ {
		if set[i] == c {
			return true
		}
	}
	return false
}

func (cli *runFlags) run(cmd *cobra.Command, args []string) error {
	opts, err := cli.options(cmd)
	if err != nil {
		return err
	}

	notation := args[0]
	plan, err := libconway.Compile(notation, opts)
	if err != nil {
		return err
	}

	var M *conway.Mesh
	switch {
	case plan.Seed != 0 && len(args) > 1:
		return errors.Wrapf(conway.ErrSeedWithInput, "input file %s", args[1])

	case plan.Seed != 0 && len(cli.catalogPathname) > 0:
		ctx := conway.NewCatalogContext()
		defer func() {
			ctx.Close()
			<-ctx.Done()
		}()
		cat, err := catalog.OpenCatalog(ctx, conway.CatalogOpts{DbPathName: cli.catalogPathname})
		if err != nil {
			return err
		}
		if M, err = libconway.RunWithCatalog(cat, notation, opts); err != nil {
			return err
		}

	case plan.Seed != 0:
		if M, err = plan.Run(nil, opts); err != nil {
			return err
		}

	default:
		input, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		if M, err = plan.Run(input, opts); err != nil {
			return err
		}
	}

	if cli.info {
		M.WriteAsString(cmd.ErrOrStderr(), conway.PrintOpts{
			Label:    plan.Resolved,
			Counts:   true,
			Spectrum: true,
		})
	}
	return cli.writeOutput(cmd, M)
}

func readInput(cmd *cobra.Command, args []string) (*conway.Mesh, error) {
	var in io.Reader = cmd.InOrStdin()
	if len(args) > 1 {
		file, err := os.Open(args[1])
		if err != nil {
			return nil, err
		}
		defer file.Close()
		in = file
	}
	M, err := off.Read(in)
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	return M, nil
}

func (cli *runFlags) writeOutput(cmd *cobra.Command, M *conway.Mesh) error {
	if len(cli.outputPathname) == 0 {
		return off.Write(cmd.OutOrStdout(), M)
	}
	file, err := os.Create(cli.outputPathname)
	if err != nil {
		return err
	}
	if err = off.Write(file, M); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
