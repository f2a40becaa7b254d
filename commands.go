// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	goio "io"
	"math"
	"path/filepath"
	"strings"

	"github.com/cpmech/gomat/fem"
	"github.com/cpmech/gomat/inp"
	"github.com/cpmech/gomat/mdl/damage"
	"github.com/cpmech/gomat/mdl/fiber"
	"github.com/cpmech/gomat/mdl/solid"
	"github.com/cpmech/gomat/mdl/state"
	"github.com/cpmech/gomat/out"
	"github.com/cpmech/gomat/tsr"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// maxCuts is the maximum number of consecutive cutbacks of the domain command
const maxCuts = 6

// newRootCmd returns the gomat command with all subcommands
func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "gomat",
		Short: "Nonlinear continuum material models",
		Long: `gomat drives material points of hyperelastic, fiber-reinforced and damage models
along deformation paths and evaluates domains of points in parallel.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				io.Verbose = true
				chk.Verbose = true
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show messages")
	root.AddCommand(newModelsCmd(), newDriveCmd(), newDomainCmd())
	return root
}

// newModelsCmd returns the command listing all available models
func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the names of all available models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, group := range []struct {
				title string
				names []string
			}{
				{"solid models", solid.Models()},
				{"fiber laws", fiber.Laws()},
				{"fiber distributions", fiber.Distributions()},
				{"integration schemes", fiber.Schemes()},
				{"damage cdfs", damage.CDFs()},
				{"damage criteria", damage.Criteria()},
			} {
				fmt.Fprintf(w, "%s:\n", group.title)
				for _, name := range group.names {
					fmt.Fprintf(w, "  %s\n", name)
				}
			}
			return nil
		},
	}
}

// driveOptions holds the flags of the drive command
type driveOptions struct {
	path    string  // kind of path
	stretch float64 // final stretch (or shear strain)
	nincs   int     // number of increments
	plot    string  // output directory of figures
	format  string  // format of figures
	check   bool    // check tangent
}

// newDriveCmd returns the command running the driver
func newDriveCmd() *cobra.Command {
	var o driveOptions
	cmd := &cobra.Command{
		Use:   "drive <file.mat> <material>",
		Short: "Drive one material point along a deformation path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.OutOrStdout(), args[0], args[1])
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.path, "path", "uniaxial", "path: uniaxial, biaxial, shear or cycle")
	f.Float64Var(&o.stretch, "stretch", 1.5, "final stretch; shear strain if path is shear")
	f.IntVar(&o.nincs, "nincs", 20, "number of increments")
	f.StringVar(&o.plot, "plot", "", "directory to save figures")
	f.StringVar(&o.format, "format", ".png", "format of figures; e.g. .png, .svg, .pdf")
	f.BoolVar(&o.check, "check", false, "compare tangent with numerical tangent")
	return cmd
}

// run runs the drive command
func (o *driveOptions) run(w goio.Writer, fn, name string) (err error) {

	// material
	mat, err := buildMaterial(fn, name)
	if err != nil {
		return
	}

	// path
	var pth solid.Path
	switch strings.ToLower(o.path) {
	case "uniaxial":
		err = pth.SetUniaxial(o.nincs, o.stretch)
	case "biaxial":
		err = pth.SetBiaxial(o.nincs, o.stretch)
	case "shear":
		err = pth.SetShear(o.nincs, o.stretch)
	case "cycle":
		err = pth.SetCycle(o.nincs, isochoric(o.stretch))
	default:
		return chk.Err("path %q is not available. Options: uniaxial, biaxial, shear, cycle", o.path)
	}
	if err != nil {
		return
	}

	// run
	drv := solid.Driver{ChkD: o.check}
	err = drv.Init(mat)
	if err != nil {
		return
	}
	err = drv.Run(&pth)
	if err != nil {
		return
	}

	// table
	fmt.Fprintf(w, "%4s%12s%12s%12s%12s%14s%14s%14s%14s%14s%14s%10s", "step", "F11", "F22", "F33", "F12", "sxx", "syy", "szz", "sxy", "W", "work", "D")
	if o.check {
		fmt.Fprintf(w, "%12s", "errD")
	}
	fmt.Fprintln(w)
	for i, r := range drv.Res {
		fmt.Fprintf(w, "%4d%12.6f%12.6f%12.6f%12.6f%14.6g%14.6g%14.6g%14.6g%14.6g%14.6g%10.6f", i, r.F[0][0], r.F[1][1], r.F[2][2], r.F[0][1],
			r.Sig.At(0, 0), r.Sig.At(1, 1), r.Sig.At(2, 2), r.Sig.At(0, 1), r.W, r.Work, r.D)
		if o.check {
			fmt.Fprintf(w, "%12.3e", r.ErrD)
		}
		fmt.Fprintln(w)
	}

	// figures
	if o.plot != "" {
		xkey := "lam1"
		switch strings.ToLower(o.path) {
		case "shear":
			xkey = "gam"
		case "cycle":
			xkey = "step"
		}
		splots, err := out.DriverSplots(drv.Res, xkey)
		if err != nil {
			return err
		}
		fns, err := out.Draw(o.plot, name, o.format, 0, 0, splots...)
		if err != nil {
			return err
		}
		for _, fn := range fns {
			fmt.Fprintf(w, "file <%s> written\n", fn)
		}
	}
	return
}

// domainOptions holds the flags of the domain command
type domainOptions struct {
	npoints int     // number of points
	stretch float64 // final stretch
	nincs   int     // number of increments
	workers int     // number of workers; overrides GOMAT_WORKERS
	ckpt    string  // checkpoint directory; overrides GOMAT_CKPT_DIR
	runID   string  // run identifier to resume
	metrics string  // file to write metrics to
}

// newDomainCmd returns the command running the parallel evaluator
func newDomainCmd() *cobra.Command {
	var o domainOptions
	cmd := &cobra.Command{
		Use:   "domain <file.mat> <material>",
		Short: "Evaluate a domain of points under a homogeneous isochoric stretch",
		Long: `Evaluates all points of a domain in parallel along an isochoric uniaxial stretch.
Settings are read from GOMAT_WORKERS, GOMAT_VERBOSE, GOMAT_CKPT_DIR and GOMAT_ENC and may be
overridden by flags. With a checkpoint directory, each converged step is saved and a run given
by --run resumes from its last saved step.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.Context(), cmd.OutOrStdout(), args[0], args[1])
		},
	}
	f := cmd.Flags()
	f.IntVar(&o.npoints, "npoints", 1000, "number of points")
	f.Float64Var(&o.stretch, "stretch", 1.2, "final stretch")
	f.IntVar(&o.nincs, "nincs", 10, "number of increments")
	f.IntVar(&o.workers, "workers", 0, "number of workers")
	f.StringVar(&o.ckpt, "ckpt", "", "checkpoint directory")
	f.StringVar(&o.runID, "run", "", "identifier of run to resume")
	f.StringVar(&o.metrics, "metrics", "", "file to write metrics to (text format)")
	return cmd
}

// run runs the domain command
func (o *domainOptions) run(ctx context.Context, w goio.Writer, fn, name string) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if o.nincs < 1 {
		return chk.Err("number of increments must be at least 1. nincs = %d is invalid", o.nincs)
	}
	if o.stretch <= 0 {
		return chk.Err("stretch must be positive. %g is invalid", o.stretch)
	}

	// settings
	cfg, err := fem.LoadConfig()
	if err != nil {
		return
	}
	if o.workers > 0 {
		cfg.Workers = o.workers
	}
	cfg.Verbose = cfg.Verbose || chk.Verbose
	if o.ckpt != "" {
		cfg.CkptDir = o.ckpt
	}
	if cfg.CkptDir == "" && o.runID != "" {
		return chk.Err("resuming run %q requires a checkpoint directory", o.runID)
	}

	// domain
	mat, err := buildMaterial(fn, name)
	if err != nil {
		return
	}
	reg := prometheus.NewRegistry()
	dom, err := fem.NewDomain(mat, o.npoints, cfg, fem.NewMetrics(reg))
	if err != nil {
		return
	}

	// checkpoints
	var store *fem.Store
	step := 0
	if cfg.CkptDir != "" {
		store, err = fem.OpenStore(cfg.CkptDir, o.runID, cfg.Enc)
		if err != nil {
			return
		}
		defer store.Close()
		steps, err := store.Steps()
		if err != nil {
			return err
		}
		if len(steps) > 0 {
			step = steps[len(steps)-1]
			err = store.Load(step, dom)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "resuming run %s from step %d (t = %g)\n", store.Run, step, dom.Time)
		} else {
			fmt.Fprintf(w, "run %s\n", store.Run)
		}
	}
	dom.Backup()

	// steps with cutback
	fmt.Fprintf(w, "%4s%10s%12s%14s%14s%14s%10s\n", "step", "t", "stretch", "sxx", "syy", "W", "D")
	t, dt, cuts := dom.Time, 1.0/float64(o.nincs), 0
	for t < 1-1e-12 {
		tn := math.Min(t+dt, 1)
		λ := 1 + (o.stretch-1)*tn
		err = dom.SetAllF(isochoric(λ))
		if err == nil {
			err = dom.Evaluate(ctx)
		}
		if err != nil {
			var nerr *fem.NumericalError
			if !errors.As(err, &nerr) || cuts >= maxCuts {
				return err
			}
			err = dom.Restore()
			if err != nil {
				return
			}
			dt, cuts = dt/2, cuts+1
			fmt.Fprintf(w, "step %d failed at point %d; cutting back to dt = %g\n", step+1, nerr.Point, dt)
			continue
		}
		dom.Update(tn)
		dom.Backup()
		step, t, cuts = step+1, tn, 0
		if store != nil {
			err = store.Save(step, dom)
			if err != nil {
				return
			}
		}
		var D float64
		if s, ok := state.Find[*damage.State](dom.Points[0], damage.Tag); ok {
			D = s.D
		}
		fmt.Fprintf(w, "%4d%10.4f%12.6f%14.6g%14.6g%14.6g%10.6f\n", step, t, λ, dom.Sig[0].At(0, 0), dom.Sig[0].At(1, 1), dom.W[0], D)
	}

	// metrics
	if o.metrics != "" {
		err = prometheus.WriteToTextfile(o.metrics, reg)
		if err != nil {
			return chk.Err("cannot write metrics to %q:\n%v", o.metrics, err)
		}
		fmt.Fprintf(w, "file <%s> written\n", o.metrics)
	}
	return
}

// buildMaterial reads the materials file fn and builds material name
func buildMaterial(fn, name string) (solid.Material, error) {
	mdb, err := inp.ReadMat(filepath.Dir(fn), filepath.Base(fn))
	if err != nil {
		return nil, err
	}
	return mdb.Build(name)
}

// isochoric returns the deformation gradient of an isochoric uniaxial stretch λ
func isochoric(λ float64) tsr.Mat3 {
	l := 1 / math.Sqrt(λ)
	return tsr.Diag(λ, l, l)
}
