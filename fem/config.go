// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the parallel evaluation of material points used at the boundary with
// an external nonlinear solver
//
//  The solver sets the deformation gradient of each point, calls Evaluate to obtain stresses and
//  tangents and, after convergence, calls Update to commit the history. On divergence, or when
//  Evaluate returns a NumericalError, the solver restores the last backup and cuts the step back.
package fem

import (
	"runtime"

	"github.com/caarlos0/env/v11"
	"github.com/cpmech/gosl/chk"
)

// Config holds runtime settings of the evaluator
type Config struct {
	Workers int    `env:"GOMAT_WORKERS" envDefault:"0"`     // number of concurrent workers; ≤ 0 means number of CPUs
	Verbose bool   `env:"GOMAT_VERBOSE" envDefault:"false"` // show messages
	CkptDir string `env:"GOMAT_CKPT_DIR"`                   // directory of checkpoint store; empty means in-memory
	Enc     string `env:"GOMAT_ENC" envDefault:"gob"`       // encoder type of checkpoints: "gob" or "json"
}

// LoadConfig reads the configuration from the environment
func LoadConfig() (cfg Config, err error) {
	err = env.Parse(&cfg)
	if err != nil {
		return cfg, chk.Err("cannot parse environment:\n%v", err)
	}
	err = cfg.Check()
	return
}

// Check checks the settings and sets defaults
func (o *Config) Check() error {
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Enc == "" {
		o.Enc = "gob"
	}
	if o.Enc != "gob" && o.Enc != "json" {
		return chk.Err("encoder type must be either \"gob\" or \"json\". %q is invalid", o.Enc)
	}
	return nil
}
