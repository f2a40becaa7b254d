// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/stretchr/testify/require"
)

// execute runs gomat with args and returns its output
func execute(t *testing.T, args ...string) (string, error) {
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

const matfile = "inp/data/tissue.mat"

func Test_cli01(t *testing.T) {

	chk.PrintTitle("cli01")

	l, err := execute(t, "models")
	require.NoError(t, err)
	for _, name := range []string{"neo-hookean", "continuous-fiber-distribution", "fiber-exp-pow", "geodesic", "weibull", "simo"} {
		require.Contains(t, l, "  "+name+"\n")
	}

	_, err = execute(t, "models", "extra")
	require.Error(t, err)
	_, err = execute(t, "unknown")
	require.Error(t, err)
}

func Test_cli02(t *testing.T) {

	chk.PrintTitle("cli02")

	// table with tangent check
	l, err := execute(t, "drive", matfile, "rubber", "--nincs", "4", "--check")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(l), "\n")
	require.Len(t, lines, 6)
	require.Contains(t, lines[0], "errD")
	require.True(t, strings.HasPrefix(strings.TrimSpace(lines[5]), "4"))

	// all paths with figures
	dir := t.TempDir()
	for _, path := range []string{"uniaxial", "biaxial", "shear", "cycle"} {
		l, err = execute(t, "drive", matfile, "damaged", "--path", path, "--stretch", "1.2", "--nincs", "3", "--plot", dir, "--format", ".svg")
		require.NoError(t, err, path)
		require.Contains(t, l, "written")
	}
	for _, id := range []string{"stress", "energy", "damage"} {
		_, err = os.Stat(filepath.Join(dir, "damaged_"+id+".svg"))
		require.NoError(t, err)
	}

	// errors
	_, err = execute(t, "drive", matfile, "rubber", "--path", "torsion")
	require.Error(t, err)
	_, err = execute(t, "drive", matfile, "loop")
	require.Error(t, err)
	_, err = execute(t, "drive", "inp/data/missing.mat", "rubber")
	require.Error(t, err)
	_, err = execute(t, "drive", matfile, "rubber", "--nincs", "0")
	require.Error(t, err)
	_, err = execute(t, "drive", matfile)
	require.Error(t, err)
}

func Test_cli03(t *testing.T) {

	chk.PrintTitle("cli03")

	t.Setenv("GOMAT_CKPT_DIR", "")
	dir := t.TempDir()
	prom := filepath.Join(dir, "metrics.prom")

	// first run saves checkpoints
	l, err := execute(t, "domain", matfile, "damaged", "--npoints", "16", "--nincs", "4", "--workers", "2", "--ckpt", filepath.Join(dir, "db"), "--metrics", prom)
	require.NoError(t, err)
	m := regexp.MustCompile(`run ([0-9a-f-]{36})`).FindStringSubmatch(l)
	require.Len(t, m, 2, l)
	b, err := os.ReadFile(prom)
	require.NoError(t, err)
	require.Contains(t, string(b), "gomat_points_evaluated_total 64")

	// resuming a finished run does nothing
	l, err = execute(t, "domain", matfile, "damaged", "--npoints", "16", "--nincs", "4", "--ckpt", filepath.Join(dir, "db"), "--run", m[1])
	require.NoError(t, err)
	require.Contains(t, l, "from step 4")

	// in-memory run
	l, err = execute(t, "domain", matfile, "tissue", "--npoints", "8", "--nincs", "2")
	require.NoError(t, err)
	require.NotContains(t, l, "run ")

	// errors
	_, err = execute(t, "domain", matfile, "tissue", "--run", m[1])
	require.Error(t, err)
	_, err = execute(t, "domain", matfile, "tissue", "--stretch", "-1")
	require.Error(t, err)
	_, err = execute(t, "domain", matfile, "tissue", "--npoints", "0")
	require.Error(t, err)
	_, err = execute(t, "domain", matfile, "tissue", "--nincs", "0")
	require.Error(t, err)
}
