// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/moore"
	"github.com/db47h/moore/netlist"
	"github.com/stretchr/testify/require"
)

const oscillator = `
machines:
  - {name: osc, kind: not}
  - {name: cnt, kind: counter, width: 3}
wires:
  - osc.in = osc.out
  - cnt.in = osc.out
`

func writeNetlist(t *testing.T, src string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "net.yaml")
	require.NoError(t, os.WriteFile(name, []byte(src), 0o644))
	return name
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRun(t *testing.T) {
	name := writeNetlist(t, oscillator)
	out, err := execute(t, "run", "-n", "4", name)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	require.Contains(t, lines[0], "tick")
	require.Contains(t, lines[0], "osc")
	require.Contains(t, lines[0], "cnt")
	exp := [][]string{
		{"0", "0", "000"},
		{"1", "1", "000"},
		{"2", "0", "001"},
		{"3", "1", "001"},
		{"4", "0", "010"},
	}
	for i, e := range exp {
		require.Equal(t, e, strings.Fields(lines[i+1]), "tick %d", i)
	}
}

func TestRun_workers(t *testing.T) {
	name := writeNetlist(t, oscillator)
	out1, err := execute(t, "run", "-n", "8", name)
	require.NoError(t, err)
	out2, err := execute(t, "run", "-n", "8", "-w", "2", name)
	require.NoError(t, err)
	require.Equal(t, out1, out2)
}

func TestCheck(t *testing.T) {
	name := writeNetlist(t, oscillator)
	out, err := execute(t, "check", name)
	require.NoError(t, err)
	require.Contains(t, out, "2 machines, 2 wires")

	bad := writeNetlist(t, "machines: [{name: a, kind: delay, width: 2}]\nwires:\n  - a.in[1..2] = a.out[0..1]\n")
	_, err = execute(t, "check", bad)
	require.Error(t, err)
	require.True(t, moore.IsInvalidArgument(err), "%v", err)

	_, err = execute(t, "check", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestKinds(t *testing.T) {
	out, err := execute(t, "kinds")
	require.NoError(t, err)
	require.Contains(t, strings.Fields(out), "counter")
	require.Contains(t, strings.Fields(out), "register")
}

func TestBinary(t *testing.T) {
	require.Equal(t, "0101", binary(moore.Bits{5}, 4))
	require.Equal(t, "1"+strings.Repeat("0", 64), binary(moore.Bits{0, 1}, 65))
	require.Equal(t, "", binary(moore.Bits{}, 0))
}

func TestTracer(t *testing.T) {
	nl, err := netlist.Load(strings.NewReader(oscillator))
	require.NoError(t, err)
	nw := moore.NewNetwork()
	defer nw.Close()
	b, err := nl.Build(nw)
	require.NoError(t, err)

	tr, err := newTracer(b)
	require.NoError(t, err)
	row, err := tr.row(0)
	require.NoError(t, err)
	require.Equal(t, []string{"0", "0", "000"}, strings.Fields(row))

	// destroying a watched machine behind the board's back.
	h, ok := b.Handle("cnt")
	require.True(t, ok)
	nw.Destroy(h)
	_, err = newTracer(b)
	require.EqualError(t, err, `trace: unknown machine "cnt"`)
	_, err = tr.row(1)
	require.Error(t, err)
}
