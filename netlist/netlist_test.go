// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlist_test

import (
	"strings"
	"testing"

	"github.com/db47h/moore"
	"github.com/db47h/moore/netlist"
	"github.com/stretchr/testify/require"
)

const johnson = `
workers: 2
machines:
  - name: osc
    kind: not
  - name: cnt
    kind: counter
    width: 4
    init: 14
  - name: d0
    kind: dff
  - name: d1
    kind: dff
  - name: inv
    kind: not
wires:
  - osc.in[0] = osc.out[0]
  - cnt.in = osc.out
  - d1.in = d0.out
  - inv.in = d1.out
  - d0.in[0] = inv.out[0]
watch: [osc, cnt]
`

func TestParseWire(t *testing.T) {
	data := []struct {
		in  string
		out string
		err string
	}{
		{"a.in[0]=b.out[3]", "a.in[0] = b.out[3]", ""},
		{" reg.in[0..3] =  bus.out[4 .. 7] ", "reg.in[0..3] = bus.out[4..7]", ""},
		{"a.in = b.out", "a.in = b.out", ""},
		{"a.in[2..5] = b.out", "a.in[2..5] = b.out", ""},
		{"a.in[0]", "", `wire "a.in[0]": missing '='`},
		{"a.out = b.out", "", `wire "a.out = b.out": sink must be an "in" port`},
		{"a.in = b.in", "", `wire "a.in = b.in": source must be an "out" port`},
		{"a.in[0..1] = b.out[0]", "", `wire "a.in[0..1] = b.out[0]": bit count mismatch`},
		{"in[0] = b.out", "", `wire "in[0] = b.out": missing machine name in "in[0]"`},
		{"a.in[3..1] = b.out", "", `wire "a.in[3..1] = b.out": invalid bit range 3..1`},
		{"a.in[0 = b.out", "", `wire "a.in[0 = b.out": no terminating ] in bit range`},
		{"a.[0] = b.out", "", `wire "a.[0] = b.out": empty port name`},
	}
	for _, d := range data {
		t.Run(d.in, func(t *testing.T) {
			w, err := netlist.ParseWire(d.in)
			if d.err != "" {
				require.EqualError(t, err, d.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, d.out, w.String())
		})
	}
}

func TestLoad_errors(t *testing.T) {
	data := []struct {
		name string
		src  string
		err  string
	}{
		{"empty", "machines: []", "empty machine list"},
		{"no_name", "machines: [{kind: not}]", "machine #0: missing name"},
		{"dup", "machines: [{name: a, kind: not}, {name: a, kind: dff}]", `duplicate machine name "a"`},
		{"kind", "machines: [{name: a, kind: foo}]", `machine "a": unknown machine kind "foo"`},
		{"wire", "machines: [{name: a, kind: not}]\nwires: [a.in = b.out]", `wire "a.in = b.out": unknown machine "b"`},
		{"watch", "machines: [{name: a, kind: not}]\nwatch: [b]", `watch: unknown machine "b"`},
		{"workers", "workers: -1\nmachines: [{name: a, kind: not}]", "invalid worker count -1"},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			_, err := netlist.Load(strings.NewReader(d.src))
			require.EqualError(t, err, d.err)
		})
	}

	_, err := netlist.Load(strings.NewReader("machines: [{name: a, kind: not, colour: red}]"))
	require.Error(t, err, "unknown fields must be rejected")
}

func TestBuild(t *testing.T) {
	nl, err := netlist.Load(strings.NewReader(johnson))
	require.NoError(t, err)
	require.Len(t, nl.Options(), 1)

	nw := moore.NewNetwork(nl.Options()...)
	defer nw.Close()
	b, err := nl.Build(nw)
	require.NoError(t, err)
	require.Equal(t, 5, nw.Len())
	require.Equal(t, []string{"osc", "cnt"}, b.Watch())

	var oscs, cnts []uint64
	for i := 0; i < 4; i++ {
		require.NoError(t, b.Step())
		out, m, err := b.Output("osc")
		require.NoError(t, err)
		require.Equal(t, 1, m)
		oscs = append(oscs, out[0])
		out, m, err = b.Output("cnt")
		require.NoError(t, err)
		require.Equal(t, 4, m)
		cnts = append(cnts, out[0])
	}
	require.Equal(t, []uint64{1, 0, 1, 0}, oscs)
	// cnt sees osc's output from the previous tick.
	require.Equal(t, []uint64{14, 15, 15, 0}, cnts)

	b.Remove("osc")
	require.Equal(t, []string{"cnt"}, b.Watch())
	require.Equal(t, []string{"cnt", "d0", "d1", "inv"}, b.Names())
	cnt, ok := b.Handle("cnt")
	require.True(t, ok)
	require.Empty(t, nw.Parents(cnt))
	require.NoError(t, b.Step())
	_, _, err = b.Output("osc")
	require.Error(t, err)
}

func TestBuild_rollback(t *testing.T) {
	src := `
machines:
  - {name: a, kind: delay, width: 4}
  - {name: b, kind: delay, width: 2}
wires:
  - a.in = b.out
`
	nl, err := netlist.Load(strings.NewReader(src))
	require.NoError(t, err)
	nw := moore.NewNetwork()
	defer nw.Close()
	_, err = nl.Build(nw)
	require.EqualError(t, err, `wire "a.in = b.out": bit count mismatch: 4 inputs, 2 outputs`)
	require.Equal(t, 0, nw.Len())

	nl.Wires = []string{"a.in[2..5] = b.out[0..3]"}
	_, err = nl.Build(nw)
	require.True(t, moore.IsInvalidArgument(err), "%v", err)
	require.Equal(t, 0, nw.Len())
}

func TestBuild_input(t *testing.T) {
	src := `
machines:
  - {name: r, kind: register, width: 4, input: 0x1a}
`
	nl, err := netlist.Load(strings.NewReader(src))
	require.NoError(t, err)
	nw := moore.NewNetwork()
	defer nw.Close()
	b, err := nl.Build(nw)
	require.NoError(t, err)
	require.NoError(t, b.Step())
	out, _, err := b.Output("r")
	require.NoError(t, err)
	require.Equal(t, uint64(0xa), out[0])
}
