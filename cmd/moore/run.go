// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/db47h/moore"
	"github.com/db47h/moore/mlib"
	"github.com/db47h/moore/netlist"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runCmd(opts *options) *cobra.Command {
	var ticks, workers int

	cmd := &cobra.Command{
		Use:   "run <netlist.yaml>",
		Short: "Run a netlist and print the output of watched machines after each tick",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ticks < 0 {
				return errors.Errorf("invalid tick count %d", ticks)
			}
			nl, err := netlist.LoadFile(args[0])
			if err != nil {
				opts.log.Error("load netlist", zap.Error(err))
				return err
			}
			if cmd.Flags().Changed("workers") {
				nl.Workers = workers
			}
			nw := moore.NewNetwork(append(nl.Options(), moore.WithLogger(opts.log))...)
			defer nw.Close()

			b, err := nl.Build(nw)
			if err != nil {
				opts.log.Error("build netlist", zap.Error(err))
				return err
			}
			opts.log.Info("network ready",
				zap.String("netlist", args[0]),
				zap.Int("machines", nw.Len()),
				zap.Int("words", nw.WordsInUse()))

			tr, err := newTracer(b)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, tr.header())
			row, err := tr.row(0)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, row)
			for i := 1; i <= ticks; i++ {
				if err = b.Step(); err != nil {
					opts.log.Error("step", zap.Int("tick", i), zap.Error(err))
					return err
				}
				if row, err = tr.row(i); err != nil {
					return err
				}
				fmt.Fprintln(out, row)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&ticks, "ticks", "n", 16, "Number of ticks to run")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Worker goroutines (overrides the netlist setting)")
	return cmd
}

func checkCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check <netlist.yaml>",
		Short: "Validate a netlist and build it into a network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nl, err := netlist.LoadFile(args[0])
			if err != nil {
				return err
			}
			nw := moore.NewNetwork(append(nl.Options(), moore.WithLogger(opts.log))...)
			defer nw.Close()
			if _, err = nl.Build(nw); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d machines, %d wires, %d words\n",
				args[0], nw.Len(), len(nl.Wires), nw.WordsInUse())
			return nil
		},
	}
}

func kindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the available machine kinds",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(mlib.Kinds(), "\n"))
		},
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).PaddingRight(2)
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
)

// tracer renders the outputs of a board's watched machines as a table.
type tracer struct {
	b      *netlist.Board
	widths []int
}

func newTracer(b *netlist.Board) (*tracer, error) {
	tr := &tracer{b: b}
	tr.widths = append(tr.widths, len("tick"))
	for _, n := range b.Watch() {
		_, m, err := b.Output(n)
		if err != nil {
			return nil, errors.Wrap(err, "trace")
		}
		tr.widths = append(tr.widths, max(len(n), m))
	}
	return tr, nil
}

func (tr *tracer) header() string {
	cells := []string{headerStyle.Width(tr.widths[0] + 2).Render("tick")}
	for i, n := range tr.b.Watch() {
		cells = append(cells, headerStyle.Width(tr.widths[i+1]+2).Render(n))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (tr *tracer) row(tick int) (string, error) {
	cells := []string{cellStyle.Width(tr.widths[0] + 2).Render(fmt.Sprint(tick))}
	for i, n := range tr.b.Watch() {
		out, m, err := tr.b.Output(n)
		if err != nil {
			return "", err
		}
		cells = append(cells, cellStyle.Width(tr.widths[i+1]+2).Render(binary(out, m)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...), nil
}

// binary formats the m first bits of b, msb first.
func binary(b moore.Bits, m int) string {
	var sb strings.Builder
	sb.Grow(m)
	for i := m - 1; i >= 0; i-- {
		if b.Get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
