// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlist

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Port names.
//
const (
	PortIn  = "in"
	PortOut = "out"
)

// An Endpoint is one side of a wire: a bit range of a machine's input or
// output port.
//
// If Whole is true, the endpoint spans the whole port and Start/End are
// ignored. Otherwise it spans bits Start to End inclusive.
//
type Endpoint struct {
	Machine string
	Port    string
	Start   int
	End     int
	Whole   bool
}

func (e Endpoint) String() string {
	s := e.Machine + "." + e.Port
	switch {
	case e.Whole:
		return s
	case e.Start == e.End:
		return s + "[" + strconv.Itoa(e.Start) + "]"
	}
	return s + "[" + strconv.Itoa(e.Start) + ".." + strconv.Itoa(e.End) + "]"
}

// span returns the first bit and bit count of e for a port of the given
// width.
func (e Endpoint) span(width int) (int, int) {
	if e.Whole {
		return 0, width
	}
	return e.Start, e.End - e.Start + 1
}

// A Wire connects a range of input bits (Sink) to a range of output bits
// (Source).
//
type Wire struct {
	Sink   Endpoint
	Source Endpoint
}

func (w Wire) String() string {
	return w.Sink.String() + " = " + w.Source.String()
}

// ParseWire parses a wire expression of the form:
//
//	sink.in[range] = source.out[range]
//
// where range is either a bit number, an inclusive bit range "start..end",
// or omitted (with the brackets) to select the whole port. For example:
//
//	ParseWire("cnt.in[0] = osc.out[0]")
//	ParseWire("reg.in[0..3] = bus.out[4..7]")
//	ParseWire("dly.in = src.out")
//
func ParseWire(s string) (Wire, error) {
	i := strings.IndexByte(s, '=')
	if i < 0 {
		return Wire{}, errors.Errorf("wire %q: missing '='", s)
	}
	sink, err := parseEndpoint(s[:i])
	if err != nil {
		return Wire{}, errors.Wrapf(err, "wire %q", s)
	}
	source, err := parseEndpoint(s[i+1:])
	if err != nil {
		return Wire{}, errors.Wrapf(err, "wire %q", s)
	}
	if sink.Port != PortIn {
		return Wire{}, errors.Errorf("wire %q: sink must be an %q port", s, PortIn)
	}
	if source.Port != PortOut {
		return Wire{}, errors.Errorf("wire %q: source must be an %q port", s, PortOut)
	}
	if !sink.Whole && !source.Whole && sink.End-sink.Start != source.End-source.Start {
		return Wire{}, errors.Errorf("wire %q: bit count mismatch", s)
	}
	return Wire{sink, source}, nil
}

func parseEndpoint(s string) (Endpoint, error) {
	s = strings.TrimSpace(s)
	i := strings.IndexByte(s, '.')
	if i <= 0 {
		return Endpoint{}, errors.New("missing machine name in " + strconv.Quote(s))
	}
	e := Endpoint{Machine: s[:i], Whole: true}
	port := s[i+1:]
	if j := strings.IndexByte(port, '['); j >= 0 {
		if !strings.HasSuffix(port, "]") {
			return Endpoint{}, errors.New("no terminating ] in bit range")
		}
		start, end, err := parseRange(port[j+1 : len(port)-1])
		if err != nil {
			return Endpoint{}, err
		}
		e.Start, e.End, e.Whole = start, end, false
		port = port[:j]
	}
	if port == "" {
		return Endpoint{}, errors.New("empty port name")
	}
	e.Port = port
	return e, nil
}

func parseRange(r string) (start, end int, err error) {
	i := strings.Index(r, "..")
	if i < 0 {
		start, err = strconv.Atoi(strings.TrimSpace(r))
		if err != nil {
			return 0, 0, errors.Wrap(err, "invalid bit number")
		}
		if start < 0 {
			return 0, 0, errors.Errorf("negative bit number %d", start)
		}
		return start, start, nil
	}
	start, err = strconv.Atoi(strings.TrimSpace(r[:i]))
	if err != nil {
		return 0, 0, errors.Wrap(err, "invalid range start")
	}
	end, err = strconv.Atoi(strings.TrimSpace(r[i+2:]))
	if err != nil {
		return 0, 0, errors.Wrap(err, "invalid range end")
	}
	if start < 0 || end < start {
		return 0, 0, errors.Errorf("invalid bit range %d..%d", start, end)
	}
	return start, end, nil
}
