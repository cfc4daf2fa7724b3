// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package moore

import "github.com/pkg/errors"

// Error kinds. Every error returned by a Network wraps one of these; use
// errors.Cause, IsInvalidArgument or IsOutOfMemory to test for them.
//
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrOutOfMemory     = errors.New("out of memory")
)

// IsInvalidArgument returns true if the cause of err is ErrInvalidArgument.
//
func IsInvalidArgument(err error) bool {
	return err != nil && errors.Cause(err) == ErrInvalidArgument
}

// IsOutOfMemory returns true if the cause of err is ErrOutOfMemory.
//
func IsOutOfMemory(err error) bool {
	return err != nil && errors.Cause(err) == ErrOutOfMemory
}

func invalidf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

func staleHandle(op string, h Handle) error {
	return errors.Wrapf(ErrInvalidArgument, "%s: stale machine handle %v", op, h)
}
