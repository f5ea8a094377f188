// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchrec

import (
	"errors"
	"fmt"
)

// Kinds of structural errors. Every error returned by this package
// wraps exactly one of these, so callers can test with errors.Is.
var (
	ErrNoResults          = errors.New("no results found")
	ErrFileNotFound       = errors.New("file not found")
	ErrConfigTokenMissing = errors.New("config token missing")
	ErrSchemaMismatch     = errors.New("schema mismatch")
	ErrUnknownCategory    = errors.New("unknown category")
)

// An Error describes a failure tied to a particular result file and,
// where it applies, a line within it.
type Error struct {
	Kind error
	Path string
	Line int // 0 if the error is not tied to a line
	Msg  string
}

func (e *Error) Error() string {
	pos := e.Path
	if e.Line > 0 {
		pos = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	if pos == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
	}
	if e.Msg == "" {
		return fmt.Sprintf("%v: %s", e.Kind, pos)
	}
	return fmt.Sprintf("%v: %s: %s", e.Kind, pos, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, path string, line int, format string, args ...interface{}) *Error {
	return &Error{kind, path, line, fmt.Sprintf(format, args...)}
}
