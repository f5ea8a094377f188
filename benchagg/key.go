// Copyright 2026 The Thesis-Extension Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MaxDims is the largest number of dimensions a Key can hold.
const MaxDims = 4

// A Value is one coordinate of a Key.
//
// Numeric dimensions set Num. Categorical dimensions set Str to the
// category name and Num to the category's rank, so that ordering
// Values orders categories by rank rather than by name.
type Value struct {
	Num int
	Str string
}

// Int returns the Value of a numeric dimension.
func Int(n int) Value {
	return Value{Num: n}
}

// Category returns the Value of a categorical dimension.
func Category(rank int, name string) Value {
	return Value{Num: rank, Str: name}
}

func (v Value) String() string {
	if v.Str != "" {
		return v.Str
	}
	return strconv.Itoa(v.Num)
}

// Compare returns -1, 0, or 1 as v orders before, equal to, or after o.
func (v Value) Compare(o Value) int {
	switch {
	case v.Num < o.Num:
		return -1
	case v.Num > o.Num:
		return 1
	}
	return strings.Compare(v.Str, o.Str)
}

// A Key is an immutable tuple of dimension values identifying one
// group. Keys are comparable and may be used as map keys; two Keys
// are == if they have the same length and values.
type Key struct {
	n    int
	vals [MaxDims]Value
}

// NewKey returns the Key with the given values.
// It panics if given more than MaxDims values.
func NewKey(vals ...Value) Key {
	if len(vals) > MaxDims {
		panic(fmt.Sprintf("key has %d dimensions, at most %d allowed", len(vals), MaxDims))
	}
	var k Key
	k.n = copy(k.vals[:], vals)
	return k
}

// IntKey is shorthand for a Key of numeric values.
func IntKey(ns ...int) Key {
	vals := make([]Value, len(ns))
	for i, n := range ns {
		vals[i] = Int(n)
	}
	return NewKey(vals...)
}

// Len returns the number of dimensions in k.
func (k Key) Len() int {
	return k.n
}

// At returns the i'th value of k.
func (k Key) At(i int) Value {
	if i < 0 || i >= k.n {
		panic(fmt.Sprintf("key index %d out of range [0,%d)", i, k.n))
	}
	return k.vals[i]
}

// Values returns a copy of the values of k.
func (k Key) Values() []Value {
	return append([]Value(nil), k.vals[:k.n]...)
}

// Without returns k with its i'th value removed.
func (k Key) Without(i int) Key {
	k.At(i) // bounds check
	vals := k.Values()
	return NewKey(append(vals[:i], vals[i+1:]...)...)
}

// Compare orders Keys lexicographically by value. A Key that is a
// prefix of another orders first.
func (k Key) Compare(o Key) int {
	for i := 0; i < k.n && i < o.n; i++ {
		if c := k.vals[i].Compare(o.vals[i]); c != 0 {
			return c
		}
	}
	switch {
	case k.n < o.n:
		return -1
	case k.n > o.n:
		return 1
	}
	return 0
}

// Less reports whether k orders before o.
func (k Key) Less(o Key) bool {
	return k.Compare(o) < 0
}

// String returns the values of k separated by spaces.
func (k Key) String() string {
	return k.Join(" ")
}

// Join returns the values of k separated by sep.
func (k Key) Join(sep string) string {
	parts := make([]string, k.n)
	for i, v := range k.vals[:k.n] {
		parts[i] = v.String()
	}
	return strings.Join(parts, sep)
}

// SortKeys sorts keys in ascending order.
func SortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Less(keys[j])
	})
}
