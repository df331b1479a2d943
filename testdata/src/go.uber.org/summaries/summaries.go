//  Copyright (c) 2026 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package summaries checks that the results a function never returns nil for are known at its
// call sites, within the package and across packages.
package summaries

import "go.uber.org/summaries/lib"

type T struct{}

func newT() *T { return &T{} }

func newTIndirect() *T { return newT() }

func maybeT(b bool) *T {
	if b {
		return nil
	}
	return &T{}
}

func named() (t *T, err error) {
	t = &T{}
	return
}

func neverReturns() *T { panic("unimplemented") }

type E struct{}

func (*E) Error() string { return "E" }

// typedNil returns an error holding a nil *E, which is not a nil error.
func typedNil() error {
	var p *E
	return p
}

func local() {
	a := newT()
	if a == nil { // want "redundant nil check: `a` is always non-nil"
	}
	b := newTIndirect()
	if b == nil { // want "redundant nil check: `b` is always non-nil"
	}
	c := maybeT(true)
	if c == nil {
	}
	d, err := named()
	if d == nil { // want "redundant nil check: `d` is always non-nil"
	}
	if err != nil {
	}
	e := neverReturns()
	if e == nil {
	}
	if err := typedNil(); err == nil { // want "redundant nil check: `err` is always non-nil"
	}
}

func imported() {
	l := lib.New()
	if l == nil { // want "redundant nil check: `l` is always non-nil"
	}
	m := lib.Maybe()
	if m == nil {
	}
	n := lib.NewLib().Self()
	if n == nil { // want "redundant nil check: `n` is always non-nil"
	}
}
