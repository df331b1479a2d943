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

// Package nilcheck checks that nil comparisons whose outcome is decided by the conditions,
// dereferences and assignments before them are reported.
package nilcheck

type T struct {
	f    int
	next *T
}

func (t T) value() int { return t.f }

func (t *T) pointer() int { return 0 }

var global *int

type E struct{}

func (*E) Error() string { return "E" }

func sameCondition(p *int) {
	if p != nil {
		if p != nil { // want "redundant nil check: `p` is always non-nil"
			print(*p)
		}
	}
}

func earlyReturn(p *int) {
	if p == nil {
		return
	}
	if p == nil { // want "redundant nil check: `p` is always non-nil"
		return
	}
	if nil != p { // want "redundant nil check: `p` is always non-nil"
	}
}

func alwaysNil() {
	var p *int
	if p == nil { // want "redundant nil check: `p` is always nil"
	}
}

func conjunction(p, q *int) {
	if p != nil && q != nil {
		if p == nil || q == nil { // want "redundant nil check: `p` is always non-nil" "redundant nil check: `q` is always non-nil"
		}
	}
	if p == nil || q == nil {
		return
	}
	if q != nil { // want "redundant nil check: `q` is always non-nil"
	}
}

func negation(p *int) {
	if !(p != nil) {
		return
	}
	if p == nil { // want "redundant nil check: `p` is always non-nil"
	}
}

func dereferences(p *int, t *T, fn func() int, ch chan int, err error) {
	print(*p)
	if p == nil { // want "redundant nil check: `p` is always non-nil"
	}
	print(t.f)
	if t == nil { // want "redundant nil check: `t` is always non-nil"
	}
	print(fn())
	if fn == nil { // want "redundant nil check: `fn` is always non-nil"
	}
	<-ch
	if ch == nil { // want "redundant nil check: `ch` is always non-nil"
	}
	print(err.Error())
	if err == nil { // want "redundant nil check: `err` is always non-nil"
	}
}

func methods(t, u *T) {
	// Methods with pointer receivers accept nil.
	print(t.pointer())
	if t == nil {
	}
	print(u.value())
	if u == nil { // want "redundant nil check: `u` is always non-nil"
	}
}

func equality(p, q *int) {
	if q == nil {
		return
	}
	if p == q {
		if p == nil { // want "redundant nil check: `p` is always non-nil"
		}
	}
}

func reassigned(p *int) {
	x := p
	if x == nil {
	}
	x = new(int)
	if x == nil { // want "redundant nil check: `x` is always non-nil"
	}
	x = nil
	if x != nil { // want "redundant nil check: `x` is always nil"
	}
}

func noAliasing(p *int) {
	q := p
	if p != nil {
		// q holds what p held when it was assigned.
		if q == nil {
		}
	}
}

// Package variables and fields may be changed by other goroutines or calls.
func untrusted(t *T) {
	if global == nil {
		return
	}
	if global == nil {
	}
	if t.next == nil {
		return
	}
	if t.next == nil {
	}
}

// An interface holding a nil pointer is not nil.
func typedNil() {
	var p *E
	var err error = p
	if err != nil { // want "redundant nil check: `err` is always non-nil"
		if p == nil { // want "redundant nil check: `p` is always nil"
		}
	}
	var other error
	other = p
	if other == nil { // want "redundant nil check: `other` is always non-nil"
	}
}

func interfaceEquality(err error, p *E) {
	if err == p {
		// err holds a *E, which may be nil.
		if err == nil { // want "redundant nil check: `err` is always non-nil"
		}
		if p == nil {
		}
	}
	if err != p {
		return
	}
	if err != nil { // want "redundant nil check: `err` is always non-nil"
	}
}

func typedNilEquality() {
	var p *E
	var err error
	if err == p {
		return
	}
	if err == nil { // want "redundant nil check: `err` is always nil"
	}
}

func deferred(fn, other func(), t *T) {
	// A nil deferred function only panics when deferred returns.
	defer fn()
	if fn == nil {
	}
	// The receiver is evaluated by the defer statement.
	defer t.value()
	if t == nil { // want "redundant nil check: `t` is always non-nil"
	}
	go other()
	if other == nil { // want "redundant nil check: `other` is always non-nil"
	}
}
