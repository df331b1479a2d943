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

// Package nilderef checks that dereferences of values that are always nil are reported, and that
// nothing after them is checked.
package nilderef

type T struct{ f int }

var global *int

func unassigned() {
	var p *int
	print(*p) // want "nil dereference: `p` is always nil"
	print(*p)
}

func afterCheck(p *int) int {
	if p == nil {
		return *p // want "nil dereference: `p` is always nil"
	}
	return *p
}

func field(t *T) int {
	if t != nil {
		return t.f
	}
	return t.f // want "nil dereference: `t` is always nil"
}

func funcValue() {
	var fn func()
	fn() // want "nil dereference: `fn` is always nil"
}

func arrayPointer() int {
	var a *[3]int
	return a[0] // want "nil dereference: `a` is always nil"
}

func assignedNil(p *int) {
	q := p
	q = nil
	print(*q) // want "nil dereference: `q` is always nil"
}

func assignedInBranch(b bool) {
	var p *int
	if b {
		p = new(int)
	}
	print(*p)
}

func globals() {
	global = nil
	print(*global)
}
