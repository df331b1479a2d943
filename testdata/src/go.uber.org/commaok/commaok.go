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

// Package commaok checks what the boolean of a comma-ok expression implies about its operands.
package commaok

type Shape interface{ Area() int }

func mapLookup(m map[string]*int) {
	v, ok := m["k"]
	if !ok {
		// The zero value is returned for missing keys.
		if v != nil { // want "redundant nil check: `v` is always nil"
		}
		return
	}
	// A nil map holds no keys.
	if m == nil { // want "redundant nil check: `m` is always non-nil"
	}
}

func assertInterface(v any) {
	s, ok := v.(Shape)
	if ok {
		if s == nil { // want "redundant nil check: `s` is always non-nil"
		}
		if v == nil { // want "redundant nil check: `v` is always non-nil"
		}
		return
	}
	if s != nil { // want "redundant nil check: `s` is always nil"
	}
}

func receive(ch chan *int) {
	v, ok := <-ch
	if ok {
		print(v)
	}
	if ch == nil { // want "redundant nil check: `ch` is always non-nil"
	}
}

func reassignedOk(m map[string]*int, other bool) {
	v, ok := m["k"]
	ok = other
	if !ok {
		if v != nil {
		}
	}
}
