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

// Package closures checks that function literals are checked on their own, and that variables
// written by them are not trusted.
package closures

func captured() {
	var p *int
	func() {
		p = new(int)
	}()
	if p != nil {
	}
}

func literalStartsEmpty(p *int) {
	if p == nil {
		return
	}
	f := func() {
		if p == nil {
		}
	}
	f()
}

func literalBody() {
	f := func(q *int) {
		if q == nil {
			return
		}
		if q == nil { // want "redundant nil check: `q` is always non-nil"
		}
	}
	f(nil)
}

func addressTaken() {
	var p *int
	set(&p)
	if p == nil {
	}
}

func set(pp **int) { *pp = new(int) }
