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

// Package selfcheck is checked with only the nilderef check enabled, but as a smartcast package
// it is checked with every check.
package selfcheck

func allChecks(p, q *int) {
	if p == nil {
		print(*p) // want "nil dereference: `p` is always nil"
	}
	if q != nil {
		if q != nil { // want "redundant nil check: `q` is always non-nil"
		}
	}
}
