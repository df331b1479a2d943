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

// Package controlflow checks how facts flow through branches, switches, loops and jumps.
package controlflow

type node struct{ next *node }

func switchTag(p *int) {
	switch p {
	case nil:
		return
	}
	if p == nil { // want "redundant nil check: `p` is always non-nil"
	}
}

func switchConditions(p, q *int) {
	switch {
	case p == nil:
		return
	case q == nil:
		if p == nil { // want "redundant nil check: `p` is always non-nil"
		}
	default:
		if q == nil { // want "redundant nil check: `q` is always non-nil"
		}
	}
}

func fallThrough(p *int, n int) {
	if p == nil {
		return
	}
	switch n {
	case 0:
		fallthrough
	case 1:
		if p == nil { // want "redundant nil check: `p` is always non-nil"
		}
	}
}

func loopInvariant(p *int, n int) {
	if p == nil {
		return
	}
	for i := 0; i < n; i++ {
		if p == nil { // want "redundant nil check: `p` is always non-nil"
		}
	}
}

func loopAssigned(ps []*int) {
	var last *int
	for _, p := range ps {
		if last != nil {
			print(*last)
		}
		last = p
	}
	if last == nil {
	}
}

func walk(n *node) {
	for n != nil {
		if n == nil { // want "redundant nil check: `n` is always non-nil"
		}
		n = n.next
	}
	if n != nil { // want "redundant nil check: `n` is always nil"
	}
}

func labels(rows [][]*int) {
outer:
	for _, row := range rows {
		for _, p := range row {
			if p == nil {
				continue outer
			}
			if p == nil { // want "redundant nil check: `p` is always non-nil"
			}
			break outer
		}
	}
}

func breakCarriesFacts(p *int, n int) {
	for i := 0; i < n; i++ {
		if p != nil {
			break
		}
		return
	}
	// The loop is left either through the break, or without entering its body.
	if p == nil {
	}
}

func channels(ch chan *int) {
	for range ch {
	}
	if ch == nil { // want "redundant nil check: `ch` is always non-nil"
	}
}

func selects(a, b chan *int, p *int) {
	if p == nil {
		return
	}
	select {
	case v := <-a:
		print(v)
	case <-b:
	}
	if p == nil { // want "redundant nil check: `p` is always non-nil"
	}
}

// Nothing is known at a label that goto statements jump to.
func gotoLabel(p *int) {
	if p == nil {
		return
	}
	goto done
done:
	if p == nil {
	}
}
