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

// Package nullability implements the four-state lattice of nullability facts that the dataflow
// engine attaches to values.
package nullability

// Nullability is what is known about whether a value can be null at a program point. It is a
// closed set of four states encoded as two flags: whether the value can be null and whether it
// can be non-null. Unknown allows both, Impossible allows neither and marks contradictory facts
// (dead code).
type Nullability uint8

const (
	_canBeNull Nullability = 1 << iota
	_canBeNonNull
)

const (
	// Impossible is the most specific state: the value can be neither null nor non-null.
	Impossible Nullability = 0
	// Null means the value is definitely null.
	Null = _canBeNull
	// NotNull means the value is definitely not null.
	NotNull = _canBeNonNull
	// Unknown is the least specific state.
	Unknown = _canBeNull | _canBeNonNull
)

// All returns the whole domain, in order of decreasing specificity.
func All() []Nullability {
	return []Nullability{Impossible, Null, NotNull, Unknown}
}

// CanBeNull returns true for Unknown and Null.
func (n Nullability) CanBeNull() bool {
	return n&_canBeNull != 0
}

// CanBeNonNull returns true for Unknown and NotNull.
func (n Nullability) CanBeNonNull() bool {
	return n&_canBeNonNull != 0
}

// And is the conjunction of two facts holding at the same time. Unknown is the identity,
// Impossible absorbs, and contradictory facts (Null and NotNull) give Impossible.
func (n Nullability) And(other Nullability) Nullability {
	return n & other
}

// Or is the disjunction of facts coming from two merged branches: only what holds on both
// branches survives. Impossible (an unreachable branch) is the identity.
func (n Nullability) Or(other Nullability) Nullability {
	return n | other
}

// Invert swaps Null and NotNull. Unknown and Impossible are their own inverses.
func (n Nullability) Invert() Nullability {
	switch n {
	case Null:
		return NotNull
	case NotNull:
		return Null
	default:
		return n
	}
}

// Refine narrows n with an additionally learned fact.
func (n Nullability) Refine(other Nullability) Nullability {
	return n.And(other)
}

// AfterDisequality returns what `a != b` tells about `a` when `b` has nullability n. Only a
// definitely null `b` says something (`a` is then not null); inequality with a non-null value
// says nothing about `a`.
func (n Nullability) AfterDisequality() Nullability {
	if n == Null {
		return n.Invert()
	}
	return Unknown
}

// IsMoreSpecificOrEqual reports whether n carries at least the information of other, i.e. every
// state allowed by n is also allowed by other.
func (n Nullability) IsMoreSpecificOrEqual(other Nullability) bool {
	return n&^other == 0
}

func (n Nullability) String() string {
	switch n {
	case Impossible:
		return "IMPOSSIBLE"
	case Null:
		return "NULL"
	case NotNull:
		return "NOT_NULL"
	case Unknown:
		return "UNKNOWN"
	default:
		return "INVALID"
	}
}
