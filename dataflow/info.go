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

package dataflow

import (
	"go.uber.org/smartcast/nullability"
	"go.uber.org/smartcast/util/orderedmap"
)

// Info is an immutable snapshot of the flow facts known at a program point: a nullability per
// value and a set of possible narrowed types per value. Derivation methods return new snapshots
// and never modify the receiver, so snapshots can be shared freely, including across goroutines.
// Empty is the only snapshot not derived from another one.
type Info interface {
	// NullabilityOf returns the most recent nullability fact for v, or its immanent nullability.
	NullabilityOf(v Value) nullability.Nullability
	// PredictableNullabilityOf is NullabilityOf for stable values and the immanent nullability
	// for all others.
	PredictableNullabilityOf(v Value) nullability.Nullability
	// PossibleTypesOf returns the types v is known to have besides its static type. Once null is
	// excluded, the not-nullable forms of those types (and of the static type) are included.
	PossibleTypesOf(v Value) TypeSet
	// CompleteNullabilityInfo returns all nullability facts visible from this snapshot.
	CompleteNullabilityInfo() *orderedmap.OrderedMap[Identity, NullabilityFact]
	// CompleteTypeInfo returns all type facts visible from this snapshot.
	CompleteTypeInfo() *orderedmap.OrderedMap[Identity, TypeFact]

	// ClearValueInfo forgets everything about v, as after an unobserved reassignment.
	ClearValueInfo(v Value) Info
	// Assign models `a = b`: a takes over the facts of b and forgets its own.
	Assign(a, b Value) Info
	// Equate models a successful `a == b`.
	Equate(a, b Value) Info
	// Disequate models a successful `a != b`.
	Disequate(a, b Value) Info
	// EstablishSubtyping models a successful type check or cast of v to t.
	EstablishSubtyping(v Value, t Type) Info
	// And combines with facts that additionally became true afterwards.
	And(other Info) Info
	// Or merges with the facts of another branch: only facts true on both survive.
	Or(other Info) Info

	// IsEmpty reports whether this is Empty.
	IsEmpty() bool
	// Depth is the length of the parent chain behind this snapshot.
	Depth() int
	String() string

	snapshot() *chained
}

// NullabilityFact is a recorded nullability of a value.
type NullabilityFact struct {
	Value       Value
	Nullability nullability.Nullability
}

// TypeFact is a recorded set of possible types of a value.
type TypeFact struct {
	Value Value
	Types TypeSet
}

// Empty is the snapshot without any facts, used at the entry of every analyzed body.
var Empty Info = _empty

var _empty = &chained{
	nullability: orderedmap.New[Identity, NullabilityFact](),
	types:       orderedmap.New[Identity, TypeFact](),
}
