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
	"slices"
	"strings"
)

// Type is the view of the host type system the engine needs.
type Type interface {
	String() string
	// IsNullable reports whether null is a value of the type, including through upper bounds.
	IsNullable() bool
	// IsError reports whether the type is the result of a resolution or type-checking error.
	IsError() bool
	// IsNullableNothing reports whether the type's only inhabitant is null.
	IsNullableNothing() bool
	// MakeNotNullable returns the type with null excluded. It returns the type itself if it is
	// not nullable.
	MakeNotNullable() Type
	// IsSubtypeOf reports whether every value of the type is a value of other.
	IsSubtypeOf(other Type) bool
	// Identical reports whether both types denote the same type.
	Identical(other Type) bool
}

// TypeSet is a small insertion-ordered set of types, de-duplicated with Type.Identical. The zero
// value is the empty set. TypeSets are treated as immutable: operations return new sets.
type TypeSet []Type

// NewTypeSet returns a set holding the given types.
func NewTypeSet(types ...Type) TypeSet {
	var s TypeSet
	for _, t := range types {
		s = s.With(t)
	}
	return s
}

// Contains reports whether an identical type is in the set.
func (s TypeSet) Contains(t Type) bool {
	return slices.ContainsFunc(s, t.Identical)
}

// With returns the set with t added.
func (s TypeSet) With(t Type) TypeSet {
	if s.Contains(t) {
		return s
	}
	return append(slices.Clip(s), t)
}

// Union returns the set with all types of other added.
func (s TypeSet) Union(other TypeSet) TypeSet {
	for _, t := range other {
		s = s.With(t)
	}
	return s
}

// Intersect returns the types of s that are also in other.
func (s TypeSet) Intersect(other TypeSet) TypeSet {
	var out TypeSet
	for _, t := range s {
		if other.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}

// Equal reports whether both sets hold identical types, regardless of order.
func (s TypeSet) Equal(other TypeSet) bool {
	if len(s) != len(other) {
		return false
	}
	for _, t := range s {
		if !other.Contains(t) {
			return false
		}
	}
	return true
}

func (s TypeSet) String() string {
	names := make([]string, len(s))
	for i, t := range s {
		names[i] = t.String()
	}
	return "{" + strings.Join(names, ", ") + "}"
}
