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

// Package smartcasttest provides a small nominal type system and resolution context for testing
// the dataflow engine without a Go host. Classes are not-nullable types with supertypes, each
// paired with its nullable twin.
package smartcasttest

import "go.uber.org/smartcast/dataflow"

// Type is a fake class type. Types are compared by pointer.
type Type struct {
	name     string
	nullable bool
	// twin is the other nullability of the same class.
	twin   *Type
	supers []*Type
	// bottom marks Nothing, which is below every class.
	bottom bool
	err    bool
}

var (
	// Any is the root class.
	Any = newClass("Any", nil)
	// Nothing is the empty class. Nothing.Nullable() only holds null.
	Nothing = newSpecial("Nothing", true, false)
	// ErrorType is the type of erroneous expressions.
	ErrorType = newSpecial("<error>", false, true)
)

var _ dataflow.Type = (*Type)(nil)

// NewClass returns the not-nullable type of a new class. A class without explicit supertypes
// extends Any.
func NewClass(name string, supers ...*Type) *Type {
	if len(supers) == 0 {
		supers = []*Type{Any}
	}
	return newClass(name, supers)
}

func newClass(name string, supers []*Type) *Type {
	t := &Type{name: name, supers: supers}
	t.twin = &Type{name: name, nullable: true, twin: t, supers: supers}
	return t
}

func newSpecial(name string, bottom, err bool) *Type {
	t := &Type{name: name, bottom: bottom, err: err}
	t.twin = &Type{name: name, nullable: true, twin: t, bottom: bottom, err: err}
	return t
}

// Nullable returns the nullable form of t.
func (t *Type) Nullable() *Type {
	if t.nullable {
		return t
	}
	return t.twin
}

func (t *Type) String() string {
	if t.nullable {
		return t.name + "?"
	}
	return t.name
}

func (t *Type) IsNullable() bool { return t.nullable }

func (t *Type) IsError() bool { return t.err }

func (t *Type) IsNullableNothing() bool { return t.bottom && t.nullable }

func (t *Type) MakeNotNullable() dataflow.Type {
	if !t.nullable {
		return t
	}
	return t.twin
}

func (t *Type) IsSubtypeOf(other dataflow.Type) bool {
	o, ok := other.(*Type)
	if !ok {
		return false
	}
	if t.err || o.err {
		return true
	}
	if t.nullable && !o.nullable {
		return false
	}
	return t.notNull().extends(o.notNull())
}

func (t *Type) Identical(other dataflow.Type) bool {
	o, ok := other.(*Type)
	return ok && o == t
}

func (t *Type) notNull() *Type {
	if t.nullable {
		return t.twin
	}
	return t
}

func (t *Type) extends(o *Type) bool {
	if t == o || t.bottom {
		return true
	}
	for _, s := range t.supers {
		if s.extends(o) {
			return true
		}
	}
	return false
}
