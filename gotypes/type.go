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

// Package gotypes binds the dataflow engine to go/types: it provides the host type system (Type),
// the resolution of Go expressions into dataflow identities (Resolver), and the mutability scan
// that decides which local variables are stable.
package gotypes

import (
	"go/types"

	"go.uber.org/smartcast/dataflow"
)

// Type is a Go type as seen by the dataflow engine. A Type marked non-nil excludes nil from the
// values of a nilable Go type. For interface values, a possible type recorded by the engine is a
// dynamic type, and the non-nil marker then states that the interface value itself is non-nil.
type Type struct {
	typ    types.Type
	nonNil bool
}

var _ dataflow.Type = Type{}

// Of returns the dataflow type of t. A nil t is the error type.
func Of(t types.Type) Type {
	return Type{typ: t}
}

// NonNil returns the dataflow type of t with nil excluded.
func NonNil(t types.Type) Type {
	return Type{typ: t, nonNil: Nilable(t)}
}

// GoType returns the underlying Go type.
func (t Type) GoType() types.Type { return t.typ }

func (t Type) String() string {
	if t.typ == nil {
		return "invalid type"
	}
	s := types.TypeString(t.typ, (*types.Package).Name)
	if t.nonNil {
		s += " (non-nil)"
	}
	return s
}

func (t Type) IsNullable() bool {
	return !t.nonNil && t.typ != nil && Nilable(t.typ)
}

func (t Type) IsError() bool {
	if t.typ == nil {
		return true
	}
	b, ok := t.typ.(*types.Basic)
	return ok && b.Kind() == types.Invalid
}

func (t Type) IsNullableNothing() bool {
	b, ok := t.typ.(*types.Basic)
	return ok && b.Kind() == types.UntypedNil
}

func (t Type) MakeNotNullable() dataflow.Type {
	if !t.IsNullable() {
		return t
	}
	return Type{typ: t.typ, nonNil: true}
}

func (t Type) IsSubtypeOf(other dataflow.Type) bool {
	o, ok := other.(Type)
	if !ok {
		return false
	}
	if t.IsError() || o.IsError() {
		return true
	}
	if t.IsNullable() && !o.IsNullable() {
		return false
	}
	return types.AssignableTo(t.typ, o.typ)
}

func (t Type) Identical(other dataflow.Type) bool {
	o, ok := other.(Type)
	if !ok || t.nonNil != o.nonNil {
		return false
	}
	if t.typ == nil || o.typ == nil {
		return t.typ == o.typ
	}
	return types.Identical(t.typ, o.typ)
}

// Nilable returns true iff nil is a value of t: pointers, interfaces, maps, slices, channels,
// functions, unsafe pointers, untyped nil, and type parameters whose type set only holds such
// types.
func Nilable(t types.Type) bool {
	t = types.Unalias(t)
	if tp, ok := t.(*types.TypeParam); ok {
		return typeParamNilable(tp)
	}

	switch u := t.Underlying().(type) {
	case *types.Pointer, *types.Interface, *types.Map, *types.Slice, *types.Chan, *types.Signature:
		return true
	case *types.Basic:
		return u.Kind() == types.UnsafePointer || u.Kind() == types.UntypedNil
	default:
		return false
	}
}

// typeParamNilable returns true if every type in the type set of tp is nilable. A constraint
// without type terms admits non-nilable types, so it is not nilable.
func typeParamNilable(tp *types.TypeParam) bool {
	iface, ok := tp.Constraint().Underlying().(*types.Interface)
	if !ok || iface.IsMethodSet() {
		return false
	}

	found := false
	for i := 0; i < iface.NumEmbeddeds(); i++ {
		switch e := iface.EmbeddedType(i).(type) {
		case *types.Union:
			for j := 0; j < e.Len(); j++ {
				if !Nilable(e.Term(j).Type()) {
					return false
				}
				found = true
			}
		default:
			if _, isIface := e.Underlying().(*types.Interface); isIface {
				continue
			}
			if !Nilable(e) {
				return false
			}
			found = true
		}
	}
	return found
}
