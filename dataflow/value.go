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
	"fmt"

	"go.uber.org/smartcast/nullability"
)

// Kind classifies how far facts about a value can be trusted.
type Kind uint8

const (
	// Other is an expression without a stable identity, or a declaration that is neither a
	// variable nor a property.
	Other Kind = iota
	// StableValue is a value that cannot change: facts about it always hold.
	StableValue
	// StableVariable is a reassignable local variable that is never changed behind the analysis'
	// back: facts hold until the next assignment, which the analysis observes.
	StableVariable
	// CapturedVariable is a reassignable local variable that may be changed from elsewhere (a
	// closure, a pointer to it).
	CapturedVariable
	// PropertyWithGetter is a property whose value is computed on every read: it has a custom
	// getter or can be overridden.
	PropertyWithGetter
	// AlienPublicProperty is a property declared in another module whose implementation may
	// change independently.
	AlienPublicProperty
	// MutableProperty is a reassignable property.
	MutableProperty
)

func (k Kind) String() string {
	switch k {
	case Other:
		return "other"
	case StableValue:
		return "stable value"
	case StableVariable:
		return "stable variable"
	case CapturedVariable:
		return "captured variable"
	case PropertyWithGetter:
		return "property with getter"
	case AlienPublicProperty:
		return "public property from another module"
	case MutableProperty:
		return "mutable property"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a dataflow key: an identity together with what is statically known about it. Equality
// of values is equality of identities; the type is informational.
type Value struct {
	id       Identity
	typ      Type
	kind     Kind
	immanent nullability.Nullability
}

var (
	// NullValue is the null literal, immanently Null.
	NullValue = Value{id: NullLiteral{}, kind: StableValue, immanent: nullability.Null}
	// ErrorValue stands for erroneous expressions. No facts are ever recorded for it.
	ErrorValue = Value{id: ErrorSentinel{}, kind: Other, immanent: nullability.Unknown}
)

// NewValue returns a value with the given identity, static type and kind. The immanent
// nullability is derived from the type.
func NewValue(id Identity, typ Type, kind Kind) Value {
	return Value{id: id, typ: typ, kind: kind, immanent: ImmanentNullability(typ)}
}

// ImmanentNullability is the nullability implied by a static type alone.
func ImmanentNullability(t Type) nullability.Nullability {
	if t == nil || t.IsNullable() {
		return nullability.Unknown
	}
	return nullability.NotNull
}

// ID returns the identity of the value.
func (v Value) ID() Identity { return v.id }

// Type returns the static type of the value, nil for the sentinels.
func (v Value) Type() Type { return v.typ }

// Kind returns the stability classification of the value.
func (v Value) Kind() Kind { return v.kind }

// IsStable reports whether facts about the value persist across arbitrary statements.
func (v Value) IsStable() bool { return v.kind == StableValue }

// ImmanentNullability returns the nullability implied by the value's static type.
func (v Value) ImmanentNullability() nullability.Nullability { return v.immanent }

// Equal reports whether both values have the same identity.
func (v Value) Equal(other Value) bool { return v.id == other.id }

// IsNull reports whether v is the null literal.
func (v Value) IsNull() bool { return v.id == NullLiteral{} }

// IsError reports whether v is the error sentinel.
func (v Value) IsError() bool { return v.id == ErrorSentinel{} }

// trackable reports whether facts may be recorded for v.
func (v Value) trackable() bool {
	return v.id != nil && !v.IsNull() && !v.IsError()
}

func (v Value) String() string {
	if v.id == nil {
		return "<invalid>"
	}
	return v.id.String()
}
