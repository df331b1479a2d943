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
	"errors"
	"fmt"
)

var (
	// ErrNoReceiver is the panic value when a value is requested for an absent receiver.
	ErrNoReceiver = errors.New("dataflow: value requested for an absent receiver")
	// ErrOverridableTopLevel is the panic value when a top-level property claims to be
	// overridable, which earlier phases must rule out.
	ErrOverridableTopLevel = errors.New("dataflow: top-level property is overridable")
)

// Expr is a host expression node. It must be comparable (typically a pointer), since it becomes
// the identity of expressions without a stable identifier.
type Expr = any

// Module is a host compilation module. It must be comparable.
type Module = any

// ExprKind classifies host expressions for identifier-chain resolution.
type ExprKind uint8

const (
	// ExprOther is any expression without a stable identifier.
	ExprOther ExprKind = iota
	// ExprNullLiteral is the null literal.
	ExprNullLiteral
	// ExprParenthesized wraps another expression, see ResolutionContext.Inner.
	ExprParenthesized
	// ExprQualified is `receiver.selector`, see ResolutionContext.Qualified.
	ExprQualified
	// ExprSimpleName is a reference by name, see ResolutionContext.Reference.
	ExprSimpleName
	// ExprThis is a `this` reference, see ResolutionContext.ThisReceiver.
	ExprThis
)

// Visibility is the effective visibility of a property, containers included.
type Visibility uint8

const (
	Public Visibility = iota
	Protected
	Internal
	Private
	Local
)

// InvisibleFromOtherModules reports whether no other module can observe a declaration with this
// visibility.
func (v Visibility) InvisibleFromOtherModules() bool {
	return v == Internal || v == Private || v == Local
}

// PropertyInfo describes a member or top-level property.
type PropertyInfo struct {
	// Overridable is the effective modality: the property or its container allows overriding.
	Overridable bool
	// TopLevel is set for properties declared outside of any class body.
	TopLevel bool
	// CustomGetter is set unless the property uses the default accessor.
	CustomGetter bool
	// Visibility is the effective visibility.
	Visibility Visibility
	// Module is the module declaring the property.
	Module Module
}

// VariableInfo describes a variable, parameter or property.
type VariableInfo struct {
	Name string
	Type Type
	// Mutable is set for reassignable declarations.
	Mutable bool
	// Captured is set for mutable locals that can be written outside the current flow.
	Captured bool
	// Property is nil for locals and parameters.
	Property *PropertyInfo
}

// Variable is a resolved variable declaration. Implementations must be comparable.
type Variable interface {
	VariableInfo() VariableInfo
}

// TargetKind is the kind of declaration a simple name resolves to.
type TargetKind uint8

const (
	// TargetNone is an unresolved or non-identity-bearing reference (functions, types...).
	TargetNone TargetKind = iota
	// TargetVariable is a variable, parameter or property.
	TargetVariable
	// TargetPackage is a package name; it contributes nothing to a qualified chain.
	TargetPackage
	// TargetObject is a singleton object, always stable.
	TargetObject
)

// Target is the resolved declaration of a simple name.
type Target struct {
	Kind     TargetKind
	Variable Variable
	// Object is the host handle of a TargetObject. It must be comparable.
	Object any
}

// Receiver is a receiver argument of a member access. The set of variants is closed.
type Receiver interface {
	ReceiverType() Type
	isReceiver()
}

// ImplicitReceiver is a `this`-like receiver: the receiver parameter of an enclosing member.
type ImplicitReceiver struct {
	Param any
	Type  Type
}

// TransientReceiver is a synthetic receiver (such as the instance running a script). It is
// never part of an identifier chain.
type TransientReceiver struct {
	Ref  any
	Type Type
}

// ExpressionReceiver is an explicit receiver expression.
type ExpressionReceiver struct {
	Expr Expr
	Type Type
}

func (r ImplicitReceiver) ReceiverType() Type   { return r.Type }
func (r TransientReceiver) ReceiverType() Type  { return r.Type }
func (r ExpressionReceiver) ReceiverType() Type { return r.Type }

func (ImplicitReceiver) isReceiver()   {}
func (TransientReceiver) isReceiver()  {}
func (ExpressionReceiver) isReceiver() {}

// ResolutionContext is what the host's binding phase provides to the factory.
type ResolutionContext interface {
	Kind(expr Expr) ExprKind
	// Inner returns the expression inside an ExprParenthesized.
	Inner(expr Expr) Expr
	// Qualified returns both sides of an ExprQualified.
	Qualified(expr Expr) (receiver, selector Expr)
	// Reference returns the declaration an ExprSimpleName resolves to.
	Reference(expr Expr) Target
	// ImplicitReceiver returns the receiver a simple name is implicitly accessed through, if
	// any. It must report nothing for the selector of a qualified expression.
	ImplicitReceiver(expr Expr) (Receiver, bool)
	// ThisReceiver returns the receiver an ExprThis refers to.
	ThisReceiver(expr Expr) (ImplicitReceiver, bool)
	// UsageModule is the module being analyzed.
	UsageModule() Module
}

// Factory builds Values from host expressions, receivers and variables.
type Factory struct {
	ctx ResolutionContext
}

// NewFactory returns a factory resolving through ctx.
func NewFactory(ctx ResolutionContext) *Factory {
	return &Factory{ctx: ctx}
}

// FromExpression returns the value of expr, whose type is typ. The null literal and expressions
// of the nullable-nothing type are NullValue, erroneous expressions are ErrorValue. Expressions
// without a stable identifier get an identity of their own.
func (f *Factory) FromExpression(expr Expr, typ Type) Value {
	if f.ctx.Kind(expr) == ExprNullLiteral {
		return NullValue
	}
	if typ == nil || typ.IsError() {
		return ErrorValue
	}
	if typ.IsNullableNothing() {
		return NullValue
	}

	info := f.exprIdentifier(expr)
	if !info.ok() || info.pkg {
		return NewValue(Expression{Ref: expr}, typ, Other)
	}
	return NewValue(info.id, typ, info.kind)
}

// FromReceiver returns the value of a receiver. A nil receiver panics with ErrNoReceiver.
func (f *Factory) FromReceiver(receiver Receiver) Value {
	switch r := receiver.(type) {
	case nil:
		panic(ErrNoReceiver)
	case ImplicitReceiver:
		return NewValue(ThisReceiver{Ref: r.Param}, r.Type, StableValue)
	case TransientReceiver:
		return NewValue(Transient{Ref: r.Ref}, r.Type, StableValue)
	case ExpressionReceiver:
		return f.FromExpression(r.Expr, r.Type)
	default:
		panic(fmt.Sprintf("dataflow: unknown receiver %T", receiver))
	}
}

// FromVariable returns the value of a variable read in the module being analyzed.
func (f *Factory) FromVariable(v Variable) Value {
	return NewValue(Declaration{Ref: v}, v.VariableInfo().Type, f.VariableKind(v))
}

// VariableKind classifies a variable read in the module being analyzed. A variable is a
// StableValue iff it is not reassignable and, for properties, it cannot be overridden, uses the
// default getter, and is either invisible from other modules or declared in the usage module.
func (f *Factory) VariableKind(v Variable) Kind {
	info := v.VariableInfo()
	if p := info.Property; p != nil {
		return f.propertyKind(info, p)
	}
	switch {
	case !info.Mutable:
		return StableValue
	case info.Captured:
		return CapturedVariable
	default:
		return StableVariable
	}
}

func (f *Factory) propertyKind(info VariableInfo, p *PropertyInfo) Kind {
	if p.Overridable && p.TopLevel {
		panic(fmt.Errorf("%w: %s", ErrOverridableTopLevel, info.Name))
	}
	switch {
	case info.Mutable:
		return MutableProperty
	case p.Overridable, p.CustomGetter:
		return PropertyWithGetter
	case !p.Visibility.InvisibleFromOtherModules():
		if usage := f.ctx.UsageModule(); usage == nil || usage != p.Module {
			return AlienPublicProperty
		}
	}
	return StableValue
}

// identifier is the stable identifier of an expression, if any.
type identifier struct {
	id   Identity
	kind Kind
	// pkg marks a package name, which carries no identity of its own.
	pkg bool
}

var (
	_noIdentifier      = identifier{}
	_packageIdentifier = identifier{pkg: true}
)

func (i identifier) ok() bool { return i.id != nil || i.pkg }

func (f *Factory) exprIdentifier(expr Expr) identifier {
	if expr == nil {
		return _noIdentifier
	}

	switch f.ctx.Kind(expr) {
	case ExprParenthesized:
		return f.exprIdentifier(f.ctx.Inner(expr))
	case ExprQualified:
		receiver, selector := f.ctx.Qualified(expr)
		return combine(f.exprIdentifier(receiver), f.exprIdentifier(selector))
	case ExprSimpleName:
		selector := f.targetIdentifier(f.ctx.Reference(expr))
		if receiver, ok := f.ctx.ImplicitReceiver(expr); ok {
			return combine(f.receiverIdentifier(receiver), selector)
		}
		return selector
	case ExprThis:
		if r, ok := f.ctx.ThisReceiver(expr); ok {
			return identifier{id: ThisReceiver{Ref: r.Param}, kind: StableValue}
		}
	}
	return _noIdentifier
}

func (f *Factory) targetIdentifier(t Target) identifier {
	switch t.Kind {
	case TargetVariable:
		if t.Variable == nil {
			return _noIdentifier
		}
		return identifier{id: Declaration{Ref: t.Variable}, kind: f.VariableKind(t.Variable)}
	case TargetPackage:
		return _packageIdentifier
	case TargetObject:
		return identifier{id: Declaration{Ref: t.Object}, kind: StableValue}
	default:
		return _noIdentifier
	}
}

func (f *Factory) receiverIdentifier(r Receiver) identifier {
	switch r := r.(type) {
	case ImplicitReceiver:
		return identifier{id: ThisReceiver{Ref: r.Param}, kind: StableValue}
	case ExpressionReceiver:
		return f.exprIdentifier(r.Expr)
	default:
		// Transient receivers are opaque, and nil means no receiver at all.
		return _noIdentifier
	}
}

// combine joins the identifiers of both sides of a qualified access. A selector without identity
// makes the whole chain identity-less; an absent, identity-less or package receiver contributes
// nothing.
func combine(receiver, selector identifier) identifier {
	if selector.id == nil {
		return _noIdentifier
	}
	if receiver.id == nil || receiver.pkg {
		return selector
	}

	kind := Other
	if receiver.kind == StableValue {
		kind = selector.kind
	}
	return identifier{id: Composite{Receiver: receiver.id, Selector: selector.id}, kind: kind}
}
