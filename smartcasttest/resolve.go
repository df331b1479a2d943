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

package smartcasttest

import "go.uber.org/smartcast/dataflow"

// Var is a fake variable declaration.
type Var struct {
	Info dataflow.VariableInfo
}

// VariableInfo implements dataflow.Variable.
func (v *Var) VariableInfo() dataflow.VariableInfo { return v.Info }

// Val returns an immutable local of the given type.
func Val(name string, typ dataflow.Type) *Var {
	return &Var{Info: dataflow.VariableInfo{Name: name, Type: typ}}
}

// LocalVar returns a reassignable local of the given type.
func LocalVar(name string, typ dataflow.Type, captured bool) *Var {
	return &Var{Info: dataflow.VariableInfo{Name: name, Type: typ, Mutable: true, Captured: captured}}
}

// Property returns a property of the given type.
func Property(name string, typ dataflow.Type, mutable bool, p dataflow.PropertyInfo) *Var {
	return &Var{Info: dataflow.VariableInfo{Name: name, Type: typ, Mutable: mutable, Property: &p}}
}

// Expr is a fake expression node. Expressions are compared by pointer.
type Expr struct {
	kind     dataflow.ExprKind
	inner    *Expr
	receiver *Expr
	selector *Expr
	target   dataflow.Target
	implicit dataflow.Receiver
	this     *dataflow.ImplicitReceiver
	text     string
}

func (e *Expr) String() string { return e.text }

// Null returns a null literal.
func Null() *Expr { return &Expr{kind: dataflow.ExprNullLiteral, text: "null"} }

// Call returns an expression without a stable identifier.
func Call(text string) *Expr { return &Expr{kind: dataflow.ExprOther, text: text} }

// Name returns a simple name referring to a variable.
func Name(v *Var) *Expr {
	return &Expr{
		kind:   dataflow.ExprSimpleName,
		target: dataflow.Target{Kind: dataflow.TargetVariable, Variable: v},
		text:   v.Info.Name,
	}
}

// ImplicitName returns a simple name accessed through an implicit receiver.
func ImplicitName(v *Var, receiver dataflow.Receiver) *Expr {
	e := Name(v)
	e.implicit = receiver
	return e
}

// PackageName returns a simple name referring to a package.
func PackageName(name string) *Expr {
	return &Expr{kind: dataflow.ExprSimpleName, target: dataflow.Target{Kind: dataflow.TargetPackage}, text: name}
}

// Object returns a simple name referring to a singleton object.
func Object(name string, obj any) *Expr {
	return &Expr{kind: dataflow.ExprSimpleName, target: dataflow.Target{Kind: dataflow.TargetObject, Object: obj}, text: name}
}

// Dot returns the qualified expression receiver.selector.
func Dot(receiver, selector *Expr) *Expr {
	return &Expr{kind: dataflow.ExprQualified, receiver: receiver, selector: selector, text: receiver.text + "." + selector.text}
}

// Paren returns (inner).
func Paren(inner *Expr) *Expr {
	return &Expr{kind: dataflow.ExprParenthesized, inner: inner, text: "(" + inner.text + ")"}
}

// This returns a this reference to the receiver.
func This(r dataflow.ImplicitReceiver) *Expr {
	return &Expr{kind: dataflow.ExprThis, this: &r, text: "this"}
}

// Context resolves fake expressions. Module is the usage module.
type Context struct {
	Module dataflow.Module
}

var _ dataflow.ResolutionContext = Context{}

func (Context) Kind(expr dataflow.Expr) dataflow.ExprKind {
	if e, ok := expr.(*Expr); ok && e != nil {
		return e.kind
	}
	return dataflow.ExprOther
}

func (Context) Inner(expr dataflow.Expr) dataflow.Expr {
	return expr.(*Expr).inner
}

func (Context) Qualified(expr dataflow.Expr) (receiver, selector dataflow.Expr) {
	e := expr.(*Expr)
	return e.receiver, e.selector
}

func (Context) Reference(expr dataflow.Expr) dataflow.Target {
	return expr.(*Expr).target
}

func (Context) ImplicitReceiver(expr dataflow.Expr) (dataflow.Receiver, bool) {
	e := expr.(*Expr)
	return e.implicit, e.implicit != nil
}

func (Context) ThisReceiver(expr dataflow.Expr) (dataflow.ImplicitReceiver, bool) {
	e := expr.(*Expr)
	if e.this == nil {
		return dataflow.ImplicitReceiver{}, false
	}
	return *e.this, true
}

func (c Context) UsageModule() dataflow.Module { return c.Module }
