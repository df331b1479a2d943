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

package checker

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"

	"go.uber.org/smartcast/config"
	"go.uber.org/smartcast/dataflow"
	"go.uber.org/smartcast/gotypes"
	"go.uber.org/smartcast/hook"
	"go.uber.org/smartcast/nullability"
	"go.uber.org/smartcast/util/typeshelper"
)

// expr returns the flow after evaluating e: dereferences make their operand non-nil, calls may
// terminate or assert, and function literals are checked on their own.
func (c *funcChecker) expr(f flow, e ast.Expr) flow {
	if f.dead || e == nil || c.pass.IsType(e) {
		return f
	}

	switch e := e.(type) {
	case *ast.ParenExpr:
		return c.expr(f, e.X)
	case *ast.StarExpr:
		return c.deref(c.expr(f, e.X), e.X)
	case *ast.SelectorExpr:
		sel, ok := c.pass.TypesInfo.Selections[e]
		if !ok {
			// A qualified identifier.
			return f
		}
		f = c.expr(f, e.X)
		if derefsReceiver(sel, typeOf(c.pass.TypesInfo, e.X)) {
			f = c.deref(f, e.X)
		}
		return f
	case *ast.CallExpr:
		return c.call(f, e, _directCall)
	case *ast.FuncLit:
		c.funcLit(e)
		return f
	case *ast.UnaryExpr:
		f = c.expr(f, e.X)
		if e.Op == token.ARROW {
			// A receive from a nil channel blocks forever.
			f = c.assumeNonNil(f, e.X)
		}
		return f
	case *ast.BinaryExpr:
		switch e.Op {
		case token.LAND, token.LOR, token.EQL, token.NEQ:
			whenTrue, whenFalse := c.cond(f, e)
			return whenTrue.join(whenFalse)
		}
		return c.expr(c.expr(f, e.X), e.Y)
	case *ast.IndexExpr:
		f = c.expr(c.expr(f, e.X), e.Index)
		if isPointer(typeOf(c.pass.TypesInfo, e.X)) {
			// Indexing a pointer to an array.
			f = c.deref(f, e.X)
		}
		return f
	case *ast.IndexListExpr:
		return c.expr(f, e.X)
	case *ast.SliceExpr:
		f = c.expr(f, e.X)
		for _, index := range []ast.Expr{e.Low, e.High, e.Max} {
			f = c.expr(f, index)
		}
		if isPointer(typeOf(c.pass.TypesInfo, e.X)) {
			f = c.deref(f, e.X)
		}
		return f
	case *ast.TypeAssertExpr:
		f = c.expr(f, e.X)
		if e.Type == nil || f.dead {
			// The guard of a type switch, handled by the switch.
			return f
		}
		c.checkTypeAssert(f, e)
		x := c.value(e.X)
		return branch(assertedType(f.info, x, c.pass.TypesInfo.TypeOf(e.Type)), x)
	case *ast.CompositeLit:
		for _, elt := range e.Elts {
			f = c.expr(f, elt)
		}
		return f
	case *ast.KeyValueExpr:
		if _, isField := e.Key.(*ast.Ident); !isField {
			f = c.expr(f, e.Key)
		}
		return c.expr(f, e.Value)
	}
	return f
}

// callKind tells how a call expression is executed.
type callKind int

const (
	// _directCall is a call evaluated in place.
	_directCall callKind = iota
	// _goCall is the call of a go statement, which runs concurrently.
	_goCall
	// _deferredCall is the call of a defer statement, which runs when the function returns.
	_deferredCall
)

// call returns the flow after the call. Direct calls that never return kill the flow and
// assertion helpers establish the condition they assert. The function value and arguments of go
// and defer statements are evaluated in place, but a nil deferred function only panics when the
// function returns.
func (c *funcChecker) call(f flow, call *ast.CallExpr, kind callKind) flow {
	if c.pass.IsType(call.Fun) {
		// A conversion.
		for _, arg := range call.Args {
			f = c.expr(f, arg)
		}
		return f
	}

	fun := ast.Unparen(call.Fun)
	f = c.expr(f, fun)
	if kind != _deferredCall && c.isFuncValue(fun) {
		// Calling a nil function value panics.
		f = c.deref(f, fun)
	}
	for _, arg := range call.Args {
		f = c.expr(f, arg)
	}
	if f.dead {
		return f
	}

	// Variables whose address is passed may be written by the callee.
	for _, arg := range call.Args {
		if u, ok := ast.Unparen(arg).(*ast.UnaryExpr); ok && u.Op == token.AND {
			if ident, ok := ast.Unparen(u.X).(*ast.Ident); ok {
				f = c.clear(f, ident)
			}
		}
	}

	if kind != _directCall {
		return f
	}
	if hook.IsTerminatingCall(c.pass.Pass, call) {
		return _deadFlow
	}
	if assertion := hook.Assertion(c.pass.Pass, call); assertion != nil {
		c.quiet++
		whenTrue, _ := c.cond(f, assertion)
		c.quiet--
		return whenTrue
	}
	return f
}

// isFuncValue returns true if fun is a variable of function type rather than a declared
// function or method.
func (c *funcChecker) isFuncValue(fun ast.Expr) bool {
	var ident *ast.Ident
	switch fun := fun.(type) {
	case *ast.Ident:
		ident = fun
	case *ast.SelectorExpr:
		ident = fun.Sel
	default:
		return false
	}
	_, ok := c.pass.TypesInfo.Uses[ident].(*types.Var)
	return ok
}

// deref checks a dereference of x. Since a dereference of nil panics, x is non-nil afterwards.
func (c *funcChecker) deref(f flow, x ast.Expr) flow {
	if f.dead {
		return f
	}
	v := c.value(x)
	if n, ok := trusted(f.info, v); ok && n == nullability.Null {
		c.report(config.CheckNilDereference, x, _msgNilDereference, c.pass.ExprString(x))
		return _deadFlow
	}
	return f.with(f.info.Disequate(v, dataflow.NullValue))
}

// assumeNonNil records that x is non-nil after an operation that cannot complete otherwise.
func (c *funcChecker) assumeNonNil(f flow, x ast.Expr) flow {
	if f.dead {
		return f
	}
	v := c.value(x)
	return branch(f.info.Disequate(v, dataflow.NullValue), v)
}

// checkTypeAssert reports an assertion of a value that is non-nil and whose dynamic type is known
// to satisfy the asserted type.
func (c *funcChecker) checkTypeAssert(f flow, e *ast.TypeAssertExpr) {
	if f.dead {
		return
	}
	x := c.value(e.X)
	if n, ok := trusted(f.info, x); !ok || n != nullability.NotNull {
		return
	}
	target := c.pass.TypesInfo.TypeOf(e.Type)
	if target == nil {
		return
	}
	for _, t := range f.info.PossibleTypesOf(x) {
		dynamic, ok := t.(gotypes.Type)
		if !ok || dynamic.GoType() == nil || !typeshelper.AssertionHolds(dynamic.GoType(), target) {
			continue
		}
		c.report(config.CheckTypeAssertion, e, _msgTypeAssertion,
			c.pass.ExprString(e.X), types.TypeString(target, types.RelativeTo(c.pass.Pkg)))
		return
	}
}

// cond evaluates the condition e and returns the flows where it holds and where it does not.
func (c *funcChecker) cond(f flow, e ast.Expr) (whenTrue, whenFalse flow) {
	if f.dead {
		return f, f
	}
	if tv, ok := c.pass.TypesInfo.Types[e]; ok && tv.Value != nil && tv.Value.Kind() == constant.Bool {
		if constant.BoolVal(tv.Value) {
			return f, _deadFlow
		}
		return _deadFlow, f
	}

	switch e := e.(type) {
	case *ast.ParenExpr:
		return c.cond(f, e.X)
	case *ast.UnaryExpr:
		if e.Op == token.NOT {
			whenTrue, whenFalse = c.cond(f, e.X)
			return whenFalse, whenTrue
		}
	case *ast.BinaryExpr:
		switch e.Op {
		case token.LAND:
			xTrue, xFalse := c.cond(f, e.X)
			yTrue, yFalse := c.cond(xTrue, e.Y)
			return yTrue, xFalse.join(yFalse)
		case token.LOR:
			xTrue, xFalse := c.cond(f, e.X)
			yTrue, yFalse := c.cond(xFalse, e.Y)
			return xTrue.join(yTrue), yFalse
		case token.EQL:
			return c.equality(f, e)
		case token.NEQ:
			whenTrue, whenFalse = c.equality(f, e)
			return whenFalse, whenTrue
		}
	case *ast.Ident:
		if fact, ok := c.okFact(e); ok {
			return f.with(fact.whenTrue(f.info)), f.with(fact.whenFalse(f.info))
		}
	case *ast.CallExpr:
		if replaced := hook.ReplaceConditional(c.pass.Pass, e); replaced != nil {
			f = c.call(f, e, _directCall)
			c.quiet++
			whenTrue, _ = c.cond(f, replaced)
			c.quiet--
			return whenTrue, f
		}
	}

	f = c.expr(f, e)
	return f, f
}

// equality returns the flows where `e.X == e.Y` holds and where it does not, and reports nil
// comparisons whose outcome is known.
func (c *funcChecker) equality(f flow, e *ast.BinaryExpr) (equal, notEqual flow) {
	f = c.expr(c.expr(f, e.X), e.Y)
	if f.dead {
		return f, f
	}

	x, y := e.X, e.Y
	if hook.IsNilIdent(c.pass.TypesInfo, x) {
		x, y = y, x
	}
	// Comparing an interface with a concrete value compares it with the boxed value.
	vx := boxed(typeOf(c.pass.TypesInfo, y), c.value(x))
	vy := boxed(typeOf(c.pass.TypesInfo, x), c.value(y))
	if vy.IsNull() && !vx.IsNull() {
		c.checkNilComparison(f, e, x, vx)
	}
	return branch(f.info.Equate(vx, vy), vx, vy), branch(f.info.Disequate(vx, vy), vx, vy)
}

func (c *funcChecker) checkNilComparison(f flow, e *ast.BinaryExpr, x ast.Expr, v dataflow.Value) {
	n, ok := trusted(f.info, v)
	if !ok {
		return
	}
	switch n {
	case nullability.NotNull:
		c.report(config.CheckNilComparison, e, _msgAlwaysNonNil, c.pass.ExprString(x))
	case nullability.Null:
		c.report(config.CheckNilComparison, e, _msgAlwaysNil, c.pass.ExprString(x))
	}
}

// okFact returns what the comma-ok boolean ident implies, as long as it was never reassigned.
func (c *funcChecker) okFact(ident *ast.Ident) (okFact, bool) {
	v, ok := c.pass.TypesInfo.Uses[ident].(*types.Var)
	if !ok {
		return okFact{}, false
	}
	fact, ok := c.okFacts[v]
	if !ok || c.factory.VariableKind(c.resolver.Variable(v)) != dataflow.StableValue {
		return okFact{}, false
	}
	return fact, true
}

// derefsReceiver returns true if selecting sel on an operand of type x dereferences the operand:
// field selections through a pointer, methods with value receivers called through a pointer, and
// method calls on interfaces.
func derefsReceiver(sel *types.Selection, x types.Type) bool {
	switch sel.Kind() {
	case types.FieldVal:
		return isPointer(x)
	case types.MethodVal:
		if typeshelper.IsInterface(x) {
			return true
		}
		fn, ok := sel.Obj().(*types.Func)
		if !ok || !isPointer(x) {
			return false
		}
		recv := fn.Signature().Recv()
		return recv != nil && !isPointer(recv.Type()) && !typeshelper.IsInterface(recv.Type())
	}
	return false
}

func isPointer(t types.Type) bool {
	_, ok := t.Underlying().(*types.Pointer)
	return ok
}

// typeOf returns the type of e, or the invalid type if it is unknown.
func typeOf(info *types.Info, e ast.Expr) types.Type {
	if t := info.TypeOf(e); t != nil {
		return t
	}
	return types.Typ[types.Invalid]
}
