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
	"go/token"
	"go/types"

	"go.uber.org/smartcast/dataflow"
	"go.uber.org/smartcast/gotypes"
	"go.uber.org/smartcast/hook"
	"go.uber.org/smartcast/nullability"
	"go.uber.org/smartcast/summary"
	"go.uber.org/smartcast/util/typeshelper"
)

func (c *funcChecker) block(f flow, b *ast.BlockStmt) flow {
	if b == nil {
		return f
	}
	return c.stmts(f, b.List)
}

func (c *funcChecker) stmts(f flow, list []ast.Stmt) flow {
	for _, s := range list {
		f = c.stmt(f, s)
	}
	return f
}

// stmt returns the flow after s. Unreachable statements are skipped, except for labels that a
// goto may jump to.
func (c *funcChecker) stmt(f flow, s ast.Stmt) flow {
	if s == nil {
		return f
	}
	if labeled, ok := s.(*ast.LabeledStmt); ok {
		if c.gotoLabels[labeled.Label.Name] {
			f = f.join(live(dataflow.Empty))
		}
		switch labeled.Stmt.(type) {
		case *ast.ForStmt, *ast.RangeStmt, *ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.SelectStmt:
			c.label = labeled.Label.Name
		}
		f = c.stmt(f, labeled.Stmt)
		c.label = ""
		return f
	}
	if f.dead {
		return f
	}

	switch s := s.(type) {
	case *ast.BlockStmt:
		return c.block(f, s)
	case *ast.ExprStmt:
		return c.expr(f, s.X)
	case *ast.DeclStmt:
		return c.declStmt(f, s)
	case *ast.AssignStmt:
		return c.assignStmt(f, s)
	case *ast.IncDecStmt:
		return c.clear(c.expr(f, s.X), s.X)
	case *ast.SendStmt:
		f = c.expr(c.expr(f, s.Chan), s.Value)
		// A send on a nil channel blocks forever.
		return c.assumeNonNil(f, s.Chan)
	case *ast.GoStmt:
		return c.call(f, s.Call, _goCall)
	case *ast.DeferStmt:
		return c.call(f, s.Call, _deferredCall)
	case *ast.ReturnStmt:
		return c.returnStmt(f, s)
	case *ast.BranchStmt:
		return c.branchStmt(f, s)
	case *ast.IfStmt:
		f = c.stmt(f, s.Init)
		whenTrue, whenFalse := c.cond(f, s.Cond)
		whenTrue = c.block(whenTrue, s.Body)
		if s.Else != nil {
			whenFalse = c.stmt(whenFalse, s.Else)
		}
		return whenTrue.join(whenFalse)
	case *ast.SwitchStmt:
		return c.switchStmt(f, s)
	case *ast.TypeSwitchStmt:
		return c.typeSwitchStmt(f, s)
	case *ast.SelectStmt:
		return c.selectStmt(f, s)
	case *ast.ForStmt:
		return c.forStmt(f, s)
	case *ast.RangeStmt:
		return c.rangeStmt(f, s)
	}
	return f
}

func (c *funcChecker) declStmt(f flow, s *ast.DeclStmt) flow {
	gen, ok := s.Decl.(*ast.GenDecl)
	if !ok || gen.Tok != token.VAR {
		return f
	}
	for _, spec := range gen.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		names := make([]ast.Expr, len(vs.Names))
		for i, name := range vs.Names {
			names[i] = name
		}

		switch {
		case len(vs.Values) == 0:
			// Variables of nilable types start out nil.
			for _, name := range vs.Names {
				if v, ok := c.pass.TypesInfo.Defs[name].(*types.Var); ok && gotypes.Nilable(v.Type()) {
					f = c.assignValue(f, name, dataflow.NullValue)
				}
			}
		case len(vs.Values) == len(vs.Names):
			for _, value := range vs.Values {
				f = c.expr(f, value)
			}
			for i, name := range names {
				f = c.assignValue(f, name, c.rvalue(vs.Values[i]))
			}
		default:
			f = c.multiAssign(f, names, vs.Values[0])
		}
	}
	return f
}

func (c *funcChecker) assignStmt(f flow, s *ast.AssignStmt) flow {
	switch {
	case s.Tok != token.ASSIGN && s.Tok != token.DEFINE:
		// x op= y
		f = c.expr(c.expr(f, s.Rhs[0]), s.Lhs[0])
		return c.clear(f, s.Lhs[0])
	case len(s.Lhs) == len(s.Rhs):
		for _, rhs := range s.Rhs {
			f = c.expr(f, rhs)
		}
		for _, lhs := range s.Lhs {
			f = c.expr(f, lhs)
		}
		if len(s.Lhs) > 1 && c.aliased(s) {
			// The right-hand sides are evaluated before any assignment happens.
			return c.clear(f, s.Lhs...)
		}
		for i, lhs := range s.Lhs {
			f = c.assignValue(f, lhs, c.rvalue(s.Rhs[i]))
		}
		return f
	default:
		return c.multiAssign(f, s.Lhs, s.Rhs[0])
	}
}

// multiAssign assigns the values of a multi-valued expression: a call or a comma-ok expression.
func (c *funcChecker) multiAssign(f flow, lhs []ast.Expr, rhs ast.Expr) flow {
	if call, ok := ast.Unparen(rhs).(*ast.CallExpr); ok {
		f = c.expr(f, call)
		for _, l := range lhs {
			f = c.expr(f, l)
		}
		for i, l := range lhs {
			f = c.assignValue(f, l, c.resultValue(call, i))
		}
		return f
	}
	return c.commaOk(f, lhs, ast.Unparen(rhs))
}

// commaOk assigns `v, ok = x.(T)`, `v, ok = m[k]` and `v, ok = <-ch`. What ok implies is
// recorded for conditions testing it later on.
func (c *funcChecker) commaOk(f flow, lhs []ast.Expr, rhs ast.Expr) flow {
	var (
		subject  ast.Expr
		whenTrue func(dataflow.Info) dataflow.Info
		// onlyInterface is set if v is non-nil whenever ok is.
		onlyInterface bool
	)
	switch r := rhs.(type) {
	case *ast.TypeAssertExpr:
		f = c.expr(f, r.X)
		c.checkTypeAssert(f, r)
		subject = r.X
		x, target := c.value(r.X), c.pass.TypesInfo.TypeOf(r.Type)
		whenTrue = func(info dataflow.Info) dataflow.Info { return assertedType(info, x, target) }
		onlyInterface = typeshelper.IsInterface(target)
	case *ast.IndexExpr:
		f = c.expr(f, r)
		subject = r.X
		// A nil map holds no keys.
		m := c.value(r.X)
		whenTrue = func(info dataflow.Info) dataflow.Info { return info.Disequate(m, dataflow.NullValue) }
	default:
		f = c.expr(f, r)
	}
	for _, l := range lhs {
		f = c.expr(f, l)
	}
	if f.dead || len(lhs) != 2 {
		return f
	}

	v := opaque(resultRef{expr: rhs, index: 0}, c.resolver.TypeOf(rhs))
	f = c.assignValue(f, lhs[0], v)
	f = c.clear(f, lhs[1])

	ident, ok := ast.Unparen(lhs[1]).(*ast.Ident)
	if !ok || subject == nil {
		return f
	}
	okVar, ok := c.pass.TypesInfo.ObjectOf(ident).(*types.Var)
	if !ok || c.value(subject).Kind() != dataflow.StableValue {
		return f
	}

	fact := okFact{whenTrue: whenTrue, whenFalse: func(info dataflow.Info) dataflow.Info { return info }}
	if !isBlank(lhs[0]) {
		if target := c.value(lhs[0]); target.Kind() == dataflow.StableValue {
			// On failure v is the zero value, which is nil for nilable types unless it is stored in
			// an interface.
			stored := boxed(typeOf(c.pass.TypesInfo, lhs[0]), v)
			if target.ImmanentNullability() != nullability.NotNull && stored.Equal(v) {
				fact.whenFalse = func(info dataflow.Info) dataflow.Info { return info.Equate(target, dataflow.NullValue) }
			}
			if onlyInterface {
				inner := fact.whenTrue
				fact.whenTrue = func(info dataflow.Info) dataflow.Info {
					return inner(info).Disequate(target, dataflow.NullValue)
				}
			}
		}
	}
	c.okFacts[okVar] = fact
	return f
}

// assignValue assigns b to the expression lhs.
func (c *funcChecker) assignValue(f flow, lhs ast.Expr, b dataflow.Value) flow {
	if f.dead || isBlank(lhs) {
		return f
	}
	dst := typeOf(c.pass.TypesInfo, lhs)
	return f.with(f.info.Assign(c.value(lhs), boxed(dst, b)))
}

// aliased returns true if a variable assigned by s is read by one of its right-hand sides.
func (c *funcChecker) aliased(s *ast.AssignStmt) bool {
	assigned := make(map[types.Object]bool)
	for _, lhs := range s.Lhs {
		if ident, ok := ast.Unparen(lhs).(*ast.Ident); ok {
			if obj := c.pass.TypesInfo.ObjectOf(ident); obj != nil {
				assigned[obj] = true
			}
		}
	}
	found := false
	for _, rhs := range s.Rhs {
		ast.Inspect(rhs, func(n ast.Node) bool {
			if ident, ok := n.(*ast.Ident); ok && assigned[c.pass.TypesInfo.Uses[ident]] {
				found = true
			}
			return !found
		})
	}
	return found
}

func (c *funcChecker) returnStmt(f flow, s *ast.ReturnStmt) flow {
	for _, r := range s.Results {
		f = c.expr(f, r)
	}
	if f.dead {
		return f
	}

	c.returned = true
	n := min(c.results.Len(), summary.MaxResults)
	for i := 0; i < n; i++ {
		var v dataflow.Value
		switch {
		case len(s.Results) == 0:
			v = c.varValue(c.results.At(i))
		case len(s.Results) < c.results.Len():
			call, ok := ast.Unparen(s.Results[0]).(*ast.CallExpr)
			if !ok {
				c.nonNil = 0
				return _deadFlow
			}
			v = c.resultValue(call, i)
		default:
			v = c.value(s.Results[i])
		}
		v = boxed(c.results.At(i).Type(), v)
		if known(f.info, v) != nullability.NotNull {
			c.nonNil &^= 1 << i
		}
	}
	return _deadFlow
}

func (c *funcChecker) branchStmt(f flow, s *ast.BranchStmt) flow {
	switch s.Tok {
	case token.BREAK:
		if t := c.target(s.Label, false); t != nil {
			t.breaks = t.breaks.join(f)
		}
	case token.CONTINUE:
		if t := c.target(s.Label, true); t != nil {
			t.continues = t.continues.join(f)
		}
	case token.FALLTHROUGH:
		// Handled by the enclosing switch, which never passes it here.
	}
	// goto targets start over from no facts.
	return _deadFlow
}

// target returns the statement a break (or, if loop is set, a continue) statement leaves.
func (c *funcChecker) target(label *ast.Ident, loop bool) *target {
	for i := len(c.targets) - 1; i >= 0; i-- {
		t := c.targets[i]
		if label != nil {
			if t.label == label.Name {
				return t
			}
			continue
		}
		if !loop || t.loop {
			return t
		}
	}
	return nil
}

// push enters a statement that break statements may leave, consuming the pending label.
func (c *funcChecker) push(loop bool) *target {
	t := &target{label: c.label, loop: loop, breaks: _deadFlow, continues: _deadFlow}
	c.label = ""
	c.targets = append(c.targets, t)
	return t
}

func (c *funcChecker) pop() { c.targets = c.targets[:len(c.targets)-1] }

func (c *funcChecker) switchStmt(f flow, s *ast.SwitchStmt) flow {
	t := c.push(false)
	defer c.pop()

	f = c.stmt(f, s.Init)
	f = c.expr(f, s.Tag)
	var tag dataflow.Value
	if s.Tag != nil {
		tag = c.value(s.Tag)
	}

	// The entry of each clause is where one of its expressions matched after all previous ones
	// did not; the default clause is entered when none matched.
	entries := make([]flow, len(s.Body.List))
	rest, def := f, -1
	for i, stmt := range s.Body.List {
		clause := stmt.(*ast.CaseClause)
		if clause.List == nil {
			def = i
			continue
		}
		entry := _deadFlow
		for _, e := range clause.List {
			var matched, unmatched flow
			if s.Tag == nil {
				matched, unmatched = c.cond(rest, e)
			} else {
				g := c.expr(rest, e)
				matched, unmatched = g, g
				if !g.dead {
					v := c.value(e)
					matched = branch(g.info.Equate(tag, v), tag, v)
					unmatched = branch(g.info.Disequate(tag, v), tag, v)
				}
			}
			entry, rest = entry.join(matched), unmatched
		}
		entries[i] = entry
	}
	if def >= 0 {
		entries[def] = rest
	}

	exit, fallIn := _deadFlow, _deadFlow
	for i, stmt := range s.Body.List {
		body := stmt.(*ast.CaseClause).Body
		falls := false
		if n := len(body); n > 0 {
			if b, ok := body[n-1].(*ast.BranchStmt); ok && b.Tok == token.FALLTHROUGH {
				body, falls = body[:n-1], true
			}
		}
		end := c.stmts(entries[i].join(fallIn), body)
		if falls {
			fallIn = end
			continue
		}
		exit, fallIn = exit.join(end), _deadFlow
	}
	if def < 0 {
		exit = exit.join(rest)
	}
	return exit.join(t.breaks)
}

func (c *funcChecker) typeSwitchStmt(f flow, s *ast.TypeSwitchStmt) flow {
	t := c.push(false)
	defer c.pop()

	f = c.stmt(f, s.Init)
	var guard ast.Expr
	switch a := s.Assign.(type) {
	case *ast.AssignStmt:
		guard = a.Rhs[0]
	case *ast.ExprStmt:
		guard = a.X
	}
	assert, ok := ast.Unparen(guard).(*ast.TypeAssertExpr)
	if !ok {
		return f
	}
	f = c.expr(f, assert.X)
	x := c.value(assert.X)

	exit, hasDefault := _deadFlow, false
	for _, stmt := range s.Body.List {
		clause := stmt.(*ast.CaseClause)
		entry := f
		var single ast.Expr
		switch len(clause.List) {
		case 0:
			hasDefault = true
		case 1:
			single = clause.List[0]
		}

		if single != nil && !entry.dead {
			if hook.IsNilIdent(c.pass.TypesInfo, single) {
				entry = branch(entry.info.Equate(x, dataflow.NullValue), x)
			} else {
				entry = branch(assertedType(entry.info, x, c.pass.TypesInfo.TypeOf(single)), x)
			}
		}
		if obj, ok := c.pass.TypesInfo.Implicits[clause].(*types.Var); ok && !entry.dead {
			entry = c.bindTypeCase(entry, obj, assert.X, single)
		}
		exit = exit.join(c.stmts(entry, clause.Body))
	}
	if !hasDefault {
		exit = exit.join(f)
	}
	return exit.join(t.breaks)
}

// bindTypeCase assigns the symbolic variable of a type switch clause. In single-type clauses it
// holds the asserted value, otherwise the switched value itself.
func (c *funcChecker) bindTypeCase(f flow, obj *types.Var, x ast.Expr, single ast.Expr) flow {
	v := c.varValue(obj)
	switch {
	case single == nil:
		return f.with(f.info.Assign(v, c.rvalue(x)))
	case hook.IsNilIdent(c.pass.TypesInfo, single):
		return f.with(f.info.Assign(v, dataflow.NullValue))
	case typeshelper.IsInterface(obj.Type()):
		return f.with(f.info.Assign(v, opaque(single, gotypes.NonNil(obj.Type()))))
	default:
		return f
	}
}

func (c *funcChecker) selectStmt(f flow, s *ast.SelectStmt) flow {
	t := c.push(false)
	defer c.pop()

	exit := _deadFlow
	for _, stmt := range s.Body.List {
		clause := stmt.(*ast.CommClause)
		exit = exit.join(c.stmts(c.stmt(f, clause.Comm), clause.Body))
	}
	// A select without cases blocks forever.
	return exit.join(t.breaks)
}

// forStmt checks the body once, starting from the facts of the loop entry without those about
// variables written in the loop. These facts hold at the start of every iteration.
func (c *funcChecker) forStmt(f flow, s *ast.ForStmt) flow {
	t := c.push(true)
	defer c.pop()

	f = c.stmt(f, s.Init)
	head := c.clearAssignedIn(f, s.Cond, s.Post, s.Body)
	body, exit := head, _deadFlow
	if s.Cond != nil {
		body, exit = c.cond(head, s.Cond)
	}
	end := c.block(body, s.Body)
	c.stmt(end.join(t.continues), s.Post)
	return exit.join(t.breaks)
}

func (c *funcChecker) rangeStmt(f flow, s *ast.RangeStmt) flow {
	t := c.push(true)
	defer c.pop()

	f = c.expr(f, s.X)
	if _, ok := typeOf(c.pass.TypesInfo, s.X).Underlying().(*types.Chan); ok {
		// Ranging over a nil channel blocks forever.
		f = c.assumeNonNil(f, s.X)
	}
	head := c.clearAssignedIn(f, s.Body)
	if s.Tok == token.ASSIGN {
		head = c.clear(head, s.Key, s.Value)
	}
	c.block(head, s.Body)
	return head.join(t.breaks)
}
