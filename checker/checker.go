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
	"slices"

	"go.uber.org/smartcast/config"
	"go.uber.org/smartcast/dataflow"
	"go.uber.org/smartcast/gotypes"
	"go.uber.org/smartcast/nullability"
	"go.uber.org/smartcast/summary"
	"go.uber.org/smartcast/util"
	"go.uber.org/smartcast/util/analysishelper"
	"go.uber.org/smartcast/util/typeshelper"
)

// pkgChecker holds the state shared by all function bodies of a package during one round.
type pkgChecker struct {
	pass     *analysishelper.EnhancedPass
	resolver *gotypes.Resolver
	factory  *dataflow.Factory
	// diags is nil during summary rounds, which report nothing.
	diags *collector
	// out collects the summaries proven in this round.
	out *summary.Summaries
	// okFacts maps the boolean of a comma-ok expression to what its value implies.
	okFacts map[*types.Var]okFact
}

func newPkgChecker(pass *analysishelper.EnhancedPass, resolver *gotypes.Resolver, in *summary.Summaries, diags *collector) *pkgChecker {
	resolver.SetSummaries(in)
	return &pkgChecker{
		pass:     pass,
		resolver: resolver,
		factory:  dataflow.NewFactory(resolver),
		diags:    diags,
		out:      summary.New(),
		okFacts:  make(map[*types.Var]okFact),
	}
}

func (p *pkgChecker) checkAll(bodies []funcBody) *summary.Summaries {
	for _, b := range bodies {
		c := newFuncChecker(p, b.fn.Signature(), b.decl.Body)
		c.run()
		if c.returned && c.nonNil != 0 {
			p.out.Store(b.fn, c.nonNil)
		}
	}
	return p.out
}

// okFact is what the boolean of a comma-ok expression implies about its operands.
type okFact struct {
	whenTrue, whenFalse func(dataflow.Info) dataflow.Info
}

// target is a statement that break or continue statements may leave.
type target struct {
	label string
	loop  bool
	// breaks and continues are the joined flows of the branch statements leaving the target.
	breaks, continues flow
}

// funcChecker threads flows through one function body.
type funcChecker struct {
	*pkgChecker

	body    *ast.BlockStmt
	results *types.Tuple
	// nonNil is the set of results that were non-nil at every return so far.
	nonNil   uint64
	returned bool

	targets    []*target
	gotoLabels map[string]bool
	// label is the label of the statement about to be checked.
	label string
	// quiet suppresses reports while it is positive, for synthesized conditions.
	quiet int
}

func newFuncChecker(p *pkgChecker, sig *types.Signature, body *ast.BlockStmt) *funcChecker {
	c := &funcChecker{pkgChecker: p, body: body, results: sig.Results(), gotoLabels: make(map[string]bool)}
	switch n := c.results.Len(); {
	case n >= summary.MaxResults:
		c.nonNil = ^uint64(0)
	default:
		c.nonNil = 1<<n - 1
	}
	ast.Inspect(body, func(n ast.Node) bool {
		if b, ok := n.(*ast.BranchStmt); ok && b.Tok == token.GOTO && b.Label != nil {
			c.gotoLabels[b.Label.Name] = true
		}
		return true
	})
	return c
}

// run checks the body starting from no facts. Named results start out as zero values.
func (c *funcChecker) run() {
	f := live(dataflow.Empty)
	for i := 0; i < c.results.Len(); i++ {
		if v := c.results.At(i); v.Name() != "" && gotypes.Nilable(v.Type()) {
			f = f.with(f.info.Assign(c.varValue(v), dataflow.NullValue))
		}
	}
	c.block(f, c.body)
}

// funcLit checks the body of a function literal. It runs whenever it is called, so nothing of
// the enclosing flow is known inside.
func (c *funcChecker) funcLit(lit *ast.FuncLit) {
	sig, ok := c.pass.TypesInfo.TypeOf(lit).(*types.Signature)
	if !ok {
		return
	}
	inner := newFuncChecker(c.pkgChecker, sig, lit.Body)
	inner.quiet = c.quiet
	inner.run()
}

func (c *funcChecker) report(check config.Check, node ast.Node, format string, args ...any) {
	if c.quiet > 0 || c.diags == nil {
		return
	}
	c.diags.add(check, node, format, args...)
}

// value returns the dataflow value of e.
func (c *funcChecker) value(e ast.Expr) dataflow.Value {
	return c.factory.FromExpression(e, c.resolver.TypeOf(e))
}

// rvalue returns the value of e as the source of an assignment. Facts about values that may
// change behind the analysis' back are not carried over to the target.
func (c *funcChecker) rvalue(e ast.Expr) dataflow.Value {
	v := c.value(e)
	if trustedKind(v.Kind()) || v.IsNull() || v.IsError() {
		return v
	}
	return opaque(e, v.Type())
}

func (c *funcChecker) varValue(v *types.Var) dataflow.Value {
	return c.factory.FromVariable(c.resolver.Variable(v))
}

// resultRef identifies one result of a multi-valued expression.
type resultRef struct {
	expr  ast.Expr
	index int
}

// resultValue returns the value of result i of call.
func (c *funcChecker) resultValue(call *ast.CallExpr, i int) dataflow.Value {
	return c.factory.FromExpression(resultRef{expr: call, index: i}, c.resolver.ResultType(call, i))
}

// opaque returns a value only known by its static type.
func opaque(ref any, typ dataflow.Type) dataflow.Value {
	if typ == nil || typ.IsError() {
		return dataflow.ErrorValue
	}
	return dataflow.NewValue(dataflow.Expression{Ref: ref}, typ, dataflow.Other)
}

// boxedRef identifies the interface value wrapping a concrete value.
type boxedRef struct {
	value dataflow.Identity
}

// boxed returns b as stored in a location of type dst. A concrete value stored in an interface
// makes a non-nil interface value, even when b is a nil pointer.
func boxed(dst types.Type, b dataflow.Value) dataflow.Value {
	if b.IsNull() || b.IsError() || !typeshelper.IsInterface(dst) {
		return b
	}
	t, ok := b.Type().(gotypes.Type)
	if !ok || t.GoType() == nil || typeshelper.IsInterface(t.GoType()) {
		return b
	}
	if _, ok := types.Unalias(t.GoType()).(*types.TypeParam); ok {
		// Instantiated with an interface type, the value is stored as is.
		return opaque(boxedRef{value: b.ID()}, gotypes.Of(dst))
	}
	return opaque(boxedRef{value: b.ID()}, gotypes.NonNil(t.GoType()))
}

// trustedKind returns true for values whose facts hold until the analysis sees them change.
func trustedKind(k dataflow.Kind) bool {
	return k == dataflow.StableValue || k == dataflow.StableVariable
}

// trusted returns the nullability of v in info if facts about v can be trusted.
func trusted(info dataflow.Info, v dataflow.Value) (nullability.Nullability, bool) {
	switch v.Kind() {
	case dataflow.StableValue:
		return info.PredictableNullabilityOf(v), true
	case dataflow.StableVariable:
		return info.NullabilityOf(v), true
	default:
		return v.ImmanentNullability(), false
	}
}

// known returns the trusted nullability of v, or what its type says.
func known(info dataflow.Info, v dataflow.Value) nullability.Nullability {
	n, _ := trusted(info, v)
	return n
}

// branch returns the flow of a branch holding info, which is dead if info contradicts itself
// about one of values.
func branch(info dataflow.Info, values ...dataflow.Value) flow {
	for _, v := range values {
		if n, ok := trusted(info, v); ok && n == nullability.Impossible {
			return _deadFlow
		}
	}
	return live(info)
}

// clear forgets the facts about the given expressions.
func (c *funcChecker) clear(f flow, exprs ...ast.Expr) flow {
	for _, e := range exprs {
		if f.dead {
			return f
		}
		if e == nil || isBlank(e) {
			continue
		}
		f = f.with(f.info.ClearValueInfo(c.value(e)))
	}
	return f
}

// clearAssignedIn forgets the facts about the variables written inside any of nodes.
func (c *funcChecker) clearAssignedIn(f flow, nodes ...ast.Node) flow {
	var vars []*types.Var
	for _, n := range nodes {
		if n == nil {
			continue
		}
		for v := range gotypes.AssignedIn(c.pass.TypesInfo, n) {
			if !slices.Contains(vars, v) {
				vars = append(vars, v)
			}
		}
	}
	slices.SortFunc(vars, func(a, b *types.Var) int { return int(a.Pos() - b.Pos()) })
	for _, v := range vars {
		if f.dead {
			break
		}
		f = f.with(f.info.ClearValueInfo(c.varValue(v)))
	}
	return f
}

func isBlank(e ast.Expr) bool { return util.IsEmptyExpr(ast.Unparen(e)) }

// assertedType returns info with the facts implied by a successful assertion of x to target: the
// interface value is non-nil and its dynamic type satisfies target.
func assertedType(info dataflow.Info, x dataflow.Value, target types.Type) dataflow.Info {
	return info.Disequate(x, dataflow.NullValue).EstablishSubtyping(x, gotypes.NonNil(target))
}
