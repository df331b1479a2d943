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

package gotypes

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/smartcast/config"
	"go.uber.org/smartcast/dataflow"
	"go.uber.org/smartcast/hook"
	"go.uber.org/smartcast/summary"
	"go.uber.org/smartcast/util"
	"go.uber.org/smartcast/util/typeshelper"
	"golang.org/x/tools/go/analysis"
)

// Resolver resolves the Go expressions of one package for the dataflow factory.
//
// Struct fields and package-level variables are mutable properties. Locals and parameters are
// variables whose mutability comes from the package's Mutability scan. Unreassigned method
// receivers resolve to receiver identities.
type Resolver struct {
	pass       *analysis.Pass
	mutability *Mutability
	infos      *lru.Cache[*types.Var, dataflow.VariableInfo]

	// local holds the summaries of the package being analyzed. It is replaced between rounds.
	local    *summary.Summaries
	imported map[*types.Package]*summary.Summaries
}

var _ dataflow.ResolutionContext = (*Resolver)(nil)

// NewResolver returns a resolver for the package of pass.
func NewResolver(pass *analysis.Pass, mutability *Mutability) (*Resolver, error) {
	infos, err := lru.New[*types.Var, dataflow.VariableInfo](config.VariableCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create variable cache: %w", err)
	}
	return &Resolver{
		pass:       pass,
		mutability: mutability,
		infos:      infos,
		local:      summary.New(),
		imported:   make(map[*types.Package]*summary.Summaries),
	}, nil
}

// SetSummaries sets the summaries of the package being analyzed.
func (r *Resolver) SetSummaries(s *summary.Summaries) { r.local = s }

// Variable returns the dataflow variable of v.
func (r *Resolver) Variable(v *types.Var) dataflow.Variable {
	return variable{obj: v, r: r}
}

// VariableInfo describes v.
func (r *Resolver) VariableInfo(v *types.Var) dataflow.VariableInfo {
	if info, ok := r.infos.Get(v); ok {
		return info
	}

	info := dataflow.VariableInfo{Name: v.Name(), Type: Of(v.Type())}
	switch {
	case v.IsField():
		info.Mutable = true
		info.Property = &dataflow.PropertyInfo{Visibility: visibility(v), Module: v.Pkg()}
	case v.Pkg() != nil && (v.Parent() == v.Pkg().Scope() || v.Pkg() != r.pass.Pkg):
		info.Mutable = true
		info.Property = &dataflow.PropertyInfo{TopLevel: true, Visibility: visibility(v), Module: v.Pkg()}
	default:
		info.Mutable = r.mutability.Reassigned(v)
		info.Captured = r.mutability.Captured(v)
	}
	r.infos.Add(v, info)
	return info
}

func visibility(v *types.Var) dataflow.Visibility {
	if v.Exported() {
		return dataflow.Public
	}
	return dataflow.Private
}

// variable is the dataflow variable of a *types.Var.
type variable struct {
	obj *types.Var
	r   *Resolver
}

func (v variable) VariableInfo() dataflow.VariableInfo { return v.r.VariableInfo(v.obj) }

func (v variable) String() string { return v.obj.Name() }

// receiver returns the variable of ident if it is an unreassigned method receiver.
func (r *Resolver) receiver(ident *ast.Ident) (*types.Var, bool) {
	v, ok := r.pass.TypesInfo.ObjectOf(ident).(*types.Var)
	if !ok || !r.mutability.IsReceiver(v) || r.mutability.Reassigned(v) {
		return nil, false
	}
	return v, true
}

func (r *Resolver) Kind(expr dataflow.Expr) dataflow.ExprKind {
	switch e := expr.(type) {
	case *ast.ParenExpr:
		return dataflow.ExprParenthesized
	case *ast.Ident:
		if hook.IsNilIdent(r.pass.TypesInfo, e) {
			return dataflow.ExprNullLiteral
		}
		if _, ok := r.receiver(e); ok {
			return dataflow.ExprThis
		}
		return dataflow.ExprSimpleName
	case *ast.SelectorExpr:
		if sel, ok := r.pass.TypesInfo.Selections[e]; ok {
			if sel.Kind() == types.FieldVal {
				return dataflow.ExprQualified
			}
			return dataflow.ExprOther
		}
		if x, ok := e.X.(*ast.Ident); ok {
			if _, ok := r.pass.TypesInfo.Uses[x].(*types.PkgName); ok {
				return dataflow.ExprQualified
			}
		}
	}
	return dataflow.ExprOther
}

func (r *Resolver) Inner(expr dataflow.Expr) dataflow.Expr {
	return expr.(*ast.ParenExpr).X
}

func (r *Resolver) Qualified(expr dataflow.Expr) (receiver, selector dataflow.Expr) {
	e := expr.(*ast.SelectorExpr)
	return e.X, e.Sel
}

func (r *Resolver) Reference(expr dataflow.Expr) dataflow.Target {
	ident, ok := expr.(*ast.Ident)
	if !ok {
		return dataflow.Target{}
	}
	switch obj := r.pass.TypesInfo.ObjectOf(ident).(type) {
	case *types.Var:
		return dataflow.Target{Kind: dataflow.TargetVariable, Variable: r.Variable(obj)}
	case *types.PkgName:
		return dataflow.Target{Kind: dataflow.TargetPackage}
	default:
		return dataflow.Target{}
	}
}

// ImplicitReceiver reports nothing: Go has no implicit receivers.
func (r *Resolver) ImplicitReceiver(dataflow.Expr) (dataflow.Receiver, bool) {
	return nil, false
}

func (r *Resolver) ThisReceiver(expr dataflow.Expr) (dataflow.ImplicitReceiver, bool) {
	ident, ok := expr.(*ast.Ident)
	if !ok {
		return dataflow.ImplicitReceiver{}, false
	}
	v, ok := r.receiver(ident)
	if !ok {
		return dataflow.ImplicitReceiver{}, false
	}
	return dataflow.ImplicitReceiver{Param: v, Type: Of(v.Type())}, true
}

func (r *Resolver) UsageModule() dataflow.Module {
	return r.pass.Pkg
}

// TypeOf returns the type of expr, marked non-nil when expr is non-nil by construction.
func (r *Resolver) TypeOf(expr ast.Expr) Type {
	t := r.pass.TypesInfo.TypeOf(expr)
	if t == nil {
		return Type{}
	}
	// Comma-ok expressions are recorded as tuples; their first value is the zero value on failure.
	if tuple, ok := t.(*types.Tuple); ok {
		if tuple.Len() == 0 {
			return Type{}
		}
		return Of(tuple.At(0).Type())
	}
	if r.nonNilExpr(expr) {
		return NonNil(t)
	}
	return Of(t)
}

// ResultType returns the type of result index of call, marked non-nil when the callee is known
// to never return nil there.
func (r *Resolver) ResultType(call *ast.CallExpr, index int) Type {
	t := r.pass.TypesInfo.TypeOf(call)
	if tuple, ok := t.(*types.Tuple); ok {
		if index >= tuple.Len() {
			return Type{}
		}
		t = tuple.At(index).Type()
	} else if index != 0 {
		return Type{}
	}
	if t == nil {
		return Type{}
	}
	if r.ResultNonNil(call, index) {
		return NonNil(t)
	}
	return Of(t)
}

func (r *Resolver) nonNilExpr(expr ast.Expr) bool {
	switch e := ast.Unparen(expr).(type) {
	case *ast.UnaryExpr:
		return e.Op == token.AND
	case *ast.CompositeLit, *ast.FuncLit:
		return true
	case *ast.TypeAssertExpr:
		// A successful assertion to an interface type holds a non-nil interface value.
		return e.Type != nil && typeshelper.IsInterface(r.pass.TypesInfo.TypeOf(e.Type))
	case *ast.SliceExpr:
		// Slicing an array (or a pointer to one, which panics if nil) yields a non-nil slice.
		switch types.Unalias(r.pass.TypesInfo.TypeOf(e.X)).Underlying().(type) {
		case *types.Array, *types.Pointer:
			return true
		}
	case *ast.CallExpr:
		return r.ResultNonNil(e, 0)
	}
	return false
}

// ResultNonNil returns true if result index of call is never nil: the callee is a builtin
// allocation, a conversion of a string to a slice, a trusted function, or a function whose
// summary says so.
func (r *Resolver) ResultNonNil(call *ast.CallExpr, index int) bool {
	info := r.pass.TypesInfo
	if tv, ok := info.Types[call.Fun]; ok && tv.IsType() {
		if index != 0 || len(call.Args) != 1 {
			return false
		}
		_, toSlice := tv.Type.Underlying().(*types.Slice)
		arg := info.Types[call.Args[0]]
		if !toSlice || arg.Type == nil {
			return false
		}
		if b, ok := arg.Type.Underlying().(*types.Basic); ok {
			return b.Info()&types.IsString != 0 || (arg.Value != nil && arg.Value.Kind() == constant.String)
		}
		return false
	}

	switch obj := util.CalleeObject(info, call).(type) {
	case *types.Builtin:
		return index == 0 && (obj == util.BuiltinNew || obj == util.BuiltinMake)
	case *types.Func:
		if hook.AssumeNonNil(r.pass, call, index) {
			return true
		}
		fn := obj.Origin()
		if fn.Pkg() == r.pass.Pkg {
			return r.local.NonNil(fn, index)
		}
		return r.importedSummaries(fn.Pkg()).NonNil(fn, index)
	}
	return false
}

func (r *Resolver) importedSummaries(pkg *types.Package) *summary.Summaries {
	if pkg == nil {
		return nil
	}
	s, ok := r.imported[pkg]
	if !ok {
		s = summary.Import(r.pass, pkg)
		r.imported[pkg] = s
	}
	return s
}
