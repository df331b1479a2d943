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

// Package hook encodes knowledge about well-known standard and 3rd party functions that the
// checker cannot infer from their bodies alone: calls that never return, results that are never
// nil, and calls that only return when a condition on their arguments holds (e.g.,
// `require.NotNil(t, x)` implies `x != nil` afterwards).
package hook

import (
	"go/ast"
	"go/token"
	"go/types"
	"regexp"

	"go.uber.org/smartcast/util"
	"golang.org/x/tools/go/analysis"
)

// funcKind indicates the kind of the trusted function:
// (1) _method: it is a method of a named type;
// (2) _func: it is a top-level function of a package.
type funcKind uint8

const (
	_method funcKind = iota
	_func
)

// trustedFuncSig defines the signature of a function that we "trust" to have a certain effect.
type trustedFuncSig struct {
	kind           funcKind
	enclosingRegex *regexp.Regexp
	funcNameRegex  *regexp.Regexp
}

// match checks if a given call expression matches with a trusted function's signature. Namely,
// it performs a strict matching for the function / method name and a user-defined regex match for
// the enclosing package or type path.
func (t *trustedFuncSig) match(pass *analysis.Pass, call *ast.CallExpr) bool {
	sel, ok := ast.Unparen(call.Fun).(*ast.SelectorExpr)
	if !ok || !t.funcNameRegex.MatchString(sel.Sel.Name) {
		return false
	}

	// For functions, match the enclosing "<pkg path>", e.g. "errors" for `errors.New`. For
	// methods, match "<pkg path>.<type name>", e.g. "testing.TB" for `t.Fatal`.
	funcObj, ok := pass.TypesInfo.ObjectOf(sel.Sel).(*types.Func)
	if !ok || funcObj.Pkg() == nil {
		return false
	}
	recv := funcObj.Type().(*types.Signature).Recv()
	if (t.kind == _func && recv != nil) || (t.kind == _method && recv == nil) {
		return false
	}

	path := funcObj.Pkg().Path()
	if recv != nil {
		n, ok := util.UnwrapPtr(recv.Type()).(*types.Named)
		if !ok {
			return false
		}
		path = path + "." + n.Obj().Name()
	}
	return t.enclosingRegex.MatchString(path)
}

// newNilBinaryExpr creates a new binary expression "expr op nil". The nil identifier is resolved
// in the universe scope by the consumer.
func newNilBinaryExpr(expr ast.Expr, op token.Token) *ast.BinaryExpr {
	return &ast.BinaryExpr{
		X:     expr,
		OpPos: expr.Pos(),
		Op:    op,
		Y:     &ast.Ident{NamePos: expr.Pos(), Name: "nil"},
	}
}

// IsNilIdent reports whether expr is a nil identifier, either resolved by the type checker or
// synthesized by this package.
func IsNilIdent(info *types.Info, expr ast.Expr) bool {
	if util.IsNilLiteral(info, expr) {
		return true
	}
	ident, ok := expr.(*ast.Ident)
	if !ok || ident.Name != "nil" {
		return false
	}
	_, known := info.Uses[ident]
	return !known
}
