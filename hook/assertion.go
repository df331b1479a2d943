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

package hook

import (
	"go/ast"
	"go/token"
	"regexp"

	"golang.org/x/tools/go/analysis"
)

// Assertion returns the condition that holds after the given call returns. For example, a
// binary expression `x != nil` is returned for `require.NotNil(t, x)`, since the call stops the
// test when `x` is nil. Only assertions that stop execution on failure are modeled: `assert`
// functions log and continue, so nothing holds after them.
//
// If the call does not match any known function, nil is returned.
func Assertion(pass *analysis.Pass, call *ast.CallExpr) ast.Expr {
	for _, a := range _assertions {
		if a.sig.match(pass, call) {
			return a.action(call, a.argIndex)
		}
	}
	return nil
}

// assertionAction defines the effect the trusted function has on its argument `argIndex`.
type assertionAction func(call *ast.CallExpr, argIndex int) ast.Expr

// nilBinaryExpr returns `expr == nil`, e.g. for `require.Nil(t, obj)`.
var nilBinaryExpr assertionAction = func(call *ast.CallExpr, argIndex int) ast.Expr {
	if argIndex < 0 || argIndex >= len(call.Args) {
		return nil
	}
	return newNilBinaryExpr(call.Args[argIndex], token.EQL)
}

// nonnilBinaryExpr returns `expr != nil`, e.g. for `require.NotNil(t, obj)`.
var nonnilBinaryExpr assertionAction = func(call *ast.CallExpr, argIndex int) ast.Expr {
	if argIndex < 0 || argIndex >= len(call.Args) {
		return nil
	}
	return newNilBinaryExpr(call.Args[argIndex], token.NEQ)
}

// selfExpr returns the expression itself, e.g. `ok` for `require.True(t, ok)`.
var selfExpr assertionAction = func(call *ast.CallExpr, argIndex int) ast.Expr {
	if argIndex < 0 || argIndex >= len(call.Args) {
		return nil
	}
	return call.Args[argIndex]
}

// negatedSelfExpr is same as selfExpr, but returns a negated expr, e.g. `!ok` for
// `require.False(t, ok)`.
var negatedSelfExpr assertionAction = func(call *ast.CallExpr, argIndex int) ast.Expr {
	if argIndex < 0 || argIndex >= len(call.Args) {
		return nil
	}
	arg := call.Args[argIndex]
	return &ast.UnaryExpr{OpPos: arg.Pos(), Op: token.NOT, X: arg}
}

type assertion struct {
	sig      trustedFuncSig
	action   assertionAction
	argIndex int
}

var (
	_requireFuncs   = regexp.MustCompile(`github\.com/stretchr/testify/require$`)
	_requireMethods = regexp.MustCompile(`github\.com/stretchr/testify/require\.Assertions$`)
)

var _assertions = []assertion{
	// `require.Nil(t, x)` / `require.NoError(t, err)`
	{
		sig:      trustedFuncSig{kind: _func, enclosingRegex: _requireFuncs, funcNameRegex: regexp.MustCompile(`^(Nil|NoError)(f)?$`)},
		action:   nilBinaryExpr,
		argIndex: 1,
	},
	// `require.NotNil(t, x)` / `require.Error(t, err)`
	{
		sig:      trustedFuncSig{kind: _func, enclosingRegex: _requireFuncs, funcNameRegex: regexp.MustCompile(`^(NotNil|Error)(f)?$`)},
		action:   nonnilBinaryExpr,
		argIndex: 1,
	},
	{
		sig:      trustedFuncSig{kind: _func, enclosingRegex: _requireFuncs, funcNameRegex: regexp.MustCompile(`^True(f)?$`)},
		action:   selfExpr,
		argIndex: 1,
	},
	{
		sig:      trustedFuncSig{kind: _func, enclosingRegex: _requireFuncs, funcNameRegex: regexp.MustCompile(`^False(f)?$`)},
		action:   negatedSelfExpr,
		argIndex: 1,
	},
	// `r := require.New(t); r.NotNil(x)` and `s.Require().NotNil(x)`
	{
		sig:      trustedFuncSig{kind: _method, enclosingRegex: _requireMethods, funcNameRegex: regexp.MustCompile(`^(Nil|NoError)(f)?$`)},
		action:   nilBinaryExpr,
		argIndex: 0,
	},
	{
		sig:      trustedFuncSig{kind: _method, enclosingRegex: _requireMethods, funcNameRegex: regexp.MustCompile(`^(NotNil|Error)(f)?$`)},
		action:   nonnilBinaryExpr,
		argIndex: 0,
	},
	{
		sig:      trustedFuncSig{kind: _method, enclosingRegex: _requireMethods, funcNameRegex: regexp.MustCompile(`^True(f)?$`)},
		action:   selfExpr,
		argIndex: 0,
	},
	{
		sig:      trustedFuncSig{kind: _method, enclosingRegex: _requireMethods, funcNameRegex: regexp.MustCompile(`^False(f)?$`)},
		action:   negatedSelfExpr,
		argIndex: 0,
	},
}
