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

// ReplaceConditional replaces a call to a matched function with the returned expression, which
// holds whenever the call returns true. For example, `errors.As(err, &target)` is replaced with
// `target != nil`.
//
// If the call does not match any known function, nil is returned.
func ReplaceConditional(pass *analysis.Pass, call *ast.CallExpr) ast.Expr {
	for _, c := range _replaceConditionals {
		if c.sig.match(pass, call) {
			return c.action(call)
		}
	}
	return nil
}

type replaceConditionalAction func(call *ast.CallExpr) ast.Expr

// _errorAsAction replaces a call to `errors.As(err, &target)` with the expression `target != nil`.
var _errorAsAction replaceConditionalAction = func(call *ast.CallExpr) ast.Expr {
	if len(call.Args) != 2 {
		return nil
	}
	unaryExpr, ok := ast.Unparen(call.Args[1]).(*ast.UnaryExpr)
	if !ok || unaryExpr.Op != token.AND {
		return nil
	}
	return newNilBinaryExpr(unaryExpr.X, token.NEQ)
}

var _replaceConditionals = []struct {
	sig    trustedFuncSig
	action replaceConditionalAction
}{
	{
		sig: trustedFuncSig{
			kind:           _func,
			enclosingRegex: regexp.MustCompile(`^errors$`),
			funcNameRegex:  regexp.MustCompile(`^As$`),
		},
		action: _errorAsAction,
	},
}
