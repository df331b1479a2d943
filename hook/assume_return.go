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
	"go/types"
	"regexp"

	"go.uber.org/smartcast/util"
	"golang.org/x/tools/go/analysis"
)

// AssumeNonNil returns true if result `index` of the given call is known to be non-nil without
// looking at the callee's body. This models stdlib and 3rd party functions that are not
// summarized, e.g. "errors.New" is assumed to return a non-nil value.
func AssumeNonNil(pass *analysis.Pass, call *ast.CallExpr, index int) bool {
	if index != 0 {
		return false
	}
	for _, sig := range _assumeNonNil {
		if sig.match(pass, call) {
			return true
		}
	}
	return isErrorWrapperFunc(pass, call)
}

var _assumeNonNil = []trustedFuncSig{
	// `errors.New`
	{
		kind:           _func,
		enclosingRegex: regexp.MustCompile(`^errors$`),
		funcNameRegex:  regexp.MustCompile(`^New$`),
	},
	// `fmt.Errorf`
	{
		kind:           _func,
		enclosingRegex: regexp.MustCompile(`^fmt$`),
		funcNameRegex:  regexp.MustCompile(`^Errorf$`),
	},
	// `github.com/pkg/errors`
	{
		kind:           _func,
		enclosingRegex: regexp.MustCompile(`^(stubs/)?github\.com/pkg/errors$`),
		funcNameRegex:  regexp.MustCompile(`^(New|Errorf)$`),
	},
}

// isErrorWrapperFunc implements a heuristic to identify error wrapper functions (e.g.,
// `errors.Wrapf(err, "message")`): the function's only error result is its last one, and one of
// its arguments (or its receiver) is itself a call to an error wrapper or the result of
// `errors.New`/`fmt.Errorf`. Wrapping a value that is known to be an error yields an error.
func isErrorWrapperFunc(pass *analysis.Pass, call *ast.CallExpr) bool {
	fn, ok := util.CalleeObject(pass.TypesInfo, call).(*types.Func)
	if !ok {
		return false
	}
	results := fn.Type().(*types.Signature).Results()
	if results.Len() != 1 || !types.Identical(results.At(0).Type(), util.ErrorType) {
		return false
	}

	args := call.Args
	if sel, ok := ast.Unparen(call.Fun).(*ast.SelectorExpr); ok && fn.Type().(*types.Signature).Recv() != nil {
		args = append(args[:len(args):len(args)], sel.X)
	}
	for _, arg := range args {
		inner, ok := ast.Unparen(arg).(*ast.CallExpr)
		if !ok {
			continue
		}
		if AssumeNonNil(pass, inner, 0) {
			return true
		}
	}
	return false
}
