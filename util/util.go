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

// Package util implements utility functions for AST and types.
package util

import (
	"fmt"
	"go/ast"
	"go/types"
	"regexp"
	"strings"
)

var (
	// ErrorType is the type of the builtin "error" interface.
	ErrorType = types.Universe.Lookup("error").Type()
	// BuiltinNew is the builtin "new" function object.
	BuiltinNew = types.Universe.Lookup("new")
	// BuiltinMake is the builtin "make" function object.
	BuiltinMake = types.Universe.Lookup("make")
	// BuiltinPanic is the builtin "panic" function object.
	BuiltinPanic = types.Universe.Lookup("panic")
)

// UnwrapPtr unwraps a pointer type and returns the element type. For all other types it returns
// the type unmodified.
func UnwrapPtr(t types.Type) types.Type {
	if ptr, ok := t.(*types.Pointer); ok {
		return ptr.Elem()
	}
	return t
}

// FuncIdentFromCallExpr returns the identifier of the called function, or nil for function
// literals and other dynamic callees.
func FuncIdentFromCallExpr(expr *ast.CallExpr) *ast.Ident {
	switch fun := ast.Unparen(expr.Fun).(type) {
	case *ast.Ident:
		return fun
	case *ast.SelectorExpr:
		return fun.Sel
	default:
		// case of anonymous function
		return nil
	}
}

// CalleeObject returns the object the called function of a call expression resolves to, which is
// a *types.Func, a *types.Builtin, or nil for dynamic calls.
func CalleeObject(info *types.Info, call *ast.CallExpr) types.Object {
	ident := FuncIdentFromCallExpr(call)
	if ident == nil {
		return nil
	}
	switch obj := info.Uses[ident].(type) {
	case *types.Func, *types.Builtin:
		return obj
	default:
		return nil
	}
}

// PartiallyQualifiedFuncName returns the name of the passed function, with the name of its receiver
// if defined
func PartiallyQualifiedFuncName(f *types.Func) string {
	if sig, ok := f.Type().(*types.Signature); ok && sig.Recv() != nil {
		return fmt.Sprintf("%s.%s", PortionAfterSep(sig.Recv().Type().String(), ".", 0), f.Name())
	}
	return f.Name()
}

// PortionAfterSep returns the suffix of the passed string `input` containing at most `occ` occurrences
// of the separator `sep`
func PortionAfterSep(input, sep string, occ int) string {
	splits := strings.Split(input, sep)
	n := len(splits)
	if n <= occ+1 {
		return input
	}
	return strings.Join(splits[n-(1+occ):], sep)
}

// IsEmptyExpr checks if an expression is the empty identifier
func IsEmptyExpr(expr ast.Expr) bool {
	id, ok := expr.(*ast.Ident)
	return ok && id.Name == "_"
}

// IsNilLiteral returns true if `expr` is the predeclared nil.
func IsNilLiteral(info *types.Info, expr ast.Expr) bool {
	ident, ok := ast.Unparen(expr).(*ast.Ident)
	if !ok {
		return false
	}
	_, isNil := info.Uses[ident].(*types.Nil)
	return isNil
}

var (
	codeReferencePattern = regexp.MustCompile("\\`(.*?)\\`")
	factPattern          = regexp.MustCompile(`((?i)(always|never)\s(nil|non-nil|succeeds))`)
)

// PrettyPrintErrorMessage is used in error reporting to post process and pretty print the output with colors
func PrettyPrintErrorMessage(msg string) string {
	errorStr := fmt.Sprintf("\x1b[%dm%s\x1b[0m", 31, "error:")    // red
	codeStr := fmt.Sprintf("\u001B[%dm%s\u001B[0m", 95, "`${1}`") // magenta
	factStr := fmt.Sprintf("\u001B[%dm%s\u001B[0m", 1, "${1}")    // bold

	msg = factPattern.ReplaceAllString(msg, factStr)
	msg = codeReferencePattern.ReplaceAllString(msg, codeStr)
	return errorStr + " " + msg
}
