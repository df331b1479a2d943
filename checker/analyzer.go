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

// Package checker implements the sub-analyzer that threads dataflow facts through the function
// bodies of a package and reports the checks that the facts decide: nil comparisons and type
// assertions whose outcome is fixed, and dereferences of values that are always nil.
package checker

import (
	"go/ast"
	"go/types"
	"log/slog"
	"reflect"

	"go.uber.org/smartcast/config"
	"go.uber.org/smartcast/gotypes"
	"go.uber.org/smartcast/hook"
	"go.uber.org/smartcast/summary"
	"go.uber.org/smartcast/util"
	"go.uber.org/smartcast/util/analysishelper"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const _doc = "Track the nullability and the possible types of values through the function bodies of " +
	"this package, and collect diagnostics for checks that always have the same outcome"

// Analyzer walks the function bodies of a package and returns the diagnostics it collects for
// the top-level analyzer to report. It exports the non-nil result summaries of the package's
// functions as facts.
var Analyzer = &analysis.Analyzer{
	Name:       "smartcast_checker",
	Doc:        _doc,
	Run:        analysishelper.WrapRun(run),
	ResultType: reflect.TypeOf((*analysishelper.Result[[]analysis.Diagnostic])(nil)),
	FactTypes:  []analysis.Fact{new(summary.Summaries)},
	Requires:   []*analysis.Analyzer{config.Analyzer, inspect.Analyzer},
}

// funcBody is a function declaration to be checked.
type funcBody struct {
	fn   *types.Func
	decl *ast.FuncDecl
}

func run(p *analysis.Pass) ([]analysis.Diagnostic, error) {
	pass := analysishelper.NewEnhancedPass(p)
	conf := pass.ResultOf[config.Analyzer].(*config.Config)
	if !conf.IsPkgInScope(pass.Pkg) {
		return nil, nil
	}

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	var bodies []funcBody
	insp.WithStack([]ast.Node{(*ast.FuncDecl)(nil)}, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return false
		}
		decl := n.(*ast.FuncDecl)
		if decl.Body == nil || !conf.IsFileInScope(stack[0].(*ast.File)) {
			return false
		}
		fn, ok := pass.TypesInfo.Defs[decl.Name].(*types.Func)
		if !ok {
			return false
		}
		// Skip if the function is too large.
		if size := int(decl.Body.Rbrace - decl.Body.Lbrace); size > config.MaxFuncSizeInBytes {
			slog.Debug("skipping oversized function",
				"func", util.PartiallyQualifiedFuncName(fn), "pos", pass.Position(decl.Pos()), "size", size)
			return false
		}
		bodies = append(bodies, funcBody{fn: fn, decl: decl})
		return false
	})

	// Calls replaced by a condition only write through the pointers they receive.
	borrows := func(call *ast.CallExpr) bool { return hook.ReplaceConditional(pass.Pass, call) != nil }
	resolver, err := gotypes.NewResolver(pass.Pass, gotypes.ScanMutability(pass.TypesInfo, pass.Files, borrows))
	if err != nil {
		return nil, err
	}

	// Summaries only ever grow from one round to the next, and each round only relies on what the
	// previous one proved, so stopping early is safe.
	summaries := summary.New()
	for round := 0; round < config.SummaryRoundLimit; round++ {
		next := newPkgChecker(pass, resolver, summaries, nil).checkAll(bodies)
		if next.Equal(summaries) {
			break
		}
		summaries = next
	}

	diags := newCollector(conf, pass.Pkg)
	final := newPkgChecker(pass, resolver, summaries, diags).checkAll(bodies)
	final.Export(pass.Pass)

	slog.Debug("checked package", "pkg", pass.Pkg.Path(), "funcs", len(bodies), "summaries", final.Len(), "diagnostics", diags.len())
	return diags.diagnostics(), nil
}
