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

// Package smartcast implements the top-level analyzer that retrieves the diagnostics from the
// checker analyzer and reports them.
package smartcast

import (
	"go.uber.org/smartcast/checker"
	"go.uber.org/smartcast/config"
	"go.uber.org/smartcast/util"
	"go.uber.org/smartcast/util/analysishelper"
	"golang.org/x/tools/go/analysis"
)

const _doc = "Run smartcast on this package to report nil checks, nil dereferences and type assertions" +
	" whose outcome is already decided by the facts gathered along the control flow"

// Analyzer is the top-level instance of Analyzer. It is needed here for nogo to recognize the
// package.
var Analyzer = &analysis.Analyzer{
	Name:      "smartcast",
	Doc:       _doc,
	Run:       run,
	FactTypes: []analysis.Fact{},
	Requires:  []*analysis.Analyzer{config.Analyzer, checker.Analyzer},
}

func run(pass *analysis.Pass) (any, error) {
	conf := pass.ResultOf[config.Analyzer].(*config.Config)
	result := pass.ResultOf[checker.Analyzer].(*analysishelper.Result[[]analysis.Diagnostic])
	if result.Err != nil {
		// Internal errors have no meaningful position, so we report them at the start of the
		// file set to make sure they still surface.
		pass.Report(analysis.Diagnostic{Pos: 1, Message: "INTERNAL ERROR: " + result.Err.Error()})
		return nil, nil
	}

	for _, d := range result.Res {
		if conf.PrettyPrint {
			d.Message = util.PrettyPrintErrorMessage(d.Message)
		}
		pass.Report(d)
	}
	return nil, nil
}
