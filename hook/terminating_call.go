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
	"regexp"
	"slices"

	"go.uber.org/smartcast/util"
	"golang.org/x/tools/go/analysis"
)

// IsTerminatingCall returns true if the given call never returns normally. Besides the builtin
// `panic`, this covers functions that exit the process or the goroutine, and the following
// functions whose termination cannot be inferred purely from code:
//
// `zap.Fatal`-related: they have complex logic that eventually calls a hook that is almost always
// configured to just exit.
//
// `testing.TB.Fatal`-related: they are interface methods without implementations.
func IsTerminatingCall(pass *analysis.Pass, call *ast.CallExpr) bool {
	if util.CalleeObject(pass.TypesInfo, call) == util.BuiltinPanic {
		return true
	}
	return slices.ContainsFunc(_terminatingCalls, func(sig trustedFuncSig) bool { return sig.match(pass, call) })
}

var _terminatingCalls = []trustedFuncSig{
	// `os.Exit`
	{
		kind:           _func,
		enclosingRegex: regexp.MustCompile(`^os$`),
		funcNameRegex:  regexp.MustCompile(`^Exit$`),
	},
	// `runtime.Goexit`
	{
		kind:           _func,
		enclosingRegex: regexp.MustCompile(`^runtime$`),
		funcNameRegex:  regexp.MustCompile(`^Goexit$`),
	},
	// `log.Fatal` / `log.Panic` and friends
	{
		kind:           _func,
		enclosingRegex: regexp.MustCompile(`^log$`),
		funcNameRegex:  regexp.MustCompile(`^(Fatal|Panic)(f|ln)?$`),
	},
	{
		kind:           _method,
		enclosingRegex: regexp.MustCompile(`^log\.Logger$`),
		funcNameRegex:  regexp.MustCompile(`^(Fatal|Panic)(f|ln)?$`),
	},
	// `zap.Logger.Fatal`
	{
		kind:           _method,
		enclosingRegex: regexp.MustCompile(`^(stubs/)?go\.uber\.org/zap\.Logger$`),
		funcNameRegex:  regexp.MustCompile(`^Fatal$`),
	},
	// `zap.SugaredLogger.Fatal` / `Fatalf` / `Fatalln` / `Fatalw`
	{
		kind:           _method,
		enclosingRegex: regexp.MustCompile(`^(stubs/)?go\.uber\.org/zap\.SugaredLogger$`),
		funcNameRegex:  regexp.MustCompile(`^Fatal(f|ln|w)?$`),
	},
	// `testing.TB`, `testing.T` and `testing.B`
	{
		kind:           _method,
		enclosingRegex: regexp.MustCompile(`^testing\.(TB|T|B|common)$`),
		funcNameRegex:  regexp.MustCompile(`^(Fatal|Fatalf|FailNow|SkipNow|Skip|Skipf)$`),
	},
}
