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

// Package analysishelper provides helper functions for the `go/analysis` package.
package analysishelper

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"golang.org/x/tools/go/analysis"
)

// ErrInternalPanic wraps a panic recovered from a sub-analyzer.
var ErrInternalPanic = errors.New("INTERNAL PANIC")

// Result is the result struct for the sub-analyzers that are expected to return a result and an
// error (converted from a recovered panic, if any).
type Result[T any] struct {
	// Res is the actual result from the sub-analyzer.
	Res T
	// Err is the optional error from the sub-analyzer.
	Err error
}

// WrapRun wraps the run function of a sub-analyzer such that panics are recovered and converted
// into errors carried by the Result struct. The sub-analyzer never returns an error itself, so
// that the driver keeps running the dependent analyzers, which decide how to report it.
func WrapRun[T any](f func(*analysis.Pass) (T, error)) func(*analysis.Pass) (any, error) {
	wrapped := func(pass *analysis.Pass) (result any, _ error) {
		result = &Result[T]{}
		analyzerName, pkgPath := "", ""
		if pass != nil && pass.Analyzer != nil {
			analyzerName = pass.Analyzer.Name
		}
		if pass != nil && pass.Pkg != nil {
			pkgPath = pass.Pkg.Path()
		}
		defer func() {
			if r := recover(); r != nil {
				slog.Debug("recovered panic", "analyzer", analyzerName, "package", pkgPath, "panic", r)
				result.(*Result[T]).Err = fmt.Errorf("%w from %q: %s\n%s", ErrInternalPanic, analyzerName, r, string(debug.Stack()))
			}
		}()

		r, err := f(pass)
		if err != nil {
			// Prefix the error with the name of the analyzer to make it easier to identify the source
			// of the error.
			err = fmt.Errorf("%s: %w", analyzerName, err)
		}
		result.(*Result[T]).Res = r
		result.(*Result[T]).Err = err
		return result, nil
	}

	return wrapped
}
