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

// main package makes it possible to build smartcast as a standalone code checker that can be
// independently invoked to check other packages.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lmittmann/tint"
	"go.uber.org/smartcast"
	"go.uber.org/smartcast/config"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/singlechecker"
)

// Analyzer is identical to the one in smartcast.go, except that it overrides the run function for
// extra filtering of errors, since the singlechecker does not support error suppression like other
// popular linter drivers.
var Analyzer = &analysis.Analyzer{
	Name:       smartcast.Analyzer.Name,
	Doc:        smartcast.Analyzer.Doc,
	Run:        run,
	FactTypes:  smartcast.Analyzer.FactTypes,
	ResultType: smartcast.Analyzer.ResultType,
	Requires:   smartcast.Analyzer.Requires,
}

var (
	// _includeErrorsInFiles is a driver flag for specifying the list of file prefixes to only report errors.
	_includeErrorsInFiles string
	// _excludeErrorsInFiles is a driver flag for specifying the list of file prefixes to not report errors.
	_excludeErrorsInFiles string
	// _logLevel is the minimum level of the log records written to stderr.
	_logLevel slog.LevelVar
)

func run(pass *analysis.Pass) (any, error) {
	includes, err := parseFilePrefixes(_includeErrorsInFiles)
	if err != nil {
		return nil, fmt.Errorf("parse file prefixes for error inclusion: %w", err)
	}
	excludes, err := parseFilePrefixes(_excludeErrorsInFiles)
	if err != nil {
		return nil, fmt.Errorf("parse file prefixes for error exclusion: %w", err)
	}

	// Override the report function to add error filtering logic.
	report := pass.Report
	pass.Report = func(d analysis.Diagnostic) {
		f := pass.Fset.File(d.Pos)
		if f == nil {
			report(d)
			return
		}
		p := f.Name()
		for _, e := range excludes {
			if strings.HasPrefix(p, e) {
				return
			}
		}

		for _, i := range includes {
			if strings.HasPrefix(p, i) {
				report(d)
				return
			}
		}
	}

	return smartcast.Analyzer.Run(pass)
}

// parseFilePrefixes parses the comma-separated list of file prefixes, converts them to absolute
// file paths, and returns them as a slice.
func parseFilePrefixes(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}

	list := strings.Split(s, ",")
	for i := range list {
		p, err := filepath.Abs(list[i])
		if err != nil {
			return nil, fmt.Errorf("convert %q to absolute path: %w", list[i], err)
		}
		list[i] = p
	}
	return list, nil
}

func main() {
	// Lift the flags of config.Analyzer to the top level, so that users can write
	// `smartcast -flag1 <VALUE1> ./...` instead of `smartcast -smartcast_config.flag1 <VALUE1> ./...`.
	config.Analyzer.Flags.VisitAll(func(f *flag.Flag) { flag.Var(f.Value, f.Name, f.Usage) })

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get working directory: %v\n", err)
		os.Exit(1)
	}
	flag.StringVar(&_includeErrorsInFiles, "include-errors-in-files", wd, "A comma-separated list of file prefixes to report errors, default is current working directory.")
	flag.StringVar(&_excludeErrorsInFiles, "exclude-errors-in-files", "", "A comma-separated list of file prefixes to exclude from error reporting. This takes precedence over include-errors-in-files.")
	flag.TextVar(&_logLevel, "log-level", slog.LevelWarn, "Minimum level of the logs written to stderr (DEBUG, INFO, WARN or ERROR).")

	// singlechecker parses the flags itself, the handler reads the level lazily.
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: &_logLevel})))

	singlechecker.Main(Analyzer)
}
