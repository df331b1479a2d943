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

// Package config implements a top-level analyzer that parses the user-provided flags and exposes
// them as a Config to the other analyzers.
package config

import (
	"flag"
	"fmt"
	"go/ast"
	"go/types"
	"reflect"
	"strconv"
	"strings"

	"go.uber.org/smartcast/util/asthelper"
	"golang.org/x/tools/go/analysis"
)

// Check is a family of diagnostics that can be turned on or off.
type Check string

const (
	// CheckNilComparison reports nil comparisons whose outcome is already known.
	CheckNilComparison Check = "nilcheck"
	// CheckNilDereference reports dereferences of values that are always nil.
	CheckNilDereference Check = "nilderef"
	// CheckTypeAssertion reports type assertions that always succeed.
	CheckTypeAssertion Check = "typeassert"
)

// AllChecks lists every check, all enabled by default.
var AllChecks = []Check{CheckNilComparison, CheckNilDereference, CheckTypeAssertion}

// Config is the struct that stores the user-configurable options.
type Config struct {
	// PrettyPrint indicates whether the error messages should be pretty printed.
	PrettyPrint bool
	// includePkgs is the list of packages to analyze. An empty list means all packages.
	includePkgs []string
	// excludePkgs is the list of packages to skip, taking precedence over includePkgs.
	excludePkgs []string
	// excludeFileDocStrings is the list of strings that, when found in the docstring of a file,
	// exclude the file from the analysis.
	excludeFileDocStrings []string
	// checks is the set of enabled checks.
	checks map[Check]bool
}

// IsPkgInScope returns true iff the passed package is in scope for analysis.
func (c *Config) IsPkgInScope(pkg *types.Package) bool {
	if pkg == nil {
		return false
	}
	path := pkg.Path()
	for _, exclude := range c.excludePkgs {
		if strings.HasPrefix(path, exclude) {
			return false
		}
	}
	if len(c.includePkgs) == 0 {
		return true
	}
	for _, include := range c.includePkgs {
		if strings.HasPrefix(path, include) {
			return true
		}
	}
	return false
}

// IsFileInScope returns true iff the docstring of the file contains none of the exclusion
// strings.
func (c *Config) IsFileInScope(file *ast.File) bool {
	if asthelper.DocContains(file.Doc, SmartCastNoCheckString) {
		return false
	}
	for _, s := range c.excludeFileDocStrings {
		if asthelper.DocContains(file.Doc, s) {
			return false
		}
	}
	return true
}

// IsCheckEnabled returns true iff the check should report diagnostics.
func (c *Config) IsCheckEnabled(check Check) bool {
	return c.checks[check]
}

const _doc = "Parse the flags of smartcast and pass the resulting Config to the other analyzers"

// Analyzer is the analyzer that hosts the flags and returns the parsed *Config.
var Analyzer = &analysis.Analyzer{
	Name:       "smartcast_config",
	Doc:        _doc,
	Run:        run,
	Flags:      newFlagSet(),
	ResultType: reflect.TypeOf((*Config)(nil)),
}

// Flag names.
const (
	PrettyPrintFlag           = "pretty-print"
	IncludePkgsFlag           = "include-pkgs"
	ExcludePkgsFlag           = "exclude-pkgs"
	ExcludeFileDocStringsFlag = "exclude-file-docstrings"
	ChecksFlag                = "checks"
)

func newFlagSet() flag.FlagSet {
	fs := flag.NewFlagSet("smartcast_config", flag.ExitOnError)

	// We do not keep the returned pointers here since we will read them from the flag set in run.
	fs.Bool(PrettyPrintFlag, true, "Pretty print the error messages")
	fs.String(IncludePkgsFlag, "", "Comma-separated list of package path prefixes to analyze, empty means all packages")
	fs.String(ExcludePkgsFlag, "", "Comma-separated list of package path prefixes to skip, takes precedence over include-pkgs")
	fs.String(ExcludeFileDocStringsFlag, "", "Comma-separated list of strings that exclude a file when found in its docstring")
	fs.String(ChecksFlag, joinChecks(AllChecks), "Comma-separated list of checks to enable")

	return *fs
}

func run(pass *analysis.Pass) (any, error) {
	conf := &Config{checks: make(map[Check]bool, len(AllChecks))}

	fs := &pass.Analyzer.Flags
	var err error
	if conf.PrettyPrint, err = strconv.ParseBool(fs.Lookup(PrettyPrintFlag).Value.String()); err != nil {
		return nil, fmt.Errorf("parse %q flag: %w", PrettyPrintFlag, err)
	}
	conf.includePkgs = splitList(fs.Lookup(IncludePkgsFlag).Value.String())
	conf.excludePkgs = splitList(fs.Lookup(ExcludePkgsFlag).Value.String())
	conf.excludeFileDocStrings = splitList(fs.Lookup(ExcludeFileDocStringsFlag).Value.String())

	known := make(map[Check]bool, len(AllChecks))
	for _, c := range AllChecks {
		known[c] = true
	}
	for _, name := range splitList(fs.Lookup(ChecksFlag).Value.String()) {
		if !known[Check(name)] {
			return nil, fmt.Errorf("unknown check %q in %q flag, expect one of %q", name, ChecksFlag, joinChecks(AllChecks))
		}
		conf.checks[Check(name)] = true
	}

	return conf, nil
}

func splitList(s string) []string {
	var list []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

func joinChecks(checks []Check) string {
	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = string(c)
	}
	return strings.Join(names, ",")
}
