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

package checker

import (
	"cmp"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"slices"
	"strings"

	"go.uber.org/smartcast/config"
	"golang.org/x/tools/go/analysis"
)

const (
	_msgAlwaysNonNil   = "redundant nil check: `%s` is always non-nil"
	_msgAlwaysNil      = "redundant nil check: `%s` is always nil"
	_msgNilDereference = "nil dereference: `%s` is always nil"
	_msgTypeAssertion  = "type assertion always succeeds: `%s` is never nil and always holds a `%s`"
)

type diagnosticKey struct {
	pos   token.Pos
	check config.Check
}

// collector gathers the diagnostics of the enabled checks, at most one per position and check.
type collector struct {
	conf *config.Config
	// allChecks is set when checking smartcast itself, where every check is enabled.
	allChecks bool
	seen      map[diagnosticKey]bool
	diags     []analysis.Diagnostic
}

func newCollector(conf *config.Config, pkg *types.Package) *collector {
	return &collector{
		conf:      conf,
		allChecks: strings.HasPrefix(pkg.Path(), config.SmartCastPkgPathPrefix),
		seen:      make(map[diagnosticKey]bool),
	}
}

func (c *collector) add(check config.Check, node ast.Node, format string, args ...any) {
	if !c.allChecks && !c.conf.IsCheckEnabled(check) {
		return
	}
	key := diagnosticKey{pos: node.Pos(), check: check}
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.diags = append(c.diags, analysis.Diagnostic{
		Pos:      node.Pos(),
		End:      node.End(),
		Category: string(check),
		Message:  fmt.Sprintf(format, args...),
	})
}

func (c *collector) len() int { return len(c.diags) }

// diagnostics returns the collected diagnostics ordered by position.
func (c *collector) diagnostics() []analysis.Diagnostic {
	slices.SortStableFunc(c.diags, func(a, b analysis.Diagnostic) int { return cmp.Compare(a.Pos, b.Pos) })
	return c.diags
}
