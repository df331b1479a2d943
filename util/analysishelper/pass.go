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

package analysishelper

import (
	"fmt"
	"go/ast"
	"go/token"

	"go.uber.org/smartcast/util/asthelper"
	"go.uber.org/smartcast/util/tokenhelper"
	"golang.org/x/tools/go/analysis"
)

// EnhancedPass is a drop-in replacement for `*analysis.Pass` that provides additional helper
// methods to make it easier to work with the analysis pass.
type EnhancedPass struct {
	*analysis.Pass
}

// NewEnhancedPass creates a new EnhancedPass from the given *analysis.Pass.
func NewEnhancedPass(pass *analysis.Pass) *EnhancedPass {
	return &EnhancedPass{Pass: pass}
}

// IsType returns true if the given expression denotes a type rather than a value.
func (p *EnhancedPass) IsType(expr ast.Expr) bool {
	tv, ok := p.TypesInfo.Types[expr]
	return ok && tv.IsType()
}

// ExprString returns the (shortened) source text of the expression for use in messages.
func (p *EnhancedPass) ExprString(expr ast.Expr) string {
	return asthelper.PrintExpr(p.Fset, expr, true /* isShortenExpr */)
}

// Position returns the "file:line:column" location of pos, with the file relative to the
// working directory when possible.
func (p *EnhancedPass) Position(pos token.Pos) string {
	position := p.Fset.Position(pos)
	if !position.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%s:%d:%d", tokenhelper.RelToCwd(position.Filename), position.Line, position.Column)
}
