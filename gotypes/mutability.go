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

package gotypes

import (
	"go/ast"
	"go/token"
	"go/types"

	"go.uber.org/smartcast/util/typeshelper"
)

// Mutability records how the local variables of a package are written.
type Mutability struct {
	// reassigned holds variables written after their declaration.
	reassigned map[*types.Var]bool
	// captured holds variables that may be written outside of the flow reading them: written
	// inside a closure they are declared outside of, or whose address is taken.
	captured map[*types.Var]bool
	// receivers holds the receiver parameters of methods.
	receivers map[*types.Var]bool
}

// ScanMutability scans the given files. Taking the address of a variable makes it captured,
// unless the address is an argument of a call that borrows: such a call may write the variable
// but does not keep the pointer. borrows may be nil.
func ScanMutability(info *types.Info, files []*ast.File, borrows func(*ast.CallExpr) bool) *Mutability {
	m := &Mutability{
		reassigned: make(map[*types.Var]bool),
		captured:   make(map[*types.Var]bool),
		receivers:  make(map[*types.Var]bool),
	}
	for _, file := range files {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}
			if fn.Recv != nil {
				for _, field := range fn.Recv.List {
					for _, name := range field.Names {
						if v, ok := info.Defs[name].(*types.Var); ok {
							m.receivers[v] = true
						}
					}
				}
			}
		}
		scanWrites(info, file, borrows, func(v *types.Var, closure ast.Node, addressTaken bool) {
			m.reassigned[v] = true
			if addressTaken || (closure != nil && !within(v.Pos(), closure)) {
				m.captured[v] = true
			}
		})
	}
	return m
}

// Reassigned reports whether v is written after its declaration.
func (m *Mutability) Reassigned(v *types.Var) bool { return m.reassigned[v] }

// Captured reports whether v may be written outside of the flow reading it.
func (m *Mutability) Captured(v *types.Var) bool { return m.captured[v] }

// IsReceiver reports whether v is the receiver parameter of a method.
func (m *Mutability) IsReceiver(v *types.Var) bool { return m.receivers[v] }

// AssignedIn returns the variables written anywhere inside node.
func AssignedIn(info *types.Info, node ast.Node) map[*types.Var]bool {
	assigned := make(map[*types.Var]bool)
	scanWrites(info, node, nil, func(v *types.Var, _ ast.Node, _ bool) { assigned[v] = true })
	return assigned
}

// scanWrites calls write for every variable written inside root, with the innermost enclosing
// closure (a function literal or the body of a range-over-func loop) or nil.
func scanWrites(info *types.Info, root ast.Node, borrows func(*ast.CallExpr) bool, write func(v *types.Var, closure ast.Node, addressTaken bool)) {
	borrowed := make(map[*ast.UnaryExpr]bool)
	var walk func(node ast.Node, closure ast.Node)
	walk = func(node ast.Node, closure ast.Node) {
		ast.Inspect(node, func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.FuncLit:
				if n != node {
					walk(n.Body, n)
					return false
				}
			case *ast.RangeStmt:
				if n != node && typeshelper.IsIterType(info.TypeOf(n.X)) {
					if n.Tok == token.ASSIGN {
						writeIdents(info, closure, write, n.Key, n.Value)
					}
					walk(n.X, closure)
					walk(n.Body, n.Body)
					return false
				}
				if n.Tok == token.ASSIGN {
					writeIdents(info, closure, write, n.Key, n.Value)
				}
			case *ast.AssignStmt:
				// Redeclared variables of `:=` are recorded as uses, new ones as definitions.
				writeIdents(info, closure, write, n.Lhs...)
			case *ast.IncDecStmt:
				writeIdents(info, closure, write, n.X)
			case *ast.CallExpr:
				if borrows == nil || !borrows(n) {
					break
				}
				for _, arg := range n.Args {
					if u, ok := ast.Unparen(arg).(*ast.UnaryExpr); ok && u.Op == token.AND {
						if v := usedVar(info, u.X); v != nil {
							write(v, closure, false)
							borrowed[u] = true
						}
					}
				}
			case *ast.UnaryExpr:
				if n.Op == token.AND && !borrowed[n] {
					if v := usedVar(info, n.X); v != nil {
						write(v, closure, true)
					}
				}
			case *ast.SelectorExpr:
				// x.M() with a pointer receiver implicitly takes the address of x.
				if sel, ok := info.Selections[n]; ok && sel.Kind() != types.FieldVal && !sel.Indirect() {
					if _, ptr := sel.Recv().Underlying().(*types.Pointer); ptr {
						break
					}
					if fn, ok := sel.Obj().(*types.Func); ok {
						if recv := fn.Signature().Recv(); recv != nil {
							if _, ptrRecv := recv.Type().(*types.Pointer); ptrRecv {
								if v := usedVar(info, n.X); v != nil {
									write(v, closure, true)
								}
							}
						}
					}
				}
			}
			return true
		})
	}
	walk(root, nil)
}

func writeIdents(info *types.Info, closure ast.Node, write func(*types.Var, ast.Node, bool), exprs ...ast.Expr) {
	for _, e := range exprs {
		if v := usedVar(info, e); v != nil {
			write(v, closure, false)
		}
	}
}

// usedVar returns the variable a (possibly parenthesized) identifier refers to, excluding
// identifiers that declare it.
func usedVar(info *types.Info, e ast.Expr) *types.Var {
	if e == nil {
		return nil
	}
	ident, ok := ast.Unparen(e).(*ast.Ident)
	if !ok {
		return nil
	}
	v, _ := info.Uses[ident].(*types.Var)
	return v
}

func within(pos token.Pos, node ast.Node) bool {
	return node.Pos() <= pos && pos < node.End()
}
