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

// Package dataflow implements the flow-sensitive refinement engine behind smart casts: the
// identities that key facts (Identity, Value), the factory that turns host expressions into those
// identities (Factory), and the persistent snapshots of nullability and type facts (Info).
package dataflow

import "fmt"

// Identity is the key of a Value. Two values denote the same observable value iff their
// identities are equal (==). The set of variants is closed.
type Identity interface {
	fmt.Stringer
	isIdentity()
}

// Declaration identifies a resolved variable, field or property. Ref is the host handle (for
// example a *types.Var) and must be comparable.
type Declaration struct {
	Ref any
}

// ThisReceiver identifies the receiver parameter of the enclosing member or extension.
type ThisReceiver struct {
	Ref any
}

// Composite identifies a qualified access `receiver.selector`.
type Composite struct {
	Receiver Identity
	Selector Identity
}

// Expression identifies a single expression occurrence. Two occurrences of the same source text
// have different identities, so no facts are shared between them.
type Expression struct {
	Ref any
}

// Transient identifies a synthetic receiver that is never part of a stable chain.
type Transient struct {
	Ref any
}

// NullLiteral identifies the null value.
type NullLiteral struct{}

// ErrorSentinel identifies unresolvable or erroneous expressions.
type ErrorSentinel struct{}

func (Declaration) isIdentity()   {}
func (ThisReceiver) isIdentity()  {}
func (Composite) isIdentity()     {}
func (Expression) isIdentity()    {}
func (Transient) isIdentity()     {}
func (NullLiteral) isIdentity()   {}
func (ErrorSentinel) isIdentity() {}

func (d Declaration) String() string  { return refString(d.Ref) }
func (r ThisReceiver) String() string { return "this@" + refString(r.Ref) }
func (c Composite) String() string    { return c.Receiver.String() + "." + c.Selector.String() }
func (e Expression) String() string   { return "expr(" + refString(e.Ref) + ")" }
func (r Transient) String() string    { return "transient(" + refString(r.Ref) + ")" }
func (NullLiteral) String() string    { return "null" }
func (ErrorSentinel) String() string  { return "<error>" }

func refString(ref any) string {
	if s, ok := ref.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", ref)
}
