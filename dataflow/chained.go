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

package dataflow

import (
	"fmt"
	"strings"

	"go.uber.org/smartcast/config"
	"go.uber.org/smartcast/nullability"
	"go.uber.org/smartcast/util/orderedmap"
)

// chained is the implementation of Info. A snapshot only holds the facts that changed relative
// to its parent; the complete state is reconstructed by walking towards the root, where the
// nearest fact for a key wins. A snapshot may additionally cut the type facts of one value
// (givenTypeInfo): type facts recorded for it by ancestors are not visible from here.
type chained struct {
	parent        *chained
	nullability   *orderedmap.OrderedMap[Identity, NullabilityFact]
	types         *orderedmap.OrderedMap[Identity, TypeFact]
	givenTypeInfo Identity
	depth         int
}

func (c *chained) snapshot() *chained { return c }

func (c *chained) IsEmpty() bool { return c == _empty }

func (c *chained) Depth() int { return c.depth }

func (c *chained) NullabilityOf(v Value) nullability.Nullability {
	if !v.trackable() {
		return v.immanent
	}
	for info := c; info != nil; info = info.parent {
		if f, ok := info.nullability.Load(v.id); ok {
			return f.Nullability
		}
	}
	return v.immanent
}

func (c *chained) PredictableNullabilityOf(v Value) nullability.Nullability {
	if !v.IsStable() {
		return v.immanent
	}
	return c.NullabilityOf(v)
}

func (c *chained) PossibleTypesOf(v Value) TypeSet {
	if !v.trackable() {
		return nil
	}

	types := c.collectTypes(v.id)
	if c.NullabilityOf(v).CanBeNull() {
		return types
	}

	var enriched TypeSet
	for _, t := range types {
		enriched = enriched.With(t.MakeNotNullable())
	}
	if v.typ != nil && v.typ.IsNullable() {
		// The not-nullable static type is implied by any recorded type already below it.
		notNull := v.typ.MakeNotNullable()
		implied := false
		for _, t := range enriched {
			if t.IsSubtypeOf(notNull) {
				implied = true
				break
			}
		}
		if !implied {
			enriched = enriched.With(notNull)
		}
	}
	return enriched
}

// collectTypes gathers the recorded types of id up to (and including) the nearest snapshot that
// cut its type facts.
func (c *chained) collectTypes(id Identity) TypeSet {
	var types TypeSet
	for info := c; info != nil; info = info.parent {
		if f, ok := info.types.Load(id); ok {
			types = types.Union(f.Types)
		}
		if info.givenTypeInfo == id {
			break
		}
	}
	return types
}

func (c *chained) CompleteNullabilityInfo() *orderedmap.OrderedMap[Identity, NullabilityFact] {
	result := orderedmap.New[Identity, NullabilityFact]()
	for info := c; info != nil; info = info.parent {
		for id, f := range info.nullability.All() {
			if !result.Has(id) {
				result.Store(id, f)
			}
		}
	}
	return result
}

func (c *chained) CompleteTypeInfo() *orderedmap.OrderedMap[Identity, TypeFact] {
	result := orderedmap.New[Identity, TypeFact]()
	// Each key is cut independently at the nearest snapshot that gave it new type info.
	cut := make(map[Identity]bool)
	for info := c; info != nil; info = info.parent {
		for id, f := range info.types.All() {
			if cut[id] {
				continue
			}
			if existing, ok := result.Load(id); ok {
				existing.Types = existing.Types.Union(f.Types)
				result.Store(id, existing)
			} else {
				result.Store(id, f)
			}
		}
		if info.givenTypeInfo != nil {
			cut[info.givenTypeInfo] = true
		}
	}
	return result
}

func (c *chained) ClearValueInfo(v Value) Info {
	if !v.trackable() {
		return c
	}
	d := c.newDelta()
	d.nullability.Store(v.id, NullabilityFact{Value: v, Nullability: nullability.Unknown})
	d.givenTypeInfo = v.id
	return c.derive(d)
}

func (c *chained) Assign(a, b Value) Info {
	if !a.trackable() {
		return c
	}

	nb := c.NullabilityOf(b)
	types := c.PossibleTypesOf(b)
	// The static type of b is a fact of its own (think of a constant), unless it is the type of
	// a anyway or b is never non-null.
	if b.typ != nil && (a.typ == nil || !b.typ.Identical(a.typ)) && nb.CanBeNonNull() {
		types = types.With(b.typ)
	}

	d := c.newDelta()
	d.nullability.Store(a.id, NullabilityFact{Value: a, Nullability: nb})
	if len(types) > 0 {
		d.types.Store(a.id, TypeFact{Value: a, Types: types})
	}
	d.givenTypeInfo = a.id
	return c.derive(d)
}

func (c *chained) Equate(a, b Value) Info {
	na, nb := c.NullabilityOf(a), c.NullabilityOf(b)

	d := c.newDelta()
	changedA := c.putNullability(d, a, na.Refine(nb))
	changedB := c.putNullability(d, b, nb.Refine(na))
	// `==` does not imply that the static types are equal, but each side may be narrowed towards
	// what is known about the other one.
	typesA := c.putTypes(d, a, b)
	typesB := c.putTypes(d, b, a)
	if !changedA && !changedB && !typesA && !typesB {
		return c
	}
	return c.derive(d)
}

func (c *chained) Disequate(a, b Value) Info {
	na, nb := c.NullabilityOf(a), c.NullabilityOf(b)

	d := c.newDelta()
	changedA := c.putNullability(d, a, na.Refine(nb.AfterDisequality()))
	changedB := c.putNullability(d, b, nb.Refine(na.AfterDisequality()))
	if !changedA && !changedB {
		return c
	}
	return c.derive(d)
}

func (c *chained) EstablishSubtyping(v Value, t Type) Info {
	if !v.trackable() || t == nil {
		return c
	}
	if v.typ != nil && v.typ.Identical(t) {
		return c
	}
	if c.PossibleTypesOf(v).Contains(t) {
		return c
	}

	d := c.newDelta()
	if !t.IsNullable() {
		d.nullability.Store(v.id, NullabilityFact{Value: v, Nullability: nullability.NotNull})
	}
	d.types.Store(v.id, TypeFact{Value: v, Types: TypeSet{t}})
	return c.derive(d)
}

func (c *chained) And(other Info) Info {
	o := other.snapshot()
	switch {
	case o == _empty:
		return c
	case c == _empty:
		return o
	case c == o:
		return c
	}

	d := c.newDelta()
	for id, f := range o.CompleteNullabilityInfo().All() {
		current := c.NullabilityOf(f.Value)
		if combined := current.And(f.Nullability); combined != current {
			d.nullability.Store(id, NullabilityFact{Value: f.Value, Nullability: combined})
		}
	}
	// Type facts of other are taken over as they are; those of c stay visible through the
	// parent link.
	d.types = o.CompleteTypeInfo()
	if d.nullability.Len() == 0 && d.types.Len() == 0 {
		return c
	}
	return c.derive(d)
}

func (c *chained) Or(other Info) Info {
	o := other.snapshot()
	switch {
	case c == _empty, o == _empty:
		return Empty
	case c == o:
		return c
	}

	// The merged snapshot is a root: nothing of either side survives unless it is true on both.
	merged := &chained{
		nullability: orderedmap.New[Identity, NullabilityFact](),
		types:       orderedmap.New[Identity, TypeFact](),
		depth:       1,
	}
	for _, side := range [...]*chained{c, o} {
		for id, f := range side.CompleteNullabilityInfo().All() {
			if merged.nullability.Has(id) {
				continue
			}
			n := c.NullabilityOf(f.Value).Or(o.NullabilityOf(f.Value))
			if n != f.Value.immanent {
				merged.nullability.Store(id, NullabilityFact{Value: f.Value, Nullability: n})
			}
		}
	}

	otherTypes := o.CompleteTypeInfo()
	for id, f := range c.CompleteTypeInfo().All() {
		g, ok := otherTypes.Load(id)
		if !ok {
			continue
		}
		if common := f.Types.Intersect(g.Types); len(common) > 0 {
			merged.types.Store(id, TypeFact{Value: f.Value, Types: common})
		}
	}

	if merged.nullability.Len() == 0 && merged.types.Len() == 0 {
		return Empty
	}
	return merged
}

func (c *chained) String() string {
	if c == _empty {
		return "{}"
	}
	var parts []string
	for _, f := range c.CompleteNullabilityInfo().All() {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Value, f.Nullability))
	}
	for _, f := range c.CompleteTypeInfo().All() {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Value, f.Types))
	}
	return "{" + strings.Join(parts, "; ") + "}"
}

// newDelta returns an empty child of c, to be filled and then passed to derive.
func (c *chained) newDelta() *chained {
	return &chained{
		parent:      c,
		nullability: orderedmap.New[Identity, NullabilityFact](),
		types:       orderedmap.New[Identity, TypeFact](),
		depth:       c.depth + 1,
	}
}

// derive finishes a child produced by newDelta. Chains longer than config.MaxChainDepth are
// flattened into a root holding the complete facts, which is observably the same snapshot.
func (c *chained) derive(d *chained) *chained {
	if d.depth <= config.MaxChainDepth {
		return d
	}
	return &chained{
		nullability: d.CompleteNullabilityInfo(),
		types:       d.CompleteTypeInfo(),
		depth:       1,
	}
}

// putNullability records n for v in d if it differs from what c knows, and reports whether it
// did.
func (c *chained) putNullability(d *chained, v Value, n nullability.Nullability) bool {
	if !v.trackable() || n == c.NullabilityOf(v) {
		return false
	}
	d.nullability.Store(v.id, NullabilityFact{Value: v, Nullability: n})
	return true
}

// putTypes records in d the types target gains from being equal to source: the possible types of
// source and, unless target's static type is already below it, the static type of source. It
// reports whether anything new was recorded.
func (c *chained) putTypes(d *chained, target, source Value) bool {
	if !target.trackable() {
		return false
	}

	gained := c.PossibleTypesOf(source)
	if source.typ != nil && target.typ != nil && !target.typ.IsSubtypeOf(source.typ) {
		gained = gained.With(source.typ)
	}

	known := c.PossibleTypesOf(target)
	var fresh TypeSet
	for _, t := range gained {
		if known.Contains(t) || (target.typ != nil && target.typ.Identical(t)) {
			continue
		}
		fresh = fresh.With(t)
	}
	if len(fresh) == 0 {
		return false
	}
	d.types.Store(target.id, TypeFact{Value: target, Types: fresh})
	return true
}
