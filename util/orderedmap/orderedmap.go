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

// Package orderedmap implements a map that remembers the insertion order of its keys, so that
// iterations (and therefore everything derived from them, such as encoded facts and merged
// dataflow snapshots) are deterministic.
package orderedmap

import (
	"bytes"
	"encoding/gob"
	"errors"
	"io"
	"iter"
)

// Pair is a key-value pair stored in an OrderedMap.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// OrderedMap is a map whose iteration order is the insertion order of its keys. Overwriting an
// existing key keeps its original position. The zero value is not usable, use New.
type OrderedMap[K comparable, V any] struct {
	// Pairs holds the entries in insertion order. It must not be modified directly.
	Pairs []*Pair[K, V]
	index map[K]*Pair[K, V]
}

// New returns an empty OrderedMap.
func New[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{index: make(map[K]*Pair[K, V])}
}

// Load returns the value stored for key and whether it was present.
func (m *OrderedMap[K, V]) Load(key K) (V, bool) {
	p, ok := m.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return p.Value, true
}

// Value returns the value stored for key, or the zero value if absent.
func (m *OrderedMap[K, V]) Value(key K) V {
	v, _ := m.Load(key)
	return v
}

// Has reports whether key is present.
func (m *OrderedMap[K, V]) Has(key K) bool {
	_, ok := m.index[key]
	return ok
}

// Store sets the value for key.
func (m *OrderedMap[K, V]) Store(key K, value V) {
	if p, ok := m.index[key]; ok {
		p.Value = value
		return
	}
	p := &Pair[K, V]{Key: key, Value: value}
	m.Pairs = append(m.Pairs, p)
	m.index[key] = p
}

// Len returns the number of entries.
func (m *OrderedMap[K, V]) Len() int {
	return len(m.Pairs)
}

// All returns an iterator over the entries in insertion order.
func (m *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, p := range m.Pairs {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// OrderedRange calls f sequentially for each key and value in insertion order. If f returns
// false, range stops the iteration.
func (m *OrderedMap[K, V]) OrderedRange(f func(key K, value V) bool) {
	for k, v := range m.All() {
		if !f(k, v) {
			return
		}
	}
}

// GobEncode encodes the entries one by one in insertion order. An empty map encodes to nil.
func (m *OrderedMap[K, V]) GobEncode() ([]byte, error) {
	if len(m.Pairs) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	for _, p := range m.Pairs {
		if err := enc.Encode(p); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// GobDecode decodes entries produced by GobEncode and appends them to the map.
func (m *OrderedMap[K, V]) GobDecode(b []byte) error {
	if m.index == nil {
		m.index = make(map[K]*Pair[K, V])
	}

	dec := gob.NewDecoder(bytes.NewReader(b))
	for {
		var p Pair[K, V]
		if err := dec.Decode(&p); errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}
		m.Store(p.Key, p.Value)
	}
}
