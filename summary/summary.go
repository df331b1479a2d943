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

// Package summary records, per function, which results are never nil on any return path. The
// checker computes the summaries of a package and exports them as a package fact so that callers
// in downstream packages can treat those results as non-nil.
package summary

import (
	"bytes"
	"encoding/gob"
	"errors"
	"go/types"
	"testing"

	"github.com/klauspost/compress/s2"
	"go.uber.org/smartcast/util/orderedmap"
	"golang.org/x/tools/go/analysis"
)

// MaxResults is the number of leading results a summary can describe.
const MaxResults = 64

// Summaries maps the full name of functions to the bit set of their non-nil result indices.
type Summaries struct {
	funcs *orderedmap.OrderedMap[string, uint64]
}

// New returns empty summaries.
func New() *Summaries {
	return &Summaries{funcs: orderedmap.New[string, uint64]()}
}

// AFact allows Summaries to be imported and exported via the Facts mechanism.
func (*Summaries) AFact() {}

// Store records the set of non-nil results of fn, replacing what was known.
func (s *Summaries) Store(fn *types.Func, results uint64) {
	s.funcs.Store(fn.FullName(), results)
}

// Results returns the set of non-nil results of fn.
func (s *Summaries) Results(fn *types.Func) uint64 {
	if s == nil || fn == nil {
		return 0
	}
	return s.funcs.Value(fn.FullName())
}

// NonNil reports whether result index of fn is never nil.
func (s *Summaries) NonNil(fn *types.Func, index int) bool {
	if index < 0 || index >= MaxResults {
		return false
	}
	return s.Results(fn)&(1<<index) != 0
}

// Len returns the number of functions with at least one non-nil result.
func (s *Summaries) Len() int {
	n := 0
	for _, results := range s.funcs.All() {
		if results != 0 {
			n++
		}
	}
	return n
}

// Equal reports whether both summaries describe the same functions.
func (s *Summaries) Equal(other *Summaries) bool {
	if s.Len() != other.Len() {
		return false
	}
	for name, results := range s.funcs.All() {
		if other.funcs.Value(name) != results {
			return false
		}
	}
	return true
}

// Export exports the summaries of the exported functions of the package as a package fact.
// Unexported functions cannot be called from other packages, so they are not encoded.
func (s *Summaries) Export(pass *analysis.Pass) {
	exported := New()
	for _, p := range s.funcs.Pairs {
		if p.Value == 0 {
			continue
		}
		if obj := lookup(pass.Pkg, p.Key); obj != nil && !obj.Exported() {
			continue
		}
		exported.funcs.Store(p.Key, p.Value)
	}
	if exported.funcs.Len() == 0 {
		return
	}

	// Round-trip the fact under test so that encoding problems surface in analyzer tests.
	if testing.Testing() {
		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(exported); err != nil {
			panic(err)
		}
		var m *Summaries
		if err := gob.NewDecoder(&buf).Decode(&m); err != nil {
			panic(err)
		}
	}

	pass.ExportPackageFact(exported)
}

// Import returns the summaries exported by pkg, or nil if there are none.
func Import(pass *analysis.Pass, pkg *types.Package) *Summaries {
	var s Summaries
	if pkg == nil || !pass.ImportPackageFact(pkg, &s) {
		return nil
	}
	return &s
}

// lookup finds the function named by a full name in pkg. It only resolves package-level
// functions; methods are reported as nil and thus always exported.
func lookup(pkg *types.Package, fullName string) *types.Func {
	prefix := pkg.Path() + "."
	if len(fullName) <= len(prefix) || fullName[:len(prefix)] != prefix {
		return nil
	}
	fn, _ := pkg.Scope().Lookup(fullName[len(prefix):]).(*types.Func)
	return fn
}

// GobEncode encodes the summaries via gob encoding, compressed with s2.
func (s *Summaries) GobEncode() (b []byte, err error) {
	var buf bytes.Buffer
	writer := s2.NewWriter(&buf)
	defer func() {
		if cerr := writer.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	if err := gob.NewEncoder(writer).Encode(s.funcs); err != nil {
		return nil, err
	}

	// Close the s2 writer before getting the bytes such that we have complete information.
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode decodes the summaries from buffer.
func (s *Summaries) GobDecode(input []byte) error {
	s.funcs = orderedmap.New[string, uint64]()
	return gob.NewDecoder(s2.NewReader(bytes.NewBuffer(input))).Decode(&s.funcs)
}
