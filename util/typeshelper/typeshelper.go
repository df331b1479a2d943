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

// Package typeshelper implements utility functions for types (i.e., go/types).
package typeshelper

import "go/types"

// IsIterType returns true if the given type is an iterator function type that can be used in a
// range-over-func loop, i.e., `func(yield func(...) bool)` with at most two yield parameters.
// The body of such a loop runs inside the yield function.
//
// See more at https://tip.golang.org/doc/go1.23.
func IsIterType(t types.Type) bool {
	if t == nil {
		return false
	}
	sig, ok := t.Underlying().(*types.Signature)
	if !ok || sig.Params().Len() != 1 {
		return false
	}

	yield, ok := sig.Params().At(0).Type().Underlying().(*types.Signature)
	if !ok {
		return false
	}
	res := yield.Results()
	if yield.Params().Len() > 2 || res.Len() != 1 {
		return false
	}
	basic, ok := res.At(0).Type().Underlying().(*types.Basic)
	return ok && basic.Kind() == types.Bool
}

// IsInterface returns true if t is an interface type, excluding type parameters.
func IsInterface(t types.Type) bool {
	if t == nil {
		return false
	}
	if _, ok := types.Unalias(t).(*types.TypeParam); ok {
		return false
	}
	return types.IsInterface(t)
}

// AssertionHolds returns true if a non-nil interface value whose dynamic type is dynamic always
// passes the type assertion `.(target)`.
func AssertionHolds(dynamic, target types.Type) bool {
	if IsInterface(target) {
		return types.AssignableTo(dynamic, target)
	}
	return types.Identical(dynamic, target)
}
