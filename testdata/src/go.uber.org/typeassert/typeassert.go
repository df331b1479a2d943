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

// Package typeassert checks that type assertions of values whose dynamic type is already known
// are reported.
package typeassert

type myErr struct{}

func (*myErr) Error() string { return "" }

type Shape interface{ Area() int }

type square struct{}

func (square) Area() int { return 0 }

func assigned() {
	var err error = &myErr{}
	_ = err.(*myErr) // want "type assertion always succeeds: `err` is never nil and always holds a `\\*myErr`"
}

func typedNil() {
	var p *myErr
	var err error = p
	_ = err.(*myErr) // want "type assertion always succeeds: `err` is never nil and always holds a `\\*myErr`"
}

func unknown(err error) {
	_ = err.(*myErr)
}

func afterNilCheck(err error) {
	if err != nil {
		_ = err.(*myErr)
		_ = err.(error) // want "type assertion always succeeds: `err` is never nil and always holds a `error`"
	}
}

func repeated(s Shape) {
	_ = s.(square)
	_ = s.(square) // want "type assertion always succeeds: `s` is never nil and always holds a `square`"
}

func typeSwitch(v any) {
	switch x := v.(type) {
	case *myErr:
		_ = v.(*myErr) // want "type assertion always succeeds: `v` is never nil and always holds a `\\*myErr`"
	case nil:
		if x != nil { // want "redundant nil check: `x` is always nil"
		}
	}
}

func commaOk(s Shape) {
	if sq, ok := s.(square); ok {
		_ = s.(square) // want "type assertion always succeeds: `s` is never nil and always holds a `square`"
		_ = sq
	}
}
