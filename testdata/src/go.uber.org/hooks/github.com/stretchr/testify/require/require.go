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

// Package require is a stub of the real `github.com/stretchr/testify/require` package, since the
// test data cannot import modules.
package require

type TestingT interface {
	Errorf(format string, args ...interface{})
	FailNow()
}

type Assertions struct {
	t TestingT
}

func New(t TestingT) *Assertions { return &Assertions{t: t} }

func NotNil(t TestingT, object interface{}, msgAndArgs ...interface{}) {}

func NotNilf(t TestingT, object interface{}, msg string, args ...interface{}) {}

func Nil(t TestingT, object interface{}, msgAndArgs ...interface{}) {}

func NoError(t TestingT, err error, msgAndArgs ...interface{}) {}

func Error(t TestingT, err error, msgAndArgs ...interface{}) {}

func True(t TestingT, value bool, msgAndArgs ...interface{}) {}

func False(t TestingT, value bool, msgAndArgs ...interface{}) {}

func Equal(t TestingT, expected, actual interface{}, msgAndArgs ...interface{}) {}

func (a *Assertions) NotNil(object interface{}, msgAndArgs ...interface{}) {}

func (a *Assertions) Nil(object interface{}, msgAndArgs ...interface{}) {}

func (a *Assertions) NoError(err error, msgAndArgs ...interface{}) {}

func (a *Assertions) True(value bool, msgAndArgs ...interface{}) {}

func (a *Assertions) False(value bool, msgAndArgs ...interface{}) {}
