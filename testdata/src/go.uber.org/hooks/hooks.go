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

// Package hooks checks the functions whose effect on their arguments is known: errors.As and the
// testify require assertions.
package hooks

import (
	"errors"
	"testing"

	"go.uber.org/hooks/github.com/stretchr/testify/require"
)

type myErr struct{}

func (*myErr) Error() string { return "" }

func errorsAs(err error) {
	var target *myErr
	if errors.As(err, &target) {
		if target == nil { // want "redundant nil check: `target` is always non-nil"
		}
	}
	// errors.As may have written target either way.
	if target == nil {
	}
}

func requireNotNil(t *testing.T, p *int) {
	require.NotNil(t, p)
	if p == nil { // want "redundant nil check: `p` is always non-nil"
	}
}

func requireNoError(t *testing.T, err error) {
	require.NoError(t, err)
	if err != nil { // want "redundant nil check: `err` is always nil"
	}
}

func requireTrue(t *testing.T, p *int) {
	require.True(t, p != nil)
	if p == nil { // want "redundant nil check: `p` is always non-nil"
	}
}

func requireFalse(t *testing.T, p *int) {
	require.False(t, p == nil)
	if p == nil { // want "redundant nil check: `p` is always non-nil"
	}
}

func requireMethods(t *testing.T, p *int) {
	r := require.New(t)
	r.NotNil(p)
	if p == nil { // want "redundant nil check: `p` is always non-nil"
	}
}

func otherCalls(t *testing.T, p *int) {
	require.Equal(t, p, nil)
	if p == nil {
	}
}
