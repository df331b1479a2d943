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

package checker

import (
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/smartcast/dataflow"
	"go.uber.org/smartcast/gotypes"
	"go.uber.org/smartcast/nullability"
	"go.uber.org/smartcast/smartcasttest"
)

var _ptr = smartcasttest.NewClass("T").Nullable()

func value(name string, kind dataflow.Kind) dataflow.Value {
	return dataflow.NewValue(dataflow.Declaration{Ref: name}, _ptr, kind)
}

func TestFlowJoin(t *testing.T) {
	t.Parallel()

	p := value("p", dataflow.StableValue)
	nonNil := live(dataflow.Empty.Disequate(p, dataflow.NullValue))
	null := live(dataflow.Empty.Equate(p, dataflow.NullValue))

	// Dead predecessors contribute nothing.
	require.Equal(t, nonNil, nonNil.join(_deadFlow))
	require.Equal(t, nonNil, _deadFlow.join(nonNil))
	require.True(t, _deadFlow.join(_deadFlow).dead)

	joined := nonNil.join(null)
	require.False(t, joined.dead)
	require.Equal(t, nullability.Unknown, joined.info.NullabilityOf(p))
	require.Equal(t, nullability.NotNull, nonNil.join(nonNil).info.NullabilityOf(p))

	// Dead flows stay dead.
	require.True(t, _deadFlow.with(nonNil.info).dead)
	require.Equal(t, null.info, nonNil.with(null.info).info)
}

func TestBoxed(t *testing.T) {
	t.Parallel()

	ptr := types.NewPointer(types.Typ[types.Int])
	errType := types.Universe.Lookup("error").Type()
	tparam := types.NewTypeParam(types.NewTypeName(token.NoPos, nil, "T", nil), types.NewInterfaceType(nil, nil))
	p := dataflow.NewValue(dataflow.Declaration{Ref: "p"}, gotypes.Of(ptr), dataflow.StableValue)
	err := dataflow.NewValue(dataflow.Declaration{Ref: "err"}, gotypes.Of(errType), dataflow.StableValue)
	x := dataflow.NewValue(dataflow.Declaration{Ref: "x"}, gotypes.Of(tparam), dataflow.StableValue)

	// A pointer stored in an interface is non-nil, even a nil one.
	info := dataflow.Empty.Equate(p, dataflow.NullValue)
	b := boxed(errType, p)
	require.False(t, b.Equal(p))
	require.Equal(t, nullability.NotNull, info.NullabilityOf(b))
	require.Equal(t, nullability.NotNull, info.Assign(err, b).NullabilityOf(err))
	require.Equal(t, nullability.Null, info.Assign(err, p).NullabilityOf(err))

	// Nothing is boxed into a concrete type, nor is an interface or nil boxed again.
	require.True(t, boxed(ptr, p).Equal(p))
	require.True(t, boxed(errType, err).Equal(err))
	require.True(t, boxed(errType, dataflow.NullValue).Equal(dataflow.NullValue))

	// A type parameter may be instantiated with an interface type.
	require.Equal(t, nullability.Unknown, dataflow.Empty.NullabilityOf(boxed(errType, x)))
}

func TestTrusted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind    dataflow.Kind
		trusted bool
	}{
		{kind: dataflow.StableValue, trusted: true},
		{kind: dataflow.StableVariable, trusted: true},
		{kind: dataflow.CapturedVariable},
		{kind: dataflow.MutableProperty},
		{kind: dataflow.AlienPublicProperty},
		{kind: dataflow.PropertyWithGetter},
		{kind: dataflow.Other},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			t.Parallel()

			v := value("v", tt.kind)
			info := dataflow.Empty.Disequate(v, dataflow.NullValue)
			n, ok := trusted(info, v)
			require.Equal(t, tt.trusted, ok)
			require.Equal(t, tt.trusted, trustedKind(tt.kind))
			if tt.trusted {
				require.Equal(t, nullability.NotNull, n)
				require.Equal(t, nullability.NotNull, known(info, v))
			} else {
				require.Equal(t, nullability.Unknown, n)
			}
		})
	}
}

func TestBranch(t *testing.T) {
	t.Parallel()

	p := value("p", dataflow.StableValue)
	info := dataflow.Empty.Disequate(p, dataflow.NullValue)
	require.False(t, branch(info, p).dead)
	// A contradiction about a trusted value makes the branch unreachable.
	require.True(t, branch(info.Equate(p, dataflow.NullValue), p).dead)

	// Contradictions about untrusted values are not relied upon.
	q := value("q", dataflow.MutableProperty)
	info = dataflow.Empty.Disequate(q, dataflow.NullValue).Equate(q, dataflow.NullValue)
	require.False(t, branch(info, q).dead)
}

func TestOpaque(t *testing.T) {
	t.Parallel()

	require.Equal(t, dataflow.ErrorValue, opaque("x", nil))
	v := opaque("x", _ptr)
	require.Equal(t, dataflow.Other, v.Kind())
	require.Equal(t, dataflow.Expression{Ref: "x"}, v.ID())
	require.Equal(t, nullability.Unknown, v.ImmanentNullability())
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
