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

import "go.uber.org/smartcast/dataflow"

// flow is the state at a program point: the facts that hold there, or dead if the point cannot
// be reached.
type flow struct {
	info dataflow.Info
	dead bool
}

var _deadFlow = flow{info: dataflow.Empty, dead: true}

func live(info dataflow.Info) flow { return flow{info: info} }

// join merges the flows of two predecessors of a program point. A dead predecessor contributes
// nothing.
func (f flow) join(g flow) flow {
	switch {
	case f.dead:
		return g
	case g.dead:
		return f
	}
	return live(f.info.Or(g.info))
}

// with replaces the facts of a live flow.
func (f flow) with(info dataflow.Info) flow {
	if f.dead {
		return f
	}
	return live(info)
}
