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

// Package abnormalflow checks that calls which never return, such as panic or os.Exit, end the
// flow that reaches them.
package abnormalflow

import (
	"log"
	"os"
	"runtime"
	"testing"

	"stubs/go.uber.org/zap"
)

func exit(p *int) {
	if p == nil {
		os.Exit(1)
	}
	if p == nil { // want "redundant nil check: `p` is always non-nil"
	}
}

func fatal(p *int) {
	if p == nil {
		log.Fatalf("nil %v", p)
	}
	if p == nil { // want "redundant nil check: `p` is always non-nil"
	}
}

func panics(p *int) {
	if p == nil {
		panic("nil")
	}
	if p == nil { // want "redundant nil check: `p` is always non-nil"
	}
}

func goexit(p *int) {
	if p == nil {
		runtime.Goexit()
	}
	if p == nil { // want "redundant nil check: `p` is always non-nil"
	}
}

func testFatal(t *testing.T, p *int) {
	if p == nil {
		t.Fatal("nil")
	}
	if p == nil { // want "redundant nil check: `p` is always non-nil"
	}
}

func zapFatal(l *zap.Logger, s *zap.SugaredLogger, p, q *int) {
	if p == nil {
		l.Fatal("nil")
	}
	if p == nil { // want "redundant nil check: `p` is always non-nil"
	}
	if q == nil {
		s.Fatalf("nil %v", q)
	}
	if q == nil { // want "redundant nil check: `q` is always non-nil"
	}
}

func logOnly(p *int) {
	if p == nil {
		log.Printf("nil %v", p)
	}
	if p == nil {
	}
}

func unreachable() {
	var p *int
	os.Exit(1)
	print(*p)
}
