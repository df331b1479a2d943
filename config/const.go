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

package config

// This file hosts non-user-configurable parameters --- these are for development and testing purposes only.

// MaxChainDepth is the number of chained dataflow snapshots after which a snapshot is flattened
// into a root holding all of its facts. Every derivation adds a link, and lookups walk the chain,
// so deeply nested bodies would otherwise pay for their depth on every query. Flattening costs a
// copy of the complete facts once every MaxChainDepth derivations.
const MaxChainDepth = 64

// SummaryRoundLimit is the number of rounds of result summarization over a package after which
// the computation stops even if summaries still change. Summaries only ever grow, so the limit
// bounds the length of call chains through which a non-nil result is discovered in one package.
const SummaryRoundLimit = 3

// VariableCacheSize is the number of variables whose resolved declaration info is kept per
// package.
const VariableCacheSize = 1024

// MaxFuncSizeInBytes is the size of a function body above which it is not analyzed.
const MaxFuncSizeInBytes = 20000

// SmartCastNoCheckString is the string that may be inserted into the docstring of a file to
// exclude it from the analysis.
const SmartCastNoCheckString = "<smartcast ignore>"

const uberPkgPathPrefix = "go.uber.org"

// SmartCastPkgPathPrefix is the package prefix for smartcast.
const SmartCastPkgPathPrefix = uberPkgPathPrefix + "/smartcast"
