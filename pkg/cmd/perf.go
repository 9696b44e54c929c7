// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// timer marks the start of a timed phase of a run command. Unlike
// go-corset's multi-phase compiler, which tracks memory growth across a
// whole pipeline of lowering passes, "scalpel check"/"scalpel frames" are
// single-pass CLI invocations: a wall-clock figure logged at exit is
// enough for a user to notice a pathologically slow compilation database.
func timer() time.Time {
	return time.Now()
}

// logElapsed logs the time since start under prefix, gated behind
// -v/--verbose like the rest of this package's diagnostics.
func logElapsed(prefix string, start time.Time) {
	log.Debugf("%s took %s", prefix, time.Since(start))
}
