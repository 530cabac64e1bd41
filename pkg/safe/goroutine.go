// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package safe

import (
	"runtime/debug"

	"github.com/go-arcade/opsboard/pkg/log"
)

// Go runs f on a new goroutine; a panic is logged instead of crashing the process.
func Go(name string, f func()) {
	go func() {
		_ = Do(name, f)
	}()
}

// Do runs f and reports whether it panicked.
func Do(name string, f func()) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			log.Errorw("recovered from panic",
				"goroutine", name,
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
	}()
	f()
	return false
}
