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

package id

import (
	"github.com/oklog/ulid/v2"
)

// GetUlid returns a lexicographically sortable id, used for actions.
func GetUlid() string {
	return ulid.Make().String()
}

// IsUlid reports whether s parses as a ulid.
func IsUlid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
