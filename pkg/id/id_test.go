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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetUUID(t *testing.T) {
	u := GetUUID()
	assert.Len(t, u, 36)
	assert.True(t, IsUUID(u))
	assert.Len(t, GetUUIDWithoutDashes(), 32)
	assert.False(t, IsUUID("not-a-uuid"))
}

func TestGetUlid(t *testing.T) {
	a := GetUlid()
	b := GetUlid()
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
	assert.True(t, IsUlid(a))
	assert.False(t, IsUlid("x"))
}

func TestShortId(t *testing.T) {
	assert.NotEmpty(t, ShortId())
}
