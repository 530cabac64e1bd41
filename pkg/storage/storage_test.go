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

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFullPath(t *testing.T) {
	tests := []struct {
		base, name, want string
	}{
		{"", "a.json", "a.json"},
		{"backups", "a.json", "backups/a.json"},
		{"/backups/", "/a.json", "backups/a.json"},
		{"ops/backups", "2025/a.json", "ops/backups/2025/a.json"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, getFullPath(tt.base, tt.name))
	}
}

func TestNewStorage_Validation(t *testing.T) {
	_, err := NewStorage(&Storage{Provider: StorageS3})
	assert.ErrorContains(t, err, "bucket")

	_, err = NewStorage(&Storage{Provider: "gcs", Bucket: "b"})
	assert.ErrorContains(t, err, "unsupported")
}

func TestNewStorage_Minio(t *testing.T) {
	p, err := NewStorage(&Storage{
		Provider:  StorageMinio,
		Endpoint:  "localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "opsboard",
	})
	assert.NoError(t, err)
	assert.IsType(t, &MinioStorage{}, p)
}
