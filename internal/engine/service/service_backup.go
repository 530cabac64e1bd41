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

package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/opsboard/internal/engine/repo"
	"github.com/go-arcade/opsboard/pkg/id"
	"github.com/go-arcade/opsboard/pkg/log"
	"github.com/go-arcade/opsboard/pkg/storage"
)

/**
 * @file: service_backup.go
 * @description: snapshot export to / import from object storage
 */

type BackupService struct {
	snapshots repo.ISnapshotRepository
	store     storage.StorageProvider
}

func NewBackupService(snapshots repo.ISnapshotRepository, store storage.StorageProvider) *BackupService {
	return &BackupService{snapshots: snapshots, store: store}
}

// Backup uploads a JSON snapshot and returns its object name.
func (bs *BackupService) Backup(ctx context.Context) (string, error) {
	snap, err := bs.snapshots.Dump(ctx)
	if err != nil {
		return "", fmt.Errorf("dump snapshot: %w", err)
	}
	data, err := sonic.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	name := fmt.Sprintf("snapshot-%s-%s.json", snap.TakenAt.Format("20060102T150405Z"), id.ShortId())
	path, err := bs.store.PutObject(ctx, name, bytes.NewReader(data), int64(len(data)), "application/json")
	if err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}
	log.Infow("snapshot uploaded",
		"object", path,
		"members", len(snap.Members),
		"actions", len(snap.Actions),
	)
	return name, nil
}

// Restore downloads objectName and replaces the stored data with it.
func (bs *BackupService) Restore(ctx context.Context, objectName string) (*repo.Snapshot, error) {
	data, err := bs.store.GetObject(ctx, objectName)
	if err != nil {
		return nil, fmt.Errorf("download snapshot: %w", err)
	}
	var snap repo.Snapshot
	if err := sonic.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != repo.SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	if err := bs.snapshots.Restore(ctx, &snap); err != nil {
		return nil, fmt.Errorf("restore snapshot: %w", err)
	}
	log.Infow("snapshot restored",
		"object", objectName,
		"members", len(snap.Members),
		"actions", len(snap.Actions),
	)
	return &snap, nil
}
