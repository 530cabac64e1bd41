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
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/go-arcade/opsboard/internal/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (s *memStore) PutObject(_ context.Context, name string, body io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[name] = data
	return "backups/" + name, nil
}

func (s *memStore) GetObject(_ context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[name]
	if !ok {
		return nil, errors.New("no such object")
	}
	return data, nil
}

func (s *memStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, name)
	return nil
}

func TestBackup_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	store := newMemStore()
	bs := NewBackupService(f.repos.Snapshot, store)

	manager := f.register(t, "gerente1", model.RoleManager)
	_, err := f.svc.Action.Create(ctx, manager, &model.CreateActionReq{
		ActionType: "grande",
		ActionName: "Banco Central",
		DateTime:   "2025-03-10T20:30",
		Result:     "vitoria",
	})
	require.NoError(t, err)

	name, err := bs.Backup(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "snapshot-"))
	assert.True(t, strings.HasSuffix(name, ".json"))

	require.NoError(t, f.svc.Member.Delete(ctx, manager.MemberId))
	_, err = f.svc.Auth.Login(ctx, &model.LoginReq{Email: "gerente1@facao.com", Password: "senha123"})
	require.Error(t, err)

	snap, err := bs.Restore(ctx, name)
	require.NoError(t, err)
	assert.Len(t, snap.Members, 1)
	assert.Len(t, snap.Actions, 1)

	// password hashes survive the round trip
	_, err = f.svc.Auth.Login(ctx, &model.LoginReq{Email: "gerente1@facao.com", Password: "senha123"})
	require.NoError(t, err)

	info, err := f.svc.Member.Get(ctx, manager.MemberId)
	require.NoError(t, err)
	assert.Equal(t, int64(50), info.Reputation)
}

func TestBackup_RestoreErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	store := newMemStore()
	bs := NewBackupService(f.repos.Snapshot, store)

	_, err := bs.Restore(ctx, "missing.json")
	assert.Error(t, err)

	store.objects["garbage.json"] = []byte("{not json")
	_, err = bs.Restore(ctx, "garbage.json")
	assert.Error(t, err)

	store.objects["future.json"] = []byte(`{"version":99}`)
	_, err = bs.Restore(ctx, "future.json")
	assert.ErrorContains(t, err, "unsupported snapshot version")
}
