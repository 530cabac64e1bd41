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

package cache

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

type FastCacheConfig struct {
	MaxBytes int // Maximum bytes for fastcache, default 16MB
}

// FastCache is an in-process ICache. Every entry is prefixed with its
// expiry in unix nanoseconds (0 = never) and expired entries are dropped on read.
type FastCache struct {
	cache *fastcache.Cache
	now   func() time.Time
}

func NewFastCache(conf FastCacheConfig) *FastCache {
	maxBytes := conf.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 16 * 1024 * 1024 // default 16MB
	}
	return &FastCache{
		cache: fastcache.New(maxBytes),
		now:   time.Now,
	}
}

func (fc *FastCache) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)

	raw, ok := fc.cache.HasGet(nil, []byte(key))
	if !ok || len(raw) < 8 {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	if exp := int64(binary.BigEndian.Uint64(raw[:8])); exp != 0 && fc.now().UnixNano() > exp {
		fc.cache.Del([]byte(key))
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(string(raw[8:]))
	return cmd
}

func (fc *FastCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key)

	var valueBytes []byte
	switch v := value.(type) {
	case string:
		valueBytes = []byte(v)
	case []byte:
		valueBytes = v
	default:
		data, err := sonic.Marshal(v)
		if err != nil {
			cmd.SetErr(err)
			return cmd
		}
		valueBytes = data
	}

	var exp int64
	if expiration > 0 {
		exp = fc.now().Add(expiration).UnixNano()
	}
	buf := make([]byte, 8+len(valueBytes))
	binary.BigEndian.PutUint64(buf[:8], uint64(exp))
	copy(buf[8:], valueBytes)
	fc.cache.Set([]byte(key), buf)

	cmd.SetVal("OK")
	return cmd
}

func (fc *FastCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "del")
	var count int64
	for _, key := range keys {
		if fc.cache.Has([]byte(key)) {
			fc.cache.Del([]byte(key))
			count++
		}
	}
	cmd.SetVal(count)
	return cmd
}

// Reset drops every entry.
func (fc *FastCache) Reset() {
	fc.cache.Reset()
}
