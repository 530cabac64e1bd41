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
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type ICache interface {
	// Get 获取缓存值
	Get(ctx context.Context, key string) *redis.StringCmd
	// Set 设置缓存值
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	// Del 删除缓存
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

const (
	ModeNone     = "none"
	ModeLocal    = "local"
	ModeSingle   = "single"
	ModeSentinel = "sentinel"
)

// NewCache builds the cache selected by conf.Mode. ModeNone, or an empty
// Address for the redis modes, yields a nil ICache and caching is skipped.
func NewCache(conf Redis) (ICache, error) {
	switch conf.Mode {
	case "", ModeNone:
		return nil, nil
	case ModeLocal:
		return NewFastCache(FastCacheConfig{MaxBytes: conf.LocalMaxBytes}), nil
	case ModeSingle, ModeSentinel:
		if conf.Address == "" {
			return nil, nil
		}
		client, err := NewRedis(conf)
		if err != nil {
			return nil, err
		}
		return NewRedisCache(client), nil
	default:
		return nil, fmt.Errorf("unsupported cache mode: %s", conf.Mode)
	}
}
