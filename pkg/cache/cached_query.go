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
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/opsboard/pkg/log"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheMiss indicates that the key was not found in cache
	ErrCacheMiss = redis.Nil
)

type QueryFunc[T any] func(ctx context.Context, key string) (T, error)

// CachedQuery is a read-through cache in front of QueryFunc. Cache failures
// never fail the read; a nil ICache turns it into a plain call of QueryFunc.
type CachedQuery[T any] struct {
	cache     ICache
	prefix    string
	queryFunc QueryFunc[T]
	ttl       time.Duration
}

func NewCachedQuery[T any](cache ICache, prefix string, ttl time.Duration, queryFunc QueryFunc[T]) *CachedQuery[T] {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CachedQuery[T]{
		cache:     cache,
		prefix:    prefix,
		queryFunc: queryFunc,
		ttl:       ttl,
	}
}

func (cq *CachedQuery[T]) Get(ctx context.Context, key string) (T, error) {
	cacheKey := cq.prefix + key

	if cq.cache != nil {
		data, err := cq.cache.Get(ctx, cacheKey).Result()
		switch {
		case err == nil && data != "":
			var result T
			if err := sonic.UnmarshalString(data, &result); err == nil {
				log.Debugw("cache hit", "key", cacheKey)
				return result, nil
			}
			log.Warnw("failed to unmarshal cached data", "key", cacheKey, "error", err)
		case err != nil && !errors.Is(err, ErrCacheMiss):
			log.Warnw("cache get error", "key", cacheKey, "error", err)
		}
	}

	result, err := cq.queryFunc(ctx, key)
	if err != nil {
		return result, err
	}

	if cq.cache != nil {
		data, err := sonic.MarshalString(result)
		if err != nil {
			log.Warnw("failed to marshal result for caching", "key", cacheKey, "error", err)
			return result, nil
		}
		if err := cq.cache.Set(ctx, cacheKey, data, cq.ttl).Err(); err != nil {
			log.Warnw("failed to cache result", "key", cacheKey, "error", err)
		}
	}

	return result, nil
}

func (cq *CachedQuery[T]) Invalidate(ctx context.Context, keys ...string) {
	if cq.cache == nil || len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = cq.prefix + k
	}
	if err := cq.cache.Del(ctx, full...).Err(); err != nil {
		log.Warnw("failed to invalidate cache", "keys", full, "error", err)
	}
}
