package utils

import (
	"log"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// TTLCache 带过期时间的 LRU 缓存
type TTLCache struct {
	lru *lru.Cache[string, cacheEntry]
}

var (
	cacheOnce     sync.Once
	cacheInstance *TTLCache
)

// GetCache 进程级缓存单例，容量 256
func GetCache() *TTLCache {
	cacheOnce.Do(func() {
		l, err := lru.New[string, cacheEntry](256)
		if err != nil {
			log.Fatalf("创建 LRU 缓存失败: %v", err)
		}
		cacheInstance = &TTLCache{lru: l}
	})
	return cacheInstance
}

// Set ttl <= 0 表示不缓存
func (c *TTLCache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.lru.Add(key, cacheEntry{value: value, expiresAt: time.Now().Add(ttl)})
}

// Get 不存在或已过期返回 false
func (c *TTLCache) Get(key string) (any, bool) {
	e, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.lru.Remove(key)
		return nil, false
	}
	return e.value, true
}

func (c *TTLCache) Delete(key string) {
	c.lru.Remove(key)
}

// DeletePrefix 删除所有以 prefix 开头的键
func (c *TTLCache) DeletePrefix(prefix string) {
	for _, k := range c.lru.Keys() {
		if strings.HasPrefix(k, prefix) {
			c.lru.Remove(k)
		}
	}
}
