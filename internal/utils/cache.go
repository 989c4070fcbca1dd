package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheItem 包装实际的数据，增加过期时间
type cacheItem[V any] struct {
	Value     V
	ExpiredAt time.Time
}

// TTLCache 带过期时间的 LRU 缓存封装
type TTLCache[K comparable, V any] struct {
	storage *lru.Cache[K, cacheItem[V]]
	ttl     time.Duration
}

// NewTTLCache 初始化，size 是最大缓存条数，ttl 是数据有效期
func NewTTLCache[K comparable, V any](size int, ttl time.Duration) *TTLCache[K, V] {
	// lru.New 是线程安全的
	c, _ := lru.New[K, cacheItem[V]](size)
	return &TTLCache[K, V]{
		storage: c,
		ttl:     ttl,
	}
}

// Set 写入缓存（已存在时覆盖）
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.storage.Add(key, cacheItem[V]{
		Value:     value,
		ExpiredAt: time.Now().Add(c.ttl),
	})
}

// Get 读取缓存（带过期检查）
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	var zero V
	item, ok := c.storage.Get(key)
	if !ok {
		return zero, false
	}

	if time.Now().After(item.ExpiredAt) {
		c.storage.Remove(key) // 过期删除
		return zero, false
	}

	return item.Value, true
}

// Delete 删除指定键
func (c *TTLCache[K, V]) Delete(key K) {
	c.storage.Remove(key)
}

// Clear 清空所有缓存
func (c *TTLCache[K, V]) Clear() {
	c.storage.Purge()
}

// Len 当前缓存条数
func (c *TTLCache[K, V]) Len() int {
	return c.storage.Len()
}
