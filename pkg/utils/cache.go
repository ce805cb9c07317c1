package utils

import (
	"sync"
	"time"
)

// 进程内缓存，sync.Map 保证并发安全
var memoryCache sync.Map

// cacheItem 值 + 过期时间
type cacheItem struct {
	value      string
	expiration int64
}

// SetCache 写缓存，带 TTL
func SetCache(key string, value string, ttl time.Duration) {
	memoryCache.Store(key, cacheItem{
		value:      value,
		expiration: time.Now().Add(ttl).Unix(),
	})
}

// GetCache 读缓存，过期懒删除
func GetCache(key string) (string, bool) {
	val, ok := memoryCache.Load(key)
	if !ok {
		return "", false
	}

	item := val.(cacheItem)
	if time.Now().Unix() > item.expiration {
		memoryCache.Delete(key)
		return "", false
	}
	return item.value, true
}

// DeleteCache 删缓存
func DeleteCache(key string) {
	memoryCache.Delete(key)
}
