package cache

import (
	"context"
	"fmt"

	"gitlab.com/moth-works/rolekeeper/configs"
	"gitlab.com/moth-works/rolekeeper/utils/logging"
	"go.uber.org/zap"
)

// GenerateKey builds a cache key from a base and an identifier
func GenerateKey(base string, id interface{}) string {
	return fmt.Sprintf("%s:%s", base, fmt.Sprint(id))
}

// GetCache reads a cached struct when the setting is enabled and a cache is
// configured; a nil cache behaves as a miss
func GetCache(ctx context.Context, ca *Cache, settings configs.CacheSetting, cacheKey string, output interface{}) *CacheError {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	if ca == nil || !settings.Enabled {
		return nil
	}

	cacheErr := ca.GetStruct(ctx, cacheKey, output)
	return cacheErr
}

// SetCache writes a struct when the setting is enabled and a cache is configured
func SetCache(ctx context.Context, ca *Cache, settings configs.CacheSetting, cacheKey string, input interface{}) *CacheError {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	if ca == nil || !settings.Enabled {
		return nil
	}

	cacheErr := ca.SetStruct(ctx, cacheKey, input, settings.TTL)
	return cacheErr
}

// ExpireCache expires a key when the setting is enabled and a cache is configured
func ExpireCache(ctx context.Context, ca *Cache, settings configs.CacheSetting, cacheKey string) *CacheError {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	if ca == nil || !settings.Enabled {
		return nil
	}

	cacheErr := ca.Expire(ctx, cacheKey)
	return cacheErr
}
