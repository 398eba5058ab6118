package main

import (
	"github.com/x-xyz/yieldbot/service/cache/provider"
	"github.com/x-xyz/yieldbot/service/cache/provider/compound"
	"github.com/x-xyz/yieldbot/service/cache/provider/primitive"
	redis_provider "github.com/x-xyz/yieldbot/service/cache/provider/redis"
	"github.com/x-xyz/yieldbot/service/redis"
)

const (
	providerPrimitive = "primitive"
	providerRedis     = "redis"
	providerCompound  = "compound"

	defaultFragmentSizeMB = 16
)

type fragmentStoreCfg struct {
	Provider string
	// SizeMB is the freecache size of the primitive and compound providers
	SizeMB int
	// Redis is only called by the redis and compound providers
	Redis func() redis.Service
}

// newFragmentProvider returns the provider behind the fragment cache and the
// redis service it uses, nil when redis is not involved
func newFragmentProvider(cfg fragmentStoreCfg) (provider.Provider, redis.Service) {
	sizeMB := cfg.SizeMB
	if sizeMB <= 0 {
		sizeMB = defaultFragmentSizeMB
	}

	switch cfg.Provider {
	case providerRedis:
		redisCache := cfg.Redis()
		return redis_provider.NewRedis(redisCache), redisCache
	case providerCompound:
		redisCache := cfg.Redis()
		return compound.NewCompound([]provider.Provider{
			primitive.NewPrimitive("fragments", sizeMB),
			redis_provider.NewRedis(redisCache),
		}), redisCache
	default:
		return primitive.NewPrimitive("fragments", sizeMB), nil
	}
}
