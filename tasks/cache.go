package tasks

import (
	"errors"
	"github.com/kelseyhightower/envconfig"
	"text2phenotype.com/nlg/redis"
	"text2phenotype.com/nlg/utils"
	"time"
)

const cacheKeyPrefix = "nlg-realisation"

type CacheConfig struct {
	TTLSeconds int `envconfig:"NLG_CACHE_TTL_SECONDS" default:"86400"`
}

// Cache keeps pipeline responses by configuration and spec.
type Cache struct {
	client redis.Client
	ttl    time.Duration
}

func NewCache(client redis.Client) (Cache, error) {
	var cfg CacheConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return Cache{}, err
	}
	return Cache{client: client, ttl: time.Duration(cfg.TTLSeconds) * time.Second}, nil
}

// CacheKey identifies the realisation of spec under a named configuration.
func CacheKey(configuration string, spec []byte) string {
	return utils.HashKey(cacheKeyPrefix, []byte(configuration), []byte{0}, spec)
}

// Get returns the cached response for key. The second value is false on a
// miss.
func (cache Cache) Get(key string) (string, bool, error) {
	b, err := cache.client.GetRaw(key)
	if errors.Is(err, redis.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}

func (cache Cache) Store(key string, response string) error {
	return cache.client.Set(key, []byte(response), cache.ttl)
}
