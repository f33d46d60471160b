package cache

import (
	"strings"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/expense-tracker/internal/logger"
)

const keyPrefix = "report"

type MemcacheClient struct {
	client *memcache.Client
}

type config interface {
	Hosts() []string
}

func NewMemcache(config config) (*MemcacheClient, error) {
	logger.Info("memcached hosts", zap.Strings("hosts", config.Hosts()))
	mc := memcache.New(config.Hosts()...)
	return &MemcacheClient{mc}, mc.Ping()
}

// formatKey builds a memcached-safe key; emails cannot hold spaces but may
// carry control characters a client typed, those are dropped.
func formatKey(email, window string) string {
	clean := strings.Map(func(r rune) rune {
		if r <= ' ' || r == 0x7f {
			return -1
		}
		return r
	}, strings.ToLower(email))
	return keyPrefix + ":" + clean + ":" + window
}

func (mc *MemcacheClient) CacheReport(email, window, report string, ttl time.Duration) error {
	logger.Debug("cache report", zap.String("email", email), zap.String("window", window))
	err := mc.client.Set(&memcache.Item{
		Key:        formatKey(email, window),
		Value:      []byte(report),
		Expiration: int32(ttl.Seconds()),
	})
	return errors.Wrap(err, "cache report")
}

func (mc *MemcacheClient) GetReport(email, window string) (string, error) {
	logger.Debug("get report from cache", zap.String("email", email), zap.String("window", window))
	item, err := mc.client.Get(formatKey(email, window))
	if err != nil {
		return "", err
	}
	return string(item.Value), nil
}

func (mc *MemcacheClient) InvalidateCache(email string, windows []string) error {
	logger.Info("invalidate cache", zap.String("email", email))

	for _, window := range windows {
		err := mc.client.Delete(formatKey(email, window))
		if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
			return errors.Wrap(err, "invalidate cache")
		}
	}
	return nil
}
