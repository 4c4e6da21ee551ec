// Package rules provides the Redis-backed rules provider. The lending rules
// bundle is published as a JSON document under a single key by the rules
// service; this adapter reads it per call and falls back to the compiled-in
// defaults when the key is missing or unreadable. The hard system cap is
// sourced separately, from service configuration, and never from the bundle.
package rules

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	corerules "microlend-backend/internal/rules"
)

type RedisProvider struct {
	rdb      *redis.Client
	key      string
	caps     corerules.SystemCaps
	fallback *corerules.Snapshot
	log      *logrus.Logger
}

func NewRedisProvider(rdb *redis.Client, key string, caps corerules.SystemCaps, log *logrus.Logger) *RedisProvider {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RedisProvider{
		rdb:      rdb,
		key:      key,
		caps:     caps,
		fallback: corerules.Defaults(),
		log:      log,
	}
}

func (p *RedisProvider) Rules(ctx context.Context) (*corerules.Snapshot, error) {
	raw, err := p.rdb.Get(ctx, p.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			p.log.WithError(err).WithField("key", p.key).Warn("rules bundle unreadable; using defaults")
		}
		cp := *p.fallback
		return &cp, nil
	}
	var snap corerules.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		p.log.WithError(err).WithField("key", p.key).Warn("rules bundle malformed; using defaults")
		cp := *p.fallback
		return &cp, nil
	}
	return &snap, nil
}

func (p *RedisProvider) Caps(ctx context.Context) (corerules.SystemCaps, error) {
	return p.caps, nil
}
