package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"subdomain-gateway/middleware/subdomain/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStatsStore grava contadores de dispatch em hashes do Redis.
//
// Layout das chaves (prefixo padrão "subdomain:stats"):
//
//	<prefix>:total                 matched|not_found|throttled
//	<prefix>:minute:<yyyymmddhhmm> idem, com TTL
//	<prefix>:handler               <handler>:<campo>
//	<prefix>:subdomain:<sub>       idem, com TTL (opcional)
type RedisStatsStore struct {
	rdb redis.Cmdable

	prefix string
	// ttl aplica apenas em chaves de série temporal / por subdomínio.
	// total e handler são cumulativos e não expiram.
	ttl time.Duration

	bucket string // "minute" (padrão) ou "none"

	trackSubdomains bool
}

type RedisStatsOption func(*RedisStatsStore)

func WithStatsPrefix(prefix string) RedisStatsOption {
	return func(s *RedisStatsStore) {
		if p := strings.Trim(prefix, ":"); p != "" {
			s.prefix = p
		}
	}
}

func WithStatsTTL(d time.Duration) RedisStatsOption {
	return func(s *RedisStatsStore) { s.ttl = d }
}

func WithStatsBucket(bucket string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func WithStatsTrackSubdomains(track bool) RedisStatsOption {
	return func(s *RedisStatsStore) { s.trackSubdomains = track }
}

func NewRedisStatsStore(rdb redis.Cmdable, opts ...RedisStatsOption) *RedisStatsStore {
	s := &RedisStatsStore{
		rdb:    rdb,
		prefix: "subdomain:stats",
		ttl:    24 * time.Hour,
		bucket: "minute",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func statsField(ev domain.DispatchEvent) string {
	switch {
	case ev.Throttled:
		return "throttled"
	case ev.Matched:
		return "matched"
	default:
		return "not_found"
	}
}

func (s *RedisStatsStore) Record(ctx context.Context, ev domain.DispatchEvent) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	field := statsField(ev)

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, s.prefix+":total", field, 1)

	if s.bucket == "minute" {
		bucketKey := fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504"))
		pipe.HIncrBy(ctx, bucketKey, field, 1)
		if s.ttl > 0 {
			pipe.Expire(ctx, bucketKey, s.ttl)
		}
	}

	if h := strings.TrimSpace(string(ev.Handler)); h != "" {
		pipe.HIncrBy(ctx, s.prefix+":handler", h+":"+field, 1)
	}

	if s.trackSubdomains {
		subKey := s.prefix + ":subdomain:" + string(domain.KeyFor(ev.Subdomain))
		pipe.HIncrBy(ctx, subKey, field, 1)
		if s.ttl > 0 {
			pipe.Expire(ctx, subKey, s.ttl)
		}
	}

	_, err := pipe.Exec(ctx)
	return err
}
