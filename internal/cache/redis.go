package cache

import (
	"context"
	"errors"
	"time"

	"github.com/emrgen/wiki/internal/compress"
	"github.com/emrgen/wiki/internal/model"
	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const defaultPageTTL = time.Hour

func pageKey(name string) string {
	return "wiki:page:" + name
}

// setIfNewer writes the entry unless the cached generation is the same or newer.
// KEYS[1] page key, ARGV[1] generation, ARGV[2] encoded page, ARGV[3] ttl in ms.
var setIfNewer = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], 'gen')
if current and tonumber(current) >= tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'gen', ARGV[1], 'data', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

var _ PageCache = (*RedisPageCache)(nil)

type RedisPageCache struct {
	client  *redis.Client
	encoder compress.Compress
	ttl     time.Duration
}

func NewRedisPageCache(client *redis.Client, encoder compress.Compress, ttl time.Duration) *RedisPageCache {
	if encoder == nil {
		encoder = compress.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultPageTTL
	}

	return &RedisPageCache{client: client, encoder: encoder, ttl: ttl}
}

func (r *RedisPageCache) GetPage(ctx context.Context, name string) (*model.Page, error) {
	res := r.client.HGet(ctx, pageKey(name), "data")
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return nil, nil
		}
		return nil, res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return nil, err
	}

	data, err := r.encoder.Decode(buf)
	if err != nil {
		return nil, err
	}

	page, err := model.DecodePage(data)
	if err != nil {
		// drop the entry, the store is the source of truth
		logrus.Warnf("dropping unreadable cached page %s: %v", name, err)
		_ = r.DeletePage(ctx, name)
		return nil, nil
	}

	return page, nil
}

func (r *RedisPageCache) SetPage(ctx context.Context, page *model.Page, generation int64) error {
	data, err := page.Encode()
	if err != nil {
		return err
	}

	data, err = r.encoder.Encode(data)
	if err != nil {
		return err
	}

	err = setIfNewer.Run(ctx, r.client, []string{pageKey(page.Name)}, generation, data, r.ttl.Milliseconds()).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

func (r *RedisPageCache) DeletePage(ctx context.Context, name string) error {
	return r.client.Del(ctx, pageKey(name)).Err()
}
