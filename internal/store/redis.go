package store

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Mirror backed by a Redis hash, one field per mirror key.  It is
// the shared-mirror option: several portal processes pointed at the same
// Redis see the same state.  Like the other implementations it is best
// effort; a Redis outage turns mutations into logged no-ops and reads into
// misses.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis wraps an already-connected client.  hashKey namespaces the mirror
// so several deployments can share one server; empty means "portal:mirror".
// A nil client yields a nil *Redis, which callers should treat as "no Redis
// configured" and fall back to another Mirror.
func NewRedis(client *redis.Client, hashKey string) *Redis {
	if client == nil {
		return nil
	}
	if hashKey == "" {
		hashKey = "portal:mirror"
	}
	return &Redis{client: client, key: hashKey}
}

func (r *Redis) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	v, err := r.client.HGet(ctx, r.key, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("mirror: redis get %q failed: %v", key, err)
		}
		return "", false
	}
	return v, true
}

func (r *Redis) Set(key, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.client.HSet(ctx, r.key, key, value).Err(); err != nil {
		log.Printf("mirror: redis set %q failed: %v", key, err)
	}
}

func (r *Redis) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.client.HDel(ctx, r.key, key).Err(); err != nil {
		log.Printf("mirror: redis delete %q failed: %v", key, err)
	}
}
