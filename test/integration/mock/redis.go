package mock

import (
	"context"
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisServer *miniredis.Miniredis
var redisConn *redis.Client

// NewRedis starts a shared miniredis server and returns a client for it.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		srv, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisServer = srv
		redisConn = redis.NewClient(&redis.Options{Addr: srv.Addr()})
	})
	return redisConn
}

// ClearRedis drops every key.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.TODO()).Err()
}

// FastForwardRedis expires keys as if d had elapsed.
func FastForwardRedis(d time.Duration) {
	if redisServer != nil {
		redisServer.FastForward(d)
	}
}
