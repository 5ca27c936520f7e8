package realtime

import (
	"log"

	"github.com/redis/go-redis/v9"
)

// NewRedis creates the client used to fan notices out to other instances.
func NewRedis(addr, password string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	log.Printf("[Redis] client created (addr: %s)", addr)
	return rdb
}
