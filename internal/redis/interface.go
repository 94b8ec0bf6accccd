package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis the repositories depend on. It is an
// interface so a single instance, cluster or sentinel client can back it.
type Client interface {
	redis.UniversalClient
}
