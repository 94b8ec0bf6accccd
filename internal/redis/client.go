// Package redis builds the go-redis clients that back bonus persistence.
package redis

import (
	"crypto/tls"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options tunes the connection pool
type Options struct {
	PoolSize        int
	MinIdleConns    int
	ConnMaxIdleTime time.Duration
	MaxRetries      int
	UseTLS          bool
}

func (o *Options) tlsConfig() *tls.Config {
	if o == nil || !o.UseTLS {
		return nil
	}
	return &tls.Config{MinVersion: tls.VersionTLS12}
}

// NewClient creates a client for a single instance
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.New("redis: endpoint is required")
	}
	if opts == nil {
		opts = &Options{}
	}

	return redis.NewClient(&redis.Options{
		Addr:            endpoint,
		PoolSize:        opts.PoolSize,
		MinIdleConns:    opts.MinIdleConns,
		ConnMaxIdleTime: opts.ConnMaxIdleTime,
		MaxRetries:      opts.MaxRetries,
		TLSConfig:       opts.tlsConfig(),
	}), nil
}

// NewFailoverClient creates a client that follows a sentinel-managed master
func NewFailoverClient(masterName string, sentinelAddrs []string, opts *Options) (Client, error) {
	if masterName == "" {
		return nil, errors.New("redis: master name is required")
	}
	if len(sentinelAddrs) == 0 {
		return nil, errors.New("redis: at least one sentinel address is required")
	}
	if opts == nil {
		opts = &Options{}
	}

	return redis.NewFailoverClient(&redis.FailoverOptions{
		MasterName:    masterName,
		SentinelAddrs: sentinelAddrs,
		PoolSize:      opts.PoolSize,
		MinIdleConns:  opts.MinIdleConns,
		MaxRetries:    opts.MaxRetries,
		TLSConfig:     opts.tlsConfig(),
	}), nil
}
