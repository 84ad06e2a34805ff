// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cache holds the Valkey-backed page cache for the public site and
// the code that opens it from configuration.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"rango/internal/config"
)

// dialTimeout bounds both the TCP dial and the startup ping.
const dialTimeout = 5 * time.Second

// ErrDisabled is returned by Open when no Valkey host is configured.
var ErrDisabled = errors.New("page cache disabled: VALKEY_HOST not set")

// Connect creates a client for the configured Valkey instance and pings it.
// The client is closed again if the ping fails.
func Connect(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if !cfg.CacheEnabled() {
		return nil, ErrDisabled
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.ValkeyAddr(),
		Password:    cfg.ValkeyPassword,
		DB:          cfg.ValkeyDB,
		DialTimeout: dialTimeout,
	})

	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping %s: %w", cfg.ValkeyAddr(), err)
	}

	slog.Info("valkey connected", "addr", cfg.ValkeyAddr(), "db", cfg.ValkeyDB)
	return client, nil
}

// Open connects to Valkey and wraps the client in a PageCache using the
// default TTL. Callers own the result and must Close it.
func Open(ctx context.Context, cfg *config.Config) (*PageCache, error) {
	client, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewPageCache(client, DefaultPageTTL), nil
}
