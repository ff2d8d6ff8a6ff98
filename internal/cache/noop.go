// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cache

import (
	"context"
	"time"
)

// NoopCache never stores anything, every read is a miss.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string, interface{}) (bool, error) {
	return false, nil
}

func (NoopCache) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}

func (NoopCache) Delete(context.Context, string) error {
	return nil
}

func NewNoopCache() *NoopCache {
	return new(NoopCache)
}
