package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const DefaultMemoryStoreSize = 10000

// MemoryStore is an in-process Store for single-instance deployments and tests.
type MemoryStore struct {
	lru *expirable.LRU[string, string]
	ttl time.Duration
}

func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	if size <= 0 {
		size = DefaultMemoryStoreSize
	}
	return &MemoryStore{lru: expirable.NewLRU[string, string](size, nil, ttl), ttl: ttl}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	val, ok := s.lru.Get(key)
	return val, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.lru.Add(key, value)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.lru.Remove(key)
	return nil
}

func (s *MemoryStore) TTL() time.Duration { return s.ttl }
