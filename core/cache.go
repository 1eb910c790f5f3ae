package core

import (
	"github.com/anoideaopen/market/core/contracts"
	lru "github.com/hashicorp/golang-lru/v2"
)

// handleCache keeps validated contract handles of one backend, keyed by
// reference. A nil cache stores nothing.
type handleCache struct {
	lru *lru.Cache[contracts.Reference, *contracts.Contract]
}

func newHandleCache(size int) *handleCache {
	if size <= 0 {
		return nil
	}

	c, err := lru.New[contracts.Reference, *contracts.Contract](size)
	if err != nil {
		return nil
	}
	return &handleCache{lru: c}
}

func (c *handleCache) get(ref contracts.Reference) (*contracts.Contract, bool) {
	if c == nil {
		return nil, false
	}
	return c.lru.Get(ref)
}

func (c *handleCache) add(ref contracts.Reference, handle *contracts.Contract) {
	if c == nil {
		return
	}
	c.lru.Add(ref, handle)
}

func (c *handleCache) forget(ref contracts.Reference) bool {
	if c == nil {
		return false
	}
	return c.lru.Remove(ref)
}

func (c *handleCache) len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
