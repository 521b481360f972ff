package main

import (
	"fmt"
	"time"

	"github.com/mediocregopher/radix/v3"
	"github.com/sagarsuperuser/gcra"
)

// stateStore keeps one gcra.State per key in Redis. It does no locking of its
// own: the demo is the only writer of its key.
type stateStore struct {
	client   radix.Client
	poolSize int
	prefix   string
}

// newStateStore builds a radix pool-backed store with the given pool size.
func newStateStore(network, addr string, size int, prefix string, opts ...radix.PoolOpt) (*stateStore, error) {
	pool, err := radix.NewPool(network, addr, size, opts...)
	if err != nil {
		return nil, err
	}
	return &stateStore{client: pool, poolSize: size, prefix: prefix}, nil
}

// Load returns the stored state; a missing key loads as a brand new state.
func (s *stateStore) Load(key string) (gcra.State, error) {
	var state gcra.State
	if err := s.client.Do(radix.Cmd(&state, "GET", s.prefix+key)); err != nil {
		return gcra.State{}, fmt.Errorf("load %s: %w", key, err)
	}
	return state, nil
}

// Save writes state so that it expires once the bucket has fully drained.
// An unset or drained state deletes the key.
func (s *stateStore) Save(key string, state gcra.State, now time.Time) error {
	ttl := state.ResetAfter(now)
	if ttl <= 0 {
		return s.Delete(key)
	}
	text, err := state.MarshalText()
	if err != nil {
		return err
	}
	ms := (ttl + time.Millisecond - 1).Milliseconds()
	if err := s.client.Do(radix.FlatCmd(nil, "SET", s.prefix+key, text, "PX", ms)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Delete removes any tracking for key.
func (s *stateStore) Delete(key string) error {
	return s.client.Do(radix.Cmd(nil, "DEL", s.prefix+key))
}

// NumActiveConns returns the number of in-use pool connections.
func (s *stateStore) NumActiveConns() int {
	p, ok := s.client.(*radix.Pool)
	if !ok || s.poolSize <= 0 {
		return -1
	}
	active := s.poolSize - p.NumAvailConns()
	if active < 0 {
		active = 0
	}
	return active
}

// Close shuts down the underlying client.
func (s *stateStore) Close() error {
	return s.client.Close()
}
