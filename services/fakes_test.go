package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"eventpro-backend/utils"
)

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (n *fakeNotifier) Send(_ context.Context, to, body string) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return "", n.err
	}
	n.sent = append(n.sent, to+": "+body)
	return "SM123", nil
}

type fakeCache struct {
	values map[string]string
	gets   int
	err    error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (c *fakeCache) GetFromCache(_ context.Context, key string) (string, error) {
	c.gets++
	if c.err != nil {
		return "", c.err
	}
	v, ok := c.values[key]
	if !ok {
		return "", utils.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) SetToCache(_ context.Context, key, value string, _ time.Duration) error {
	c.values[key] = value
	return nil
}

func (c *fakeCache) DeleteFromCache(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

func (c *fakeCache) Ping(context.Context) error { return nil }
func (c *fakeCache) Close() error               { return nil }

type fakeProducer struct {
	messages [][2][]byte
	err      error
}

func (p *fakeProducer) SendMessage(_ context.Context, key, value []byte) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, [2][]byte{key, value})
	return nil
}

func (p *fakeProducer) Close() error { return nil }

var errBoom = errors.New("boom")
