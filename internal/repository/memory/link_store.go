package memory

import (
	"encoding/binary"
	"math/rand/v2"
	"sync"

	"shortlink/internal/domain"
	"shortlink/internal/repository"

	"github.com/cespare/xxhash/v2"
)

// DefaultShards is the number of independently locked partitions
const DefaultShards = 32

// ShortLinkStore is an in-memory key -> url table safe for concurrent use.
//
// The key space is split into shards, each guarded by its own RWMutex, so
// operations on the same key are linearizable while operations that land on
// different shards never wait for each other.
//
// Keys are drawn uniformly from the whole uint32 space with no collision
// check. Two Shorten calls that draw the same key leave the second url in
// place; that overwrite is accepted behavior.
type ShortLinkStore struct {
	shards  []*shard
	nextKey func() uint32
}

type shard struct {
	mu    sync.RWMutex
	links map[domain.Key]string
}

// Option configures a ShortLinkStore
type Option func(*ShortLinkStore)

// WithShards sets the shard count. Values below 1 are ignored.
func WithShards(n int) Option {
	return func(s *ShortLinkStore) {
		if n > 0 {
			s.shards = newShards(n)
		}
	}
}

// WithKeySource replaces the random key generator
func WithKeySource(next func() uint32) Option {
	return func(s *ShortLinkStore) {
		if next != nil {
			s.nextKey = next
		}
	}
}

// NewShortLinkStore creates an empty store
func NewShortLinkStore(opts ...Option) *ShortLinkStore {
	s := &ShortLinkStore{
		shards:  newShards(DefaultShards),
		nextKey: rand.Uint32,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ repository.LinkRepository = (*ShortLinkStore)(nil)

// Shorten stores url under a new random key
func (s *ShortLinkStore) Shorten(url string) (domain.Key, error) {
	// Reject before drawing a key so a bad request has no effect at all
	if err := domain.ValidateURL(url); err != nil {
		return 0, err
	}

	key := domain.Key(s.nextKey())

	sh := s.shardFor(key)
	sh.mu.Lock()
	sh.links[key] = url
	sh.mu.Unlock()

	return key, nil
}

// Redirect looks up the url stored under key
func (s *ShortLinkStore) Redirect(key domain.Key) (string, error) {
	sh := s.shardFor(key)
	sh.mu.RLock()
	url, ok := sh.links[key]
	sh.mu.RUnlock()

	if !ok {
		return "", domain.ErrNotFound
	}
	return url, nil
}

// Len returns the number of stored links.
// Shards are counted one at a time, so the total is not a point-in-time
// snapshot while writers are active.
func (s *ShortLinkStore) Len() int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		total += len(sh.links)
		sh.mu.RUnlock()
	}
	return total
}

func (s *ShortLinkStore) shardFor(key domain.Key) *shard {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(key))
	return s.shards[xxhash.Sum64(buf[:])%uint64(len(s.shards))]
}

func newShards(n int) []*shard {
	shards := make([]*shard, n)
	for i := range shards {
		shards[i] = &shard{links: make(map[domain.Key]string)}
	}
	return shards
}
