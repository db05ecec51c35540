package graph

import (
	"github.com/minio/highwayhash"

	"github.com/viant/stackgraph/arena"
)

// internKey is the fixed 32-byte key used to hash interned content into a
// dedup-bucket index. It does not need to be secret; it only needs to be
// stable across a process so that equal content always lands in the same
// bucket.
var internKey = []byte("stackgraph-intern-bucket-key!!!!")

func bucketHash(data []byte) uint64 {
	h, err := highwayhash.New64(internKey)
	if err != nil {
		// internKey's length is fixed at compile time and always valid;
		// highwayhash only rejects keys that aren't exactly 32 bytes.
		panic(err)
	}
	_, _ = h.Write(data)
	return h.Sum64()
}

// Interner deduplicates string-like content behind arena handles. T is
// expected to be a named string type (Symbol, InternedString) so that
// handles for distinct content kinds are not interchangeable.
type Interner[T ~string] struct {
	arena   *arena.Arena[T]
	buckets map[uint64][]arena.Handle[T]
}

// NewInterner creates an empty interner.
func NewInterner[T ~string]() *Interner[T] {
	return &Interner[T]{
		arena:   arena.NewArena[T](),
		buckets: make(map[uint64][]arena.Handle[T]),
	}
}

// Intern returns the handle for s, allocating and caching a new entry if
// this content has not been seen before.
func (in *Interner[T]) Intern(s string) arena.Handle[T] {
	key := bucketHash([]byte(s))
	for _, h := range in.buckets[key] {
		if string(*in.arena.Get(h)) == s {
			return h
		}
	}
	h := in.arena.Add(T(s))
	in.buckets[key] = append(in.buckets[key], h)
	return h
}

// Value returns the content behind h.
func (in *Interner[T]) Value(h arena.Handle[T]) string {
	return string(*in.arena.Get(h))
}

// Len reports how many distinct values have been interned.
func (in *Interner[T]) Len() int {
	return in.arena.Len() - 1
}
