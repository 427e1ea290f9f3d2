package kvstore

import (
	"context"
	"errors"
	"strings"
)

// ErrKeyNotFound is returned by Get when no value exists for the key.
var ErrKeyNotFound = errors.New("key not found")

// Store is the key-value contract the core depends on. Implementations must
// provide read-your-writes within a process; durability beyond that is a
// property of the chosen backend, not of this interface.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// List returns every key/value pair whose key starts with prefix.
	List(ctx context.Context, prefix string) (map[string][]byte, error)
	Close() error
}

// likeEscaper neutralizes LIKE metacharacters so a List prefix always matches
// literally, even when keys carry user-supplied segments.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLikePrefix(prefix string) string {
	return likeEscaper.Replace(prefix)
}
