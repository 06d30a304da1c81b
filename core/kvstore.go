package core

import "errors"

// ErrKeyNotFound is returned by KeyValueStore.Get when a key is absent.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is a synchronous string store. Each call is atomic on its
// own; there is no transaction spanning multiple calls, so read-then-write
// sequences from concurrent contexts are last-write-wins.
type KeyValueStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}
