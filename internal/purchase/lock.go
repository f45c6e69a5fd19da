package purchase

import (
	"sync"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

type lockKey struct {
	wallet    string
	contentID domain.ContentID
}

type refMutex struct {
	mu   sync.Mutex
	refs int
}

// keyedMutex serializes ledger merges per (wallet, content) pair
type keyedMutex struct {
	mu    sync.Mutex
	locks map[lockKey]*refMutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[lockKey]*refMutex)}
}

// Lock acquires the lock of a key and returns its release function
func (k *keyedMutex) Lock(wallet string, contentID domain.ContentID) func() {
	key := lockKey{wallet: domain.NormalizeAddress(wallet), contentID: contentID}

	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.mu.Lock()

	return func() {
		m.mu.Unlock()

		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
