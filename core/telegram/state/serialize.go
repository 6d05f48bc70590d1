package state

import (
	"sync"

	tele "gopkg.in/telebot.v4"
)

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// keyedMutex serializes work per key while keeping unrelated keys
// concurrent. Entries are removed once the last holder releases.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*lockEntry
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[int64]*lockEntry)}
}

func (k *keyedMutex) lock(key int64) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &lockEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
}

func (k *keyedMutex) unlock(key int64) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if ok {
		entry.refs--
		if entry.refs <= 0 {
			delete(k.locks, key)
		}
	}
	k.mu.Unlock()

	if ok {
		entry.mu.Unlock()
	}
}

// PerUser returns a middleware that serializes update handling for each
// sender. Two updates from the same user never race a state read against
// a concurrent transition; updates from different users stay parallel.
func PerUser() tele.MiddlewareFunc {
	km := newKeyedMutex()
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil {
				return next(c)
			}
			km.lock(user.ID)
			defer km.unlock(user.ID)
			return next(c)
		}
	}
}
