package state

import (
	"sync"
	"testing"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := newKeyedMutex()

	var (
		active  int
		maxSeen int
		mu      sync.Mutex
		wg      sync.WaitGroup
	)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.lock(7)
			defer km.unlock(7)

			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Fatalf("expected at most one holder per key, saw %d", maxSeen)
	}
	if len(km.locks) != 0 {
		t.Fatalf("expected lock table to drain, %d entries left", len(km.locks))
	}
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := newKeyedMutex()
	km.lock(1)

	done := make(chan struct{})
	go func() {
		km.lock(2)
		km.unlock(2)
		close(done)
	}()

	// A different key must not be blocked by key 1.
	<-done
	km.unlock(1)
}
