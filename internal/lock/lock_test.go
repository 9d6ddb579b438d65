package lock

import (
	"path/filepath"
	"sync"
	"testing"
)

func TestMutexMap_SerializesPerKey(t *testing.T) {
	m := NewMutexMap()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Lock("plan:x")
			counter++
			m.Unlock("plan:x")
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("expected 50 serialized increments, got %d", counter)
	}
}

func TestFileLock_Exclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locks", "watch.lock")

	first := NewFileLock(path)
	if err := first.TryLock(); err != nil {
		t.Fatalf("expected first lock to succeed, got %v", err)
	}

	second := NewFileLock(path)
	if err := second.TryLock(); err == nil {
		second.Unlock()
		t.Fatal("expected second lock to fail while held")
	}

	if err := first.Unlock(); err != nil {
		t.Fatalf("unlock failed: %v", err)
	}

	if err := second.TryLock(); err != nil {
		t.Fatalf("expected lock after release, got %v", err)
	}
	second.Unlock()
}

func TestFileLock_UnlockWithoutLock(t *testing.T) {
	fl := NewFileLock(filepath.Join(t.TempDir(), "never.lock"))
	if err := fl.Unlock(); err != nil {
		t.Errorf("unlock of unheld lock should be a no-op, got %v", err)
	}
}
