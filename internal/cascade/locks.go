package cascade

import (
	"sync"

	"github.com/google/uuid"
)

// jobLocks serializes cascade mutations per job within this process.
// Storage-level conditional updates still guard against other processes;
// this keeps a single instance from ever racing itself.
type jobLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*jobLock
}

type jobLock struct {
	mu   sync.Mutex
	refs int
}

func newJobLocks() *jobLocks {
	return &jobLocks{locks: make(map[uuid.UUID]*jobLock)}
}

func (l *jobLocks) lock(id uuid.UUID) {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &jobLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

func (l *jobLocks) unlock(id uuid.UUID) {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if ok {
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, id)
		}
	}
	l.mu.Unlock()

	if ok {
		entry.mu.Unlock()
	}
}
