package leave

import "sync"

// employeeLocks serializes validate-then-persist sequences per
// employee. Two concurrent creates for the same employee must not both
// pass the overlap and quota checks against a stale snapshot.
type employeeLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newEmployeeLocks() *employeeLocks {
	return &employeeLocks{locks: make(map[uint]*sync.Mutex)}
}

// Lock acquires the mutex for the given employee and returns the
// release function.
func (l *employeeLocks) Lock(employeeID uint) func() {
	l.mu.Lock()
	m, ok := l.locks[employeeID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[employeeID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
