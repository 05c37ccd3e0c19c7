package settlement

import (
	"strconv"
	"sync"
)

// locker hands out one mutex per key. Entries are dropped when the last
// holder releases them.
type locker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func newLocker() *locker {
	return &locker{locks: make(map[string]*keyLock)}
}

func (l *locker) lock(key string) func() {
	l.mu.Lock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{}
		l.locks[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	kl.mu.Lock()
	return func() {
		kl.mu.Unlock()
		l.mu.Lock()
		kl.refs--
		if kl.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

// lockOrder takes the trader lock then the stock lock. The fixed order keeps
// two settlements from waiting on each other.
func (l *locker) lockOrder(traderID uint64, stock string) func() {
	unlockTrader := l.lock("trader:" + strconv.FormatUint(traderID, 10))
	unlockStock := l.lock("stock:" + stock)
	return func() {
		unlockStock()
		unlockTrader()
	}
}

func (l *locker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
