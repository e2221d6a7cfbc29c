package accounts

import (
	"strconv"
	"sync/atomic"

	"github.com/mcoot/quizgame-accounts/internal/model"
)

// idAllocator hands out decimal account ids in strictly increasing order
type idAllocator struct {
	last atomic.Int64
}

// newIDAllocator returns an allocator whose first id is next
func newIDAllocator(next int64) *idAllocator {
	a := &idAllocator{}
	a.last.Store(next - 1)
	return a
}

// Next returns a fresh id
func (a *idAllocator) Next() model.AccountID {
	return model.AccountID(strconv.FormatInt(a.last.Add(1), 10))
}

// Observe makes sure a restored id is never handed out again.
// Non-numeric ids are ignored.
func (a *idAllocator) Observe(id model.AccountID) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return
	}
	for {
		cur := a.last.Load()
		if n <= cur || a.last.CompareAndSwap(cur, n) {
			return
		}
	}
}
