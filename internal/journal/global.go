package journal

import (
	"os"
	"sync"
	"sync/atomic"
)

var (
	shared      atomic.Pointer[Journal]
	sharedMu    sync.Mutex
	constructed atomic.Int32
)

// Shared returns the process-wide journal, creating it on first use.
// The instance echoes to stdout and is never replaced or reset.
func Shared() *Journal {
	if j := shared.Load(); j != nil {
		return j
	}

	sharedMu.Lock()
	defer sharedMu.Unlock()

	if j := shared.Load(); j != nil {
		return j
	}
	j := New(os.Stdout)
	constructed.Add(1)
	shared.Store(j)
	return j
}
