package testutil

import (
	"sync"
	"sync/atomic"

	dErrors "github.com/betafcc/cpf/pkg/domain-errors"
)

// ConcurrentResult tracks outcomes of concurrent test operations.
type ConcurrentResult struct {
	Successes int32
	Errors    int32
	// ByCode counts failures per domain error code. Plain errors land under
	// CodeInternal.
	ByCode map[dErrors.Code]int32
}

// Total returns the total number of operations executed.
func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.Errors
}

// RunConcurrent executes fn in parallel goroutines and collects results.
// Failures are grouped by domain error code.
// This helper replaces the common pattern of WaitGroup + atomic counters in tests.
func RunConcurrent(goroutines int, fn func(idx int) error) *ConcurrentResult {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var successes, errs atomic.Int32
	byCode := make(map[dErrors.Code]int32)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			err := fn(idx)
			if err == nil {
				successes.Add(1)
				return
			}
			errs.Add(1)
			mu.Lock()
			byCode[dErrors.CodeOf(err)]++
			mu.Unlock()
		}(i)
	}

	wg.Wait()

	return &ConcurrentResult{
		Successes: successes.Load(),
		Errors:    errs.Load(),
		ByCode:    byCode,
	}
}
