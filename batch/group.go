package batch

import (
	"context"
	"sync"

	"github.com/mizanlabs/athan/store"
)

// runBatch issues one batch of schedule calls concurrently and collects the
// outcome. Workers are bounded by the batch size, which is what keeps the
// burst into the store's scheduler capped.
func (s *Scheduler) runBatch(ctx context.Context, notifications []*store.Notification) (int, []ItemError) {
	work := make(chan *store.Notification)
	results := make(chan ItemError, len(notifications))

	var scheduled int
	var mu sync.Mutex
	var wg sync.WaitGroup

	workers := s.size
	if len(notifications) < workers {
		workers = len(notifications)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range work {
				if err := s.store.Schedule(ctx, n); err != nil {
					results <- ItemError{ID: n.ID, Err: err}
					continue
				}
				mu.Lock()
				scheduled++
				mu.Unlock()
			}
		}()
	}

	for _, n := range notifications {
		work <- n
	}
	close(work)
	wg.Wait()
	close(results)

	var errs []ItemError
	for e := range results {
		errs = append(errs, e)
	}
	return scheduled, errs
}
