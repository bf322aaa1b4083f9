package engine

import (
	"container/heap"
	"context"
	"sync"

	"github.com/AbyssPortal/Teros/pkg/rules"
	"github.com/hashicorp/go-multierror"
	"github.com/seekerror/logw"
)

// thinkState is the termination state shared by a worker pool. It is guarded
// by the engine mutex.
type thinkState struct {
	target  uint64 // expansions to start; 0 means unbounded
	started uint64 // expansions popped so far
	done    uint64 // expansions installed so far
	stop    bool   // set once by the signal watcher
}

// MultiThreadThink expands the tree count times across the given number of
// workers and returns the number of expansions performed. A count of zero sets
// no bound. It stops early if the frontier runs dry or the context is
// cancelled.
func (e *Engine) MultiThreadThink(ctx context.Context, workers int, count uint64) (uint64, error) {
	return e.think(ctx, workers, &thinkState{target: count}, nil)
}

// MultiThreadThinkUntil expands the tree across the given number of workers
// until the one-shot signal fires, and returns the number of expansions
// performed. Cancellation is cooperative: a worker mid-expansion always
// completes it.
func (e *Engine) MultiThreadThinkUntil(ctx context.Context, workers int, signal <-chan struct{}) (uint64, error) {
	return e.think(ctx, workers, &thinkState{}, signal)
}

func (e *Engine) think(ctx context.Context, workers int, st *thinkState, signal <-chan struct{}) (uint64, error) {
	if workers < 1 {
		workers = 1
	}

	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-signal:
		case <-ctx.Done():
		case <-finished:
			return
		}
		e.mu.Lock()
		st.stop = true
		e.mu.Unlock()
	}()

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := e.thinkWorker(st); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	var ret error
	for err := range errs {
		ret = multierror.Append(ret, err)
	}

	e.mu.Lock()
	count := st.done
	st.stop = true
	e.mu.Unlock()

	logw.Debugf(ctx, "Think finished: %v expansions across %v workers", count, workers)
	return count, ret
}

// thinkWorker is one expansion loop. Each iteration pops the top frontier
// entry and clones the target position under the lock, generates and scores
// the children outside the lock, then re-descends and installs under the
// lock. Expansions are atomic to other workers: they see either no children
// or the full set.
func (e *Engine) thinkWorker(st *thinkState) error {
	for {
		e.mu.Lock()
		if st.stop || (st.target > 0 && st.started >= st.target) {
			e.mu.Unlock()
			return nil
		}
		if e.frontier.Len() == 0 {
			e.mu.Unlock()
			return nil
		}
		en := heap.Pop(&e.frontier).(*entry)
		st.started++

		location := append(append([]rules.Move(nil), en.location...), en.move)
		node, err := e.root.descend(location)
		if err != nil {
			e.mu.Unlock()
			return err
		}
		board := node.board.Clone()
		weights := e.interest
		depthCost := e.static.DepthCost
		e.mu.Unlock()

		// Move generation and interest scoring run fully parallel. The
		// children are a pure function of the parent position, so installing
		// them is an idempotent overwrite.
		exps := expandBoard(board, weights)

		e.mu.Lock()
		node, err = e.root.descend(location)
		if err != nil {
			e.mu.Unlock()
			return err
		}
		e.installLocked(node, location, exps, depthCost)
		st.done++
		stop := st.stop
		e.mu.Unlock()

		if stop {
			return nil
		}
	}
}
