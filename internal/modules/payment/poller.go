package payment

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"juanride/internal/domain"
)

// WatchState is the poller-side view of a watched intent.
type WatchState string

const (
	WatchPending  WatchState = "pending"
	WatchChecking WatchState = "checking"
	WatchPaid     WatchState = "paid"
	WatchFailed   WatchState = "failed"
)

var ErrNotWatched = errors.New("payment intent is not being watched")

// settledRetention is how long a settled watch stays queryable before it is
// dropped from the map. Without eviction a long-running API would keep one
// entry per intent it ever watched.
const settledRetention = time.Minute

// IntentFetcher retrieves the live gateway status for an intent.
type IntentFetcher interface {
	FetchIntentStatus(ctx context.Context, intentID string) (domain.IntentStatus, string, error)
}

// Poller watches payment intents until they settle. Each watch polls on a
// fixed interval and is force-failed at the deadline; both timers stop as
// soon as the intent reaches a terminal state or the watch is torn down.
type Poller struct {
	fetcher  IntentFetcher
	interval time.Duration
	deadline time.Duration

	onPaid   func(ctx context.Context, intentID, method string)
	onFailed func(ctx context.Context, intentID string)

	retention time.Duration

	mu      sync.Mutex
	watches map[string]*watch
}

type watch struct {
	intentID string
	state    WatchState
	settled  bool
	cancel   context.CancelFunc
}

func NewPoller(
	fetcher IntentFetcher,
	interval, deadline time.Duration,
	onPaid func(ctx context.Context, intentID, method string),
	onFailed func(ctx context.Context, intentID string),
) *Poller {
	return &Poller{
		fetcher:   fetcher,
		interval:  interval,
		deadline:  deadline,
		onPaid:    onPaid,
		onFailed:  onFailed,
		retention: settledRetention,
		watches:   make(map[string]*watch),
	}
}

// Watch starts polling the intent. Watching an already watched intent is a
// no-op.
func (p *Poller) Watch(ctx context.Context, intentID string) {
	p.mu.Lock()
	if _, exists := p.watches[intentID]; exists {
		p.mu.Unlock()
		return
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w := &watch{intentID: intentID, state: WatchPending, cancel: cancel}
	p.watches[intentID] = w
	p.mu.Unlock()

	go p.run(watchCtx, w)
}

func (p *Poller) run(ctx context.Context, w *watch) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	deadline := time.NewTimer(p.deadline)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			p.remove(w.intentID)
			return
		case <-deadline.C:
			p.settle(ctx, w, WatchFailed, "")
			return
		case <-ticker.C:
			if done, _ := p.check(ctx, w); done {
				return
			}
		}
	}
}

// CheckNow runs one fetch-and-branch pass outside the ticker. It shares the
// polling path, so a manual check can settle the watch the same way a tick
// does. Returns the state after the check.
func (p *Poller) CheckNow(ctx context.Context, intentID string) (WatchState, error) {
	p.mu.Lock()
	w, exists := p.watches[intentID]
	p.mu.Unlock()
	if !exists {
		return "", ErrNotWatched
	}

	if _, err := p.check(ctx, w); err != nil {
		return "", err
	}
	return p.State(intentID)
}

// State reports the current watch state.
func (p *Poller) State(intentID string) (WatchState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	w, exists := p.watches[intentID]
	if !exists {
		return "", ErrNotWatched
	}
	return w.state, nil
}

// Stop tears down every active watch without firing callbacks.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, w := range p.watches {
		w.settled = true
		w.cancel()
		delete(p.watches, id)
	}
}

// check fetches the gateway status and branches on it. The watch sits in
// checking for the duration of the fetch and returns to pending unless the
// intent settled.
func (p *Poller) check(ctx context.Context, w *watch) (done bool, err error) {
	p.mu.Lock()
	if w.settled {
		p.mu.Unlock()
		return true, nil
	}
	if w.state == WatchChecking {
		p.mu.Unlock()
		return false, nil
	}
	w.state = WatchChecking
	p.mu.Unlock()

	status, method, err := p.fetcher.FetchIntentStatus(ctx, w.intentID)
	if err != nil {
		log.Printf("level=warn msg=intent status fetch failed intent_id=%s err=%v", w.intentID, err)
		p.mu.Lock()
		if !w.settled {
			w.state = WatchPending
		}
		p.mu.Unlock()
		return false, err
	}

	switch status {
	case domain.IntentSucceeded:
		p.settle(ctx, w, WatchPaid, method)
		return true, nil
	case domain.IntentFailed, domain.IntentCancelled:
		p.settle(ctx, w, WatchFailed, "")
		return true, nil
	default:
		p.mu.Lock()
		if !w.settled {
			w.state = WatchPending
		}
		p.mu.Unlock()
		return false, nil
	}
}

// settle moves the watch to a terminal state and fires its callback exactly
// once. The settled flag guards against a tick and a manual check racing.
func (p *Poller) settle(ctx context.Context, w *watch, state WatchState, method string) {
	p.mu.Lock()
	if w.settled {
		p.mu.Unlock()
		return
	}
	w.settled = true
	w.state = state
	p.mu.Unlock()

	switch state {
	case WatchPaid:
		if p.onPaid != nil {
			p.onPaid(ctx, w.intentID, method)
		}
	case WatchFailed:
		if p.onFailed != nil {
			p.onFailed(ctx, w.intentID)
		}
	}

	// cancel last so the callback context is still live
	w.cancel()

	// The terminal state stays queryable for a while, then the entry goes.
	time.AfterFunc(p.retention, func() { p.evict(w.intentID) })
}

func (p *Poller) remove(intentID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	w, exists := p.watches[intentID]
	if exists && w.settled {
		// the retention timer armed in settle evicts this one
		return
	}
	delete(p.watches, intentID)
}

func (p *Poller) evict(intentID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.watches, intentID)
}
