package profileloader

import (
	"context"
	"errors"
	"sync"
	"time"

	"ayunova/internal/domain/profile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is what the dashboard renders from. Once Loading is false, Profile
// is either the fetched row or nil.
type State struct {
	Profile *profile.Profile `json:"profile"`
	Loading bool             `json:"loading"`
}

type Options struct {
	// FetchTimeout bounds a single profile request. Zero means no bound
	// beyond the caller's context.
	FetchTimeout time.Duration

	// ResolveWithoutUser settles the loader as {nil, false} when no user is
	// observed. When false the loader stays loading until a user appears.
	ResolveWithoutUser bool
}

// Loader tracks the profile of the currently observed identity. Each
// identity change cancels the request for the previous identity and drops
// its result, so the state always belongs to the last observed user.
type Loader struct {
	repo profile.Repository
	log  *zap.Logger
	opts Options

	mu       sync.Mutex
	state    State
	current  uuid.UUID
	mounted  bool
	gen      uint64
	inFlight bool
	cancel   context.CancelFunc
	changed  chan struct{}
	closed   bool

	wg sync.WaitGroup
}

func New(repo profile.Repository, logger *zap.Logger, opts Options) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		repo:    repo,
		log:     logger,
		opts:    opts,
		state:   State{Loading: true},
		changed: make(chan struct{}),
	}
}

// Observe reports the current identity. Call it on mount and whenever the
// session identity may have changed; repeated calls with the same identity
// are no-ops.
func (l *Loader) Observe(ctx context.Context, userID uuid.UUID) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}

	tr := Plan(l.current, userID, l.mounted)
	l.mounted = true
	l.current = userID

	if tr.CancelPrevious {
		l.cancelLocked()
	}
	if tr.Reset {
		l.setLocked(State{Loading: true})
	}
	if !tr.StartNew {
		if userID == uuid.Nil && l.opts.ResolveWithoutUser && l.state.Loading {
			l.setLocked(State{})
		}
		return
	}

	var fctx context.Context
	var cancel context.CancelFunc
	if l.opts.FetchTimeout > 0 {
		fctx, cancel = context.WithTimeout(ctx, l.opts.FetchTimeout)
	} else {
		fctx, cancel = context.WithCancel(ctx)
	}

	l.gen++
	l.cancel = cancel
	l.inFlight = true
	l.wg.Add(1)
	go l.fetch(fctx, cancel, l.gen, userID)
}

func (l *Loader) fetch(ctx context.Context, cancel context.CancelFunc, gen uint64, userID uuid.UUID) {
	defer l.wg.Done()
	defer cancel()

	p, err := l.repo.FindByID(ctx, userID)

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen || l.closed {
		l.log.Debug("profile fetch superseded", zap.String("user_id", userID.String()))
		return
	}
	l.inFlight = false
	l.cancel = nil

	switch {
	case err == nil:
		l.setLocked(State{Profile: &p})
	case errors.Is(err, profile.ErrNotFound):
		l.log.Warn("profile not found", zap.String("user_id", userID.String()))
		l.setLocked(State{})
	case errors.Is(err, context.DeadlineExceeded):
		l.log.Error("profile fetch timed out", zap.String("user_id", userID.String()), zap.Error(err))
		l.setLocked(State{})
	default:
		l.log.Error("profile fetch failed", zap.String("user_id", userID.String()), zap.Error(err))
		l.setLocked(State{})
	}
}

// State returns the current state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Watch returns the current state and a channel that is closed on the next
// state change.
func (l *Loader) Watch() (State, <-chan struct{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state, l.changed
}

// Wait blocks until the loader settles. It returns straight away when no
// request is in flight, which includes the no-user case where Loading stays
// true.
func (l *Loader) Wait(ctx context.Context) (State, error) {
	for {
		l.mu.Lock()
		st := l.state
		idle := !l.inFlight
		ch := l.changed
		l.mu.Unlock()

		if !st.Loading || idle {
			return st, nil
		}

		select {
		case <-ctx.Done():
			return st, ctx.Err()
		case <-ch:
		}
	}
}

// Close cancels any request in flight and waits for it to return.
func (l *Loader) Close() {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.closed = true
	l.cancelLocked()
	l.mu.Unlock()

	l.wg.Wait()
}

func (l *Loader) cancelLocked() {
	// Bumping the generation makes the in-flight result stale even if the
	// repository ignores cancellation.
	l.gen++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.inFlight = false
}

func (l *Loader) setLocked(s State) {
	l.state = s
	close(l.changed)
	l.changed = make(chan struct{})
}
