package usecase

import (
	"context"
	"errors"
	"time"

	"ayunova/internal/domain/dashboard"
	"ayunova/internal/domain/profile"
	"ayunova/internal/domain/wellness"
	"ayunova/internal/session"
	"ayunova/internal/usecase/profileloader"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DashboardUsecase interface {
	View(ctx context.Context, s session.Session) dashboard.View
	Stream(ctx context.Context, s session.Session, identities <-chan session.Session, emit func(dashboard.View) error) error
}

type DashboardOptions struct {
	Loader profileloader.Options
	// SettleTimeout bounds how long View waits for the profile before
	// rendering the loading view.
	SettleTimeout time.Duration
}

type Dashboard struct {
	profiles profile.Repository
	wellness WellnessProvider
	log      *zap.Logger
	opts     DashboardOptions
}

func NewDashboardUsecase(profiles profile.Repository, wp WellnessProvider, logger *zap.Logger, opts DashboardOptions) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dashboard{profiles: profiles, wellness: wp, log: logger, opts: opts}
}

// View renders the dashboard once for s. The profile and the wellness
// snapshot load concurrently.
func (d *Dashboard) View(ctx context.Context, s session.Session) dashboard.View {
	loader := profileloader.New(d.profiles, d.log, d.opts.Loader)
	defer loader.Close()

	userID := s.UserID()
	loader.Observe(ctx, userID)

	snapCh := make(chan wellness.Snapshot, 1)
	go func() { snapCh <- d.snapshot(ctx, userID) }()

	waitCtx := ctx
	if d.opts.SettleTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, d.opts.SettleTimeout)
		defer cancel()
	}

	st, err := loader.Wait(waitCtx)
	if errors.Is(err, context.DeadlineExceeded) {
		d.log.Warn("profile did not settle in time", zap.String("user_id", userID.String()))
	}
	snap := <-snapCh

	return dashboard.Build(st.Profile, st.Loading, snap)
}

// Stream emits a view for s and again on every profile state change or
// identity received on identities, until ctx is done or emit fails.
func (d *Dashboard) Stream(ctx context.Context, s session.Session, identities <-chan session.Session, emit func(dashboard.View) error) error {
	loader := profileloader.New(d.profiles, d.log, d.opts.Loader)
	defer loader.Close()

	userID := s.UserID()
	loader.Observe(ctx, userID)
	snap := d.snapshot(ctx, userID)

	var last profileloader.State
	fresh := true
	for {
		st, changed := loader.Watch()
		if fresh || st != last {
			if err := emit(dashboard.Build(st.Profile, st.Loading, snap)); err != nil {
				return err
			}
			last, fresh = st, false
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		case next, ok := <-identities:
			if !ok {
				identities = nil
				continue
			}
			if id := next.UserID(); id != userID {
				userID = id
				loader.Observe(ctx, userID)
				snap = d.snapshot(ctx, userID)
				fresh = true
			}
		}
	}
}

func (d *Dashboard) snapshot(ctx context.Context, userID uuid.UUID) wellness.Snapshot {
	if d.wellness == nil || userID == uuid.Nil {
		return wellness.Snapshot{}
	}
	snap, err := d.wellness.Snapshot(ctx, userID)
	if err != nil {
		d.log.Error("load wellness snapshot", zap.String("user_id", userID.String()), zap.Error(err))
		return wellness.Snapshot{}
	}
	return snap
}
