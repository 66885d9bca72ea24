package usecase

import (
	"context"
	"fmt"

	"ayunova/internal/domain/wellness"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const defaultInsightLimit = 20

type WellnessProvider interface {
	Snapshot(ctx context.Context, userID uuid.UUID) (wellness.Snapshot, error)
}

// Wellness loads the four wellness collections of a user concurrently.
type Wellness struct {
	repo         wellness.Repository
	insightLimit int
}

func NewWellness(repo wellness.Repository) *Wellness {
	return &Wellness{repo: repo, insightLimit: defaultInsightLimit}
}

// Snapshot returns an empty snapshot for uuid.Nil. Any failed query fails
// the whole snapshot.
func (w *Wellness) Snapshot(ctx context.Context, userID uuid.UUID) (wellness.Snapshot, error) {
	if userID == uuid.Nil {
		return wellness.Snapshot{}, nil
	}

	var snap wellness.Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a, err := w.repo.LatestDoshaAssessment(gctx, userID)
		if err != nil {
			return fmt.Errorf("dosha assessment: %w", err)
		}
		snap.DoshaAssessment = a
		return nil
	})
	g.Go(func() error {
		plans, err := w.repo.ListWellnessPlans(gctx, userID)
		if err != nil {
			return fmt.Errorf("wellness plans: %w", err)
		}
		snap.WellnessPlans = plans
		return nil
	})
	g.Go(func() error {
		logs, err := w.repo.ListLifestyleLogs(gctx, userID)
		if err != nil {
			return fmt.Errorf("lifestyle logs: %w", err)
		}
		snap.LifestyleLogs = logs
		return nil
	})
	g.Go(func() error {
		insights, err := w.repo.ListInsights(gctx, userID, w.insightLimit)
		if err != nil {
			return fmt.Errorf("insights: %w", err)
		}
		snap.Insights = insights
		return nil
	})

	if err := g.Wait(); err != nil {
		return wellness.Snapshot{}, err
	}
	return snap, nil
}
