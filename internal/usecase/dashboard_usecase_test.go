package usecase

import (
	"context"
	"testing"
	"time"

	"ayunova/internal/domain/dashboard"
	"ayunova/internal/domain/profile"
	"ayunova/internal/domain/wellness"
	"ayunova/internal/session"
	"ayunova/internal/usecase/profileloader"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedIn(id uuid.UUID) session.Session {
	return session.New(session.User{ID: id}, func(context.Context) error { return nil })
}

func TestDashboard_ViewAnonymousIsLoading(t *testing.T) {
	d := NewDashboardUsecase(&mockProfileRepo{}, stubWellness{}, nil, DashboardOptions{SettleTimeout: time.Second})

	v := d.View(context.Background(), session.Anonymous())
	assert.True(t, v.Loading)
	assert.Equal(t, dashboard.LoadingPlaceholder, v.Placeholder)
	assert.Nil(t, v.Header)
}

func TestDashboard_ViewAnonymousResolved(t *testing.T) {
	d := NewDashboardUsecase(&mockProfileRepo{}, stubWellness{}, nil, DashboardOptions{
		Loader: profileloader.Options{ResolveWithoutUser: true},
	})

	v := d.View(context.Background(), session.Anonymous())
	assert.False(t, v.Loading)
	require.NotNil(t, v.Header)
	assert.Equal(t, dashboard.DefaultDisplayName, v.Header.DisplayName)
}

func TestDashboard_ViewSignedIn(t *testing.T) {
	id := uuid.New()
	dosha := "pitta"
	repo := &mockProfileRepo{rows: map[uuid.UUID]profile.Profile{id: {ID: id, FullName: strptr("Asha Rao")}}}
	wp := stubWellness{snap: wellness.Snapshot{
		DoshaAssessment: &wellness.DoshaAssessment{PrimaryDosha: &dosha},
		WellnessPlans:   []wellness.WellnessPlan{{Title: "Plan"}},
	}}
	d := NewDashboardUsecase(repo, wp, nil, DashboardOptions{SettleTimeout: time.Second})

	v := d.View(context.Background(), signedIn(id))
	require.False(t, v.Loading)
	require.NotNil(t, v.Header)
	assert.Equal(t, "Asha Rao", v.Header.DisplayName)
	require.NotNil(t, v.Stats)
	assert.Equal(t, 1, v.Stats.Assessments)
	assert.Equal(t, 1, v.Stats.Plans)
	require.Len(t, v.Cards, len(dashboard.Cards))
	assert.True(t, v.Cards[0].Completed)
	assert.Equal(t, "View Plans", v.Cards[1].Action)
}

func TestDashboard_ViewWellnessFailureDegrades(t *testing.T) {
	id := uuid.New()
	repo := &mockProfileRepo{rows: map[uuid.UUID]profile.Profile{id: {ID: id}}}
	d := NewDashboardUsecase(repo, stubWellness{err: errBoom}, nil, DashboardOptions{SettleTimeout: time.Second})

	v := d.View(context.Background(), signedIn(id))
	require.False(t, v.Loading)
	require.NotNil(t, v.Stats)
	assert.Zero(t, v.Stats.Plans)
	assert.False(t, v.ShowRecentActivity())
}

func TestDashboard_ViewMissingProfileSettles(t *testing.T) {
	d := NewDashboardUsecase(&mockProfileRepo{}, stubWellness{}, nil, DashboardOptions{SettleTimeout: time.Second})

	v := d.View(context.Background(), signedIn(uuid.New()))
	assert.False(t, v.Loading)
	require.NotNil(t, v.Header)
	assert.Equal(t, dashboard.DefaultDisplayName, v.Header.DisplayName)
}

func TestDashboard_StreamFollowsIdentity(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	repo := &mockProfileRepo{rows: map[uuid.UUID]profile.Profile{
		a: {ID: a, FullName: strptr("Asha")},
		b: {ID: b, FullName: strptr("Bela")},
	}}
	d := NewDashboardUsecase(repo, stubWellness{}, nil, DashboardOptions{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	identities := make(chan session.Session, 1)
	views := make(chan dashboard.View, 16)
	done := make(chan error, 1)
	go func() {
		done <- d.Stream(ctx, signedIn(a), identities, func(v dashboard.View) error {
			views <- v
			return nil
		})
	}()

	waitFor := func(name string) {
		t.Helper()
		deadline := time.After(2 * time.Second)
		for {
			select {
			case v := <-views:
				if !v.Loading && v.Header != nil && v.Header.DisplayName == name {
					return
				}
			case <-deadline:
				t.Fatalf("no view for %s", name)
			}
		}
	}

	waitFor("Asha")
	identities <- signedIn(b)
	waitFor("Bela")

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestDashboard_StreamStopsOnEmitError(t *testing.T) {
	d := NewDashboardUsecase(&mockProfileRepo{}, stubWellness{}, nil, DashboardOptions{})

	err := d.Stream(context.Background(), session.Anonymous(), nil, func(dashboard.View) error {
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)
}
