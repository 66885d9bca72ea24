package profileloader

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ayunova/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeProfiles struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]profile.Profile
	errs  map[uuid.UUID]error
	gates map[uuid.UUID]chan struct{}
	calls map[uuid.UUID]int
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{
		rows:  map[uuid.UUID]profile.Profile{},
		errs:  map[uuid.UUID]error{},
		gates: map[uuid.UUID]chan struct{}{},
		calls: map[uuid.UUID]int{},
	}
}

func (f *fakeProfiles) FindByID(ctx context.Context, id uuid.UUID) (profile.Profile, error) {
	f.mu.Lock()
	f.calls[id]++
	gate := f.gates[id]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return profile.Profile{}, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[id]; err != nil {
		return profile.Profile{}, err
	}
	p, ok := f.rows[id]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfiles) block(id uuid.UUID) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[id] = ch
	return ch
}

func (f *fakeProfiles) callCount(id uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[id]
}

func strptr(s string) *string { return &s }

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestLoader_InitialState(t *testing.T) {
	l := New(newFakeProfiles(), zap.NewNop(), Options{})
	defer l.Close()

	assert.Equal(t, State{Loading: true}, l.State())
}

func TestLoader_ProfileFound(t *testing.T) {
	repo := newFakeProfiles()
	u := uuid.New()
	repo.rows[u] = profile.Profile{ID: u, FullName: strptr("Asha"), ConstitutionType: strptr("Vata")}

	l := New(repo, zap.NewNop(), Options{})
	defer l.Close()

	l.Observe(context.Background(), u)
	st, err := l.Wait(waitCtx(t))
	require.NoError(t, err)

	assert.False(t, st.Loading)
	require.NotNil(t, st.Profile)
	assert.Equal(t, profile.Profile{ID: u, FullName: strptr("Asha"), ConstitutionType: strptr("Vata")}, *st.Profile)
}

func TestLoader_ProfileMissing(t *testing.T) {
	l := New(newFakeProfiles(), zap.NewNop(), Options{})
	defer l.Close()

	l.Observe(context.Background(), uuid.New())
	st, err := l.Wait(waitCtx(t))
	require.NoError(t, err)

	assert.False(t, st.Loading)
	assert.Nil(t, st.Profile)
}

func TestLoader_TransportError(t *testing.T) {
	repo := newFakeProfiles()
	u := uuid.New()
	repo.errs[u] = errors.New("connection reset by peer")

	l := New(repo, zap.NewNop(), Options{})
	defer l.Close()

	l.Observe(context.Background(), u)
	st, err := l.Wait(waitCtx(t))
	require.NoError(t, err)

	assert.False(t, st.Loading)
	assert.Nil(t, st.Profile)
	assert.Equal(t, 1, repo.callCount(u), "no retry")
}

func TestLoader_FetchTimeout(t *testing.T) {
	repo := newFakeProfiles()
	u := uuid.New()
	repo.block(u)

	l := New(repo, zap.NewNop(), Options{FetchTimeout: 20 * time.Millisecond})
	defer l.Close()

	l.Observe(context.Background(), u)
	st, err := l.Wait(waitCtx(t))
	require.NoError(t, err)

	assert.False(t, st.Loading)
	assert.Nil(t, st.Profile)
}

// Without a user the loader never leaves the loading state. This is the
// observed behaviour of the dashboard and is kept on purpose.
func TestLoader_NoUserStaysLoading(t *testing.T) {
	repo := newFakeProfiles()
	l := New(repo, zap.NewNop(), Options{})
	defer l.Close()

	l.Observe(context.Background(), uuid.Nil)

	st, err := l.Wait(waitCtx(t))
	require.NoError(t, err)
	assert.True(t, st.Loading)
	assert.Nil(t, st.Profile)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, State{Loading: true}, l.State())
	assert.Equal(t, 0, repo.callCount(uuid.Nil))
}

func TestLoader_NoUserResolvesWhenConfigured(t *testing.T) {
	l := New(newFakeProfiles(), zap.NewNop(), Options{ResolveWithoutUser: true})
	defer l.Close()

	l.Observe(context.Background(), uuid.Nil)
	assert.Equal(t, State{}, l.State())
}

func TestLoader_SameIdentityDoesNotRefetch(t *testing.T) {
	repo := newFakeProfiles()
	u := uuid.New()
	repo.rows[u] = profile.Profile{ID: u}

	l := New(repo, zap.NewNop(), Options{})
	defer l.Close()

	l.Observe(context.Background(), u)
	_, err := l.Wait(waitCtx(t))
	require.NoError(t, err)

	l.Observe(context.Background(), u)
	l.Observe(context.Background(), u)
	_, err = l.Wait(waitCtx(t))
	require.NoError(t, err)

	assert.Equal(t, 1, repo.callCount(u))
}

func TestLoader_IdentityChangeDiscardsSupersededFetch(t *testing.T) {
	repo := newFakeProfiles()
	first, second := uuid.New(), uuid.New()
	repo.rows[first] = profile.Profile{ID: first, FullName: strptr("First")}
	repo.rows[second] = profile.Profile{ID: second, FullName: strptr("Second")}
	gate := repo.block(first)

	l := New(repo, zap.NewNop(), Options{})
	defer l.Close()

	l.Observe(context.Background(), first)
	l.Observe(context.Background(), second)

	st, err := l.Wait(waitCtx(t))
	require.NoError(t, err)
	require.NotNil(t, st.Profile)
	assert.Equal(t, second, st.Profile.ID)

	close(gate)
	time.Sleep(20 * time.Millisecond)

	st = l.State()
	require.NotNil(t, st.Profile)
	assert.Equal(t, second, st.Profile.ID, "late result for the old identity must not win")
}

func TestLoader_IdentityChangeResetsToLoading(t *testing.T) {
	repo := newFakeProfiles()
	first, second := uuid.New(), uuid.New()
	repo.rows[first] = profile.Profile{ID: first}
	repo.block(second)

	l := New(repo, zap.NewNop(), Options{})
	defer l.Close()

	l.Observe(context.Background(), first)
	st, err := l.Wait(waitCtx(t))
	require.NoError(t, err)
	require.NotNil(t, st.Profile)

	l.Observe(context.Background(), second)
	assert.Equal(t, State{Loading: true}, l.State())
}

func TestLoader_SignedOutIdentityCancelsFetch(t *testing.T) {
	repo := newFakeProfiles()
	u := uuid.New()
	repo.rows[u] = profile.Profile{ID: u}
	gate := repo.block(u)
	defer close(gate)

	l := New(repo, zap.NewNop(), Options{})

	l.Observe(context.Background(), u)
	l.Observe(context.Background(), uuid.Nil)

	st, err := l.Wait(waitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, State{Loading: true}, st)

	l.Close()
	assert.Equal(t, State{Loading: true}, l.State())
}

func TestLoader_WatchSignalsChange(t *testing.T) {
	repo := newFakeProfiles()
	u := uuid.New()
	repo.rows[u] = profile.Profile{ID: u}
	gate := repo.block(u)

	l := New(repo, zap.NewNop(), Options{})
	defer l.Close()

	l.Observe(context.Background(), u)
	st, ch := l.Watch()
	assert.True(t, st.Loading)

	close(gate)
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("watch channel not closed after settle")
	}
	assert.False(t, l.State().Loading)
}

func TestLoader_WaitHonoursContext(t *testing.T) {
	repo := newFakeProfiles()
	u := uuid.New()
	gate := repo.block(u)
	defer close(gate)

	l := New(repo, zap.NewNop(), Options{})
	defer l.Close()

	l.Observe(context.Background(), u)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	st, err := l.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, st.Loading)
}

func TestLoader_ObserveAfterCloseIsIgnored(t *testing.T) {
	repo := newFakeProfiles()
	u := uuid.New()

	l := New(repo, zap.NewNop(), Options{})
	l.Close()
	l.Observe(context.Background(), u)

	assert.Equal(t, 0, repo.callCount(u))
	assert.Equal(t, State{Loading: true}, l.State())
}
