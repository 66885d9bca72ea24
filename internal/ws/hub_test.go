package ws

import (
	"context"
	"testing"
	"time"

	"ayunova/internal/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(nil)
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return h
}

func TestHub_SignedOutRebindsUserAsAnonymous(t *testing.T) {
	h := runHub(t)
	a, b := uuid.New(), uuid.New()
	ca, cb := NewClient(h, nil, nil), NewClient(h, nil, nil)
	ca.identities = make(chan session.Session, 1)
	cb.identities = make(chan session.Session, 1)
	h.Register(ca, a)
	h.Register(cb, b)
	require.Eventually(t, func() bool { return h.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	h.SignedOut(a)

	select {
	case s := <-ca.identities:
		assert.False(t, s.Authenticated())
	case <-time.After(2 * time.Second):
		t.Fatal("signed-out connection was not told")
	}
	require.Eventually(t, func() bool { return h.UserClientCount(uuid.Nil) == 1 }, time.Second, 5*time.Millisecond)
	assert.Zero(t, h.UserClientCount(a))
	assert.Equal(t, 1, h.UserClientCount(b))
	assert.Empty(t, cb.identities)
	assert.Empty(t, ca.send, "no toast is pushed to live connections")
}

func TestHub_SignedOutIgnoresAnonymous(t *testing.T) {
	h := runHub(t)
	c := NewClient(h, nil, nil)
	c.identities = make(chan session.Session, 1)
	h.Register(c, uuid.Nil)
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	h.SignedOut(uuid.Nil)
	assert.Never(t, func() bool { return len(c.identities) > 0 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestHub_RegisterMovesClient(t *testing.T) {
	h := runHub(t)
	a, b := uuid.New(), uuid.New()
	c := NewClient(h, nil, nil)

	h.Register(c, a)
	require.Eventually(t, func() bool { return h.UserClientCount(a) == 1 }, time.Second, 5*time.Millisecond)

	h.Register(c, b)
	require.Eventually(t, func() bool { return h.UserClientCount(b) == 1 }, time.Second, 5*time.Millisecond)
	assert.Zero(t, h.UserClientCount(a))
	assert.Equal(t, 1, h.ClientCount())
}

func TestHub_UnregisterClosesClient(t *testing.T) {
	h := runHub(t)
	c := NewClient(h, nil, nil)
	h.Register(c, uuid.Nil)
	h.Unregister(c)

	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("client not closed")
	}
	assert.Zero(t, h.ClientCount())
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(nil)
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	c := NewClient(h, nil, nil)
	h.Register(c, uuid.New())
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	<-done
	<-c.Done()

	// Calls after shutdown return instead of blocking.
	h.Register(NewClient(h, nil, nil), uuid.New())
	h.Unregister(c)
}

func TestClient_SendWaitHonoursContext(t *testing.T) {
	c := NewClient(nil, nil, nil)
	for i := 0; i < sendBuffer; i++ {
		require.NoError(t, c.SendWait(context.Background(), []byte("x")))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.SendWait(ctx, []byte("x")), context.DeadlineExceeded)
}

func TestHub_SignedOutAfterShutdownReturns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(nil)
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	for i := 0; i < 2000; i++ {
		h.SignedOut(uuid.New())
	}
}
