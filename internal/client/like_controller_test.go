package client_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mihretgbr/applaud/internal/client"
	usecasecontract "github.com/mihretgbr/applaud/internal/usecase/contract"
)

// stubToggler returns a fixed result, optionally blocking until released to
// simulate an in-flight request.
type stubToggler struct {
	mu      sync.Mutex
	result  usecasecontract.ToggleResult
	calls   int
	started chan struct{}
	release chan struct{}
}

func (s *stubToggler) Toggle(_ context.Context, itemID, sessionID, profileID string) usecasecontract.ToggleResult {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	return s.result
}

func (s *stubToggler) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestLikeController_OptimisticLike(t *testing.T) {
	toggler := &stubToggler{result: usecasecontract.ToggleResult{Success: true, IsLiked: true, NewCount: 6}}
	ctrl := client.NewLikeController(toggler, "sess-1", "")
	ctrl.Seed("post-1", false, 5)

	assert.True(t, ctrl.Toggle(context.Background(), "post-1"))

	liked, count := ctrl.Displayed("post-1")
	assert.True(t, liked)
	assert.Equal(t, int64(6), count)
}

func TestLikeController_AuthoritativeResultOverwritesGuess(t *testing.T) {
	// Concurrent likes landed server-side, so the authoritative count is
	// well past the optimistic local guess of 6.
	toggler := &stubToggler{result: usecasecontract.ToggleResult{Success: true, IsLiked: true, NewCount: 9}}
	ctrl := client.NewLikeController(toggler, "sess-1", "")
	ctrl.Seed("post-1", false, 5)

	ctrl.Toggle(context.Background(), "post-1")

	liked, count := ctrl.Displayed("post-1")
	assert.True(t, liked)
	assert.Equal(t, int64(9), count)
}

func TestLikeController_RevertsOnFailure(t *testing.T) {
	toggler := &stubToggler{result: usecasecontract.ToggleResult{Success: false, Error: "like toggle failed"}}
	ctrl := client.NewLikeController(toggler, "sess-1", "")
	ctrl.Seed("post-1", true, 8)

	assert.True(t, ctrl.Toggle(context.Background(), "post-1"))

	liked, count := ctrl.Displayed("post-1")
	assert.True(t, liked)
	assert.Equal(t, int64(8), count)
}

func TestLikeController_IgnoresToggleWhilePending(t *testing.T) {
	toggler := &stubToggler{
		result:  usecasecontract.ToggleResult{Success: true, IsLiked: true, NewCount: 6},
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	ctrl := client.NewLikeController(toggler, "sess-1", "")
	ctrl.Seed("post-1", false, 5)

	done := make(chan bool)
	go func() {
		done <- ctrl.Toggle(context.Background(), "post-1")
	}()
	<-toggler.started

	// Second click while the first request is in flight.
	assert.False(t, ctrl.Toggle(context.Background(), "post-1"))

	close(toggler.release)
	select {
	case accepted := <-done:
		assert.True(t, accepted)
	case <-time.After(time.Second):
		t.Fatal("first toggle never completed")
	}

	assert.Equal(t, 1, toggler.callCount())
	liked, count := ctrl.Displayed("post-1")
	assert.True(t, liked)
	assert.Equal(t, int64(6), count)
}

func TestLikeController_ToggleAcceptedAgainAfterCompletion(t *testing.T) {
	toggler := &stubToggler{result: usecasecontract.ToggleResult{Success: true, IsLiked: true, NewCount: 6}}
	ctrl := client.NewLikeController(toggler, "sess-1", "")
	ctrl.Seed("post-1", false, 5)

	assert.True(t, ctrl.Toggle(context.Background(), "post-1"))
	toggler.result = usecasecontract.ToggleResult{Success: true, IsLiked: false, NewCount: 5}
	assert.True(t, ctrl.Toggle(context.Background(), "post-1"))

	liked, count := ctrl.Displayed("post-1")
	assert.False(t, liked)
	assert.Equal(t, int64(5), count)
	assert.Equal(t, 2, toggler.callCount())
}

func TestLikeController_UnseededItemStartsEmpty(t *testing.T) {
	toggler := &stubToggler{result: usecasecontract.ToggleResult{Success: true, IsLiked: true, NewCount: 1}}
	ctrl := client.NewLikeController(toggler, "sess-1", "")

	liked, count := ctrl.Displayed("post-9")
	assert.False(t, liked)
	assert.Equal(t, int64(0), count)

	assert.True(t, ctrl.Toggle(context.Background(), "post-9"))
	liked, count = ctrl.Displayed("post-9")
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)
}
