package poll_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/formlogic/pkg/poll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"
)

func alwaysActive(int) bool { return true }

// counter returns a source yielding 1, 2, 3, ... and the number of calls made.
func counter() (poll.Source[int], *atomic.Int32) {
	var calls atomic.Int32
	return func(context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}, &calls
}

// advance waits until the poller sleeps on the fake clock, then moves time forward.
func advance(t *testing.T, fc *clocktesting.FakeClock, d time.Duration) {
	t.Helper()
	require.Eventually(t, fc.HasWaiters, time.Second, time.Millisecond)
	fc.Step(d)
}

func receive[T any](t *testing.T, ch <-chan poll.Result[T]) poll.Result[T] {
	t.Helper()
	select {
	case r, ok := <-ch:
		require.True(t, ok, "channel closed early")
		return r
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a poll result")
	}
	return poll.Result[T]{}
}

func requireClosed[T any](t *testing.T, ch <-chan poll.Result[T]) {
	t.Helper()
	select {
	case r, ok := <-ch:
		require.False(t, ok, "unexpected result %+v", r)
	case <-time.After(time.Second):
		t.Fatal("channel was not closed")
	}
}

func TestStream_MaxAttemptsWithVirtualClock(t *testing.T) {
	fc := clocktesting.NewFakeClock(time.Now())
	src, calls := counter()

	ch := poll.Stream(context.Background(), src, alwaysActive,
		poll.WithMaxAttempts(3),
		poll.WithInterval(time.Second),
		poll.WithClock(fc),
	)

	for want := 1; want <= 3; want++ {
		r := receive(t, ch)
		require.NoError(t, r.Err)
		assert.Equal(t, want, r.Value)
		assert.Equal(t, want, r.Attempt)
		assert.EqualValues(t, want, calls.Load())
		advance(t, fc, time.Second)
	}

	r := receive(t, ch)
	require.Error(t, r.Err)
	assert.EqualError(t, r.Err, poll.DefaultErrorMessage)
	assert.True(t, errors.Is(r.Err, poll.ErrAttemptsExceeded))

	var exceeded *poll.ExceededError
	require.True(t, errors.As(r.Err, &exceeded))
	assert.Equal(t, 3, exceeded.Attempts)

	requireClosed(t, ch)
	assert.EqualValues(t, 3, calls.Load())
}

func TestWait_MaxAttemptsCustomMessage(t *testing.T) {
	src, calls := counter()

	_, err := poll.Wait(context.Background(), src, alwaysActive,
		poll.WithMaxAttempts(2),
		poll.WithInterval(0),
		poll.WithErrorMessage("cluster join timed out"),
	)
	assert.EqualError(t, err, "cluster join timed out")
	assert.EqualValues(t, 2, calls.Load())
}

func TestPoll_ReturnLastOnly(t *testing.T) {
	untilSix := func(v int) bool { return v != 6 }

	t.Run("last only", func(t *testing.T) {
		src, _ := counter()
		ch := poll.Poll(context.Background(), src, untilSix, poll.WithInterval(0))

		r := receive(t, ch)
		require.NoError(t, r.Err)
		assert.Equal(t, 6, r.Value)
		assert.Equal(t, 6, r.Attempt)
		requireClosed(t, ch)
	})

	t.Run("all results", func(t *testing.T) {
		src, _ := counter()
		var got []int
		for r := range poll.Poll(context.Background(), src, untilSix, poll.WithInterval(0), poll.WithReturnLastOnly(false)) {
			require.NoError(t, r.Err)
			got = append(got, r.Value)
		}
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, got)
	})

	t.Run("wait", func(t *testing.T) {
		src, _ := counter()
		v, err := poll.Wait(context.Background(), src, untilSix, poll.WithInterval(0), poll.WithReturnLastOnly(false))
		require.NoError(t, err)
		assert.Equal(t, 6, v)
	})
}

func TestPoll_DefaultInterval(t *testing.T) {
	fc := clocktesting.NewFakeClock(time.Now())
	src, calls := counter()

	ch := poll.Poll(context.Background(), src, func(v int) bool { return v < 2 }, poll.WithClock(fc))

	advance(t, fc, poll.DefaultInterval-time.Millisecond)
	assert.True(t, fc.HasWaiters(), "timer fired before the default interval elapsed")
	assert.EqualValues(t, 1, calls.Load())

	fc.Step(time.Millisecond)
	r := receive(t, ch)
	require.NoError(t, r.Err)
	assert.Equal(t, 2, r.Value)
	assert.EqualValues(t, 2, calls.Load())
}

func TestPoll_UnlimitedByDefault(t *testing.T) {
	src, calls := counter()
	v, err := poll.Wait(context.Background(), src, func(v int) bool { return v < 500 }, poll.WithInterval(0))
	require.NoError(t, err)
	assert.Equal(t, 500, v)
	assert.EqualValues(t, 500, calls.Load())
}

func TestPoll_NilPredicateStopsAfterFirstResult(t *testing.T) {
	src, calls := counter()
	v, err := poll.Wait(context.Background(), src, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.EqualValues(t, 1, calls.Load())
}

func TestPoll_CancelWhileWaiting(t *testing.T) {
	fc := clocktesting.NewFakeClock(time.Now())
	src, calls := counter()
	ctx, cancel := context.WithCancel(context.Background())

	ch := poll.Poll(ctx, src, alwaysActive, poll.WithClock(fc), poll.WithInterval(time.Minute))

	require.Eventually(t, fc.HasWaiters, time.Second, time.Millisecond)
	cancel()

	r := receive(t, ch)
	assert.ErrorIs(t, r.Err, context.Canceled)
	requireClosed(t, ch)

	fc.Step(time.Hour)
	assert.EqualValues(t, 1, calls.Load())
	assert.False(t, fc.HasWaiters())
}

func TestPoll_CancelDuringSource(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	src := func(ctx context.Context) (int, error) {
		close(started)
		<-ctx.Done()
		return 0, ctx.Err()
	}

	var outcome poll.Outcome
	ch := poll.Poll(ctx, src, alwaysActive, poll.WithHooks(poll.Hooks{
		OnFinish: func(_ context.Context, ev *poll.Event) { outcome = ev.Outcome },
	}))
	<-started
	cancel()

	r := receive(t, ch)
	assert.ErrorIs(t, r.Err, context.Canceled)
	requireClosed(t, ch)
	assert.Equal(t, poll.OutcomeCanceled, outcome)
}

func TestPoll_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src, calls := counter()

	_, err := poll.Wait(ctx, src, alwaysActive)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}

func TestPoll_SourceErrorPropagatesUnchanged(t *testing.T) {
	errBoom := errors.New("connection refused")
	var calls atomic.Int32
	src := func(context.Context) (int, error) {
		if calls.Add(1) == 2 {
			return 0, errBoom
		}
		return 1, nil
	}

	var results []poll.Result[int]
	for r := range poll.Stream(context.Background(), src, alwaysActive, poll.WithInterval(0), poll.WithMaxAttempts(10)) {
		results = append(results, r)
	}

	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].Value)
	assert.Same(t, errBoom, results[1].Err)
	assert.EqualValues(t, 2, calls.Load())
}

func TestPoll_MessageResolvedAtFailure(t *testing.T) {
	var resolved atomic.Int32
	locale := "en"
	var mu sync.Mutex
	message := func() string {
		resolved.Add(1)
		mu.Lock()
		defer mu.Unlock()
		if locale == "pt" {
			return "Falha ao buscar dados"
		}
		return "Failed to fetch data"
	}

	fc := clocktesting.NewFakeClock(time.Now())
	src, _ := counter()
	ch := poll.Poll(context.Background(), src, alwaysActive,
		poll.WithClock(fc),
		poll.WithInterval(time.Second),
		poll.WithMaxAttempts(1),
		poll.WithMessageFunc(message),
	)

	require.Eventually(t, fc.HasWaiters, time.Second, time.Millisecond)
	assert.Zero(t, resolved.Load())

	mu.Lock()
	locale = "pt"
	mu.Unlock()
	fc.Step(time.Second)

	r := receive(t, ch)
	assert.EqualError(t, r.Err, "Falha ao buscar dados")
	assert.EqualValues(t, 1, resolved.Load())
}

func TestPoll_EmptyMessageFallsBack(t *testing.T) {
	src, _ := counter()
	_, err := poll.Wait(context.Background(), src, alwaysActive,
		poll.WithInterval(0), poll.WithMaxAttempts(1), poll.WithErrorMessage(""))
	assert.EqualError(t, err, poll.DefaultErrorMessage)
}

func TestPoll_Hooks(t *testing.T) {
	var (
		mu       sync.Mutex
		attempts []int
		active   []bool
		finished []*poll.Event
	)
	hooks := poll.Hooks{
		OnAttempt: func(_ context.Context, ev *poll.Event) {
			mu.Lock()
			defer mu.Unlock()
			attempts = append(attempts, ev.Attempt)
		},
		OnResult: func(_ context.Context, ev *poll.Event) {
			mu.Lock()
			defer mu.Unlock()
			active = append(active, ev.Active)
		},
		OnFinish: func(_ context.Context, ev *poll.Event) {
			mu.Lock()
			defer mu.Unlock()
			finished = append(finished, ev)
		},
	}

	src, _ := counter()
	_, err := poll.Wait(context.Background(), src, func(v int) bool { return v < 3 },
		poll.WithInterval(0), poll.WithName("bootstrap"), poll.WithHooks(hooks), poll.WithHooks(poll.Hooks{}))
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2, 3}, attempts)
	assert.Equal(t, []bool{true, true, false}, active)
	require.Len(t, finished, 1)
	assert.Equal(t, "bootstrap", finished[0].Name)
	assert.NotEmpty(t, finished[0].ID)
	assert.Equal(t, 3, finished[0].Attempt)
	assert.Equal(t, poll.OutcomeDone, finished[0].Outcome)
}

func TestPoll_IndependentInvocations(t *testing.T) {
	var wg sync.WaitGroup
	values := make([]int, 4)
	for i := range values {
		wg.Add(1)
		go func() {
			defer wg.Done()
			src, _ := counter()
			v, err := poll.Wait(context.Background(), src, func(v int) bool { return v < i+2 }, poll.WithInterval(0))
			assert.NoError(t, err)
			values[i] = v
		}()
	}
	wg.Wait()
	assert.Equal(t, []int{2, 3, 4, 5}, values)
}
