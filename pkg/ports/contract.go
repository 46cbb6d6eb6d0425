package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/formlogic/pkg/poll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStatusStoreContract runs a suite of tests to verify that a StatusStore
// implementation adheres to the interface contract.
func RunStatusStoreContract(t *testing.T, store StatusStore) {
	ctx := context.Background()
	id := "contract-" + time.Now().Format("20060102150405")

	t.Run("Load Unknown", func(t *testing.T) {
		report, err := store.Load(ctx, "unknown-"+id)
		require.NoError(t, err)
		assert.Equal(t, poll.StatusNone, report.Status)
	})

	t.Run("Publish and Load", func(t *testing.T) {
		want := poll.StatusReport{Status: poll.StatusRunning, Message: "copying", Progress: 0.25}
		require.NoError(t, store.Publish(ctx, id, want))

		got, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.Publish(ctx, id, poll.StatusReport{Status: poll.StatusDone}))
		require.NoError(t, store.Clear(ctx, id))

		got, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, poll.StatusNone, got.Status)
	})

	t.Run("Begin", func(t *testing.T) {
		claim := id + "-claim"
		defer func() { _ = store.Clear(ctx, claim) }()

		require.NoError(t, store.Begin(ctx, claim, "first"))
		assert.ErrorIs(t, store.Begin(ctx, claim, "second"), ErrAlreadyRunning)

		got, err := store.Load(ctx, claim)
		require.NoError(t, err)
		assert.Equal(t, "first", got.Message)

		require.NoError(t, store.Publish(ctx, claim, poll.StatusReport{Status: poll.StatusError}))
		assert.NoError(t, store.Begin(ctx, claim, "retry"))
	})

	t.Run("Polled", func(t *testing.T) {
		polled := id + "-polled"
		defer func() { _ = store.Clear(ctx, polled) }()
		require.NoError(t, store.Publish(ctx, polled, poll.StatusReport{Status: poll.StatusDone, Progress: 1}))

		report, err := poll.Await(ctx, StatusSource(store, polled), poll.WithInterval(0), poll.WithMaxAttempts(1))
		require.NoError(t, err)
		assert.Equal(t, poll.StatusDone, report.Status)
	})
}
