package observability

import (
	"context"
	"testing"

	"github.com/aretw0/formlogic/pkg/poll"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upTo(limit int) (poll.Source[int], poll.Predicate[int]) {
	n := 0
	src := func(context.Context) (int, error) {
		n++
		return n, nil
	}
	return src, func(v int) bool { return v < limit }
}

func TestPollMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPollMetrics(reg, "formlogic")
	require.NoError(t, err)

	src, active := upTo(3)
	_, err = poll.Wait(context.Background(), src, active,
		poll.WithName("join"), poll.WithInterval(0), poll.WithHooks(m.Hooks()))
	require.NoError(t, err)

	src, active = upTo(10)
	_, err = poll.Wait(context.Background(), src, active,
		poll.WithName("bootstrap"), poll.WithInterval(0), poll.WithMaxAttempts(2), poll.WithHooks(m.Hooks()))
	require.Error(t, err)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.attempts.WithLabelValues("join")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.attempts.WithLabelValues("bootstrap")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.finished.WithLabelValues("join", "done")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.finished.WithLabelValues("bootstrap", "exceeded")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.active.WithLabelValues("join")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.active.WithLabelValues("bootstrap")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))

	names := []string{}
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"formlogic_poll_attempts_total",
		"formlogic_poll_finished_total",
		"formlogic_poll_attempt_duration_seconds",
		"formlogic_poll_active",
	}, names)
}

func TestPollMetrics_CanceledBeforeFirstAttempt(t *testing.T) {
	m, err := NewPollMetrics(prometheus.NewRegistry(), "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src, active := upTo(3)
	_, err = poll.Wait(ctx, src, active, poll.WithName("x"), poll.WithHooks(m.Hooks()))
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.finished.WithLabelValues("x", "canceled")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.active.WithLabelValues("x")))
}

func TestNewPollMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPollMetrics(reg, "formlogic")
	require.NoError(t, err)

	_, err = NewPollMetrics(reg, "formlogic")
	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &already)
}
