package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/formlogic/pkg/poll"
	"github.com/aretw0/formlogic/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces status keys.
const DefaultPrefix = "formlogic:status:"

// StatusStore persists poll.StatusReport documents as JSON strings.
type StatusStore struct {
	client backend.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ ports.StatusStore = (*StatusStore)(nil)

// Option configures a StatusStore.
type Option func(*StatusStore)

// WithTTL expires reports ttl after they were last published. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *StatusStore) {
		s.ttl = ttl
	}
}

// WithPrefix replaces DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(s *StatusStore) {
		s.prefix = prefix
	}
}

// NewFromClient creates a StatusStore on an existing client.
func NewFromClient(client backend.UniversalClient, opts ...Option) *StatusStore {
	s := &StatusStore{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *StatusStore) key(id string) string {
	return s.prefix + id
}

// Publish stores report as the current status of operation id.
func (s *StatusStore) Publish(ctx context.Context, id string, report poll.StatusReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	if err := s.client.Set(ctx, s.key(id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis error publishing status: %w", err)
	}
	return nil
}

// Load returns the current status of operation id.
// An operation nobody published is reported as poll.StatusNone.
func (s *StatusStore) Load(ctx context.Context, id string) (poll.StatusReport, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, backend.Nil) {
		return poll.StatusReport{Status: poll.StatusNone}, nil
	}
	if err != nil {
		return poll.StatusReport{}, fmt.Errorf("redis error loading status: %w", err)
	}

	var report poll.StatusReport
	if err := json.Unmarshal(data, &report); err != nil {
		return poll.StatusReport{}, fmt.Errorf("failed to unmarshal status %q: %w", id, err)
	}
	if report.Status == "" {
		report.Status = poll.StatusNone
	}
	return report, nil
}

// Clear forgets the status of operation id.
func (s *StatusStore) Clear(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

// Source returns a poll source reading the status of operation id.
func (s *StatusStore) Source(id string) poll.Source[poll.StatusReport] {
	return ports.StatusSource(s, id)
}
