package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/formlogic/pkg/poll"
	"github.com/aretw0/formlogic/pkg/ports"
)

// StatusStore implements ports.StatusStore in memory.
// Safe for concurrent use.
type StatusStore struct {
	data map[string]poll.StatusReport
	mu   sync.RWMutex
}

var _ ports.StatusStore = (*StatusStore)(nil)

// NewStatusStore creates a new in-memory store.
func NewStatusStore() *StatusStore {
	return &StatusStore{
		data: make(map[string]poll.StatusReport),
	}
}

// Publish stores report as the current status of operation id.
func (s *StatusStore) Publish(ctx context.Context, id string, report poll.StatusReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = report
	return nil
}

// Load returns the current status of operation id.
func (s *StatusStore) Load(ctx context.Context, id string) (poll.StatusReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.data[id]
	if !ok || report.Status == "" {
		report.Status = poll.StatusNone
	}
	return report, nil
}

// Clear forgets operation id.
func (s *StatusStore) Clear(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// Begin claims operation id unless it is already running.
func (s *StatusStore) Begin(ctx context.Context, id string, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[id].Status == poll.StatusRunning {
		return fmt.Errorf("%w: %s", ports.ErrAlreadyRunning, id)
	}
	s.data[id] = poll.StatusReport{Status: poll.StatusRunning, Message: message}
	return nil
}

// List returns the ids of every known operation.
func (s *StatusStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}
