package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/formlogic/pkg/poll"
	"github.com/aretw0/formlogic/pkg/ports"
)

// StatusStore implements ports.StatusStore using the local filesystem.
// It stores one JSON file per operation in a configured directory.
type StatusStore struct {
	BasePath string
}

var _ ports.StatusStore = (*StatusStore)(nil)

// New creates a new StatusStore with the given base path.
// If basePath is empty, it defaults to ".formlogic/status".
func New(basePath string) *StatusStore {
	if basePath == "" {
		basePath = filepath.Join(".formlogic", "status")
	}
	return &StatusStore{BasePath: basePath}
}

func (s *StatusStore) path(id string) string {
	return filepath.Join(s.BasePath, id+".json")
}

// checkID rejects ids that would resolve outside BasePath.
func checkID(id string) error {
	if id == "" {
		return errors.New("operation id cannot be empty")
	}
	if id == "." || id == ".." || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return fmt.Errorf("invalid operation id %q", id)
	}
	return nil
}

// Publish writes the report atomically: a temporary file is synced and then
// renamed over the destination.
func (s *StatusStore) Publish(ctx context.Context, id string, report poll.StatusReport) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure status directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}

	// Same directory, so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+id+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path(id)); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load reads the status of operation id. A missing file is poll.StatusNone.
func (s *StatusStore) Load(ctx context.Context, id string) (poll.StatusReport, error) {
	if err := checkID(id); err != nil {
		return poll.StatusReport{}, err
	}

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return poll.StatusReport{Status: poll.StatusNone}, nil
		}
		return poll.StatusReport{}, fmt.Errorf("failed to read status file: %w", err)
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

// Clear removes the status file.
func (s *StatusStore) Clear(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	err := os.Remove(s.path(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete status file: %w", err)
	}
	return nil
}

// Begin claims operation id. Concurrent claims are serialised with an
// exclusive lock file next to the status file.
func (s *StatusStore) Begin(ctx context.Context, id string, message string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure status directory: %w", err)
	}
	lockPath := filepath.Join(s.BasePath, id+".lock")
	lock, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("%w: %s", ports.ErrAlreadyRunning, id)
	}
	if err != nil {
		return fmt.Errorf("failed to lock operation: %w", err)
	}
	_ = lock.Close()
	defer os.Remove(lockPath)

	current, err := s.Load(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == poll.StatusRunning {
		return fmt.Errorf("%w: %s", ports.ErrAlreadyRunning, id)
	}
	return s.Publish(ctx, id, poll.StatusReport{Status: poll.StatusRunning, Message: message})
}
