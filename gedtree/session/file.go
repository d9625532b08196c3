package session

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"
)

// lockRetryInterval is how often a pending file lock is retried.
const lockRetryInterval = 100 * time.Millisecond

// withFileLock runs fn while holding an advisory lock on a sidecar
// .lock file, so concurrent processes sharing a GEDCOM file on disk
// serialize their load/save cycles. The in-process lockManager covers
// goroutines; flock covers processes.
func withFileLock(ctx context.Context, path string, fn func() error) error {
	fileLock := flock.New(path + ".lock")
	locked, err := fileLock.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return fmt.Errorf("failed to acquire file lock for %s: %w", path, err)
	}
	if !locked {
		return fmt.Errorf("file %s is locked by another process", path)
	}
	defer func() { _ = fileLock.Unlock() }()

	return fn()
}

// LoadFile reads and parses a GEDCOM file, installing it as the live
// document. The file lock is held for the duration of the read.
func (s *Session) LoadFile(ctx context.Context, path string) error {
	return withFileLock(ctx, path, func() error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		return s.LoadBytes(data)
	})
}

// SaveFile exports the live document to a GEDCOM file. The file lock
// is held for the duration of the write.
func (s *Session) SaveFile(ctx context.Context, path string) error {
	return withFileLock(ctx, path, func() error {
		content, err := s.Export()
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		return nil
	})
}
