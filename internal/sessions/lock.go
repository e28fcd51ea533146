package sessions

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ApplyLock serializes the apply phase for one session. The review contract
// requires a completed edit cycle before finalization, so only one apply may
// run against a session's actions file at a time.
type ApplyLock struct {
	lock *flock.Flock
}

// AcquireApplyLock takes the per-session apply lock without blocking. It
// fails when another subfix process is already applying this session.
func AcquireApplyLock(workspaceDir, token string) (*ApplyLock, error) {
	lockPath := filepath.Join(workspaceDir, token+".lock")
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire apply lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("session %s is already being applied by another process", token)
	}
	return &ApplyLock{lock: lock}, nil
}

// Release drops the lock.
func (l *ApplyLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
