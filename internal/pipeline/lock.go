package pipeline

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"

	"github.com/backmassage/listmerge/internal/logging"
)

// ErrLocked is returned when another run holds the output directory lock.
var ErrLocked = errors.New("another listmerge run is using this output directory")

// runLock is an advisory lock on a file in the output directory. The file
// itself is left in place after release.
type runLock struct {
	fl *flock.Flock
}

func acquireLock(path string) (*runLock, error) {
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock: %s)", ErrLocked, path)
	}
	return &runLock{fl: fl}, nil
}

func (l *runLock) release(log *logging.Logger) {
	if err := l.fl.Unlock(); err != nil {
		log.Warn("Failed to release lock %s: %v", l.fl.Path(), err)
	}
}
