// Package process terminates the headless browser together with the helper
// processes it forks.
package process

import (
	"errors"
	"fmt"
)

// ErrInvalidPID is returned for pids that would target the caller's own
// process group.
var ErrInvalidPID = errors.New("invalid pid")

// KillProcessGroup force-kills pid and its children. Callers treat it as
// best effort and still stop the browser through its launcher.
func KillProcessGroup(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	return killGroup(pid)
}
