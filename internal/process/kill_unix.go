//go:build !windows

package process

import (
	"fmt"
	"syscall"
)

// KillProcessGroup sends SIGKILL to the process group led by pid.
// The browser launcher starts Chrome as a group leader, so this reaches
// every helper it spawned.
func KillProcessGroup(pid int) error {
	if !validPID(pid) {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil {
		return fmt.Errorf("killing process group %d: %w", pid, err)
	}
	return nil
}
