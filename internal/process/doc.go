// Package process terminates the headless browser started for PDF export
// together with the renderer and GPU helpers it forks.
package process

import "errors"

// ErrInvalidPID is returned for pids that would address the caller's own
// process group or every process (0, 1 and negatives).
var ErrInvalidPID = errors.New("invalid pid")

func validPID(pid int) bool {
	return pid > 1
}
