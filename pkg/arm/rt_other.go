//go:build !linux

package arm

import "errors"

// setFIFOPriority is a stub on platforms without SCHED_FIFO; the activities
// keep their priority ranks as documentation and run at default priority.
func setFIFOPriority(delta int) error {
	return errors.New("SCHED_FIFO not supported on this platform")
}
