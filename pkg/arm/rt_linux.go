//go:build linux

package arm

import "golang.org/x/sys/unix"

// fifoMax is the highest SCHED_FIFO priority on Linux.
const fifoMax = 99

// setFIFOPriority puts the calling thread on the SCHED_FIFO policy at
// fifoMax-delta. Requires CAP_SYS_NICE; callers treat failure as a hint that
// was not honored, not as an error.
func setFIFOPriority(delta int) error {
	attr := &unix.SchedAttr{
		Size:     unix.SizeofSchedAttr,
		Policy:   unix.SCHED_FIFO,
		Priority: uint32(fifoMax - delta),
	}
	return unix.SchedSetAttr(0, attr, 0)
}
