package arm

import (
	"time"

	"github.com/mmp819/robotic-lego-arm/pkg/brick"
)

// awaitMotionEnd blocks until a positioned command finishes. The settle delay
// gives the driver time to flip the Running bit on after the command was
// issued; polling then waits for it to clear. The loop also watches the close
// flag, when one is given, so shutdown is not held hostage by a long move.
func awaitMotionEnd(m brick.Motor, closed *Flag) error {
	time.Sleep(settleTime)
	for closed == nil || !closed.IsSet() {
		st, err := m.State()
		if err != nil {
			return err
		}
		if st&brick.Running == 0 {
			break
		}
		time.Sleep(pollTime)
	}
	return nil
}

// cutPower zeroes the duty cycle and puts the motor back in direct-drive
// mode, ready for the next user command.
func cutPower(m brick.Motor) error {
	if err := m.SetDutyCycle(0); err != nil {
		return err
	}
	return m.Command(brick.RunDirect)
}
