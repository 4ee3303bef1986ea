package arm

import (
	"fmt"
	"time"

	"github.com/mmp819/robotic-lego-arm/pkg/brick"
)

// clawTick toggles the gripper on the rising edge of an Active request.
// Acting as the consumer, it resets the request to Inactive afterwards, so a
// held center key yields one toggle per sampler tick rather than a stream.
func (c *Controller) clawTick() error {
	if c.intent.Claw() != ClawActive {
		return nil
	}

	if c.clawOpen {
		if err := c.closeClaw(); err != nil {
			return fmt.Errorf("claw: close: %w", err)
		}
	} else {
		if err := c.openClaw(); err != nil {
			return fmt.Errorf("claw: open: %w", err)
		}
	}

	c.intent.ClearClaw()
	return nil
}

// closeClaw squeezes for a fixed time and then cuts power, leaving the motor
// stalled compliantly against whatever it grasped. A time-bounded close
// adapts the grip to the object's size; a position-bounded one would not.
func (c *Controller) closeClaw() error {
	if err := c.claw.SetDutyCycle(-clawPower); err != nil {
		return err
	}
	if err := c.claw.Command(brick.RunDirect); err != nil {
		return err
	}
	c.clawOpen = false

	time.Sleep(clawCloseTime)
	if err := c.claw.SetDutyCycle(0); err != nil {
		return err
	}
	c.clawClosed.Set()
	return nil
}

// openClaw returns the gripper to its calibrated fully-open position.
func (c *Controller) openClaw() error {
	if err := c.claw.SetTargetPosition(0); err != nil {
		return err
	}
	if err := c.claw.Command(brick.RunToAbsPos); err != nil {
		return err
	}
	if err := awaitMotionEnd(c.claw, &c.close); err != nil {
		return err
	}
	if c.close.IsSet() {
		return nil
	}
	if err := cutPower(c.claw); err != nil {
		return err
	}
	c.clawOpen = true
	c.clawClosed.Clear()
	return nil
}
