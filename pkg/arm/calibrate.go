package arm

import (
	"fmt"
	"runtime"
	"time"

	"github.com/mmp819/robotic-lego-arm/pkg/brick"
)

// Calibrate drives all three motors to their physical references and zeroes
// the encoders there. The three moves run concurrently, like the periodic
// activities they precede, and must all finish before Run starts the
// periodic set.
func (c *Controller) Calibrate() error {
	c.logf("calibrating arm")

	errs := make(chan error, 3)
	launch := func(prio int, fn func() error) {
		go func() {
			runtime.LockOSThread()
			_ = setFIFOPriority(prio)
			errs <- fn()
		}()
	}
	launch(prioCalRotation, c.calibrateRotation)
	launch(prioCalElevation, c.calibrateElevation)
	launch(prioCalClaw, c.calibrateClaw)

	var first error
	for i := 0; i < 3; i++ {
		if err := <-errs; err != nil && first == nil {
			first = err
		}
	}
	if first != nil {
		return first
	}
	c.logf("calibration done")
	return nil
}

// calibrateRotation turns the base clockwise until the end-of-travel switch
// closes, then backs off to the working zero.
func (c *Controller) calibrateRotation() error {
	m := c.rotation
	if err := m.SetStopAction(brick.Hold); err != nil {
		return fmt.Errorf("calibrate rotation: %w", err)
	}
	if err := m.SetDutyCycle(rotationPower); err != nil {
		return fmt.Errorf("calibrate rotation: %w", err)
	}
	if err := m.Command(brick.RunDirect); err != nil {
		return fmt.Errorf("calibrate rotation: %w", err)
	}

	err := waitUntil(motorPeriod, func() (bool, error) {
		if err := c.touch.Update(); err != nil {
			return false, err
		}
		return c.touch.Value() == touchActive, nil
	})
	if err != nil {
		return fmt.Errorf("calibrate rotation: %w", err)
	}

	if err := c.zeroAt(m, stepRotationSpeed, rotationInitUnits); err != nil {
		return fmt.Errorf("calibrate rotation: %w", err)
	}
	return nil
}

// calibrateElevation raises the arm until the color sensor sees the
// reflective marker at the top of travel, then lowers to the working zero.
func (c *Controller) calibrateElevation() error {
	m := c.elevation
	if err := m.SetStopAction(brick.Hold); err != nil {
		return fmt.Errorf("calibrate elevation: %w", err)
	}
	if err := m.SetDutyCycle(elevationUpPower); err != nil {
		return fmt.Errorf("calibrate elevation: %w", err)
	}
	if err := m.Command(brick.RunDirect); err != nil {
		return fmt.Errorf("calibrate elevation: %w", err)
	}

	err := waitUntil(motorPeriod, func() (bool, error) {
		if err := c.color.Update(); err != nil {
			return false, err
		}
		return c.color.Value() >= reflectionLimit, nil
	})
	if err != nil {
		return fmt.Errorf("calibrate elevation: %w", err)
	}

	if err := c.zeroAt(m, stepElevationSpeed, elevationInitUnits); err != nil {
		return fmt.Errorf("calibrate elevation: %w", err)
	}
	return nil
}

// calibrateClaw squeezes the gripper shut until the motor stalls, then
// reopens it to the working zero, which is the fully-open position.
func (c *Controller) calibrateClaw() error {
	m := c.claw
	if err := m.SetStopAction(brick.Hold); err != nil {
		return fmt.Errorf("calibrate claw: %w", err)
	}
	if err := m.SetDutyCycle(-clawPower); err != nil {
		return fmt.Errorf("calibrate claw: %w", err)
	}
	if err := m.Command(brick.RunDirect); err != nil {
		return fmt.Errorf("calibrate claw: %w", err)
	}

	err := waitUntil(motorPeriod, func() (bool, error) {
		st, err := m.State()
		if err != nil {
			return false, err
		}
		return st == brick.Running|brick.Stalled, nil
	})
	if err != nil {
		return fmt.Errorf("calibrate claw: %w", err)
	}

	if err := c.zeroAt(m, stepClawSpeed, clawInitUnits); err != nil {
		return fmt.Errorf("calibrate claw: %w", err)
	}
	return nil
}

// zeroAt moves the motor by offset units at the given step speed, cuts power
// and declares the resulting position the encoder zero.
func (c *Controller) zeroAt(m brick.Motor, speedPct, offset int) error {
	if err := m.SetSpeed(speedPct * m.MaxSpeed() / 100); err != nil {
		return err
	}
	if err := m.SetTargetPosition(offset); err != nil {
		return err
	}
	if err := m.Command(brick.RunToRelPos); err != nil {
		return err
	}
	if err := awaitMotionEnd(m, nil); err != nil {
		return err
	}
	if err := cutPower(m); err != nil {
		return err
	}
	return m.SetPosition(0)
}

// waitUntil polls cond at a fixed period with absolute deadlines until it
// reports true.
func waitUntil(period time.Duration, cond func() (bool, error)) error {
	next := time.Now()
	for {
		ok, err := cond()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		next = next.Add(period)
		time.Sleep(time.Until(next))
	}
}

// park returns every motor to absolute zero and resets it. Called once after
// all activities have exited.
func (c *Controller) park() error {
	for _, m := range []brick.Motor{c.rotation, c.elevation, c.claw} {
		if err := m.SetTargetPosition(0); err != nil {
			return fmt.Errorf("park: %w", err)
		}
		if err := m.Command(brick.RunToAbsPos); err != nil {
			return fmt.Errorf("park: %w", err)
		}
		if err := awaitMotionEnd(m, nil); err != nil {
			return fmt.Errorf("park: %w", err)
		}
		if err := m.Reset(); err != nil {
			return fmt.Errorf("park: %w", err)
		}
	}
	return nil
}
