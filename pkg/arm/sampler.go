package arm

import (
	"fmt"

	"github.com/mmp819/robotic-lego-arm/pkg/brick"
)

// sampleButtons reads the five directional keys and publishes the intent
// triple. Opposite keys pressed together cancel to a stop, so the user can
// kill a motion without caring about release order. The Back key latches the
// close flag.
func (c *Controller) sampleButtons() error {
	var r RotationAction
	switch {
	case c.buttons.Pressed(brick.KeyLeft) && c.buttons.Pressed(brick.KeyRight):
		r = RotateStop
	case c.buttons.Pressed(brick.KeyLeft):
		r = RotateLeft
	case c.buttons.Pressed(brick.KeyRight):
		r = RotateRight
	default:
		r = RotateStop
	}

	var e ElevationAction
	switch {
	case c.buttons.Pressed(brick.KeyUp) && c.buttons.Pressed(brick.KeyDown):
		e = ElevateStop
	case c.buttons.Pressed(brick.KeyUp):
		e = Rise
	case c.buttons.Pressed(brick.KeyDown):
		e = Lower
	default:
		e = ElevateStop
	}

	cl := ClawInactive
	if c.buttons.Pressed(brick.KeyCenter) {
		cl = ClawActive
	}

	c.intent.Publish(r, e, cl)

	if c.buttons.Pressed(brick.KeyBack) {
		c.logf("back pressed, shutting down")
		c.close.Set()
	}
	return nil
}

// sampleColor raises the top-limit flag when the reflected-light reading
// crosses the threshold. The flag is cleared by the elevation controller
// once its recovery move completes; repeated observations before then are
// idempotent.
func (c *Controller) sampleColor() error {
	if err := c.color.Update(); err != nil {
		return fmt.Errorf("read color sensor: %w", err)
	}
	if c.color.Value() >= reflectionLimit {
		c.topLimit.Set()
	}
	return nil
}

// sampleTouch raises the clockwise-limit flag while the end-of-travel switch
// is closed. Cleared by the rotation controller after recovery.
func (c *Controller) sampleTouch() error {
	if err := c.touch.Update(); err != nil {
		return fmt.Errorf("read touch sensor: %w", err)
	}
	if c.touch.Value() == touchActive {
		c.clockwiseLimit.Set()
	}
	return nil
}
