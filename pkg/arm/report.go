package arm

import (
	"fmt"
	"time"

	"github.com/mmp819/robotic-lego-arm/pkg/brick"
)

// ledTick mirrors the correction flag onto the status LEDs: red while any
// motor is recovering, green otherwise. It keeps its own previous snapshot
// and writes only on change.
func (c *Controller) ledTick() error {
	active := c.correction.IsSet()
	if active == c.ledRed {
		return nil
	}
	var on, off brick.Color
	if active {
		on, off = brick.Red, brick.Green
	} else {
		on, off = brick.Green, brick.Red
	}
	for _, side := range []brick.Side{brick.LeftLED, brick.RightLED} {
		if err := c.leds.Set(side, on, 255); err != nil {
			return fmt.Errorf("leds: %w", err)
		}
		if err := c.leds.Set(side, off, 0); err != nil {
			return fmt.Errorf("leds: %w", err)
		}
	}
	c.ledRed = active
	return nil
}

// displayTick redraws the LCD: title, a filled circle while the claw is
// closed (outlined while open) and the wall-clock time.
func (c *Controller) displayTick() error {
	if err := c.display.Clear(); err != nil {
		return fmt.Errorf("lcd: clear: %w", err)
	}
	if err := c.display.Text(titleX, titleY, titleText); err != nil {
		return fmt.Errorf("lcd: title: %w", err)
	}

	w, h := c.display.Size()
	var err error
	if c.clawClosed.IsSet() {
		err = c.display.FillCircle(w/2, h/2, circleRadius)
	} else {
		err = c.display.StrokeCircle(w/2, h/2, circleRadius)
	}
	if err != nil {
		return fmt.Errorf("lcd: claw glyph: %w", err)
	}

	clock := time.Now().Format("15:04:05")
	if err := c.display.Text(timeX, h-timeYOffset, clock); err != nil {
		return fmt.Errorf("lcd: clock: %w", err)
	}
	return nil
}

// setLEDs writes one color at full intensity to both LEDs, clearing the
// other channel. Used once at startup to establish the green steady state.
func (c *Controller) setLEDs(on brick.Color) error {
	off := brick.Red
	if on == brick.Red {
		off = brick.Green
	}
	for _, side := range []brick.Side{brick.LeftLED, brick.RightLED} {
		if err := c.leds.Set(side, on, 255); err != nil {
			return err
		}
		if err := c.leds.Set(side, off, 0); err != nil {
			return err
		}
	}
	return nil
}
