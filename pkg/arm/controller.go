// Package arm implements the concurrent control core of the robotic arm:
// three input samplers, three motor controllers, two status reporters, all
// periodic, sharing state through a handful of independently locked
// observables.
package arm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mmp819/robotic-lego-arm/pkg/brick"
)

// colorModeReflect selects reflected-light mode on the color sensor.
const colorModeReflect = "COL-REFLECT"

// Config holds the devices the controller drives. All fields are required.
type Config struct {
	Rotation  brick.Motor
	Elevation brick.Motor
	Claw      brick.Motor
	Color     brick.Sensor
	Touch     brick.Sensor
	Buttons   brick.Buttons
	LEDs      brick.LED
	Display   brick.Display
}

// Controller owns the shared observables and runs the eight periodic
// activities. Exactly one activity commands each motor; samplers and
// reporters never touch them.
type Controller struct {
	rotation  brick.Motor
	elevation brick.Motor
	claw      brick.Motor
	color     brick.Sensor
	touch     brick.Sensor
	buttons   brick.Buttons
	leds      brick.LED
	display   brick.Display

	intent         Intent
	topLimit       Flag
	clockwiseLimit Flag
	correction     Flag
	clawClosed     Flag
	close          Flag

	rotationAxis  *axis
	elevationAxis *axis

	// local state of the claw controller and LED reporter
	clawOpen bool
	ledRed   bool

	wg       sync.WaitGroup
	errMu    sync.Mutex
	err      error
	prioWarn sync.Once
	logCh    chan string
}

// New creates a controller for the given devices.
func New(cfg Config) *Controller {
	c := &Controller{
		rotation:  cfg.Rotation,
		elevation: cfg.Elevation,
		claw:      cfg.Claw,
		color:     cfg.Color,
		touch:     cfg.Touch,
		buttons:   cfg.Buttons,
		leds:      cfg.LEDs,
		display:   cfg.Display,
		logCh:     make(chan string, 16),
	}

	c.rotationAxis = &axis{
		name:       "rotation",
		motor:      cfg.Rotation,
		limit:      &c.clockwiseLimit,
		correction: &c.correction,
		closed:     &c.close,
		intent: func() axisAction {
			switch c.intent.Rotation() {
			case RotateRight:
				return axisForward
			case RotateLeft:
				return axisBackward
			default:
				return axisStop
			}
		},
		overSoftLimit:  func(pos int) bool { return pos < topLeftPos },
		forwardDuty:    rotationPower,
		backwardDuty:   -rotationPower,
		recoveryOffset: rotationInitUnits,
	}

	c.elevationAxis = &axis{
		name:       "elevation",
		motor:      cfg.Elevation,
		limit:      &c.topLimit,
		correction: &c.correction,
		closed:     &c.close,
		intent: func() axisAction {
			switch c.intent.Elevation() {
			case Rise:
				return axisForward
			case Lower:
				return axisBackward
			default:
				return axisStop
			}
		},
		overSoftLimit:  func(pos int) bool { return pos > topBottomPos },
		forwardDuty:    elevationUpPower,
		backwardDuty:   elevationDownPower,
		recoveryOffset: elevationInitUnits,
	}

	return c
}

// Logs returns the controller's log channel. Messages are dropped rather
// than block an activity when nobody is listening.
func (c *Controller) Logs() <-chan string {
	return c.logCh
}

func (c *Controller) logf(format string, args ...any) {
	msg := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	select {
	case c.logCh <- msg:
	default:
	}
}

// Stop latches the close flag, as pressing the Back key would.
func (c *Controller) Stop() {
	c.close.Set()
}

// Run calibrates the arm, starts the eight periodic activities and blocks
// until they all exit, then parks the motors at zero. Cancellation of ctx is
// equivalent to pressing the Back key. The returned error is the first fatal
// device failure, or nil on a normal close.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.color.SetMode(colorModeReflect); err != nil {
		return fmt.Errorf("set color sensor mode: %w", err)
	}

	if err := c.Calibrate(); err != nil {
		return fmt.Errorf("calibrate: %w", err)
	}
	c.clawOpen = true

	// Steady state before the LED reporter starts watching for changes.
	if err := c.setLEDs(brick.Green); err != nil {
		return fmt.Errorf("set leds: %w", err)
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			c.logf("context canceled, shutting down")
			c.close.Set()
		case <-stop:
		}
	}()

	c.logf("arm ready")

	c.wg.Add(8)
	go c.runPeriodic("buttons", buttonPeriod, prioButtons, c.sampleButtons)
	go c.runPeriodic("color sensor", colorPeriod, prioColor, c.sampleColor)
	go c.runPeriodic("touch sensor", touchPeriod, prioTouch, c.sampleTouch)
	go c.runPeriodic("rotation", motorPeriod, prioMotors, c.rotationAxis.tick)
	go c.runPeriodic("elevation", motorPeriod, prioMotors, c.elevationAxis.tick)
	go c.runPeriodic("claw", motorPeriod, prioClaw, c.clawTick)
	go c.runPeriodic("leds", ledPeriod, prioLEDs, c.ledTick)
	go c.runPeriodic("display", reporterPeriod, prioReporter, c.displayTick)
	c.wg.Wait()

	c.errMu.Lock()
	err := c.err
	c.errMu.Unlock()

	if err != nil {
		// Do not drive hardware that already failed.
		return err
	}
	if perr := c.park(); perr != nil {
		return perr
	}
	c.logf("arm parked")
	return nil
}
