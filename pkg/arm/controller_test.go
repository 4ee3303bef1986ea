package arm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmp819/robotic-lego-arm/pkg/brick"
	"github.com/mmp819/robotic-lego-arm/pkg/brick/sim"
)

// primeCalibration arranges the sensors so every calibration move finds its
// physical reference immediately.
func primeCalibration(b *sim.Brick) {
	b.Touch.Set(1)
	b.Color.Set(100)
	b.Claw.StallBelow(0)
}

// waitCalibrated blocks until the startup LED write is visible, which happens
// after calibration and before the periodic activities start.
func waitCalibrated(t *testing.T, b *sim.Brick) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if b.LEDs.Level(brick.LeftLED, brick.Green) == 255 ||
			b.LEDs.Level(brick.LeftLED, brick.Red) == 255 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("calibration never finished")
}

func runAsync(c *Controller) chan error {
	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()
	return done
}

func waitDone(t *testing.T, done chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(3 * time.Second):
		t.Fatal("controller did not stop")
		return nil
	}
}

func TestRunStopsOnBackKey(t *testing.T) {
	c, b := newTestController()
	primeCalibration(b)

	done := runAsync(c)
	waitCalibrated(t, b)
	b.Touch.Set(0)
	b.Color.Set(0)

	b.Keys.Hold(brick.KeyBack)
	if err := waitDone(t, done); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// A normal close parks the arm: every motor ends reset at zero.
	for name, m := range map[string]*sim.Motor{
		"rotation": b.Rotation, "elevation": b.Elevation, "claw": b.Claw,
	} {
		recs := m.Records()
		if len(recs) == 0 {
			t.Errorf("%s: no motor operations recorded", name)
			continue
		}
		if last := recs[len(recs)-1]; last.Op != "reset" {
			t.Errorf("%s: last op = %v, want reset", name, last)
		}
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	c, b := newTestController()
	primeCalibration(b)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	waitCalibrated(t, b)

	cancel()
	if err := waitDone(t, done); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunReturnsFirstDeviceFailure(t *testing.T) {
	c, b := newTestController()
	primeCalibration(b)

	done := runAsync(c)
	waitCalibrated(t, b)

	errUnplugged := errors.New("sensor unplugged")
	b.Color.SetError(errUnplugged)

	err := waitDone(t, done)
	if !errors.Is(err, errUnplugged) {
		t.Fatalf("Run error = %v, want wrapped %v", err, errUnplugged)
	}

	// A failed run must not try to park.
	if hasRecord(b.Rotation.Records(), "reset", 0) {
		t.Error("motors must not be parked after a device failure")
	}
}

func TestRunFailsWhenCalibrationCannotFinish(t *testing.T) {
	c, b := newTestController()
	primeCalibration(b)
	errDead := errors.New("motor driver gone")
	b.Elevation.SetError(errDead)

	done := runAsync(c)
	err := waitDone(t, done)
	if !errors.Is(err, errDead) {
		t.Fatalf("Run error = %v, want wrapped %v", err, errDead)
	}
}

func TestStopLatchesClose(t *testing.T) {
	c, b := newTestController()
	primeCalibration(b)

	done := runAsync(c)
	waitCalibrated(t, b)

	c.Stop()
	if err := waitDone(t, done); err != nil {
		t.Fatalf("Run: %v", err)
	}
}
