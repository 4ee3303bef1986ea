package arm

import (
	"testing"
)

func TestCalibrateZeroesAllAxes(t *testing.T) {
	c, b := newTestController()
	primeCalibration(b)

	if err := c.Calibrate(); err != nil {
		t.Fatalf("Calibrate: %v", err)
	}

	for name, m := range map[string]interface{ Position() (int, error) }{
		"rotation": b.Rotation, "elevation": b.Elevation, "claw": b.Claw,
	} {
		pos, err := m.Position()
		if err != nil {
			t.Fatalf("%s position: %v", name, err)
		}
		if pos != 0 {
			t.Errorf("%s position = %d after calibration, want 0", name, pos)
		}
	}
}

func TestCalibrateStepSpeeds(t *testing.T) {
	c, b := newTestController()
	primeCalibration(b)

	if err := c.Calibrate(); err != nil {
		t.Fatalf("Calibrate: %v", err)
	}

	// The back-off move runs at a fraction of each motor's rated speed:
	// 40% of 900 for rotation, 20% of 900 for elevation, 40% of 1200 for
	// the claw.
	if !hasRecord(b.Rotation.Records(), "set_speed", 360) {
		t.Errorf("rotation records = %v, want set_speed 360", b.Rotation.Records())
	}
	if !hasRecord(b.Elevation.Records(), "set_speed", 180) {
		t.Errorf("elevation records = %v, want set_speed 180", b.Elevation.Records())
	}
	if !hasRecord(b.Claw.Records(), "set_speed", 480) {
		t.Errorf("claw records = %v, want set_speed 480", b.Claw.Records())
	}
}

func TestCalibrateBackOffOffsets(t *testing.T) {
	c, b := newTestController()
	primeCalibration(b)

	if err := c.Calibrate(); err != nil {
		t.Fatalf("Calibrate: %v", err)
	}

	if !hasRecord(b.Rotation.Records(), "set_target", -350) {
		t.Errorf("rotation should back off -350 units, records: %v", b.Rotation.Records())
	}
	if !hasRecord(b.Elevation.Records(), "set_target", 100) {
		t.Errorf("elevation should back off +100 units, records: %v", b.Elevation.Records())
	}
	if !hasRecord(b.Claw.Records(), "set_target", 90) {
		t.Errorf("claw should reopen +90 units, records: %v", b.Claw.Records())
	}
}
