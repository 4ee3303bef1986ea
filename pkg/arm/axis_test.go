package arm

import (
	"testing"
	"time"

	"github.com/mmp819/robotic-lego-arm/pkg/brick/sim"
)

func dutyCycles(recs []sim.Record) []int {
	var out []int
	for _, r := range recs {
		if r.Op == "set_duty_cycle" {
			out = append(out, r.Arg)
		}
	}
	return out
}

func hasRecord(recs []sim.Record, op string, arg int) bool {
	for _, r := range recs {
		if r.Op == op && r.Arg == arg {
			return true
		}
	}
	return false
}

func TestAxisDirectDriveIssuedOnce(t *testing.T) {
	c, b := newTestController()

	c.intent.Publish(RotateLeft, ElevateStop, ClawInactive)
	for i := 0; i < 3; i++ {
		if err := c.rotationAxis.tick(); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}

	duties := dutyCycles(b.Rotation.Records())
	if len(duties) != 1 || duties[0] != -30 {
		t.Fatalf("duty cycles = %v, want exactly one -30", duties)
	}

	// Releasing the key issues a single zero.
	c.intent.Publish(RotateStop, ElevateStop, ClawInactive)
	for i := 0; i < 3; i++ {
		if err := c.rotationAxis.tick(); err != nil {
			t.Fatalf("stop tick %d: %v", i, err)
		}
	}
	duties = dutyCycles(b.Rotation.Records())
	if len(duties) != 2 || duties[1] != 0 {
		t.Fatalf("duty cycles = %v, want [-30 0]", duties)
	}
}

func TestAxisDutyCyclesWithinRange(t *testing.T) {
	tests := []struct {
		name      string
		rotation  RotationAction
		elevation ElevationAction
		wantRot   int
		wantElev  int
	}{
		{"right rise", RotateRight, Rise, 30, -30},
		{"left lower", RotateLeft, Lower, -30, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, b := newTestController()
			c.intent.Publish(tt.rotation, tt.elevation, ClawInactive)
			if err := c.rotationAxis.tick(); err != nil {
				t.Fatalf("rotation tick: %v", err)
			}
			if err := c.elevationAxis.tick(); err != nil {
				t.Fatalf("elevation tick: %v", err)
			}
			if duties := dutyCycles(b.Rotation.Records()); len(duties) != 1 || duties[0] != tt.wantRot {
				t.Errorf("rotation duties = %v, want [%d]", duties, tt.wantRot)
			}
			if duties := dutyCycles(b.Elevation.Records()); len(duties) != 1 || duties[0] != tt.wantElev {
				t.Errorf("elevation duties = %v, want [%d]", duties, tt.wantElev)
			}
		})
	}
}

func TestRotationSensorLimitRecovery(t *testing.T) {
	c, b := newTestController()

	c.clockwiseLimit.Set()
	c.intent.Publish(RotateRight, ElevateStop, ClawInactive)
	if err := c.rotationAxis.tick(); err != nil {
		t.Fatalf("tick: %v", err)
	}

	recs := b.Rotation.Records()
	if !hasRecord(recs, "set_target", -350) {
		t.Errorf("recovery should target -350 relative, records: %v", recs)
	}
	if !hasRecord(recs, "command:run-to-rel-pos", 0) {
		t.Errorf("recovery should use run-to-rel-pos, records: %v", recs)
	}
	if !hasRecord(recs, "command:run-direct", 0) {
		t.Errorf("recovery should return to direct drive, records: %v", recs)
	}
	if c.clockwiseLimit.IsSet() {
		t.Error("limit flag should be cleared after recovery")
	}
	if c.correction.IsSet() {
		t.Error("correction flag should be cleared after recovery")
	}
	// Intent observed during recovery is dropped: the next tick with the
	// same intent issues a fresh drive command.
	if err := c.rotationAxis.tick(); err != nil {
		t.Fatalf("post-recovery tick: %v", err)
	}
	if duties := dutyCycles(b.Rotation.Records()); len(duties) == 0 || duties[len(duties)-1] != 30 {
		t.Errorf("post-recovery duties = %v, want trailing 30", duties)
	}
}

func TestRotationSoftLimitRecovery(t *testing.T) {
	c, b := newTestController()

	if err := b.Rotation.SetPosition(-500); err != nil {
		t.Fatal(err)
	}
	if err := c.rotationAxis.tick(); err != nil {
		t.Fatalf("tick: %v", err)
	}

	recs := b.Rotation.Records()
	if !hasRecord(recs, "set_target", 0) {
		t.Errorf("soft-limit recovery should target absolute 0, records: %v", recs)
	}
	if !hasRecord(recs, "command:run-to-abs-pos", 0) {
		t.Errorf("soft-limit recovery should use run-to-abs-pos, records: %v", recs)
	}
	pos, err := b.Rotation.Position()
	if err != nil {
		t.Fatal(err)
	}
	if pos != 0 {
		t.Errorf("position after recovery = %d, want 0", pos)
	}
}

func TestElevationRecoveryOffsets(t *testing.T) {
	c, b := newTestController()

	c.topLimit.Set()
	if err := c.elevationAxis.tick(); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if !hasRecord(b.Elevation.Records(), "set_target", 100) {
		t.Errorf("top-limit recovery should lower by 100, records: %v", b.Elevation.Records())
	}
	if c.topLimit.IsSet() {
		t.Error("top limit flag should be cleared")
	}

	// Soft bottom limit uses absolute zero.
	if err := b.Elevation.SetPosition(250); err != nil {
		t.Fatal(err)
	}
	if err := c.elevationAxis.tick(); err != nil {
		t.Fatalf("soft-limit tick: %v", err)
	}
	if !hasRecord(b.Elevation.Records(), "command:run-to-abs-pos", 0) {
		t.Errorf("bottom recovery should use run-to-abs-pos, records: %v", b.Elevation.Records())
	}
}

func TestSensorLimitTakesPrecedenceOverSoftLimit(t *testing.T) {
	c, b := newTestController()

	// Both limits satisfied in the same tick: the sensor wins.
	c.clockwiseLimit.Set()
	if err := b.Rotation.SetPosition(-500); err != nil {
		t.Fatal(err)
	}
	if err := c.rotationAxis.tick(); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if !hasRecord(b.Rotation.Records(), "set_target", -350) {
		t.Errorf("sensor-limit recovery should run first, records: %v", b.Rotation.Records())
	}
	if hasRecord(b.Rotation.Records(), "command:run-to-abs-pos", 0) {
		t.Errorf("soft-limit recovery must not run in the same tick, records: %v", b.Rotation.Records())
	}
}

func TestCorrectionFlagDuringRecovery(t *testing.T) {
	c, b := newTestController()
	b.Rotation.SetTravelTime(80 * time.Millisecond)

	c.clockwiseLimit.Set()
	done := make(chan error, 1)
	go func() { done <- c.rotationAxis.tick() }()

	// The flag must be observable while the recovery move is in flight.
	deadline := time.After(time.Second)
	for !c.correction.IsSet() {
		select {
		case err := <-done:
			t.Fatalf("tick finished before correction was observed (err=%v)", err)
		case <-deadline:
			t.Fatal("correction flag never set")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if err := <-done; err != nil {
		t.Fatalf("tick: %v", err)
	}
	if c.correction.IsSet() {
		t.Error("correction flag should clear when recovery completes")
	}
}
