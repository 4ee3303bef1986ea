package arm

import (
	"sync"
	"testing"
)

func TestIntentPublishReplacesTriple(t *testing.T) {
	var in Intent

	in.Publish(RotateLeft, Rise, ClawActive)
	if got := in.Rotation(); got != RotateLeft {
		t.Errorf("Rotation() = %v, want RotateLeft", got)
	}
	if got := in.Elevation(); got != Rise {
		t.Errorf("Elevation() = %v, want Rise", got)
	}
	if got := in.Claw(); got != ClawActive {
		t.Errorf("Claw() = %v, want ClawActive", got)
	}

	// Newest sample wins; there is no queue.
	in.Publish(RotateStop, Lower, ClawInactive)
	if got := in.Rotation(); got != RotateStop {
		t.Errorf("after republish, Rotation() = %v, want RotateStop", got)
	}
	if got := in.Elevation(); got != Lower {
		t.Errorf("after republish, Elevation() = %v, want Lower", got)
	}
}

func TestIntentClearClawLeavesOtherFields(t *testing.T) {
	var in Intent
	in.Publish(RotateRight, Rise, ClawActive)

	in.ClearClaw()

	if got := in.Claw(); got != ClawInactive {
		t.Errorf("Claw() = %v, want ClawInactive", got)
	}
	if got := in.Rotation(); got != RotateRight {
		t.Errorf("Rotation() = %v, want RotateRight", got)
	}
	if got := in.Elevation(); got != Rise {
		t.Errorf("Elevation() = %v, want Rise", got)
	}
}

func TestFlagSetClear(t *testing.T) {
	var f Flag
	if f.IsSet() {
		t.Fatal("new flag should be clear")
	}
	f.Set()
	if !f.IsSet() {
		t.Fatal("flag should be set after Set")
	}
	f.Clear()
	if f.IsSet() {
		t.Fatal("flag should be clear after Clear")
	}
}

func TestFlagConcurrentSetters(t *testing.T) {
	var f Flag
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f.Set()
				f.IsSet()
			}
		}()
	}
	wg.Wait()
	if !f.IsSet() {
		t.Fatal("flag should remain set")
	}
}
