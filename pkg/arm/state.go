package arm

import "sync"

// Intent is the most recent action triple published by the button sampler.
// All three fields change together under one lock acquisition; the newest
// sample overwrites the previous one.
type Intent struct {
	mu        sync.Mutex
	rotation  RotationAction
	elevation ElevationAction
	claw      ClawAction
}

// Publish replaces the whole triple atomically.
func (i *Intent) Publish(r RotationAction, e ElevationAction, c ClawAction) {
	i.mu.Lock()
	i.rotation = r
	i.elevation = e
	i.claw = c
	i.mu.Unlock()
}

// Rotation returns the current rotation request.
func (i *Intent) Rotation() RotationAction {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.rotation
}

// Elevation returns the current elevation request.
func (i *Intent) Elevation() ElevationAction {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.elevation
}

// Claw returns the current claw request.
func (i *Intent) Claw() ClawAction {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.claw
}

// ClearClaw resets the claw request to Inactive. The claw controller calls
// this after acting, so a single press produces a single toggle.
func (i *Intent) ClearClaw() {
	i.mu.Lock()
	i.claw = ClawInactive
	i.mu.Unlock()
}

// Flag is a boolean observable with its own lock. Each flag has a single
// setter and a single clearer; no flag's critical section nests inside
// another's.
type Flag struct {
	mu sync.Mutex
	v  bool
}

// Set raises the flag.
func (f *Flag) Set() {
	f.mu.Lock()
	f.v = true
	f.mu.Unlock()
}

// Clear lowers the flag.
func (f *Flag) Clear() {
	f.mu.Lock()
	f.v = false
	f.mu.Unlock()
}

// IsSet reports whether the flag is raised.
func (f *Flag) IsSet() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.v
}
