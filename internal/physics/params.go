// Package physics integrates velocities and positions for one simulation step.
package physics

// Params are the tuning constants of the integrator, in pixels and seconds.
type Params struct {
	Gravity      float64 // downward acceleration, px/s²
	MaxFallSpeed float64 // terminal vertical velocity, px/s
	RunSpeed     float64 // target horizontal speed with input held, px/s
	Accel        float64 // horizontal acceleration toward the target, px/s²
	Friction     float64 // horizontal deceleration without input, px/s²
	AirControl   float64 // fraction of Accel/Friction applied while airborne
	JumpSpeed    float64 // initial upward speed of a jump, px/s

	SwingGravity float64 // angular acceleration factor, multiplied by sin(angle)
	SwingPump    float64 // angular acceleration from up/down input, rad/s²
	SwingDamping float64 // fraction of angular velocity kept per second
}

// DefaultParams mirrors the 60 FPS per-frame constants of the original
// prototypes converted to per-second units.
func DefaultParams() Params {
	return Params{
		Gravity:      1800,
		MaxFallSpeed: 900,
		RunSpeed:     180,
		Accel:        1500,
		Friction:     1800,
		AirControl:   0.6,
		JumpSpeed:    600,
		SwingGravity: -9,
		SwingPump:    4,
		SwingDamping: 0.55,
	}
}
