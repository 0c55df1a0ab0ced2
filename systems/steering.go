package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dilemma/components"
	"github.com/pthm-cable/dilemma/config"
	"github.com/pthm-cable/dilemma/rng"
)

// Vec converts a position to a gonum vector.
func Vec(p components.Position) r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// WanderForce returns a random direction scaled by speed.
func WanderForce(src rng.Source, speed float64) r2.Vec {
	if speed == 0 {
		return r2.Vec{}
	}
	x, y := rng.UnitVector(src)
	return r2.Scale(speed, r2.Vec{X: x, Y: y})
}

// SeekForce points from pos toward target at the given speed.
func SeekForce(pos, target r2.Vec, speed float64) r2.Vec {
	return r2.Scale(speed, direction(r2.Sub(target, pos)))
}

// FleeForce points from threat away through pos at the given speed.
func FleeForce(pos, threat r2.Vec, speed float64) r2.Vec {
	return r2.Scale(speed, direction(r2.Sub(pos, threat)))
}

// Steer blends the velocity toward desired with an exponential filter whose
// rate is m.Smoothing per second, then caps the speed at m.MaxSpeed.
// A non-positive smoothing rate snaps straight to desired.
func Steer(vel *components.Velocity, desired r2.Vec, m *config.MovementConfig, dt float64) {
	if !finite(desired) {
		desired = r2.Vec{}
	}
	alpha := 1.0
	if m.Smoothing > 0 {
		alpha = 1 - math.Exp(-m.Smoothing*dt)
	}
	v := r2.Vec{X: vel.X, Y: vel.Y}
	v = r2.Add(v, r2.Scale(alpha, r2.Sub(desired, v)))

	if speed := r2.Norm(v); m.MaxSpeed > 0 && speed > m.MaxSpeed {
		v = r2.Scale(m.MaxSpeed/speed, v)
	}
	if !finite(v) {
		v = r2.Vec{}
	}
	vel.X, vel.Y = v.X, v.Y
}

// Integrate advances pos by vel over dt and reflects off the world edges.
// Crossing an edge clamps the position and turns that velocity axis inward.
func Integrate(pos *components.Position, vel *components.Velocity, width, height, dt float64) {
	pos.X += vel.X * dt
	pos.Y += vel.Y * dt

	if pos.X < 0 {
		pos.X = 0
		vel.X = math.Abs(vel.X)
	} else if pos.X > width {
		pos.X = max(width, 0)
		vel.X = -math.Abs(vel.X)
	}
	if pos.Y < 0 {
		pos.Y = 0
		vel.Y = math.Abs(vel.Y)
	} else if pos.Y > height {
		pos.Y = max(height, 0)
		vel.Y = -math.Abs(vel.Y)
	}
}

// ClampToWorld keeps a spawn point inside the world rectangle.
func ClampToWorld(x, y, width, height float64) (float64, float64) {
	return clampFloat(x, 0, max(width, 0)), clampFloat(y, 0, max(height, 0))
}
