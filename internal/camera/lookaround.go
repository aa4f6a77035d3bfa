package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// lookAroundSnap is the offset below which re-centering snaps to zero.
const lookAroundSnap = 1e-3

// updateLookAround accumulates user look offsets and re-centers them once
// the idle timer runs out.
//
// idleTimer < 0 is disarmed (input was just given), > 0 counts down toward
// re-centering, and 0 re-centers.
func (c *ViewController) updateLookAround(deltaTime float32) {
	prev := c.lookAround

	delta, dragging := c.input.Drag()
	if dragging {
		c.lookAround.X -= delta.Y * c.cfg.DragSensitivity
		c.lookAround.Y += delta.X * c.cfg.DragSensitivity
	}

	axis := c.input.LookAxis()
	c.lookAround.X -= axis.Y * c.cfg.StickSpeed * deltaTime
	c.lookAround.Y += axis.X * c.cfg.StickSpeed * deltaTime

	if prev == c.lookAround {
		if c.idleTimer > 0 {
			c.idleTimer = max(0, c.idleTimer-deltaTime)
		}
	} else {
		c.idleTimer = -c.cfg.IdleRearm
	}

	if c.owner.Speed() != 0 && c.idleTimer < 0 && !dragging {
		c.idleTimer = -c.idleTimer
	}

	if c.idleTimer == 0 && c.lookAround != (rl.Vector2{}) {
		t := blend(c.cfg.RecenterRate, deltaTime)
		c.lookAround.X = recenter(c.lookAround.X, t)
		c.lookAround.Y = recenter(c.lookAround.Y, t)
	}
}

func recenter(a, t float32) float32 {
	a = rl.Lerp(clampAngle(a), 0, t)
	if math32.Abs(a) < lookAroundSnap {
		return 0
	}
	return a
}

// updateAngle combines the owner's facing with the look offsets and the
// stance pitch bias. Roll is always zero.
func (c *ViewController) updateAngle() {
	a := c.owner.Angle()
	c.angle = rl.Vector3{
		X: a.X + c.lookAround.X,
		Y: a.Y + c.lookAround.Y,
	}

	switch c.owner.Stance() {
	case StanceOnWater:
		c.angle.X -= c.cfg.OnWaterPitch * rl.Deg2rad
	case StanceHang:
		c.angle.X -= c.cfg.HangPitch * rl.Deg2rad
	}
}

// clampAngle wraps a into [-pi, pi).
func clampAngle(a float32) float32 {
	a = math32.Mod(a+math32.Pi, 2*math32.Pi)
	if a < 0 {
		a += 2 * math32.Pi
	}
	return a - math32.Pi
}
