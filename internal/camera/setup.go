package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Frame is the render state produced by Setup.
type Frame struct {
	ViewInverse    rl.Matrix
	View           rl.Matrix
	Projection     rl.Matrix
	ViewProjection rl.Matrix
	Eye            rl.Vector3
}

// Setup produces the render state for this tick. With recompute false the
// previous view and projection are reused (e.g. for a shadow pass) and only
// the view-projection product, eye and culler are refreshed.
func (c *ViewController) Setup(recompute bool) Frame {
	if recompute {
		inv := c.viewInv
		if c.reflection != nil {
			inv = rl.MatrixMultiply(inv, reflectionMatrix(*c.reflection))
			inv = rl.MatrixMultiply(rl.MatrixScale(1, -1, 1), inv)
		}

		view := rl.MatrixInvert(inv)
		if c.shake > 0 {
			dy := math32.Sin(c.shake*math32.Pi*c.cfg.ShakeFrequency) * c.shake * c.cfg.ShakeAmplitude
			view = rl.MatrixMultiply(rl.MatrixTranslate(0, dy, 0), view)
		}
		if c.stereo {
			right := rl.Vector3{X: inv.M0, Y: inv.M1, Z: inv.M2}
			off := rl.Vector3Scale(right, -c.input.Eye()*c.cfg.EyeSeparation)
			view = rl.MatrixMultiply(rl.MatrixTranslate(off.X, off.Y, off.Z), view)
		}

		c.frame.ViewInverse = inv
		c.frame.View = view
		c.frame.Projection = c.Projection()
	}

	c.frame.ViewProjection = rl.MatrixMultiply(c.frame.View, c.frame.Projection)
	c.frame.Eye = translation(c.frame.ViewInverse)

	if c.culler != nil {
		c.culler.SetView(c.frame.Eye, c.frame.ViewProjection)
	}
	return c.frame
}

// Projection is the perspective matrix for the current field of view.
func (c *ViewController) Projection() rl.Matrix {
	return rl.MatrixPerspective(c.fov*rl.Deg2rad, c.aspect, c.near, c.far)
}

// reflectionMatrix mirrors points through the plane ax + by + cz + d = 0.
func reflectionMatrix(p rl.Vector4) rl.Matrix {
	a, b, c, d := p.X, p.Y, p.Z, p.W
	return rl.Matrix{
		M0: 1 - 2*a*a, M4: -2 * a * b, M8: -2 * a * c, M12: -2 * a * d,
		M1: -2 * b * a, M5: 1 - 2*b*b, M9: -2 * b * c, M13: -2 * b * d,
		M2: -2 * c * a, M6: -2 * c * b, M10: 1 - 2*c*c, M14: -2 * c * d,
		M3: 0, M7: 0, M11: 0, M15: 1,
	}
}
