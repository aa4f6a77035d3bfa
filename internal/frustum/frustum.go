package frustum

import (
	"roomcam/internal/camera"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Frustum holds the six clip planes of the current view for culling.
// It is fed by the camera after each setup.
type Frustum struct {
	planes [6]Plane // left, right, bottom, top, near, far
	eye    rl.Vector3

	// Tested and Culled count box queries since the last SetView.
	Tested int
	Culled int
}

// Plane is ax + by + cz + d = 0 with a unit normal pointing inward.
type Plane struct {
	Normal   rl.Vector3
	Distance float32
}

var _ camera.Culler = (*Frustum)(nil)

// SetView rebuilds the planes from a view-projection matrix.
func (f *Frustum) SetView(eye rl.Vector3, viewProj rl.Matrix) {
	f.planes = extract(viewProj)
	f.eye = eye
	f.Tested, f.Culled = 0, 0
}

func (f *Frustum) Eye() rl.Vector3 { return f.eye }

// extract applies the Gribb/Hartmann method: each plane is row 4 of the
// view-projection matrix plus or minus one of rows 1..3.
func extract(vp rl.Matrix) [6]Plane {
	row := func(sign float32, x, y, z, w float32) Plane {
		return normalize(Plane{
			Normal:   rl.Vector3{X: vp.M3 + sign*x, Y: vp.M7 + sign*y, Z: vp.M11 + sign*z},
			Distance: vp.M15 + sign*w,
		})
	}
	return [6]Plane{
		row(1, vp.M0, vp.M4, vp.M8, vp.M12),
		row(-1, vp.M0, vp.M4, vp.M8, vp.M12),
		row(1, vp.M1, vp.M5, vp.M9, vp.M13),
		row(-1, vp.M1, vp.M5, vp.M9, vp.M13),
		row(1, vp.M2, vp.M6, vp.M10, vp.M14),
		row(-1, vp.M2, vp.M6, vp.M10, vp.M14),
	}
}

func normalize(p Plane) Plane {
	length := rl.Vector3Length(p.Normal)
	if length == 0 {
		return p
	}
	return Plane{
		Normal:   rl.Vector3Scale(p.Normal, 1/length),
		Distance: p.Distance / length,
	}
}

func (p Plane) distance(point rl.Vector3) float32 {
	return rl.Vector3DotProduct(p.Normal, point) + p.Distance
}

// ContainsSphere reports whether the sphere is inside or intersects the
// frustum.
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for i := range f.planes {
		if f.planes[i].distance(center) < -radius {
			return false
		}
	}
	return true
}

func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	return f.ContainsSphere(point, 0)
}

// ContainsBox tests an axis-aligned box using the vertex furthest along each
// plane normal. It may report a box near a frustum corner as visible.
func (f *Frustum) ContainsBox(min, max rl.Vector3) bool {
	f.Tested++
	for i := range f.planes {
		n := f.planes[i].Normal
		v := min
		if n.X >= 0 {
			v.X = max.X
		}
		if n.Y >= 0 {
			v.Y = max.Y
		}
		if n.Z >= 0 {
			v.Z = max.Z
		}
		if f.planes[i].distance(v) < 0 {
			f.Culled++
			return false
		}
	}
	return true
}
