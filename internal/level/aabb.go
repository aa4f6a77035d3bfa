package level

import rl "github.com/gen2brain/raylib-go/raylib"

// AABB is an axis-aligned box. Rooms, triggers and trace slabs all use it.
type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

func (a AABB) Contains(p rl.Vector3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// ContainsXZ tests the horizontal footprint only.
func (a AABB) ContainsXZ(x, z float32) bool {
	return x >= a.Min.X && x <= a.Max.X && z >= a.Min.Z && z <= a.Max.Z
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

func (a AABB) Size() rl.Vector3 {
	return rl.Vector3Subtract(a.Max, a.Min)
}

// exit returns the segment parameter at which from + d*t leaves the box.
// Only the faces the segment travels toward are considered, so from may lie
// slightly outside on the trailing side.
func (a AABB) exit(from, d rl.Vector3) float32 {
	t := float32(1e30)
	t = min(t, slabExit(from.X, d.X, a.Min.X, a.Max.X))
	t = min(t, slabExit(from.Y, d.Y, a.Min.Y, a.Max.Y))
	t = min(t, slabExit(from.Z, d.Z, a.Min.Z, a.Max.Z))
	return t
}

func slabExit(o, d, lo, hi float32) float32 {
	switch {
	case d > 0:
		return (hi - o) / d
	case d < 0:
		return (lo - o) / d
	}
	return 1e30
}
