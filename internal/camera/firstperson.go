package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// updateFirstPerson builds the view directly from the owner's head joint,
// bypassing the follow model.
func (c *ViewController) updateFirstPerson() {
	head := c.owner.Joint(JointHead)
	off := c.cfg.EyeOffset

	m := rl.MatrixMultiply(rl.MatrixTranslate(off.X, off.Y, off.Z), head)
	m = rl.MatrixMultiply(rl.MatrixRotateY(c.lookAround.Y), m)
	m = rl.MatrixMultiply(rl.MatrixRotateX(c.lookAround.X+math32.Pi), m)
	if c.stereo {
		m = rl.MatrixMultiply(c.input.HeadPose(), m)
	}

	c.viewInv = m
	c.position = translation(m)
	c.CheckRoom()
	c.updateListener()
}

func translation(m rl.Matrix) rl.Vector3 {
	return rl.Vector3{X: m.M12, Y: m.M13, Z: m.M14}
}
