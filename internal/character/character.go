package character

import (
	"roomcam/internal/camera"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// World is the room query surface the character walks on.
type World interface {
	RoomContains(room int, p rl.Vector3) bool
	FloorInfo(room int, x, y, z int) camera.FloorInfo
	Room(room int) camera.RoomInfo
}

// Controls is one tick of player intent. Axes are in [-1, 1].
type Controls struct {
	Forward float32
	Strafe  float32
	Turn    float32
	Evade   bool // backward jump
}

// Character is the demo avatar the camera follows. Pos is at the feet; Y
// grows downward so the head is at Pos.Y - EyeHeight.
type Character struct {
	Pos   rl.Vector3
	Yaw   float32 // radians
	Pitch float32
	Room  int

	MoveSpeed  float32
	TurnSpeed  float32
	EyeHeight  float32
	ViewHeight float32
	EvadeTime  float32

	world      World
	stance     camera.Stance
	evadeTimer float32
	speed      float32
	playable   bool

	aim   camera.Target
	faced camera.Target
}

var _ camera.Owner = (*Character)(nil)

func New(world World, pos rl.Vector3, yaw float32, room int) *Character {
	return &Character{
		Pos:        pos,
		Yaw:        yaw,
		Room:       room,
		MoveSpeed:  2048,
		TurnSpeed:  2.5,
		EyeHeight:  700,
		ViewHeight: 512,
		EvadeTime:  0.6,
		world:      world,
		playable:   true,
	}
}

// Update moves the character by one tick of input. Steps that would leave
// the current room into no linked room are blocked.
func (c *Character) Update(deltaTime float32, in Controls) {
	if deltaTime <= 0 {
		return
	}

	c.Yaw += in.Turn * c.TurnSpeed * deltaTime
	forward, right := c.directions()

	if in.Evade && c.evadeTimer <= 0 {
		c.evadeTimer = c.EvadeTime
	}

	var move rl.Vector3
	if c.evadeTimer > 0 {
		c.evadeTimer = max(0, c.evadeTimer-deltaTime)
		move = rl.Vector3Scale(forward, -1.5*c.MoveSpeed)
	} else {
		move = rl.Vector3Add(rl.Vector3Scale(forward, in.Forward), rl.Vector3Scale(right, in.Strafe))
		if l := rl.Vector3Length(move); l > 1 {
			move = rl.Vector3Scale(move, 1/l)
		}
		move = rl.Vector3Scale(move, c.MoveSpeed)
	}

	start := c.Pos
	next := rl.Vector3Add(c.Pos, rl.Vector3Scale(move, deltaTime))
	c.step(next)
	c.speed = rl.Vector3Distance(start, c.Pos) / deltaTime
	c.updateStance()
}

func (c *Character) step(next rl.Vector3) {
	room := c.Room
	if !c.world.RoomContains(room, next) {
		info := c.world.FloorInfo(room, int(next.X), int(next.Y), int(next.Z))
		if info.Next == camera.NoRoom {
			return
		}
		room = info.Next
	}

	info := c.world.FloorInfo(room, int(next.X), int(next.Y), int(next.Z))
	if info.Floor != camera.NoLimit {
		next.Y = float32(info.Floor)
	}
	c.Pos = next
	c.Room = room
}

func (c *Character) updateStance() {
	switch {
	case c.world.Room(c.Room).Water:
		c.stance = camera.StanceUnderwater
	case c.evadeTimer > 0:
		c.stance = camera.StanceAir
	default:
		c.stance = camera.StanceGround
	}
}

// directions returns the horizontal facing and right vectors for Yaw.
func (c *Character) directions() (forward, right rl.Vector3) {
	s, co := math32.Sin(c.Yaw), math32.Cos(c.Yaw)
	forward = rl.Vector3{X: s, Y: 0, Z: co}
	right = rl.Vector3{X: co, Y: 0, Z: -s}
	return
}

func (c *Character) Position() rl.Vector3 { return c.Pos }

func (c *Character) Angle() rl.Vector3 { return rl.Vector3{X: c.Pitch, Y: c.Yaw} }

func (c *Character) Stance() camera.Stance { return c.stance }

func (c *Character) Evading() bool { return c.evadeTimer > 0 }

func (c *Character) Speed() float32 { return c.speed }

func (c *Character) RoomIndex() int { return c.Room }

// ViewPoint is the chest point the follow camera aims at.
func (c *Character) ViewPoint() rl.Vector3 {
	return rl.Vector3{X: c.Pos.X, Y: c.Pos.Y - c.ViewHeight, Z: c.Pos.Z}
}

// Joint returns world-space bone transforms. Only the head is posed; hips
// and chest sit on the body axis.
func (c *Character) Joint(j camera.Joint) rl.Matrix {
	var h float32
	switch j {
	case camera.JointHead:
		h = c.EyeHeight
	case camera.JointChest:
		h = c.ViewHeight
	}
	return rl.MatrixMultiply(rl.MatrixRotateY(c.Yaw), rl.MatrixTranslate(c.Pos.X, c.Pos.Y-h, c.Pos.Z))
}

func (c *Character) AimTarget() camera.Target { return c.aim }

// Aim locks onto t until cleared.
func (c *Character) Aim(t camera.Target) { c.aim = t }

func (c *Character) ClearAimTarget() { c.aim = nil }

func (c *Character) FaceTarget(t camera.Target) { c.faced = t }

// Facing returns what the head is turned toward, or nil.
func (c *Character) Facing() camera.Target { return c.faced }

func (c *Character) Playable() bool { return c.playable }

func (c *Character) SetPlayable(on bool) { c.playable = on }
