package input

import (
	"roomcam/internal/camera"
	"roomcam/internal/character"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Device reads raylib mouse, keyboard and gamepad state. It implements the
// camera's look input and produces character controls.
type Device struct {
	DragButton rl.MouseButton
	Gamepad    int32
	DeadZone   float32

	eye float32
}

var _ camera.Input = (*Device)(nil)

func NewDevice() *Device {
	return &Device{
		DragButton: rl.MouseButtonRight,
		Gamepad:    0,
		DeadZone:   0.2,
	}
}

// Drag returns the mouse movement while the drag button is held.
func (d *Device) Drag() (rl.Vector2, bool) {
	if !rl.IsMouseButtonDown(d.DragButton) {
		return rl.Vector2{}, false
	}
	return rl.GetMouseDelta(), true
}

// LookAxis combines the right stick with the arrow keys.
func (d *Device) LookAxis() rl.Vector2 {
	var axis rl.Vector2
	if rl.IsGamepadAvailable(d.Gamepad) {
		axis = applyDeadZone(rl.Vector2{
			X: rl.GetGamepadAxisMovement(d.Gamepad, rl.GamepadAxisRightX),
			Y: rl.GetGamepadAxisMovement(d.Gamepad, rl.GamepadAxisRightY),
		}, d.DeadZone)
	}

	if rl.IsKeyDown(rl.KeyRight) {
		axis.X++
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		axis.X--
	}
	if rl.IsKeyDown(rl.KeyDown) {
		axis.Y++
	}
	if rl.IsKeyDown(rl.KeyUp) {
		axis.Y--
	}
	return rl.Vector2{X: rl.Clamp(axis.X, -1, 1), Y: rl.Clamp(axis.Y, -1, 1)}
}

// HeadPose is identity; there is no head-mounted display.
func (d *Device) HeadPose() rl.Matrix { return rl.MatrixIdentity() }

func (d *Device) Eye() float32 { return d.eye }

// SetEye selects the stereo eye being rendered: -1, 1, or 0 for mono.
func (d *Device) SetEye(eye float32) { d.eye = eye }

// Controls reads movement: WASD to walk and strafe, Q/E or the left stick
// to turn, X for a backward jump.
func (d *Device) Controls() character.Controls {
	var c character.Controls
	if rl.IsKeyDown(rl.KeyW) {
		c.Forward++
	}
	if rl.IsKeyDown(rl.KeyS) {
		c.Forward--
	}
	if rl.IsKeyDown(rl.KeyD) {
		c.Strafe++
	}
	if rl.IsKeyDown(rl.KeyA) {
		c.Strafe--
	}
	if rl.IsKeyDown(rl.KeyE) {
		c.Turn++
	}
	if rl.IsKeyDown(rl.KeyQ) {
		c.Turn--
	}
	c.Evade = rl.IsKeyPressed(rl.KeyX)

	if rl.IsGamepadAvailable(d.Gamepad) {
		stick := applyDeadZone(rl.Vector2{
			X: rl.GetGamepadAxisMovement(d.Gamepad, rl.GamepadAxisLeftX),
			Y: rl.GetGamepadAxisMovement(d.Gamepad, rl.GamepadAxisLeftY),
		}, d.DeadZone)
		c.Turn += stick.X
		c.Forward -= stick.Y
		c.Evade = c.Evade || rl.IsGamepadButtonPressed(d.Gamepad, rl.GamepadButtonRightFaceRight)
	}

	c.Forward = rl.Clamp(c.Forward, -1, 1)
	c.Turn = rl.Clamp(c.Turn, -1, 1)
	return c
}

// applyDeadZone zeroes a stick inside radius dz and rescales the rest so
// output still spans the full range.
func applyDeadZone(v rl.Vector2, dz float32) rl.Vector2 {
	l := math32.Sqrt(v.X*v.X + v.Y*v.Y)
	if l <= dz || dz >= 1 {
		return rl.Vector2{}
	}
	scale := min(1, (l-dz)/(1-dz)) / l
	return rl.Vector2{X: v.X * scale, Y: v.Y * scale}
}
