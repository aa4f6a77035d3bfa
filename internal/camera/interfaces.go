package camera

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	// NoRoom marks a missing room link in FloorInfo.
	NoRoom = -1
	// NoLimit is the floor/ceiling value meaning the room is unbounded in
	// that direction. It is never a real bound and must not be clamped to.
	NoLimit int32 = -32512
)

// Stance is the owner's coarse locomotion medium.
type Stance int

const (
	StanceGround Stance = iota
	StanceAir
	StanceHang
	StanceOnWater
	StanceUnderwater
)

// Joint names a bone in the owner's animation pose.
type Joint int

const (
	JointHips Joint = iota
	JointChest
	JointHead
)

// Target is anything the camera can be forced to face.
type Target interface {
	Position() rl.Vector3
}

// Jointed is implemented by targets that expose world-space bone transforms.
type Jointed interface {
	Joint(j Joint) rl.Matrix
}

// Owner is the controllable character the camera follows.
type Owner interface {
	Target
	Jointed

	// Angle returns pitch, yaw and roll in radians.
	Angle() rl.Vector3
	Stance() Stance
	// Evading reports the evasive locomotion state (a backward jump) during
	// which the camera swings sideways instead of trailing behind.
	Evading() bool
	Speed() float32
	ViewPoint() rl.Vector3
	RoomIndex() int

	AimTarget() Target
	ClearAimTarget()
	// FaceTarget asks the owner to turn its head toward t; nil clears it.
	FaceTarget(t Target)
	Playable() bool
}

// FloorInfo describes the vertical bounds and links of a room at a point.
type FloorInfo struct {
	Floor   int32
	Ceiling int32
	Next    int
	Above   int
	Below   int
}

// RoomInfo is the per-room data the camera needs for audio and water checks.
type RoomInfo struct {
	Water    bool
	XSectors int
	ZSectors int
	YTop     int32
	YBottom  int32
}

// FixedView is an authored trigger viewpoint.
type FixedView struct {
	Position rl.Vector3
	Room     int
}

// CameraFrame is one cutscene keyframe. FOV is quantized so that 32767 is
// 120 degrees.
type CameraFrame struct {
	Position rl.Vector3
	Target   rl.Vector3
	FOV      int16
}

// Degrees returns the frame's field of view in degrees.
func (f CameraFrame) Degrees() float32 {
	return float32(f.FOV) / 32767.0 * 120.0
}

// CutsceneData is the keyframe track authored for a level.
type CutsceneData struct {
	Frames    []CameraFrame
	Transform rl.Matrix
	Room      int
	Track     int
}

// World is the level representation the camera queries every tick.
type World interface {
	FloorInfo(room int, x, y, z int) FloorInfo
	RoomContains(room int, p rl.Vector3) bool
	RoomCount() int
	Room(room int) RoomInfo
	// Trace walks from..to through the room graph starting in fromRoom and
	// returns the first point clipped by geometry and the room it lies in.
	// ok is false when fromRoom is unknown or from lies outside it.
	Trace(fromRoom int, from, to rl.Vector3) (p rl.Vector3, room int, ok bool)
	FixedView(index int) (FixedView, bool)
	Cutscene() *CutsceneData
	ResetCutscene()
}

// AudioSink receives the listener state each tick.
type AudioSink interface {
	SetListener(transform rl.Matrix)
	SetReverbRoomSize(size rl.Vector3)
	PlayTrack(track int, restart bool)
}

// Culler receives the eye position and view-projection matrix after setup.
type Culler interface {
	SetView(eye rl.Vector3, viewProj rl.Matrix)
}

// Input is the raw look-around input for one tick.
type Input interface {
	// Drag returns the pointer movement since the previous call and whether
	// the drag button is held.
	Drag() (rl.Vector2, bool)
	LookAxis() rl.Vector2
	HeadPose() rl.Matrix
	// Eye is -1 or 1 while rendering a stereo eye, 0 otherwise.
	Eye() float32
}
