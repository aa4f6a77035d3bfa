package camera

import (
	"log"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// worldUp is the look-at up axis. The level's Y axis points down.
var worldUp = rl.Vector3{X: 0, Y: -1, Z: 0}

// ViewController positions the view that follows an owner through the room
// graph. It is driven once per tick by Update and then Setup.
type ViewController struct {
	owner  Owner
	world  World
	audio  AudioSink
	culler Culler
	input  Input
	cfg    Config

	state    State
	lastView int

	position rl.Vector3
	target   rl.Vector3
	eye      rl.Vector3
	fallback rl.Vector3

	angle      rl.Vector3
	lookAround rl.Vector2
	idleTimer  float32

	room int

	fov, near, far float32
	viewInv        rl.Matrix

	reflection *rl.Vector4
	shake      float32
	stereo     bool
	aspect     float32

	frame Frame
}

// Option configures a ViewController.
type Option func(*ViewController)

func WithAudio(a AudioSink) Option { return func(c *ViewController) { c.audio = a } }
func WithCuller(f Culler) Option { return func(c *ViewController) { c.culler = f } }
func WithInput(in Input) Option { return func(c *ViewController) { c.input = in } }
func WithConfig(cfg Config) Option { return func(c *ViewController) { c.cfg = cfg } }

// New creates the camera for owner. A non-playable owner in a level that has
// cutscene keyframes starts the cutscene immediately.
func New(owner Owner, world World, opts ...Option) *ViewController {
	c := &ViewController{
		owner:    owner,
		world:    world,
		input:    noInput{},
		cfg:      DefaultConfig(),
		state:    Follow{},
		lastView: -1,
		aspect:   16.0 / 9.0,
		viewInv:  rl.MatrixIdentity(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.changeView(false)
	if !owner.Playable() {
		c.StartCutscene()
	}
	c.idleTimer = -c.cfg.IdleRearm
	return c
}

// Update advances the camera by deltaTime seconds.
func (c *ViewController) Update(deltaTime float32) {
	if c.shake > 0 {
		c.shake = max(0, c.shake-deltaTime)
	}

	if cs, ok := c.state.(*Cutscene); ok {
		c.updateCutscene(cs, deltaTime)
		return
	}

	c.updateLookAround(deltaTime)
	c.updateAngle()

	lookAt := c.faceTarget()
	viewPoint := c.ViewpointOfInterest()
	c.tickTransition(deltaTime, viewPoint)

	if _, static := c.state.(*Static); !static && base(c.state).Mode() == ModeFirstPerson {
		c.updateFirstPerson()
		return
	}

	rate := c.cfg.FollowRate
	if lookAt != nil {
		rate = c.cfg.LookRate
	}
	if lk, ok := c.state.(*Look); ok && lk.Speed > 0 {
		rate = lk.Speed
	}
	c.target = rl.Vector3Lerp(c.target, viewPoint, blend(rate, deltaTime))

	if st, ok := c.state.(*Static); ok {
		if fv, ok := c.world.FixedView(st.View); ok {
			c.eye = fv.Position
			if c.room != fv.Room {
				c.position = fv.Position
			}
		}
		if lookAt != nil {
			c.target = lookAt.Position()
		}
		if st.Speed > 0 {
			rate = st.Speed
		}
		c.position = rl.Vector3Lerp(c.position, c.eye, blend(rate, deltaTime))
	} else {
		dir := c.facing(lookAt)
		evasive := !c.inCombat() && c.owner.Evading() && lookAt == nil
		p := place(c.world, c.cfg, c.owner.RoomIndex(), c.target, dir, c.fallback, evasive)
		if p.OK {
			c.eye = p.Eye
			c.fallback = p.Fallback
			if c.validRoom(p.Room) {
				c.room = p.Room
			}
		}
		c.position = rl.Vector3Lerp(c.position, c.eye, blend(rate, deltaTime))
		c.CheckRoom()
	}

	c.viewInv = c.lookAtTransform()
	c.updateListener()
}

// faceTarget resolves the target the camera must face this tick and tells
// the owner to turn toward it.
func (c *ViewController) faceTarget() Target {
	switch st := c.state.(type) {
	case *Static:
		c.owner.FaceTarget(nil)
		return st.Target
	case *Look:
		t := c.owner.AimTarget()
		if t == nil {
			t = st.Target
		}
		c.owner.FaceTarget(t)
		return t
	}
	t := c.owner.AimTarget()
	c.owner.FaceTarget(t)
	return t
}

// tickTransition counts down Static and Look and resumes the base mode on
// expiry.
func (c *ViewController) tickTransition(deltaTime float32, viewPoint rl.Vector3) {
	var timer *float32
	switch st := c.state.(type) {
	case *Static:
		timer = &st.Timer
	case *Look:
		timer = &st.Timer
	default:
		return
	}

	*timer -= deltaTime
	if *timer > 0 {
		return
	}

	crossed := false
	if st, ok := c.state.(*Static); ok {
		if fv, ok := c.world.FixedView(st.View); ok {
			crossed = fv.Room != st.fromRoom
		}
	}

	c.setState(base(c.state))
	c.owner.ClearAimTarget()
	c.lastView = -1
	c.target = viewPoint
	if crossed {
		c.position = c.fallback
	}
}

func (c *ViewController) facing(lookAt Target) rl.Vector3 {
	if lookAt != nil {
		return rl.Vector3Normalize(rl.Vector3Subtract(lookAt.Position(), c.target))
	}
	return direction(c.angle)
}

func (c *ViewController) lookAtTransform() rl.Matrix {
	if rl.Vector3Distance(c.position, c.target) < 1e-3 {
		return c.viewInv
	}
	m := rl.MatrixInvert(rl.MatrixLookAt(c.position, c.target, worldUp))
	if c.stereo {
		m = rl.MatrixMultiply(c.input.HeadPose(), m)
	}
	return m
}

func (c *ViewController) updateListener() {
	if c.audio == nil {
		return
	}
	c.audio.SetListener(c.viewInv)

	r := c.world.Room(c.RoomIndex())
	h := (r.YBottom - r.YTop) / 1024
	size := rl.Vector3{X: float32(r.XSectors), Y: float32(h), Z: float32(r.ZSectors)}
	c.audio.SetReverbRoomSize(rl.Vector3Scale(size, c.cfg.ReverbScale))
}

// changeView re-seats the camera behind the owner and resets look-around
// and projection for the requested perspective.
func (c *ViewController) changeView(firstPerson bool) {
	c.room = c.owner.RoomIndex()
	back := rl.Vector3Scale(direction(c.owner.Angle()), c.cfg.SpawnOffset)
	c.position = rl.Vector3Subtract(c.owner.Position(), back)
	c.eye = c.position
	c.fallback = c.position
	c.target = c.ViewpointOfInterest()
	c.lookAround = rl.Vector2{}
	c.idleTimer = 0

	if firstPerson {
		c.fov, c.near = c.cfg.FirstPersonFOV, c.cfg.FirstPersonNear
	} else {
		c.fov, c.near = c.cfg.FOV, c.cfg.Near
	}
	c.far = c.cfg.Far
}

func (c *ViewController) setState(s State) {
	if c.state != nil && c.state.Mode() != s.Mode() {
		log.Printf("Camera: %s -> %s", c.state.Mode(), s.Mode())
	}
	c.state = s
}

func (c *ViewController) validRoom(room int) bool {
	return room >= 0 && room < c.world.RoomCount()
}

// ActivateFixedView cuts to the authored view index for hold seconds,
// blending at speed per second. Repeating the last activated index is a
// no-op until that view expires.
func (c *ViewController) ActivateFixedView(index int, hold, speed float32) {
	if index == c.lastView {
		return
	}
	if _, ok := c.state.(*Cutscene); ok {
		return
	}
	if _, ok := c.world.FixedView(index); !ok {
		return
	}
	c.lastView = index

	var target Target
	switch st := c.state.(type) {
	case *Static:
		st.View, st.Timer, st.Speed = index, hold, speed
		return
	case *Look:
		target = st.Target
	}

	c.fallback = c.position
	c.setState(&Static{
		View:     index,
		Target:   target,
		Timer:    hold,
		Speed:    speed,
		resume:   base(c.state),
		fromRoom: c.room,
	})
}

// ForceLook makes the camera face target for hold seconds. During a fixed
// view the target is attached to it instead.
func (c *ViewController) ForceLook(target Target, hold, speed float32) {
	if target == nil {
		return
	}
	switch st := c.state.(type) {
	case *Cutscene:
		return
	case *Static:
		st.Target = target
		return
	case *Look:
		st.Target, st.Timer, st.Speed = target, hold, speed
		return
	}
	c.setState(&Look{Target: target, Timer: hold, Speed: speed, resume: c.state})
}

// SetCombat switches between the Follow and Combat base modes.
func (c *ViewController) SetCombat(on bool) {
	var next State = Follow{}
	if on {
		next = Combat{}
	}
	switch st := c.state.(type) {
	case Follow, Combat:
		c.setState(next)
	case *Static:
		if st.resume.Mode() != ModeFirstPerson {
			st.resume = next
		}
	case *Look:
		if st.resume.Mode() != ModeFirstPerson {
			st.resume = next
		}
	}
}

// SwitchToFirstPerson toggles the first-person base mode.
func (c *ViewController) SwitchToFirstPerson(on bool) {
	if _, ok := c.state.(*Cutscene); ok {
		return
	}
	var next State = Follow{}
	if on {
		next = FirstPerson{}
	}
	switch st := c.state.(type) {
	case *Static:
		st.resume = next
	case *Look:
		st.resume = next
	default:
		c.setState(next)
	}
	c.changeView(on)
}

// StartCutscene switches to the level's keyframe track. It reports false
// when the level has none.
func (c *ViewController) StartCutscene() bool {
	cs := c.world.Cutscene()
	if cs == nil || len(cs.Frames) == 0 {
		return false
	}
	c.setState(&Cutscene{Player: &CutscenePlayer{}})
	c.lastView = -1
	if c.validRoom(cs.Room) {
		c.room = cs.Room
	}
	return true
}

// ViewpointOfInterest is the point the camera aims at: the owner's view
// point dropped unless submerged, and dropped again in combat.
func (c *ViewController) ViewpointOfInterest() rl.Vector3 {
	p := c.owner.ViewPoint()
	if c.owner.Stance() != StanceUnderwater {
		p.Y -= c.cfg.ViewDrop
	}
	if c.inCombat() {
		p.Y -= c.cfg.CombatDrop
	}
	return p
}

// inCombat reports whether combat framing applies. A forced look keeps the
// combat base; a fixed view does not.
func (c *ViewController) inCombat() bool {
	if _, static := c.state.(*Static); static || c.state == nil {
		return false
	}
	return base(c.state).Mode() == ModeCombat
}

// IsSubmerged reports whether the camera's room is flooded.
func (c *ViewController) IsSubmerged() bool {
	return c.world.Room(c.RoomIndex()).Water
}

// RoomIndex is the room the view is in. A fixed view reports its own room.
func (c *ViewController) RoomIndex() int {
	if st, ok := c.state.(*Static); ok {
		if fv, ok := c.world.FixedView(st.View); ok {
			return fv.Room
		}
	}
	return c.room
}

// FixedViewIndex returns the active fixed view, or -1.
func (c *ViewController) FixedViewIndex() int {
	if st, ok := c.state.(*Static); ok {
		return st.View
	}
	return -1
}

// TransitionTimer returns the remaining hold of a Static or Look state, or -1.
func (c *ViewController) TransitionTimer() float32 {
	switch st := c.state.(type) {
	case *Static:
		return st.Timer
	case *Look:
		return st.Timer
	}
	return -1
}

func (c *ViewController) State() State { return c.state }
func (c *ViewController) Mode() Mode { return c.state.Mode() }

// BaseMode is the untimed mode a fixed view or forced look returns to.
func (c *ViewController) BaseMode() Mode { return base(c.state).Mode() }

func (c *ViewController) Position() rl.Vector3 { return c.position }
func (c *ViewController) LookTarget() rl.Vector3 { return c.target }
func (c *ViewController) CandidateEye() rl.Vector3 { return c.eye }
func (c *ViewController) Fallback() rl.Vector3 { return c.fallback }
func (c *ViewController) Angle() rl.Vector3 { return c.angle }
func (c *ViewController) LookAround() rl.Vector2 { return c.lookAround }
func (c *ViewController) IdleTimer() float32 { return c.idleTimer }
func (c *ViewController) FOV() float32 { return c.fov }
func (c *ViewController) Near() float32 { return c.near }
func (c *ViewController) Far() float32 { return c.far }
func (c *ViewController) ViewInverse() rl.Matrix { return c.viewInv }
func (c *ViewController) ShakeMagnitude() float32 { return c.shake }

// Shake starts a vertical shake that decays over amount seconds.
func (c *ViewController) Shake(amount float32) {
	c.shake = max(c.shake, amount)
}

// SetReflectionPlane mirrors the rendered view through plane (a, b, c, d);
// nil disables it.
func (c *ViewController) SetReflectionPlane(plane *rl.Vector4) {
	c.reflection = plane
}

func (c *ViewController) SetStereo(on bool) {
	c.stereo = on
}

// SetViewport sets the aspect ratio used by the projection.
func (c *ViewController) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float32(width) / float32(height)
}

// SetConfig swaps the tuning. Projection parameters follow the current mode.
func (c *ViewController) SetConfig(cfg Config) {
	c.cfg = cfg
	switch c.state.(type) {
	case *Cutscene:
		c.near, c.far = cfg.Near, cfg.Far
	case FirstPerson:
		c.fov, c.near, c.far = cfg.FirstPersonFOV, cfg.FirstPersonNear, cfg.Far
	default:
		if base(c.state).Mode() == ModeFirstPerson {
			c.fov, c.near = cfg.FirstPersonFOV, cfg.FirstPersonNear
		} else {
			c.fov, c.near = cfg.FOV, cfg.Near
		}
		c.far = cfg.Far
	}
}

// direction converts pitch/yaw into a unit facing vector.
func direction(angle rl.Vector3) rl.Vector3 {
	sp, cp := math32.Sin(angle.X), math32.Cos(angle.X)
	sy, cy := math32.Sin(angle.Y), math32.Cos(angle.Y)
	return rl.Vector3{X: sy * cp, Y: -sp, Z: cy * cp}
}

// blend turns a per-second rate into a lerp factor clamped to [0, 1].
func blend(rate, deltaTime float32) float32 {
	return rl.Clamp(rate*deltaTime, 0, 1)
}

type noInput struct{}

func (noInput) Drag() (rl.Vector2, bool) { return rl.Vector2{}, false }
func (noInput) LookAxis() rl.Vector2 { return rl.Vector2{} }
func (noInput) HeadPose() rl.Matrix { return rl.MatrixIdentity() }
func (noInput) Eye() float32 { return 0 }
