package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type fakeTarget struct {
	pos rl.Vector3
}

func (t *fakeTarget) Position() rl.Vector3 { return t.pos }

type fakeOwner struct {
	pos      rl.Vector3
	angle    rl.Vector3
	stance   Stance
	evading  bool
	speed    float32
	room     int
	head     rl.Matrix
	playable bool

	aim        Target
	faced      Target
	faceCalls  int
	clearCalls int
}

func newFakeOwner() *fakeOwner {
	return &fakeOwner{playable: true, head: rl.MatrixIdentity()}
}

func (o *fakeOwner) Position() rl.Vector3 { return o.pos }
func (o *fakeOwner) Joint(j Joint) rl.Matrix { return o.head }
func (o *fakeOwner) Angle() rl.Vector3 { return o.angle }
func (o *fakeOwner) Stance() Stance { return o.stance }
func (o *fakeOwner) Evading() bool { return o.evading }
func (o *fakeOwner) Speed() float32 { return o.speed }
func (o *fakeOwner) RoomIndex() int { return o.room }
func (o *fakeOwner) Playable() bool { return o.playable }

func (o *fakeOwner) ViewPoint() rl.Vector3 {
	return rl.Vector3{X: o.pos.X, Y: o.pos.Y - 512, Z: o.pos.Z}
}

func (o *fakeOwner) AimTarget() Target { return o.aim }

func (o *fakeOwner) ClearAimTarget() {
	o.aim = nil
	o.clearCalls++
}

func (o *fakeOwner) FaceTarget(t Target) {
	o.faced = t
	o.faceCalls++
}

type fakeWorld struct {
	rooms    []RoomInfo
	floors   map[int]FloorInfo
	contains map[int]func(p rl.Vector3) bool

	clip      float32
	traceRoom int
	traceFail bool
	traces    int
	lastFrom  rl.Vector3
	lastTo    rl.Vector3

	views    []FixedView
	cutscene *CutsceneData
	resets   int
}

func newFakeWorld(rooms int) *fakeWorld {
	w := &fakeWorld{
		floors:    make(map[int]FloorInfo),
		contains:  make(map[int]func(p rl.Vector3) bool),
		traceRoom: -1,
	}
	for i := 0; i < rooms; i++ {
		w.rooms = append(w.rooms, RoomInfo{XSectors: 4, ZSectors: 6, YTop: -4096, YBottom: 0})
	}
	return w
}

func (w *fakeWorld) FloorInfo(room int, x, y, z int) FloorInfo {
	if info, ok := w.floors[room]; ok {
		return info
	}
	return FloorInfo{Floor: NoLimit, Ceiling: NoLimit, Next: NoRoom, Above: NoRoom, Below: NoRoom}
}

func (w *fakeWorld) RoomContains(room int, p rl.Vector3) bool {
	if f, ok := w.contains[room]; ok {
		return f(p)
	}
	return false
}

func (w *fakeWorld) RoomCount() int { return len(w.rooms) }

func (w *fakeWorld) Room(room int) RoomInfo {
	if room < 0 || room >= len(w.rooms) {
		return RoomInfo{}
	}
	return w.rooms[room]
}

func (w *fakeWorld) Trace(fromRoom int, from, to rl.Vector3) (rl.Vector3, int, bool) {
	w.traces++
	w.lastFrom, w.lastTo = from, to
	if w.traceFail {
		return rl.Vector3{}, NoRoom, false
	}
	room := fromRoom
	if w.traceRoom >= 0 {
		room = w.traceRoom
	}
	if w.clip > 0 {
		d := rl.Vector3Subtract(to, from)
		if l := rl.Vector3Length(d); l > w.clip {
			return rl.Vector3Add(from, rl.Vector3Scale(d, w.clip/l)), room, true
		}
	}
	return to, room, true
}

func (w *fakeWorld) FixedView(index int) (FixedView, bool) {
	if index < 0 || index >= len(w.views) {
		return FixedView{}, false
	}
	return w.views[index], true
}

func (w *fakeWorld) Cutscene() *CutsceneData { return w.cutscene }
func (w *fakeWorld) ResetCutscene() { w.resets++ }

type fakeAudio struct {
	listener  rl.Matrix
	roomSize  rl.Vector3
	tracks    []int
	restarts  int
	listeners int
}

func (a *fakeAudio) SetListener(m rl.Matrix) {
	a.listener = m
	a.listeners++
}

func (a *fakeAudio) SetReverbRoomSize(size rl.Vector3) { a.roomSize = size }

func (a *fakeAudio) PlayTrack(track int, restart bool) {
	a.tracks = append(a.tracks, track)
	if restart {
		a.restarts++
	}
}

type fakeCuller struct {
	eye   rl.Vector3
	vp    rl.Matrix
	calls int
}

func (f *fakeCuller) SetView(eye rl.Vector3, vp rl.Matrix) {
	f.eye, f.vp = eye, vp
	f.calls++
}

// fakeInput replays one drag delta per tick from a queue.
type fakeInput struct {
	drags []rl.Vector2
	axis  rl.Vector2
	head  rl.Matrix
	eye   float32
}

func (in *fakeInput) Drag() (rl.Vector2, bool) {
	if len(in.drags) == 0 {
		return rl.Vector2{}, false
	}
	d := in.drags[0]
	in.drags = in.drags[1:]
	return d, true
}

func (in *fakeInput) LookAxis() rl.Vector2 { return in.axis }
func (in *fakeInput) HeadPose() rl.Matrix { return in.head }
func (in *fakeInput) Eye() float32 { return in.eye }

func nearVec(a, b rl.Vector3, eps float32) bool {
	return math32.Abs(a.X-b.X) <= eps && math32.Abs(a.Y-b.Y) <= eps && math32.Abs(a.Z-b.Z) <= eps
}

func nearly(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}
