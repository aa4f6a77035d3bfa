package level

import (
	"log"

	"roomcam/internal/camera"
	"roomcam/internal/event"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// sector is the edge length of one floor sector in level units.
const sector = 1024

// Room is one axis-aligned room box in the level graph.
type Room struct {
	Index int
	Box   AABB

	XSectors, ZSectors int
	YTop, YBottom      int32

	Water       bool
	OpenCeiling bool
	OpenFloor   bool

	Above    []int
	Below    []int
	Adjacent []int

	Color rl.Color
}

// links returns every room reachable through an opening of r.
func (r *Room) links() []int {
	out := make([]int, 0, len(r.Adjacent)+len(r.Above)+len(r.Below))
	out = append(out, r.Adjacent...)
	out = append(out, r.Above...)
	return append(out, r.Below...)
}

type Start struct {
	Position rl.Vector3
	Yaw      float32 // radians
	Room     int
}

// Trigger activates a fixed view while the player stands inside Box.
type Trigger struct {
	Box   AABB
	View  int
	Hold  float32
	Speed float32
}

// Marker is a named point of interest the camera can be forced to look at.
type Marker struct {
	Name  string
	Pos   rl.Vector3
	Sound string // optional looping ambience, relative to the level file
}

func (m *Marker) Position() rl.Vector3 { return m.Pos }

// Level is the runtime room graph. It satisfies camera.World.
type Level struct {
	Name     string
	Start    Start
	Triggers []Trigger
	Markers  []*Marker
	Tracks   []string

	// OnCutsceneReset fires each time the cutscene wraps to its first frame.
	OnCutsceneReset event.Signal

	rooms    []Room
	views    []camera.FixedView
	cutscene *camera.CutsceneData
	file     LevelFile
}

var _ camera.World = (*Level)(nil)

func (l *Level) validRoom(room int) bool {
	return room >= 0 && room < len(l.rooms)
}

// Rooms returns the room list for drawing.
func (l *Level) Rooms() []Room { return l.rooms }

func (l *Level) RoomCount() int { return len(l.rooms) }

func (l *Level) Room(room int) camera.RoomInfo {
	if !l.validRoom(room) {
		return camera.RoomInfo{}
	}
	r := &l.rooms[room]
	return camera.RoomInfo{
		Water:    r.Water,
		XSectors: r.XSectors,
		ZSectors: r.ZSectors,
		YTop:     r.YTop,
		YBottom:  r.YBottom,
	}
}

func (l *Level) RoomContains(room int, p rl.Vector3) bool {
	return l.validRoom(room) && l.rooms[room].Box.Contains(p)
}

// RoomAt returns the first room containing p, or camera.NoRoom.
func (l *Level) RoomAt(p rl.Vector3) int {
	for i := range l.rooms {
		if l.rooms[i].Box.Contains(p) {
			return i
		}
	}
	return camera.NoRoom
}

// FloorInfo reports the vertical bounds of room at (x, z). Open ceilings and
// floors report camera.NoLimit. Next names an adjacent room when (x, z) has
// left the room's footprint; Above and Below name the linked room over or
// under (x, z), if any.
func (l *Level) FloorInfo(room int, x, y, z int) camera.FloorInfo {
	info := camera.FloorInfo{
		Floor:   camera.NoLimit,
		Ceiling: camera.NoLimit,
		Next:    camera.NoRoom,
		Above:   camera.NoRoom,
		Below:   camera.NoRoom,
	}
	if !l.validRoom(room) {
		return info
	}

	r := &l.rooms[room]
	fx, fz := float32(x), float32(z)

	if !r.Box.ContainsXZ(fx, fz) {
		if next := l.linkAtXZ(r.Adjacent, fx, fz); next != camera.NoRoom {
			info.Next = next
			r = &l.rooms[next]
		}
	}

	if !r.OpenCeiling {
		info.Ceiling = r.YTop
	}
	if !r.OpenFloor {
		info.Floor = r.YBottom
	}
	info.Above = l.linkAtXZ(r.Above, fx, fz)
	info.Below = l.linkAtXZ(r.Below, fx, fz)
	return info
}

func (l *Level) linkAtXZ(links []int, x, z float32) int {
	for _, i := range links {
		if l.rooms[i].Box.ContainsXZ(x, z) {
			return i
		}
	}
	return camera.NoRoom
}

func (l *Level) FixedView(index int) (camera.FixedView, bool) {
	if index < 0 || index >= len(l.views) {
		return camera.FixedView{}, false
	}
	return l.views[index], true
}

func (l *Level) FixedViewCount() int { return len(l.views) }

// SetFixedView moves an existing view, e.g. to capture the current eye.
func (l *Level) SetFixedView(index int, v camera.FixedView) bool {
	if index < 0 || index >= len(l.views) || !l.validRoom(v.Room) {
		return false
	}
	l.views[index] = v
	return true
}

func (l *Level) Cutscene() *camera.CutsceneData { return l.cutscene }

func (l *Level) ResetCutscene() {
	log.Printf("Level: cutscene reset (%d listeners)", l.OnCutsceneReset.Len())
	l.OnCutsceneReset.Emit()
}

// TriggerAt returns the first trigger containing p.
func (l *Level) TriggerAt(p rl.Vector3) (Trigger, bool) {
	for _, t := range l.Triggers {
		if t.Box.Contains(p) {
			return t, true
		}
	}
	return Trigger{}, false
}

// NearestMarker returns the marker closest to p, or nil when there are none.
func (l *Level) NearestMarker(p rl.Vector3) *Marker {
	var best *Marker
	bestDist := float32(0)
	for _, m := range l.Markers {
		d := rl.Vector3LengthSqr(rl.Vector3Subtract(p, m.Pos))
		if best == nil || d < bestDist {
			best, bestDist = m, d
		}
	}
	return best
}
