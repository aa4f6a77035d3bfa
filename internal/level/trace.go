package level

import (
	"roomcam/internal/camera"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// wallMargin is how far short of a blocking wall a trace stops.
const wallMargin = 64

// probe is how far past an exit face the next room is searched for.
const probe = 1

// Trace walks the segment from..to through the room graph starting in
// fromRoom. Each step finds where the segment leaves the current room box
// (slab exit). If a linked room contains the point just past that face the
// walk continues there; otherwise the segment is clipped wallMargin units
// before the face. ok is false when from lies in no room.
func (l *Level) Trace(fromRoom int, from, to rl.Vector3) (rl.Vector3, int, bool) {
	room := fromRoom
	if !l.RoomContains(room, from) {
		if room = l.RoomAt(from); room == camera.NoRoom {
			return rl.Vector3{}, camera.NoRoom, false
		}
	}

	d := rl.Vector3Subtract(to, from)
	length := rl.Vector3Length(d)
	if length == 0 {
		return to, room, true
	}
	step := rl.Vector3Scale(d, probe/length)

	// enter is the parameter of the first point known to lie in room.
	var enter float32
	for hops := 0; hops <= len(l.rooms); hops++ {
		r := &l.rooms[room]
		t := r.Box.exit(from, d)
		if t >= 1 {
			return to, room, true
		}

		hit := rl.Vector3Add(from, rl.Vector3Scale(d, t))
		past := rl.Vector3Add(hit, step)
		next := camera.NoRoom
		for _, i := range r.links() {
			if l.rooms[i].Box.Contains(past) {
				next = i
				break
			}
		}
		if next == camera.NoRoom {
			return l.clip(from, d, t, enter, length), room, true
		}
		room = next
		enter = t + probe/length
	}

	// A cycle of rooms sharing the exit point; stop where we are.
	t := l.rooms[room].Box.exit(from, d)
	return l.clip(from, d, min(t, 1), enter, length), room, true
}

// clip backs t off the wall but never behind enter, so the point stays in
// the room the trace reports.
func (l *Level) clip(from, d rl.Vector3, t, enter, length float32) rl.Vector3 {
	t = max(enter, t-wallMargin/length)
	return rl.Vector3Add(from, rl.Vector3Scale(d, t))
}
