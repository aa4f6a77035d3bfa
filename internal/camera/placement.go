package camera

import rl "github.com/gen2brain/raylib-go/raylib"

// placement is the outcome of one occlusion query.
type placement struct {
	Eye      rl.Vector3
	Room     int
	Fallback rl.Vector3
	OK       bool
}

// place traces from target toward the desired eye point and clips it at the
// first obstruction. The general policy stands off behind target along dir
// and refreshes the fallback; the evasive policy swings sideways from the
// previous fallback and leaves it untouched.
func place(w World, cfg Config, fromRoom int, target, dir, fallback rl.Vector3, evasive bool) placement {
	if evasive {
		side := rl.Vector3Normalize(rl.Vector3CrossProduct(dir, rl.Vector3{X: 0, Y: 1, Z: 0}))
		desired := rl.Vector3Add(fallback, rl.Vector3Scale(side, cfg.EvadeSide))
		desired.Y -= cfg.EvadeLift
		eye, room, ok := w.Trace(fromRoom, target, desired)
		return placement{Eye: eye, Room: room, Fallback: fallback, OK: ok}
	}

	desired := rl.Vector3Subtract(target, rl.Vector3Scale(dir, cfg.Standoff))
	eye, room, ok := w.Trace(fromRoom, target, desired)
	if !ok {
		return placement{Fallback: fallback}
	}
	return placement{Eye: eye, Room: room, Fallback: eye, OK: true}
}

// CheckRoom refines the room the view occupies from its current position.
// Outside cutscenes it follows floor/ceiling links and clamps the position
// vertically where the room has no neighbour. During a cutscene it scans
// every room for containment since authored paths ignore adjacency.
func (c *ViewController) CheckRoom() {
	if _, ok := c.state.(*Cutscene); ok {
		for i := 0; i < c.world.RoomCount(); i++ {
			if c.world.RoomContains(i, c.position) {
				c.room = i
				break
			}
		}
		return
	}

	c.room, c.position = resolveRoom(c.world, c.RoomIndex(), c.position)
}

// resolveRoom applies one floor/ceiling query to pos.
func resolveRoom(w World, room int, pos rl.Vector3) (int, rl.Vector3) {
	info := w.FloorInfo(room, int(pos.X), int(pos.Y), int(pos.Z))

	if info.Next != NoRoom {
		room = info.Next
	}

	if pos.Y < float32(info.Ceiling) {
		if info.Above != NoRoom {
			room = info.Above
		} else if info.Ceiling != NoLimit {
			pos.Y = float32(info.Ceiling)
		}
	}

	if pos.Y > float32(info.Floor) {
		if info.Below != NoRoom {
			room = info.Below
		} else if info.Floor != NoLimit {
			pos.Y = float32(info.Floor)
		}
	}

	return room, pos
}
