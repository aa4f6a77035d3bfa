package camera

import (
	"log"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// CutsceneSample is the interpolated view for one tick of a cutscene.
type CutsceneSample struct {
	Position rl.Vector3
	Target   rl.Vector3
	FOV      float32
	Frame    int
}

// CutscenePlayer walks a keyframe track at a fixed authored rate.
type CutscenePlayer struct {
	Time  float32
	Loops int
}

// Advance moves the player forward by deltaTime and samples the track. The
// fractional part of the running time blends frame i into i+1. When the
// next frame wraps to the start the player rewinds and reports looped.
// Bracketing frames further apart than hardCut on any axis are an authored
// cut and are not blended.
func (p *CutscenePlayer) Advance(cs *CutsceneData, deltaTime, fps, hardCut float32) (CutsceneSample, bool) {
	n := len(cs.Frames)
	if n == 0 {
		return CutsceneSample{}, false
	}

	p.Time += max(0, deltaTime) * fps
	whole := math32.Floor(p.Time)
	t := rl.Clamp(p.Time-whole, 0, 1)

	a := int(whole) % n
	b := (a + 1) % n
	looped := b < a
	if looped {
		p.Time = 0
		p.Loops++
	}

	fa, fb := cs.Frames[a], cs.Frames[b]
	var s CutsceneSample
	if hardCutBetween(fa.Position, fb.Position, hardCut) {
		s = CutsceneSample{Position: fa.Position, Target: fa.Target, FOV: fa.Degrees()}
	} else {
		s = CutsceneSample{
			Position: rl.Vector3Lerp(fa.Position, fb.Position, t),
			Target:   rl.Vector3Lerp(fa.Target, fb.Target, t),
			FOV:      rl.Lerp(fa.Degrees(), fb.Degrees(), t),
		}
	}
	s.Frame = a
	s.Position = rl.Vector3Transform(s.Position, cs.Transform)
	s.Target = rl.Vector3Transform(s.Target, cs.Transform)
	return s, looped
}

func hardCutBetween(a, b rl.Vector3, limit float32) bool {
	return math32.Abs(a.X-b.X) > limit ||
		math32.Abs(a.Y-b.Y) > limit ||
		math32.Abs(a.Z-b.Z) > limit
}

func (c *ViewController) updateCutscene(cs *Cutscene, deltaTime float32) {
	data := c.world.Cutscene()
	if data == nil {
		return
	}

	s, looped := cs.Player.Advance(data, deltaTime, c.cfg.CutsceneFPS, c.cfg.HardCut)
	if looped {
		log.Printf("Camera: cutscene looped (%d)", cs.Player.Loops)
		c.world.ResetCutscene()
		if c.audio != nil {
			c.audio.PlayTrack(data.Track, true)
		}
	}

	c.position = s.Position
	c.target = s.Target
	c.fov = s.FOV
	c.CheckRoom()

	c.viewInv = c.lookAtTransform()
	c.updateListener()
}
