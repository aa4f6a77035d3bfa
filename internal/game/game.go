package game

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"roomcam/internal/audio"
	"roomcam/internal/camera"
	"roomcam/internal/character"
	"roomcam/internal/config"
	"roomcam/internal/frustum"
	"roomcam/internal/input"
	"roomcam/internal/level"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Options selects the level and tuning the demo runs with.
type Options struct {
	LevelPath  string
	ConfigPath string // empty for the stock tuning
	Width      int32
	Height     int32
	Cutscene   bool // open on the level's cutscene
}

type Game struct {
	Level  *level.Level
	Player *character.Character
	Camera *camera.ViewController
	Audio  *audio.Manager
	Cull   *frustum.Frustum
	Input  *input.Device

	DebugMode bool
	ShowPanel bool
	Paused    bool
	Stereo    bool
	Mirror    bool

	opts    Options
	cfg     camera.Config
	watcher *config.Watcher
	pending Actions
	capture int // fixed view overwritten by the capture action

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

// New loads the level and tuning and wires the camera to them. No window or
// audio device is opened until Run.
func New(opts Options) (*Game, error) {
	lvl, err := level.Load(opts.LevelPath)
	if err != nil {
		return nil, err
	}

	cfg := camera.DefaultConfig()
	if opts.ConfigPath != "" {
		if c, err := config.Load(opts.ConfigPath); err != nil {
			log.Printf("Config: %v, using defaults", err)
		} else {
			cfg = c
		}
	}

	g := &Game{
		Level:     lvl,
		Audio:     audio.NewManager(),
		Cull:      &frustum.Frustum{},
		Input:     input.NewDevice(),
		ShowPanel: true,
		opts:      opts,
		cfg:       cfg,
		pending:   NoActions(),
	}

	dir := filepath.Dir(opts.LevelPath)
	for _, t := range lvl.Tracks {
		g.Audio.AddTrack(filepath.Join(dir, t))
	}
	for _, m := range lvl.Markers {
		if m.Sound == "" {
			continue
		}
		id := g.Audio.LoadSound(filepath.Join(dir, m.Sound))
		pos := m.Pos
		g.Audio.Configure(id, func(s *audio.Source) {
			s.Position = pos
			s.Loop = true
		})
		g.Audio.Play(id)
	}

	g.Player = character.New(lvl, lvl.Start.Position, lvl.Start.Yaw, lvl.Start.Room)
	g.Player.SetPlayable(!opts.Cutscene)
	lvl.OnCutsceneReset.Subscribe(g.resetPlayer)

	g.Camera = camera.New(g.Player, lvl,
		camera.WithAudio(g.Audio),
		camera.WithCuller(g.Cull),
		camera.WithInput(g.Input),
		camera.WithConfig(cfg),
	)
	g.Camera.SetViewport(int(opts.Width), int(opts.Height))

	if opts.ConfigPath != "" {
		if w, err := config.NewWatcher(opts.ConfigPath); err != nil {
			log.Printf("Config: not watching %s: %v", opts.ConfigPath, err)
		} else {
			g.watcher = w
		}
	}

	log.Printf("Level: loaded %q, %d rooms, %d fixed views", lvl.Name, lvl.RoomCount(), lvl.FixedViewCount())
	return g, nil
}

func (g *Game) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable)
	rl.InitWindow(g.opts.Width, g.opts.Height, "roomcam")
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)

	g.Audio.Init()
	defer g.Close()

	initPanelStyle()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

// Close stops the config watcher and releases audio.
func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("Config: close watcher: %v", err)
		}
		g.watcher = nil
	}
	g.Audio.Close()
}

// Config is the tuning currently applied to the camera.
func (g *Game) Config() camera.Config { return g.cfg }

func (g *Game) Update() {
	updateStart := time.Now()

	act := ReadActions()
	act.Merge(g.pending)
	g.pending = NoActions()

	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.ShowPanel = !g.ShowPanel
	}

	g.Step(rl.GetFrameTime(), g.Input.Controls(), act)

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

// Step advances the demo by one tick without touching the window.
func (g *Game) Step(deltaTime float32, ctl character.Controls, act Actions) {
	g.applyConfig()
	g.apply(act)

	if !g.Paused {
		if g.Player.Playable() && g.Camera.Mode() != camera.ModeCutscene {
			g.Player.Update(deltaTime, ctl)
			if t, ok := g.Level.TriggerAt(g.Player.Pos); ok {
				g.Camera.ActivateFixedView(t.View, t.Hold, t.Speed)
			}
		}
		g.Camera.Update(deltaTime)
	}

	g.Audio.Update()
}

// applyConfig takes the newest tuning published by the watcher.
func (g *Game) applyConfig() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case cfg := <-g.watcher.Updates:
			g.SetConfig(cfg)
		case <-g.watcher.Errors:
			// already logged by the watcher
		default:
			return
		}
	}
}

func (g *Game) SetConfig(cfg camera.Config) {
	g.cfg = cfg
	g.Camera.SetConfig(cfg)
}

func (g *Game) apply(act Actions) {
	if act.FirstPerson {
		g.Camera.SwitchToFirstPerson(g.Camera.BaseMode() != camera.ModeFirstPerson)
	}
	if act.Combat {
		on := g.Camera.BaseMode() != camera.ModeCombat
		g.Camera.SetCombat(on)
		if on {
			if m := g.Level.NearestMarker(g.Player.Pos); m != nil {
				g.Player.Aim(m)
			}
		} else {
			g.Player.ClearAimTarget()
		}
	}
	if act.View >= 0 {
		g.Camera.ActivateFixedView(act.View, fixedViewHold, 0)
	}
	if act.Shake {
		g.Camera.Shake(shakeTime)
	}
	if act.LookAtMarker {
		if m := g.Level.NearestMarker(g.Player.Pos); m != nil {
			g.Camera.ForceLook(m, lookHold, 0)
		}
	}
	if act.Cutscene {
		g.toggleCutscene()
	}
	if act.Pause {
		g.Paused = !g.Paused
	}
	if act.Capture {
		g.captureView()
	}
	if act.Save {
		if err := g.Level.Save(g.opts.LevelPath); err != nil {
			log.Printf("Level: save failed: %v", err)
		} else {
			log.Printf("Level: saved %s", g.opts.LevelPath)
		}
	}
}

const (
	fixedViewHold = 3
	lookHold      = 2
	shakeTime     = 0.5
)

// toggleCutscene enters the level's cutscene, or leaves it by handing the
// player a fresh follow camera.
func (g *Game) toggleCutscene() {
	if g.Camera.Mode() == camera.ModeCutscene {
		g.Player.SetPlayable(true)
		g.resetPlayer()
		g.Camera = camera.New(g.Player, g.Level,
			camera.WithAudio(g.Audio),
			camera.WithCuller(g.Cull),
			camera.WithInput(g.Input),
			camera.WithConfig(g.cfg),
		)
		g.Camera.SetViewport(int(g.opts.Width), int(g.opts.Height))
		return
	}
	if g.Camera.StartCutscene() {
		g.Player.SetPlayable(false)
	}
}

// captureView moves the next fixed view to where the camera is now.
func (g *Game) captureView() {
	n := g.Level.FixedViewCount()
	if n == 0 {
		return
	}
	index := g.capture % n
	v := camera.FixedView{Position: g.Camera.Position(), Room: g.Camera.RoomIndex()}
	if g.Level.SetFixedView(index, v) {
		log.Printf("Camera: captured fixed view %d in room %d", index, v.Room)
		g.capture++
	}
}

func (g *Game) resetPlayer() {
	s := g.Level.Start
	g.Player.Pos, g.Player.Yaw, g.Player.Room = s.Position, s.Yaw, s.Room
}

// mirrorPlane is the floor of the camera's room as a reflection plane.
func (g *Game) mirrorPlane() *rl.Vector4 {
	room := g.Camera.RoomIndex()
	if room < 0 || room >= g.Level.RoomCount() {
		return nil
	}
	floor := float32(g.Level.Rooms()[room].YBottom)
	return &rl.Vector4{X: 0, Y: 1, Z: 0, W: -floor}
}

func (g *Game) Draw() {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	g.opts.Width, g.opts.Height = w, h

	if g.Mirror {
		g.Camera.SetReflectionPlane(g.mirrorPlane())
	} else {
		g.Camera.SetReflectionPlane(nil)
	}
	g.Camera.SetStereo(g.Stereo)

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	drawStart := time.Now()
	if g.Stereo {
		g.Camera.SetViewport(int(w/2), int(h))
		for i, eye := range []float32{-1, 1} {
			g.Input.SetEye(eye)
			rl.Viewport(int32(i)*w/2, 0, w/2, h)
			g.drawScene(g.Camera.Setup(true))
		}
		g.Input.SetEye(0)
		rl.Viewport(0, 0, int32(rl.GetRenderWidth()), int32(rl.GetRenderHeight()))
	} else {
		g.Camera.SetViewport(int(w), int(h))
		// A paused camera keeps rendering the last view.
		g.drawScene(g.Camera.Setup(!g.Paused))
	}
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) drawScene(f camera.Frame) {
	rl.BeginMode3D(rl.Camera3D{
		Position:   f.Eye,
		Target:     g.Camera.LookTarget(),
		Up:         rl.Vector3{X: 0, Y: -1, Z: 0},
		Fovy:       g.Camera.FOV(),
		Projection: rl.CameraPerspective,
	})
	rl.SetMatrixProjection(f.Projection)
	rl.SetMatrixModelview(f.View)

	for _, r := range g.Level.Rooms() {
		if !g.Cull.ContainsBox(r.Box.Min, r.Box.Max) {
			continue
		}
		center, size := r.Box.Center(), r.Box.Size()
		if r.Water {
			rl.DrawCubeV(center, size, rl.Fade(rl.SkyBlue, 0.15))
		}
		rl.DrawCubeWiresV(center, size, r.Color)
	}

	for _, m := range g.Level.Markers {
		if g.Cull.ContainsSphere(m.Pos, 64) {
			rl.DrawSphere(m.Pos, 64, rl.Gold)
		}
	}

	if g.DebugMode {
		for i := 0; i < g.Level.FixedViewCount(); i++ {
			v, _ := g.Level.FixedView(i)
			c := rl.Orange
			if i == g.Camera.FixedViewIndex() {
				c = rl.Red
			}
			rl.DrawCubeWiresV(v.Position, rl.Vector3{X: 128, Y: 128, Z: 128}, c)
		}
		for _, t := range g.Level.Triggers {
			rl.DrawCubeWiresV(t.Box.Center(), t.Box.Size(), rl.Fade(rl.Lime, 0.5))
		}
		rl.DrawLine3D(g.Camera.CandidateEye(), g.Camera.LookTarget(), rl.Magenta)
	}

	if g.Camera.BaseMode() != camera.ModeFirstPerson || g.Camera.Mode() == camera.ModeStatic {
		g.drawPlayer()
	}

	rl.EndMode3D()
}

func (g *Game) drawPlayer() {
	p := g.Player
	body := rl.Vector3{X: p.Pos.X, Y: p.Pos.Y - p.EyeHeight/2, Z: p.Pos.Z}
	rl.DrawCubeV(body, rl.Vector3{X: 256, Y: p.EyeHeight, Z: 256}, rl.Maroon)

	head := p.ViewPoint()
	if t := p.Facing(); t != nil {
		rl.DrawLine3D(head, t.Position(), rl.Yellow)
	} else {
		fwd := rl.Vector3{X: math32.Sin(p.Yaw) * 512, Z: math32.Cos(p.Yaw) * 512}
		rl.DrawLine3D(head, rl.Vector3Add(head, fwd), rl.Yellow)
	}
}

func (g *Game) DrawUI() {
	rl.DrawText("WASD move, Q/E turn, X evade, right mouse to look", 10, 10, 20, rl.LightGray)
	rl.DrawText("F first person, C combat, L look, 1-9 views, Space shake, Enter cutscene, Tab panel", 10, 35, 16, rl.LightGray)
	rl.DrawFPS(10, 60)

	st := g.Camera
	rl.DrawText(fmt.Sprintf("Mode: %s (%s)  Room: %d  FOV: %.0f", st.Mode(), st.BaseMode(), st.RoomIndex(), st.FOV()), 10, 85, 16, rl.Yellow)
	if t := st.TransitionTimer(); t >= 0 {
		rl.DrawText(fmt.Sprintf("Hold: %.2f s", t), 10, 105, 16, rl.Yellow)
	}
	if st.IsSubmerged() {
		rl.DrawText("Submerged", 10, 125, 16, rl.SkyBlue)
	}

	if g.DebugMode {
		rv := g.Audio.ReverbSize()
		rl.DrawText(fmt.Sprintf("Reverb: %.1f x %.1f x %.1f m", rv.X, rv.Y, rv.Z), 10, 150, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Culled: %d / %d", g.Cull.Culled, g.Cull.Tested), 10, 170, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Update: %.2f ms", g.updateMs), 10, 190, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Draw:   %.2f ms", g.drawMs), 10, 210, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Total:  %.2f ms", g.updateMs+g.drawMs), 10, 230, 16, rl.Lime)
	}

	if g.ShowPanel {
		g.pending.Merge(g.drawPanel())
	}
}
