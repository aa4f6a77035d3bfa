package level

import (
	"encoding/json"
	"fmt"
	"os"

	"roomcam/internal/camera"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// --- JSON types ---

type LevelFile struct {
	Name       string         `json:"name"`
	Start      StartDef       `json:"start"`
	Rooms      []RoomDef      `json:"rooms"`
	FixedViews []FixedViewDef `json:"fixedViews,omitempty"`
	Triggers   []TriggerDef   `json:"triggers,omitempty"`
	Markers    []MarkerDef    `json:"markers,omitempty"`
	Tracks     []string       `json:"tracks,omitempty"`
	Cutscene   *CutsceneDef   `json:"cutscene,omitempty"`
}

type StartDef struct {
	Position [3]float32 `json:"position"`
	Yaw      float32    `json:"yaw,omitempty"` // degrees
	Room     int        `json:"room"`
}

type RoomDef struct {
	Origin      [2]float32 `json:"origin"` // x, z of the first sector corner
	XSectors    int        `json:"xSectors"`
	ZSectors    int        `json:"zSectors"`
	YTop        int32      `json:"yTop"`
	YBottom     int32      `json:"yBottom"`
	Water       bool       `json:"water,omitempty"`
	OpenCeiling bool       `json:"openCeiling,omitempty"`
	OpenFloor   bool       `json:"openFloor,omitempty"`
	Above       []int      `json:"above,omitempty"`
	Below       []int      `json:"below,omitempty"`
	Adjacent    []int      `json:"adjacent,omitempty"`
	Color       string     `json:"color,omitempty"`
}

type FixedViewDef struct {
	Position [3]float32 `json:"position"`
	Room     int        `json:"room"`
}

type TriggerDef struct {
	Min   [3]float32 `json:"min"`
	Max   [3]float32 `json:"max"`
	View  int        `json:"view"`
	Hold  float32    `json:"hold"`
	Speed float32    `json:"speed,omitempty"`
}

type MarkerDef struct {
	Name     string     `json:"name"`
	Position [3]float32 `json:"position"`
	Sound    string     `json:"sound,omitempty"`
}

type CutsceneDef struct {
	Frames []FrameDef `json:"frames"`
	Origin [3]float32 `json:"origin"`
	Yaw    float32    `json:"yaw,omitempty"` // degrees
	Room   int        `json:"room"`
	Track  int        `json:"track"`
}

type FrameDef struct {
	Position [3]float32 `json:"position"`
	Target   [3]float32 `json:"target"`
	FOV      int16      `json:"fov"`
}

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Gold":      rl.Gold,
}

func lookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	return rl.LightGray
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func arr3(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// --- Loading ---

// Load reads and validates a level file.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", path, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("level: %s: %w", path, err)
	}
	return lvl, nil
}

// Parse builds a Level from JSON.
func Parse(data []byte) (*Level, error) {
	var lf LevelFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return FromFile(lf)
}

// FromFile validates lf and builds the runtime level.
func FromFile(lf LevelFile) (*Level, error) {
	if len(lf.Rooms) == 0 {
		return nil, fmt.Errorf("no rooms")
	}

	n := len(lf.Rooms)
	validRoom := func(i int) bool { return i >= 0 && i < n }

	l := &Level{Name: lf.Name, Tracks: lf.Tracks, file: lf}
	for i, def := range lf.Rooms {
		if def.XSectors <= 0 || def.ZSectors <= 0 {
			return nil, fmt.Errorf("room %d: sector counts must be positive", i)
		}
		if def.YTop >= def.YBottom {
			return nil, fmt.Errorf("room %d: yTop %d must be above yBottom %d", i, def.YTop, def.YBottom)
		}
		for _, links := range [][]int{def.Above, def.Below, def.Adjacent} {
			for _, j := range links {
				if !validRoom(j) || j == i {
					return nil, fmt.Errorf("room %d: bad link %d", i, j)
				}
			}
		}

		l.rooms = append(l.rooms, Room{
			Index: i,
			Box: AABB{
				Min: rl.Vector3{X: def.Origin[0], Y: float32(def.YTop), Z: def.Origin[1]},
				Max: rl.Vector3{
					X: def.Origin[0] + float32(def.XSectors)*sector,
					Y: float32(def.YBottom),
					Z: def.Origin[1] + float32(def.ZSectors)*sector,
				},
			},
			XSectors:    def.XSectors,
			ZSectors:    def.ZSectors,
			YTop:        def.YTop,
			YBottom:     def.YBottom,
			Water:       def.Water,
			OpenCeiling: def.OpenCeiling,
			OpenFloor:   def.OpenFloor,
			Above:       def.Above,
			Below:       def.Below,
			Adjacent:    def.Adjacent,
			Color:       lookupColor(def.Color),
		})
	}

	if !validRoom(lf.Start.Room) {
		return nil, fmt.Errorf("start: bad room %d", lf.Start.Room)
	}
	l.Start = Start{Position: vec3(lf.Start.Position), Yaw: lf.Start.Yaw * rl.Deg2rad, Room: lf.Start.Room}

	for i, def := range lf.FixedViews {
		if !validRoom(def.Room) {
			return nil, fmt.Errorf("fixed view %d: bad room %d", i, def.Room)
		}
		l.views = append(l.views, camera.FixedView{Position: vec3(def.Position), Room: def.Room})
	}

	for i, def := range lf.Triggers {
		if def.View < 0 || def.View >= len(l.views) {
			return nil, fmt.Errorf("trigger %d: bad view %d", i, def.View)
		}
		l.Triggers = append(l.Triggers, Trigger{
			Box:   AABB{Min: vec3(def.Min), Max: vec3(def.Max)},
			View:  def.View,
			Hold:  def.Hold,
			Speed: def.Speed,
		})
	}

	for _, def := range lf.Markers {
		l.Markers = append(l.Markers, &Marker{Name: def.Name, Pos: vec3(def.Position), Sound: def.Sound})
	}

	if cs := lf.Cutscene; cs != nil && len(cs.Frames) > 0 {
		if !validRoom(cs.Room) {
			return nil, fmt.Errorf("cutscene: bad room %d", cs.Room)
		}
		data := &camera.CutsceneData{
			Transform: rl.MatrixMultiply(rl.MatrixRotateY(cs.Yaw*rl.Deg2rad), rl.MatrixTranslate(cs.Origin[0], cs.Origin[1], cs.Origin[2])),
			Room:      cs.Room,
			Track:     cs.Track,
		}
		for _, f := range cs.Frames {
			data.Frames = append(data.Frames, camera.CameraFrame{
				Position: vec3(f.Position),
				Target:   vec3(f.Target),
				FOV:      f.FOV,
			})
		}
		l.cutscene = data
	}

	return l, nil
}

// --- Saving ---

// Save writes the level back in the form it was loaded, with fixed views
// reflecting any runtime edits.
func (l *Level) Save(path string) error {
	lf := l.file
	lf.FixedViews = lf.FixedViews[:0:0]
	for _, v := range l.views {
		lf.FixedViews = append(lf.FixedViews, FixedViewDef{Position: arr3(v.Position), Room: v.Room})
	}

	data, err := json.MarshalIndent(lf, "", "  ")
	if err != nil {
		return fmt.Errorf("level: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("level: write %s: %w", path, err)
	}
	return nil
}
