package audio

import (
	"log"
	"sync"

	"roomcam/internal/camera"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Listener is the ear position and orientation taken from the camera.
type Listener struct {
	Position rl.Vector3
	Forward  rl.Vector3
	Right    rl.Vector3
}

// Source is a positioned sound in the world.
type Source struct {
	ID          uint64
	Path        string
	Position    rl.Vector3
	Volume      float32
	MaxDistance float32
	Loop        bool
	Spatial     bool

	sound       rl.Sound
	loaded      bool
	playing     bool
	wantsToPlay bool // Play was called before the device was ready
}

type track struct {
	path   string
	music  rl.Music
	loaded bool
}

// Manager owns the audio device, the music track table and spatial sources.
// It implements the camera's audio sink. Until Init is called no device
// function is used and every call only records state.
type Manager struct {
	mu       sync.Mutex
	ready    bool
	listener Listener
	reverb   rl.Vector3

	tracks   []*track
	current  int
	restarts int

	sources map[uint64]*Source
	nextID  uint64
}

var _ camera.AudioSink = (*Manager)(nil)

func NewManager() *Manager {
	return &Manager{
		listener: listenerFromMatrix(rl.MatrixIdentity()),
		current:  -1,
		sources:  make(map[uint64]*Source),
	}
}

// Init opens the device, loads registered tracks and sounds and resumes
// anything that was asked to play before.
func (m *Manager) Init() {
	rl.InitAudioDevice()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.ready = true

	for _, t := range m.tracks {
		m.loadTrack(t)
	}
	for _, src := range m.sources {
		m.loadSource(src)
		if src.wantsToPlay && src.loaded {
			rl.PlaySound(src.sound)
			src.playing = true
		}
	}
	if m.current >= 0 {
		m.startTrack(m.current, true)
	}
}

// Close unloads everything and shuts the device down.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ready {
		return
	}

	for _, t := range m.tracks {
		if t.loaded {
			rl.UnloadMusicStream(t.music)
			t.loaded = false
		}
	}
	for _, src := range m.sources {
		if src.loaded {
			rl.UnloadSound(src.sound)
			src.loaded = false
		}
	}
	m.ready = false
	rl.CloseAudioDevice()
}

func (m *Manager) loadTrack(t *track) {
	if t.loaded {
		return
	}
	t.music = rl.LoadMusicStream(t.path)
	if !rl.IsMusicValid(t.music) {
		log.Printf("Audio: failed to load track %s", t.path)
		return
	}
	t.loaded = true
}

func (m *Manager) loadSource(src *Source) {
	if src.loaded {
		return
	}
	src.sound = rl.LoadSound(src.Path)
	if !rl.IsSoundValid(src.sound) {
		log.Printf("Audio: failed to load sound %s", src.Path)
		return
	}
	src.loaded = true
}

// AddTrack registers a music file and returns its track index.
func (m *Manager) AddTrack(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &track{path: path}
	if m.ready {
		m.loadTrack(t)
	}
	m.tracks = append(m.tracks, t)
	return len(m.tracks) - 1
}

// SetListener takes the ear from the camera's inverse view matrix: the
// translation is the position, the first column is right and the view looks
// down the negated third column.
func (m *Manager) SetListener(transform rl.Matrix) {
	l := listenerFromMatrix(transform)

	m.mu.Lock()
	m.listener = l
	m.mu.Unlock()
}

func listenerFromMatrix(t rl.Matrix) Listener {
	l := Listener{
		Position: rl.Vector3{X: t.M12, Y: t.M13, Z: t.M14},
		Forward:  rl.Vector3{X: 0, Y: 0, Z: -1},
		Right:    rl.Vector3{X: 1, Y: 0, Z: 0},
	}
	fwd := rl.Vector3{X: -t.M8, Y: -t.M9, Z: -t.M10}
	if n := rl.Vector3Length(fwd); n > 0.001 {
		l.Forward = rl.Vector3Scale(fwd, 1/n)
	}
	right := rl.Vector3{X: t.M0, Y: t.M1, Z: t.M2}
	if n := rl.Vector3Length(right); n > 0.001 {
		l.Right = rl.Vector3Scale(right, 1/n)
	}
	return l
}

// SetReverbRoomSize records the room dimensions in meters for the mixer.
func (m *Manager) SetReverbRoomSize(size rl.Vector3) {
	m.mu.Lock()
	m.reverb = size
	m.mu.Unlock()
}

// PlayTrack switches the music to track. With restart the stream is rewound
// to the start even when it is already playing.
func (m *Manager) PlayTrack(index int, restart bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= len(m.tracks) {
		return
	}
	if restart {
		m.restarts++
	}
	if m.ready {
		m.startTrack(index, restart)
	}
	m.current = index
}

func (m *Manager) startTrack(index int, restart bool) {
	if m.current >= 0 && m.current != index && m.tracks[m.current].loaded {
		rl.StopMusicStream(m.tracks[m.current].music)
	}
	t := m.tracks[index]
	if !t.loaded {
		return
	}
	if restart {
		rl.SeekMusicStream(t.music, 0)
	}
	rl.PlayMusicStream(t.music)
}

// LoadSound registers a sound file as a spatial source.
func (m *Manager) LoadSound(path string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	src := &Source{
		ID:          m.nextID,
		Path:        path,
		Volume:      1,
		MaxDistance: 8 * 1024,
		Spatial:     true,
	}
	if m.ready {
		m.loadSource(src)
	}
	m.sources[src.ID] = src
	return src.ID
}

// Play starts a source, or marks it to start once the device is ready.
func (m *Manager) Play(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	src, ok := m.sources[id]
	if !ok {
		return
	}
	src.wantsToPlay = true
	if m.ready && src.loaded {
		rl.PlaySound(src.sound)
		src.playing = true
	}
}

func (m *Manager) Stop(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if src, ok := m.sources[id]; ok {
		if src.playing {
			rl.StopSound(src.sound)
		}
		src.playing = false
		src.wantsToPlay = false
	}
}

// Configure edits a source in place.
func (m *Manager) Configure(id uint64, fn func(*Source)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if src, ok := m.sources[id]; ok {
		fn(src)
	}
}

// Update feeds the music stream and re-spatializes playing sources.
func (m *Manager) Update() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ready {
		return
	}

	if m.current >= 0 && m.tracks[m.current].loaded {
		rl.UpdateMusicStream(m.tracks[m.current].music)
	}

	for _, src := range m.sources {
		if !src.playing {
			continue
		}
		if !rl.IsSoundPlaying(src.sound) {
			if !src.Loop {
				src.playing = false
				continue
			}
			rl.PlaySound(src.sound)
		}

		if !src.Spatial {
			rl.SetSoundVolume(src.sound, src.Volume)
			rl.SetSoundPan(src.sound, 0.5)
			continue
		}
		volume, pan := spatialize(m.listener, src.Position, src.Volume, src.MaxDistance)
		rl.SetSoundVolume(src.sound, volume)
		rl.SetSoundPan(src.sound, pan)
	}
}

// spatialize gives linear distance falloff and a left/right pan from the
// listener's right vector. Sounds behind the listener are damped to between
// 0.7 and 1.0 of their level.
func spatialize(l Listener, pos rl.Vector3, volume, maxDistance float32) (float32, float32) {
	toSource := rl.Vector3Subtract(pos, l.Position)
	distance := rl.Vector3Length(toSource)

	var v float32
	if distance < maxDistance {
		v = volume * (1 - distance/maxDistance)
	}

	pan := float32(0.5)
	if distance > 0.001 {
		dir := rl.Vector3Scale(toSource, 1/distance)
		pan = rl.Clamp(0.5+rl.Vector3DotProduct(dir, l.Right)*0.5, 0, 1)

		if front := rl.Vector3DotProduct(dir, l.Forward); front < 0 {
			v *= 0.7 + 0.3*math32.Abs(front)
		}
	}
	return v, pan
}

func (m *Manager) Listener() Listener {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listener
}

func (m *Manager) ReverbSize() rl.Vector3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reverb
}

// CurrentTrack returns the selected track index, or -1.
func (m *Manager) CurrentTrack() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Restarts counts PlayTrack calls that asked for a rewind.
func (m *Manager) Restarts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.restarts
}
