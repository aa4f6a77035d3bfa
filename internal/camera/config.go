package camera

import rl "github.com/gen2brain/raylib-go/raylib"

// Config holds the camera tuning. Distances are in level units (1024 per
// sector), rates are per second, angles in degrees unless noted.
type Config struct {
	Standoff    float32 `yaml:"standoff"`
	SpawnOffset float32 `yaml:"spawn_offset"`
	EvadeSide   float32 `yaml:"evade_side"`
	EvadeLift   float32 `yaml:"evade_lift"`

	FollowRate   float32 `yaml:"follow_rate"`
	LookRate     float32 `yaml:"look_rate"`
	RecenterRate float32 `yaml:"recenter_rate"`
	IdleRearm    float32 `yaml:"idle_rearm"`

	ViewDrop   float32 `yaml:"view_drop"`
	CombatDrop float32 `yaml:"combat_drop"`

	DragSensitivity float32 `yaml:"drag_sensitivity"` // radians per pixel
	StickSpeed      float32 `yaml:"stick_speed"`      // radians per second
	OnWaterPitch    float32 `yaml:"on_water_pitch"`
	HangPitch       float32 `yaml:"hang_pitch"`

	CutsceneFPS float32 `yaml:"cutscene_fps"`
	HardCut     float32 `yaml:"hard_cut"`

	FOV             float32 `yaml:"fov"`
	Near            float32 `yaml:"near"`
	FirstPersonFOV  float32 `yaml:"first_person_fov"`
	FirstPersonNear float32 `yaml:"first_person_near"`
	Far             float32 `yaml:"far"`

	EyeOffset rl.Vector3 `yaml:"-"`

	ShakeAmplitude float32 `yaml:"shake_amplitude"`
	ShakeFrequency float32 `yaml:"shake_frequency"`
	EyeSeparation  float32 `yaml:"eye_separation"`

	ReverbScale float32 `yaml:"reverb_scale"` // sectors to meters
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Standoff:    1024 + 256,
		SpawnOffset: 1024,
		EvadeSide:   2048,
		EvadeLift:   512,

		FollowRate:   6,
		LookRate:     10,
		RecenterRate: 10,
		IdleRearm:    1,

		ViewDrop:   256,
		CombatDrop: 256,

		DragSensitivity: 0.01,
		StickSpeed:      2,
		OnWaterPitch:    22,
		HangPitch:       60,

		CutsceneFPS: 15,
		HardCut:     512,

		FOV:             65,
		Near:            128,
		FirstPersonFOV:  90,
		FirstPersonNear: 8,
		Far:             40 * 1024,

		EyeOffset: rl.Vector3{X: 0, Y: -40, Z: 10},

		ShakeAmplitude: 48,
		ShakeFrequency: 7,
		EyeSeparation:  32,

		ReverbScale: 2.419,
	}
}
