package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"roomcam/internal/camera"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// file is the on-disk layout: every camera.Config key at the top level plus
// the head eye offset as a three-element list.
type file struct {
	camera.Config `yaml:",inline"`
	EyeOffset     *[3]float32 `yaml:"eye_offset"`
}

// Load reads a YAML tuning file. Keys that are present override
// camera.DefaultConfig(); unknown keys are an error.
func Load(path string) (camera.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return camera.Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return camera.Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (camera.Config, error) {
	f := file{Config: camera.DefaultConfig()}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return camera.Config{}, fmt.Errorf("unmarshal: %w", err)
	}

	cfg := f.Config
	if f.EyeOffset != nil {
		cfg.EyeOffset = rl.Vector3{X: f.EyeOffset[0], Y: f.EyeOffset[1], Z: f.EyeOffset[2]}
	}
	if err := Validate(cfg); err != nil {
		return camera.Config{}, err
	}
	return cfg, nil
}

// Validate reports every out-of-range field.
func Validate(cfg camera.Config) error {
	var errs []error
	positive := func(name string, v float32) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %g", name, v))
		}
	}

	positive("standoff", cfg.Standoff)
	positive("follow_rate", cfg.FollowRate)
	positive("look_rate", cfg.LookRate)
	positive("recenter_rate", cfg.RecenterRate)
	positive("cutscene_fps", cfg.CutsceneFPS)
	positive("hard_cut", cfg.HardCut)
	positive("near", cfg.Near)
	positive("first_person_near", cfg.FirstPersonNear)

	if cfg.IdleRearm < 0 {
		errs = append(errs, fmt.Errorf("idle_rearm must not be negative, got %g", cfg.IdleRearm))
	}
	if cfg.Near >= cfg.Far || cfg.FirstPersonNear >= cfg.Far {
		errs = append(errs, fmt.Errorf("near planes must be closer than far %g", cfg.Far))
	}
	for _, fov := range []float32{cfg.FOV, cfg.FirstPersonFOV} {
		if fov <= 0 || fov >= 180 {
			errs = append(errs, fmt.Errorf("fov must be in (0, 180), got %g", fov))
		}
	}
	return errors.Join(errs...)
}
