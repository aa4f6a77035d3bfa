package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"roomcam/internal/game"
)

func main() {
	levelPath := flag.String("level", "assets/levels/demo.json", "level file to load")
	configPath := flag.String("config", "assets/camera.yaml", "camera tuning file, watched for edits (empty for defaults)")
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 720, "window height")
	cutscene := flag.Bool("cutscene", false, "open on the level's cutscene")
	flag.Parse()

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	g, err := game.New(game.Options{
		LevelPath:  *levelPath,
		ConfigPath: *configPath,
		Width:      int32(*width),
		Height:     int32(*height),
		Cutscene:   *cutscene,
	})
	if err != nil {
		log.Fatal(err)
	}
	g.Run()
}
