package game

import (
	"fmt"

	"roomcam/internal/camera"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	colorBgDark    = rl.NewColor(10, 10, 15, 255)
	colorBgPanel   = rl.NewColor(18, 18, 24, 230)
	colorBgElement = rl.NewColor(28, 28, 38, 255)
	colorBgHover   = rl.NewColor(38, 38, 52, 255)
	colorAccent    = rl.NewColor(108, 99, 255, 255)
	colorText      = rl.NewColor(200, 200, 208, 255)
	colorTextHover = rl.NewColor(255, 255, 255, 255)
)

const (
	panelWidth = 220
	rowHeight  = 26
)

func initPanelStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextHover))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextHover))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// drawPanel draws the camera controls down the right edge and returns what
// was clicked. Checkbox state that maps onto a toggle is reported as an
// action so keyboard and panel go through the same path.
func (g *Game) drawPanel() Actions {
	act := NoActions()

	x := float32(rl.GetScreenWidth()) - panelWidth - 10
	y := float32(10)
	rows := 12 + g.Level.FixedViewCount()
	rl.DrawRectangleRec(rl.Rectangle{X: x - 8, Y: y - 6, Width: panelWidth + 16, Height: float32(rows*rowHeight) + 12}, colorBgPanel)

	row := func() rl.Rectangle {
		r := rl.Rectangle{X: x, Y: y, Width: panelWidth, Height: rowHeight - 6}
		y += rowHeight
		return r
	}
	check := func() rl.Rectangle {
		r := row()
		r.Width = r.Height
		return r
	}

	rl.DrawText("Camera", int32(x), int32(y), 18, colorTextHover)
	y += rowHeight

	fp := g.Camera.BaseMode() == camera.ModeFirstPerson
	if gui.CheckBox(check(), "First person", fp) != fp {
		act.FirstPerson = true
	}
	combat := g.Camera.BaseMode() == camera.ModeCombat
	if gui.CheckBox(check(), "Combat", combat) != combat {
		act.Combat = true
	}
	g.Stereo = gui.CheckBox(check(), "Stereo", g.Stereo)
	g.Mirror = gui.CheckBox(check(), "Mirror floor", g.Mirror)
	g.DebugMode = gui.CheckBox(check(), "Debug overlay", g.DebugMode)

	for i := 0; i < g.Level.FixedViewCount(); i++ {
		label := fmt.Sprintf("View %d", i+1)
		if i == g.Camera.FixedViewIndex() {
			label += " (active)"
		}
		if gui.Button(row(), label) {
			act.View = i
		}
	}

	if gui.Button(row(), "Look at marker") {
		act.LookAtMarker = true
	}
	if gui.Button(row(), "Cutscene") {
		act.Cutscene = true
	}
	if gui.Button(row(), fmt.Sprintf("Capture view %d", g.capture%max(g.Level.FixedViewCount(), 1)+1)) {
		act.Capture = true
	}
	if gui.Button(row(), "Save level") {
		act.Save = true
	}

	shake := g.Camera.ShakeMagnitude()
	r := row()
	r.Width -= 60
	if v := gui.Slider(r, "", fmt.Sprintf("shake %.2f", shake), shake, 0, 1); v > shake+0.01 {
		g.Camera.Shake(v)
	}

	rate := g.cfg.FollowRate
	r = row()
	r.Width -= 60
	if v := gui.Slider(r, "", fmt.Sprintf("follow %.1f", rate), rate, 0.5, 20); v != rate {
		cfg := g.cfg
		cfg.FollowRate = v
		g.SetConfig(cfg)
	}

	return act
}
