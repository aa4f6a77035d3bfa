package game

import rl "github.com/gen2brain/raylib-go/raylib"

// Actions is one frame of discrete requests from the keyboard or the panel.
// The bool fields are toggles or one-shots; View is a fixed view index, or
// -1 for none.
type Actions struct {
	FirstPerson  bool
	Combat       bool
	View         int
	Shake        bool
	LookAtMarker bool
	Cutscene     bool
	Pause        bool
	Capture      bool
	Save         bool
}

func NoActions() Actions { return Actions{View: -1} }

// Merge folds b into a. A toggle requested by both sources fires once; b's
// view wins when both name one.
func (a *Actions) Merge(b Actions) {
	a.FirstPerson = a.FirstPerson || b.FirstPerson
	a.Combat = a.Combat || b.Combat
	if b.View >= 0 {
		a.View = b.View
	}
	a.Shake = a.Shake || b.Shake
	a.LookAtMarker = a.LookAtMarker || b.LookAtMarker
	a.Cutscene = a.Cutscene || b.Cutscene
	a.Pause = a.Pause || b.Pause
	a.Capture = a.Capture || b.Capture
	a.Save = a.Save || b.Save
}

var viewKeys = []int32{
	rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive,
	rl.KeySix, rl.KeySeven, rl.KeyEight, rl.KeyNine,
}

// viewForKey maps the number row to fixed view indices.
func viewForKey(key int32) int {
	for i, k := range viewKeys {
		if k == key {
			return i
		}
	}
	return -1
}

// ReadActions polls the keyboard for this frame's requests.
func ReadActions() Actions {
	act := NoActions()
	act.FirstPerson = rl.IsKeyPressed(rl.KeyF)
	act.Combat = rl.IsKeyPressed(rl.KeyC)
	act.Shake = rl.IsKeyPressed(rl.KeySpace)
	act.LookAtMarker = rl.IsKeyPressed(rl.KeyL)
	act.Cutscene = rl.IsKeyPressed(rl.KeyEnter)
	act.Pause = rl.IsKeyPressed(rl.KeyP)

	for _, k := range viewKeys {
		if rl.IsKeyPressed(k) {
			act.View = viewForKey(k)
		}
	}
	return act
}
