package camera

// Mode is the kind of the active camera state.
type Mode int

const (
	ModeFollow Mode = iota
	ModeStatic
	ModeLook
	ModeCombat
	ModeCutscene
	ModeFirstPerson
)

func (m Mode) String() string {
	switch m {
	case ModeFollow:
		return "Follow"
	case ModeStatic:
		return "Static"
	case ModeLook:
		return "Look"
	case ModeCombat:
		return "Combat"
	case ModeCutscene:
		return "Cutscene"
	case ModeFirstPerson:
		return "FirstPerson"
	}
	return "Unknown"
}

// State is the camera's positioning policy. The set of variants is closed:
// Follow, Combat, FirstPerson, Static, Look and Cutscene.
type State interface {
	Mode() Mode
	isState()
}

// Follow trails the owner from behind.
type Follow struct{}

// Combat trails the owner with an extra vertical drop.
type Combat struct{}

// FirstPerson rides the owner's head joint.
type FirstPerson struct{}

// Static holds an authored fixed view for Timer seconds.
type Static struct {
	View   int
	Target Target
	Timer  float32
	Speed  float32

	resume   State
	fromRoom int
}

// Look keeps following but faces Target for Timer seconds.
type Look struct {
	Target Target
	Timer  float32
	Speed  float32

	resume State
}

// Cutscene plays the level's keyframe track exclusively.
type Cutscene struct {
	Player *CutscenePlayer
}

func (Follow) Mode() Mode { return ModeFollow }
func (Combat) Mode() Mode { return ModeCombat }
func (FirstPerson) Mode() Mode { return ModeFirstPerson }
func (*Static) Mode() Mode { return ModeStatic }
func (*Look) Mode() Mode { return ModeLook }
func (*Cutscene) Mode() Mode { return ModeCutscene }

func (Follow) isState() {}
func (Combat) isState() {}
func (FirstPerson) isState() {}
func (*Static) isState() {}
func (*Look) isState() {}
func (*Cutscene) isState() {}

// base returns the untimed mode a state falls back to.
func base(s State) State {
	switch st := s.(type) {
	case *Static:
		return st.resume
	case *Look:
		return st.resume
	}
	return s
}
