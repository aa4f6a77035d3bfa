package camera

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const tick = float32(1.0 / 60.0)

func newTestCamera(owner *fakeOwner, world *fakeWorld, opts ...Option) *ViewController {
	return New(owner, world, opts...)
}

func TestNewSeatsBehindOwner(t *testing.T) {
	owner := newFakeOwner()
	owner.room = 2
	world := newFakeWorld(3)

	vc := newTestCamera(owner, world)

	if vc.Mode() != ModeFollow {
		t.Errorf("Expected Follow, got %s", vc.Mode())
	}
	if vc.RoomIndex() != 2 {
		t.Errorf("Expected room 2, got %d", vc.RoomIndex())
	}
	want := rl.Vector3{X: 0, Y: 0, Z: -1024}
	if !nearVec(vc.Position(), want, 1e-3) {
		t.Errorf("Expected position %v, got %v", want, vc.Position())
	}
	if vc.FOV() != 65 || vc.Near() != 128 || vc.Far() != 40960 {
		t.Errorf("Unexpected projection %v/%v/%v", vc.FOV(), vc.Near(), vc.Far())
	}
	if vc.FixedViewIndex() != -1 {
		t.Errorf("Expected no fixed view, got %d", vc.FixedViewIndex())
	}
}

func TestFollowTickMovesTowardClippedEye(t *testing.T) {
	owner := newFakeOwner()
	owner.room = 1
	world := newFakeWorld(2)
	world.clip = 1000

	vc := newTestCamera(owner, world)
	start := vc.Position()

	vc.Update(tick)

	if vc.RoomIndex() != 1 {
		t.Errorf("Expected room to stay 1, got %d", vc.RoomIndex())
	}

	lookAt := rl.Vector3{X: 0, Y: -768, Z: 0}
	if !nearVec(vc.LookTarget(), lookAt, 1e-3) {
		t.Errorf("Expected look target %v, got %v", lookAt, vc.LookTarget())
	}
	if !nearVec(world.lastTo, rl.Vector3{X: 0, Y: -768, Z: -1280}, 1e-2) {
		t.Errorf("Expected desired eye 1280 behind target, got %v", world.lastTo)
	}

	eye := rl.Vector3{X: 0, Y: -768, Z: -1000}
	if !nearVec(vc.CandidateEye(), eye, 1e-2) {
		t.Errorf("Expected clipped eye %v, got %v", eye, vc.CandidateEye())
	}
	if !nearVec(vc.Fallback(), eye, 1e-2) {
		t.Errorf("Expected fallback to follow the general trace, got %v", vc.Fallback())
	}

	want := rl.Vector3Lerp(start, eye, 6*tick)
	if !nearVec(vc.Position(), want, 1e-2) {
		t.Errorf("Expected position %v, got %v", want, vc.Position())
	}
}

func TestFollowConvergesExponentially(t *testing.T) {
	owner := newFakeOwner()
	world := newFakeWorld(1)
	vc := newTestCamera(owner, world)

	vc.Update(tick)
	prev := rl.Vector3Distance(vc.Position(), vc.CandidateEye())
	ratio := 1 - 6*tick

	for i := 0; i < 30; i++ {
		vc.Update(tick)
		d := rl.Vector3Distance(vc.Position(), vc.CandidateEye())
		if d > prev {
			t.Fatalf("Distance grew at tick %d: %v -> %v", i, prev, d)
		}
		if prev > 1 && !nearly(d/prev, ratio, 1e-3) {
			t.Errorf("Tick %d: expected ratio %v, got %v", i, ratio, d/prev)
		}
		prev = d
	}
}

func TestTraceFailureKeepsCandidate(t *testing.T) {
	owner := newFakeOwner()
	world := newFakeWorld(1)
	vc := newTestCamera(owner, world)

	vc.Update(tick)
	eye, fallback := vc.CandidateEye(), vc.Fallback()

	world.traceFail = true
	owner.angle.Y = 1.2
	vc.Update(tick)

	if vc.CandidateEye() != eye {
		t.Errorf("Expected candidate %v to survive a failed trace, got %v", eye, vc.CandidateEye())
	}
	if vc.Fallback() != fallback {
		t.Errorf("Expected fallback %v to survive a failed trace, got %v", fallback, vc.Fallback())
	}
}

func TestEvadingSwingsSideways(t *testing.T) {
	owner := newFakeOwner()
	world := newFakeWorld(1)
	vc := newTestCamera(owner, world)
	vc.Update(tick)

	fallback := vc.Fallback()
	owner.evading = true
	vc.Update(tick)

	want := rl.Vector3{X: fallback.X - 2048, Y: fallback.Y - 512, Z: fallback.Z}
	if !nearVec(world.lastTo, want, 1e-2) {
		t.Errorf("Expected evasive eye %v, got %v", want, world.lastTo)
	}
	if vc.Fallback() != fallback {
		t.Errorf("Evasive placement must not move the fallback: %v -> %v", fallback, vc.Fallback())
	}

	vc.SetCombat(true)
	vc.Update(tick)
	if nearVec(world.lastTo, want, 1) {
		t.Error("Combat should use the general placement while evading")
	}
}

func TestPlaceGeneralRefreshesFallback(t *testing.T) {
	world := newFakeWorld(1)
	cfg := DefaultConfig()
	target := rl.Vector3{X: 10, Y: 20, Z: 30}
	dir := rl.Vector3{X: 1, Y: 0, Z: 0}
	old := rl.Vector3{X: 99, Y: 99, Z: 99}

	p := place(world, cfg, 0, target, dir, old, false)
	want := rl.Vector3{X: 10 - 1280, Y: 20, Z: 30}
	if !p.OK || !nearVec(p.Eye, want, 1e-3) {
		t.Errorf("Expected eye %v, got %v (ok=%v)", want, p.Eye, p.OK)
	}
	if p.Fallback != p.Eye {
		t.Errorf("Expected fallback to equal eye, got %v", p.Fallback)
	}

	p = place(world, cfg, 0, target, dir, old, true)
	if p.Fallback != old {
		t.Errorf("Expected evasive fallback %v, got %v", old, p.Fallback)
	}
}

func TestActivateFixedViewIsIdempotent(t *testing.T) {
	owner := newFakeOwner()
	world := newFakeWorld(2)
	world.views = []FixedView{{Position: rl.Vector3{X: 500}, Room: 1}}
	vc := newTestCamera(owner, world)

	vc.ActivateFixedView(0, 3, 0)
	vc.Update(tick)
	timer := vc.TransitionTimer()

	vc.ActivateFixedView(0, 10, 4)

	if vc.FixedViewIndex() != 0 {
		t.Errorf("Expected fixed view 0, got %d", vc.FixedViewIndex())
	}
	if vc.TransitionTimer() != timer {
		t.Errorf("Expected timer %v unchanged, got %v", timer, vc.TransitionTimer())
	}
}

func TestActivateFixedViewIgnoresUnknownIndex(t *testing.T) {
	owner := newFakeOwner()
	world := newFakeWorld(1)
	vc := newTestCamera(owner, world)

	vc.ActivateFixedView(7, 3, 0)

	if vc.Mode() != ModeFollow || vc.FixedViewIndex() != -1 {
		t.Errorf("Expected Follow without a view, got %s/%d", vc.Mode(), vc.FixedViewIndex())
	}
}

func TestFixedViewInOtherRoomCutsAndRestores(t *testing.T) {
	owner := newFakeOwner()
	owner.aim = &fakeTarget{pos: rl.Vector3{X: 1}}
	world := newFakeWorld(2)
	view := FixedView{Position: rl.Vector3{X: 3000, Y: -1000, Z: 3000}, Room: 1}
	world.views = []FixedView{view}
	vc := newTestCamera(owner, world)

	vc.Update(tick)
	before := vc.Position()

	vc.ActivateFixedView(0, 0.5, 0)
	vc.Update(tick)

	if vc.Mode() != ModeStatic {
		t.Fatalf("Expected Static, got %s", vc.Mode())
	}
	if vc.Position() != view.Position {
		t.Errorf("Expected hard cut to %v, got %v", view.Position, vc.Position())
	}
	if vc.RoomIndex() != 1 {
		t.Errorf("Expected fixed view room 1, got %d", vc.RoomIndex())
	}
	if owner.faced != nil {
		t.Error("Owner should not face anything during a fixed view")
	}

	for i := 0; i < 40 && vc.Mode() == ModeStatic; i++ {
		vc.Update(tick)
	}

	if vc.Mode() != ModeFollow {
		t.Fatalf("Expected Follow after expiry, got %s", vc.Mode())
	}
	if vc.FixedViewIndex() != -1 {
		t.Errorf("Expected no fixed view, got %d", vc.FixedViewIndex())
	}
	if owner.clearCalls != 1 {
		t.Errorf("Expected aim target cleared once, got %d", owner.clearCalls)
	}
	if vc.RoomIndex() != 0 {
		t.Errorf("Expected room 0 after expiry, got %d", vc.RoomIndex())
	}
	want := rl.Vector3Lerp(before, vc.CandidateEye(), 6*tick)
	if !nearVec(vc.Position(), want, 1e-2) {
		t.Errorf("Expected position resumed from %v (%v), got %v", before, want, vc.Position())
	}

	vc.ActivateFixedView(0, 1, 0)
	if vc.FixedViewIndex() != 0 {
		t.Error("Expected the same view to be activatable again after expiry")
	}
}

func TestFixedViewInSameRoomBlendsAtSpeed(t *testing.T) {
	owner := newFakeOwner()
	world := newFakeWorld(1)
	view := FixedView{Position: rl.Vector3{X: 2000, Y: -500, Z: 0}, Room: 0}
	world.views = []FixedView{view}
	vc := newTestCamera(owner, world)
	vc.Update(tick)

	start := vc.Position()
	vc.ActivateFixedView(0, 5, 3)
	vc.Update(tick)

	want := rl.Vector3Lerp(start, view.Position, 3*tick)
	if !nearVec(vc.Position(), want, 1e-2) {
		t.Errorf("Expected %v, got %v", want, vc.Position())
	}
}

func TestFixedViewFacesForcedTarget(t *testing.T) {
	owner := newFakeOwner()
	world := newFakeWorld(1)
	world.views = []FixedView{{Position: rl.Vector3{X: 2000}, Room: 0}}
	vc := newTestCamera(owner, world)

	target := &fakeTarget{pos: rl.Vector3{X: 5, Y: 6, Z: 7}}
	vc.ForceLook(target, 2, 0)
	vc.ActivateFixedView(0, 5, 0)
	vc.Update(tick)

	st, ok := vc.State().(*Static)
	if !ok {
		t.Fatalf("Expected *Static, got %T", vc.State())
	}
	if st.Target != target {
		t.Error("Expected the pending forced target to carry into the fixed view")
	}
	if vc.LookTarget() != target.pos {
		t.Errorf("Expected look target %v, got %v", target.pos, vc.LookTarget())
	}
}

func TestForceLookExpires(t *testing.T) {
	owner := newFakeOwner()
	world := newFakeWorld(1)
	vc := newTestCamera(owner, world)

	target := &fakeTarget{pos: rl.Vector3{X: 4000, Y: -768, Z: 0}}
	vc.ForceLook(target, 0.1, 0)
	vc.Update(tick)

	if vc.Mode() != ModeLook {
		t.Fatalf("Expected Look, got %s", vc.Mode())
	}
	if vc.BaseMode() != ModeFollow {
		t.Errorf("Expected base mode Follow, got %s", vc.BaseMode())
	}
	if owner.faced != target {
		t.Error("Expected owner to face the forced target")
	}
	want := rl.Vector3{X: -1280, Y: -768, Z: 0}
	if !nearVec(world.lastTo, want, 1) {
		t.Errorf("Expected eye opposite the forced target %v, got %v", want, world.lastTo)
	}

	for i := 0; i < 10; i++ {
		vc.Update(tick)
	}
	if vc.Mode() != ModeFollow {
		t.Errorf("Expected Follow after the look expired, got %s", vc.Mode())
	}
}

func TestCombatDropsViewpoint(t *testing.T) {
	owner := newFakeOwner()
	world := newFakeWorld(1)
	vc := newTestCamera(owner, world)

	if got := vc.ViewpointOfInterest().Y; got != -768 {
		t.Errorf("Expected -768, got %v", got)
	}
	vc.SetCombat(true)
	if got := vc.ViewpointOfInterest().Y; got != -1024 {
		t.Errorf("Expected combat -1024, got %v", got)
	}
	owner.stance = StanceUnderwater
	if got := vc.ViewpointOfInterest().Y; got != -768 {
		t.Errorf("Expected underwater combat -768, got %v", got)
	}
}

func TestSwitchToFirstPerson(t *testing.T) {
	owner := newFakeOwner()
	owner.head = rl.MatrixTranslate(100, -700, 0)
	world := newFakeWorld(1)
	audio := &fakeAudio{}
	vc := newTestCamera(owner, world, WithAudio(audio))

	vc.SwitchToFirstPerson(true)
	if vc.Mode() != ModeFirstPerson {
		t.Fatalf("Expected FirstPerson, got %s", vc.Mode())
	}
	if vc.FOV() != 90 || vc.Near() != 8 {
		t.Errorf("Expected first-person projection, got %v/%v", vc.FOV(), vc.Near())
	}
	if vc.LookAround() != (rl.Vector2{}) || vc.IdleTimer() != 0 {
		t.Errorf("Expected look-around reset, got %v/%v", vc.LookAround(), vc.IdleTimer())
	}

	vc.Update(tick)
	want := rl.Vector3{X: 100, Y: -740, Z: 10}
	if !nearVec(vc.Position(), want, 1e-3) {
		t.Errorf("Expected eye at %v, got %v", want, vc.Position())
	}
	if audio.listeners != 1 {
		t.Errorf("Expected listener update, got %d", audio.listeners)
	}

	vc.SwitchToFirstPerson(false)
	if vc.Mode() != ModeFollow || vc.FOV() != 65 || vc.Near() != 128 {
		t.Errorf("Expected Follow with default projection, got %s %v/%v", vc.Mode(), vc.FOV(), vc.Near())
	}
}

func TestListenerReverbSize(t *testing.T) {
	owner := newFakeOwner()
	world := newFakeWorld(1)
	audio := &fakeAudio{}
	vc := newTestCamera(owner, world, WithAudio(audio))

	vc.Update(tick)

	want := rl.Vector3{X: 4 * 2.419, Y: 4 * 2.419, Z: 6 * 2.419}
	if !nearVec(audio.roomSize, want, 1e-3) {
		t.Errorf("Expected room size %v, got %v", want, audio.roomSize)
	}
	if audio.listener != vc.ViewInverse() {
		t.Error("Expected listener to receive the inverse view")
	}
}

func TestIsSubmerged(t *testing.T) {
	owner := newFakeOwner()
	world := newFakeWorld(2)
	world.rooms[1].Water = true
	vc := newTestCamera(owner, world)

	if vc.IsSubmerged() {
		t.Error("Room 0 is dry")
	}
	owner.room = 1
	vc.SwitchToFirstPerson(false)
	if !vc.IsSubmerged() {
		t.Error("Room 1 is flooded")
	}
}

func TestModeString(t *testing.T) {
	if ModeCutscene.String() != "Cutscene" {
		t.Errorf("Expected Cutscene, got %s", ModeCutscene.String())
	}
	if Mode(42).String() != "Unknown" {
		t.Errorf("Expected Unknown, got %s", Mode(42).String())
	}
}

func TestForceLookKeepsFirstPerson(t *testing.T) {
	owner := newFakeOwner()
	owner.head = rl.MatrixTranslate(100, -700, 0)
	world := newFakeWorld(1)
	vc := newTestCamera(owner, world)

	vc.SwitchToFirstPerson(true)
	target := &fakeTarget{pos: rl.Vector3{X: 4000, Y: -768, Z: 0}}
	vc.ForceLook(target, 0.05, 0)
	traces := world.traces
	vc.Update(tick)

	if vc.Mode() != ModeLook || vc.BaseMode() != ModeFirstPerson {
		t.Fatalf("Expected Look over FirstPerson, got %s over %s", vc.Mode(), vc.BaseMode())
	}
	if owner.faced != target {
		t.Error("Expected owner to face the forced target")
	}
	want := rl.Vector3{X: 100, Y: -740, Z: 10}
	if !nearVec(vc.Position(), want, 1e-3) {
		t.Errorf("Expected eye to stay at the head %v, got %v", want, vc.Position())
	}
	if world.traces != traces {
		t.Errorf("Expected no placement traces in first person, got %d", world.traces-traces)
	}
	if vc.FOV() != 90 || vc.Near() != 8 {
		t.Errorf("Expected first-person projection, got %v/%v", vc.FOV(), vc.Near())
	}

	for i := 0; i < 10; i++ {
		vc.Update(tick)
	}
	if vc.Mode() != ModeFirstPerson {
		t.Errorf("Expected FirstPerson after the look expired, got %s", vc.Mode())
	}
	if !nearVec(vc.Position(), want, 1e-3) {
		t.Errorf("Expected eye at %v, got %v", want, vc.Position())
	}
}

func TestForceLookKeepsCombatDrop(t *testing.T) {
	owner := newFakeOwner()
	world := newFakeWorld(1)
	world.views = []FixedView{{Position: rl.Vector3{X: 2000, Y: -500, Z: 0}, Room: 0}}
	vc := newTestCamera(owner, world)

	vc.SetCombat(true)
	vc.ForceLook(&fakeTarget{pos: rl.Vector3{X: 4000, Y: -768, Z: 0}}, 5, 0)

	if vc.Mode() != ModeLook || vc.BaseMode() != ModeCombat {
		t.Fatalf("Expected Look over Combat, got %s over %s", vc.Mode(), vc.BaseMode())
	}
	if got := vc.ViewpointOfInterest().Y; got != -1024 {
		t.Errorf("Expected combat -1024 during the look, got %v", got)
	}

	vc.ActivateFixedView(0, 5, 0)
	if got := vc.ViewpointOfInterest().Y; got != -768 {
		t.Errorf("Expected -768 from a fixed view, got %v", got)
	}
}

func TestForceLookBlendsAtSpeed(t *testing.T) {
	target := rl.Vector3{X: 4000, Y: -768, Z: 0}
	gap := func(speed float32) float32 {
		vc := newTestCamera(newFakeOwner(), newFakeWorld(1))
		vc.ForceLook(&fakeTarget{pos: target}, 5, speed)
		vc.Update(tick)
		return rl.Vector3Distance(vc.Position(), vc.CandidateEye())
	}

	slow, fast := gap(1), gap(20)
	if fast >= slow {
		t.Errorf("Expected speed 20 to close more of the gap than speed 1, got %v vs %v", fast, slow)
	}
}

func TestFixedViewResumesFirstPerson(t *testing.T) {
	owner := newFakeOwner()
	owner.head = rl.MatrixTranslate(100, -700, 0)
	world := newFakeWorld(1)
	view := FixedView{Position: rl.Vector3{X: 2000, Y: -500, Z: 0}, Room: 0}
	world.views = []FixedView{view}
	vc := newTestCamera(owner, world)

	vc.SwitchToFirstPerson(true)
	vc.Update(tick)
	head := vc.Position()

	vc.ActivateFixedView(0, 0.05, 3)
	vc.Update(tick)
	if vc.Mode() != ModeStatic || vc.BaseMode() != ModeFirstPerson {
		t.Fatalf("Expected Static over FirstPerson, got %s over %s", vc.Mode(), vc.BaseMode())
	}
	if rl.Vector3Distance(vc.Position(), view.Position) >= rl.Vector3Distance(head, view.Position) {
		t.Errorf("Expected the camera to leave the head for the view, got %v", vc.Position())
	}

	for i := 0; i < 10; i++ {
		vc.Update(tick)
	}
	if vc.Mode() != ModeFirstPerson {
		t.Fatalf("Expected FirstPerson after the view expired, got %s", vc.Mode())
	}
	want := rl.Vector3{X: 100, Y: -740, Z: 10}
	if !nearVec(vc.Position(), want, 1e-3) {
		t.Errorf("Expected eye back at the head %v, got %v", want, vc.Position())
	}
}
