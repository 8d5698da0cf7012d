package ui

import "github.com/AllenDang/cimgui-go/imgui"

// Input is the room's view of one frame of user input.
type Input struct {
	DragX, DragY float32 // Left-button drag since the previous frame
	PanX, PanY   float32 // Right-button drag since the previous frame
	Wheel        float32
	Step         int // Slider steps requested by the arrow keys
	Screenshot   bool
	ResetCamera  bool
}

// DragTracker turns absolute mouse positions into per-frame deltas while a
// button is held.
type DragTracker struct {
	active bool
	lastX  float32
	lastY  float32
}

// Track records the mouse position and returns the movement since the last
// call. The first frame of a drag reports no movement.
func (d *DragTracker) Track(down bool, x, y float32) (dx, dy float32) {
	if !down {
		d.active = false
		return 0, 0
	}
	if d.active {
		dx, dy = x-d.lastX, y-d.lastY
	}
	d.active = true
	d.lastX, d.lastY = x, y
	return dx, dy
}

// StepFromKeys converts arrow key presses into slider steps.
func StepFromKeys(left, right bool) int {
	step := 0
	if left {
		step--
	}
	if right {
		step++
	}
	return step
}

// ReadInput samples ImGui input. Mouse input over a panel is left to the panel.
func (b *Backend) ReadInput() Input {
	io := imgui.CurrentIO()
	mouse := imgui.MousePos()
	free := !io.WantCaptureMouse()

	var in Input
	in.DragX, in.DragY = b.drag.Track(free && imgui.IsMouseDown(imgui.MouseButtonLeft), mouse.X, mouse.Y)
	in.PanX, in.PanY = b.pan.Track(free && imgui.IsMouseDown(imgui.MouseButtonRight), mouse.X, mouse.Y)
	if free {
		in.Wheel = io.MouseWheel()
	}

	if !io.WantCaptureKeyboard() {
		in.Step = StepFromKeys(IsKeyPressed(imgui.KeyLeftArrow), IsKeyPressed(imgui.KeyRightArrow))
		in.ResetCamera = IsKeyPressed(imgui.KeyR)
	}
	in.Screenshot = IsKeyPressed(imgui.KeyF12)
	return in
}
