package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"golang.org/x/text/message"

	"github.com/Faultbox/sunroom/internal/clock"
	"github.com/Faultbox/sunroom/internal/daylight"
)

// ClockView is what the clock panel shows.
type ClockView struct {
	Clock        string // "HH:MM"
	Label        string
	TotalMinutes int
}

// SliderValue clamps a slider position into the slider's range.
func SliderValue(total int) int32 {
	if total < clock.SliderMin {
		return clock.SliderMin
	}
	if total > clock.SliderMax {
		return clock.SliderMax
	}
	return int32(total)
}

// ClockPanel draws the time readout and slider at the top left. It returns
// the snapped slider value and whether the user moved it.
func ClockPanel(v ClockView, p *message.Printer) (int, bool) {
	posX, posY, _, _ := Viewport()
	imgui.SetNextWindowPos(imgui.NewVec2(posX+20, posY+20))
	imgui.SetNextWindowSize(imgui.NewVec2(260, 0))
	imgui.SetNextWindowBgAlpha(0.9)

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsAlwaysAutoResize

	total, changed := v.TotalMinutes, false
	if imgui.BeginV("##Clock", nil, flags) {
		imgui.TextColored(imgui.NewVec4(0.95, 0.95, 0.95, 1), v.Clock)
		imgui.TextDisabled(v.Label)
		imgui.Separator()

		imgui.Text(p.Sprintf(daylight.MsgTime))
		imgui.SameLine()
		imgui.SetNextItemWidth(-1)
		slider := SliderValue(v.TotalMinutes)
		if imgui.SliderIntV("##time", &slider, clock.SliderMin, clock.SliderMax, v.Clock, imgui.SliderFlagsNone) {
			snapped := clock.Snap(int(slider))
			if snapped != v.TotalMinutes {
				total, changed = snapped, true
			}
		}
		imgui.TextDisabled(p.Sprintf(daylight.MsgHint))
	}
	imgui.End()
	return total, changed
}

// SceneBackground shows the rendered room behind every panel.
func SceneBackground(texID uint32) {
	posX, posY, width, height := Viewport()
	if texID == 0 {
		return
	}
	imgui.SetNextWindowPos(imgui.NewVec2(posX, posY))
	imgui.SetNextWindowSize(imgui.NewVec2(width, height))

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoInputs

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##SceneBackground", nil, flags) {
		texRef := imgui.NewTextureRefTextureID(imgui.TextureID(texID))
		imgui.ImageV(*texRef,
			imgui.NewVec2(width, height),
			imgui.NewVec2(0, 1), // GL textures are bottom-up
			imgui.NewVec2(1, 0))
	}
	imgui.End()
	imgui.PopStyleVar()
}

// FPSOverlay draws the frame rate in the top right corner.
func FPSOverlay() {
	posX, posY, width, _ := Viewport()
	imgui.SetNextWindowPos(imgui.NewVec2(posX+width-110, posY+10))
	imgui.SetNextWindowBgAlpha(0.6)
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoInputs |
		imgui.WindowFlagsAlwaysAutoResize
	if imgui.BeginV("##FPS", nil, flags) {
		imgui.Text(fmt.Sprintf("FPS: %.0f", imgui.CurrentIO().Framerate()))
	}
	imgui.End()
}

// Notification draws a transient message at the bottom center.
func Notification(msg string) {
	posX, posY, width, height := Viewport()
	msgWidth := float32(360)
	imgui.SetNextWindowPos(imgui.NewVec2(posX+(width-msgWidth)/2, posY+height-60))
	imgui.SetNextWindowSize(imgui.NewVec2(msgWidth, 0))
	imgui.SetNextWindowBgAlpha(0.8)
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoInputs |
		imgui.WindowFlagsAlwaysAutoResize
	if imgui.BeginV("##Notification", nil, flags) {
		imgui.TextColored(imgui.NewVec4(0.2, 1.0, 0.2, 1.0), msg)
	}
	imgui.End()
}
