package room

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sunroom/internal/daylight"
)

// Model files used by the room.
const (
	ModelBed        = "bedDouble.glb"
	ModelRug        = "rugRound.glb"
	ModelLamp       = "lampRoundFloor.glb"
	ModelCabinet    = "cabinetBedDrawer.glb"
	ModelPlant      = "pottedPlant.glb"
	ModelRadio      = "radio.glb"
	ModelWallWindow = "wallWindow.glb"
)

// Surface colors.
var (
	FloorColor    = daylight.MustParseHex("#8B7355")
	CeilingColor  = daylight.MustParseHex("#F5F5DC")
	BackWallColor = daylight.MustParseHex("#E6E6FA")
	LeftWallColor = daylight.MustParseHex("#F0F8FF")
)

const (
	halfPi         = math.Pi / 2
	furnitureScale = 0.7
)

// Layout builds the fixed room: floor, ceiling, two walls, the window wall and
// the furniture. The rug group places its children in rug-local space.
func Layout() *Node {
	floor := &Node{
		Name:          "floor",
		Position:      mgl32.Vec3{0, -1, 0},
		Rotation:      mgl32.Vec3{-halfPi, 0, 0},
		Primitive:     PrimitivePlane,
		Size:          mgl32.Vec3{6, 6, 0},
		Color:         FloorColor,
		ReceiveShadow: true,
	}
	ceiling := &Node{
		Name:          "ceiling",
		Position:      mgl32.Vec3{0, 2, 0},
		Rotation:      mgl32.Vec3{halfPi, 0, 0},
		Primitive:     PrimitivePlane,
		Size:          mgl32.Vec3{6, 6, 0},
		Color:         CeilingColor,
		ReceiveShadow: true,
	}
	backWall := &Node{
		Name:          "back-wall",
		Position:      mgl32.Vec3{0, 0.5, -3},
		Primitive:     PrimitiveBox,
		Size:          mgl32.Vec3{6, 3, 0.1},
		Color:         BackWallColor,
		CastShadow:    true,
		ReceiveShadow: true,
	}
	leftWall := &Node{
		Name:          "left-wall",
		Position:      mgl32.Vec3{-3, 0.5, 0},
		Primitive:     PrimitiveBox,
		Size:          mgl32.Vec3{0.1, 3, 6},
		Color:         LeftWallColor,
		CastShadow:    true,
		ReceiveShadow: true,
	}
	window := &Node{
		Name:          "window-wall",
		Position:      mgl32.Vec3{3, -1, 3},
		Rotation:      mgl32.Vec3{0, 1.57, 0},
		Scale:         mgl32.Vec3{6, 2.3, 2},
		Model:         ModelWallWindow,
		CastShadow:    true,
		ReceiveShadow: true,
	}

	rug := Group("rug", mgl32.Vec3{-2, -0.95, 2}, 3.6,
		furniture("cabinet", ModelCabinet, mgl32.Vec3{1, 0, -1.1}, 1),
		furniture("lamp", ModelLamp, mgl32.Vec3{0, 0, -1.2}, furnitureScale),
		furniture("plant", ModelPlant, mgl32.Vec3{1.3, 0, 0.2}, furnitureScale),
		furniture("lamp-2", ModelLamp, mgl32.Vec3{0, 0, -1.2}, furnitureScale),
		furniture("radio", ModelRadio, mgl32.Vec3{1, 0.25, -1.2}, furnitureScale),
	)
	rug.Model = ModelRug
	rug.ReceiveShadow = true

	return Group("room", mgl32.Vec3{}, 1,
		floor,
		ceiling,
		backWall,
		leftWall,
		window,
		Group("furniture", mgl32.Vec3{}, 1,
			furniture("bed", ModelBed, mgl32.Vec3{-1.5, -1, 0}, 2.4),
			rug,
		),
	)
}

func furniture(name, model string, pos mgl32.Vec3, scale float32) *Node {
	n := Group(name, pos, scale)
	n.Model = model
	n.CastShadow = true
	n.ReceiveShadow = true
	return n
}
