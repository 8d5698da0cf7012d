// Package shaders embeds the GLSL sources for the room renderer.
package shaders

import _ "embed"

// Depth-only pass into the shadow map.
var (
	//go:embed shadow.vert
	ShadowVertexShader string
	//go:embed shadow.frag
	ShadowFragmentShader string
)

// Lit pass for primitives and models.
var (
	//go:embed room.vert
	RoomVertexShader string
	//go:embed room.frag
	RoomFragmentShader string
)
