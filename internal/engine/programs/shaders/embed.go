// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// Color2DVertexShader places the unit rectangle with uTransform.
//
//go:embed color_2d.vert
var Color2DVertexShader string

// Color2DFragmentShader fills with uColor scaled by uOpacity.
//
//go:embed color_2d.frag
var Color2DFragmentShader string

// Color2DGradientVertexShader passes per-vertex colors through.
//
//go:embed color_2d_gradient.vert
var Color2DGradientVertexShader string

// Color2DGradientFragmentShader applies uOpacity to the interpolated color.
//
//go:embed color_2d_gradient.frag
var Color2DGradientFragmentShader string

// Graph3DVertexShader displaces the grid by aY and lights it with aNormal.
//
//go:embed graph_3d.vert
var Graph3DVertexShader string

// VaryingColorFragmentShader outputs the color computed per vertex.
//
//go:embed varying_color.frag
var VaryingColorFragmentShader string
