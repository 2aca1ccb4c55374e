package actions

import "github.com/zeusync/rocketbot/internal/core/systems/physics"

type Color struct {
	R, G, B, A uint8
}

var (
	Red    = Color{R: 255, A: 255}
	Green  = Color{G: 255, A: 255}
	Blue   = Color{B: 255, A: 255}
	Yellow = Color{R: 255, G: 255, B: 50, A: 255}
)

type ShapeKind uint8

const (
	ShapeLine ShapeKind = iota
	ShapeText
)

// Shape is a debug-draw primitive. It never feeds back into control.
type Shape struct {
	Kind  ShapeKind
	Start physics.Vec3
	End   physics.Vec3
	Text  string
	Color Color
}

func Line(from, to physics.Vec3, c Color) Shape {
	return Shape{Kind: ShapeLine, Start: from, End: to, Color: c}
}

func Text(at physics.Vec3, text string, c Color) Shape {
	return Shape{Kind: ShapeText, Start: at, Text: text, Color: c}
}

// Cross draws two diagonal lines of the given size in the ground plane at p.
func Cross(p physics.Vec3, size float64, c Color) []Shape {
	h := size / 2
	return []Shape{
		Line(physics.V(p.X-h, p.Y-h, p.Z), physics.V(p.X+h, p.Y+h, p.Z), c),
		Line(physics.V(p.X-h, p.Y+h, p.Z), physics.V(p.X+h, p.Y-h, p.Z), c),
	}
}
