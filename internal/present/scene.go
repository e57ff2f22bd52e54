package present

import (
	"fmt"
	"math"

	"github.com/inamate/transformlab/internal/engine"
)

// PathCommand is one Canvas2D path verb followed by its arguments,
// e.g. {"M", x, y}, {"L", x, y} or {"Z"}.
type PathCommand []any

// DrawCommand represents a single drawing operation for the frontend to execute.
// Coordinates are in plot units; Transform maps them to canvas pixels.
type DrawCommand struct {
	Op          string        `json:"op"`                 // "path", "marker" or "text"
	ObjectID    string        `json:"objectId,omitempty"` // For hit correlation
	Transform   []float64     `json:"transform"`          // [a, b, c, d, e, f] affine matrix
	Path        []PathCommand `json:"path,omitempty"`
	Stroke      string        `json:"stroke,omitempty"`
	StrokeWidth float64       `json:"strokeWidth,omitempty"` // pixels
	Dash        []float64     `json:"dash,omitempty"`        // pixels
	Fill        string        `json:"fill,omitempty"`
	Marker      string        `json:"marker,omitempty"` // "circle" or "star"
	X           float64       `json:"x,omitempty"`
	Y           float64       `json:"y,omitempty"`
	Text        string        `json:"text,omitempty"`
}

const markerRadius = 7 // pixels

// View maps plot coordinates in [-limit, limit] to a size x size canvas with
// y growing downward, leaving the plot margin on every side.
func View(limit float64, size int) engine.Matrix2D {
	s := float64(size-2*plotMargin) / (2 * limit)
	half := float64(size) / 2
	return engine.TranslateMatrix(half, half).Multiply(engine.ScaleMatrix(s, -s))
}

// VertexID names vertex i the way the table does, without coordinates.
func VertexID(i int, primed bool) string {
	if primed {
		return fmt.Sprintf("P'%d", i+1)
	}
	return fmt.Sprintf("P%d", i+1)
}

// Scene compiles the same picture RenderPNG draws into draw commands, in
// painter's order (back to front).
func Scene(original, transformed engine.Shape, size int) ([]DrawCommand, error) {
	if size == 0 {
		size = DefaultPlotSize
	}
	if size < minPlotSize || size > maxPlotSize {
		return nil, fmt.Errorf("plot size %d outside [%d, %d]", size, minPlotSize, maxPlotSize)
	}

	limit := AxisLimit(original, transformed)
	view := View(limit, size).ToSlice()

	var grid []PathCommand
	step := math.Max(1, math.Ceil(limit/10))
	for v := -limit; v <= limit; v += step {
		grid = append(grid,
			PathCommand{"M", v, -limit}, PathCommand{"L", v, limit},
			PathCommand{"M", -limit, v}, PathCommand{"L", limit, v},
		)
	}

	commands := []DrawCommand{
		{Op: "path", Transform: view, Path: grid, Stroke: cssColor(colorGrid), StrokeWidth: 1, Dash: []float64{1, 3}},
		{Op: "path", Transform: view, Stroke: cssColor(colorAxis), StrokeWidth: 1, Dash: []float64{6, 4}, Path: []PathCommand{
			{"M", -limit, 0.0}, {"L", limit, 0.0},
			{"M", 0.0, -limit}, {"L", 0.0, limit},
		}},
	}

	compileShape(&commands, original, view, false)
	compileShape(&commands, transformed, view, true)
	return commands, nil
}

func compileShape(commands *[]DrawCommand, s engine.Shape, view []float64, primed bool) {
	if len(s) == 0 {
		return
	}

	id, col, marker := "original", cssColor(colorOriginal), "circle"
	if primed {
		id, col, marker = "transformed", cssColor(colorTransformed), "star"
	}

	path := make([]PathCommand, 0, len(s)+1)
	for i, p := range s {
		verb := "L"
		if i == 0 {
			verb = "M"
		}
		path = append(path, PathCommand{verb, p.X, p.Y})
	}
	path = append(path, PathCommand{"Z"})
	*commands = append(*commands, DrawCommand{Op: "path", ObjectID: id, Transform: view, Path: path, Stroke: col, StrokeWidth: 2})

	for i, p := range s {
		*commands = append(*commands,
			DrawCommand{Op: "marker", ObjectID: VertexID(i, primed), Transform: view, Marker: marker, Fill: col, X: p.X, Y: p.Y},
			DrawCommand{Op: "text", ObjectID: VertexID(i, primed), Transform: view, Fill: col, X: p.X, Y: p.Y, Text: Label(i, p, primed, LabelDecimals)},
		)
	}
}

// HitTest returns the id of the vertex marker under canvas pixel (px, py),
// or "" if there is none or size is out of range. Transformed vertices are
// drawn last, so they win.
func HitTest(original, transformed engine.Shape, size int, px, py float64) string {
	if size == 0 {
		size = DefaultPlotSize
	}
	if size < minPlotSize || size > maxPlotSize {
		return ""
	}
	view := View(AxisLimit(original, transformed), size)
	inv, ok := view.Invert()
	if !ok {
		return ""
	}
	p := inv.TransformPoint(engine.Point{X: px, Y: py})
	r := markerRadius / view[0]

	for _, layer := range []struct {
		shape  engine.Shape
		primed bool
	}{{transformed, true}, {original, false}} {
		for i := len(layer.shape) - 1; i >= 0; i-- {
			v := layer.shape[i]
			box := engine.Rect{X: v.X - r, Y: v.Y - r, Width: 2 * r, Height: 2 * r}
			if box.Contains(p) {
				return VertexID(i, layer.primed)
			}
		}
	}
	return ""
}

func cssColor(c interface{ RGBA() (r, g, b, a uint32) }) string {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return "rgba(0, 0, 0, 0)"
	}
	// RGBA is alpha-premultiplied.
	return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", r*255/a, g*255/a, b*255/a, float64(a)/0xffff)
}
