// Package present turns an original and a transformed shape into what the
// lab displays: the data table, vertex labels, plot extent and captions.
package present

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/inamate/transformlab/internal/document"
	"github.com/inamate/transformlab/internal/engine"
)

// DefaultTableDecimals matches the precision of the lab's data table.
const DefaultTableDecimals = 2

// LabelDecimals is the precision of the vertex labels drawn on the plot.
const LabelDecimals = 1

// Label names vertex i (zero-based) as P1(x, y), or P'1(x, y) when primed.
func Label(i int, p engine.Point, primed bool, decimals int) string {
	name := "P"
	if primed {
		name = "P'"
	}
	return fmt.Sprintf("%s%d(%.*f, %.*f)", name, i+1, decimals, p.X, decimals, p.Y)
}

// Table pairs each original vertex with its image. Shapes of different
// length are paired up to the shorter one.
func Table(original, transformed engine.Shape, decimals int) []document.Row {
	n := min(len(original), len(transformed))
	rows := make([]document.Row, n)
	for i := range n {
		rows[i] = document.Row{
			Original:    Label(i, original[i], false, decimals),
			Transformed: Label(i, transformed[i], true, decimals),
		}
	}
	return rows
}

// AxisLimit is the half-width of the square, axis-equal view that fits every
// shape: the largest absolute coordinate rounded up, plus one.
func AxisLimit(shapes ...engine.Shape) float64 {
	return math.Ceil(engine.MaxAbs(shapes...)) + 1
}

// Title is the plot heading for a transformation kind.
func Title(k engine.Kind) string {
	name := k.String()
	return "Transformation: " + strings.ToUpper(name[:1]) + name[1:]
}

// Describe summarizes t in one line, e.g. "Rotate by 90° about C(0, 0)".
func Describe(t engine.Transformation) string {
	switch t := t.(type) {
	case engine.Translate:
		return fmt.Sprintf("Translate by T(%s, %s)", num(t.DX), num(t.DY))
	case engine.Rotate:
		return fmt.Sprintf("Rotate by %s° about C(%s, %s)", num(t.AngleDegrees), num(t.CenterX), num(t.CenterY))
	case engine.Reflect:
		if t.Axis == engine.AxisLineYEqualsX {
			return "Reflect across the line y=x"
		}
		return "Reflect across the " + t.Axis.String()
	case engine.Dilate:
		return fmt.Sprintf("Dilate by scale factor k=%s about C(%s, %s)", num(t.ScaleFactor), num(t.CenterX), num(t.CenterY))
	}
	return ""
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
