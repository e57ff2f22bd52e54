package engine

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrUnknownKind = errors.New("unknown transformation kind")
	ErrUnknownAxis = errors.New("unknown reflection axis")
)

// Point is a 2D coordinate pair.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Shape is an ordered list of polygon vertices. Order defines edge order;
// duplicates are allowed.
type Shape []Point

// Kind identifies a transformation variant.
type Kind int

const (
	KindTranslate Kind = iota + 1
	KindRotate
	KindReflect
	KindDilate
)

var kindNames = map[Kind]string{
	KindTranslate: "translate",
	KindRotate:    "rotate",
	KindReflect:   "reflect",
	KindDilate:    "dilate",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a kind name (case-insensitive) to a Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if s == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Axis is a line of reflection.
type Axis int

const (
	AxisX Axis = iota + 1
	AxisY
	AxisLineYEqualsX
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x-axis"
	case AxisY:
		return "y-axis"
	case AxisLineYEqualsX:
		return "y=x"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Valid reports whether a is one of the three known axes.
func (a Axis) Valid() bool {
	return a == AxisX || a == AxisY || a == AxisLineYEqualsX
}

// ParseAxis accepts the short and long identifiers of each axis.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x", "x-axis", "x_axis":
		return AxisX, nil
	case "y", "y-axis", "y_axis":
		return AxisY, nil
	case "y=x", "line-y-equals-x", "line_y_equals_x":
		return AxisLineYEqualsX, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAxis, s)
}

// Transformation is one of Translate, Rotate, Reflect or Dilate. The set is
// closed: the unexported method keeps other packages from adding variants.
type Transformation interface {
	// Kind reports which variant this is.
	Kind() Kind
	// Apply maps a single point.
	Apply(p Point) Point
	// Matrix returns the equivalent affine matrix.
	Matrix() Matrix2D

	transformation()
}

// Translate shifts every point by (DX, DY).
type Translate struct {
	DX, DY float64
}

func (Translate) Kind() Kind { return KindTranslate }

func (t Translate) Apply(p Point) Point {
	return Point{X: p.X + t.DX, Y: p.Y + t.DY}
}

func (t Translate) Matrix() Matrix2D { return TranslateMatrix(t.DX, t.DY) }

func (Translate) transformation() {}

// Rotate turns points counter-clockwise by AngleDegrees about
// (CenterX, CenterY). Any angle is accepted.
type Rotate struct {
	AngleDegrees     float64
	CenterX, CenterY float64
}

func (Rotate) Kind() Kind { return KindRotate }

func (r Rotate) Apply(p Point) Point {
	rad := degreesToRadians(r.AngleDegrees)
	cos, sin := math.Cos(rad), math.Sin(rad)

	x := p.X - r.CenterX
	y := p.Y - r.CenterY
	return Point{
		X: x*cos - y*sin + r.CenterX,
		Y: x*sin + y*cos + r.CenterY,
	}
}

func (r Rotate) Matrix() Matrix2D {
	return RotateDegreesMatrix(r.AngleDegrees).AboutCenter(r.CenterX, r.CenterY)
}

func (Rotate) transformation() {}

// Reflect mirrors points across Axis.
type Reflect struct {
	Axis Axis
}

func (Reflect) Kind() Kind { return KindReflect }

// Apply panics on an axis outside AxisX, AxisY and AxisLineYEqualsX.
func (r Reflect) Apply(p Point) Point {
	switch r.Axis {
	case AxisX:
		return Point{X: p.X, Y: -p.Y}
	case AxisY:
		return Point{X: -p.X, Y: p.Y}
	case AxisLineYEqualsX:
		return Point{X: p.Y, Y: p.X}
	}
	panic(fmt.Sprintf("engine: reflect across %v", r.Axis))
}

func (r Reflect) Matrix() Matrix2D {
	switch r.Axis {
	case AxisX:
		return Matrix2D{1, 0, 0, -1, 0, 0}
	case AxisY:
		return Matrix2D{-1, 0, 0, 1, 0, 0}
	case AxisLineYEqualsX:
		return Matrix2D{0, 1, 1, 0, 0, 0}
	}
	panic(fmt.Sprintf("engine: reflect across %v", r.Axis))
}

func (Reflect) transformation() {}

// Dilate scales points by ScaleFactor about (CenterX, CenterY). A factor of
// zero collapses the shape onto the center; a negative factor also reflects
// it through the center.
type Dilate struct {
	ScaleFactor      float64
	CenterX, CenterY float64
}

func (Dilate) Kind() Kind { return KindDilate }

func (d Dilate) Apply(p Point) Point {
	return Point{
		X: (p.X-d.CenterX)*d.ScaleFactor + d.CenterX,
		Y: (p.Y-d.CenterY)*d.ScaleFactor + d.CenterY,
	}
}

func (d Dilate) Matrix() Matrix2D {
	return ScaleMatrix(d.ScaleFactor, d.ScaleFactor).AboutCenter(d.CenterX, d.CenterY)
}

func (Dilate) transformation() {}

// Transform maps every point of shape through t and returns a new shape of
// the same length and order. shape is not modified.
func Transform(shape Shape, t Transformation) Shape {
	out := make(Shape, len(shape))
	for i, p := range shape {
		out[i] = t.Apply(p)
	}
	return out
}

// Validate reports transformations that Apply would reject: a nil value or a
// reflection across an unknown axis.
func Validate(t Transformation) error {
	switch t := t.(type) {
	case nil:
		return fmt.Errorf("%w: nil", ErrUnknownKind)
	case Reflect:
		if !t.Axis.Valid() {
			return fmt.Errorf("%w: %v", ErrUnknownAxis, t.Axis)
		}
	}
	return nil
}

// Compose folds ts into a single matrix. ts[0] is applied first.
func Compose(ts ...Transformation) Matrix2D {
	m := Identity()
	for _, t := range ts {
		m = t.Matrix().Multiply(m)
	}
	return m
}
