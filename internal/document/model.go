package document

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/inamate/transformlab/internal/engine"
)

var (
	ErrNotFinite    = errors.New("parameter must be a finite number")
	ErrMissingKind  = errors.New("transformation kind is required")
	ErrInvalidParam = errors.New("invalid parameter")
)

// Defaults the lab controls start at.
const (
	DefaultDX          = 2.0
	DefaultDY          = 1.0
	DefaultAngle       = 90.0
	DefaultScaleFactor = 2.0
	DefaultAxis        = "x"
)

// Spec is the wire form of a transformation. Only the fields relevant to
// Kind are read; omitted fields take the lab defaults.
type Spec struct {
	Kind string `json:"kind"`

	// translate
	DX *float64 `json:"dx,omitempty"`
	DY *float64 `json:"dy,omitempty"`

	// rotate
	AngleDegrees *float64 `json:"angleDegrees,omitempty"`

	// dilate
	ScaleFactor *float64 `json:"scaleFactor,omitempty"`

	// rotate, dilate
	CenterX *float64 `json:"centerX,omitempty"`
	CenterY *float64 `json:"centerY,omitempty"`

	// reflect
	Axis string `json:"axis,omitempty"`
}

// Transformation validates the spec and converts it to an engine value.
func (s Spec) Transformation() (engine.Transformation, error) {
	if s.Kind == "" {
		return nil, ErrMissingKind
	}
	kind, err := engine.ParseKind(s.Kind)
	if err != nil {
		return nil, err
	}

	params := []struct {
		name string
		v    *float64
	}{
		{"dx", s.DX},
		{"dy", s.DY},
		{"angleDegrees", s.AngleDegrees},
		{"scaleFactor", s.ScaleFactor},
		{"centerX", s.CenterX},
		{"centerY", s.CenterY},
	}
	for _, p := range params {
		if p.v != nil && (math.IsNaN(*p.v) || math.IsInf(*p.v, 0)) {
			return nil, fmt.Errorf("%s: %w", p.name, ErrNotFinite)
		}
	}

	switch kind {
	case engine.KindTranslate:
		return engine.Translate{
			DX: valueOr(s.DX, DefaultDX),
			DY: valueOr(s.DY, DefaultDY),
		}, nil
	case engine.KindRotate:
		return engine.Rotate{
			AngleDegrees: valueOr(s.AngleDegrees, DefaultAngle),
			CenterX:      valueOr(s.CenterX, 0),
			CenterY:      valueOr(s.CenterY, 0),
		}, nil
	case engine.KindReflect:
		name := s.Axis
		if name == "" {
			name = DefaultAxis
		}
		axis, err := engine.ParseAxis(name)
		if err != nil {
			return nil, err
		}
		return engine.Reflect{Axis: axis}, nil
	case engine.KindDilate:
		return engine.Dilate{
			ScaleFactor: valueOr(s.ScaleFactor, DefaultScaleFactor),
			CenterX:     valueOr(s.CenterX, 0),
			CenterY:     valueOr(s.CenterY, 0),
		}, nil
	}
	return nil, fmt.Errorf("%w: %v", engine.ErrUnknownKind, kind)
}

// FromTransformation renders t as a fully populated Spec.
func FromTransformation(t engine.Transformation) Spec {
	switch t := t.(type) {
	case engine.Translate:
		return Spec{Kind: t.Kind().String(), DX: &t.DX, DY: &t.DY}
	case engine.Rotate:
		return Spec{Kind: t.Kind().String(), AngleDegrees: &t.AngleDegrees, CenterX: &t.CenterX, CenterY: &t.CenterY}
	case engine.Reflect:
		return Spec{Kind: t.Kind().String(), Axis: t.Axis.String()}
	case engine.Dilate:
		return Spec{Kind: t.Kind().String(), ScaleFactor: &t.ScaleFactor, CenterX: &t.CenterX, CenterY: &t.CenterY}
	}
	return Spec{}
}

// SpecFromQuery reads a Spec from URL query parameters named like the JSON
// fields ("kind", "dx", "angleDegrees", ...).
func SpecFromQuery(q url.Values) (Spec, error) {
	s := Spec{Kind: q.Get("kind"), Axis: q.Get("axis")}

	fields := []struct {
		name string
		dst  **float64
	}{
		{"dx", &s.DX},
		{"dy", &s.DY},
		{"angleDegrees", &s.AngleDegrees},
		{"scaleFactor", &s.ScaleFactor},
		{"centerX", &s.CenterX},
		{"centerY", &s.CenterY},
	}
	for _, f := range fields {
		raw := q.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Spec{}, fmt.Errorf("%w %s=%q", ErrInvalidParam, f.name, raw)
		}
		*f.dst = &v
	}
	return s, nil
}

// TransformRequest is a shape plus the transformation to apply. Points (the
// text form) takes precedence over Shape when both are set.
type TransformRequest struct {
	Points         string       `json:"points,omitempty"`
	Shape          engine.Shape `json:"shape,omitempty"`
	Transformation Spec         `json:"transformation"`
}

// Row is one line of the original-vs-transformed data table.
type Row struct {
	Original    string `json:"original"`
	Transformed string `json:"transformed"`
}

// TransformResult is what the lab shows after a transformation.
type TransformResult struct {
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Transformation Spec         `json:"transformation"`
	Matrix         []float64    `json:"matrix"`
	Original       engine.Shape `json:"original"`
	Transformed    engine.Shape `json:"transformed"`
	Table          []Row        `json:"table"`
	Bounds         engine.Rect  `json:"bounds"`
	AxisLimit      float64      `json:"axisLimit"`
	Warning        string       `json:"warning,omitempty"`
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
