package document

import "github.com/inamate/transformlab/internal/engine"

// DefaultPointsText is the square the lab opens with.
const DefaultPointsText = "1,1; 3,1; 3,3; 1,3"

// FallbackShape is drawn when the typed point list cannot be used.
func FallbackShape() engine.Shape {
	return engine.Shape{{X: 0, Y: 0}, {X: 1, Y: 1}}
}

// DefaultSpec returns the control defaults for kind, or ok=false if kind is
// not a transformation kind.
func DefaultSpec(kind string) (spec Spec, ok bool) {
	t, err := Spec{Kind: kind}.Transformation()
	if err != nil {
		return Spec{}, false
	}
	return FromTransformation(t), true
}

// Defaults lists the control defaults of every transformation kind.
func Defaults() []Spec {
	kinds := []engine.Kind{engine.KindTranslate, engine.KindRotate, engine.KindReflect, engine.KindDilate}
	specs := make([]Spec, 0, len(kinds))
	for _, k := range kinds {
		if s, ok := DefaultSpec(k.String()); ok {
			specs = append(specs, s)
		}
	}
	return specs
}
