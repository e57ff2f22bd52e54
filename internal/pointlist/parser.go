// Package pointlist parses the free-text vertex lists typed into the lab,
// e.g. "1,1; 3,1; 3,3; 1,3".
package pointlist

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/inamate/transformlab/internal/document"
	"github.com/inamate/transformlab/internal/engine"
)

// MinPoints is the smallest shape the lab will draw.
const MinPoints = 2

var (
	ErrMalformed    = errors.New("malformed point list, use the form 'x1,y1; x2,y2'")
	ErrTooFewPoints = fmt.Errorf("enter at least %d points (x,y) separated by semicolons", MinPoints)
)

var parser = participle.MustBuild[pointList](
	participle.Lexer(pointLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Parse turns text into a shape of at least MinPoints points. Errors wrap
// ErrMalformed or ErrTooFewPoints.
func Parse(text string) (engine.Shape, error) {
	if strings.Trim(text, " \t\r\n;") == "" {
		return nil, ErrTooFewPoints
	}

	list, err := parser.ParseString("", text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	shape := make(engine.Shape, 0, len(list.Points))
	for _, p := range list.Points {
		shape = append(shape, engine.Point{X: p.X, Y: p.Y})
	}

	if len(shape) < MinPoints {
		return nil, ErrTooFewPoints
	}
	return shape, nil
}

// ParseOrFallback is Parse, except that on failure it returns the fallback
// shape alongside the error so the caller can keep drawing something.
func ParseOrFallback(text string) (engine.Shape, error) {
	shape, err := Parse(text)
	if err != nil {
		return document.FallbackShape(), err
	}
	return shape, nil
}

// Format renders a shape back into the text form Parse accepts.
func Format(s engine.Shape) string {
	var b strings.Builder
	for i, p := range s {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(strconv.FormatFloat(p.X, 'g', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(p.Y, 'g', -1, 64))
	}
	return b.String()
}
