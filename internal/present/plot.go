package present

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/inamate/transformlab/internal/engine"
)

// DefaultPlotSize is the edge length in pixels of a rendered plot.
const DefaultPlotSize = 640

const (
	plotMargin  = 40
	minPlotSize = 200
	maxPlotSize = 4096
)

var (
	colorBackground  = color.RGBA{255, 255, 255, 255}
	colorGrid        = color.RGBA{220, 220, 220, 255}
	colorAxis        = color.RGBA{128, 128, 128, 255}
	colorText        = color.RGBA{0, 0, 0, 255}
	colorOriginal    = color.NRGBA{0, 0, 255, 153}
	colorTransformed = color.NRGBA{255, 0, 0, 230}
)

// PlotOptions controls RenderPNG.
type PlotOptions struct {
	// Size is the image edge in pixels; zero means DefaultPlotSize.
	Size  int
	Title string
}

// RenderPNG draws the original shape (blue, circles) and the transformed
// shape (red, stars) as closed polygons on a square, axis-equal grid sized
// by AxisLimit, labels every vertex, and encodes the image as PNG.
func RenderPNG(w io.Writer, original, transformed engine.Shape, opts PlotOptions) error {
	size := opts.Size
	if size == 0 {
		size = DefaultPlotSize
	}
	if size < minPlotSize || size > maxPlotSize {
		return fmt.Errorf("plot size %d outside [%d, %d]", size, minPlotSize, maxPlotSize)
	}

	c := newCanvas(size, AxisLimit(original, transformed))
	c.grid()
	c.polygon(original, colorOriginal, false)
	c.polygon(transformed, colorTransformed, true)

	for i, p := range original {
		x, y := c.toPixel(p)
		c.text(x+4, y-4, Label(i, p, false, LabelDecimals), colorOriginal, false)
	}
	for i, p := range transformed {
		x, y := c.toPixel(p)
		c.text(x-4, y-4, Label(i, p, true, LabelDecimals), colorTransformed, true)
	}

	if opts.Title != "" {
		c.text(float32(size)/2+float32(font.MeasureString(basicfont.Face7x13, opts.Title).Round())/2, plotMargin/2, opts.Title, colorText, true)
	}
	c.text(float32(size-plotMargin), float32(size-plotMargin/4), "X axis", colorText, true)
	c.text(4, plotMargin/2, "Y axis", colorText, false)

	return png.Encode(w, c.img)
}

type canvas struct {
	img   *image.RGBA
	ras   *vector.Rasterizer
	size  int
	limit float64
	scale float64 // pixels per unit
}

func newCanvas(size int, limit float64) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = colorBackground.R
		img.Pix[i+1] = colorBackground.G
		img.Pix[i+2] = colorBackground.B
		img.Pix[i+3] = colorBackground.A
	}
	return &canvas{
		img:   img,
		ras:   vector.NewRasterizer(size, size),
		size:  size,
		limit: limit,
		scale: float64(size-2*plotMargin) / (2 * limit),
	}
}

// toPixel maps plot coordinates to image coordinates; y grows downward.
func (c *canvas) toPixel(p engine.Point) (float32, float32) {
	x := plotMargin + (p.X+c.limit)*c.scale
	y := plotMargin + (c.limit-p.Y)*c.scale
	return float32(x), float32(y)
}

func (c *canvas) fill(col color.Color, path func(z *vector.Rasterizer)) {
	c.ras.Reset(c.size, c.size)
	path(c.ras)
	c.ras.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

// segment strokes a straight line as a thin quad.
func (c *canvas) segment(x0, y0, x1, y1, width float32, col color.Color) {
	dx, dy := x1-x0, y1-y0
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	c.fill(col, func(z *vector.Rasterizer) {
		z.MoveTo(x0+nx, y0+ny)
		z.LineTo(x1+nx, y1+ny)
		z.LineTo(x1-nx, y1-ny)
		z.LineTo(x0-nx, y0-ny)
		z.ClosePath()
	})
}

// pattern strokes a line as alternating on/off runs.
func (c *canvas) pattern(x0, y0, x1, y1, width, on, off float32, col color.Color) {
	dx, dy := x1-x0, y1-y0
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length
	for d := float32(0); d < length; d += on + off {
		end := min(d+on, length)
		c.segment(x0+ux*d, y0+uy*d, x0+ux*end, y0+uy*end, width, col)
	}
}

func (c *canvas) grid() {
	step := math.Max(1, math.Ceil(c.limit/10))
	left, bottom := c.toPixel(engine.Point{X: -c.limit, Y: -c.limit})
	right, top := c.toPixel(engine.Point{X: c.limit, Y: c.limit})

	for v := -c.limit; v <= c.limit; v += step {
		x, _ := c.toPixel(engine.Point{X: v})
		_, y := c.toPixel(engine.Point{Y: v})
		c.pattern(x, top, x, bottom, 1, 1, 3, colorGrid)
		c.pattern(left, y, right, y, 1, 1, 3, colorGrid)
	}

	ox, oy := c.toPixel(engine.Point{})
	c.pattern(ox, top, ox, bottom, 1, 6, 4, colorAxis)
	c.pattern(left, oy, right, oy, 1, 6, 4, colorAxis)
}

// polygon draws s closed, with a marker at each vertex.
func (c *canvas) polygon(s engine.Shape, col color.Color, star bool) {
	for i, p := range s {
		x0, y0 := c.toPixel(p)
		x1, y1 := c.toPixel(s[(i+1)%len(s)])
		c.segment(x0, y0, x1, y1, 2, col)
	}
	for _, p := range s {
		x, y := c.toPixel(p)
		if star {
			c.star(x, y, 7, col)
		} else {
			c.circle(x, y, 4, col)
		}
	}
}

func (c *canvas) circle(cx, cy, r float32, col color.Color) {
	const sides = 16
	c.fill(col, func(z *vector.Rasterizer) {
		for i := range sides {
			a := 2 * math.Pi * float64(i) / sides
			x := cx + r*float32(math.Cos(a))
			y := cy + r*float32(math.Sin(a))
			if i == 0 {
				z.MoveTo(x, y)
			} else {
				z.LineTo(x, y)
			}
		}
		z.ClosePath()
	})
}

func (c *canvas) star(cx, cy, r float32, col color.Color) {
	const points = 5
	c.fill(col, func(z *vector.Rasterizer) {
		for i := range 2 * points {
			rad := r
			if i%2 == 1 {
				rad = r * 0.4
			}
			a := -math.Pi/2 + math.Pi*float64(i)/points
			x := cx + rad*float32(math.Cos(a))
			y := cy + rad*float32(math.Sin(a))
			if i == 0 {
				z.MoveTo(x, y)
			} else {
				z.LineTo(x, y)
			}
		}
		z.ClosePath()
	})
}

// text draws s with its baseline at y. When alignRight is set, x is where
// the text ends instead of where it starts.
func (c *canvas) text(x, y float32, s string, col color.Color, alignRight bool) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
	}
	if alignRight {
		x -= float32(d.MeasureString(s).Round())
	}
	d.Dot = fixed.P(int(x), int(y))
	d.DrawString(s)
}
