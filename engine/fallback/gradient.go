package fallback

import (
	"fmt"
	"image"
	"image/draw"
	"time"

	"github.com/chewxy/math32"
	"github.com/gogpu/gg"
	"github.com/hubastard/backdrop/engine/colors"
)

// Gradient declares a looping gradient animation: a linear gradient painted
// on a background Scale times the container size, whose horizontal position
// eases from 0% to 100% and back once per Period.
type Gradient struct {
	// Angle follows the CSS convention: 0 points up, 90 points right.
	Angle  float32
	Stops  []colors.Color
	Period time.Duration
	Scale  float32
}

func DefaultGradient() Gradient {
	return Gradient{
		Angle:  135,
		Stops:  []colors.Color{colors.Midnight, colors.Indigo, colors.Violet, colors.Teal},
		Period: 15 * time.Second,
		Scale:  4,
	}
}

// Position is the background position in [0..1] at time t.
func (g Gradient) Position(t time.Duration) float32 {
	if g.Period <= 0 {
		return 0
	}
	phase := math32.Mod(float32(t%g.Period)/float32(g.Period), 1)
	x := phase * 2
	if phase > 0.5 {
		x = (1 - phase) * 2
	}
	return 0.5 - 0.5*math32.Cos(math32.Pi*x)
}

// Line returns the gradient axis in container pixels for a w x h container
// at time t.
func (g Gradient) Line(t time.Duration, w, h int) (x0, y0, x1, y1 float32) {
	scale := g.Scale
	if scale < 1 {
		scale = 1
	}
	fw, fh := float32(w), float32(h)
	bw, bh := fw*scale, fh*scale

	// Background origin: x follows the keyframe, y stays centered.
	ox := -g.Position(t) * (bw - fw)
	oy := -0.5 * (bh - fh)

	s, c := math32.Sincos(g.Angle * math32.Pi / 180)
	dx, dy := s, -c
	half := (math32.Abs(bw*s) + math32.Abs(bh*c)) / 2
	cx, cy := ox+bw/2, oy+bh/2
	return cx - dx*half, cy - dy*half, cx + dx*half, cy + dy*half
}

// Rasterize renders the gradient at time t in software.
func (g Gradient) Rasterize(t time.Duration, w, h int) (*image.RGBA, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("rasterize gradient: invalid size %dx%d", w, h)
	}
	if len(g.Stops) == 0 {
		return nil, fmt.Errorf("rasterize gradient: no color stops")
	}

	dc := gg.NewContext(w, h)
	defer dc.Close()

	x0, y0, x1, y1 := g.Line(t, w, h)
	brush := gg.NewLinearGradientBrush(float64(x0), float64(y0), float64(x1), float64(y1)).
		SetExtend(gg.ExtendPad)
	for i, c := range g.Stops {
		off := 0.0
		if len(g.Stops) > 1 {
			off = float64(i) / float64(len(g.Stops)-1)
		}
		brush.AddColorStop(off, toRGBA(c))
	}
	dc.SetFillBrush(brush)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("rasterize gradient: %w", err)
	}

	img := dc.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out, nil
}

func toRGBA(c colors.Color) gg.RGBA {
	return gg.RGBA{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}
}
