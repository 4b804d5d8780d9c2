package fallback

import (
	"testing"
	"time"

	"github.com/hubastard/backdrop/engine/colors"
	"github.com/hubastard/backdrop/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type list struct{ nodes []core.Node }

func (l *list) Size() (int, int)   { return 64, 32 }
func (l *list) Append(n core.Node) { l.nodes = append(l.nodes, n) }
func (l *list) OnResize(func(int, int)) func() {
	return func() {}
}

func (l *list) Remove(n core.Node) {
	for i, x := range l.nodes {
		if x == n {
			l.nodes = append(l.nodes[:i], l.nodes[i+1:]...)
			return
		}
	}
}

func (l *list) Contains(n core.Node) bool {
	for _, x := range l.nodes {
		if x == n {
			return true
		}
	}
	return false
}

func TestPositionLoops(t *testing.T) {
	g := DefaultGradient()

	assert.InDelta(t, 0, g.Position(0), 1e-6)
	assert.InDelta(t, 1, g.Position(g.Period/2), 1e-5)
	assert.InDelta(t, 0.5, g.Position(g.Period/4), 1e-5)
	assert.InDelta(t, 0, g.Position(g.Period), 1e-6)
	assert.InDelta(t, g.Position(3*time.Second), g.Position(g.Period+3*time.Second), 1e-5)
	// Symmetric around the midpoint.
	assert.InDelta(t, g.Position(2*time.Second), g.Position(g.Period-2*time.Second), 1e-5)

	for ts := time.Duration(0); ts < g.Period; ts += 250 * time.Millisecond {
		p := g.Position(ts)
		assert.GreaterOrEqual(t, p, float32(0))
		assert.LessOrEqual(t, p, float32(1))
	}

	g.Period = 0
	assert.Equal(t, float32(0), g.Position(time.Second))
}

func TestLineSpansScaledBackground(t *testing.T) {
	g := Gradient{Angle: 90, Scale: 4, Period: time.Second, Stops: []colors.Color{colors.Black}}

	// 90 degrees points right: the axis is horizontal through the center.
	x0, y0, x1, y1 := g.Line(0, 100, 50)
	assert.InDelta(t, 0, x0, 1e-3)
	assert.InDelta(t, 400, x1, 1e-3)
	assert.InDelta(t, 25, y0, 1e-3)
	assert.InDelta(t, 25, y1, 1e-3)

	// Halfway through the loop the background has slid fully left.
	x0, _, x1, _ = g.Line(g.Period/2, 100, 50)
	assert.InDelta(t, -300, x0, 1e-2)
	assert.InDelta(t, 100, x1, 1e-2)
}

func TestRasterize(t *testing.T) {
	g := DefaultGradient()
	img, err := g.Rasterize(time.Second, 40, 20)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())

	_, _, _, a := img.At(20, 10).RGBA()
	assert.Equal(t, uint32(0xffff), a, "gradient stops are opaque")
}

func TestRasterizeErrors(t *testing.T) {
	g := DefaultGradient()
	_, err := g.Rasterize(0, 0, 10)
	assert.Error(t, err)

	g.Stops = nil
	_, err = g.Rasterize(0, 10, 10)
	assert.ErrorContains(t, err, "no color stops")
}

func TestRenderMountsOneNode(t *testing.T) {
	c := &list{}
	r := NewRenderer()
	n := r.Render(c)

	require.Len(t, c.nodes, 1)
	assert.Same(t, n, c.nodes[0])
	assert.Equal(t, DefaultGradient().Angle, n.Gradient.Angle)

	Unmount(c, n)
	assert.Empty(t, c.nodes)
	assert.NotPanics(t, func() { Unmount(c, n) })
	assert.NotPanics(t, func() { Unmount(c, nil) })
}
