package platform

import (
	"testing"
	"time"

	"github.com/hubastard/backdrop/engine/backdrop"
	"github.com/hubastard/backdrop/engine/fallback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadlessActivatesFallback(t *testing.T) {
	host := NewHeadless(96, 54)
	a := backdrop.Activate(host, host, backdrop.Options{})

	assert.Equal(t, backdrop.ModeFallback, a.Mode())
	assert.ErrorIs(t, a.Err(), backdrop.ErrCapabilityUnavailable)
	assert.ErrorIs(t, a.Err(), ErrNoAcceleration)
	require.Len(t, host.Children(), 1)
	assert.IsType(t, &fallback.Node{}, host.Children()[0])
	assert.Equal(t, 0, host.Tick(16*time.Millisecond), "the fallback schedules no frames")

	img, err := host.Snapshot(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, 96, img.Bounds().Dx())
	assert.Equal(t, 54, img.Bounds().Dy())

	a.Deactivate()
	assert.Empty(t, host.Children())
	_, err = host.Snapshot(0)
	assert.Error(t, err)
}

func TestHeadlessTickAdvancesClock(t *testing.T) {
	host := NewHeadless(10, 10)
	var got []time.Duration
	host.RequestFrame(func(now time.Duration) { got = append(got, now) })
	id := host.RequestFrame(func(time.Duration) { t.Error("cancelled frame ran") })
	host.CancelFrame(id)

	assert.Equal(t, 1, host.Tick(40*time.Millisecond))
	assert.Equal(t, 40*time.Millisecond, host.Now())
	assert.Equal(t, []time.Duration{40 * time.Millisecond}, got)
}

func TestHeadlessResizeListeners(t *testing.T) {
	host := NewHeadless(10, 10)
	var a, b [][2]int
	cancelA := host.OnResize(func(w, h int) { a = append(a, [2]int{w, h}) })
	host.OnResize(func(w, h int) { b = append(b, [2]int{w, h}) })

	host.Resize(20, 30)
	cancelA()
	cancelA()
	host.Resize(40, 50)

	assert.Equal(t, [][2]int{{20, 30}}, a)
	assert.Equal(t, [][2]int{{20, 30}, {40, 50}}, b)
	w, h := host.Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 50, h)
}

func TestMountListListenerCancelsItself(t *testing.T) {
	var m mountList
	calls := 0
	var cancel func()
	cancel = m.OnResize(func(int, int) {
		calls++
		cancel()
	})
	m.OnResize(func(int, int) { calls++ })

	m.notifyResize(1, 1)
	m.notifyResize(2, 2)
	assert.Equal(t, 3, calls)
}

func TestMountListChildren(t *testing.T) {
	var m mountList
	m.Append("a")
	m.Append("b")
	assert.True(t, m.Contains("a"))

	kids := m.Children()
	kids[0] = "z"
	assert.True(t, m.Contains("a"), "Children returns a copy")

	m.Remove("a")
	m.Remove("missing")
	assert.False(t, m.Contains("a"))
	assert.Len(t, m.Children(), 1)
}
