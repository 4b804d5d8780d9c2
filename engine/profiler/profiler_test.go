package profiler

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartBeforeInitIsNoop(t *testing.T) {
	if Enabled() {
		t.Skip("recording already enabled by another test")
	}
	end := Start("ignored")
	assert.NotPanics(t, end)
	assert.Empty(t, ring.snapshot())
}

func TestDumpNestedSpans(t *testing.T) {
	Init(16)
	outer := Start("backdrop.activate")
	inner := Start("backdrop.compile")
	inner()
	outer()
	Start("backdrop.frame") // left open

	p := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, Dump(p))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	var doc ssFile
	require.NoError(t, json.Unmarshal(b, &doc))

	require.Len(t, doc.Profiles, 1)
	var types []string
	for _, e := range doc.Profiles[0].Events {
		types = append(types, e.Type)
	}
	assert.Equal(t, []string{"O", "O", "C", "C", "O", "C"}, types)

	var frameNames []string
	for _, f := range doc.Shared.Frames {
		frameNames = append(frameNames, f.Name)
	}
	assert.Subset(t, frameNames, []string{"backdrop.activate", "backdrop.compile", "backdrop.frame"})
}

func TestRingKeepsNewest(t *testing.T) {
	Init(4)
	for i := 0; i < 5; i++ {
		Start("span")()
	}
	evs := ring.snapshot()
	require.Len(t, evs, 4)
	assert.True(t, evs[0].open)
	assert.False(t, evs[3].open)
}

func TestDumpEmpty(t *testing.T) {
	Init(4)
	assert.Error(t, Dump(filepath.Join(t.TempDir(), "p.json")))
}
