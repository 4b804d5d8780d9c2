// Package profiler records nested timing spans into a fixed ring and dumps
// them in speedscope's evented format. Recording is off until Init; Start
// is then a single atomic load.
package profiler

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Init enables recording with room for capacity span events. Older events
// are overwritten once the ring is full.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 16
	}
	ring.init(capacity)
}

// Enabled reports whether Init was called.
func Enabled() bool { return ring.ready.Load() }

// Start opens a span and returns the func that closes it.
//
//	defer profiler.Start("backdrop.frame")()
func Start(name string) func() {
	if !ring.ready.Load() {
		return func() {}
	}
	id := names.intern(name)
	begin := time.Now().UnixNano()
	ring.push(event{at: begin, name: id, open: true})
	return func() {
		end := time.Now().UnixNano()
		if end < begin {
			end = begin
		}
		ring.push(event{at: end, name: id})
	}
}

type event struct {
	at   int64
	name int
	open bool
}

type eventRing struct {
	ready atomic.Bool
	mu    sync.Mutex
	evs   []event
	n     uint64
}

func (r *eventRing) init(capacity int) {
	r.mu.Lock()
	r.evs = make([]event, capacity)
	r.n = 0
	r.mu.Unlock()
	r.ready.Store(true)
}

func (r *eventRing) push(e event) {
	r.mu.Lock()
	r.evs[r.n%uint64(len(r.evs))] = e
	r.n++
	r.mu.Unlock()
}

// snapshot returns the retained events in write order.
func (r *eventRing) snapshot() []event {
	r.mu.Lock()
	defer r.mu.Unlock()
	size := uint64(len(r.evs))
	start := uint64(0)
	if r.n > size {
		start = r.n - size
	}
	out := make([]event, 0, r.n-start)
	for k := start; k < r.n; k++ {
		out = append(out, r.evs[k%size])
	}
	return out
}

var ring eventRing

type interner struct {
	mu    sync.Mutex
	list  []string
	index map[string]int
}

func (in *interner) intern(name string) int {
	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.index[name]; ok {
		return id
	}
	if in.index == nil {
		in.index = map[string]int{}
	}
	id := len(in.list)
	in.index[name] = id
	in.list = append(in.list, name)
	return id
}

func (in *interner) all() []string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return append([]string(nil), in.list...)
}

var names interner

// speedscope file format, evented profile only.
type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"`
	At    int64  `json:"at"`
	Frame int    `json:"frame"`
}

// Dump writes the recorded spans to path. Closes without a matching open
// (the ring wrapped mid-span) are dropped and spans still open are closed
// at the last timestamp.
func Dump(path string) error {
	evs := ring.snapshot()
	if len(evs) == 0 {
		return fmt.Errorf("profiler: no events to dump")
	}
	frames := names.all()
	doc := ssFile{
		Schema:   "https://www.speedscope.app/file-format-schema.json",
		Shared:   ssShared{Frames: make([]ssFrame, len(frames))},
		Exporter: "backdrop",
	}
	for i, n := range frames {
		doc.Shared.Frames[i] = ssFrame{Name: n}
	}

	base := evs[0].at
	var (
		out   []ssEvent
		stack []int
		last  int64
	)
	for _, e := range evs {
		at := max((e.at-base)/int64(time.Microsecond), last)
		if e.open {
			stack = append(stack, e.name)
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.name {
				continue
			}
			stack = stack[:len(stack)-1]
		}
		typ := "C"
		if e.open {
			typ = "O"
		}
		out = append(out, ssEvent{Type: typ, At: at, Frame: e.name})
		last = at
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}

	doc.Profiles = []ssProfile{{
		Type:     "evented",
		Name:     "backdrop",
		Unit:     "microseconds",
		EndValue: last,
		Events:   out,
	}}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("profiler: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("profiler: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("profiler: %w", err)
	}
	return os.Rename(tmp, path)
}
