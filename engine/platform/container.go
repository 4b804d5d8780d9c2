package platform

import "github.com/hubastard/backdrop/engine/core"

// mountList is the child list and resize listener registry shared by the
// hosts. Listeners run in registration order.
type mountList struct {
	children  []core.Node
	listeners []resizeListener
	nextID    int
}

type resizeListener struct {
	id int
	fn func(w, h int)
}

func (m *mountList) Append(n core.Node) { m.children = append(m.children, n) }

func (m *mountList) Remove(n core.Node) {
	for i, c := range m.children {
		if c == n {
			m.children = append(m.children[:i], m.children[i+1:]...)
			return
		}
	}
}

func (m *mountList) Contains(n core.Node) bool {
	for _, c := range m.children {
		if c == n {
			return true
		}
	}
	return false
}

// Children returns a copy of the mounted nodes.
func (m *mountList) Children() []core.Node {
	return append([]core.Node(nil), m.children...)
}

func (m *mountList) OnResize(fn func(w, h int)) (cancel func()) {
	m.nextID++
	id := m.nextID
	m.listeners = append(m.listeners, resizeListener{id: id, fn: fn})
	return func() {
		for i, l := range m.listeners {
			if l.id == id {
				m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

func (m *mountList) notifyResize(w, h int) {
	// A listener may cancel itself while we iterate.
	ls := append([]resizeListener(nil), m.listeners...)
	for _, l := range ls {
		l.fn(w, h)
	}
}
