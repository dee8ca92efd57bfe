package store

import (
	"strings"
	"sync"
)

// hub tracks active subscriptions for a store implementation. Notifications are
// delivered on the writer's goroutine after the write has been applied; no
// ordering is guaranteed between independent writers.
type hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]subscription
	closed bool
}

type subscription struct {
	root string
	l    Listener
}

func newHub() *hub {
	return &hub{subs: make(map[int]subscription)}
}

// add registers a listener rooted at path and returns its disposer.
func (h *hub) add(root string, l Listener) func() {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subs[id] = subscription{root: root, l: l}
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// covers reports whether a subscription rooted at root observes a write at path.
func covers(root, path string) bool {
	return path == root || strings.HasPrefix(path, root+"/")
}

// notify delivers the current subtree to every subscription covering the
// changed path. The snapshot function is invoked per subscription root, outside
// the hub lock.
func (h *hub) notify(changed string, snapshotAt func(root string) (Snapshot, error)) {
	h.mu.Lock()
	var targets []subscription
	for _, sub := range h.subs {
		if covers(sub.root, changed) {
			targets = append(targets, sub)
		}
	}
	h.mu.Unlock()

	for _, sub := range targets {
		snap, err := snapshotAt(sub.root)
		if err != nil {
			if sub.l.OnCancel != nil {
				sub.l.OnCancel(err)
			}
			continue
		}
		if sub.l.OnChange != nil {
			sub.l.OnChange(snap)
		}
	}
}

// cancelAll ends every subscription with err and marks the hub closed.
func (h *hub) cancelAll(err error) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	subs := h.subs
	h.subs = make(map[int]subscription)
	h.mu.Unlock()

	for _, sub := range subs {
		if sub.l.OnCancel != nil {
			sub.l.OnCancel(err)
		}
	}
}
