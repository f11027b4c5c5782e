// Package node provides ValueNode, the concrete output cell animations
// write into.
package node

import "sync"

// ValueNode holds one animated value plus a dirty flag. The animation
// goroutine sets it; any goroutine may read it or consume the flag.
type ValueNode struct {
	mu      sync.Mutex
	value   float64
	dirty   bool
	updates int
}

func New(initial float64) *ValueNode {
	return &ValueNode{value: initial}
}

func (n *ValueNode) Value() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.value
}

func (n *ValueNode) SetValue(v float64) {
	n.mu.Lock()
	n.value = v
	n.updates++
	n.mu.Unlock()
}

func (n *ValueNode) MarkDirty() {
	n.mu.Lock()
	n.dirty = true
	n.mu.Unlock()
}

// Consume returns the current value and whether it changed since the last
// call, clearing the dirty flag.
func (n *ValueNode) Consume() (float64, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	dirty := n.dirty
	n.dirty = false
	return n.value, dirty
}

// Updates counts every SetValue call since construction.
func (n *ValueNode) Updates() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.updates
}
