// Package bt implements a minimal behavior tree: leaves that test or act on
// a shared Blackboard, and Sequence/Selector composites that remember which
// child is still Running so the next tick resumes there.
package bt

// Node is a single node in a behavior tree.
//
// Tick evaluates the node once and never blocks. A node that returns
// StatusRunning makes progress only when its owner ticks it again.
// Reset clears any progress so the next Tick starts fresh.
type Node interface {
	Tick(bb *Blackboard) Status
	Reset()
	Name() string
}

type baseNode struct{ name string }

func (b baseNode) Name() string { return b.name }
