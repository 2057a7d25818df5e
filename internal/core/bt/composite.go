package bt

// composite holds the ordered children of a Sequence or Selector and the
// index of the child to resume on the next tick.
type composite struct {
	baseNode
	children []Node
	active   int
}

func newComposite(name string, children []Node) composite {
	cp := make([]Node, len(children))
	copy(cp, children)
	return composite{baseNode: baseNode{name: name}, children: cp}
}

// ActiveChild returns the index of the child the next tick starts from.
// It is non-zero only while the composite is Running.
func (c *composite) ActiveChild() int { return c.active }

// Children returns a copy of the child list in evaluation order.
func (c *composite) Children() []Node {
	cp := make([]Node, len(c.children))
	copy(cp, c.children)
	return cp
}

// Reset rewinds to the first child and resets every descendant.
func (c *composite) Reset() {
	c.active = 0
	for _, ch := range c.children {
		ch.Reset()
	}
}

// run ticks children from the active index. A child returning stop ends the
// run with stop; a child returning Running suspends with the index kept;
// any other status advances to the next child in the same tick. When the
// children are exhausted the run ends with exhausted.
func (c *composite) run(bb *Blackboard, stop, exhausted Status) Status {
	for c.active < len(c.children) {
		switch c.children[c.active].Tick(bb) {
		case StatusRunning:
			return StatusRunning
		case stop:
			c.Reset()
			return stop
		}
		c.active++
	}
	c.Reset()
	return exhausted
}

// Sequence runs children in order and succeeds only if all of them succeed.
// It stops at the first failure or the first child still running.
type Sequence struct{ composite }

func NewSequence(name string, children ...Node) *Sequence {
	return &Sequence{composite: newComposite(name, children)}
}

func (s *Sequence) Tick(bb *Blackboard) Status {
	return s.run(bb, StatusFailure, StatusSuccess)
}

// Selector runs children in order and succeeds as soon as one succeeds.
// It fails only if every child fails.
type Selector struct{ composite }

func NewSelector(name string, children ...Node) *Selector {
	return &Selector{composite: newComposite(name, children)}
}

func (s *Selector) Tick(bb *Blackboard) Status {
	return s.run(bb, StatusSuccess, StatusFailure)
}
