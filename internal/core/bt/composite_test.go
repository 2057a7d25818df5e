package bt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// scripted returns the queued statuses in order, repeating the last one.
type scripted struct {
	name   string
	script []Status
	ticks  int
	resets int
}

func newScripted(name string, script ...Status) *scripted {
	return &scripted{name: name, script: script}
}

func (s *scripted) Tick(*Blackboard) Status {
	i := s.ticks
	if i >= len(s.script) {
		i = len(s.script) - 1
	}
	s.ticks++
	return s.script[i]
}

func (s *scripted) Reset()       { s.resets++ }
func (s *scripted) Name() string { return s.name }

func TestSequence_AllSuccess(t *testing.T) {
	c1 := newScripted("c1", StatusSuccess)
	c2 := newScripted("c2", StatusSuccess)
	c3 := newScripted("c3", StatusSuccess)
	seq := NewSequence("seq", c1, c2, c3)

	assert.Equal(t, StatusSuccess, seq.Tick(NewBlackboard()))
	assert.Equal(t, 0, seq.ActiveChild())
	assert.Equal(t, []int{1, 1, 1}, []int{c1.ticks, c2.ticks, c3.ticks})
}

func TestSequence_FailureResets(t *testing.T) {
	c1 := newScripted("c1", StatusSuccess)
	c2 := newScripted("c2", StatusFailure)
	c3 := newScripted("c3", StatusSuccess)
	seq := NewSequence("seq", c1, c2, c3)

	assert.Equal(t, StatusFailure, seq.Tick(NewBlackboard()))
	assert.Equal(t, 0, seq.ActiveChild())
	assert.Equal(t, 0, c3.ticks)
	assert.Equal(t, 1, c1.resets)
	assert.Equal(t, 1, c2.resets)
	assert.Equal(t, 1, c3.resets)
}

func TestSequence_RunningResumesAtSameChild(t *testing.T) {
	c1 := newScripted("c1", StatusSuccess)
	c2 := newScripted("c2", StatusRunning, StatusRunning, StatusSuccess)
	c3 := newScripted("c3", StatusSuccess)
	seq := NewSequence("seq", c1, c2, c3)
	bb := NewBlackboard()

	assert.Equal(t, StatusRunning, seq.Tick(bb))
	assert.Equal(t, 1, seq.ActiveChild())
	assert.Equal(t, 0, c2.resets)

	assert.Equal(t, StatusRunning, seq.Tick(bb))
	assert.Equal(t, 1, seq.ActiveChild())

	assert.Equal(t, StatusSuccess, seq.Tick(bb))
	assert.Equal(t, 0, seq.ActiveChild())

	assert.Equal(t, 1, c1.ticks, "completed children are not re-ticked")
	assert.Equal(t, 3, c2.ticks)
	assert.Equal(t, 1, c3.ticks)
}

func TestSequence_Empty(t *testing.T) {
	seq := NewSequence("empty")
	assert.Equal(t, StatusSuccess, seq.Tick(NewBlackboard()))
	assert.Equal(t, 0, seq.ActiveChild())
}

func TestSelector_FirstSuccessWins(t *testing.T) {
	c1 := newScripted("c1", StatusFailure)
	c2 := newScripted("c2", StatusSuccess)
	c3 := newScripted("c3", StatusSuccess)
	sel := NewSelector("sel", c1, c2, c3)

	assert.Equal(t, StatusSuccess, sel.Tick(NewBlackboard()))
	assert.Equal(t, 0, sel.ActiveChild())
	assert.Equal(t, 0, c3.ticks)
	assert.Equal(t, 1, c3.resets)
}

func TestSelector_AllFailure(t *testing.T) {
	c1 := newScripted("c1", StatusFailure)
	c2 := newScripted("c2", StatusFailure)
	sel := NewSelector("sel", c1, c2)

	assert.Equal(t, StatusFailure, sel.Tick(NewBlackboard()))
	assert.Equal(t, 0, sel.ActiveChild())
	assert.Equal(t, []int{1, 1}, []int{c1.ticks, c2.ticks})
}

func TestSelector_RunningResumesAtSameChild(t *testing.T) {
	c1 := newScripted("c1", StatusFailure)
	c2 := newScripted("c2", StatusRunning, StatusFailure)
	c3 := newScripted("c3", StatusSuccess)
	sel := NewSelector("sel", c1, c2, c3)
	bb := NewBlackboard()

	assert.Equal(t, StatusRunning, sel.Tick(bb))
	assert.Equal(t, 1, sel.ActiveChild())

	assert.Equal(t, StatusSuccess, sel.Tick(bb))
	assert.Equal(t, 0, sel.ActiveChild())
	assert.Equal(t, 1, c1.ticks)
	assert.Equal(t, 2, c2.ticks)
	assert.Equal(t, 1, c3.ticks)
}

func TestSelector_Empty(t *testing.T) {
	sel := NewSelector("empty")
	assert.Equal(t, StatusFailure, sel.Tick(NewBlackboard()))
}

func TestComposite_ResetIsRecursive(t *testing.T) {
	leaf := newScripted("leaf", StatusRunning)
	inner := NewSequence("inner", newScripted("ok", StatusSuccess), leaf)
	outer := NewSelector("outer", newScripted("no", StatusFailure), inner)
	bb := NewBlackboard()

	assert.Equal(t, StatusRunning, outer.Tick(bb))
	assert.Equal(t, 1, outer.ActiveChild())
	assert.Equal(t, 1, inner.ActiveChild())

	outer.Reset()
	assert.Equal(t, 0, outer.ActiveChild())
	assert.Equal(t, 0, inner.ActiveChild())
	assert.Equal(t, 1, leaf.resets)
}

func TestComposite_ChildrenFixedAtConstruction(t *testing.T) {
	a := newScripted("a", StatusSuccess)
	list := []Node{a}
	seq := NewSequence("seq", list...)
	list[0] = newScripted("b", StatusFailure)

	assert.Equal(t, StatusSuccess, seq.Tick(NewBlackboard()))
	got := seq.Children()
	got[0] = nil
	assert.Same(t, a, seq.Children()[0])
}

func TestLeaves(t *testing.T) {
	bb := NewBlackboard()
	bb.Set("hp", 10)

	low := NewCondition("low", func(bb *Blackboard) bool { return bb.Get("hp") < 30 })
	assert.Equal(t, StatusSuccess, low.Tick(bb))
	bb.Set("hp", 80)
	assert.Equal(t, StatusFailure, low.Tick(bb))
	assert.Equal(t, StatusFailure, NewCondition("nil", nil).Tick(bb))

	act := NewAction("act", func(*Blackboard) Status { return StatusRunning })
	assert.Equal(t, StatusRunning, act.Tick(bb))
	assert.Equal(t, StatusFailure, NewAction("nil", nil).Tick(bb))
	assert.Equal(t, "act", act.Name())
}

func TestStatus_Text(t *testing.T) {
	for _, st := range []Status{StatusSuccess, StatusFailure, StatusRunning} {
		text, err := st.MarshalText()
		assert.NoError(t, err)
		var got Status
		assert.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, st, got)
	}
	_, err := Status(9).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "Status(9)", Status(9).String())
	assert.False(t, StatusRunning.IsTerminal())
	assert.True(t, StatusFailure.IsTerminal())
}
