package bt

// ConditionFunc is a predicate over the blackboard.
type ConditionFunc func(bb *Blackboard) bool

// ActionFunc performs one step of work. Multi-tick actions keep their
// progress in the blackboard and return StatusRunning until done.
type ActionFunc func(bb *Blackboard) Status

// Condition succeeds when its predicate holds and fails otherwise.
// It never returns StatusRunning.
type Condition struct {
	baseNode
	fn ConditionFunc
}

func NewCondition(name string, fn ConditionFunc) *Condition {
	return &Condition{baseNode: baseNode{name: name}, fn: fn}
}

func (c *Condition) Tick(bb *Blackboard) Status {
	if c.fn == nil {
		return StatusFailure
	}
	if c.fn(bb) {
		return StatusSuccess
	}
	return StatusFailure
}

func (c *Condition) Reset() {}

// Action returns the status of its step verbatim.
type Action struct {
	baseNode
	fn ActionFunc
}

func NewAction(name string, fn ActionFunc) *Action {
	return &Action{baseNode: baseNode{name: name}, fn: fn}
}

func (a *Action) Tick(bb *Blackboard) Status {
	if a.fn == nil {
		return StatusFailure
	}
	return a.fn(bb)
}

// Reset is a no-op: any progress an action tracks lives in the blackboard
// and is cleared by the action itself.
func (a *Action) Reset() {}
