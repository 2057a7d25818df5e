// Package agent drives behavior trees: one Agent owns a tree and its
// blackboard and ticks it on a cadence, a Manager steps many agents.
package agent

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zeusync/behavior/internal/core/bt"
	"github.com/zeusync/behavior/internal/core/events/bus"
	"github.com/zeusync/behavior/internal/core/observability/log"
)

const (
	EventTick  = "agent.tick"
	EventReset = "agent.reset"
)

// TickEvent is the payload published on EventTick.
type TickEvent struct {
	AgentID   string         `json:"agent_id"`
	AgentName string         `json:"agent_name"`
	Record    DecisionRecord `json:"record"`
	// Blackboard is a copy taken right after the tick.
	Blackboard map[string]int `json:"blackboard"`
}

// Agent owns one tree and its blackboard. Step and Reset must not be called
// concurrently on the same agent.
type Agent struct {
	id      string
	name    string
	tree    *bt.Tree
	bb      *bt.Blackboard
	mem     *Memory
	events  bus.EventBus
	sensors []Sensor
	logger  log.Log
	clock   func() time.Time
	ticks   uint64
}

type Option func(*Agent)

func WithID(id string) Option { return func(a *Agent) { a.id = id } }

func WithBlackboard(bb *bt.Blackboard) Option { return func(a *Agent) { a.bb = bb } }

func WithMemory(m *Memory) Option { return func(a *Agent) { a.mem = m } }

func WithEventBus(eb bus.EventBus) Option { return func(a *Agent) { a.events = eb } }

func WithSensors(sensors ...Sensor) Option {
	return func(a *Agent) { a.sensors = append(a.sensors, sensors...) }
}

func WithLogger(l log.Log) Option { return func(a *Agent) { a.logger = l } }

func WithClock(clock func() time.Time) Option { return func(a *Agent) { a.clock = clock } }

// New creates an agent for tree. Missing components get defaults: a fresh
// blackboard, a 64-entry memory, a private event bus and a no-op logger.
func New(name string, tree *bt.Tree, opts ...Option) *Agent {
	a := &Agent{name: name, tree: tree, clock: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	if a.id == "" {
		a.id = uuid.NewString()
	}
	if a.bb == nil {
		a.bb = bt.NewBlackboard()
	}
	if a.mem == nil {
		a.mem = NewMemory(64)
	}
	if a.events == nil {
		a.events = bus.New()
	}
	if a.logger == nil {
		a.logger = log.Nop()
	}
	a.logger = a.logger.With(log.String("agent_id", a.id), log.String("agent", a.name))
	return a
}

func (a *Agent) ID() string                 { return a.id }
func (a *Agent) Name() string               { return a.name }
func (a *Agent) Tree() *bt.Tree             { return a.tree }
func (a *Agent) Blackboard() *bt.Blackboard { return a.bb }
func (a *Agent) Memory() *Memory            { return a.mem }
func (a *Agent) Events() bus.EventBus       { return a.events }

// Ticks returns how many times the tree has been ticked.
func (a *Agent) Ticks() uint64 { return a.ticks }

// Step performs one cycle: sensors, one tree tick, history, event. The
// event and its blackboard copy are skipped while nobody listens.
// The returned error never reflects the tree outcome; a Failure status is
// returned with a nil error.
func (a *Agent) Step(ctx context.Context) (bt.Status, error) {
	if err := ctx.Err(); err != nil {
		return bt.StatusFailure, err
	}
	for _, s := range a.sensors {
		if err := s.Update(ctx, a.bb); err != nil {
			a.logger.Warn("sensor update failed", log.String("sensor", s.Name()), log.Error(err))
			return bt.StatusFailure, fmt.Errorf("sensor %s: %w", s.Name(), err)
		}
	}

	before := a.bb.Digest()
	start := a.clock()
	st := a.tree.Tick(a.bb)
	end := a.clock()
	a.ticks++

	after := a.bb.Digest()
	rec := DecisionRecord{
		Tick:      a.ticks,
		Root:      a.tree.Root().Name(),
		Status:    st,
		Duration:  end.Sub(start),
		Timestamp: end,
		Digest:    after,
		Changed:   before != after,
	}
	a.mem.Append(rec)
	a.logger.Debug("tick",
		log.Uint64("tick", rec.Tick),
		log.String("status", st.String()),
		log.Duration("took", rec.Duration),
		log.Bool("changed", rec.Changed),
	)

	if a.events.Subscribers(EventTick) == 0 {
		return st, nil
	}
	ev := TickEvent{AgentID: a.id, AgentName: a.name, Record: rec, Blackboard: a.bb.Snapshot()}
	if err := a.events.Publish(bus.NewEvent(EventTick, a.id, ev)); err != nil {
		a.logger.Warn("tick event delivery failed", log.Error(err))
		return st, fmt.Errorf("publish tick: %w", err)
	}
	return st, nil
}

// Run steps the agent ticks times, waiting interval between steps. A
// non-positive ticks runs until ctx is done. It returns the last status.
func (a *Agent) Run(ctx context.Context, ticks int, interval time.Duration) (bt.Status, error) {
	var ticker *time.Ticker
	if interval > 0 {
		ticker = time.NewTicker(interval)
		defer ticker.Stop()
	}
	last := bt.StatusFailure
	for i := 0; ticks <= 0 || i < ticks; i++ {
		if i > 0 && ticker != nil {
			select {
			case <-ctx.Done():
				return last, ctx.Err()
			case <-ticker.C:
			}
		}
		st, err := a.Step(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return last, err
			}
			return st, err
		}
		last = st
	}
	return last, nil
}

// Reset abandons any Running work in the tree. Blackboard contents are left
// untouched.
func (a *Agent) Reset() {
	a.tree.Reset()
	a.logger.Info("tree reset", log.Uint64("tick", a.ticks))
	if err := a.events.Publish(bus.NewEvent(EventReset, a.id, a.ticks)); err != nil {
		a.logger.Warn("reset event delivery failed", log.Error(err))
	}
}

type snapshot struct {
	Ticks uint64
	BB    []byte
	Mem   []byte
}

// SaveState returns a binary snapshot of blackboard, history and tick count.
// In-flight composite progress is not part of the snapshot.
func (a *Agent) SaveState() ([]byte, error) {
	bbBytes, err := a.bb.MarshalBinary()
	if err != nil {
		return nil, err
	}
	memBytes, err := a.mem.Save()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snapshot{Ticks: a.ticks, BB: bbBytes, Mem: memBytes}); err != nil {
		return nil, fmt.Errorf("encode agent state: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadState restores a snapshot produced by SaveState and resets the tree so
// ticking restarts from the root.
func (a *Agent) LoadState(b []byte) error {
	var state snapshot
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&state); err != nil {
		return fmt.Errorf("decode agent state: %w", err)
	}
	if len(state.BB) > 0 {
		if err := a.bb.UnmarshalBinary(state.BB); err != nil {
			return err
		}
	}
	if len(state.Mem) > 0 {
		if err := a.mem.Load(state.Mem); err != nil {
			return err
		}
	}
	a.ticks = state.Ticks
	a.tree.Reset()
	return nil
}
