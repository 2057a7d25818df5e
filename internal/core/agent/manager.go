package agent

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/behavior/internal/core/bt"
	"github.com/zeusync/behavior/internal/core/observability/log"
)

var (
	ErrAgentExists   = errors.New("agent already registered")
	ErrAgentNotFound = errors.New("agent not found")
)

// Manager holds independent agents. StepAll ticks different agents in
// parallel; each agent's own tree is still ticked by one goroutine at a time.
// Agents registered with a Manager must not share a blackboard.
type Manager struct {
	mu     sync.RWMutex
	agents map[string]*Agent
	logger log.Log
	limit  int
}

type ManagerOption func(*Manager)

func WithManagerLogger(l log.Log) ManagerOption { return func(m *Manager) { m.logger = l } }

// WithConcurrency caps how many agents StepAll ticks at once. Zero means
// no limit.
func WithConcurrency(n int) ManagerOption { return func(m *Manager) { m.limit = n } }

func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{agents: make(map[string]*Agent), logger: log.Nop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Add(a *Agent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.agents[a.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrAgentExists, a.ID())
	}
	m.agents[a.ID()] = a
	m.logger.Debug("agent added", log.String("agent_id", a.ID()), log.String("agent", a.Name()))
	return nil
}

func (m *Manager) Get(id string) (*Agent, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.agents[id]
	return a, ok
}

func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.agents[id]; !ok {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, id)
	}
	delete(m.agents, id)
	return nil
}

// All returns the registered agents ordered by ID.
func (m *Manager) All() []*Agent {
	m.mu.RLock()
	out := make([]*Agent, 0, len(m.agents))
	for _, a := range m.agents {
		out = append(out, a)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.agents)
}

// StepAll steps every agent once and returns the status per agent ID.
// Agents whose step failed are missing from the map. One failing agent does
// not stop the others; Wait only reports the first error, so every failure
// is kept and joined.
func (m *Manager) StepAll(ctx context.Context) (map[string]bt.Status, error) {
	agents := m.All()
	statuses := make([]bt.Status, len(agents))
	errs := make([]error, len(agents))

	var g errgroup.Group
	if m.limit > 0 {
		g.SetLimit(m.limit)
	}
	for i, a := range agents {
		g.Go(func() error {
			st, err := a.Step(ctx)
			statuses[i] = st
			if err != nil {
				errs[i] = fmt.Errorf("agent %s: %w", a.ID(), err)
			}
			return errs[i]
		})
	}
	failed := g.Wait() != nil

	out := make(map[string]bt.Status, len(agents))
	for i, a := range agents {
		if errs[i] == nil {
			out[a.ID()] = statuses[i]
		}
	}
	if !failed {
		return out, nil
	}
	return out, errors.Join(errs...)
}

// Run calls StepAll ticks times (forever when ticks <= 0), waiting interval
// between rounds, and stops at the first error.
func (m *Manager) Run(ctx context.Context, ticks int, interval time.Duration) error {
	var ticker *time.Ticker
	if interval > 0 {
		ticker = time.NewTicker(interval)
		defer ticker.Stop()
	}
	for i := 0; ticks <= 0 || i < ticks; i++ {
		if i > 0 && ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
		statuses, err := m.StepAll(ctx)
		if err != nil {
			return err
		}
		m.logger.Debug("round complete", log.Int("round", i+1), log.Int("agents", len(statuses)))
	}
	return nil
}
