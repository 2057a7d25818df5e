// Package app assembles configured agents, the event bus and the optional
// monitor into a runnable unit.
package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/behavior/internal/config"
	"github.com/zeusync/behavior/internal/core/agent"
	"github.com/zeusync/behavior/internal/core/bt"
	"github.com/zeusync/behavior/internal/core/events/bus"
	"github.com/zeusync/behavior/internal/core/observability/log"
	"github.com/zeusync/behavior/internal/monitor"
	"github.com/zeusync/behavior/internal/scenario"
)

// Runtime is the wired application.
type Runtime struct {
	Config  *config.Config
	Logger  *log.Logger
	Events  bus.EventBus
	Manager *agent.Manager
	Hub     *monitor.Hub
}

// Summary reports the final state of one agent after a run.
type Summary struct {
	AgentID    string
	AgentName  string
	Ticks      uint64
	LastStatus bt.Status
	Blackboard map[string]int
}

func ProvideLogger(cfg *config.Config) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return log.New(level), nil
}

func ProvideEventBus() bus.EventBus {
	return bus.New()
}

func ProvideHub(logger *log.Logger) *monitor.Hub {
	return monitor.NewHub(logger.With(log.String("component", "monitor")))
}

// ProvideManager creates cfg.Agents chase agents, each with its own tree and
// blackboard, sharing the event bus.
func ProvideManager(cfg *config.Config, logger *log.Logger, eb bus.EventBus) (*agent.Manager, error) {
	m := agent.NewManager(agent.WithManagerLogger(logger.With(log.String("component", "manager"))))
	for i := 0; i < cfg.Agents; i++ {
		name := fmt.Sprintf("guard-%d", i+1)
		agentLogger := logger.With(log.String("component", "agent"))
		bb := bt.NewBlackboard()
		scenario.Seed(bb, cfg.Scenario)
		a := agent.New(name, scenario.Chase(agentLogger.With(log.String("tree", name)), cfg.Scenario.ChaseSteps),
			agent.WithBlackboard(bb),
			agent.WithMemory(agent.NewMemory(cfg.History)),
			agent.WithEventBus(eb),
			agent.WithLogger(agentLogger),
		)
		if err := m.Add(a); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// New wires the runtime and attaches the monitor to the bus when enabled.
func New(cfg *config.Config, logger *log.Logger, eb bus.EventBus, m *agent.Manager, hub *monitor.Hub) (*Runtime, error) {
	if cfg.Monitor.Addr != "" {
		if _, err := hub.Attach(eb); err != nil {
			return nil, fmt.Errorf("attach monitor: %w", err)
		}
	}
	return &Runtime{Config: cfg, Logger: logger, Events: eb, Manager: m, Hub: hub}, nil
}

// Run drives all agents for the configured number of ticks, serving the
// monitor alongside when an address is set.
func (r *Runtime) Run(ctx context.Context) ([]Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	if r.Config.Monitor.Addr != "" {
		g.Go(func() error { return monitor.Serve(ctx, r.Config.Monitor.Addr, r.Hub) })
	}
	g.Go(func() error {
		defer cancel()
		r.Logger.Info("run started",
			log.Int("agents", r.Manager.Len()),
			log.Int("ticks", r.Config.Ticks),
			log.Duration("interval", r.Config.Interval),
		)
		return r.Manager.Run(ctx, r.Config.Ticks, r.Config.Interval)
	})
	err := g.Wait()
	if r.Config.Ticks <= 0 && errors.Is(err, context.Canceled) {
		// an endless run ends only through cancellation
		err = nil
	}
	return r.summaries(), err
}

func (r *Runtime) summaries() []Summary {
	agents := r.Manager.All()
	out := make([]Summary, 0, len(agents))
	for _, a := range agents {
		s := Summary{
			AgentID:    a.ID(),
			AgentName:  a.Name(),
			Ticks:      a.Ticks(),
			Blackboard: a.Blackboard().Snapshot(),
		}
		if last, ok := a.Memory().Last(); ok {
			s.LastStatus = last.Status
		}
		out = append(out, s)
	}
	return out
}
