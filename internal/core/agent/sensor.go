package agent

import (
	"context"

	"github.com/zeusync/behavior/internal/core/bt"
)

// Sensor pulls data from the outside world into the blackboard before
// each tick.
type Sensor interface {
	Name() string
	Update(ctx context.Context, bb *bt.Blackboard) error
}

// SensorFunc adapts a function to the Sensor interface.
type SensorFunc struct {
	SensorName string
	Fn         func(ctx context.Context, bb *bt.Blackboard) error
}

func (s SensorFunc) Name() string { return s.SensorName }

func (s SensorFunc) Update(ctx context.Context, bb *bt.Blackboard) error {
	return s.Fn(ctx, bb)
}
