// Package scenario holds demo trees built on the bt core.
package scenario

import (
	"github.com/zeusync/behavior/internal/config"
	"github.com/zeusync/behavior/internal/core/bt"
	"github.com/zeusync/behavior/internal/core/observability/log"
)

// Blackboard keys used by the chase tree.
const (
	KeyHealth         = "health"
	KeyPlayerDistance = "playerDistance"
	KeyChaseProgress  = "chaseProgress"
	KeyAttacks        = "attacks"
	KeyIdles          = "idles"
)

const (
	lowHealthThreshold = 30
	attackRange        = 10
	// distance left after a completed chase
	caughtDistance = 5
)

// Chase builds the guard tree:
//
//	Selector root
//	  Condition lowHealth
//	  Sequence attack
//	    Condition playerNear
//	    Action strike
//	  Sequence chase
//	    Action pursue   (Running for steps ticks, then closes the distance)
//	  Action idle
func Chase(logger log.Log, steps int) *bt.Tree {
	if logger == nil {
		logger = log.Nop()
	}

	lowHealth := bt.NewCondition("lowHealth", func(bb *bt.Blackboard) bool {
		return bb.Get(KeyHealth) < lowHealthThreshold
	})
	playerNear := bt.NewCondition("playerNear", func(bb *bt.Blackboard) bool {
		return bb.Get(KeyPlayerDistance) < attackRange
	})
	strike := bt.NewAction("strike", func(bb *bt.Blackboard) bt.Status {
		bb.Set(KeyAttacks, bb.Get(KeyAttacks)+1)
		logger.Info("attacking player", log.Int("distance", bb.Get(KeyPlayerDistance)))
		return bt.StatusSuccess
	})
	pursue := bt.NewAction("pursue", func(bb *bt.Blackboard) bt.Status {
		progress := bb.Get(KeyChaseProgress)
		if progress < steps {
			logger.Info("chasing", log.Int("step", progress))
			bb.Set(KeyChaseProgress, progress+1)
			return bt.StatusRunning
		}
		logger.Info("reached player")
		bb.Set(KeyPlayerDistance, caughtDistance)
		bb.Set(KeyChaseProgress, 0)
		return bt.StatusSuccess
	})
	idle := bt.NewAction("idle", func(bb *bt.Blackboard) bt.Status {
		bb.Set(KeyIdles, bb.Get(KeyIdles)+1)
		logger.Info("idling")
		return bt.StatusSuccess
	})

	root := bt.NewSelector("guard",
		lowHealth,
		bt.NewSequence("attack", playerNear, strike),
		bt.NewSequence("chase", pursue),
		idle,
	)
	// every node above is freshly allocated, so the ownership check cannot fail
	tree, err := bt.NewTree(root)
	if err != nil {
		panic(err)
	}
	return tree
}

// Seed writes the scenario's initial values into bb.
func Seed(bb *bt.Blackboard, s config.Scenario) {
	bb.Set(KeyHealth, s.Health)
	bb.Set(KeyPlayerDistance, s.PlayerDistance)
	bb.Set(KeyChaseProgress, 0)
}
