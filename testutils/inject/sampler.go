package inject

import (
	"github.com/trifinger/sim/spatialmath"
	"github.com/trifinger/sim/tasks/movecube"
)

// Sampler is an injected goal sampler.
type Sampler struct {
	movecube.Sampler
	SampleGoalFunc func(difficulty int) (spatialmath.Pose, error)
}

// SampleGoal calls the injected SampleGoal or the real version.
func (s *Sampler) SampleGoal(difficulty int) (spatialmath.Pose, error) {
	if s.SampleGoalFunc == nil {
		return s.Sampler.SampleGoal(difficulty)
	}
	return s.SampleGoalFunc(difficulty)
}
