// Package fake implements a fake finger simulator that keeps an action log without any dynamics.
// Joints jump to the desired position of each action and torques are only clipped to the motor
// limit.
package fake

import (
	"context"
	"math"
	"sync"

	"github.com/pkg/errors"

	"github.com/trifinger/sim/components/finger"
	"github.com/trifinger/sim/logging"
	"github.com/trifinger/sim/utils"
)

const (
	// NumJoints is the joint count of the three fingers together.
	NumJoints = 9
	// MaxTorqueNm is the torque limit of each motor.
	MaxTorqueNm = 0.36
)

// Finger is a fake finger that records the actions appended to it.
type Finger struct {
	CloseCount int

	conf   finger.Config
	logger logging.Logger

	mu       sync.Mutex
	position []float64
	steps    []step
}

type step struct {
	desired     finger.Action
	applied     finger.Action
	observation finger.Observation
}

// NewFinger returns a new fake finger with all joints at zero.
func NewFinger(ctx context.Context, conf finger.Config, logger logging.Logger) (*Finger, error) {
	if err := conf.Validate("finger"); err != nil {
		return nil, err
	}
	logger.Debugw("creating fake finger", "robot", conf.Robot, "time_step_s", conf.TimeStep)
	return &Finger{
		conf:     conf,
		logger:   logger,
		position: make([]float64, NumJoints),
	}, nil
}

// NumJoints returns the number of joints.
func (f *Finger) NumJoints() int {
	return NumJoints
}

// Reset moves the joints to the given positions.
func (f *Finger) Reset(ctx context.Context, jointPositions []float64) error {
	if len(jointPositions) != NumJoints {
		return errors.Errorf("expected %d joint positions, got %d", NumJoints, len(jointPositions))
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.position, jointPositions)
	return nil
}

// AppendDesiredAction applies the action as the next step and returns its time index. The
// observation of that step is the joint state after the action.
func (f *Finger) AppendDesiredAction(ctx context.Context, action finger.Action) (finger.TimeIndex, error) {
	if len(action.Torque) != NumJoints || len(action.Position) != NumJoints {
		return 0, errors.Errorf("action must have %d torques and positions, got %d and %d",
			NumJoints, len(action.Torque), len(action.Position))
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	applied := finger.NewAction(NumJoints, nil, action.Position)
	obs := finger.Observation{
		Position: make([]float64, NumJoints),
		Velocity: make([]float64, NumJoints),
		Torque:   make([]float64, NumJoints),
	}
	for i := 0; i < NumJoints; i++ {
		applied.Torque[i] = utils.Clamp(action.Torque[i], -MaxTorqueNm, MaxTorqueNm)
		prev := f.position[i]
		if !math.IsNaN(action.Position[i]) {
			f.position[i] = action.Position[i]
		}
		obs.Position[i] = f.position[i]
		obs.Velocity[i] = (f.position[i] - prev) / f.conf.TimeStep
		obs.Torque[i] = applied.Torque[i]
	}
	f.steps = append(f.steps, step{desired: copyAction(action), applied: applied, observation: obs})
	return finger.TimeIndex(len(f.steps) - 1), nil
}

// DesiredAction returns the action appended at t.
func (f *Finger) DesiredAction(ctx context.Context, t finger.TimeIndex) (finger.Action, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.stepAt(t)
	if err != nil {
		return finger.Action{}, err
	}
	return copyAction(s.desired), nil
}

// AppliedAction returns the action executed at t after torque clipping.
func (f *Finger) AppliedAction(ctx context.Context, t finger.TimeIndex) (finger.Action, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.stepAt(t)
	if err != nil {
		return finger.Action{}, err
	}
	return copyAction(s.applied), nil
}

// TimestampMs returns t times the time step, in milliseconds.
func (f *Finger) TimestampMs(ctx context.Context, t finger.TimeIndex) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.stepAt(t); err != nil {
		return 0, err
	}
	return f.conf.TimeStep * 1000 * float64(t), nil
}

// CurrentTimeIndex returns the index of the latest action.
func (f *Finger) CurrentTimeIndex(ctx context.Context) (finger.TimeIndex, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.steps) == 0 {
		return 0, finger.NewInvalidTimeIndexError(-1, "no action has been appended yet")
	}
	return finger.TimeIndex(len(f.steps) - 1), nil
}

// ValidateTimeIndex accepts only the index of the latest action.
func (f *Finger) ValidateTimeIndex(ctx context.Context, t finger.TimeIndex) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, err := f.stepAt(t)
	return err
}

// Observation returns the joint state after the action at t.
func (f *Finger) Observation(ctx context.Context, t finger.TimeIndex) (finger.Observation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.stepAt(t)
	if err != nil {
		return finger.Observation{}, err
	}
	return finger.Observation{
		Position: append([]float64(nil), s.observation.Position...),
		Velocity: append([]float64(nil), s.observation.Velocity...),
		Torque:   append([]float64(nil), s.observation.Torque...),
	}, nil
}

// Close counts the calls made to it.
func (f *Finger) Close(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CloseCount++
	return nil
}

// stepAt must be called with mu held.
func (f *Finger) stepAt(t finger.TimeIndex) (step, error) {
	if len(f.steps) == 0 {
		return step{}, finger.NewInvalidTimeIndexError(t, "no action has been appended yet")
	}
	if current := finger.TimeIndex(len(f.steps) - 1); t != current {
		return step{}, finger.NewInvalidTimeIndexError(t, "only the latest time index is valid")
	}
	return f.steps[t], nil
}

func copyAction(a finger.Action) finger.Action {
	return finger.Action{
		Torque:     append([]float64(nil), a.Torque...),
		Position:   append([]float64(nil), a.Position...),
		PositionKp: append([]float64(nil), a.PositionKp...),
		PositionKd: append([]float64(nil), a.PositionKd...),
	}
}
