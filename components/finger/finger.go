// Package finger defines the robot simulator that drives the three fingers of the platform.
package finger

import (
	"context"
	"math"

	"github.com/pkg/errors"
)

// TimeIndex identifies a control step in the simulator's action history.
type TimeIndex int64

// ErrInvalidTimeIndex is returned by a Finger when asked about a time index it does not accept.
var ErrInvalidTimeIndex = errors.New("invalid time index")

// NewInvalidTimeIndexError is used when t is outside the window of valid time indices.
func NewInvalidTimeIndexError(t TimeIndex, reason string) error {
	return errors.Wrapf(ErrInvalidTimeIndex, "t=%d: %s", t, reason)
}

// Config describes how a Finger simulation is set up.
type Config struct {
	// TimeStep is the duration of one control step in seconds.
	TimeStep float64 `json:"time_step_s"`
	// Visualization asks the simulator to open a viewer, if it has one.
	Visualization bool `json:"visualization,omitempty"`
	// Robot names the finger model, e.g. "trifingerone".
	Robot string `json:"robot"`
}

// Action is a desired command for all joints. Torques are added to the output of the position
// controller; NaN entries in Position leave that joint uncontrolled.
type Action struct {
	Torque     []float64
	Position   []float64
	PositionKp []float64
	PositionKd []float64
}

// NewAction returns an action for n joints with the given torque and position. A nil torque means
// zero torque and a nil position means no position control.
func NewAction(n int, torque, position []float64) Action {
	action := Action{
		Torque:   make([]float64, n),
		Position: make([]float64, n),
	}
	copy(action.Torque, torque)
	for i := range action.Position {
		action.Position[i] = math.NaN()
	}
	copy(action.Position, position)
	return action
}

// Observation is the measured state of all joints at a time step.
type Observation struct {
	Position []float64
	Velocity []float64
	Torque   []float64
}

// A Finger is a simulated robot with an action queue. Every appended action is one step of the
// simulation, identified by the returned TimeIndex.
type Finger interface {
	// NumJoints returns the number of joints across all fingers.
	NumJoints() int
	// Reset puts the joints at the given positions without stepping the simulation.
	Reset(ctx context.Context, jointPositions []float64) error
	AppendDesiredAction(ctx context.Context, action Action) (TimeIndex, error)
	DesiredAction(ctx context.Context, t TimeIndex) (Action, error)
	AppliedAction(ctx context.Context, t TimeIndex) (Action, error)
	// TimestampMs returns the simulated time of step t in milliseconds.
	TimestampMs(ctx context.Context, t TimeIndex) (float64, error)
	CurrentTimeIndex(ctx context.Context) (TimeIndex, error)
	// ValidateTimeIndex returns an error wrapping ErrInvalidTimeIndex if t may not be queried.
	ValidateTimeIndex(ctx context.Context, t TimeIndex) error
	Observation(ctx context.Context, t TimeIndex) (Observation, error)
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate(path string) error {
	if !(conf.TimeStep > 0) || math.IsInf(conf.TimeStep, 0) {
		return errors.Errorf("%s: time_step_s must be positive and finite, got %v", path, conf.TimeStep)
	}
	if conf.Robot == "" {
		return errors.Errorf("%s: robot must be set", path)
	}
	return nil
}
