// Package inject provides collaborators whose methods can be replaced per test.
package inject

import (
	"context"

	"go.viam.com/utils"

	"github.com/trifinger/sim/components/finger"
)

// Finger is an injected finger.
type Finger struct {
	finger.Finger
	NumJointsFunc           func() int
	ResetFunc               func(ctx context.Context, jointPositions []float64) error
	AppendDesiredActionFunc func(ctx context.Context, action finger.Action) (finger.TimeIndex, error)
	DesiredActionFunc       func(ctx context.Context, t finger.TimeIndex) (finger.Action, error)
	AppliedActionFunc       func(ctx context.Context, t finger.TimeIndex) (finger.Action, error)
	TimestampMsFunc         func(ctx context.Context, t finger.TimeIndex) (float64, error)
	CurrentTimeIndexFunc    func(ctx context.Context) (finger.TimeIndex, error)
	ValidateTimeIndexFunc   func(ctx context.Context, t finger.TimeIndex) error
	ObservationFunc         func(ctx context.Context, t finger.TimeIndex) (finger.Observation, error)
	CloseFunc               func(ctx context.Context) error
}

// NumJoints calls the injected NumJoints or the real version.
func (f *Finger) NumJoints() int {
	if f.NumJointsFunc == nil {
		return f.Finger.NumJoints()
	}
	return f.NumJointsFunc()
}

// Reset calls the injected Reset or the real version.
func (f *Finger) Reset(ctx context.Context, jointPositions []float64) error {
	if f.ResetFunc == nil {
		return f.Finger.Reset(ctx, jointPositions)
	}
	return f.ResetFunc(ctx, jointPositions)
}

// AppendDesiredAction calls the injected AppendDesiredAction or the real version.
func (f *Finger) AppendDesiredAction(ctx context.Context, action finger.Action) (finger.TimeIndex, error) {
	if f.AppendDesiredActionFunc == nil {
		return f.Finger.AppendDesiredAction(ctx, action)
	}
	return f.AppendDesiredActionFunc(ctx, action)
}

// DesiredAction calls the injected DesiredAction or the real version.
func (f *Finger) DesiredAction(ctx context.Context, t finger.TimeIndex) (finger.Action, error) {
	if f.DesiredActionFunc == nil {
		return f.Finger.DesiredAction(ctx, t)
	}
	return f.DesiredActionFunc(ctx, t)
}

// AppliedAction calls the injected AppliedAction or the real version.
func (f *Finger) AppliedAction(ctx context.Context, t finger.TimeIndex) (finger.Action, error) {
	if f.AppliedActionFunc == nil {
		return f.Finger.AppliedAction(ctx, t)
	}
	return f.AppliedActionFunc(ctx, t)
}

// TimestampMs calls the injected TimestampMs or the real version.
func (f *Finger) TimestampMs(ctx context.Context, t finger.TimeIndex) (float64, error) {
	if f.TimestampMsFunc == nil {
		return f.Finger.TimestampMs(ctx, t)
	}
	return f.TimestampMsFunc(ctx, t)
}

// CurrentTimeIndex calls the injected CurrentTimeIndex or the real version.
func (f *Finger) CurrentTimeIndex(ctx context.Context) (finger.TimeIndex, error) {
	if f.CurrentTimeIndexFunc == nil {
		return f.Finger.CurrentTimeIndex(ctx)
	}
	return f.CurrentTimeIndexFunc(ctx)
}

// ValidateTimeIndex calls the injected ValidateTimeIndex or the real version.
func (f *Finger) ValidateTimeIndex(ctx context.Context, t finger.TimeIndex) error {
	if f.ValidateTimeIndexFunc == nil {
		return f.Finger.ValidateTimeIndex(ctx, t)
	}
	return f.ValidateTimeIndexFunc(ctx, t)
}

// Observation calls the injected Observation or the real version.
func (f *Finger) Observation(ctx context.Context, t finger.TimeIndex) (finger.Observation, error) {
	if f.ObservationFunc == nil {
		return f.Finger.Observation(ctx, t)
	}
	return f.ObservationFunc(ctx, t)
}

// Close calls the injected Close or the real version.
func (f *Finger) Close(ctx context.Context) error {
	if f.CloseFunc == nil {
		return utils.TryClose(ctx, f.Finger)
	}
	return f.CloseFunc(ctx)
}
