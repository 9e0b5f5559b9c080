// Package platform provides a simulated TriFinger platform with the same front end as the real
// robot: actions go to a finger simulator, and object poses and camera images are read back for the
// time index of a step.
package platform

import (
	"context"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"
	"gonum.org/v1/gonum/num/quat"

	"github.com/trifinger/sim/components/camera"
	"github.com/trifinger/sim/components/finger"
	"github.com/trifinger/sim/components/object"
	"github.com/trifinger/sim/logging"
	"github.com/trifinger/sim/spatialmath"
	"github.com/trifinger/sim/tasks/movecube"
	rutils "github.com/trifinger/sim/utils"
)

// RobotName is the finger model simulated by the platform.
const RobotName = "trifingerone"

// timestampScale is applied to the simulator's millisecond timestamps to get observation
// timestamps. Note this does not yield seconds.
const timestampScale = 1000.0

// ErrNotSupported is returned by front-end calls that have no simulated counterpart.
var ErrNotSupported = errors.New("not supported by the simulated platform")

// InitialJointPositions returns the joint configuration the fingers are reset to on construction.
// It keeps the fingers clear of an object resting anywhere on the arena floor.
func InitialJointPositions() []float64 {
	perFinger := []float64{0, rutils.DegToRad(-70), rutils.DegToRad(-130)}
	positions := make([]float64, 0, 3*len(perFinger))
	for i := 0; i < 3; i++ {
		positions = append(positions, perFinger...)
	}
	return positions
}

// ObjectPose is the pose of the object at a time step.
type ObjectPose struct {
	// Position in meters.
	Position r3.Vector
	// Orientation as a unit quaternion.
	Orientation quat.Number
	Timestamp   float64
	// Confidence is in [0, 1]; simulated poses are exact and always have confidence 1.
	Confidence float64
}

// OrientationXYZW returns the orientation in (x, y, z, w) order.
func (p ObjectPose) OrientationXYZW() [4]float64 {
	return spatialmath.QuaternionToXYZW(p.Orientation)
}

// Dependencies build the collaborators of a TriFingerPlatform.
type Dependencies struct {
	NewFinger    func(ctx context.Context, conf finger.Config) (finger.Finger, error)
	NewObject    func(ctx context.Context, initialPose spatialmath.Pose) (object.Object, error)
	NewTriCamera func(ctx context.Context) (camera.TriCamera, error)
	// Sampler is only required when the config has no initial object pose.
	Sampler movecube.Sampler
}

// TriFingerPlatform is a simulated TriFinger platform. It exclusively owns its finger, object and
// tri-camera. It is not safe for concurrent use; callers sharing one must serialize access.
type TriFingerPlatform struct {
	finger    finger.Finger
	object    object.Object
	tricamera camera.TriCamera
	logger    logging.Logger
}

// New builds the platform: the finger is created and reset to InitialJointPositions, then the
// object is placed at the configured pose (or one sampled with movecube.DifficultyAny), then the
// tri-camera is created. If any step fails, what was already built is closed and no platform is
// returned.
func New(ctx context.Context, conf Config, deps Dependencies, logger logging.Logger) (_ *TriFingerPlatform, err error) {
	if err := conf.Validate("platform"); err != nil {
		return nil, err
	}
	switch {
	case deps.NewFinger == nil:
		return nil, errors.New("platform dependencies need a finger constructor")
	case deps.NewObject == nil:
		return nil, errors.New("platform dependencies need an object constructor")
	case deps.NewTriCamera == nil:
		return nil, errors.New("platform dependencies need a tri-camera constructor")
	case conf.InitialObjectPose == nil && deps.Sampler == nil:
		return nil, errors.New("platform dependencies need a sampler when no initial object pose is configured")
	}

	var built []interface{}
	defer func() {
		if err == nil {
			return
		}
		for i := len(built) - 1; i >= 0; i-- {
			err = multierr.Combine(err, utils.TryClose(ctx, built[i]))
		}
	}()

	fingerConf := finger.Config{TimeStep: conf.timeStep(), Visualization: conf.Visualization, Robot: RobotName}
	logger.Debugw("creating finger", "robot", fingerConf.Robot, "time_step_s", fingerConf.TimeStep)
	f, err := deps.NewFinger(ctx, fingerConf)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create finger")
	}
	built = append(built, f)
	if err := f.Reset(ctx, InitialJointPositions()); err != nil {
		return nil, errors.Wrap(err, "cannot reset finger to its initial position")
	}

	var initialPose spatialmath.Pose
	if conf.InitialObjectPose != nil {
		initialPose = conf.InitialObjectPose.Pose()
	} else {
		if initialPose, err = deps.Sampler.SampleGoal(movecube.DifficultyAny); err != nil {
			return nil, errors.Wrap(err, "cannot sample initial object pose")
		}
		logger.Infow("sampled initial object pose", "pose", initialPose.String())
	}

	logger.Debugw("creating object", "pose", initialPose.String())
	obj, err := deps.NewObject(ctx, initialPose)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create object")
	}
	built = append(built, obj)

	logger.Debug("creating tri-camera")
	tricamera, err := deps.NewTriCamera(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create tri-camera")
	}

	return &TriFingerPlatform{
		finger:    f,
		object:    obj,
		tricamera: tricamera,
		logger:    logger,
	}, nil
}

// ObjectPose returns the pose of the object at step t. Only time indices accepted by the finger are
// valid; for the simulated finger that is the index returned by the latest AppendDesiredAction. The
// finger's error is returned unchanged for any other t.
func (p *TriFingerPlatform) ObjectPose(ctx context.Context, t finger.TimeIndex) (ObjectPose, error) {
	if err := p.finger.ValidateTimeIndex(ctx, t); err != nil {
		return ObjectPose{}, err
	}
	state, err := p.object.State(ctx)
	if err != nil {
		return ObjectPose{}, err
	}
	timestamp, err := p.timestamp(ctx, t)
	if err != nil {
		return ObjectPose{}, err
	}
	return ObjectPose{
		Position:    state.Position,
		Orientation: state.Orientation,
		Timestamp:   timestamp,
		Confidence:  1.0,
	}, nil
}

// CameraObservation returns freshly rendered images of the three cameras at step t, all carrying the
// same timestamp. Time indices are validated as in ObjectPose.
func (p *TriFingerPlatform) CameraObservation(ctx context.Context, t finger.TimeIndex) (camera.TriCameraObservation, error) {
	if err := p.finger.ValidateTimeIndex(ctx, t); err != nil {
		return camera.TriCameraObservation{}, err
	}
	images, err := p.tricamera.Images(ctx)
	if err != nil {
		return camera.TriCameraObservation{}, err
	}
	if len(images) != len(camera.Names) {
		return camera.TriCameraObservation{}, camera.NewImageCountError(len(images))
	}
	timestamp, err := p.timestamp(ctx, t)
	if err != nil {
		return camera.TriCameraObservation{}, err
	}

	observation := camera.NewTriCameraObservation()
	for i, img := range images {
		ts := timestamp
		observation.Cameras[i].Image = img
		observation.Cameras[i].Timestamp = &ts
	}
	return observation, nil
}

func (p *TriFingerPlatform) timestamp(ctx context.Context, t finger.TimeIndex) (float64, error) {
	ms, err := p.finger.TimestampMs(ctx, t)
	if err != nil {
		return 0, err
	}
	return ms * timestampScale, nil
}

// NewAction returns an action for all joints of the platform.
func (p *TriFingerPlatform) NewAction(torque, position []float64) finger.Action {
	return finger.NewAction(p.finger.NumJoints(), torque, position)
}

// AppendDesiredAction queues action and returns the time index of its step.
func (p *TriFingerPlatform) AppendDesiredAction(ctx context.Context, action finger.Action) (finger.TimeIndex, error) {
	return p.finger.AppendDesiredAction(ctx, action)
}

// DesiredAction returns the action appended for step t.
func (p *TriFingerPlatform) DesiredAction(ctx context.Context, t finger.TimeIndex) (finger.Action, error) {
	return p.finger.DesiredAction(ctx, t)
}

// AppliedAction returns the action actually executed at step t.
func (p *TriFingerPlatform) AppliedAction(ctx context.Context, t finger.TimeIndex) (finger.Action, error) {
	return p.finger.AppliedAction(ctx, t)
}

// TimestampMs returns the time of step t in milliseconds.
func (p *TriFingerPlatform) TimestampMs(ctx context.Context, t finger.TimeIndex) (float64, error) {
	return p.finger.TimestampMs(ctx, t)
}

// CurrentTimeIndex returns the index of the latest step.
func (p *TriFingerPlatform) CurrentTimeIndex(ctx context.Context) (finger.TimeIndex, error) {
	return p.finger.CurrentTimeIndex(ctx)
}

// RobotObservation returns the joint state at step t.
func (p *TriFingerPlatform) RobotObservation(ctx context.Context, t finger.TimeIndex) (finger.Observation, error) {
	return p.finger.Observation(ctx, t)
}

// RobotStatus is not available in simulation.
func (p *TriFingerPlatform) RobotStatus(ctx context.Context) error {
	return errors.Wrap(ErrNotSupported, "RobotStatus")
}

// WaitUntilTimeIndex is not available in simulation; steps are executed when they are appended.
func (p *TriFingerPlatform) WaitUntilTimeIndex(ctx context.Context, t finger.TimeIndex) error {
	return errors.Wrap(ErrNotSupported, "WaitUntilTimeIndex")
}

// Close closes the collaborators that can be closed, tri-camera first.
func (p *TriFingerPlatform) Close(ctx context.Context) error {
	p.logger.Debug("closing platform")
	return multierr.Combine(
		utils.TryClose(ctx, p.tricamera),
		utils.TryClose(ctx, p.object),
		utils.TryClose(ctx, p.finger),
	)
}
