package movecube

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestSampleGoalOnFloor(t *testing.T) {
	s := NewRandomSampler(1)
	maxRadius := ArenaRadius - CubeWidth*math.Sqrt2/2
	for i := 0; i < 1000; i++ {
		pose, err := s.SampleGoal(DifficultyAny)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, math.Hypot(pose.Position.X, pose.Position.Y), test.ShouldBeLessThanOrEqualTo, maxRadius)
		test.That(t, pose.Position.Z, test.ShouldEqual, CubeWidth/2)
		// only yaw: no rotation about x or y.
		test.That(t, pose.Orientation.Imag, test.ShouldEqual, 0.0)
		test.That(t, pose.Orientation.Jmag, test.ShouldEqual, 0.0)
		test.That(t, quat.Abs(pose.Orientation), test.ShouldAlmostEqual, 1.0)
	}
}

func TestSampleGoalDeterministic(t *testing.T) {
	a, err := NewRandomSampler(42).SampleGoal(DifficultyAny)
	test.That(t, err, test.ShouldBeNil)
	b, err := NewRandomSampler(42).SampleGoal(DifficultyAny)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, a, test.ShouldResemble, b)
}

func TestSampleGoalUnsupportedDifficulty(t *testing.T) {
	_, err := NewRandomSampler(1).SampleGoal(3)
	test.That(t, errors.Is(err, ErrUnsupportedDifficulty), test.ShouldBeTrue)
}
