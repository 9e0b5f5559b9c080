package platform

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/trifinger/sim/spatialmath"
)

func TestNativeConfig(t *testing.T) {
	var attrs map[string]interface{}
	raw := `{
		"time_step_s": 0.002,
		"visualization": true,
		"initial_object_pose": {"position": [0.05, 0, 0.0325], "orientation": [0, 0, 0, 1]}
	}`
	test.That(t, json.Unmarshal([]byte(raw), &attrs), test.ShouldBeNil)

	conf, err := NativeConfig(attrs)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf.TimeStep, test.ShouldEqual, 0.002)
	test.That(t, conf.Visualization, test.ShouldBeTrue)
	test.That(t, conf.InitialObjectPose, test.ShouldNotBeNil)
	test.That(t, conf.Validate("platform"), test.ShouldBeNil)

	pose := conf.InitialObjectPose.Pose()
	test.That(t, spatialmath.PoseAlmostEqual(pose,
		spatialmath.NewPose(r3.Vector{X: 0.05, Z: 0.0325}, spatialmath.NewZeroPose().Orientation), 1e-12), test.ShouldBeTrue)
}

func TestNativeConfigErrors(t *testing.T) {
	_, err := NativeConfig(map[string]interface{}{"time_step": 0.001})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "time_step")

	_, err = NativeConfig(map[string]interface{}{"time_step_s": "fast"})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestConfigValidate(t *testing.T) {
	conf := Config{}
	test.That(t, conf.Validate("platform"), test.ShouldBeNil)
	test.That(t, conf.timeStep(), test.ShouldEqual, DefaultTimeStep)

	for _, step := range []float64{-0.001, math.NaN(), math.Inf(1), math.Inf(-1)} {
		conf.TimeStep = step
		test.That(t, conf.Validate("platform"), test.ShouldNotBeNil)
	}

	conf = Config{InitialObjectPose: &PoseConfig{}}
	err := conf.Validate("platform")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "zero quaternion")
}
