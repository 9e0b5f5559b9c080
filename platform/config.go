package platform

import (
	"math"

	"github.com/go-viper/mapstructure/v2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/trifinger/sim/spatialmath"
)

// DefaultTimeStep is the simulation step used when the config leaves it unset, in seconds.
const DefaultTimeStep = 0.001

// PoseConfig is a pose as written in a config file.
type PoseConfig struct {
	Position [3]float64 `json:"position"`
	// Orientation is a quaternion in (x, y, z, w) order.
	Orientation [4]float64 `json:"orientation"`
}

// Pose converts the config to a pose with a normalized orientation.
func (pc *PoseConfig) Pose() spatialmath.Pose {
	return spatialmath.NewPose(
		r3.Vector{X: pc.Position[0], Y: pc.Position[1], Z: pc.Position[2]},
		spatialmath.Normalize(spatialmath.QuaternionFromXYZW(pc.Orientation)),
	)
}

// Config describes a TriFingerPlatform.
type Config struct {
	TimeStep      float64 `json:"time_step_s,omitempty"`
	Visualization bool    `json:"visualization,omitempty"`
	// InitialObjectPose places the object; if nil a pose is sampled.
	InitialObjectPose *PoseConfig `json:"initial_object_pose,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate(path string) error {
	if conf.TimeStep < 0 || math.IsNaN(conf.TimeStep) || math.IsInf(conf.TimeStep, 0) {
		return errors.Errorf("%s: time_step_s must be finite and not negative, got %v", path, conf.TimeStep)
	}
	if pc := conf.InitialObjectPose; pc != nil {
		var norm float64
		for _, v := range pc.Orientation {
			norm += v * v
		}
		if norm == 0 {
			return errors.Errorf("%s: initial_object_pose.orientation must not be the zero quaternion", path)
		}
	}
	return nil
}

func (conf *Config) timeStep() float64 {
	if conf.TimeStep == 0 {
		return DefaultTimeStep
	}
	return conf.TimeStep
}

// NativeConfig decodes loosely typed attributes, e.g. parsed from JSON, into a Config.
func NativeConfig(attributes map[string]interface{}) (*Config, error) {
	var conf Config
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:  "json",
		Result:   &conf,
		Metadata: &md,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, errors.Wrap(err, "error decoding platform config")
	}
	if len(md.Unused) > 0 {
		return nil, errors.Errorf("unknown platform config fields %v", md.Unused)
	}
	return &conf, nil
}
