// Package movecube samples poses for the cube of the move-cube task.
package movecube

import (
	"math"
	"math/rand"
	"sync"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/trifinger/sim/spatialmath"
)

const (
	// DifficultyAny places the cube anywhere on the arena floor with a random yaw.
	DifficultyAny = -1

	// ArenaRadius is the radius of the usable arena floor in meters.
	ArenaRadius = 0.19
	// CubeWidth is the edge length of the cube in meters.
	CubeWidth = 0.065
)

// ErrUnsupportedDifficulty is returned for difficulty levels a Sampler does not know.
var ErrUnsupportedDifficulty = errors.New("unsupported difficulty")

// A Sampler produces cube poses for a given difficulty level.
type Sampler interface {
	SampleGoal(difficulty int) (spatialmath.Pose, error)
}

// RandomSampler samples with its own random source. It is safe for concurrent use.
type RandomSampler struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomSampler returns a sampler seeded with seed.
func NewRandomSampler(seed int64) *RandomSampler {
	//nolint:gosec
	return &RandomSampler{rnd: rand.New(rand.NewSource(seed))}
}

// SampleGoal returns a pose of the cube resting on the floor. Only DifficultyAny is supported.
func (s *RandomSampler) SampleGoal(difficulty int) (spatialmath.Pose, error) {
	if difficulty != DifficultyAny {
		return spatialmath.Pose{}, errors.Wrapf(ErrUnsupportedDifficulty, "%d", difficulty)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// keep the whole cube inside the arena whatever its yaw.
	maxRadius := ArenaRadius - CubeWidth*math.Sqrt2/2
	// sqrt makes the samples uniform over the disc area.
	radius := maxRadius * math.Sqrt(s.rnd.Float64())
	theta := 2 * math.Pi * s.rnd.Float64()
	yaw := 2*math.Pi*s.rnd.Float64() - math.Pi

	position := r3.Vector{
		X: radius * math.Cos(theta),
		Y: radius * math.Sin(theta),
		Z: CubeWidth / 2,
	}
	return spatialmath.NewPose(position, spatialmath.QuaternionFromYaw(yaw)), nil
}
