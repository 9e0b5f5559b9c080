// Package object defines the manipulable object on the arena floor.
package object

import (
	"context"

	"github.com/trifinger/sim/spatialmath"
)

// An Object reports its pose in the world frame.
type Object interface {
	State(ctx context.Context) (spatialmath.Pose, error)
}
