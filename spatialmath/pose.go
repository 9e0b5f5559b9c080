// Package spatialmath defines poses and the rotation conversions used by the platform.
package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose is a position in meters together with an orientation quaternion.
type Pose struct {
	Position    r3.Vector
	Orientation quat.Number
}

// NewPose returns a pose with the given position and orientation.
func NewPose(position r3.Vector, orientation quat.Number) Pose {
	return Pose{Position: position, Orientation: orientation}
}

// NewZeroPose returns a pose at the origin with no rotation.
func NewZeroPose() Pose {
	return Pose{Orientation: quat.Number{Real: 1}}
}

// PoseAlmostEqual returns whether two poses are within tol of each other, position and quaternion
// component-wise.
func PoseAlmostEqual(a, b Pose, tol float64) bool {
	return a.Position.Sub(b.Position).Norm() <= tol && QuaternionAlmostEqual(a.Orientation, b.Orientation, tol)
}

func (p Pose) String() string {
	q := QuaternionToXYZW(p.Orientation)
	return fmt.Sprintf("{position: [%g %g %g], orientation (xyzw): [%g %g %g %g]}",
		p.Position.X, p.Position.Y, p.Position.Z, q[0], q[1], q[2], q[3])
}
