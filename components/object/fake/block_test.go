package fake

import (
	"context"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"github.com/trifinger/sim/spatialmath"
)

func TestBlock(t *testing.T) {
	ctx := context.Background()
	b := NewBlock(spatialmath.NewPose(r3.Vector{X: 0.05, Z: 0.0325}, quat.Number{Real: 2}))

	pose, err := b.State(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pose.Position, test.ShouldResemble, r3.Vector{X: 0.05, Z: 0.0325})
	test.That(t, pose.Orientation, test.ShouldResemble, quat.Number{Real: 1})

	moved := spatialmath.NewPose(r3.Vector{Y: -0.1, Z: 0.0325}, spatialmath.QuaternionFromYaw(1))
	b.SetState(moved)
	pose, err = b.State(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.PoseAlmostEqual(pose, moved, 1e-12), test.ShouldBeTrue)

	test.That(t, b.Close(ctx), test.ShouldBeNil)
	test.That(t, b.CloseCount, test.ShouldEqual, 1)
}
