package inject

import (
	"context"

	"go.viam.com/utils"

	"github.com/trifinger/sim/components/object"
	"github.com/trifinger/sim/spatialmath"
)

// Object is an injected object.
type Object struct {
	object.Object
	StateFunc func(ctx context.Context) (spatialmath.Pose, error)
	CloseFunc func(ctx context.Context) error
}

// State calls the injected State or the real version.
func (o *Object) State(ctx context.Context) (spatialmath.Pose, error) {
	if o.StateFunc == nil {
		return o.Object.State(ctx)
	}
	return o.StateFunc(ctx)
}

// Close calls the injected Close or the real version.
func (o *Object) Close(ctx context.Context) error {
	if o.CloseFunc == nil {
		return utils.TryClose(ctx, o.Object)
	}
	return o.CloseFunc(ctx)
}
