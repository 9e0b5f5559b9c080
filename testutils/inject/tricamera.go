package inject

import (
	"context"
	"image"

	"go.viam.com/utils"

	"github.com/trifinger/sim/components/camera"
)

// TriCamera is an injected tri-camera.
type TriCamera struct {
	camera.TriCamera
	ImagesFunc func(ctx context.Context) ([]image.Image, error)
	CloseFunc  func(ctx context.Context) error
}

// Images calls the injected Images or the real version.
func (c *TriCamera) Images(ctx context.Context) ([]image.Image, error) {
	if c.ImagesFunc == nil {
		return c.TriCamera.Images(ctx)
	}
	return c.ImagesFunc(ctx)
}

// Close calls the injected Close or the real version.
func (c *TriCamera) Close(ctx context.Context) error {
	if c.CloseFunc == nil {
		return utils.TryClose(ctx, c.TriCamera)
	}
	return c.CloseFunc(ctx)
}
