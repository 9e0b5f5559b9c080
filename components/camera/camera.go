// Package camera defines the three-camera rig of the platform and its observations.
package camera

import (
	"context"
	"image"

	"github.com/pkg/errors"
)

// Names are the cameras of the rig, in the order used by every observation.
var Names = [3]string{"camera60", "camera180", "camera300"}

// ErrImageCount is returned when a TriCamera does not deliver exactly one image per camera.
var ErrImageCount = errors.New("tri-camera must return exactly 3 images")

// NewImageCountError is used when n images were returned instead of 3.
func NewImageCountError(n int) error {
	return errors.Wrapf(ErrImageCount, "got %d", n)
}

// A TriCamera captures one image from each camera, ordered as Names.
type TriCamera interface {
	Images(ctx context.Context) ([]image.Image, error)
}

// CameraObservation is the image of one camera. A nil Image or Timestamp means unset.
type CameraObservation struct {
	Image     image.Image
	Timestamp *float64
}

// TriCameraObservation holds the observations of camera60, camera180 and camera300, in that order.
type TriCameraObservation struct {
	Cameras [3]CameraObservation
}

// NewTriCameraObservation returns an observation with all three cameras unset.
func NewTriCameraObservation() TriCameraObservation {
	return TriCameraObservation{}
}

// Camera returns the observation of the named camera.
func (obs *TriCameraObservation) Camera(name string) (CameraObservation, error) {
	for i, n := range Names {
		if n == name {
			return obs.Cameras[i], nil
		}
	}
	return CameraObservation{}, errors.Errorf("unknown camera %q", name)
}
