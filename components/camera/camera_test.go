package camera

import (
	"image"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestNewTriCameraObservation(t *testing.T) {
	obs := NewTriCameraObservation()
	test.That(t, len(obs.Cameras), test.ShouldEqual, 3)
	for _, c := range obs.Cameras {
		test.That(t, c.Image, test.ShouldBeNil)
		test.That(t, c.Timestamp, test.ShouldBeNil)
	}
	test.That(t, Names, test.ShouldResemble, [3]string{"camera60", "camera180", "camera300"})
}

func TestCameraByName(t *testing.T) {
	obs := NewTriCameraObservation()
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	ts := 1000.0
	obs.Cameras[1] = CameraObservation{Image: img, Timestamp: &ts}

	c, err := obs.Camera("camera180")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c.Image, test.ShouldEqual, img)
	test.That(t, *c.Timestamp, test.ShouldEqual, 1000.0)

	c, err = obs.Camera("camera60")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c.Image, test.ShouldBeNil)

	_, err = obs.Camera("camera90")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestImageCountError(t *testing.T) {
	err := NewImageCountError(2)
	test.That(t, errors.Is(err, ErrImageCount), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "got 2")
}
