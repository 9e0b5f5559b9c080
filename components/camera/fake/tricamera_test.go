package fake

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/trifinger/sim/calibration"
	"github.com/trifinger/sim/logging"
)

func TestTriCameraDefaultSize(t *testing.T) {
	ctx := context.Background()
	tc, err := NewTriCamera(ctx, Config{}, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	images, err := tc.Images(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(images), test.ShouldEqual, 3)
	for i, img := range images {
		test.That(t, img.Bounds(), test.ShouldResemble, image.Rect(0, 0, defaultWidth, defaultHeight))
		test.That(t, color.RGBAModel.Convert(img.At(10, 10)), test.ShouldResemble, cameraColors[i])
	}
	test.That(t, tc.Captures(), test.ShouldEqual, 1)
}

func TestTriCameraConfiguredSize(t *testing.T) {
	ctx := context.Background()
	tc, err := NewTriCamera(ctx, Config{Width: 64, Height: 48}, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	images, err := tc.Images(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, images[2].Bounds().Dx(), test.ShouldEqual, 64)
	test.That(t, images[2].Bounds().Dy(), test.ShouldEqual, 48)

	_, err = NewTriCamera(ctx, Config{Width: -1}, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestTriCameraFromCalibration(t *testing.T) {
	ctx := context.Background()
	tc, err := NewTriCamera(ctx, Config{Width: 10, Height: 10, CalibrationDir: "testdata"}, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	images, err := tc.Images(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, images[0].Bounds(), test.ShouldResemble, image.Rect(0, 0, 720, 540))
	test.That(t, images[1].Bounds(), test.ShouldResemble, image.Rect(0, 0, 640, 480))
	test.That(t, images[2].Bounds(), test.ShouldResemble, image.Rect(0, 0, 320, 240))

	test.That(t, tc.Close(ctx), test.ShouldBeNil)
	test.That(t, tc.CloseCount, test.ShouldEqual, 1)
}

func TestTriCameraMissingCalibration(t *testing.T) {
	_, err := NewTriCamera(context.Background(), Config{CalibrationDir: t.TempDir()}, logging.NewTestLogger(t))
	test.That(t, errors.Is(err, calibration.ErrFile), test.ShouldBeTrue)
}

func TestTriCameraCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tc, err := NewTriCamera(ctx, Config{}, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	cancel()

	_, err = tc.Images(ctx)
	test.That(t, errors.Is(err, context.Canceled), test.ShouldBeTrue)
	test.That(t, tc.Captures(), test.ShouldEqual, 1)
}
