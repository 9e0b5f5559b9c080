// Package fake implements a fake tri-camera which returns solid colour images sized like the
// calibrated cameras.
package fake

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/trifinger/sim/calibration"
	"github.com/trifinger/sim/components/camera"
	"github.com/trifinger/sim/logging"
)

const (
	defaultWidth  = 720
	defaultHeight = 540
)

var cameraColors = [3]color.RGBA{
	{R: 0xc0, A: 0xff},
	{G: 0xc0, A: 0xff},
	{B: 0xc0, A: 0xff},
}

// Config are the attributes of the fake tri-camera config.
type Config struct {
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
	// CalibrationDir, if set, holds one calibration file per camera; image sizes are read from
	// them and override Width and Height.
	CalibrationDir string `json:"calibration_dir,omitempty"`
}

// Validate checks that the config attributes are valid for a fake tri-camera.
func (conf *Config) Validate(path string) error {
	if conf.Width < 0 || conf.Height < 0 {
		return errors.Errorf("%s: width and height must not be negative, got (%d, %d)", path, conf.Width, conf.Height)
	}
	return nil
}

// TriCamera renders one solid image per camera.
type TriCamera struct {
	CloseCount int

	sizes    [3]image.Point
	logger   logging.Logger
	captures atomic.Int64

	mu sync.Mutex
}

// NewTriCamera returns a new fake tri-camera.
func NewTriCamera(ctx context.Context, conf Config, logger logging.Logger) (*TriCamera, error) {
	if err := conf.Validate("tricamera"); err != nil {
		return nil, err
	}
	width, height := conf.Width, conf.Height
	if width == 0 {
		width = defaultWidth
	}
	if height == 0 {
		height = defaultHeight
	}
	tc := &TriCamera{logger: logger}
	for i := range tc.sizes {
		tc.sizes[i] = image.Pt(width, height)
	}
	if conf.CalibrationDir == "" {
		return tc, nil
	}

	paths, err := calibration.FindCameraCalibrationFiles(conf.CalibrationDir, camera.Names[:])
	if err != nil {
		return nil, err
	}
	for i, path := range paths {
		params, err := calibration.LoadCameraParameters(path)
		if err != nil {
			return nil, errors.Wrapf(err, "camera %s", camera.Names[i])
		}
		pose, err := params.Pose()
		if err != nil {
			return nil, errors.Wrapf(err, "camera %s", camera.Names[i])
		}
		tc.sizes[i] = image.Pt(params.Width, params.Height)
		logger.Debugw("loaded camera calibration", "camera", camera.Names[i], "file", path, "pose", pose.String())
	}
	return tc, nil
}

// Images returns three new images, ordered as camera.Names. The cameras are rendered concurrently.
func (tc *TriCamera) Images(ctx context.Context) ([]image.Image, error) {
	tc.captures.Inc()

	images := make([]image.Image, len(tc.sizes))
	g, ctx := errgroup.WithContext(ctx)
	for i := range tc.sizes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return errors.Wrapf(err, "rendering %s", camera.Names[i])
			}
			img := image.NewRGBA(image.Rectangle{Max: tc.sizes[i]})
			draw.Draw(img, img.Bounds(), &image.Uniform{C: cameraColors[i]}, image.Point{}, draw.Src)
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

// Captures returns how many times Images was called.
func (tc *TriCamera) Captures() int {
	return int(tc.captures.Load())
}

// Close counts the calls made to it.
func (tc *TriCamera) Close(ctx context.Context) error {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.CloseCount++
	return nil
}
