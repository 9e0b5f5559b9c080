package calibration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gopkg.in/yaml.v3"

	"github.com/trifinger/sim/spatialmath"
)

// Keys of the calibration file.
const (
	keyCameraMatrix     = "camera_matrix"
	keyDistortion       = "distortion_coefficients"
	keyProjectionMatrix = "projection_matrix"
	keyTfWorldToCamera  = "tf_world_to_camera"
)

// rawCalibData keeps track of which fields were present in the file.
type rawCalibData struct {
	Rows *int      `yaml:"rows"`
	Cols *int      `yaml:"cols"`
	Data []float64 `yaml:"data"`
}

type calibrationFile struct {
	CameraName             string        `yaml:"camera_name"`
	ImageWidth             int           `yaml:"image_width"`
	ImageHeight            int           `yaml:"image_height"`
	CameraMatrix           *rawCalibData `yaml:"camera_matrix"`
	DistortionCoefficients *rawCalibData `yaml:"distortion_coefficients"`
	ProjectionMatrix       *rawCalibData `yaml:"projection_matrix"`
	TfWorldToCamera        *rawCalibData `yaml:"tf_world_to_camera"`
}

// CameraParameters holds the intrinsic and extrinsic calibration of one camera.
type CameraParameters struct {
	Name   string
	Width  int
	Height int
	// CameraMatrix is the 3x3 intrinsic matrix.
	CameraMatrix *mat.Dense
	// DistortionCoefficients is a 1xN row of distortion coefficients.
	DistortionCoefficients *mat.Dense
	// ProjectionMatrix is the 3x4 world-to-image projection.
	ProjectionMatrix *mat.Dense
	// TfWorldToCamera is the 4x4 homogeneous transform from world to camera frame.
	TfWorldToCamera *mat.Dense
}

// LoadCameraParameters reads all calibration matrices of a camera from a calibration file.
func LoadCameraParameters(path string) (*CameraParameters, error) {
	file, err := readCalibrationFile(path)
	if err != nil {
		return nil, err
	}
	if file.CameraName == "" {
		return nil, NewMissingFieldError("camera_name")
	}
	if file.ImageWidth <= 0 {
		return nil, NewMissingFieldError("image_width")
	}
	if file.ImageHeight <= 0 {
		return nil, NewMissingFieldError("image_height")
	}

	params := &CameraParameters{
		Name:   file.CameraName,
		Width:  file.ImageWidth,
		Height: file.ImageHeight,
	}
	if params.CameraMatrix, err = file.CameraMatrix.matrix(keyCameraMatrix, 3, 3); err != nil {
		return nil, err
	}
	if params.DistortionCoefficients, err = file.DistortionCoefficients.matrix(keyDistortion, 1, -1); err != nil {
		return nil, err
	}
	if params.ProjectionMatrix, err = file.ProjectionMatrix.matrix(keyProjectionMatrix, 3, 4); err != nil {
		return nil, err
	}
	if params.TfWorldToCamera, err = file.TfWorldToCamera.matrix(keyTfWorldToCamera, 4, 4); err != nil {
		return nil, err
	}
	return params, nil
}

// Matrix returns the matrix stored under key in the calibration file.
func (params *CameraParameters) Matrix(key string) (*mat.Dense, error) {
	switch key {
	case keyCameraMatrix:
		return params.CameraMatrix, nil
	case keyDistortion:
		return params.DistortionCoefficients, nil
	case keyProjectionMatrix:
		return params.ProjectionMatrix, nil
	case keyTfWorldToCamera:
		return params.TfWorldToCamera, nil
	default:
		return nil, errors.Errorf("unknown calibration matrix %q", key)
	}
}

// Pose returns the pose of the camera in the world frame.
func (params *CameraParameters) Pose() (spatialmath.Pose, error) {
	return cameraPoseFromTransform(params.TfWorldToCamera)
}

// LoadCameraPoseFromFile returns the position and the (unit) orientation quaternion of a camera in
// the world frame, as stored in the tf_world_to_camera transform of its calibration file.
func LoadCameraPoseFromFile(path string) (r3.Vector, quat.Number, error) {
	file, err := readCalibrationFile(path)
	if err != nil {
		return r3.Vector{}, quat.Number{}, err
	}
	tf, err := file.TfWorldToCamera.matrix(keyTfWorldToCamera, 4, 4)
	if err != nil {
		return r3.Vector{}, quat.Number{}, err
	}
	pose, err := cameraPoseFromTransform(tf)
	if err != nil {
		return r3.Vector{}, quat.Number{}, err
	}
	return pose.Position, pose.Orientation, nil
}

// FindCameraCalibrationFiles returns, for each name in order, the first file in dir matching
// "<name>*.yml".
func FindCameraCalibrationFiles(dir string, names []string) ([]string, error) {
	paths := make([]string, 0, len(names))
	for _, name := range names {
		matches, err := filepath.Glob(filepath.Join(dir, name+"*.yml"))
		if err != nil {
			return nil, errors.Wrapf(ErrFile, "bad pattern for camera %q: %v", name, err)
		}
		if len(matches) == 0 {
			return nil, errors.Wrapf(ErrFile, "no calibration file for camera %q in %s", name, dir)
		}
		sort.Strings(matches)
		paths = append(paths, matches[0])
	}
	return paths, nil
}

func readCalibrationFile(path string) (*calibrationFile, error) {
	//nolint:gosec
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, multierr.Combine(errors.Wrapf(ErrFile, "reading %s", path), err)
	}
	var file calibrationFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Wrapf(ErrFile, "error parsing %s: %v", path, err)
	}
	return &file, nil
}

// matrix validates the record against the expected shape (a negative value accepts any size in
// that dimension) and converts it.
func (raw *rawCalibData) matrix(key string, rows, cols int) (*mat.Dense, error) {
	switch {
	case raw == nil:
		return nil, NewMissingFieldError(key)
	case raw.Rows == nil:
		return nil, NewMissingFieldError(key + ".rows")
	case raw.Cols == nil:
		return nil, NewMissingFieldError(key + ".cols")
	case raw.Data == nil:
		return nil, NewMissingFieldError(key + ".data")
	}
	if (rows >= 0 && *raw.Rows != rows) || (cols >= 0 && *raw.Cols != cols) {
		return nil, errors.Wrapf(ErrShape, "%s must be %s, got %dx%d", key, shapeString(rows, cols), *raw.Rows, *raw.Cols)
	}
	m, err := MatrixFromCalibData(CalibData{Rows: *raw.Rows, Cols: *raw.Cols, Data: raw.Data})
	if err != nil {
		return nil, errors.Wrap(err, key)
	}
	return m, nil
}

func shapeString(rows, cols int) string {
	dim := func(n int) string {
		if n < 0 {
			return "N"
		}
		return fmt.Sprint(n)
	}
	return dim(rows) + "x" + dim(cols)
}

// cameraPoseFromTransform inverts a world-to-camera transform and splits the camera-to-world
// result into translation and rotation.
func cameraPoseFromTransform(tfWorldToCamera mat.Matrix) (spatialmath.Pose, error) {
	var tfCameraToWorld mat.Dense
	if err := tfCameraToWorld.Inverse(tfWorldToCamera); err != nil {
		return spatialmath.Pose{}, errors.Wrapf(ErrShape, "%s is not invertible: %v", keyTfWorldToCamera, err)
	}
	orientation, err := spatialmath.QuaternionFromRotationMatrix(tfCameraToWorld.Slice(0, 3, 0, 3))
	if err != nil {
		return spatialmath.Pose{}, errors.Wrap(err, keyTfWorldToCamera)
	}
	position := r3.Vector{
		X: tfCameraToWorld.At(0, 3),
		Y: tfCameraToWorld.At(1, 3),
		Z: tfCameraToWorld.At(2, 3),
	}
	return spatialmath.NewPose(position, orientation), nil
}
