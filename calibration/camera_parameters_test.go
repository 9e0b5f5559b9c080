package calibration

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"github.com/trifinger/sim/spatialmath"
)

const camera60File = "testdata/camera60_full.yml"

func TestLoadCameraPoseFromFile(t *testing.T) {
	position, orientation, err := LoadCameraPoseFromFile(camera60File)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, position.X, test.ShouldAlmostEqual, 0.2499816, 1e-6)
	test.That(t, position.Y, test.ShouldAlmostEqual, 0.24582271, 1e-6)
	test.That(t, position.Z, test.ShouldAlmostEqual, 0.38930428, 1e-6)

	xyzw := spatialmath.QuaternionToXYZW(orientation)
	expected := [4]float64{0.36162226, 0.86188589, -0.3288036, -0.13516749}
	for i := range expected {
		test.That(t, xyzw[i], test.ShouldAlmostEqual, expected[i], 1e-6)
	}
	test.That(t, quat.Abs(orientation), test.ShouldAlmostEqual, 1.0, 1e-12)
}

func TestLoadCameraPoseFromFileErrors(t *testing.T) {
	_, _, err := LoadCameraPoseFromFile("testdata/does_not_exist.yml")
	test.That(t, errors.Is(err, ErrFile), test.ShouldBeTrue)
	test.That(t, errors.Is(err, fs.ErrNotExist), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "testdata/does_not_exist.yml")

	_, _, err = LoadCameraPoseFromFile("testdata")
	test.That(t, errors.Is(err, ErrFile), test.ShouldBeTrue)
	test.That(t, errors.Is(err, fs.ErrNotExist), test.ShouldBeFalse)

	_, _, err = LoadCameraPoseFromFile("testdata/corrupt.yml")
	test.That(t, errors.Is(err, ErrFile), test.ShouldBeTrue)

	_, _, err = LoadCameraPoseFromFile("testdata/camera60_no_tf.yml")
	test.That(t, errors.Is(err, ErrSchema), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "tf_world_to_camera")

	_, _, err = LoadCameraPoseFromFile("testdata/camera60_no_tf_data.yml")
	test.That(t, errors.Is(err, ErrSchema), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "tf_world_to_camera.data")

	_, _, err = LoadCameraPoseFromFile("testdata/camera60_bad_shape.yml")
	test.That(t, errors.Is(err, ErrShape), test.ShouldBeTrue)
}

func TestLoadCameraParameters(t *testing.T) {
	params, err := LoadCameraParameters(camera60File)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, params.Name, test.ShouldEqual, "camera60")
	test.That(t, params.Width, test.ShouldEqual, 720)
	test.That(t, params.Height, test.ShouldEqual, 540)

	r, c := params.CameraMatrix.Dims()
	test.That(t, []int{r, c}, test.ShouldResemble, []int{3, 3})
	test.That(t, params.CameraMatrix.At(0, 0), test.ShouldEqual, 589.1)
	test.That(t, params.CameraMatrix.At(1, 2), test.ShouldEqual, 289.7)
	r, c = params.DistortionCoefficients.Dims()
	test.That(t, []int{r, c}, test.ShouldResemble, []int{1, 5})
	r, c = params.ProjectionMatrix.Dims()
	test.That(t, []int{r, c}, test.ShouldResemble, []int{3, 4})

	// the projection matrix is the camera matrix applied to the top rows of the transform.
	var proj mat.Dense
	proj.Mul(params.CameraMatrix, params.TfWorldToCamera.Slice(0, 3, 0, 4))
	test.That(t, mat.EqualApprox(&proj, params.ProjectionMatrix, 1e-9), test.ShouldBeTrue)

	m, err := params.Matrix("tf_world_to_camera")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m, test.ShouldEqual, params.TfWorldToCamera)
	_, err = params.Matrix("rectification_matrix")
	test.That(t, err, test.ShouldNotBeNil)

	pose, err := params.Pose()
	test.That(t, err, test.ShouldBeNil)
	position, orientation, err := LoadCameraPoseFromFile(camera60File)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.PoseAlmostEqual(pose, spatialmath.NewPose(position, orientation), 1e-12), test.ShouldBeTrue)
}

func TestLoadCameraParametersMissingIntrinsics(t *testing.T) {
	_, err := LoadCameraParameters("testdata/camera60_no_tf_data.yml")
	test.That(t, errors.Is(err, ErrSchema), test.ShouldBeTrue)

	_, err = LoadCameraParameters("testdata/camera60_no_tf.yml")
	test.That(t, errors.Is(err, ErrSchema), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "distortion_coefficients")
}

func TestFindCameraCalibrationFiles(t *testing.T) {
	dir := t.TempDir()
	full, err := os.ReadFile(camera60File)
	test.That(t, err, test.ShouldBeNil)
	for _, name := range []string{"camera300_cropped.yml", "camera60_full.yml", "camera180_full.yml", "notes.txt"} {
		test.That(t, os.WriteFile(filepath.Join(dir, name), full, 0o600), test.ShouldBeNil)
	}

	paths, err := FindCameraCalibrationFiles(dir, []string{"camera60", "camera180", "camera300"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, paths, test.ShouldResemble, []string{
		filepath.Join(dir, "camera60_full.yml"),
		filepath.Join(dir, "camera180_full.yml"),
		filepath.Join(dir, "camera300_cropped.yml"),
	})

	_, err = FindCameraCalibrationFiles(dir, []string{"camera60", "camera90"})
	test.That(t, errors.Is(err, ErrFile), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "camera90")
}
