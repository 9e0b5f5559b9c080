// Package main is a command line tool for inspecting calibration files and running the simulated
// platform against fake collaborators.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.viam.com/utils"
	"gonum.org/v1/gonum/mat"

	"github.com/trifinger/sim/calibration"
	"github.com/trifinger/sim/components/camera"
	camerafake "github.com/trifinger/sim/components/camera/fake"
	"github.com/trifinger/sim/components/finger"
	fingerfake "github.com/trifinger/sim/components/finger/fake"
	"github.com/trifinger/sim/components/object"
	objectfake "github.com/trifinger/sim/components/object/fake"
	"github.com/trifinger/sim/logging"
	"github.com/trifinger/sim/platform"
	"github.com/trifinger/sim/spatialmath"
	"github.com/trifinger/sim/tasks/movecube"
)

const (
	// Flags.
	flagFile           = "file"
	flagKey            = "key"
	flagSteps          = "steps"
	flagConfig         = "config"
	flagCalibrationDir = "calibration-dir"
	flagSeed           = "seed"
	flagDebug          = "debug"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	var logger logging.Logger

	return &cli.App{
		Name:  "trifinger-sim",
		Usage: "inspect camera calibration and run the simulated TriFinger platform",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool(flagDebug) {
				logger = logging.NewDebugLogger("trifinger-sim")
			} else {
				logger = logging.NewLogger("trifinger-sim")
			}
			logging.ReplaceGlobal(logger)
			return nil
		},
		After: func(c *cli.Context) error {
			if logger != nil {
				utils.UncheckedError(logger.Sync())
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "camera-pose",
				Usage:     "print the world pose of a camera from its calibration file",
				UsageText: "trifinger-sim camera-pose --file <calibration.yml>",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: flagFile, Required: true, Usage: "calibration `FILE`"},
				},
				Action: func(c *cli.Context) error {
					return printCameraPose(c.App.Writer, c.Path(flagFile))
				},
			},
			{
				Name:      "calib-matrix",
				Usage:     "print one matrix of a calibration file",
				UsageText: "trifinger-sim calib-matrix --file <calibration.yml> --key camera_matrix",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: flagFile, Required: true, Usage: "calibration `FILE`"},
					&cli.StringFlag{Name: flagKey, Value: "camera_matrix", Usage: "matrix to print"},
				},
				Action: func(c *cli.Context) error {
					return printCalibMatrix(c.App.Writer, c.Path(flagFile), c.String(flagKey))
				},
			},
			{
				Name:  "config-schema",
				Usage: "print the JSON schema of the platform config accepted by demo --config",
				Action: func(c *cli.Context) error {
					return printConfigSchema(c.App.Writer)
				},
			},
			{
				Name:  "demo",
				Usage: "step the simulated platform and print object poses and camera timestamps",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: flagSteps, Value: 10, Usage: "number of actions to append"},
					&cli.PathFlag{Name: flagConfig, Usage: "platform config JSON `FILE`"},
					&cli.PathFlag{Name: flagCalibrationDir, Usage: "directory holding camera60/180/300 calibration files"},
					&cli.Int64Flag{Name: flagSeed, Value: 0, Usage: "seed of the object pose sampler"},
				},
				Action: func(c *cli.Context) error {
					conf, err := readConfig(c.Path(flagConfig))
					if err != nil {
						return err
					}
					return runDemo(c.Context, c.App.Writer, *conf, demoOptions{
						steps:          c.Int(flagSteps),
						calibrationDir: c.Path(flagCalibrationDir),
						seed:           c.Int64(flagSeed),
					}, logger)
				},
			},
		},
	}
}

func printCameraPose(w io.Writer, path string) error {
	position, orientation, err := calibration.LoadCameraPoseFromFile(path)
	if err != nil {
		return err
	}
	q := spatialmath.QuaternionToXYZW(orientation)
	fmt.Fprintf(w, "position: %.8f %.8f %.8f\n", position.X, position.Y, position.Z)
	fmt.Fprintf(w, "orientation (xyzw): %.8f %.8f %.8f %.8f\n", q[0], q[1], q[2], q[3])
	return nil
}

func printCalibMatrix(w io.Writer, path, key string) error {
	params, err := calibration.LoadCameraParameters(path)
	if err != nil {
		return err
	}
	m, err := params.Matrix(key)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s =\n%v\n", key, mat.Formatted(m, mat.Squeeze()))
	return nil
}

func printConfigSchema(w io.Writer) error {
	out, err := json.MarshalIndent(jsonschema.Reflect(&platform.Config{}), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(out))
	return nil
}

func readConfig(path string) (*platform.Config, error) {
	if path == "" {
		return &platform.Config{}, nil
	}
	//nolint:gosec
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "error reading config file")
	}
	var attrs map[string]interface{}
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return nil, errors.Wrap(err, "error parsing config file")
	}
	return platform.NativeConfig(attrs)
}

type demoOptions struct {
	steps          int
	calibrationDir string
	seed           int64
}

// fakeDependencies wires the platform to the fake finger, block and tri-camera.
func fakeDependencies(opts demoOptions, logger logging.Logger) platform.Dependencies {
	return platform.Dependencies{
		NewFinger: func(ctx context.Context, conf finger.Config) (finger.Finger, error) {
			return fingerfake.NewFinger(ctx, conf, logger.Sublogger("finger"))
		},
		NewObject: func(ctx context.Context, initialPose spatialmath.Pose) (object.Object, error) {
			return objectfake.NewBlock(initialPose), nil
		},
		NewTriCamera: func(ctx context.Context) (camera.TriCamera, error) {
			return camerafake.NewTriCamera(ctx, camerafake.Config{CalibrationDir: opts.calibrationDir}, logger.Sublogger("tricamera"))
		},
		Sampler: movecube.NewRandomSampler(opts.seed),
	}
}

func runDemo(ctx context.Context, w io.Writer, conf platform.Config, opts demoOptions, logger logging.Logger) (err error) {
	if opts.steps <= 0 {
		return errors.Errorf("steps must be positive, got %d", opts.steps)
	}
	p, err := platform.New(ctx, conf, fakeDependencies(opts, logger), logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := p.Close(ctx); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	action := p.NewAction(nil, platform.InitialJointPositions())
	for i := 0; i < opts.steps; i++ {
		t, err := p.AppendDesiredAction(ctx, action)
		if err != nil {
			return err
		}
		pose, err := p.ObjectPose(ctx, t)
		if err != nil {
			return err
		}
		obs, err := p.CameraObservation(ctx, t)
		if err != nil {
			return err
		}
		q := pose.OrientationXYZW()
		fmt.Fprintf(w, "t=%d object position=[%.4f %.4f %.4f] orientation=[%.4f %.4f %.4f %.4f] timestamp=%g\n",
			t, pose.Position.X, pose.Position.Y, pose.Position.Z, q[0], q[1], q[2], q[3], pose.Timestamp)
		for j, cam := range obs.Cameras {
			bounds := cam.Image.Bounds()
			fmt.Fprintf(w, "  %s %dx%d timestamp=%g\n", camera.Names[j], bounds.Dx(), bounds.Dy(), *cam.Timestamp)
		}
	}
	return nil
}
