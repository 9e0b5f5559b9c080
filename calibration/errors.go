package calibration

import (
	"github.com/pkg/errors"
)

var (
	// ErrShape is returned when calibration values do not fill a matrix of the declared shape.
	ErrShape = errors.New("calibration data does not match its shape")
	// ErrFile is returned when a calibration file is missing or cannot be parsed.
	ErrFile = errors.New("cannot load calibration file")
	// ErrSchema is returned when a calibration file lacks a required field.
	ErrSchema = errors.New("calibration file is missing a required field")
)

// NewShapeError is used when len(data) != rows*cols or the shape itself is invalid.
func NewShapeError(rows, cols, n int) error {
	return errors.Wrapf(ErrShape, "%dx%d matrix cannot hold %d values", rows, cols, n)
}

// NewMissingFieldError is used when a required field is absent from a calibration record.
func NewMissingFieldError(field string) error {
	return errors.Wrapf(ErrSchema, "field %q", field)
}
