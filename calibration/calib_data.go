// Package calibration parses TriFinger camera calibration records.
//
// A calibration file is a YAML document in which every matrix is stored as a record of the
// form {rows, cols, data} with data listed in row-major order, e.g.
//
//	tf_world_to_camera:
//	  rows: 4
//	  cols: 4
//	  data: [...]
package calibration

import (
	"gonum.org/v1/gonum/mat"
)

// CalibData is a matrix as stored in a calibration file.
type CalibData struct {
	Rows int       `yaml:"rows" json:"rows"`
	Cols int       `yaml:"cols" json:"cols"`
	Data []float64 `yaml:"data" json:"data"`
}

// MatrixFromCalibData reshapes d.Data into a d.Rows x d.Cols matrix in row-major order, so element
// (i, j) is d.Data[i*d.Cols+j].
func MatrixFromCalibData(d CalibData) (*mat.Dense, error) {
	// rows*cols may overflow, so the length is checked by division.
	if d.Rows <= 0 || d.Cols <= 0 || len(d.Data)%d.Cols != 0 || len(d.Data)/d.Cols != d.Rows {
		return nil, NewShapeError(d.Rows, d.Cols, len(d.Data))
	}
	data := make([]float64, len(d.Data))
	copy(data, d.Data)
	return mat.NewDense(d.Rows, d.Cols, data), nil
}

// CalibDataFromMatrix flattens m into a calibration record.
func CalibDataFromMatrix(m mat.Matrix) CalibData {
	rows, cols := m.Dims()
	data := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data = append(data, m.At(i, j))
		}
	}
	return CalibData{Rows: rows, Cols: cols, Data: data}
}
