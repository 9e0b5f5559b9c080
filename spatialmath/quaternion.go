package spatialmath

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// QuaternionToXYZW returns the components of q in (x, y, z, w) order.
func QuaternionToXYZW(q quat.Number) [4]float64 {
	return [4]float64{q.Imag, q.Jmag, q.Kmag, q.Real}
}

// QuaternionFromXYZW builds a quaternion from components in (x, y, z, w) order.
func QuaternionFromXYZW(v [4]float64) quat.Number {
	return quat.Number{Real: v[3], Imag: v[0], Jmag: v[1], Kmag: v[2]}
}

// Normalize returns q scaled to unit length. The zero quaternion is returned as the identity.
func Normalize(q quat.Number) quat.Number {
	norm := quat.Abs(q)
	if norm == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/norm, q)
}

// QuaternionAlmostEqual is an equality test for all the float components of a quaternion.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	return math.Abs(a.Real-b.Real) <= tol &&
		math.Abs(a.Imag-b.Imag) <= tol &&
		math.Abs(a.Jmag-b.Jmag) <= tol &&
		math.Abs(a.Kmag-b.Kmag) <= tol
}

// QuaternionFromYaw returns the rotation of yaw radians about the z axis.
func QuaternionFromYaw(yaw float64) quat.Number {
	return quat.Number{Real: math.Cos(yaw / 2), Kmag: math.Sin(yaw / 2)}
}

// RotationMatrixFromQuaternion returns the 3x3 rotation matrix of the unit quaternion q.
func RotationMatrixFromQuaternion(q quat.Number) *mat.Dense {
	q = Normalize(q)
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return mat.NewDense(3, 3, []float64{
		1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w),
		2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w),
		2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y),
	})
}

// QuaternionFromRotationMatrix converts a 3x3 rotation matrix to a unit quaternion.
//
// The component with the largest magnitude is recovered first from the diagonal and the others
// from the off-diagonal sums, which keeps the result stable near 180 degree rotations. The sign
// follows from that largest component being positive.
func QuaternionFromRotationMatrix(m mat.Matrix) (quat.Number, error) {
	if r, c := m.Dims(); r != 3 || c != 3 {
		return quat.Number{}, errors.Errorf("rotation matrix must be 3x3, got %dx%d", r, c)
	}
	trace := m.At(0, 0) + m.At(1, 1) + m.At(2, 2)

	// choice indexes the largest of m00, m11, m22 and the trace.
	decision := [4]float64{m.At(0, 0), m.At(1, 1), m.At(2, 2), trace}
	choice := 0
	for i, v := range decision {
		if v > decision[choice] {
			choice = i
		}
	}

	var xyzw [4]float64
	if choice == 3 {
		xyzw[0] = m.At(2, 1) - m.At(1, 2)
		xyzw[1] = m.At(0, 2) - m.At(2, 0)
		xyzw[2] = m.At(1, 0) - m.At(0, 1)
		xyzw[3] = 1 + trace
	} else {
		i := choice
		j := (i + 1) % 3
		k := (j + 1) % 3
		xyzw[i] = 1 - trace + 2*m.At(i, i)
		xyzw[j] = m.At(j, i) + m.At(i, j)
		xyzw[k] = m.At(k, i) + m.At(i, k)
		xyzw[3] = m.At(k, j) - m.At(j, k)
	}
	q := QuaternionFromXYZW(xyzw)
	if quat.Abs(q) == 0 {
		return quat.Number{}, errors.New("rotation matrix is degenerate")
	}
	return Normalize(q), nil
}
