package scene

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// eulerXYZToQuat converts an XYZ-order Euler rotation (radians) to a
// quaternion. XYZ order means the X rotation is applied first, so the
// composed quaternion is qz * qy * qx.
func eulerXYZToQuat(e [3]float64) quat.Number {
	qx := axisAngle(e[0], 1, 0, 0)
	qy := axisAngle(e[1], 0, 1, 0)
	qz := axisAngle(e[2], 0, 0, 1)
	return quat.Mul(qz, quat.Mul(qy, qx))
}

func axisAngle(angle, x, y, z float64) quat.Number {
	s, c := math.Sincos(angle / 2)
	return quat.Number{Real: c, Imag: x * s, Jmag: y * s, Kmag: z * s}
}
