package math

// Mat3 is a 3x3 matrix stored column-major, matching the layout
// expected by glUniformMatrix3fv with transpose=false.
type Mat3 [9]float32

// Mat3Identity returns the identity matrix.
func Mat3Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mat3FromRows builds a matrix from three row vectors.
func Mat3FromRows(r0, r1, r2 Vec3) Mat3 {
	return Mat3{
		r0.X, r1.X, r2.X,
		r0.Y, r1.Y, r2.Y,
		r0.Z, r1.Z, r2.Z,
	}
}

// Row returns row i as a vector.
func (m Mat3) Row(i int) Vec3 {
	return Vec3{m[i], m[i+3], m[i+6]}
}

// MulVec3 returns m * v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// Ptr returns a pointer to the first element for GL upload.
func (m *Mat3) Ptr() *float32 {
	return &m[0]
}
