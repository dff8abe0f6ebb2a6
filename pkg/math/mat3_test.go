package math

import "testing"

func TestMat3Identity(t *testing.T) {
	id := Mat3Identity()
	v := Vec3{X: 0.25, Y: 0.5, Z: 0.75}
	if got := id.MulVec3(v); got != v {
		t.Errorf("identity * %v = %v, want unchanged", v, got)
	}
}

func TestMat3FromRows(t *testing.T) {
	m := Mat3FromRows(
		Vec3{X: 1, Y: 2, Z: 3},
		Vec3{X: 4, Y: 5, Z: 6},
		Vec3{X: 7, Y: 8, Z: 9},
	)

	if got := m.Row(0); got != (Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("row 0 = %v", got)
	}
	if got := m.Row(1); got != (Vec3{X: 4, Y: 5, Z: 6}) {
		t.Errorf("row 1 = %v", got)
	}
	if got := m.Row(2); got != (Vec3{X: 7, Y: 8, Z: 9}) {
		t.Errorf("row 2 = %v", got)
	}
}

func TestMat3MulVec3IsRowDot(t *testing.T) {
	r0 := Vec3{X: 0.3, Y: 0.6, Z: 0.1}
	r1 := Vec3{X: 0.2, Y: 0.7, Z: 0.1}
	r2 := Vec3{X: 0.1, Y: 0.1, Z: 0.8}
	m := Mat3FromRows(r0, r1, r2)

	v := Vec3{X: 0.5, Y: 0.25, Z: 1}
	got := m.MulVec3(v)
	want := Vec3{X: r0.Dot(v), Y: r1.Dot(v), Z: r2.Dot(v)}
	if got != want {
		t.Errorf("m*v = %v, want row dots %v", got, want)
	}
}

func TestMat3ColumnMajorLayout(t *testing.T) {
	m := Mat3FromRows(
		Vec3{X: 1, Y: 2, Z: 3},
		Vec3{X: 4, Y: 5, Z: 6},
		Vec3{X: 7, Y: 8, Z: 9},
	)
	// First column holds the rows' X components, in the order
	// glUniformMatrix3fv expects without transposition.
	want := Mat3{1, 4, 7, 2, 5, 8, 3, 6, 9}
	if m != want {
		t.Errorf("layout = %v, want %v", m, want)
	}
}

func TestVec3Sum(t *testing.T) {
	v := Vec3{X: 0.1, Y: 0.2, Z: 0.3}
	if got := v.Sum(); got < 0.5999 || got > 0.6001 {
		t.Errorf("sum = %f, want 0.6", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{X: 3, Y: 0, Z: 4}.Normalize()
	if got := v.Length(); got < 0.9999 || got > 1.0001 {
		t.Errorf("normalized length = %f, want 1", got)
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("normalizing zero vector = %v, want zero", zero)
	}
}
