package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func vecNear(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestVec3Basics(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"add", a.Add(b), V3(5, -3, 9)},
		{"sub", a.Sub(b), V3(-3, 7, -3)},
		{"mul", a.Mul(b), V3(4, -10, 18)},
		{"scale", a.Scale(2), V3(2, 4, 6)},
		{"negate", a.Negate(), V3(-1, -2, -3)},
		{"min", a.Min(b), V3(1, -5, 3)},
		{"max", a.Max(b), V3(4, 2, 6)},
		{"cross", V3(1, 0, 0).Cross(V3(0, 1, 0)), V3(0, 0, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !vecNear(tc.got, tc.expected, eps) {
				t.Errorf("got %v, want %v", tc.got, tc.expected)
			}
		})
	}

	if d := a.Dot(b); d != 12 {
		t.Errorf("dot = %v, want 12", d)
	}
	if l := V3(3, 4, 0).Len(); l != 5 {
		t.Errorf("len = %v, want 5", l)
	}
	if d := Zero3().Distance(V3(0, 3, 4)); d != 5 {
		t.Errorf("distance = %v, want 5", d)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := V3(0, 3, 4).Normalize()
	if !vecNear(n, V3(0, 0.6, 0.8), eps) {
		t.Errorf("normalize = %v, want (0, 0.6, 0.8)", n)
	}
	if math.Abs(n.Len()-1) > eps {
		t.Errorf("normalized length = %v, want 1", n.Len())
	}

	// Zero-length input is a precondition violation: NaN, not a silent zero.
	z := Zero3().Normalize()
	if z.IsFinite() {
		t.Errorf("normalize(zero) = %v, want NaN components", z)
	}
	if !math.IsNaN(z.X) {
		t.Errorf("normalize(zero).X = %v, want NaN", z.X)
	}
}

func TestCrossProperties(t *testing.T) {
	pairs := [][2]Vec3{
		{V3(1, 2, 3), V3(4, 5, 6)},
		{V3(0, 1, 0), V3(1, 1, 0)},
		{V3(-2, 0.5, 7), V3(3, -1, 0.25)},
		{V3(0.1, 0.2, -0.3), V3(10, 0, 1)},
	}

	for _, p := range pairs {
		a, b := p[0], p[1]
		ab := a.Cross(b)
		ba := b.Cross(a)

		if !vecNear(ab, ba.Negate(), eps) {
			t.Errorf("cross(%v, %v) = %v, want -cross(b, a) = %v", a, b, ab, ba.Negate())
		}
		if d := a.Dot(ab); math.Abs(d) > 1e-9 {
			t.Errorf("dot(a, cross(a, b)) = %v, want 0", d)
		}
		if d := b.Dot(ab); math.Abs(d) > 1e-9 {
			t.Errorf("dot(b, cross(a, b)) = %v, want 0", d)
		}
	}
}

func TestVec4PerspectiveDivide(t *testing.T) {
	v := V4(2, 4, 6, 2).PerspectiveDivide()
	if v != V3(1, 2, 3) {
		t.Errorf("divide = %v, want (1, 2, 3)", v)
	}

	// w == 0 leaves the components alone
	v = V4(2, 4, 6, 0).PerspectiveDivide()
	if v != V3(2, 4, 6) {
		t.Errorf("divide with w=0 = %v, want (2, 4, 6)", v)
	}

	if got := V4FromV3(V3(1, 2, 3), 1).Vec3(); got != V3(1, 2, 3) {
		t.Errorf("Vec3() = %v", got)
	}
}

func TestRotationMatrices(t *testing.T) {
	a := 0.7
	c, s := math.Cos(a), math.Sin(a)

	z := RotateZ(a)
	if z[0][0] != c || z[0][1] != s || z[1][0] != -s || z[1][1] != c || z[2][2] != 1 || z[3][3] != 1 {
		t.Errorf("RotateZ layout wrong: %v", z)
	}
	if z[0][2] != 0 || z[2][0] != 0 || z[3][0] != 0 || z[0][3] != 0 {
		t.Errorf("RotateZ has unexpected non-zero entries: %v", z)
	}

	x := RotateX(a)
	if x[0][0] != 1 || x[1][1] != c || x[1][2] != s || x[2][1] != -s || x[2][2] != c || x[3][3] != 1 {
		t.Errorf("RotateX layout wrong: %v", x)
	}

	// Quarter turn about Z maps +X to +Y (row-vector convention).
	got := RotateZ(math.Pi / 2).MulVec3(V3(1, 0, 0))
	if !vecNear(got, V3(0, 1, 0), eps) {
		t.Errorf("RotateZ(pi/2) * x = %v, want (0, 1, 0)", got)
	}

	// Quarter turn about X maps +Y to +Z.
	got = RotateX(math.Pi / 2).MulVec3(V3(0, 1, 0))
	if !vecNear(got, V3(0, 0, 1), eps) {
		t.Errorf("RotateX(pi/2) * y = %v, want (0, 0, 1)", got)
	}
}

func TestRotationIsIsometric(t *testing.T) {
	points := []Vec3{
		V3(0, 0, 0), V3(1, 0, 0), V3(1, 1, 1), V3(0, 1, 0),
		V3(-3, 2, 0.5), V3(0.25, -0.75, 4),
	}

	for angle := 0.0; angle < 2*math.Pi; angle += 0.37 {
		rot := RotateZ(angle * 0.5).Mul(RotateX(angle))
		if rot[0][3] != 0 || rot[1][3] != 0 || rot[2][3] != 0 || rot[3][3] != 1 {
			t.Fatalf("rotation last column = %v, want (0,0,0,1)", [4]float64{rot[0][3], rot[1][3], rot[2][3], rot[3][3]})
		}
		for _, p := range points {
			w := rot.MulVec4(V4FromV3(p, 1)).W
			if w != 1 {
				t.Errorf("w' = %v, want 1", w)
			}
			r := rot.MulVec3(p)
			if math.Abs(r.Len()-p.Len()) > 1e-9 {
				t.Errorf("angle %.2f: |rot(%v)| = %v, want %v", angle, p, r.Len(), p.Len())
			}
		}
	}
}

func TestMulMatchesSequentialApplication(t *testing.T) {
	p := V3(0.3, -1.2, 2.5)
	a := RotateZ(0.4)
	b := RotateX(1.1)

	sequential := b.MulVec3(a.MulVec3(p))
	combined := a.Mul(b).MulVec3(p)
	if !vecNear(sequential, combined, eps) {
		t.Errorf("p*a*b = %v, sequential = %v", combined, sequential)
	}

	if got := Identity().Mul(a); got != a {
		t.Errorf("identity * a = %v, want %v", got, a)
	}
}

func TestTranslateAndScale(t *testing.T) {
	m := Translate(V3(1, 2, 3))
	if got := m.MulVec3(V3(1, 1, 1)); got != V3(2, 3, 4) {
		t.Errorf("translate = %v, want (2, 3, 4)", got)
	}
	if got := m.Translation(); got != V3(1, 2, 3) {
		t.Errorf("Translation() = %v, want (1, 2, 3)", got)
	}

	// Translate first, then scale.
	ts := Translate(V3(-1, -1, -1)).Mul(ScaleUniform(2))
	if got := ts.MulVec3(V3(2, 2, 2)); got != V3(2, 2, 2) {
		t.Errorf("translate then scale = %v, want (2, 2, 2)", got)
	}

	var s Mat4
	s.Set(1, 2, 5)
	if s.Get(1, 2) != 5 || s[1][2] != 5 {
		t.Errorf("Set/Get round trip failed: %v", s)
	}
}

func TestPerspective(t *testing.T) {
	near, far := 0.1, 1000.0
	aspect := 800.0 / 1000.0
	m := Perspective(90, aspect, near, far)

	// tan(45deg) == 1
	if math.Abs(m[1][1]-1) > 1e-12 {
		t.Errorf("m[1][1] = %v, want 1", m[1][1])
	}
	if math.Abs(m[0][0]-aspect) > 1e-12 {
		t.Errorf("m[0][0] = %v, want %v", m[0][0], aspect)
	}
	if math.Abs(m[2][2]-far/(far-near)) > 1e-12 {
		t.Errorf("m[2][2] = %v", m[2][2])
	}
	if math.Abs(m[3][2]-(-far*near/(far-near))) > 1e-12 {
		t.Errorf("m[3][2] = %v", m[3][2])
	}
	if m[2][3] != 1 || m[3][3] != 0 {
		t.Errorf("m[2][3] = %v, m[3][3] = %v, want 1 and 0", m[2][3], m[3][3])
	}

	// Points on the near and far planes map to depth 0 and 1.
	if z := m.MulVec3(V3(0, 0, near)).Z; math.Abs(z) > 1e-9 {
		t.Errorf("near plane depth = %v, want 0", z)
	}
	if z := m.MulVec3(V3(0, 0, far)).Z; math.Abs(z-1) > 1e-9 {
		t.Errorf("far plane depth = %v, want 1", z)
	}

	// w' carries the input depth, so x shrinks with distance.
	p1 := m.MulVec3(V3(1, 1, 2))
	p2 := m.MulVec3(V3(1, 1, 4))
	if !(p2.X < p1.X && p2.Y < p1.Y) {
		t.Errorf("farther point not smaller on screen: %v vs %v", p1, p2)
	}
}

func TestMulVec3ZeroW(t *testing.T) {
	m := Perspective(90, 1, 0.1, 1000)

	// A point at z=0 lands on w'=0 and is left undivided.
	got := m.MulVec3(V3(2, 3, 0))
	want := m.MulVec4(V4(2, 3, 0, 1)).Vec3()
	if got != want {
		t.Errorf("w=0 result = %v, want undivided %v", got, want)
	}
}
