package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{2, 3, 6}
	got := v.Length()
	want := float32(7)
	if got != want {
		t.Errorf("Vec3.Length() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 12}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want 1", l)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero Vec3.Normalize() = %v, want zero vector", got)
	}
}

func TestVec3AddSubScale(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	if got := a.Add(b).Sub(b); got != a {
		t.Errorf("a+b-b = %v, want %v", got, a)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale(2) = %v, want (2, 4, 6)", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot() = %v, want 32", got)
	}
}
