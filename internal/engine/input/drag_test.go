package input

import "testing"

func TestDragIgnoresMotionWithoutPress(t *testing.T) {
	var d Drag
	d.Move(10, 10)
	d.Move(50, 20)

	if dx, dy := d.Take(); dx != 0 || dy != 0 {
		t.Errorf("expected no motion, got (%d, %d)", dx, dy)
	}
}

func TestDragAccumulates(t *testing.T) {
	var d Drag
	d.Press(100, 100)
	d.Move(110, 95)
	d.Move(130, 90)

	if !d.Active() {
		t.Error("expected drag to be active")
	}
	if dx, dy := d.Take(); dx != 30 || dy != -10 {
		t.Errorf("expected (30, -10), got (%d, %d)", dx, dy)
	}
	if dx, dy := d.Take(); dx != 0 || dy != 0 {
		t.Errorf("expected motion to reset after Take, got (%d, %d)", dx, dy)
	}
}

func TestDragRelease(t *testing.T) {
	var d Drag
	d.Press(0, 0)
	d.Move(5, 5)
	d.Release()
	d.Move(100, 100)

	if d.Active() {
		t.Error("expected drag to be inactive after release")
	}
	if dx, dy := d.Take(); dx != 5 || dy != 5 {
		t.Errorf("expected (5, 5), got (%d, %d)", dx, dy)
	}

	// A new press starts from the press position, not the old one
	d.Press(200, 200)
	d.Move(201, 202)
	if dx, dy := d.Take(); dx != 1 || dy != 2 {
		t.Errorf("expected (1, 2), got (%d, %d)", dx, dy)
	}
}
