package input

// Drag accumulates pointer motion while a button is held.
type Drag struct {
	active bool
	lastX  int
	lastY  int
	dx     int
	dy     int
}

// Press starts a drag at x, y.
func (d *Drag) Press(x, y int) {
	d.active = true
	d.lastX, d.lastY = x, y
}

// Release ends the current drag. Motion already accumulated is kept until Take.
func (d *Drag) Release() {
	d.active = false
}

// Move records pointer motion. It is ignored unless a drag is active.
func (d *Drag) Move(x, y int) {
	if !d.active {
		return
	}
	d.dx += x - d.lastX
	d.dy += y - d.lastY
	d.lastX, d.lastY = x, y
}

// Active reports whether a button is held.
func (d *Drag) Active() bool {
	return d.active
}

// Take returns the motion accumulated since the last call and resets it.
func (d *Drag) Take() (dx, dy int) {
	dx, dy = d.dx, d.dy
	d.dx, d.dy = 0, 0
	return dx, dy
}
