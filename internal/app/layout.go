package app

import (
	"github.com/chewxy/math32"

	"github.com/hluengas/color-shredder/internal/engine/transform"
)

// Fractions of the shorter surface side.
const (
	marginFraction = 0.05
	legendFraction = 0.08
)

// Layout is the pixel placement of each drawn element.
type Layout struct {
	Panel   transform.Bounds // Background behind the surface
	Surface transform.Bounds
	Legend  transform.Bounds // Color strip along the right edge
}

// NewLayout places the legend along the right edge and gives the surface
// the remaining space inside the margins.
func NewLayout(s transform.Surface) Layout {
	margin := math32.Min(s.Width, s.Height) * marginFraction
	legendWidth := math32.Min(s.Width, s.Height) * legendFraction

	legend := transform.Bounds{
		Bottom: margin,
		Top:    s.Height - margin,
		Left:   s.Width - margin - legendWidth,
		Right:  s.Width - margin,
	}
	panel := transform.Bounds{
		Bottom: margin,
		Top:    s.Height - margin,
		Left:   margin,
		Right:  legend.Left - margin,
	}
	if panel.Right < panel.Left {
		panel.Right = panel.Left
	}

	return Layout{
		Panel:   panel,
		Surface: panel,
		Legend:  legend,
	}
}
