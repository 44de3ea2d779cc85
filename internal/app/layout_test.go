package app

import (
	"testing"

	"github.com/hluengas/color-shredder/internal/engine/transform"
)

func TestNewLayout(t *testing.T) {
	l := NewLayout(transform.Surface{Width: 1000, Height: 500})

	// Margin 25, legend 40 wide
	wantLegend := transform.Bounds{Bottom: 25, Top: 475, Left: 935, Right: 975}
	if l.Legend != wantLegend {
		t.Errorf("legend = %+v, want %+v", l.Legend, wantLegend)
	}
	wantPanel := transform.Bounds{Bottom: 25, Top: 475, Left: 25, Right: 910}
	if l.Panel != wantPanel {
		t.Errorf("panel = %+v, want %+v", l.Panel, wantPanel)
	}
	if l.Surface != l.Panel {
		t.Errorf("surface %+v should cover the panel %+v", l.Surface, l.Panel)
	}
}

func TestNewLayoutInsideSurface(t *testing.T) {
	sizes := []transform.Surface{
		{Width: 1280, Height: 720},
		{Width: 300, Height: 900},
		{Width: 64, Height: 64},
	}

	for _, s := range sizes {
		l := NewLayout(s)
		for name, b := range map[string]transform.Bounds{"panel": l.Panel, "legend": l.Legend} {
			if b.Left < 0 || b.Bottom < 0 || b.Right > s.Width || b.Top > s.Height {
				t.Errorf("%vx%v: %s %+v outside surface", s.Width, s.Height, name, b)
			}
			if b.Width() < 0 || b.Height() <= 0 {
				t.Errorf("%vx%v: %s %+v is empty", s.Width, s.Height, name, b)
			}
		}
		if l.Panel.Right > l.Legend.Left {
			t.Errorf("%vx%v: panel overlaps legend", s.Width, s.Height)
		}
	}
}
