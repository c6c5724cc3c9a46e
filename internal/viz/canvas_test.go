package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetPacksBrailleBits(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("cell = %#x, want 0x2801", c.Grid[0][0])
	}

	c.Set(1, 3)
	if c.Grid[0][0] != 0x2881 {
		t.Errorf("cell = %#x, want 0x2881", c.Grid[0][0])
	}

	// second character cell
	c.Set(2, 0)
	if c.Grid[0][1] != 0x2801 {
		t.Errorf("cell = %#x, want 0x2801", c.Grid[0][1])
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(0, -5)
	c.Set(4, 0)
	c.Set(0, 8)

	for _, row := range c.Grid {
		for _, cell := range row {
			if cell != 0x2800 {
				t.Fatalf("out-of-range Set modified the grid: %#x", cell)
			}
		}
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(3, 3)
	c.Dot(3, 5, 1)
	c.Clear()

	if strings.ContainsFunc(c.String(), func(r rune) bool {
		return r != 0x2800 && r != '\n'
	}) {
		t.Error("clear left marked cells")
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawLine(0, 0, 19, 39)

	if c.Grid[0][0]&0x01 == 0 {
		t.Error("line start not set")
	}
	if c.Grid[9][9]&0x80 == 0 {
		t.Error("line end not set")
	}
}

func TestViewportProjectFlipsY(t *testing.T) {
	v := NewViewport(-1, 1, -1, 1, 10, 10)

	_, yLow := v.Project(0, -1)
	_, yHigh := v.Project(0, 1)
	if yHigh >= yLow {
		t.Errorf("world-up should render up: y(+1)=%d, y(-1)=%d", yHigh, yLow)
	}
}

func TestViewportPreservesAspect(t *testing.T) {
	// wide world in a square canvas: both axes share one scale
	v := NewViewport(0, 10, 0, 1, 20, 20)

	x0, _ := v.Project(0, 0)
	x1, _ := v.Project(1, 0)
	_, y0 := v.Project(0, 0)
	_, y1 := v.Project(0, 1)

	dx := x1 - x0
	dy := y0 - y1
	if absInt(dx-dy) > 1 {
		t.Errorf("unit steps differ beyond truncation: dx=%d dy=%d", dx, dy)
	}
}
