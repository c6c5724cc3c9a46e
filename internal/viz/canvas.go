package viz

import "strings"

// Braille cells pack 2x4 sub-pixels per character. Bits per dot position,
// offset from U+2800:
//
//	1  8
//	2  10
//	4  20
//	40 80
var pixelMap = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set marks the sub-pixel at (x, y). The canvas is (Width*2) x (Height*4)
// sub-pixels; out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

// Dot marks a small blob around (x, y), used for body markers.
func (c *Canvas) Dot(x, y, radius int) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws with Bresenham's algorithm in sub-pixel coordinates.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps world coordinates onto the canvas sub-pixel grid, preserving
// aspect ratio and flipping Y so world-up renders up.
type Viewport struct {
	minX, minY float64
	scale      float64
	pxW, pxH   int
}

// NewViewport fits the world rectangle [minX,maxX]x[minY,maxY] into a canvas
// of w x h characters with a small margin.
func NewViewport(minX, maxX, minY, maxY float64, w, h int) *Viewport {
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX <= 0 {
		rangeX = 1
	}
	if rangeY <= 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.05
	minY -= rangeY * 0.05
	rangeX *= 1.1
	rangeY *= 1.1

	pxW, pxH := w*2, h*4
	scaleX := float64(pxW-1) / rangeX
	scaleY := float64(pxH-1) / rangeY
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}

	return &Viewport{minX: minX, minY: minY, scale: scale, pxW: pxW, pxH: pxH}
}

// Project converts a world point to sub-pixel coordinates.
func (v *Viewport) Project(x, y float64) (int, int) {
	px := int((x - v.minX) * v.scale)
	py := v.pxH - 1 - int((y-v.minY)*v.scale)
	return px, py
}
