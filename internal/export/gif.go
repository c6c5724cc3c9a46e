package export

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"

	"github.com/san-kum/gravsim/internal/body"
)

const maxGIFFrames = 400

var gifPalette = color.Palette{
	color.Black,
	color.RGBA{0x00, 0xff, 0xff, 0xff}, // cyan
	color.RGBA{0xff, 0x00, 0xff, 0xff}, // magenta
	color.RGBA{0xff, 0xa5, 0x00, 0xff}, // orange
	color.RGBA{0x00, 0xff, 0x00, 0xff}, // lime
	color.RGBA{0xff, 0xff, 0x00, 0xff}, // yellow
	color.White,
}

// HistoryGIF renders the run history as an animated GIF, striding ticks so
// the animation stays below maxGIFFrames. Failure here is presentation-layer
// only: callers should warn and fall back to SVG export, never abort.
func HistoryGIF(path string, states []body.Bodies, size, fps int) error {
	if len(states) == 0 {
		return fmt.Errorf("no history to render")
	}
	if fps <= 0 {
		fps = 30
	}

	stride := 1
	if len(states) > maxGIFFrames {
		stride = (len(states) + maxGIFFrames - 1) / maxGIFFrames
	}

	minX, maxX, minY, maxY := svgBounds(states)
	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	anim := gif.GIF{LoopCount: 0}
	delay := 100 / fps
	if delay < 1 {
		delay = 1
	}

	for k := 0; k < len(states); k += stride {
		frame := image.NewPaletted(image.Rect(0, 0, size, size), gifPalette)

		// faint full trail up to this tick
		for h := 0; h <= k; h += stride {
			b := states[h]
			for i := 0; i < b.N(); i++ {
				x := int((b.Pos[i].X - minX) / rangeX * float64(size))
				y := size - 1 - int((b.Pos[i].Y-minY)/rangeY*float64(size))
				setPixel(frame, x, y, uint8(1+i%5))
			}
		}

		b := states[k]
		for i := 0; i < b.N(); i++ {
			x := int((b.Pos[i].X - minX) / rangeX * float64(size))
			y := size - 1 - int((b.Pos[i].Y-minY)/rangeY*float64(size))
			drawBlob(frame, x, y, 3, uint8(1+i%5))
		}

		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gif.EncodeAll(f, &anim)
}

func setPixel(img *image.Paletted, x, y int, idx uint8) {
	if x < 0 || y < 0 || x >= img.Rect.Dx() || y >= img.Rect.Dy() {
		return
	}
	img.SetColorIndex(x, y, idx)
}

func drawBlob(img *image.Paletted, x, y, radius int, idx uint8) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				setPixel(img, x+dx, y+dy, idx)
			}
		}
	}
}
