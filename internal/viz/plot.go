package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gravsim/internal/body"
)

// EnergyPlot renders the per-tick energy series as an ASCII chart.
func EnergyPlot(energies []float64, width, height int) string {
	if len(energies) < 2 {
		return ""
	}
	return asciigraph.Plot(energies,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("total energy vs time step"),
	)
}

// TrajectoryPlot draws every recorded body position onto a braille canvas.
// Merged bodies simply stop contributing points, matching the data.
func TrajectoryPlot(states []body.Bodies, width, height int) string {
	if len(states) == 0 {
		return ""
	}

	minX, maxX, minY, maxY := bounds(states)
	vp := NewViewport(minX, maxX, minY, maxY, width, height)
	canvas := NewCanvas(width, height)

	for _, b := range states {
		for i := 0; i < b.N(); i++ {
			canvas.Set(vp.Project(b.Pos[i].X, b.Pos[i].Y))
		}
	}

	final := states[len(states)-1]
	for i := 0; i < final.N(); i++ {
		x, y := vp.Project(final.Pos[i].X, final.Pos[i].Y)
		canvas.Dot(x, y, 1)
	}

	return canvas.String()
}

func bounds(states []body.Bodies) (minX, maxX, minY, maxY float64) {
	first := true
	for _, b := range states {
		for i := 0; i < b.N(); i++ {
			p := b.Pos[i]
			if first {
				minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
				first = false
				continue
			}
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}
	return
}
