package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/gravsim/internal/body"
)

// bodyColors cycles per body index in trajectory renderings.
var bodyColors = []string{"#00ffff", "#ff00ff", "#ffa500", "#00ff00", "#ffff00"}

// TrajectoriesToSVG renders one polyline per body index over the history.
// Indices shift after a merge, so a trail simply ends when its index vanishes;
// the survivors' trails continue under their new indices.
func TrajectoriesToSVG(states []body.Bodies, width, height int) string {
	if len(states) == 0 {
		return ""
	}

	maxN := 0
	minX, maxX, minY, maxY := svgBounds(states)
	for _, b := range states {
		if b.N() > maxN {
			maxN = b.N()
		}
	}

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

	project := func(p body.Vec2) (float64, float64) {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		return x, y
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i := 0; i < maxN; i++ {
		color := bodyColors[i%len(bodyColors)]
		first := true
		var path strings.Builder
		for _, b := range states {
			if i >= b.N() {
				continue
			}
			x, y := project(b.Pos[i])
			if first {
				path.WriteString(fmt.Sprintf("M%.1f %.1f", x, y))
				first = false
			} else {
				path.WriteString(fmt.Sprintf(" L%.1f %.1f", x, y))
			}
		}
		if first {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" opacity="0.7" d="%s"/>
`, color, path.String()))
	}

	final := states[len(states)-1]
	for i := 0; i < final.N(); i++ {
		x, y := project(final.Pos[i])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>
`, x, y, bodyColors[i%len(bodyColors)]))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// EnergyToSVG renders the energy series as a single polyline.
func EnergyToSVG(energies []float64, width, height int) string {
	if len(energies) < 2 {
		return ""
	}

	minE, maxE := energies[0], energies[0]
	for _, e := range energies {
		if e < minE {
			minE = e
		}
		if e > maxE {
			maxE = e
		}
	}
	rangeE := maxE - minE
	if rangeE == 0 {
		rangeE = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="#ffffff" stroke-width="1.5" d="M`, width, height, width, height))

	for i, e := range energies {
		x := float64(i) / float64(len(energies)-1) * float64(width)
		y := float64(height) - (e-minE)/rangeE*float64(height)*0.9 - float64(height)*0.05
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f %.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f %.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func svgBounds(states []body.Bodies) (minX, maxX, minY, maxY float64) {
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
