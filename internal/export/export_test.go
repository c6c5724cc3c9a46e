package export

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/gravsim/internal/body"
)

func twoTickHistory() ([]body.Bodies, []float64, []float64) {
	b0 := body.New(2)
	b0.Append(1, body.Vec2{X: -0.5, Y: 0}, body.Vec2{X: 0, Y: -0.7})
	b0.Append(1, body.Vec2{X: 0.5, Y: 0}, body.Vec2{X: 0, Y: 0.7})

	b1 := body.New(1)
	b1.Append(2, body.Vec2{X: 0, Y: 0}, body.Vec2{})

	return []body.Bodies{b0, b1}, []float64{0, 0.01}, []float64{-0.5, -0.3}
}

func TestWriteJSON(t *testing.T) {
	states, times, energies := twoTickHistory()

	var buf bytes.Buffer
	if err := WriteJSON(&buf, 1, 0.001, 0.01, "leapfrog", states, times, energies); err != nil {
		t.Fatal(err)
	}

	var data RunData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatal(err)
	}

	if data.G != 1 || data.Integrator != "leapfrog" {
		t.Errorf("header round trip: g=%v integrator=%q", data.G, data.Integrator)
	}
	if data.Steps != 2 || len(data.States) != 2 {
		t.Fatalf("steps=%d states=%d, want 2 and 2", data.Steps, len(data.States))
	}
	if len(data.States[0]) != 2 || len(data.States[1]) != 1 {
		t.Errorf("per-tick body counts = %d, %d; want 2, 1", len(data.States[0]), len(data.States[1]))
	}
	if data.States[1][0].Mass != 2 {
		t.Errorf("merged mass = %v, want 2", data.States[1][0].Mass)
	}
}

func TestExportJSONWritesFile(t *testing.T) {
	states, times, energies := twoTickHistory()
	path := filepath.Join(t.TempDir(), "run.json")

	if err := ExportJSON(path, 1, 0.001, 0.01, "leapfrog", states, times, energies); err != nil {
		t.Fatal(err)
	}
}

func TestTrajectoriesToSVG(t *testing.T) {
	states, _, _ := twoTickHistory()
	svg := TrajectoriesToSVG(states, 400, 300)

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML header")
	}
	if !strings.Contains(svg, "<path") {
		t.Error("no trajectory polylines")
	}
	// final state has one body, so one marker circle
	if n := strings.Count(svg, "<circle"); n != 1 {
		t.Errorf("marker circles = %d, want 1", n)
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("unterminated document")
	}
}

func TestTrajectoriesToSVGEmpty(t *testing.T) {
	if svg := TrajectoriesToSVG(nil, 400, 300); svg != "" {
		t.Errorf("empty history should render nothing, got %d bytes", len(svg))
	}
}

func TestEnergyToSVG(t *testing.T) {
	svg := EnergyToSVG([]float64{-0.5, -0.52, -0.49, -0.5}, 400, 200)
	if !strings.Contains(svg, "<path") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("malformed energy plot")
	}

	if EnergyToSVG([]float64{-0.5}, 400, 200) != "" {
		t.Error("single sample should render nothing")
	}
}

func TestHistoryGIF(t *testing.T) {
	states, _, _ := twoTickHistory()
	path := filepath.Join(t.TempDir(), "run.gif")

	if err := HistoryGIF(path, states, 120, 20); err != nil {
		t.Fatal(err)
	}
}
