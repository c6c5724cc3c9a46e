package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/gravsim/internal/body"
)

// BodyRecord is one body in one tick of the exported history.
type BodyRecord struct {
	Mass float64 `json:"mass"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Px   float64 `json:"px"`
	Py   float64 `json:"py"`
}

type RunData struct {
	G          float64        `json:"g"`
	Epsilon    float64        `json:"epsilon"`
	Dt         float64        `json:"dt"`
	Integrator string         `json:"integrator"`
	Steps      int            `json:"steps"`
	Times      []float64      `json:"times"`
	Energies   []float64      `json:"energies"`
	States     [][]BodyRecord `json:"states"`
}

func buildRunData(g, epsilon, dt float64, integrator string, states []body.Bodies, times, energies []float64) RunData {
	data := RunData{
		G:          g,
		Epsilon:    epsilon,
		Dt:         dt,
		Integrator: integrator,
		Steps:      len(times),
		Times:      times,
		Energies:   energies,
		States:     make([][]BodyRecord, len(states)),
	}

	for k, b := range states {
		records := make([]BodyRecord, b.N())
		for i := 0; i < b.N(); i++ {
			records[i] = BodyRecord{
				Mass: b.Mass[i],
				X:    b.Pos[i].X,
				Y:    b.Pos[i].Y,
				Px:   b.Mom[i].X,
				Py:   b.Mom[i].Y,
			}
		}
		data.States[k] = records
	}

	return data
}

// WriteJSON streams the run history as indented JSON.
func WriteJSON(w io.Writer, g, epsilon, dt float64, integrator string, states []body.Bodies, times, energies []float64) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildRunData(g, epsilon, dt, integrator, states, times, energies))
}

// ExportJSON writes the run history to a file.
func ExportJSON(path string, g, epsilon, dt float64, integrator string, states []body.Bodies, times, energies []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(f, g, epsilon, dt, integrator, states, times, energies)
}
