package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/sim"
)

// Store persists runs under baseDir, one directory per run holding
// metadata.json, bodies.csv and energy.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	G          float64            `json:"g"`
	Epsilon    float64            `json:"epsilon"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	Integrator string             `json:"integrator"`
	BodiesIn   int                `json:"bodies_in"`
	BodiesOut  int                `json:"bodies_out"`
	Merges     int                `json:"merges"`
	Metrics    map[string]float64 `json:"metrics"`
}

func (s *Store) Save(name, integrator string, cfg sim.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  time.Now(),
		G:          cfg.Params.G,
		Epsilon:    cfg.Params.Epsilon,
		Dt:         cfg.Dt,
		Steps:      result.StepsTaken,
		Integrator: integrator,
		BodiesIn:   result.States[0].N(),
		BodiesOut:  result.FinalBodies().N(),
		Merges:     result.Merges,
		Metrics:    result.Metrics,
	}

	if err := s.writeMetadata(runDir, meta); err != nil {
		return "", err
	}
	if err := s.writeBodies(runDir, result); err != nil {
		return "", err
	}
	if err := s.writeEnergies(runDir, result); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeMetadata(runDir string, meta RunMetadata) error {
	f, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// writeBodies emits one row per body per tick. The body count varies across
// ticks, so rows carry their tick index explicitly.
func (s *Store) writeBodies(runDir string, result *sim.Result) error {
	f, err := os.Create(filepath.Join(runDir, "bodies.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"step", "time", "body", "mass", "x", "y", "px", "py"}); err != nil {
		return err
	}

	for step, b := range result.States {
		t := result.Times[step]
		for i := 0; i < b.N(); i++ {
			row := []string{
				strconv.Itoa(step),
				strconv.FormatFloat(t, 'f', 6, 64),
				strconv.Itoa(i),
				strconv.FormatFloat(b.Mass[i], 'f', 6, 64),
				strconv.FormatFloat(b.Pos[i].X, 'f', 6, 64),
				strconv.FormatFloat(b.Pos[i].Y, 'f', 6, 64),
				strconv.FormatFloat(b.Mom[i].X, 'f', 6, 64),
				strconv.FormatFloat(b.Mom[i].Y, 'f', 6, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *Store) writeEnergies(runDir string, result *sim.Result) error {
	f, err := os.Create(filepath.Join(runDir, "energy.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"step", "time", "energy", "bodies"}); err != nil {
		return err
	}

	for step, e := range result.Energies {
		row := []string{
			strconv.Itoa(step),
			strconv.FormatFloat(result.Times[step], 'f', 6, 64),
			strconv.FormatFloat(e, 'f', 6, 64),
			strconv.Itoa(result.States[step].N()),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadHistory rebuilds the per-tick body sets from bodies.csv.
func (s *Store) LoadHistory(runID string) ([]body.Bodies, []float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "bodies.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []body.Bodies{}, []float64{}, nil
	}

	states := make([]body.Bodies, 0)
	times := make([]float64, 0)
	lastStep := -1

	for _, rec := range records[1:] {
		if len(rec) < 8 {
			continue
		}
		step, err := strconv.Atoi(rec[0])
		if err != nil {
			continue
		}

		vals := make([]float64, 7)
		ok := true
		for k := 1; k < 8; k++ {
			v, err := strconv.ParseFloat(rec[k], 64)
			if err != nil {
				ok = false
				break
			}
			vals[k-1] = v
		}
		if !ok {
			continue
		}

		if step != lastStep {
			states = append(states, body.New(4))
			times = append(times, vals[0])
			lastStep = step
		}
		b := &states[len(states)-1]
		b.Append(vals[2], body.Vec2{X: vals[3], Y: vals[4]}, body.Vec2{X: vals[5], Y: vals[6]})
	}

	return states, times, nil
}

// LoadEnergies reads the per-tick energy series from energy.csv.
func (s *Store) LoadEnergies(runID string) ([]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "energy.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	energies := make([]float64, 0, len(records))
	for i := 1; i < len(records); i++ {
		if len(records[i]) < 3 {
			continue
		}
		e, err := strconv.ParseFloat(records[i][2], 64)
		if err != nil {
			continue
		}
		energies = append(energies, e)
	}

	return energies, nil
}
