// Package storage persists experiment runs as a metadata.json plus a
// samples.csv per run directory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/tirelab/tiresim/internal/experiment"
)

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
	ID        string             `json:"id"`
	Kind      string             `json:"kind"` // "sweep" or "trace"
	Timestamp time.Time          `json:"timestamp"`
	Mu        float64            `json:"mu"`
	Ck        float64            `json:"ck"`
	V         float64            `json:"v"`
	Fz        float64            `json:"fz,omitempty"`
	Loads     []float64          `json:"loads,omitempty"`
	Profile   string             `json:"profile,omitempty"`
	Duration  float64            `json:"duration,omitempty"`
	Steps     int                `json:"steps,omitempty"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// SaveTrace writes a time-domain run. Columns: time, kappa, fx, pdiss, ediss.
func (s *Store) SaveTrace(cfg experiment.TraceConfig, result *experiment.TraceResult) (string, error) {
	meta := RunMetadata{
		Kind:      "trace",
		Timestamp: time.Now(),
		Mu:        cfg.Params.Mu,
		Ck:        cfg.Params.Ck,
		V:         cfg.V,
		Fz:        cfg.Fz,
		Duration:  cfg.Duration,
		Steps:     cfg.Steps,
		Metrics:   result.Metrics,
	}
	if cfg.Profile != nil {
		meta.Profile = cfg.Profile.Name()
	}

	header := []string{"time", "kappa", "fx", "pdiss", "ediss"}
	columns := [][]float64{result.Times, result.Kappa, result.Fx, result.Pdiss, result.Ediss}

	return s.save("trace", meta, header, columns)
}

// SaveSweep writes a slip sweep. Columns: kappa, then fx_<Fz> and pdiss_<Fz>
// per load.
func (s *Store) SaveSweep(cfg experiment.SweepConfig, result *experiment.SweepResult) (string, error) {
	meta := RunMetadata{
		Kind:      "sweep",
		Timestamp: time.Now(),
		Mu:        cfg.Params.Mu,
		Ck:        cfg.Params.Ck,
		V:         cfg.V,
		Loads:     cfg.Loads,
	}

	header := []string{"kappa"}
	columns := [][]float64{result.Kappa}
	for _, curve := range result.Curves {
		label := strconv.FormatFloat(curve.Fz, 'f', -1, 64)
		header = append(header, "fx_"+label, "pdiss_"+label)
		columns = append(columns, curve.Fx, curve.Pdiss)
	}

	return s.save("sweep", meta, header, columns)
}

func (s *Store) save(kind string, meta RunMetadata, header []string, columns [][]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", kind, time.Now().UnixNano())
	meta.ID = runID

	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(header); err != nil {
		return "", err
	}

	if len(columns) == 0 {
		return runID, nil
	}
	rows := len(columns[0])
	row := make([]string, len(columns))
	for i := 0; i < rows; i++ {
		for j, col := range columns {
			row[j] = strconv.FormatFloat(col[i], 'f', 6, 64)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
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

// LoadSamples reads a run's CSV back as named columns, aligned with the
// returned header.
func (s *Store) LoadSamples(runID string) ([]string, [][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) == 0 {
		return []string{}, [][]float64{}, nil
	}

	header := records[0]
	columns := make([][]float64, len(header))
	for i := range columns {
		columns[i] = make([]float64, 0, len(records)-1)
	}

	for _, record := range records[1:] {
		for j := range header {
			if j >= len(record) {
				continue
			}
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			columns[j] = append(columns[j], val)
		}
	}

	return header, columns, nil
}
