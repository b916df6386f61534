// Package export renders stored runs to JSON and SVG.
package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/tirelab/tiresim/internal/storage"
)

type RunData struct {
	ID       string               `json:"id"`
	Kind     string               `json:"kind"`
	Mu       float64              `json:"mu"`
	Ck       float64              `json:"ck"`
	V        float64              `json:"v"`
	Fz       float64              `json:"fz,omitempty"`
	Loads    []float64            `json:"loads,omitempty"`
	Profile  string               `json:"profile,omitempty"`
	Samples  int                  `json:"samples"`
	Channels map[string][]float64 `json:"channels"`
	Metrics  map[string]float64   `json:"metrics,omitempty"`
}

// WriteJSON serializes a run's metadata and named sample channels.
func WriteJSON(w io.Writer, meta *storage.RunMetadata, header []string, columns [][]float64) error {
	data := RunData{
		ID:       meta.ID,
		Kind:     meta.Kind,
		Mu:       meta.Mu,
		Ck:       meta.Ck,
		V:        meta.V,
		Fz:       meta.Fz,
		Loads:    meta.Loads,
		Profile:  meta.Profile,
		Channels: make(map[string][]float64, len(header)),
		Metrics:  meta.Metrics,
	}
	if len(columns) > 0 {
		data.Samples = len(columns[0])
	}
	for i, name := range header {
		if i < len(columns) {
			data.Channels[name] = columns[i]
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteJSONFile is WriteJSON targeting a file path.
func WriteJSONFile(path string, meta *storage.RunMetadata, header []string, columns [][]float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, meta, header, columns)
}
