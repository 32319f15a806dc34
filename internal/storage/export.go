package storage

import (
	"encoding/json"
	"os"
)

type ExportData struct {
	ID                 string             `json:"id"`
	GridSize           int                `json:"grid_size"`
	Dt                 float64            `json:"dt"`
	Viscosity          float64            `json:"viscosity"`
	Iterations         int                `json:"iterations"`
	PressureIterations int                `json:"pressure_iterations"`
	Frames             int                `json:"frames"`
	Times              []float64          `json:"times"`
	Energies           []float64          `json:"energies"`
	Metrics            map[string]float64 `json:"metrics"`
}

func ExportJSONStdout(meta *RunMetadata, times, energies []float64) error {
	data := ExportData{
		ID:                 meta.ID,
		GridSize:           meta.GridSize,
		Dt:                 meta.Dt,
		Viscosity:          meta.Viscosity,
		Iterations:         meta.Iterations,
		PressureIterations: meta.PressureIterations,
		Frames:             meta.Frames,
		Times:              times,
		Energies:           energies,
		Metrics:            meta.Metrics,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
