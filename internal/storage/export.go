package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/springsim/internal/dynamo"
)

type ExportData struct {
	RunMetadata
	Times      []float64 `json:"times"`
	Values     []float64 `json:"values"`
	Velocities []float64 `json:"velocities"`
	LoopIndex  []int     `json:"loop_index"`
}

// WriteSamplesCSV writes samples with full float precision.
func WriteSamplesCSV(w io.Writer, samples []dynamo.Sample) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(samplesHeader); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Frame),
			strconv.FormatFloat(s.Time, 'g', -1, 64),
			strconv.FormatFloat(s.Value, 'g', -1, 64),
			strconv.FormatFloat(s.Velocity, 'g', -1, 64),
			strconv.Itoa(s.Loop),
			strconv.FormatBool(s.Finished),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func ExportJSON(w io.Writer, meta RunMetadata, samples []dynamo.Sample) error {
	data := ExportData{
		RunMetadata: meta,
		Times:       make([]float64, len(samples)),
		Values:      make([]float64, len(samples)),
		Velocities:  make([]float64, len(samples)),
		LoopIndex:   make([]int, len(samples)),
	}
	for i, s := range samples {
		data.Times[i] = s.Time
		data.Values[i] = s.Value
		data.Velocities[i] = s.Velocity
		data.LoopIndex[i] = s.Loop
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
