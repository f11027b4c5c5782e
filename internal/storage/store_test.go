package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/springsim/internal/dynamo"
)

func sampleResult() *dynamo.Result {
	return &dynamo.Result{
		Samples: []dynamo.Sample{
			{Frame: 0, Time: 0, Value: 0, Velocity: 0, Loop: 1},
			{Frame: 1, Time: 1.0 / 60, Value: 0.123456789012345, Velocity: 7.25, Loop: 1},
			{Frame: 2, Time: 2.0 / 60, Value: 1, Velocity: 0, Loop: 1, Finished: true},
		},
		Finished: true,
		Loops:    1,
		Frames:   3,
		Metrics: map[string]float64{
			"settle_time": 2.0 / 60,
		},
	}
}

func sampleInfo() RunInfo {
	return RunInfo{
		Name:       "rk4/snappy",
		Model:      "rk4",
		FPS:        60,
		Duration:   10,
		Iterations: 1,
		Params:     map[string]float64{"tension": 230, "friction": 22},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(sampleInfo(), sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "rk4_") {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Model != "rk4" || meta.Name != "rk4/snappy" {
		t.Errorf("unexpected metadata %+v", meta.RunInfo)
	}
	if !meta.Finished || meta.Frames != 3 || meta.Loops != 1 {
		t.Errorf("unexpected run summary %+v", meta)
	}
	if meta.Params["tension"] != 230 {
		t.Errorf("expected tension 230, got %f", meta.Params["tension"])
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	want := sampleResult().Samples
	if len(samples) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(samples))
	}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("sample %d: expected %+v, got %+v", i, want[i], samples[i])
		}
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list of missing dir failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(tmpDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	first, err := st.Save(sampleInfo(), sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save(sampleInfo(), sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != first || runs[1].ID != second {
		t.Errorf("expected oldest first, got %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(sampleInfo(), sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "samples.csv"} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestExportJSON(t *testing.T) {
	res := sampleResult()
	meta := RunMetadata{RunInfo: sampleInfo(), ID: "rk4_1", Frames: res.Frames}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, res.Samples); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var decoded ExportData
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded.ID != "rk4_1" || decoded.Model != "rk4" {
		t.Errorf("metadata lost: %+v", decoded.RunMetadata)
	}
	if len(decoded.Values) != 3 || decoded.Values[2] != 1 {
		t.Errorf("unexpected values %v", decoded.Values)
	}
}

func TestWriteSVG(t *testing.T) {
	res := sampleResult()

	var buf bytes.Buffer
	if err := WriteSVG(&buf, ValuePoints(res.Samples), 400, 200, "#00ff00"); err != nil {
		t.Fatalf("svg failed: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, `stroke="#00ff00"`) {
		t.Errorf("unexpected svg header: %q", out[:80])
	}
	if got := strings.Count(out, " L"); got != len(res.Samples)-1 {
		t.Errorf("expected %d segments, got %d", len(res.Samples)-1, got)
	}

	if err := WriteSVG(&buf, PhasePoints(res.Samples[:1]), 400, 200, "#fff"); err == nil {
		t.Error("expected error for a single point")
	}
}
