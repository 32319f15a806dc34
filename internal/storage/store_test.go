package storage

import (
	"math"
	"testing"

	"github.com/Rrrinav/webgl-fluid-sim/internal/sim"
	"github.com/Rrrinav/webgl-fluid-sim/internal/solver"
)

func testResult() *sim.Result {
	return &sim.Result{
		Times:       []float64{0.016, 0.032, 0.048},
		Energies:    []float64{10.0, 9.5, 9.1},
		Metrics:     map[string]float64{"energy": 9.1, "max_speed": 1.2},
		FramesTaken: 3,
	}
}

func testParams() solver.Params {
	return solver.Params{
		Dt:                 0.016,
		Viscosity:          1e-6,
		Iterations:         4,
		PressureIterations: 20,
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	runID, err := store.Save(128, testParams(), testResult())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if runID == "" {
		t.Fatal("Save returned an empty run ID")
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("ID = %q, want %q", meta.ID, runID)
	}
	if meta.GridSize != 128 {
		t.Errorf("GridSize = %d, want 128", meta.GridSize)
	}
	if meta.Frames != 3 {
		t.Errorf("Frames = %d, want 3", meta.Frames)
	}
	if meta.Metrics["max_speed"] != 1.2 {
		t.Errorf("Metrics[max_speed] = %g, want 1.2", meta.Metrics["max_speed"])
	}
}

func TestLoadSeries(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	result := testResult()
	runID, err := store.Save(64, testParams(), result)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	times, energies, err := store.LoadSeries(runID)
	if err != nil {
		t.Fatalf("LoadSeries: %v", err)
	}
	if len(times) != 3 || len(energies) != 3 {
		t.Fatalf("series lengths = %d/%d, want 3/3", len(times), len(energies))
	}
	for i := range times {
		if math.Abs(times[i]-result.Times[i]) > 1e-6 {
			t.Errorf("times[%d] = %g, want %g", i, times[i], result.Times[i])
		}
		if math.Abs(energies[i]-result.Energies[i]) > 1e-9 {
			t.Errorf("energies[%d] = %g, want %g", i, energies[i], result.Energies[i])
		}
	}
}

func TestList(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("fresh store listed %d runs", len(runs))
	}

	if _, err := store.Save(128, testParams(), testResult()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	runs, err = store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("List returned %d runs, want 1", len(runs))
	}
	if runs[0].GridSize != 128 {
		t.Errorf("GridSize = %d, want 128", runs[0].GridSize)
	}
}

func TestListMissingBaseDir(t *testing.T) {
	store := New(t.TempDir() + "/never-created")
	runs, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadUnknownRun(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Load("fluid_0"); err == nil {
		t.Error("expected error for unknown run")
	}
	if _, _, err := store.LoadSeries("fluid_0"); err == nil {
		t.Error("expected error for unknown run series")
	}
}
