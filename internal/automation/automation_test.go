package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tirelab/tiresim/internal/profile"
	"github.com/tirelab/tiresim/internal/storage"
)

const scenarioYAML = `name: regression
description: sweep plus two trace profiles
steps:
  - kind: sweep
    loads: [600, 1200]
    points: 50
  - kind: trace
    profile: ramp
    fz: 900
    profile_params:
      kappa_max: 0.15
      ramp_time: 1.5
  - kind: trace
    profile: sine
    duration: 2.0
    steps: 100
    profile_params:
      amplitude: 0.1
      frequency: 1.0
`

func TestLoadScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatal(err)
	}

	scenario, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if scenario.Name != "regression" {
		t.Errorf("name = %s", scenario.Name)
	}
	if len(scenario.Steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(scenario.Steps))
	}
	if scenario.Steps[1].ProfileParams["kappa_max"] != 0.15 {
		t.Errorf("profile params not parsed: %v", scenario.Steps[1].ProfileParams)
	}
}

func TestRunScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatal(err)
	}

	scenario, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	st := storage.New(filepath.Join(dir, "runs"))
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	outcomes, err := RunScenario(context.Background(), scenario, st, profile.NewRegistry())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].Kind != "sweep" || outcomes[1].Kind != "trace" {
		t.Errorf("unexpected outcome kinds: %+v", outcomes)
	}
	for _, o := range outcomes {
		if o.RunID == "" {
			t.Error("missing run id")
		}
	}
	if outcomes[1].Metrics["total_energy"] <= 0 {
		t.Error("trace step should dissipate energy")
	}
}

func TestRunScenario_UnknownKind(t *testing.T) {
	scenario := &Scenario{Steps: []ScenarioStep{{Kind: "wobble"}}}
	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := RunScenario(context.Background(), scenario, st, profile.NewRegistry()); err == nil {
		t.Error("expected error for unknown kind")
	}
}
