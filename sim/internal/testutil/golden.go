// Package testutil provides shared test infrastructure for the board
// simulation: a recording client actor, run helpers and the golden
// timelines of the example scenarios.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenTimelines represents the structure of testdata/golden_timelines.json.
type GoldenTimelines struct {
	Scenarios []GoldenScenario `json:"scenarios"`
}

// GoldenScenario is the expected result of running one example scenario.
type GoldenScenario struct {
	File        string          `json:"file"`
	FinalClock  int64           `json:"final_clock"`
	StoppedAt   int64           `json:"stopped_at"`
	Stored      int             `json:"stored"`
	Banned      []string        `json:"banned"`
	Outcomes    []GoldenOutcome `json:"outcomes"`
	DeadLetters int             `json:"dead_letters"`
}

// GoldenOutcome is the expected result of one session.
type GoldenOutcome struct {
	Client          string `json:"client"`
	CommunicationID int64  `json:"communication_id"`
	Status          string `json:"status"`
	Reply           string `json:"reply"`
	Tick            int64  `json:"tick"`
	Found           int    `json:"found"`
}

// LoadGoldenTimelines loads the golden timelines from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenTimelines(t *testing.T) *GoldenTimelines {
	t.Helper()

	path := filepath.Join(RepoRoot(t), "testdata", "golden_timelines.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden timelines: %v", err)
	}

	var golden GoldenTimelines
	if err := json.Unmarshal(data, &golden); err != nil {
		t.Fatalf("Failed to parse golden timelines: %v", err)
	}
	return &golden
}

// RepoRoot returns the module root directory.
func RepoRoot(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..")
}
