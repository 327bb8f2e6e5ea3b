// Package testutil holds test fixtures shared by sim/ and sim/sweep/:
// the hand-traced belt scenarios under testdata/ and a float comparison helper.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// GoldenDataset mirrors testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is a fixed entry sequence with its hand-traced exit counts.
type GoldenTestCase struct {
	Name        string         `json:"name"`
	BeltLength  int            `json:"belt_length"`
	Steps       int            `json:"steps"`
	Arbitration string         `json:"arbitration"`
	Sequence    []string       `json:"sequence"`
	Expected    map[string]int `json:"expected"` // content label → exit count, EMPTY omitted
}

// goldenPath locates testdata/ at the repo root from this file's directory,
// so the loader works from any package's working directory.
func goldenPath(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok, "locating testutil source file")
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "testdata", "goldendataset.json")
}

// LoadGoldenDataset reads the hand-traced belt scenarios.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()
	data, err := os.ReadFile(goldenPath(t))
	require.NoError(t, err, "reading golden dataset")

	var dataset GoldenDataset
	require.NoError(t, json.Unmarshal(data, &dataset), "parsing golden dataset")
	for i, tc := range dataset.Tests {
		require.NotEmpty(t, tc.Name, "golden case %d has no name", i)
	}
	return &dataset
}

// AssertFloat64Equal fails t when got differs from want by more than relTol
// relative to the larger magnitude. Exact zeros always match.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	scale := math.Max(math.Abs(want), math.Abs(got))
	if scale == 0 {
		return
	}
	if rel := math.Abs(want-got) / scale; rel > relTol {
		t.Errorf("%s: got %v, want %v (relDiff=%v)", name, got, want, rel)
	}
}
