package telemetry

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCombined(t *testing.T) {
	input := `car,timestamp,fraction
albon,0,0.0
albon,10,0.5
verstappen,0,0.0
verstappen,9,0.55
albon,20,1.0
`
	set, warnings, err := Load(strings.NewReader(input), "race.csv")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []CarID{"albon", "verstappen"}, set.Cars())

	albon := set.Samples("albon")
	require.Len(t, albon, 3)
	assert.Equal(t, 0.0, albon[0].Fraction)
	assert.Equal(t, 0.5, albon[1].Fraction)
	// finish-line fraction 1.0 wraps to 0.0
	assert.Equal(t, 0.0, albon[2].Fraction)
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	input := `albon,0,0.0
albon,notanumber,0.5
albon,-3,0.5
albon,10,badfrac
albon,10,0.5
`
	set, warnings, err := Load(strings.NewReader(input), "race.csv")
	require.NoError(t, err)
	require.Len(t, warnings, 3)
	for _, w := range warnings {
		assert.Equal(t, MalformedRecord, w.Kind)
	}
	assert.Len(t, set.Samples("albon"), 2)
}

func TestLoadExcludesCarWithoutSamples(t *testing.T) {
	input := `albon,0,0.0
stroll,bad,bad
albon,10,0.5
`
	set, warnings, err := Load(strings.NewReader(input), "race.csv")
	require.NoError(t, err)
	assert.Equal(t, []CarID{"albon"}, set.Cars())

	var excluded []Warning
	for _, w := range warnings {
		if w.Kind == CarExcluded {
			excluded = append(excluded, w)
		}
	}
	require.Len(t, excluded, 1)
	assert.Equal(t, CarID("stroll"), excluded[0].Car)
}

func TestLoadEmptySource(t *testing.T) {
	_, _, err := Load(strings.NewReader(""), "race.csv")
	assert.True(t, errors.Is(err, ErrEmptySource))

	_, _, err = Load(strings.NewReader("car,timestamp,fraction\n"), "race.csv")
	assert.True(t, errors.Is(err, ErrEmptySource))
}

func TestLoadSortsByTimestamp(t *testing.T) {
	input := `albon,20,0.9
albon,0,0.0
albon,10,0.5
`
	set, _, err := Load(strings.NewReader(input), "race.csv")
	require.NoError(t, err)

	samples := set.Samples("albon")
	require.Len(t, samples, 3)
	for i := 1; i < len(samples); i++ {
		assert.LessOrEqual(t, samples[i-1].Timestamp, samples[i].Timestamp)
	}
}

func TestLoadDuplicateTimestampLastWins(t *testing.T) {
	input := `albon,0,0.0
albon,10,0.4
albon,10,0.5
albon,20,0.9
`
	set, _, err := Load(strings.NewReader(input), "race.csv")
	require.NoError(t, err)

	samples := set.Samples("albon")
	require.Len(t, samples, 3)
	assert.Equal(t, 0.5, samples[1].Fraction)
}

func TestLoadFractionReduction(t *testing.T) {
	input := `albon,0,1.25
albon,10,-0.25
`
	set, _, err := Load(strings.NewReader(input), "race.csv")
	require.NoError(t, err)

	samples := set.Samples("albon")
	require.Len(t, samples, 2)
	assert.InDelta(t, 0.25, samples[0].Fraction, 1e-12)
	assert.InDelta(t, 0.75, samples[1].Fraction, 1e-12)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
	}
	write("albon.csv", "timestamp,fraction\n0,0.0\n10,0.5\n")
	write("norris.csv", "0,0.0\n9,0.6\n")
	write("notes.txt", "not telemetry")

	set, warnings, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []CarID{"albon", "norris"}, set.Cars())
	assert.Len(t, set.Samples("albon"), 2)
	assert.Len(t, set.Samples("norris"), 2)
}

func TestLoadDirEmpty(t *testing.T) {
	_, _, err := LoadDir(t.TempDir())
	assert.True(t, errors.Is(err, ErrEmptySource))
}
