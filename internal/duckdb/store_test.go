package duckdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/inhmode/internal/genotype"
	"github.com/inodb/inhmode/internal/inheritance"
	"github.com/inodb/inhmode/internal/record"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func trioRecord(chrom string, pos int64, mother, father, self string, novoPP *float64) *record.Record {
	return &record.Record{
		SampleGeno: []record.SampleGeno{
			{Role: "self", NumGT: self, Sex: "female"},
			{Role: "mother", NumGT: mother, Sex: "female"},
			{Role: "father", NumGT: father, Sex: "male"},
		},
		Variant: record.Variant{Chrom: record.Chrom(chrom), Pos: pos, Ref: "A", Alt: "G"},
		NovoPP:  novoPP,
	}
}

func classified(t *testing.T, seq int, rec *record.Record) Entry {
	t.Helper()
	res, err := inheritance.Classify(rec)
	require.NoError(t, err)
	return Entry{Seq: seq, Record: rec, Result: res}
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
	assert.Empty(t, s.Path())
}

func TestOpen_OnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "results.duckdb")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, path, s.Path())
}

func TestBeginRun(t *testing.T) {
	s := openInMemory(t)

	input := filepath.Join(t.TempDir(), "variants.json")
	require.NoError(t, os.WriteFile(input, []byte("[]"), 0o644))

	first, err := s.BeginRun(input)
	require.NoError(t, err)
	assert.Equal(t, 1, first.No)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, int64(2), first.Input.Size)
	assert.False(t, first.Input.ModTime.IsZero())

	second, err := s.BeginRun("-")
	require.NoError(t, err)
	assert.Equal(t, 2, second.No)
	assert.NotEqual(t, first.ID, second.ID)

	second.Records, second.Failed = 10, 1
	require.NoError(t, s.FinishRun(second))

	runs, err := s.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, 10, runs[0].Records)
	assert.Equal(t, 1, runs[0].Failed)
	assert.Equal(t, "-", runs[0].Input.Path)
	assert.True(t, runs[0].Input.ModTime.IsZero())
	assert.Equal(t, RunComplete, runs[0].Status)
	assert.Equal(t, RunRunning, runs[1].Status, "unfinished run")

	latest, err := s.LatestRun()
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
}

func TestFinishRun_Aborted(t *testing.T) {
	s := openInMemory(t)
	run, err := s.BeginRun("-")
	require.NoError(t, err)
	assert.Equal(t, RunRunning, run.Status)

	run.Records, run.Failed, run.Status = 2, 1, RunAborted
	require.NoError(t, s.FinishRun(run))

	latest, err := s.LatestRun()
	require.NoError(t, err)
	assert.Equal(t, RunAborted, latest.Status)
	assert.Equal(t, 2, latest.Records)
	assert.Equal(t, 1, latest.Failed)
}

func TestLatestRun_Empty(t *testing.T) {
	s := openInMemory(t)
	run, err := s.LatestRun()
	require.NoError(t, err)
	assert.Nil(t, run)

	results, err := s.SearchByMode("", inheritance.ModeRecessive)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestWriteAndLookup(t *testing.T) {
	s := openInMemory(t)
	run, err := s.BeginRun("-")
	require.NoError(t, err)

	pp := 0.95
	entries := []Entry{
		classified(t, 0, trioRecord("1", 100, "0/1", "0/1", "1/1", nil)),
		classified(t, 1, trioRecord("2", 200, "0/0", "0/0", "0/1", &pp)),
	}
	require.NoError(t, s.WriteResults(run, entries))

	results, err := s.LookupVariant("1:100 A>G")
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, run.ID, r.RunID)
	assert.Equal(t, 0, r.Seq)
	assert.Equal(t, "1", r.Chrom)
	assert.Equal(t, int64(100), r.Pos)
	assert.Nil(t, r.NovoPP)
	assert.Equal(t, []inheritance.Mode{inheritance.ModeRecessive}, r.Modes)
	assert.Equal(t, genotype.LabelHomAlt, r.Labels[inheritance.RoleSelf])
	assert.Equal(t, genotype.LabelHet, r.Labels[inheritance.RoleMother])
	assert.Equal(t, "0/1", r.Genotypes[inheritance.RoleFather])

	results, err = s.LookupVariant("2:200 A>G")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NotNil(t, results[0].NovoPP)
	assert.InDelta(t, 0.95, *results[0].NovoPP, 1e-9)
	assert.Equal(t, []inheritance.Mode{inheritance.ModeDeNovoStrong}, results[0].Modes)

	results, err = s.LookupVariant("3:300 A>G")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestLookupVariant_LatestRun(t *testing.T) {
	s := openInMemory(t)

	old, err := s.BeginRun("-")
	require.NoError(t, err)
	require.NoError(t, s.WriteResults(old, []Entry{
		classified(t, 0, trioRecord("1", 100, "0/0", "0/1", "0/1", nil)),
	}))

	cur, err := s.BeginRun("-")
	require.NoError(t, err)
	require.NoError(t, s.WriteResults(cur, []Entry{
		classified(t, 0, trioRecord("1", 100, "0/1", "0/1", "1/1", nil)),
	}))

	results, err := s.LookupVariant("1:100 A>G")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, cur.ID, results[0].RunID)
	assert.Equal(t, []inheritance.Mode{inheritance.ModeRecessive}, results[0].Modes)
}

func TestSearchByMode(t *testing.T) {
	s := openInMemory(t)

	first, err := s.BeginRun("-")
	require.NoError(t, err)
	require.NoError(t, s.WriteResults(first, []Entry{
		classified(t, 0, trioRecord("1", 100, "0/1", "0/1", "1/1", nil)),
	}))

	run, err := s.BeginRun("-")
	require.NoError(t, err)
	require.NoError(t, s.WriteResults(run, []Entry{
		classified(t, 0, trioRecord("1", 100, "0/1", "0/1", "1/1", nil)),
		classified(t, 1, trioRecord("1", 150, "0/0", "0/1", "0/1", nil)),
		classified(t, 2, trioRecord("1", 200, "0/1", "0/1", "1/1", nil)),
	}))

	results, err := s.SearchByMode("", inheritance.ModeRecessive)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(100), results[0].Pos)
	assert.Equal(t, int64(200), results[1].Pos)

	results, err = s.SearchByMode(first.ID, inheritance.ModeRecessive)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = s.SearchByMode(run.ID, inheritance.ModeDominantPaternal)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Seq)
}

func TestClearResults(t *testing.T) {
	s := openInMemory(t)
	run, err := s.BeginRun("-")
	require.NoError(t, err)
	require.NoError(t, s.WriteResults(run, []Entry{
		classified(t, 0, trioRecord("1", 100, "0/1", "0/1", "1/1", nil)),
	}))

	require.NoError(t, s.ClearResults())

	runs, err := s.Runs()
	require.NoError(t, err)
	assert.Empty(t, runs)
	results, err := s.LookupVariant("1:100 A>G")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRunWriter(t *testing.T) {
	s := openInMemory(t)
	run, err := s.BeginRun("-")
	require.NoError(t, err)

	w := NewRunWriter(s, run)
	require.NoError(t, w.WriteHeader())
	for i := range 3 {
		rec := trioRecord("1", int64(100+i), "0/1", "0/1", "1/1", nil)
		res, err := inheritance.Classify(rec)
		require.NoError(t, err)
		require.NoError(t, w.Write(rec, res))
	}

	results, err := s.SearchByMode(run.ID, inheritance.ModeRecessive)
	require.NoError(t, err)
	assert.Empty(t, results, "nothing written before flush")

	require.NoError(t, w.Flush())
	results, err = s.SearchByMode(run.ID, inheritance.ModeRecessive)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 2, results[2].Seq)
}
