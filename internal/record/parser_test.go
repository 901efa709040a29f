package record

import (
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_JSONArray(t *testing.T) {
	recs, err := ReadAll(findTestFile(t, "trio_variants.json"))
	require.NoError(t, err)
	require.Len(t, recs, 3)

	first := recs[0]
	require.Len(t, first.SampleGeno, 3)
	assert.Equal(t, "self", first.SampleGeno[0].Role)
	assert.Equal(t, "0/1", first.SampleGeno[0].NumGT)
	assert.Equal(t, "12/10", first.SampleGeno[0].AD)
	assert.Equal(t, Chrom("1"), first.Variant.Chrom)
	require.NotNil(t, first.NovoPP)
	assert.InDelta(t, 0.5, *first.NovoPP, 1e-9)
	assert.Equal(t, "chr1:12345A>G", first.Title())

	// numeric CHROM and compound het annotations
	second := recs[1]
	assert.Equal(t, Chrom("2"), second.Variant.Chrom)
	assert.Nil(t, second.NovoPP)
	assert.Equal(t, -1.0, second.NovoPPOrDefault())
	require.Len(t, second.CmpHet, 2)
	assert.Equal(t, CmpHet{Phase: "Phased", Impact: "STRONG"}, second.CmpHet[0])
}

func TestParser_JSONLines(t *testing.T) {
	p, err := NewParser(findTestFile(t, "trio_variants.jsonl"))
	require.NoError(t, err)
	defer p.Close()

	count := 0
	for {
		rec, err := p.Next()
		require.NoError(t, err)
		if rec == nil {
			break
		}
		count++
	}
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, p.RecordNumber())

	// Further calls keep returning end of input.
	rec, err := p.Next()
	assert.NoError(t, err)
	assert.Nil(t, rec)
}

func TestParser_Gzip(t *testing.T) {
	raw, err := os.ReadFile(findTestFile(t, "trio_variants.json"))
	require.NoError(t, err)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err = zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "variants.json.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	recs, err := ReadAll(path)
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestParser_Empty(t *testing.T) {
	for _, in := range []string{"", "  \n", "[]", "[ ]\n"} {
		p, err := NewParserFromReader(strings.NewReader(in))
		require.NoError(t, err)
		rec, err := p.Next()
		assert.NoError(t, err, "input %q", in)
		assert.Nil(t, rec, "input %q", in)
	}
}

func TestParser_Malformed(t *testing.T) {
	p, err := NewParserFromReader(strings.NewReader(`[{"samplegeno": [}]`))
	require.NoError(t, err)

	_, err = p.Next()
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Record)

	// The error is sticky.
	_, err2 := p.Next()
	assert.Equal(t, err, err2)
}

func TestParser_NotJSON(t *testing.T) {
	p, err := NewParserFromReader(strings.NewReader("#CHROM\tPOS\n"))
	require.NoError(t, err)

	_, err = p.Next()
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, pe.Error(), "expected '[' or '{'")
}

func TestParser_MissingFile(t *testing.T) {
	_, err := NewParser(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Unwrap(err)))
}

func TestChrom_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Chrom
	}{
		{`"X"`, "X"},
		{`"chr12"`, "chr12"},
		{`12`, "12"},
		{`null`, ""},
	}
	for _, tt := range tests {
		var c Chrom
		require.NoError(t, c.UnmarshalJSON([]byte(tt.in)), tt.in)
		assert.Equal(t, tt.want, c)
	}

	var c Chrom
	assert.Error(t, c.UnmarshalJSON([]byte(`{"a":1}`)))
}

func TestRecord_Title(t *testing.T) {
	r := &Record{Variant: Variant{Chrom: "chr7", Pos: 100, Ref: "C", Alt: "T"}}
	assert.Equal(t, "7:100 C>T", r.Title())

	r = &Record{Variant: Variant{Chrom: "7"}}
	assert.Equal(t, "7", r.Title())
}

// findTestFile locates a test file in the testdata directory.
func findTestFile(t *testing.T, name string) string {
	t.Helper()

	paths := []string{
		filepath.Join("testdata", name),
		filepath.Join("..", "record", "testdata", name),
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	t.Fatalf("Test file not found: %s", name)
	return ""
}
