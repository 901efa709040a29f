package mapping

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name string) *Table {
	t.Helper()
	tbl, err := Load(filepath.Join("testdata", name), DefaultLoadOptions())
	require.NoError(t, err)
	return tbl
}

func TestLoad(t *testing.T) {
	tbl := loadFixture(t, "mapping_old.tsv")

	assert.Equal(t, []string{"field_type", "description", "scope"}, tbl.Columns)
	assert.Equal(t, []string{"CHROM", "POS", "AF", "gene"}, tbl.Keys)

	row, ok := tbl.Row("AF")
	require.True(t, ok)
	assert.Equal(t, []string{"number", "Allele frequency", "variant"}, row)

	v, ok := tbl.Value("gene", "scope")
	require.True(t, ok)
	assert.Equal(t, "gene", v)

	_, ok = tbl.Value("gene", "no")
	assert.False(t, ok)
}

func TestLoad_ShortRowPadded(t *testing.T) {
	tbl := loadFixture(t, "mapping_new.tsv")

	v, ok := tbl.Value("novoPP", "scope")
	require.True(t, ok)
	assert.Equal(t, "", v)
}

func TestLoadReader_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  LoadOptions
		line  int
	}{
		{"no header", "a\nb\n", LoadOptions{SkipLines: 5, KeyColumn: "field_name"}, 2},
		{"no key column", "x\ty\n1\t2\n", LoadOptions{KeyColumn: "field_name"}, 1},
		{"duplicate key", "field_name\tv\na\t1\na\t2\n", LoadOptions{KeyColumn: "field_name"}, 3},
		{"too many fields", "field_name\tv\na\t1\t2\n", LoadOptions{KeyColumn: "field_name"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadReader(strings.NewReader(tt.input), tt.opts)
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "got %v", err)
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

func TestCompare(t *testing.T) {
	d := Compare(loadFixture(t, "mapping_old.tsv"), loadFixture(t, "mapping_new.tsv"))

	assert.Equal(t, []string{"gene"}, d.OnlyOld)
	assert.Equal(t, []string{"novoPP"}, d.OnlyNew)
	assert.Equal(t, []Mismatch{
		{Key: "POS", Columns: []string{"description"}},
		{Key: "AF", Columns: []string{"field_type", "scope"}},
	}, d.Mismatches)
	assert.Equal(t, 1, d.Matches)
	assert.Equal(t, 5, d.Total())
	assert.Equal(t, map[Category]int{
		CatMatch:    1,
		CatMismatch: 2,
		CatOnlyOld:  1,
		CatOnlyNew:  1,
	}, d.Counts())
}

func TestCompare_ColumnOnlyOnOneSide(t *testing.T) {
	opts := LoadOptions{KeyColumn: "field_name"}
	before, err := LoadReader(strings.NewReader("field_name\ta\nk\t1\n"), opts)
	require.NoError(t, err)
	after, err := LoadReader(strings.NewReader("field_name\ta\tb\nk\t1\t\n"), opts)
	require.NoError(t, err)

	d := Compare(before, after)
	assert.Equal(t, []Mismatch{{Key: "k", Columns: []string{"b"}}}, d.Mismatches)
}
