package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synaptica-ai/vetpathogen/pkg/common/models"
)

func TestReadTablePreservesOrder(t *testing.T) {
	input := "\ufeffid,sequence,host\n1,ATGCGAT,canine\n2,ATTTCCC,feline\n3,ATTTAAA,bovine\n"

	table, err := ReadTable(strings.NewReader(input), ',')
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "sequence", "host"}, table.Columns)
	ids, err := table.Column("id")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, ids)
	assert.Equal(t, "bovine", table.Records[2].Fields["host"])
}

func TestReadTableRaggedRow(t *testing.T) {
	input := "id,sequence\n1,AT\n2\n"

	_, err := ReadTable(strings.NewReader(input), ',')
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 3, perr.Line)
	assert.True(t, errors.Is(err, models.ErrRowCountMismatch))
}

func TestReadTableEmpty(t *testing.T) {
	_, err := ReadTable(strings.NewReader(""), ',')
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestDelimiterFor(t *testing.T) {
	cases := []struct {
		path       string
		configured rune
		want       rune
	}{
		{"data/isolates.csv", 0, ','},
		{"data/isolates.TSV", 0, '\t'},
		{"data/isolates.tab", 0, '\t'},
		{"data/isolates.txt", 0, ','},
		{"data/isolates.csv", ';', ';'},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DelimiterFor(tc.path, tc.configured), tc.path)
	}
}

func TestParseDelimiter(t *testing.T) {
	for in, want := range map[string]rune{"": 0, "comma": ',', "TAB": '\t', `\t`: '\t', ";": ';', "|": '|'} {
		got, err := ParseDelimiter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"ab", `"`, "\n"} {
		_, err := ParseDelimiter(bad)
		assert.Error(t, err, bad)
	}
}

func TestWriteTableRoundTripWithTabs(t *testing.T) {
	table, err := models.NewTable([]string{"id", "sequence", "note"}, [][]string{{"1", "GCG", "has, comma"}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, table, '\t'))
	assert.Equal(t, "id\tsequence\tnote\n1\tGCG\thas, comma\n", buf.String())
}

func TestSaveTableReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0o644))

	table, err := models.NewTable([]string{"id", "sequence"}, [][]string{{"1", "ATG"}})
	require.NoError(t, err)
	require.NoError(t, SaveTable(path, table, 0))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,sequence\n1,ATG\n", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestSaveTableMissingDirectory(t *testing.T) {
	table, err := models.NewTable([]string{"id"}, nil)
	require.NoError(t, err)

	err = SaveTable(filepath.Join(t.TempDir(), "absent", "report.csv"), table, 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "nope.csv"), 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
