package table

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	t.Run("preserves column and row order", func(t *testing.T) {
		in := "APR_ID,Header,Notes\nAPR1,BAA78554|virus,first\nAPR2,P0A7B8,second\n"
		tbl, err := Read(strings.NewReader(in))
		require.NoError(t, err)

		assert.Equal(t, []string{"APR_ID", "Header", "Notes"}, tbl.Columns)
		require.Len(t, tbl.Rows, 2)
		assert.Equal(t, "APR1", tbl.Rows[0]["APR_ID"])
		assert.Equal(t, "BAA78554|virus", tbl.Rows[0]["Header"])
		assert.Equal(t, "APR2", tbl.Rows[1]["APR_ID"])
	})

	t.Run("pads short rows", func(t *testing.T) {
		in := "A,B,C\n1,2\n"
		tbl, err := Read(strings.NewReader(in))
		require.NoError(t, err)
		assert.Equal(t, "2", tbl.Rows[0]["B"])
		assert.Equal(t, "", tbl.Rows[0]["C"])
	})

	t.Run("empty input is an error", func(t *testing.T) {
		_, err := Read(strings.NewReader(""))
		assert.Error(t, err)
	})
}

func TestRequire(t *testing.T) {
	tbl := &Table{Columns: []string{"APR_ID", "Header"}}

	assert.NoError(t, tbl.Require("Header"))

	err := tbl.Require("UniProt_Accession")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"UniProt_Accession"`)
	assert.Contains(t, err.Error(), "APR_ID, Header")
}

func TestWriteRoundTrip(t *testing.T) {
	tbl := &Table{
		Columns: []string{"ID", "Status"},
		Rows: []Row{
			{"ID": "P0A7B8", "Status": "PDB Available"},
			{"ID": "Q9I6L1"}, // missing cell writes ""
		},
	}

	var buf bytes.Buffer
	require.NoError(t, tbl.Write(&buf))

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, tbl.Columns, got.Columns)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "PDB Available", got.Rows[0]["Status"])
	assert.Equal(t, "", got.Rows[1]["Status"])
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	tbl := &Table{
		Columns: []string{"A"},
		Rows:    []Row{{"A": "x"}, {"A": "y"}},
	}
	require.NoError(t, tbl.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, tbl.Rows, got.Rows)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
