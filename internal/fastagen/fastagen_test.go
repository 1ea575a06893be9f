package fastagen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cbmtools/internal/table"
)

var opts = Options{
	IDColumn:       "UniProt_Accession",
	FamilyColumn:   "CBM_Family",
	SequenceColumn: "Amino_Acid_Sequence",
}

func row(id, family, seq string) table.Row {
	return table.Row{
		"UniProt_Accession":   id,
		"CBM_Family":          family,
		"Amino_Acid_Sequence": seq,
	}
}

func newTable(rows ...table.Row) *table.Table {
	return &table.Table{
		Columns: []string{"UniProt_Accession", "CBM_Family", "Amino_Acid_Sequence"},
		Rows:    rows,
	}
}

func TestCleanSequence(t *testing.T) {
	assert.Equal(t, "ABCXYZ", CleanSequence("abc123XYZ"))
	assert.Equal(t, "MKQST", CleanSequence("MKQST"), "idempotent on clean input")
	assert.Equal(t, CleanSequence(CleanSequence("mk-qst 7")), CleanSequence("mk-qst 7"))
	assert.Equal(t, "", CleanSequence("123 456*"))
	assert.Equal(t, "MKQST", CleanSequence("  mkq st\n"))
}

func TestGenerate(t *testing.T) {
	t.Run("emits a header/sequence pair per valid row", func(t *testing.T) {
		tbl := newTable(
			row("P54583", "CBM2", "mkqst"),
			row("Q60029", "CBM64", "ACDEF"),
		)

		text, sum, err := Generate(tbl, opts)
		require.NoError(t, err)

		assert.Equal(t, ">P54583_CBM2\nMKQST\n>Q60029_CBM64\nACDEF", text)
		assert.Equal(t, 2, sum.Succeeded)
		assert.Equal(t, 0, sum.Skipped)
		assert.False(t, strings.HasSuffix(text, "\n"))
	})

	t.Run("missing family gets the placeholder, spaces stripped", func(t *testing.T) {
		tbl := newTable(
			row("P54583", "", "MKQST"),
			row("Q60029", "CBM 64", "MKQST"),
		)

		text, _, err := Generate(tbl, opts)
		require.NoError(t, err)
		assert.Contains(t, text, ">P54583_UnknownCBM\n")
		assert.Contains(t, text, ">Q60029_CBM64\n")
	})

	t.Run("invalid rows are skipped and counted, never emitted empty", func(t *testing.T) {
		tbl := newTable(
			row("", "CBM2", "MKQST"),       // no identifier
			row("P54583", "CBM2", "   "),   // no sequence
			row("Q60029", "CBM2", "123 *"), // cleans to nothing
			row("A7A786", "CBM2", "MKQST"),
		)

		text, sum, err := Generate(tbl, opts)
		require.NoError(t, err)

		assert.Equal(t, ">A7A786_CBM2\nMKQST", text)
		assert.Equal(t, 4, sum.Processed)
		assert.Equal(t, 1, sum.Succeeded)
		assert.Equal(t, 3, sum.Skipped)
	})

	t.Run("zero valid entries is an error", func(t *testing.T) {
		tbl := newTable(row("", "", ""))
		_, sum, err := Generate(tbl, opts)
		assert.ErrorIs(t, err, ErrNoEntries)
		assert.Equal(t, 1, sum.Skipped)
	})

	t.Run("missing columns are fatal", func(t *testing.T) {
		tbl := &table.Table{Columns: []string{"UniProt_Accession"}}
		_, _, err := Generate(tbl, opts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"CBM_Family"`)
	})
}
