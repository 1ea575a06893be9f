// Package fastagen turns enriched CBM rows into FASTA records suitable as
// structure-prediction input.
package fastagen

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"cbmtools/internal/run"
	"cbmtools/internal/table"
)

// UnknownFamily is the header placeholder when a row has no CBM family.
const UnknownFamily = "UnknownCBM"

// ErrNoEntries is returned when no row survived validation and cleaning.
var ErrNoEntries = errors.New("no valid FASTA entries were generated")

var nonAlpha = regexp.MustCompile(`[^A-Z]`)

// Options names the input columns to read.
type Options struct {
	IDColumn       string
	FamilyColumn   string
	SequenceColumn string
}

// CleanSequence uppercases s and strips every character outside A-Z. It is
// idempotent: cleaning an already-clean sequence returns it unchanged.
func CleanSequence(s string) string {
	return nonAlpha.ReplaceAllString(strings.ToUpper(strings.TrimSpace(s)), "")
}

// Generate builds the FASTA text for t: one ">identifier_family" header and
// one cleaned sequence line per valid row, newline-joined. Rows with a
// blank identifier, blank sequence, or a sequence that cleans to nothing
// are skipped and counted, never emitted as an empty pair.
func Generate(t *table.Table, opts Options) (string, *run.Summary, error) {
	if err := t.Require(opts.IDColumn, opts.FamilyColumn, opts.SequenceColumn); err != nil {
		return "", nil, err
	}

	sum := run.NewSummary("fasta")
	var entries []string

	for i, row := range t.Rows {
		sum.Processed++

		id := strings.TrimSpace(row[opts.IDColumn])
		if id == "" {
			log.Printf("skipping row %d: missing or invalid identifier", i+1)
			sum.Skipped++
			continue
		}

		family := strings.ReplaceAll(strings.TrimSpace(row[opts.FamilyColumn]), " ", "")
		if family == "" {
			family = UnknownFamily
		}

		sequence := strings.TrimSpace(row[opts.SequenceColumn])
		if sequence == "" {
			log.Printf("skipping row %d: empty or invalid sequence for %q", i+1, id)
			sum.Skipped++
			continue
		}

		cleaned := CleanSequence(sequence)
		if cleaned == "" {
			log.Printf("skipping row %d: sequence for %q became empty after cleaning", i+1, id)
			sum.Skipped++
			continue
		}

		entries = append(entries, fmt.Sprintf(">%s_%s", id, family), cleaned)
		sum.Succeeded++
	}

	sum.Finish()
	if len(entries) == 0 {
		return "", sum, ErrNoEntries
	}
	return strings.Join(entries, "\n"), sum, nil
}
