// Package resolve maps free-text protein identifiers to UniProt entries and
// extracts the fields the CBM dataset tracks.
package resolve

import "strings"

// Result carries the UniProt-derived fields appended to each input row.
// Status is always set; the other fields are filled as far as resolution
// got.
type Result struct {
	Accession string
	EntryName string
	Sequence  string
	CBMFamily string
	GeneNames string
	Status    string
}

// Terminal statuses that are not built from a format string.
const (
	StatusConnectionError       = "Connection Error"
	StatusConnectionErrorStage2 = "Connection Error in Stage 2"
	StatusNotFound              = "Not Found after multiple attempts"
	StatusSkipped               = "Skipped (Empty/Invalid Identifier)"
)

// Succeeded reports whether the result reached stage 2 with full details.
func (r Result) Succeeded() bool {
	return strings.HasPrefix(r.Status, "Success")
}
