// Package structures classifies whether a solved or predicted 3D structure
// exists for a UniProt accession and optionally downloads the model file.
package structures

// Terminal classification statuses, checked in priority order: an entry
// with both PDB and AlphaFoldDB cross-references is always "PDB Available".
const (
	StatusPDBAvailable       = "PDB Available"
	StatusAlphaFoldAvailable = "AlphaFoldDB Available"
	StatusNeedsPrediction    = "Needs Prediction"
	StatusAccessionNotFound  = "UniProt Accession Not Found"
	StatusConnectionError    = "Connection Error"
	StatusSkipped            = "Skipped (Missing/Invalid Accession)"
)

// NotAvailable marks an absent identifier or file path in the output table.
const NotAvailable = "N/A"

// Availability is the classification outcome for one accession.
type Availability struct {
	Status        string
	PDBID         string // comma-joined list of PDB ids, or N/A
	AlphaFoldDBID string // AlphaFoldDB id, or N/A
}
