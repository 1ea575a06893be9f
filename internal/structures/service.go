package structures

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"cbmtools/internal/platform/apierr"
	"cbmtools/internal/run"
	"cbmtools/internal/table"
)

// Config controls optional downloading of the classified model files.
type Config struct {
	Download bool
	BaseDir  string
}

// OutputColumns is the fixed column set of the availability table.
var OutputColumns = []string{
	"Original_Protein_ID",
	"CBM_Family",
	"Structure_Status",
	"PDB_ID",
	"AlphaFoldDB_ID",
	"Downloaded_File_Path",
}

// Service checks structure availability for UniProt accessions.
type Service struct {
	uniprot UniProtClient
	files   FileClient
	cfg     Config
}

func NewService(uniprotClient UniProtClient, fileClient FileClient, cfg Config) *Service {
	return &Service{
		uniprot: uniprotClient,
		files:   fileClient,
		cfg:     cfg,
	}
}

// Check classifies one accession into exactly one terminal status. Errors
// never propagate; they map to their own statuses.
func (s *Service) Check(ctx context.Context, accession string) Availability {
	entry, err := s.uniprot.GetEntry(ctx, accession)
	if err != nil {
		none := Availability{PDBID: NotAvailable, AlphaFoldDBID: NotAvailable}
		switch {
		case apierr.IsNotFound(err):
			none.Status = StatusAccessionNotFound
		case apierr.IsConnection(err):
			none.Status = StatusConnectionError
		default:
			if code, isHTTP := apierr.HTTPStatus(err); isHTTP {
				none.Status = fmt.Sprintf("HTTP Error (%d)", code)
			} else {
				none.Status = fmt.Sprintf("Error: %v", err)
			}
		}
		return none
	}

	var pdbIDs []string
	var alphafoldID string
	for _, xref := range entry.CrossReferences {
		switch xref.Database {
		case "PDB":
			if xref.ID != "" {
				pdbIDs = append(pdbIDs, xref.ID)
			}
		case "AlphaFoldDB":
			if alphafoldID == "" {
				alphafoldID = xref.ID
			}
		}
	}

	if len(pdbIDs) > 0 {
		af := alphafoldID
		if af == "" {
			af = NotAvailable
		}
		return Availability{
			Status:        StatusPDBAvailable,
			PDBID:         strings.Join(pdbIDs, ", "),
			AlphaFoldDBID: af,
		}
	}
	if alphafoldID != "" {
		return Availability{
			Status:        StatusAlphaFoldAvailable,
			PDBID:         NotAvailable,
			AlphaFoldDBID: alphafoldID,
		}
	}
	return Availability{
		Status:        StatusNeedsPrediction,
		PDBID:         NotAvailable,
		AlphaFoldDBID: NotAvailable,
	}
}

// Download fetches the model file for a classified accession and returns
// the local path, or NotAvailable when nothing was (or could be)
// downloaded. Only the first of a comma-separated PDB id list is fetched.
func (s *Service) Download(ctx context.Context, accession string, av Availability) string {
	switch av.Status {
	case StatusPDBAvailable:
		pdbID := strings.TrimSpace(strings.Split(av.PDBID, ",")[0])
		dest := filepath.Join(s.cfg.BaseDir, "PDB", fmt.Sprintf("%s_%s.pdb", accession, pdbID))
		if err := s.files.DownloadPDB(ctx, pdbID, dest); err != nil {
			log.Printf("download PDB %s for %s: %v", pdbID, accession, err)
			return NotAvailable
		}
		return dest
	case StatusAlphaFoldAvailable:
		dest := filepath.Join(s.cfg.BaseDir, "AlphaFold DB", fmt.Sprintf("%s_AF.pdb", accession))
		if err := s.files.DownloadAlphaFold(ctx, av.AlphaFoldDBID, dest); err != nil {
			log.Printf("download AlphaFold model for %s: %v", accession, err)
			return NotAvailable
		}
		return dest
	}
	return NotAvailable
}

// CheckTable classifies every row of t and returns the availability table.
// Exactly one output row is produced per input row, in input order.
func (s *Service) CheckTable(ctx context.Context, t *table.Table, idColumn string) (*table.Table, *run.Summary, error) {
	if err := t.Require(idColumn); err != nil {
		return nil, nil, err
	}

	sum := run.NewSummary("structures")
	out := &table.Table{Columns: OutputColumns}
	total := len(t.Rows)
	hasFamily := hasColumn(t, "CBM_Family")

	for i, rowIn := range t.Rows {
		accession := strings.TrimSpace(rowIn[idColumn])
		family := NotAvailable
		if hasFamily {
			family = rowIn["CBM_Family"]
		}

		sum.Processed++
		if accession == "" {
			log.Printf("(%d/%d) skipping entry: missing or invalid UniProt accession", i+1, total)
			sum.Skipped++
			out.Rows = append(out.Rows, table.Row{
				"Original_Protein_ID":  rowIn[idColumn],
				"CBM_Family":           family,
				"Structure_Status":     StatusSkipped,
				"PDB_ID":               NotAvailable,
				"AlphaFoldDB_ID":       NotAvailable,
				"Downloaded_File_Path": NotAvailable,
			})
			continue
		}

		av := s.Check(ctx, accession)
		log.Printf("(%d/%d) %s: %s", i+1, total, accession, av.Status)
		switch av.Status {
		case StatusPDBAvailable, StatusAlphaFoldAvailable, StatusNeedsPrediction:
			sum.Succeeded++
		default:
			sum.Failed++
		}

		downloaded := NotAvailable
		if s.cfg.Download {
			downloaded = s.Download(ctx, accession, av)
		}

		out.Rows = append(out.Rows, table.Row{
			"Original_Protein_ID":  accession,
			"CBM_Family":           family,
			"Structure_Status":     av.Status,
			"PDB_ID":               av.PDBID,
			"AlphaFoldDB_ID":       av.AlphaFoldDBID,
			"Downloaded_File_Path": downloaded,
		})
	}

	sum.Finish()
	return out, sum, nil
}

func hasColumn(t *table.Table, col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}
