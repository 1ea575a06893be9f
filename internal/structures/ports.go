package structures

import (
	"context"

	"cbmtools/internal/platform/uniprot"
)

// UniProtClient is the slice of the UniProt REST client the checker needs.
type UniProtClient interface {
	GetEntry(ctx context.Context, accession string) (*uniprot.Entry, error)
}

// FileClient downloads structure model files to a local path.
type FileClient interface {
	DownloadPDB(ctx context.Context, pdbID, destPath string) error
	DownloadAlphaFold(ctx context.Context, accession, destPath string) error
}
