package resolve

import (
	"context"

	"cbmtools/internal/platform/uniprot"
)

// UniProtClient is the slice of the UniProt REST client the resolver needs.
type UniProtClient interface {
	Search(ctx context.Context, query string) (*uniprot.SearchResponse, error)
	GetEntry(ctx context.Context, accession string) (*uniprot.Entry, error)
}
