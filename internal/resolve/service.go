package resolve

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"cbmtools/internal/platform/apierr"
	"cbmtools/internal/platform/uniprot"
	"cbmtools/internal/run"
	"cbmtools/internal/table"
)

// queryStrategies are tried in order until one returns a non-empty result
// list. The order is a tie-break: the first hit wins even if later
// templates would also match.
var queryStrategies = []string{
	"xref:GenBank-%s",
	"database:GenBank %s",
	"%s",
	"accession:%s",
	"protein_name:%s",
}

var cbmFamilyRe = regexp.MustCompile(`family (\d+)`)

// OutputColumns are appended to the input table by EnrichTable.
var OutputColumns = []string{
	"UniProt_Accession",
	"UniProt_ID",
	"Amino_Acid_Sequence",
	"CBM_Family",
	"Gene_Names",
	"Status",
}

// Service resolves identifiers against UniProt.
type Service struct {
	client UniProtClient
}

func NewService(client UniProtClient) *Service {
	return &Service{client: client}
}

// NormalizeIdentifier extracts the searchable identifier from a raw header
// value: the segment before the first '|', trimmed.
func NormalizeIdentifier(raw string) string {
	id := strings.TrimSpace(raw)
	if i := strings.Index(id, "|"); i >= 0 {
		id = id[:i]
	}
	return strings.TrimSpace(id)
}

// Resolve runs the two-stage lookup for one identifier. It never returns an
// error: every outcome is folded into Result.Status so one bad row cannot
// stop a run.
func (s *Service) Resolve(ctx context.Context, identifier string) Result {
	accession, failed, ok := s.findAccession(ctx, identifier)
	if !ok {
		return failed
	}
	return s.fetchDetails(ctx, accession)
}

// findAccession is stage 1. On success it returns the candidate accession
// and ok=true; otherwise the terminal Result for the row.
func (s *Service) findAccession(ctx context.Context, identifier string) (string, Result, bool) {
	for _, tmpl := range queryStrategies {
		query := fmt.Sprintf(tmpl, identifier)

		resp, err := s.client.Search(ctx, query)
		if err != nil {
			if apierr.IsConnection(err) {
				// A network-level failure will hit every remaining
				// strategy too; stop here.
				return "", Result{Status: StatusConnectionError}, false
			}
			if code, isHTTP := apierr.HTTPStatus(err); isHTTP {
				log.Printf("search %q for %q: HTTP %d, trying next strategy", query, identifier, code)
				continue
			}
			return "", Result{Status: fmt.Sprintf("Error: %v", err)}, false
		}
		if len(resp.Results) == 0 {
			continue
		}

		acc := resp.Results[0].Accession
		if acc == "" {
			acc = resp.Results[0].PrimaryAccession
		}
		if acc != "" {
			return acc, Result{}, true
		}
	}
	return "", Result{Status: StatusNotFound}, false
}

// fetchDetails is stage 2: fetch the full entry and extract the dataset
// fields. An entry without domain features is still a success, just with an
// empty CBM family.
func (s *Service) fetchDetails(ctx context.Context, accession string) Result {
	entry, err := s.client.GetEntry(ctx, accession)
	if err != nil {
		switch {
		case apierr.IsConnection(err):
			return Result{Accession: accession, Status: StatusConnectionErrorStage2}
		default:
			if _, isHTTP := apierr.HTTPStatus(err); isHTTP {
				return Result{
					Accession: accession,
					Status:    fmt.Sprintf("HTTP Error in Stage 2 (Accession: %s)", accession),
				}
			}
			return Result{Status: fmt.Sprintf("Error in Stage 2: %v", err)}
		}
	}

	acc := entry.PrimaryAccession
	if acc == "" {
		acc = accession
	}
	return Result{
		Accession: acc,
		EntryName: entry.UniProtkbID,
		Sequence:  entry.Sequence.Value,
		CBMFamily: cbmFamily(entry.Features),
		GeneNames: geneNames(entry.Genes),
		Status:    fmt.Sprintf("Success (Found via '%s')", accession),
	}
}

// cbmFamily scans domain features for a carbohydrate-binding module and
// formats the first numbered family as CBM<N>.
func cbmFamily(features []uniprot.Feature) string {
	for _, f := range features {
		if f.Type != "Domain" || !strings.Contains(f.Description, "Carbohydrate-binding module") {
			continue
		}
		if m := cbmFamilyRe.FindStringSubmatch(f.Description); m != nil {
			return "CBM" + m[1]
		}
	}
	return ""
}

// geneNames joins the primary gene name and synonyms, deduplicated.
func geneNames(genes []uniprot.Gene) string {
	seen := make(map[string]bool)
	var names []string
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			names = append(names, v)
		}
	}
	for _, g := range genes {
		add(g.GeneName.Value)
		for _, syn := range g.Synonyms {
			add(syn.Value)
		}
	}
	return strings.Join(names, ", ")
}

// EnrichTable resolves every row of t and returns a new table with the
// original columns plus OutputColumns. Exactly one output row is produced
// per input row, in input order.
func (s *Service) EnrichTable(ctx context.Context, t *table.Table, idColumn string) (*table.Table, *run.Summary, error) {
	if err := t.Require(idColumn); err != nil {
		return nil, nil, err
	}

	sum := run.NewSummary("fetch")
	out := &table.Table{
		Columns: append(append([]string{}, t.Columns...), OutputColumns...),
	}
	total := len(t.Rows)

	for i, rowIn := range t.Rows {
		label := rowIn["APR_ID"]
		if label == "" {
			label = fmt.Sprintf("Protein_%d", i+1)
		}

		var res Result
		id := NormalizeIdentifier(rowIn[idColumn])
		if id == "" {
			log.Printf("(%d/%d) skipping %s: missing or unparseable identifier (raw %q)",
				i+1, total, label, rowIn[idColumn])
			res = Result{Status: StatusSkipped}
			sum.Skipped++
		} else {
			res = s.Resolve(ctx, id)
			log.Printf("(%d/%d) %s (extracted id %q): %s", i+1, total, label, id, res.Status)
			if res.Succeeded() {
				sum.Succeeded++
			} else {
				sum.Failed++
			}
		}
		sum.Processed++

		rowOut := make(table.Row, len(rowIn)+len(OutputColumns))
		for k, v := range rowIn {
			rowOut[k] = v
		}
		rowOut["UniProt_Accession"] = res.Accession
		rowOut["UniProt_ID"] = res.EntryName
		rowOut["Amino_Acid_Sequence"] = res.Sequence
		rowOut["CBM_Family"] = res.CBMFamily
		rowOut["Gene_Names"] = res.GeneNames
		rowOut["Status"] = res.Status
		out.Rows = append(out.Rows, rowOut)
	}

	sum.Finish()
	return out, sum, nil
}
