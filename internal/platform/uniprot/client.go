package uniprot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"cbmtools/internal/platform/apierr"
)

// Client talks to the UniProtKB REST API.
type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
}

// NewClient builds a client. The limiter is waited on before every request
// so callers control how politely the API is hit.
func NewClient(userAgent string, limiter *rate.Limiter) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		userAgent: userAgent,
		baseURL:   "https://rest.uniprot.org",
		limiter:   limiter,
	}
}

// SearchResponse matches /uniprotkb/search?format=json
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// SearchResult is one entry of a search result list. Depending on the query
// the accession arrives as "accession" or "primaryAccession".
type SearchResult struct {
	Accession        string `json:"accession"`
	PrimaryAccession string `json:"primaryAccession"`
}

// Entry matches /uniprotkb/{accession}?format=json
type Entry struct {
	PrimaryAccession string           `json:"primaryAccession"`
	UniProtkbID      string           `json:"uniProtkbId"`
	Sequence         Sequence         `json:"sequence"`
	Genes            []Gene           `json:"genes"`
	Features         []Feature        `json:"features"`
	CrossReferences  []CrossReference `json:"uniProtKBCrossReferences"`
}

type Sequence struct {
	Value string `json:"value"`
}

type Gene struct {
	GeneName Name   `json:"geneName"`
	Synonyms []Name `json:"synonyms"`
}

type Name struct {
	Value string `json:"value"`
}

type Feature struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// CrossReference links an entry to an external database record, e.g. a PDB
// structure or an AlphaFoldDB model.
type CrossReference struct {
	Database string `json:"database"`
	ID       string `json:"id"`
}

// Search runs a query against the search endpoint with default fields.
func (c *Client) Search(ctx context.Context, query string) (*SearchResponse, error) {
	u := fmt.Sprintf("%s/uniprotkb/search?query=%s&format=json", c.baseURL, url.QueryEscape(query))

	var res SearchResponse
	if err := c.get(ctx, u, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetEntry fetches the full entry for a UniProt accession.
func (c *Client) GetEntry(ctx context.Context, accession string) (*Entry, error) {
	u := fmt.Sprintf("%s/uniprotkb/%s?format=json", c.baseURL, url.PathEscape(accession))

	var e Entry
	if err := c.get(ctx, u, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) get(ctx context.Context, url string, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apierr.Connection(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apierr.FromStatus(resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return apierr.Parse(err)
	}
	return nil
}
