// Package structfiles downloads structure model files from the RCSB PDB and
// AlphaFold EBI file servers.
package structfiles

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"cbmtools/internal/platform/apierr"
)

// Client fetches static structure files. Both servers are plain file hosts,
// so one client covers them.
type Client struct {
	httpClient       *http.Client
	userAgent        string
	rcsbBaseURL      string
	alphafoldBaseURL string
	limiter          *rate.Limiter
}

func NewClient(userAgent string, limiter *rate.Limiter) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		userAgent:        userAgent,
		rcsbBaseURL:      "https://files.rcsb.org",
		alphafoldBaseURL: "https://alphafold.ebi.ac.uk",
		limiter:          limiter,
	}
}

// DownloadPDB streams the experimental model for pdbID into destPath.
func (c *Client) DownloadPDB(ctx context.Context, pdbID, destPath string) error {
	u := fmt.Sprintf("%s/download/%s.pdb", c.rcsbBaseURL, pdbID)
	return c.download(ctx, u, destPath)
}

// DownloadAlphaFold streams the v4 predicted model for accession into
// destPath.
func (c *Client) DownloadAlphaFold(ctx context.Context, accession, destPath string) error {
	u := fmt.Sprintf("%s/files/AF-%s-F1-model_v4.pdb", c.alphafoldBaseURL, accession)
	return c.download(ctx, u, destPath)
}

// download writes the response body to destPath, creating parent
// directories on demand. A failure mid-copy can leave a partial file; the
// caller records the download as absent in that case.
func (c *Client) download(ctx context.Context, url, destPath string) error {
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

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(destPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return apierr.Connection(err)
	}
	return f.Close()
}
