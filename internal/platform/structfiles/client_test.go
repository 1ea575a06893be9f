package structfiles

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"cbmtools/internal/platform/apierr"
)

func newTestClient(serverURL string) *Client {
	c := NewClient("cbmtools-test/1.0", rate.NewLimiter(rate.Inf, 1))
	c.rcsbBaseURL = serverURL
	c.alphafoldBaseURL = serverURL
	return c
}

func TestDownloadPDB(t *testing.T) {
	t.Run("writes the body and creates directories", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/download/1ECE.pdb", r.URL.Path)
			_, _ = w.Write([]byte("HEADER    HYDROLASE\n"))
		}))
		defer srv.Close()

		dest := filepath.Join(t.TempDir(), "PDB", "P0A7B8_1ECE.pdb")
		err := newTestClient(srv.URL).DownloadPDB(context.Background(), "1ECE", dest)
		require.NoError(t, err)

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "HEADER    HYDROLASE\n", string(data))
	})

	t.Run("HTTP failure leaves no file", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		dest := filepath.Join(t.TempDir(), "PDB", "P0A7B8_XXXX.pdb")
		err := newTestClient(srv.URL).DownloadPDB(context.Background(), "XXXX", dest)
		require.Error(t, err)
		assert.True(t, apierr.IsNotFound(err))

		_, statErr := os.Stat(dest)
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestDownloadAlphaFold(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/AF-Q9I6L1-F1-model_v4.pdb", r.URL.Path)
		_, _ = w.Write([]byte("MODEL 1\n"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "AlphaFold DB", "Q9I6L1_AF.pdb")
	err := newTestClient(srv.URL).DownloadAlphaFold(context.Background(), "Q9I6L1", dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "MODEL 1\n", string(data))
}

func TestDownloadConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	dest := filepath.Join(t.TempDir(), "PDB", "x.pdb")
	err := newTestClient(srv.URL).DownloadPDB(context.Background(), "1ECE", dest)
	assert.True(t, apierr.IsConnection(err))
}
