package app

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mystixxx/altersport/internal/config"
	"github.com/mystixxx/altersport/internal/platform/logging"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		HTTPAddr:           ":0",
		CORSAllowedOrigins: []string{"*"},
		ReadTimeout:        5 * time.Second,
		WriteTimeout:       5 * time.Second,
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		SessionTTL:         time.Minute,
		IdentityFile:       filepath.Join(t.TempDir(), "identity.json"),
		EnrichmentWorkers:  2,
	}
}

func TestNewHTTPServerServesSeededCatalog(t *testing.T) {
	srv, err := NewHTTPServer(testConfig(t), logging.NewNop(), nil)
	require.NoError(t, err)
	require.NotNil(t, srv.Handler)

	req := httptest.NewRequest(http.MethodGet, "/airtable/sports", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Nogomet")
}

func TestNewHTTPServerRejectsEmptyAddr(t *testing.T) {
	cfg := testConfig(t)
	cfg.HTTPAddr = ""

	_, err := NewHTTPServer(cfg, logging.NewNop(), nil)
	require.Error(t, err)
}
