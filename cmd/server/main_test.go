package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/ratecraft/internal/config"
	"github.com/mmynk/ratecraft/internal/editor"
	"github.com/mmynk/ratecraft/internal/export"
	"github.com/mmynk/ratecraft/internal/metrics"
	"github.com/mmynk/ratecraft/internal/persist"
	"github.com/mmynk/ratecraft/internal/storage/memory"
	"github.com/mmynk/ratecraft/pkg/api/apiconnect"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	m := metrics.New()
	session := editor.New(persist.New(memory.New(), persist.DefaultPrefix), editor.WithRecorder(m))
	downloads := export.NewDownloads(export.DefaultTTL)
	exporter := export.New(export.WithDownloads(downloads), export.WithObserver(m))

	server := httptest.NewServer(corsMiddleware(routes(session, exporter, downloads, m)))
	t.Cleanup(server.Close)
	return server
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body failed: %v", err)
	}
	return resp, string(body)
}

func TestRoutes(t *testing.T) {
	server := setupServer(t)

	tests := []struct {
		name        string
		path        string
		status      int
		contentType string
		contains    string
	}{
		{"healthz", "/healthz", http.StatusOK, "", "ok"},
		{"preview", "/", http.StatusOK, "text/html", "Your Service Title"},
		{"unknown download", "/downloads/missing", http.StatusNotFound, "", ""},
		{"unknown path", "/nope", http.StatusNotFound, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, server.URL+tt.path)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if tt.contentType != "" && !strings.HasPrefix(resp.Header.Get("Content-Type"), tt.contentType) {
				t.Errorf("Content-Type = %q, want %q", resp.Header.Get("Content-Type"), tt.contentType)
			}
			if tt.contains != "" && !strings.Contains(body, tt.contains) {
				t.Errorf("body does not contain %q", tt.contains)
			}
		})
	}
}

func TestRoutes_MetricsCountRPCs(t *testing.T) {
	server := setupServer(t)

	client := apiconnect.NewEditorServiceClient(http.DefaultClient, server.URL)
	if _, err := client.GetState(context.Background(), connect.NewRequest(&emptypb.Empty{})); err != nil {
		t.Fatalf("GetState failed: %v", err)
	}

	resp, body := get(t, server.URL+"/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "ratecraft_rpc_requests_total") {
		t.Error("expected RPC counter in scrape")
	}
	if !strings.Contains(body, apiconnect.EditorServiceGetStateProcedure) {
		t.Error("expected GetState procedure label in scrape")
	}
}

func TestCORSPreflight(t *testing.T) {
	server := setupServer(t)

	req, _ := http.NewRequest(http.MethodOptions, server.URL+apiconnect.EditorServiceAddItemProcedure, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestOpenStore_FallsBackToMemory(t *testing.T) {
	// A regular file where the database directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Config{Store: config.StoreSQLite, DBPath: filepath.Join(blocker, "ratecraft.db")}
	store := openStore(context.Background(), cfg)
	defer store.Close()
	if _, ok := store.(*memory.Store); !ok {
		t.Errorf("expected memory fallback, got %T", store)
	}

	if _, ok := openStore(context.Background(), config.Config{Store: config.StoreMemory}).(*memory.Store); !ok {
		t.Error("expected memory store for memory config")
	}
}
