package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cassiomolin/lucene-example/internal/config"
	"github.com/cassiomolin/lucene-example/internal/search"
	"github.com/cassiomolin/lucene-example/internal/testkit"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func newTestMCPServer() *mcp.Server {
	return mcp.NewServer(&mcp.Implementation{Name: "test", Version: "1.0"}, nil)
}

func TestNewSSEServer_Addr(t *testing.T) {
	settings := &config.Settings{
		Host: "localhost",
		Port: 8080,
		Auth: config.AuthSettings{Type: config.AuthTypeNone},
	}

	srv, err := NewSSEServer(newTestMCPServer(), nil, settings)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if srv.Addr != "localhost:8080" {
		t.Errorf("Expected addr 'localhost:8080', got '%s'", srv.Addr)
	}
}

func TestNewSSEServer_InvalidAuth(t *testing.T) {
	settings := &config.Settings{
		Host: "localhost",
		Port: 9090,
		Auth: config.AuthSettings{Type: config.AuthTypeBasic},
	}

	if _, err := NewSSEServer(newTestMCPServer(), nil, settings); err == nil {
		t.Error("Expected error for invalid auth settings")
	}
}

func TestNewSSEServer_Endpoints(t *testing.T) {
	reg := NewRegistry()
	catalog := testkit.NewCatalog(t, testkit.Dataset(), search.CatalogOptions{Registerer: reg})
	if _, err := catalog.Profiles.FindAll(context.Background()); err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}

	settings := &config.Settings{
		Host: "localhost",
		Port: 8080,
		Auth: config.AuthSettings{Type: config.AuthTypeAPIKey, APIKeys: []string{"key1"}},
	}
	srv, err := NewSSEServer(CreateMCPServer(catalog, "test"), reg, settings)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	t.Run("health bypasses auth", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
		if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
			t.Errorf("Expected 200 ok, got %d %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("metrics bypasses auth", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		for _, want := range []string{
			`index_docs_indexed_total{collection="profiles"} 6`,
			`index_queries_total{collection="profiles",kind="match_all",status="ok"} 1`,
			"go_goroutines",
		} {
			if !strings.Contains(body, want) {
				t.Errorf("Expected %q in metrics output", want)
			}
		}
	})

	t.Run("sse requires auth", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/sse", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", rec.Code)
		}
	})
}

func TestNewSSEServer_NoMetricsWithoutGatherer(t *testing.T) {
	settings := &config.Settings{Host: "localhost", Port: 8080}
	srv, err := NewSSEServer(newTestMCPServer(), nil, settings)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestStartSSEServer_ShutsDownOnCancel(t *testing.T) {
	port := testkit.MustGetFreePort(t)
	settings := &config.Settings{Host: "localhost", Port: port}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- StartSSEServer(ctx, newTestMCPServer(), NewRegistry(), settings)
	}()

	url := fmt.Sprintf("http://localhost:%d/health", port)
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(url)
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("Expected 200, got %d", resp.StatusCode)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("Server did not start: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean shutdown, got %v", err)
		}
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("Server did not shut down")
	}
}

func TestStartSSEServer_ListenError(t *testing.T) {
	settings := &config.Settings{Host: "256.0.0.1", Port: 1}
	err := StartSSEServer(context.Background(), newTestMCPServer(), nil, settings)
	if err == nil {
		t.Error("Expected listen error")
	}
}
