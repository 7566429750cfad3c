package mcp

import (
	"context"
	"slices"
	"testing"

	"github.com/cassiomolin/lucene-example/internal/search"
	"github.com/cassiomolin/lucene-example/internal/testkit"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// connect starts an in-memory session against a server built from cfg.
func connect(t *testing.T, cfg ServerConfig) *mcp.ClientSession {
	t.Helper()

	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	serverSession, err := CreateServer(cfg).Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("Server connect failed: %v", err)
	}
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("Client connect failed: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestCreateServer(t *testing.T) {
	server := CreateServer(ServerConfig{Name: "test-server", Version: "1.0.0"})
	if server == nil {
		t.Fatal("Expected server to be created")
	}
}

func TestCreateServer_EmptyConfig(t *testing.T) {
	if CreateServer(ServerConfig{}) == nil {
		t.Fatal("Expected server to be created even with empty config")
	}
}

func TestCreateServer_WithCatalog(t *testing.T) {
	catalog := testkit.NewCatalog(t, testkit.Dataset(), search.CatalogOptions{})
	session := connect(t, ServerConfig{Name: "test-server", Version: "1.0.0", Catalog: catalog})

	res, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTools failed: %v", err)
	}

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
		if tool.InputSchema == nil {
			t.Errorf("%s: expected an input schema", tool.Name)
		}
	}
	slices.Sort(names)
	want := []string{"find_profiles", "find_shopping_lists", "get_profile", "get_shopping_list"}
	if !slices.Equal(names, want) {
		t.Errorf("Expected tools %v, got %v", want, names)
	}
}
