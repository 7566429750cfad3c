package app

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/cassiomolin/lucene-example/internal/config"
	"github.com/cassiomolin/lucene-example/internal/loader"
	mcputil "github.com/cassiomolin/lucene-example/internal/mcp"
	"github.com/cassiomolin/lucene-example/internal/search"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
)

// ServerName is the MCP implementation name.
const ServerName = "lucene-example"

// RunParams contains dependencies for the run functions
type RunParams struct {
	LoadSettings      func(*pflag.FlagSet) (*config.Settings, error)
	ValidSettings     func(*config.Settings) error
	BuildCatalog      func(context.Context, *config.Settings, prometheus.Registerer) (*search.Catalog, error)
	CreateServer      func(*search.Catalog, string) *mcp.Server
	StartSSEServer    func(context.Context, *mcp.Server, prometheus.Gatherer, *config.Settings) error
	Out               io.Writer     // Demo output; defaults to stdout
	LogOut            io.Writer     // Log output; defaults to stderr
	CustomIOTransport mcp.Transport // Optional: for testing with custom IO
}

// DefaultRunParams returns production dependencies
func DefaultRunParams() RunParams {
	return RunParams{
		LoadSettings:   config.LoadSettingsWithFlags,
		ValidSettings:  config.ValidateSettings,
		BuildCatalog:   BuildCatalog,
		CreateServer:   CreateMCPServer,
		StartSSEServer: StartSSEServer,
		Out:            os.Stdout,
		LogOut:         os.Stderr,
	}
}

// RunDemoWithDeps loads and indexes the records, then prints the
// demonstration queries to params.Out.
func RunDemoWithDeps(ctx context.Context, params RunParams, flags *pflag.FlagSet, version string) error {
	rt, err := prepare(ctx, params, flags, version)
	if err != nil {
		return err
	}
	defer rt.close()

	out := params.Out
	if out == nil {
		out = os.Stdout
	}
	return RunDemo(ctx, rt.catalog, out)
}

// RunServeWithDeps loads and indexes the records, then serves the query
// tools over the configured MCP transport until ctx is done.
func RunServeWithDeps(ctx context.Context, params RunParams, flags *pflag.FlagSet, version string) error {
	rt, err := prepare(ctx, params, flags, version)
	if err != nil {
		return err
	}
	defer rt.close()

	settings := rt.settings
	mcpServer := params.CreateServer(rt.catalog, version)

	if settings.Transport == config.TransportStdio {
		// Use custom transport if provided (for testing), otherwise use stdio
		transport := params.CustomIOTransport
		if transport == nil {
			transport = &mcp.StdioTransport{}
		}
		return mcpServer.Run(ctx, transport)
	}

	slog.Info("Starting SSE server", "host", settings.Host, "port", settings.Port)
	return params.StartSSEServer(ctx, mcpServer, rt.registry, settings)
}

// runtime is what both commands need once settings are resolved.
type runtime struct {
	settings *config.Settings
	registry *prometheus.Registry
	catalog  *search.Catalog
}

func (rt *runtime) close() {
	if err := rt.catalog.Close(); err != nil {
		slog.Error("Failed to close catalog", "error", err)
	}
}

// prepare resolves settings, configures logging and builds the catalog.
func prepare(ctx context.Context, params RunParams, flags *pflag.FlagSet, version string) (*runtime, error) {
	settings, err := params.LoadSettings(flags)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if err := params.ValidSettings(settings); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Logs always go to stderr so demo and stdio transport output stay clean
	logOut := params.LogOut
	if logOut == nil {
		logOut = os.Stderr
	}
	if err := config.SetupLogger(settings.Log, logOut); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	slog.Info("Starting lucene-example", "version", version)
	config.Log(settings)

	registry := NewRegistry()
	catalog, err := params.BuildCatalog(ctx, settings, registry)
	if err != nil {
		return nil, err
	}
	return &runtime{settings: settings, registry: registry, catalog: catalog}, nil
}

// NewRegistry returns a metrics registry with the Go runtime and process
// collectors registered.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// BuildCatalog loads the configured records and indexes them.
func BuildCatalog(ctx context.Context, settings *config.Settings, reg prometheus.Registerer) (*search.Catalog, error) {
	var fsys fs.FS
	if settings.Data.Dir == "" {
		fsys = loader.Bundled()
	} else {
		info, err := os.Stat(settings.Data.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open data directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("data directory %s is not a directory", settings.Data.Dir)
		}
		fsys = os.DirFS(settings.Data.Dir)
	}

	data, err := loader.Load(ctx, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	return search.NewCatalog(ctx, data, search.CatalogOptions{
		Options: search.Options{
			MaxResults:  settings.Query.MaxResults,
			StrictDates: settings.Query.StrictDates,
		},
		CommitEvery: settings.Index.CommitEvery,
		Registerer:  reg,
	})
}

// CreateMCPServer creates the MCP server with the query tools registered
func CreateMCPServer(catalog *search.Catalog, version string) *mcp.Server {
	return mcputil.CreateServer(mcputil.ServerConfig{
		Name:    ServerName,
		Version: version,
		Catalog: catalog,
	})
}
