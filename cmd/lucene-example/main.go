package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cassiomolin/lucene-example/internal/app"
	"github.com/spf13/cobra"
)

var (
	// Version is injected at build time
	Version = "dev"
	// Build is injected at build time
	Build = "unknown"
	// ProgramName is injected at build time
	ProgramName = "lucene-example"
)

func main() {
	runMain(os.Args, os.Exit)
}

func runMain(args []string, exit func(int)) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Execute(ctx, app.DefaultRunParams(), Version, Build, ProgramName, args[1:]); err != nil {
		exit(1)
	}
}

// Execute is the entry point for the CLI, extracted for testing
func Execute(ctx context.Context, params app.RunParams, version, build, programName string, args []string) error {
	rootCmd := &cobra.Command{
		Use:   programName,
		Short: "Typed record index demo",
		Long: "Indexes profiles and shopping lists into typed in-memory indexes and runs\n" +
			"the demonstration queries against them. Use 'serve' to expose the queries\n" +
			"as MCP tools.",
		Version:      version + " (" + build + ")",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunDemoWithDeps(cmd.Context(), params, cmd.Flags(), version)
		},
	}
	rootCmd.SetVersionTemplate(`{{.Version}}
`)
	app.RegisterFlags(rootCmd.PersistentFlags())

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve record queries over MCP (stdio or SSE)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunServeWithDeps(cmd.Context(), params, cmd.Flags(), version)
		},
	}
	app.RegisterServeFlags(serveCmd.Flags())
	rootCmd.AddCommand(serveCmd)

	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
