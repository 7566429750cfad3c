package app

import "github.com/spf13/pflag"

// RegisterFlags registers the flags shared by every command: where records
// come from, how they are indexed and queried, and logging.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP("data-dir", "d", "", "Directory with a profiles file and a shopping-lists directory (default: bundled records)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-format", "", "Log format: text or json")
	flags.Bool("strict-dates", false, "Fail queries on undecodable stored dates instead of leaving them unset")
	flags.IntP("max-results", "m", 0, "Maximum records per query (0 means unbounded)")
	flags.Int("commit-every", 0, "Commit the index after this many added documents")
}

// RegisterServeFlags registers the flags of the serve command.
func RegisterServeFlags(flags *pflag.FlagSet) {
	flags.StringP("transport", "t", "", "Transport type: stdio or sse")
	flags.StringP("host", "H", "", "Host for SSE transport")
	flags.IntP("port", "p", 0, "Port for SSE transport")
	flags.StringP("auth-type", "a", "", "Authentication type: none, basic, or apikey")
	flags.StringP("auth-basic-username", "u", "", "Basic auth username")
	flags.StringP("auth-basic-password", "P", "", "Basic auth password")
	flags.StringSliceP("auth-api-keys", "k", nil, "API keys (comma-separated)")
	flags.Float64("rate-limit", 0, "Maximum HTTP requests per second in SSE mode (0 disables limiting)")
	flags.Int("rate-burst", 0, "Requests allowed in a burst above the rate limit")
}
