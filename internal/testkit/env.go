package testkit

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"testing"

	"github.com/spf13/pflag"
)

// Service is something a test starts before exercising the system, such as
// a server running in the background.
type Service interface {
	Name() string
	// Start returns properties other services or the test can read, for
	// example the address the service listens on.
	Start() (map[string]any, error)
	Stop() error
}

// Env starts services in order and stops them in reverse order.
type Env struct {
	services   []Service
	started    []Service
	properties map[string]any
}

// NewEnv creates an environment over services.
func NewEnv(services ...Service) *Env {
	return &Env{services: services, properties: make(map[string]any)}
}

// Start starts every service. On failure the services already started are
// stopped and the start error is returned.
func (e *Env) Start() error {
	for _, s := range e.services {
		props, err := s.Start()
		if err != nil {
			return errors.Join(fmt.Errorf("start %s: %w", s.Name(), err), e.Stop())
		}
		e.started = append(e.started, s)
		for k, v := range props {
			e.properties[k] = v
		}
	}
	return nil
}

// Stop stops the started services in reverse order and joins their errors.
func (e *Env) Stop() error {
	var errs []error
	for i := len(e.started) - 1; i >= 0; i-- {
		if err := e.started[i].Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", e.started[i].Name(), err))
		}
	}
	e.started = nil
	return errors.Join(errs...)
}

// Property returns a property published by a started service.
func (e *Env) Property(name string) (any, bool) {
	v, ok := e.properties[name]
	return v, ok
}

// StartEnv starts services and registers their shutdown with t.Cleanup.
func StartEnv(t testing.TB, services ...Service) *Env {
	t.Helper()
	env := NewEnv(services...)
	if err := env.Start(); err != nil {
		t.Fatalf("Failed to start test environment: %v", err)
	}
	t.Cleanup(func() {
		if err := env.Stop(); err != nil {
			t.Errorf("Failed to stop test environment: %v", err)
		}
	})
	return env
}

// GetFreePort returns a free port from the kernel
func GetFreePort() (int, error) {
	return getFreePortWithAddr("localhost:0")
}

// MustGetFreePort returns a free port or fails the test
func MustGetFreePort(t testing.TB) int {
	t.Helper()
	port, err := GetFreePort()
	if err != nil {
		t.Fatalf("Failed to get free port: %v", err)
	}
	return port
}

func getFreePortWithAddr(addrStr string) (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", addrStr)
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer func() { _ = l.Close() }()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// FlagOptions configures NewTestFlags. Zero values select the defaults.
type FlagOptions struct {
	Port        int    // Uses free port if 0
	Transport   string // Defaults to "sse"
	AuthType    string // Defaults to "none"
	Host        string // Defaults to "localhost"
	DataDir     string // Defaults to the bundled records
	StrictDates bool
}

// NewTestFlags creates a flag set populated by register and set up for a
// server under test.
func NewTestFlags(t testing.TB, register func(*pflag.FlagSet), opts *FlagOptions) *pflag.FlagSet {
	t.Helper()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	register(flags)

	o := FlagOptions{Transport: "sse", AuthType: "none", Host: "localhost"}
	if opts != nil {
		if opts.Port != 0 {
			o.Port = opts.Port
		}
		if opts.Transport != "" {
			o.Transport = opts.Transport
		}
		if opts.AuthType != "" {
			o.AuthType = opts.AuthType
		}
		if opts.Host != "" {
			o.Host = opts.Host
		}
		o.DataDir = opts.DataDir
		o.StrictDates = opts.StrictDates
	}
	if o.Port == 0 {
		o.Port = MustGetFreePort(t)
	}

	set := func(name, value string) {
		if flags.Lookup(name) == nil {
			return
		}
		if err := flags.Set(name, value); err != nil {
			t.Fatalf("Failed to set flag %s: %v", name, err)
		}
	}
	set("port", strconv.Itoa(o.Port))
	set("transport", o.Transport)
	set("auth-type", o.AuthType)
	set("host", o.Host)
	if o.DataDir != "" {
		set("data-dir", o.DataDir)
	}
	if o.StrictDates {
		set("strict-dates", "true")
	}

	return flags
}
