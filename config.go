package structlog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Target selects where rendered records are delivered.
type Target int

const (
	// TargetStdout writes records to the local console only.
	TargetStdout Target = iota
	// TargetCollector also forwards every record to the collector endpoint.
	TargetCollector
)

// DefaultEndpoint is the collector URL used when HOMELAB_LOG_ENDPOINT is
// not set. Port 4318 is the conventional OTLP/HTTP listener.
const DefaultEndpoint = "http://localhost:4318/v1/logs"

// Config is the runtime configuration of the logging subsystem. It is read
// from the environment exactly once and never mutated afterwards; loggers
// receive it by value.
type Config struct {
	Service     string
	Environment string
	Version     string
	Target      Target
	MinLevel    Level
	ForcePretty bool
	Endpoint    string
}

// rawConfig is the koanf unmarshal target before validation.
type rawConfig struct {
	Service     string `koanf:"service"`
	Environment string `koanf:"environment"`
	Version     string `koanf:"version"`
	Target      string `koanf:"target"`
	Level       string `koanf:"level"`
	ForcePretty string `koanf:"force_pretty"`
	Endpoint    string `koanf:"endpoint"`
}

// envKeys maps the environment variables read at startup to config keys.
// Anything else in the environment is skipped.
var envKeys = map[string]string{
	"HOMELAB_SERVICE":         "service",
	"HOMELAB_ENVIRONMENT":     "environment",
	"HOMELAB_SERVICE_VERSION": "version",
	"HOMELAB_LOG_TARGET":      "target",
	"HOMELAB_LOG_LEVEL":       "level",
	"HOMELAB_FORCE_PRETTY":    "force_pretty",
	"HOMELAB_LOG_ENDPOINT":    "endpoint",
}

// LoadConfig reads the HOMELAB_* environment. Invalid values never fail
// the caller: they fall back to safe defaults with a single warning line
// on stderr.
func LoadConfig() Config {
	return loadConfig(os.Stderr)
}

func loadConfig(warnw io.Writer) Config {
	k := koanf.New(".")

	// Layer 1: defaults.
	defaults := rawConfig{
		Service:     "unknown-service",
		Environment: "development",
		Target:      "stdout",
		Level:       "info",
		Endpoint:    DefaultEndpoint,
	}
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		fmt.Fprintf(warnw, "structlog: loading config defaults: %v\n", err)
	}

	// Layer 2: environment overrides.
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		fmt.Fprintf(warnw, "structlog: loading config environment: %v\n", err)
	}

	raw := defaults
	if err := k.Unmarshal("", &raw); err != nil {
		fmt.Fprintf(warnw, "structlog: unmarshaling config: %v\n", err)
		raw = defaults
	}

	cfg := Config{
		Service:     raw.Service,
		Environment: raw.Environment,
		Version:     raw.Version,
		ForcePretty: strings.EqualFold(raw.ForcePretty, "true"),
		Endpoint:    raw.Endpoint,
	}

	level, err := ParseLevel(raw.Level)
	if err != nil {
		fmt.Fprintf(warnw, "structlog: %v, using \"info\"\n", err)
		level = LevelInfo
	}
	cfg.MinLevel = level

	target, err := parseTarget(raw.Target)
	if err != nil {
		fmt.Fprintf(warnw, "structlog: %v, using \"stdout\"\n", err)
		target = TargetStdout
	}
	cfg.Target = target

	if cfg.Version == "" {
		cfg.Version = buildVersion()
	}
	return cfg
}

// parseTarget recognises "stdout" for console-only delivery and the
// "vector"/"remote"/"collector" aliases for collector forwarding.
func parseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stdout":
		return TargetStdout, nil
	case "vector", "remote", "collector":
		return TargetCollector, nil
	}
	return TargetStdout, fmt.Errorf("unknown log target %q", s)
}
