package config

import (
	"time"

	"log-shipper/pkg/crypto"
	"log-shipper/pkg/shipper"
)

type Config struct {
	LogPath            string
	ServerURL          string
	ProbeURL           string
	ProbeIntervalMs    int
	DispatchIntervalMs int
	Relay              RelayConfig
	Telemetry          TelemetryConfig
}

type RelayConfig struct {
	URL       string
	SecretKey string
	KeyPair   crypto.KeyPair
}

type TelemetryConfig struct {
	BufferSize            int
	StatusIntervalSeconds int
}

// Load loads configuration from CLI flags, environment variables and an
// optional config file. CLI flags take precedence over environment
// variables, which take precedence over the file.
func Load() (*Config, error) {
	// Parse CLI flags
	flagSource, showHelp := parseCLIFlags()

	if showHelp {
		printUsage()
		return nil, nil // Return nil to indicate help was shown
	}

	sources := []ConfigSource{flagSource, &EnvSource{}}

	// The config file path itself resolves from flags and env only.
	bootstrap := NewConfigResolver(sources...)
	if path := bootstrap.ResolveString(KeyConfigFile, ""); path != "" {
		fileSource, err := NewFileSource(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, fileSource)
	}

	resolver := NewConfigResolver(sources...)

	// Build configuration using resolver
	cfg := &Config{
		LogPath:            resolver.ResolveString(KeyLogPath, ""),
		ServerURL:          resolver.ResolveString(KeyServerURL, ""),
		ProbeURL:           resolver.ResolveString(KeyProbeURL, ""),
		ProbeIntervalMs:    resolver.ResolveInt(KeyProbeIntervalMs, DefaultProbeIntervalMs),
		DispatchIntervalMs: resolver.ResolveInt(KeyDispatchIntervalMs, DefaultDispatchIntervalMs),
		Relay: RelayConfig{
			URL:       resolver.ResolveString(KeyRelayURL, ""),
			SecretKey: resolver.ResolveString(KeyRelaySecretKey, ""),
		},
		Telemetry: TelemetryConfig{
			BufferSize:            resolver.ResolveInt(KeyTelemetryBufferSize, DefaultTelemetryBufferSize),
			StatusIntervalSeconds: resolver.ResolveInt(KeyStatusIntervalSeconds, DefaultStatusIntervalSeconds),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.Relay.URL != "" {
		keyPair, err := crypto.DeriveKeyPair(cfg.Relay.SecretKey)
		if err != nil {
			return nil, err
		}
		cfg.Relay.KeyPair = *keyPair
	}

	return cfg, nil
}

// ShipperOptions converts the loaded configuration into engine options.
func (c *Config) ShipperOptions() shipper.Options {
	return shipper.Options{
		LogPath:          c.LogPath,
		ServerURL:        c.ServerURL,
		ProbeURL:         c.ProbeURL,
		ProbeInterval:    time.Duration(c.ProbeIntervalMs) * time.Millisecond,
		DispatchInterval: time.Duration(c.DispatchIntervalMs) * time.Millisecond,
	}
}
