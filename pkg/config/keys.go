package config

// Configuration key constants
// These constants centralize all environment variable and configuration
// key names to eliminate magic strings.

const (
	// Core service configuration keys
	KeyLogPath    = "LOG_PATH"
	KeyServerURL  = "SERVER_URL"
	KeyConfigFile = "CONFIG_FILE"

	// Engine tuning keys
	KeyProbeURL           = "PROBE_URL"
	KeyProbeIntervalMs    = "PROBE_INTERVAL_MS"
	KeyDispatchIntervalMs = "DISPATCH_INTERVAL_MS"

	// Relay collector keys
	KeyRelayURL       = "RELAY_URL"
	KeyRelaySecretKey = "RELAY_SECKEY"

	// Telemetry keys
	KeyTelemetryBufferSize   = "TELEMETRY_BUFFER_SIZE"
	KeyStatusIntervalSeconds = "STATUS_INTERVAL_SECONDS"
)

// Default values for configuration
const (
	DefaultProbeIntervalMs    = 1000
	DefaultDispatchIntervalMs = 1000

	DefaultTelemetryBufferSize   = 1000
	DefaultStatusIntervalSeconds = 10
)

// CLI flag name constants
const (
	// CLI flag names (kebab-case for command line)
	FlagLogPath            = "log-path"
	FlagServerURL          = "server-url"
	FlagConfigFile         = "config"
	FlagProbeURL           = "probe-url"
	FlagProbeIntervalMs    = "probe-interval-ms"
	FlagDispatchIntervalMs = "dispatch-interval-ms"
	FlagRelayURL           = "relay-url"
	FlagRelaySecretKey     = "relay-secret-key"
	FlagHelp               = "help"
)

// Help message constants
const (
	AppName        = "Log Shipper"
	AppDescription = "Ship telemetry events to a collector, spooling to disk while offline"
	UsageFormat    = "ship [OPTIONS]"

	// Help descriptions
	HelpLogPath            = "Backlog directory path (required)"
	HelpServerURL          = "Collector server URL (required)"
	HelpConfigFile         = "Path to a config file (JSON, TOML or YAML)"
	HelpProbeURL           = "Reachability probe URL (default: server URL)"
	HelpProbeIntervalMs    = "Connectivity probe interval in milliseconds"
	HelpDispatchIntervalMs = "Dispatch tick interval in milliseconds"
	HelpRelayURL           = "Publish events to this nostr relay instead of the HTTP collector"
	HelpRelaySecretKey     = "Relay signing key (hex or nsec), required with --relay-url"
	HelpShowHelp           = "Show this help message"

	// Help section headers
	HelpOptions         = "Options:"
	HelpEnvironmentVars = "Environment Variables:"
	HelpUsage           = "Usage:"
	HelpNote            = "Note: CLI options override environment variables, which override the config file"

	// Environment variable descriptions
	EnvDescLogPath            = "Backlog directory path"
	EnvDescServerURL          = "Collector server URL"
	EnvDescConfigFile         = "Path to a config file"
	EnvDescProbeURL           = "Reachability probe URL"
	EnvDescProbeIntervalMs    = "Connectivity probe interval (ms)"
	EnvDescDispatchIntervalMs = "Dispatch tick interval (ms)"
	EnvDescRelayURL           = "Nostr relay collector URL"
	EnvDescRelaySecretKey     = "Relay signing key (hex or nsec)"
)
