package config

import (
	"flag"
	"fmt"
)

// parseCLIFlags parses command-line flags and returns a FlagSource and help flag
func parseCLIFlags() (*FlagSource, bool) {
	flagSource := NewFlagSource()

	// Define CLI flags
	logPath := flag.String(FlagLogPath, "", HelpLogPath)
	serverURL := flag.String(FlagServerURL, "", HelpServerURL)
	configFile := flag.String(FlagConfigFile, "", HelpConfigFile)
	probeURL := flag.String(FlagProbeURL, "", HelpProbeURL)
	probeIntervalMs := flag.Int(FlagProbeIntervalMs, 0, HelpProbeIntervalMs)
	dispatchIntervalMs := flag.Int(FlagDispatchIntervalMs, 0, HelpDispatchIntervalMs)
	relayURL := flag.String(FlagRelayURL, "", HelpRelayURL)
	relaySecretKey := flag.String(FlagRelaySecretKey, "", HelpRelaySecretKey)
	help := flag.Bool(FlagHelp, false, HelpShowHelp)

	flag.Parse()

	if *help {
		return flagSource, true
	}

	// Store non-zero/non-empty values in flag source
	if *logPath != "" {
		flagSource.Set(KeyLogPath, *logPath)
	}
	if *serverURL != "" {
		flagSource.Set(KeyServerURL, *serverURL)
	}
	if *configFile != "" {
		flagSource.Set(KeyConfigFile, *configFile)
	}
	if *probeURL != "" {
		flagSource.Set(KeyProbeURL, *probeURL)
	}
	if *probeIntervalMs != 0 {
		flagSource.Set(KeyProbeIntervalMs, *probeIntervalMs)
	}
	if *dispatchIntervalMs != 0 {
		flagSource.Set(KeyDispatchIntervalMs, *dispatchIntervalMs)
	}
	if *relayURL != "" {
		flagSource.Set(KeyRelayURL, *relayURL)
	}
	if *relaySecretKey != "" {
		flagSource.Set(KeyRelaySecretKey, *relaySecretKey)
	}

	return flagSource, false
}

// printUsage prints the usage message
func printUsage() {
	fmt.Printf("%s - %s\n", AppName, AppDescription)
	fmt.Println()
	fmt.Printf("%s\n", HelpUsage)
	fmt.Printf("  %s\n", UsageFormat)
	fmt.Println()
	fmt.Printf("%s\n", HelpOptions)
	fmt.Printf("  --%s string              %s\n", FlagLogPath, HelpLogPath)
	fmt.Printf("  --%s string            %s\n", FlagServerURL, HelpServerURL)
	fmt.Printf("  --%s string                %s\n", FlagConfigFile, HelpConfigFile)
	fmt.Printf("  --%s string             %s\n", FlagProbeURL, HelpProbeURL)
	fmt.Printf("  --%s int        %s (default: %d)\n", FlagProbeIntervalMs, HelpProbeIntervalMs, DefaultProbeIntervalMs)
	fmt.Printf("  --%s int     %s (default: %d)\n", FlagDispatchIntervalMs, HelpDispatchIntervalMs, DefaultDispatchIntervalMs)
	fmt.Printf("  --%s string             %s\n", FlagRelayURL, HelpRelayURL)
	fmt.Printf("  --%s string      %s\n", FlagRelaySecretKey, HelpRelaySecretKey)
	fmt.Printf("  --%s                          %s\n", FlagHelp, HelpShowHelp)
	fmt.Println()
	fmt.Printf("%s\n", HelpEnvironmentVars)
	fmt.Printf("  %-24s %s\n", KeyLogPath, EnvDescLogPath)
	fmt.Printf("  %-24s %s\n", KeyServerURL, EnvDescServerURL)
	fmt.Printf("  %-24s %s\n", KeyConfigFile, EnvDescConfigFile)
	fmt.Printf("  %-24s %s\n", KeyProbeURL, EnvDescProbeURL)
	fmt.Printf("  %-24s %s\n", KeyProbeIntervalMs, EnvDescProbeIntervalMs)
	fmt.Printf("  %-24s %s\n", KeyDispatchIntervalMs, EnvDescDispatchIntervalMs)
	fmt.Printf("  %-24s %s\n", KeyRelayURL, EnvDescRelayURL)
	fmt.Printf("  %-24s %s\n", KeyRelaySecretKey, EnvDescRelaySecretKey)
	fmt.Println()
	fmt.Printf("%s\n", HelpNote)
}
