package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"log-shipper/pkg/config"
	"log-shipper/pkg/shipper"
	"log-shipper/pkg/sink"
	"log-shipper/pkg/telemetry"
	"log-shipper/pkg/version"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		info := version.Info()
		fmt.Printf("ship version %s, commit %s, built %s\n", info.Version, info.Commit, info.Built)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg == nil {
		// Help was shown
		return
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)

	aggregator := telemetry.NewAggregator(telemetry.RealClock{}, telemetry.Config{
		BufferSize:        cfg.Telemetry.BufferSize,
		MaxRecentErrors:   telemetry.DefaultConfig().MaxRecentErrors,
		RateWindowSeconds: telemetry.DefaultConfig().RateWindowSeconds,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	aggregator.Start(ctx)
	defer aggregator.Stop()

	engine := buildEngine(cfg, logger, aggregator)
	if err := engine.SetOptions(cfg.ShipperOptions()); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if err := engine.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting shipper: %v\n", err)
		os.Exit(1)
	}
	defer engine.Stop()

	cli := NewCLI(aggregator, cfg, logger)
	go readEvents(os.Stdin, engine, cli.Stop)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := cli.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildEngine wires the collector backend: the nostr relay sink when a
// relay is configured, the plain HTTP sink otherwise.
func buildEngine(cfg *config.Config, logger *log.Logger, aggregator *telemetry.Aggregator) *shipper.Shipper {
	if cfg.Relay.URL == "" {
		return shipper.New(logger, aggregator)
	}
	relaySink := sink.NewRelaySink(cfg.Relay.URL, cfg.Relay.KeyPair, aggregator.Publish)
	return shipper.NewWithCollaborators(logger, aggregator, relaySink, nil)
}

// readEvents turns stdin lines into queued events. Each line is an
// action name optionally followed by key=value attributes. EOF stops
// the CLI loop.
func readEvents(r *os.File, engine *shipper.Shipper, onEOF func()) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		action := fields[0]
		var attributes map[string]string
		for _, field := range fields[1:] {
			key, value, ok := strings.Cut(field, "=")
			if !ok {
				continue
			}
			if attributes == nil {
				attributes = make(map[string]string)
			}
			attributes[key] = value
		}
		engine.Log(action, attributes)
	}
	onEOF()
}
