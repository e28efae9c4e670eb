package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"log-shipper/pkg/config"
	"log-shipper/pkg/telemetry"
	"log-shipper/pkg/utils"
)

// How many actions the status breakdown shows, busiest first.
const maxStatusActions = 5

// CLI represents the command-line interface runner
type CLI struct {
	telemetry telemetry.Reader
	config    *config.Config
	logger    *log.Logger

	// State
	lastSnapshot telemetry.Snapshot
	done         chan struct{}
}

// NewCLI creates a new command-line interface runner
func NewCLI(telemetryReader telemetry.Reader, cfg *config.Config, logger *log.Logger) *CLI {
	return &CLI{
		telemetry: telemetryReader,
		config:    cfg,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Run starts the CLI runner and blocks until shutdown
func (c *CLI) Run(ctx context.Context) error {
	c.logger.Printf("Starting Log Shipper in quiet mode")
	c.logger.Printf("Collector: %s", c.config.ServerURL)
	if c.config.Relay.URL != "" {
		c.logger.Printf("Relay: %s", c.config.Relay.URL)
	}
	c.logger.Printf("Backlog: %s", c.config.LogPath)

	// Print periodic status updates
	interval := time.Duration(c.config.Telemetry.StatusIntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Printf("Shutting down...")
			return nil
		case <-ticker.C:
			c.printStatus()
		case <-c.done:
			return nil
		}
	}
}

// Stop stops the CLI runner
func (c *CLI) Stop() {
	close(c.done)
}

// printStatus prints current telemetry status
func (c *CLI) printStatus() {
	snapshot := c.telemetry.Snapshot()

	// Only print if there are changes or significant activity
	if c.shouldPrintStatus(snapshot) {
		c.logger.Printf("Status - Events: enqueued=%d, delivered=%d, persisted=%d, rate=%.1f/s, errors=%d",
			snapshot.EventsEnqueued,
			snapshot.EventsDelivered,
			snapshot.EventsPersisted,
			snapshot.DeliveriesPerSecond,
			snapshot.ErrorsTotal)

		// Print connectivity and backlog state
		c.logger.Printf("Connectivity - Online: %t, backlog loaded=%d, discarded=%d",
			snapshot.Online,
			snapshot.BacklogLoaded,
			snapshot.BacklogDiscarded)

		if len(snapshot.DeliveredByAction) > 0 {
			c.logger.Printf("Top actions - %s", actionSummary(snapshot.DeliveredByAction))
		}
	}

	c.lastSnapshot = snapshot
}

// actionSummary renders delivered-by-action counts, busiest first.
func actionSummary(deliveredByAction map[string]uint64) string {
	counts := utils.SortActionsByCount(deliveredByAction)
	if len(counts) > maxStatusActions {
		counts = counts[:maxStatusActions]
	}
	parts := make([]string, 0, len(counts))
	for _, ac := range counts {
		parts = append(parts, fmt.Sprintf("%s=%s", ac.Action, utils.FormatNumber(ac.Count)))
	}
	return strings.Join(parts, ", ")
}

// shouldPrintStatus determines if we should print a status update
func (c *CLI) shouldPrintStatus(snapshot telemetry.Snapshot) bool {
	// Always print first status
	if c.lastSnapshot.EventsEnqueued == 0 && c.lastSnapshot.EventsDelivered == 0 {
		return true
	}

	// Print if event counts changed
	if snapshot.EventsEnqueued != c.lastSnapshot.EventsEnqueued ||
		snapshot.EventsDelivered != c.lastSnapshot.EventsDelivered ||
		snapshot.EventsPersisted != c.lastSnapshot.EventsPersisted {
		return true
	}

	// Print if there are errors
	if snapshot.ErrorsTotal > c.lastSnapshot.ErrorsTotal {
		return true
	}

	// Print if connectivity changed
	if snapshot.Online != c.lastSnapshot.Online {
		return true
	}

	return false
}
