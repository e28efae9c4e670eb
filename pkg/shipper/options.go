package shipper

import (
	"errors"
	"time"
)

// Default tick intervals, applied when an Options field is left zero.
const (
	DefaultProbeInterval    = 1000 * time.Millisecond
	DefaultDispatchInterval = 1000 * time.Millisecond
)

// Configuration errors, surfaced synchronously from SetOptions and Run.
// Every other failure mode is contained inside the engine and reported
// through the telemetry channel only.
var (
	ErrMissingLogPath   = errors.New("backlog directory path is required")
	ErrMissingServerURL = errors.New("collector server URL is required")
	ErrNotConfigured    = errors.New("shipper has no options set")
)

// Options configures the engine. LogPath and ServerURL are required;
// the rest defaults. Options are replaced wholesale by each SetOptions
// call and are immutable once Run has started the timers.
type Options struct {
	LogPath          string        // backlog directory for offline events
	ServerURL        string        // HTTP collector address
	ProbeURL         string        // reachability probe target; defaults to ServerURL
	ProbeInterval    time.Duration // connectivity refresh period
	DispatchInterval time.Duration // queue drain period, one event per tick
}

func (o *Options) validate() error {
	if o.LogPath == "" {
		return ErrMissingLogPath
	}
	if o.ServerURL == "" {
		return ErrMissingServerURL
	}
	return nil
}

// withDefaults returns a copy with zero optional fields filled in.
func (o Options) withDefaults() Options {
	if o.ProbeURL == "" {
		o.ProbeURL = o.ServerURL
	}
	if o.ProbeInterval <= 0 {
		o.ProbeInterval = DefaultProbeInterval
	}
	if o.DispatchInterval <= 0 {
		o.DispatchInterval = DefaultDispatchInterval
	}
	return o
}
