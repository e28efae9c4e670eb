package testutil

import (
	"context"
	"sync"
)

// MockProbe implements connectivity.Probe with a switchable result.
type MockProbe struct {
	mu     sync.Mutex
	result bool
	err    error
	calls  int
}

func NewMockProbe(online bool) *MockProbe {
	return &MockProbe{result: online}
}

func (p *MockProbe) Check(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.result, p.err
}

// Set switches the probe result for subsequent checks.
func (p *MockProbe) Set(online bool, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.result = online
	p.err = err
}

// Calls returns how many times the probe was checked.
func (p *MockProbe) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
