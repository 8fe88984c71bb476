package provider

import (
	"context"
	"io"
	"sync"

	marketdata "main/internal/domain/entity/marketdata"

	"github.com/sirupsen/logrus"
)

// capturePublisher records every canonical event an adapter emits.
type capturePublisher struct {
	mu     sync.Mutex
	events []marketdata.Event
}

func (p *capturePublisher) Publish(_ context.Context, event marketdata.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *capturePublisher) Events() []marketdata.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]marketdata.Event, len(p.events))
	copy(out, p.events)
	return out
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
