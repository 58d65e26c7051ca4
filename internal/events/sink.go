package events

import (
	"go.uber.org/zap"

	"github.com/gaffar273/Decentralized-Exchange-DEX/internal/model"
)

// Sink consumes domain events emitted by the pool registry.
type Sink interface {
	Publish(event model.Event) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Publish(model.Event) error { return nil }

// ZapSink logs events through a structured logger.
type ZapSink struct {
	logger *zap.Logger
}

func NewZapSink(logger *zap.Logger) *ZapSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapSink{logger: logger}
}

func (s *ZapSink) Publish(event model.Event) error {
	s.logger.Info("event",
		zap.String("name", event.Name),
		zap.String("pool_key", event.PoolKey),
		zap.Any("decoded", event.Decoded),
	)
	return nil
}

// MultiSink fans out each event to every underlying sink, returning the
// first error after all sinks have been attempted.
type MultiSink struct {
	sinks []Sink
}

func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) Publish(event model.Event) error {
	var firstErr error
	for _, s := range m.sinks {
		if err := s.Publish(event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
