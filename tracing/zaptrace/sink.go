// Package zaptrace implements layer7.TraceSink on top of zap, rate-limited
// so a noisy chain (many NoMatch/NeedMoreData events per connection) can't
// flood the logs.
package zaptrace

import (
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/divyam234/protosniff/layer7"
)

// Sink logs one entry per detector attempt at Debug level, and Match
// outcomes at Info level. Its rate limiter is shared across all events; a
// caller wanting per-outcome limits can wrap multiple Sinks behind its own
// TraceSink.
type Sink struct {
	log     *zap.Logger
	limiter *rate.Limiter
}

// New returns a Sink backed by log, allowing burst events immediately and
// refilling at rate events/sec thereafter. A nil log falls back to
// zap.NewNop(), so New(nil, ...) yields a harmless, silent Sink.
func New(log *zap.Logger, eventsPerSecond float64, burst int) *Sink {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sink{
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(eventsPerSecond), burst),
	}
}

// Trace implements layer7.TraceSink.
func (s *Sink) Trace(ev layer7.TraceEvent) {
	if !s.limiter.Allow() {
		return
	}
	fields := []zap.Field{
		zap.Stringer("detector", ev.Detector),
		zap.Stringer("status", ev.Outcome.Status),
	}
	if ev.Outcome.Status == layer7.StatusMatch {
		fields = append(fields, zap.Stringer("protocol", ev.Outcome.Protocol))
		s.log.Info("detector matched", fields...)
		return
	}
	s.log.Debug("detector attempt", fields...)
}
