// Package obslog is the structured-logging sink used by every extraction
// component. It mirrors the shape the teacher's internal/metadata.Recorder
// was heading towards (RecordFetch/RecordError observability hooks) but
// backs it with a real structured logger instead of an empty struct.
package obslog

import (
	"time"

	"go.uber.org/zap"
)

// Cause is a closed, canonical classification used exclusively for
// observability (logging, metrics, reporting). It must never be used to
// derive retry, continuation, or abort decisions — pipeline packages map
// their local failure.Kind onto a Cause for logging only.
type Cause int

const (
	CauseUnknown Cause = iota
	CauseNetworkFailure
	CauseContentInvalid
	CauseSelectorFailure
	CauseConfigInvalid
	CauseInvariantViolation
)

func (c Cause) String() string {
	switch c {
	case CauseNetworkFailure:
		return "network_failure"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseSelectorFailure:
		return "selector_failure"
	case CauseConfigInvalid:
		return "config_invalid"
	case CauseInvariantViolation:
		return "invariant_violation"
	default:
		return "unknown"
	}
}

// AttributeKey names a structured logging field. Kept as a closed set so
// call sites can't accidentally fragment field names across packages.
type AttributeKey string

const (
	AttrURL        AttributeKey = "url"
	AttrHost       AttributeKey = "host"
	AttrPage       AttributeKey = "page"
	AttrSelector   AttributeKey = "selector"
	AttrField      AttributeKey = "field"
	AttrHTTPStatus AttributeKey = "http_status"
	AttrAttempt    AttributeKey = "attempt"
)

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{Key: key, Value: val}
}

// Sink is the logging boundary every component depends on. Components
// never touch *zap.Logger directly; this keeps the extraction packages
// free of a hard dependency on the logging implementation.
type Sink interface {
	RecordFetch(fetchURL string, httpStatus int, duration time.Duration, attempt int)
	RecordRetry(fetchURL string, attempt int, cause Cause, details string)
	RecordExtraction(host string, page int, bodyLength int, strategy string)
	RecordError(packageName string, action string, cause Cause, details string, attrs []Attribute)
}

// ZapSink is the default Sink, backed by a zap.Logger.
type ZapSink struct {
	logger *zap.Logger
}

func NewZapSink(logger *zap.Logger) *ZapSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapSink{logger: logger}
}

// NewNop returns a Sink that discards everything, for offline entry points
// and tests that don't care about logging.
func NewNop() *ZapSink {
	return NewZapSink(zap.NewNop())
}

func (s *ZapSink) RecordFetch(fetchURL string, httpStatus int, duration time.Duration, attempt int) {
	s.logger.Info("fetch",
		zap.String("url", fetchURL),
		zap.Int("http_status", httpStatus),
		zap.Duration("duration", duration),
		zap.Int("attempt", attempt),
	)
}

func (s *ZapSink) RecordRetry(fetchURL string, attempt int, cause Cause, details string) {
	s.logger.Warn("retry",
		zap.String("url", fetchURL),
		zap.Int("attempt", attempt),
		zap.String("cause", cause.String()),
		zap.String("details", details),
	)
}

func (s *ZapSink) RecordExtraction(host string, page int, bodyLength int, strategy string) {
	s.logger.Info("extraction",
		zap.String("host", host),
		zap.Int("page", page),
		zap.Int("body_length", bodyLength),
		zap.String("strategy", strategy),
	)
}

func (s *ZapSink) RecordError(packageName string, action string, cause Cause, details string, attrs []Attribute) {
	fields := make([]zap.Field, 0, len(attrs)+3)
	fields = append(fields,
		zap.String("package", packageName),
		zap.String("action", action),
		zap.String("cause", cause.String()),
	)
	for _, a := range attrs {
		fields = append(fields, zap.String(string(a.Key), a.Value))
	}
	s.logger.Error(details, fields...)
}
