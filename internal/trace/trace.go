package trace

import "go.uber.org/zap"

// Recorder receives structured decision events from the pipeline components
// (which matcher fired, which builder branch won). Implementations must be
// safe for concurrent use by unrelated conversations.
type Recorder interface {
	Event(name string, fields map[string]interface{})
}

type zapRecorder struct {
	l *zap.Logger
}

// NewZapRecorder emits decision events on a zap logger at debug level.
func NewZapRecorder(l *zap.Logger) Recorder {
	return &zapRecorder{l: l}
}

func (r *zapRecorder) Event(name string, fields map[string]interface{}) {
	zf := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	r.l.Debug(name, zf...)
}

type nopRecorder struct{}

// NewNopRecorder discards all events.
func NewNopRecorder() Recorder { return nopRecorder{} }

func (nopRecorder) Event(string, map[string]interface{}) {}
