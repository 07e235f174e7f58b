package audit

import "github.com/pkg/errors"

// Option configures a Scanner.
type Option func(s *Scanner) error

// WithProgress installs a sink that is notified after every sampled
// block has been fully resolved. The sink is advisory: it never
// affects scan results or ordering.
func WithProgress(sink ProgressSink) Option {
	return func(s *Scanner) error {
		if sink == nil {
			return errors.New("nil progress sink")
		}
		s.progress = sink
		return nil
	}
}

// WithConcurrentSlotReads queries all slots of a sampled block
// concurrently instead of one at a time. Results are still recorded in
// slot order, and a failed read never cancels its siblings.
func WithConcurrentSlotReads(enabled bool) Option {
	return func(s *Scanner) error {
		s.concurrent = enabled
		return nil
	}
}
