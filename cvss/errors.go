package cvss

import "errors"

// Error kinds surfaced by the engine. Callers match them with errors.Is; the
// wrapped message carries the offending metric name or value.
var (
	// ErrInvalidArgument reports a batch that is not a flat string-to-string
	// mapping of metric assignments.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownMetric reports a metric name outside the fixed table.
	ErrUnknownMetric = errors.New("unknown metric")

	// ErrInvalidValue reports a value outside the metric's allowed set.
	ErrInvalidValue = errors.New("invalid metric value")

	// ErrMissingMetric reports a score requested before every metric the
	// score depends on has been assigned.
	ErrMissingMetric = errors.New("missing metric")
)
