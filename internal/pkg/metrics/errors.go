package metrics

import "errors"

var (
	// ErrPushgatewayURLRequired is returned when metrics are enabled without a
	// Pushgateway URL.
	ErrPushgatewayURLRequired = errors.New("pushgateway URL is required when metrics enabled")

	// ErrPushgatewayURLInvalid is returned for a malformed Pushgateway URL.
	ErrPushgatewayURLInvalid = errors.New("pushgateway URL has invalid format")

	// ErrJobNameRequired is returned when the job name is empty.
	ErrJobNameRequired = errors.New("job name is required")

	// ErrInvalidTimeout is returned for a non-positive push timeout.
	ErrInvalidTimeout = errors.New("timeout must be positive")
)
