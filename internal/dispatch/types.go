package dispatch

import (
	"context"
	"time"
)

// Content is one fully composed alert.
//
// Correlation is an opaque per-cycle token used to join log lines, the
// notification body and the webhook payload; it has no effect on delivery.
type Content struct {
	Subject  string
	TextBody string
	HTMLBody string

	Service     string
	Hostname    string
	Status      string
	IsActive    bool
	Recovery    bool
	Correlation string
	At          time.Time
}

// Transport sends one alert. Implementations must be safe for sequential
// reuse; the dispatcher never calls Send concurrently.
type Transport interface {
	Name() string
	Send(ctx context.Context, c Content) error
}

// Config controls retry behavior.
//
// The delay after the i-th failed attempt (zero-based) is
// RetryBase * 2^i, unbounded. RatePerSec throttles attempts with a token
// bucket; 0 disables throttling.
type Config struct {
	RetryMax   int
	RetryBase  time.Duration
	RatePerSec int
}
