package dispatch

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	logx "svcmon/pkg/logx"
)

// Dispatcher drives the primary transport with retries, then fires the
// optional webhook regardless of the primary outcome.
type Dispatcher struct {
	transport Transport
	webhook   *Webhook
	log       logx.Logger

	cfg     Config
	limiter *rate.Limiter

	// sleep is swappable so tests can observe backoff delays.
	sleep func(ctx context.Context, d time.Duration) error
}

func New(cfg Config, transport Transport, webhook *Webhook, log logx.Logger) *Dispatcher {
	if cfg.RetryMax <= 0 {
		cfg.RetryMax = 3
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = 5 * time.Second
	}
	if log.IsZero() {
		log = logx.Nop()
	}

	d := &Dispatcher{
		transport: transport,
		webhook:   webhook,
		log:       log,
		cfg:       cfg,
		sleep:     sleepCtx,
	}
	if cfg.RatePerSec > 0 {
		d.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RatePerSec)
	}
	return d
}

// Dispatch attempts primary delivery, then the webhook side channel.
// It reports whether the primary transport delivered; webhook failures are
// logged and otherwise invisible, by contract with the ledger bookkeeping.
func (d *Dispatcher) Dispatch(ctx context.Context, c Content) bool {
	delivered := d.sendWithRetry(ctx, c)

	if d.webhook != nil {
		if err := d.webhook.Send(ctx, c); err != nil {
			d.log.Error("webhook delivery failed",
				logx.String("correlation_id", c.Correlation), logx.Err(err))
		} else {
			d.log.Info("webhook delivered", logx.String("correlation_id", c.Correlation))
		}
	}

	return delivered
}

func (d *Dispatcher) sendWithRetry(ctx context.Context, c Content) bool {
	if d.transport == nil {
		return false
	}

	attempts := d.cfg.RetryMax
	for attempt := 0; attempt < attempts; attempt++ {
		if d.limiter != nil {
			if err := d.limiter.Wait(ctx); err != nil {
				return false
			}
		}

		err := d.transport.Send(ctx, c)
		if err == nil {
			d.log.Info("alert delivered",
				logx.String("transport", d.transport.Name()),
				logx.String("subject", c.Subject),
				logx.String("correlation_id", c.Correlation),
				logx.Int("attempt", attempt+1))
			return true
		}

		d.log.Error("alert send attempt failed",
			logx.String("transport", d.transport.Name()),
			logx.String("correlation_id", c.Correlation),
			logx.Int("attempt", attempt+1),
			logx.Int("max", attempts),
			logx.Err(err))

		if attempt >= attempts-1 {
			break
		}

		// Exponential growth with no cap: base, 2*base, 4*base, ...
		delay := d.cfg.RetryBase << uint(attempt)
		if err := d.sleep(ctx, delay); err != nil {
			return false
		}
	}
	return false
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
