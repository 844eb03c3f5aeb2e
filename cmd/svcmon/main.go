package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"svcmon/internal/config"
	"svcmon/internal/dispatch"
	"svcmon/internal/enrich"
	"svcmon/internal/ledger"
	"svcmon/internal/monitor"
	"svcmon/internal/probe"
	logx "svcmon/pkg/logx"
)

const version = "1.0.0"

func main() {
	var (
		cfgPath     string
		once        bool
		dryRun      bool
		debug       bool
		showVersion bool
	)
	flag.StringVar(&cfgPath, "config", "", "path to config file (yaml or json)")
	flag.BoolVar(&once, "once", false, "run a single check and exit")
	flag.BoolVar(&dryRun, "dry-run", false, "test mode - no alerts sent")
	flag.BoolVar(&debug, "debug", false, "enable debug logging")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println("svcmon v" + version)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	mgr := config.NewManager(cfgPath)
	cfg, err := mgr.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
	applyOverrides(cfg, dryRun, debug)

	logSvc, log := logx.New(loggingConfig(cfg))
	defer logSvc.Close()
	mgr.SetLogger(log)

	store, err := ledger.Open(ledgerConfig(cfg), log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
	defer store.Close()

	prober, err := probe.Open(probeConfig(cfg), log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}

	dispatcher, err := buildDispatcher(cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}

	opts, err := monitorOptions(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}

	mon := monitor.New(opts, store, prober, dispatcher, enrich.New(log), log)

	log.Info("svcmon starting",
		logx.String("version", version),
		logx.String("service", cfg.Monitoring.Service),
		logx.Bool("dry_run", cfg.Features.DryRun))

	if once {
		mon.RunOnce(ctx)
		return
	}

	// Hot reload: logging and monitoring knobs only. A transport or ledger
	// driver change needs a restart.
	go func() {
		err := mgr.Watch(ctx, func(next *config.Config) {
			applyOverrides(next, dryRun, debug)
			logSvc.Apply(loggingConfig(next))
			nextOpts, err := monitorOptions(next)
			if err != nil {
				log.Warn("config reload kept old monitor options", logx.Err(err))
				return
			}
			mon.Apply(nextOpts)
		})
		if err != nil {
			log.Warn("config watch unavailable", logx.Err(err))
		}
	}()

	mon.Run(ctx)
}

// applyOverrides pins command-line flags over anything the file or a reload
// says.
func applyOverrides(cfg *config.Config, dryRun, debug bool) {
	if dryRun {
		cfg.Features.DryRun = true
	}
	if debug {
		cfg.Logging.Level = "DEBUG"
		on := true
		cfg.Logging.Console = &on
	}
}

func loggingConfig(cfg *config.Config) logx.Config {
	console := true
	if cfg.Logging.Console != nil {
		console = *cfg.Logging.Console
	}
	syslog := false
	if cfg.Logging.Syslog != nil {
		syslog = *cfg.Logging.Syslog
	}
	return logx.Config{
		Level:   cfg.Logging.Level,
		Console: console,
		Syslog:  syslog,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	}
}

func ledgerConfig(cfg *config.Config) ledger.Config {
	busy, _ := config.ParseDurationField("ledger.busy_timeout", cfg.Ledger.BusyTimeout)
	return ledger.Config{
		Driver:      cfg.Ledger.Driver,
		Path:        cfg.Ledger.Path,
		BusyTimeout: busy,
	}
}

func probeConfig(cfg *config.Config) probe.Config {
	timeout, _ := config.ParseDurationOrDefault("probe.timeout", cfg.Probe.Timeout, 10*time.Second)
	return probe.Config{
		Driver:  cfg.Probe.Driver,
		Timeout: timeout,
	}
}

func buildDispatcher(cfg *config.Config, log logx.Logger) (*dispatch.Dispatcher, error) {
	var (
		transport dispatch.Transport
		err       error
	)
	switch {
	case cfg.Features.DryRun:
		transport = dispatch.NewDryRun(log)
	case cfg.Notify.Transport == "telegram":
		transport, err = dispatch.NewTelegram(dispatch.TelegramConfig{
			Token:  cfg.Telegram.Token,
			ChatID: cfg.Telegram.ChatID,
		})
		if err != nil {
			return nil, err
		}
	case cfg.Notify.Transport == "none":
		transport = dispatch.NewDryRun(log)
	default:
		timeout, _ := config.ParseDurationOrDefault("smtp.timeout", cfg.SMTP.Timeout, 30*time.Second)
		transport = dispatch.NewEmail(dispatch.EmailConfig{
			Server:   cfg.SMTP.Server,
			Port:     cfg.SMTP.Port,
			UseTLS:   cfg.SMTP.UseTLS,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			To:       cfg.SMTP.To,
			Timeout:  timeout,
		})
	}

	var webhook *dispatch.Webhook
	if cfg.Webhook.Enabled {
		timeout, _ := config.ParseDurationOrDefault("webhook.timeout", cfg.Webhook.Timeout, 30*time.Second)
		webhook = dispatch.NewWebhook(dispatch.WebhookConfig{
			URL:     cfg.Webhook.URL,
			Timeout: timeout,
			DryRun:  cfg.Features.DryRun,
		})
	}

	retryBase, _ := config.ParseDurationOrDefault("notify.retry_base", cfg.Notify.RetryBase, 5*time.Second)
	return dispatch.New(dispatch.Config{
		RetryMax:   cfg.Notify.RetryMax,
		RetryBase:  retryBase,
		RatePerSec: cfg.Notify.RatePerSec,
	}, transport, webhook, log), nil
}

func monitorOptions(cfg *config.Config) (monitor.Options, error) {
	sched, err := config.ParseSchedulable("monitoring.schedule", cfg.Monitoring.Schedule)
	if err != nil {
		return monitor.Options{}, err
	}
	cooldown, err := config.ParseDurationOrDefault("monitoring.cooldown", cfg.Monitoring.Cooldown, time.Hour)
	if err != nil {
		return monitor.Options{}, err
	}
	recovery, err := config.ParseDurationOrDefault("monitoring.recovery_delay", cfg.Monitoring.RecoveryDelay, time.Minute)
	if err != nil {
		return monitor.Options{}, err
	}
	return monitor.Options{
		Service:       cfg.Monitoring.Service,
		Schedule:      sched,
		Cooldown:      cooldown,
		RecoveryDelay: recovery,
		LogLines:      cfg.Monitoring.LogLines,
		Version:       version,
	}, nil
}
