package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/sms-smoke/internal/config"
	"github.com/example/sms-smoke/internal/logger"
	"github.com/example/sms-smoke/internal/notifier"
	"github.com/example/sms-smoke/internal/providers/factory"
	"github.com/example/sms-smoke/internal/report"
	"github.com/example/sms-smoke/internal/util"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run sends one test SMS and returns the process exit code.
func run(ctx context.Context, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}

	base, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialise logger: %v\n", err)
		return 1
	}
	log, runID := logger.WithRunID(*base)

	printer := report.NewPrinter(stdout, stderr)
	printer.Config(cfg.Twilio)

	if missing := cfg.Twilio.Missing(); len(missing) > 0 {
		log.Warn().Strs("missing", missing).Msg("twilio configuration incomplete; request will likely fail")
	}
	for field, value := range map[string]string{"from": cfg.Twilio.FromNumber, "to": cfg.Twilio.ToNumber} {
		if value == "" {
			continue
		}
		if _, err := util.NormalizeE164(value); err != nil {
			log.Warn().Str("field", field).Err(err).Msg("address is not e164")
		}
	}

	provider, err := factory.SMS(cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialise sms provider")
		return 1
	}

	n, err := notifier.New(provider, notifier.Message{
		From: cfg.Twilio.FromNumber,
		To:   cfg.Twilio.ToNumber,
		Body: cfg.Message.Body,
	}, log, notifier.WithMessageID(runID))
	if err != nil {
		log.Error().Err(err).Msg("failed to initialise notifier")
		return 1
	}

	result := n.SendMessage(ctx)
	printer.Result(result)

	if result.Kind() != notifier.OutcomeSent {
		return 1
	}
	return 0
}
