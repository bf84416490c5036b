package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gi8lino/jirahook/internal/chat"
	"github.com/gi8lino/jirahook/internal/config"
	"github.com/gi8lino/jirahook/internal/flag"
	"github.com/gi8lino/jirahook/internal/logging"
	"github.com/gi8lino/jirahook/internal/notify"
	"github.com/gi8lino/jirahook/internal/server"
	"github.com/gi8lino/jirahook/internal/utils"

	"github.com/containeroo/tinyflags"
)

// Run starts the jirahook application.
func Run(ctx context.Context, version, commit string, args []string, w io.Writer, getEnv func(string) string) error {
	// Create a new context that listens for interrupt signals
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Parse command-line flags
	flags, err := flag.ParseArgs(version, args, w, getEnv)
	if err != nil {
		if tinyflags.IsHelpRequested(err) || tinyflags.IsVersionRequested(err) {
			fmt.Fprint(w, err.Error()) // nolint:errcheck
			return nil
		}
		return fmt.Errorf("parsing error: %w", err)
	}

	// Setup logger
	logger := logging.SetupLogger(flags.LogFormat, flags.Debug, w)

	logger.Info("Starting jirahook",
		"version", version,
		"commit", commit,
	)

	// Load config
	cfg, err := config.LoadConfig(flags.Config)
	if err != nil {
		return fmt.Errorf("loading config error: %w", err)
	}

	// Validate config
	if err := config.ValidateConfig(&cfg); err != nil {
		return fmt.Errorf("validating config error: %w", err)
	}

	builder := notify.NewBuilder(notifyOptions(cfg.Notify), logger)

	// Setup chat client; without a webhook URL messages are only returned to the caller
	var poster chat.Poster
	if cfg.Chat.Forwarding() {
		c, err := chat.NewClient(cfg.Chat.WebhookURL, cfg.Chat.Timeout, *cfg.Chat.SkipTLSVerify)
		if err != nil {
			return fmt.Errorf("chat client error: %w", err)
		}
		poster = c
	}

	logger.Debug("notification settings",
		"blockerOnly", *cfg.Notify.BlockerOnly,
		"showDescription", *cfg.Notify.ShowDescription,
		"descriptionMaxLength", cfg.Notify.DescriptionMaxLength,
		"chat", utils.ObfuscateURL(cfg.Chat.WebhookURL),
	)

	// Setup Server and run forever
	router := server.NewRouter(builder, poster, logger, flags.RoutePrefix, flags.Debug)
	if err := server.RunHTTPServer(ctx, router, flags.ListenAddr, logger); err != nil {
		logger.Error("HTTP server exited with error", "error", err)
		return err
	}

	return nil
}

// notifyOptions converts the validated config section into builder options.
func notifyOptions(n config.Notify) notify.Options {
	return notify.Options{
		BlockerOnly:          *n.BlockerOnly,
		ShowDescription:      *n.ShowDescription,
		DebugOnChannel:       n.DebugOnChannel,
		DebugOnLog:           n.DebugOnLog,
		DescriptionMaxLength: n.DescriptionMaxLength,
	}
}
