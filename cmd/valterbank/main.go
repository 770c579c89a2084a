package main

import (
	"context"
	"errors"
	"os"

	"valterbank/internal/amqp"
	"valterbank/internal/bank"
	"valterbank/internal/cli"
	"valterbank/internal/core"
	applog "valterbank/internal/log"
	"valterbank/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg, applog.ComponentApp)

	logger.Info("Starting valterbank",
		applog.FieldOperation, applog.OpStartup,
		"bank", cfg.BankName,
		"default_overdraft", cfg.OverdraftLimit().StringFixed(2))

	b := bank.New(cfg.BankName, core.NewFactory(nil), cfg.OverdraftLimit())

	// Event publishing is optional; without AMQP the shell still works
	var publisher services.EventPublisher
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, cfg.AMQPRetries)
		if err != nil {
			logger.Error("Failed to initialize AMQP client, continuing without events",
				applog.FieldError, err.Error(),
				applog.FieldErrorType, applog.ErrorTypeNetwork)
		} else {
			publisher = amqpClient
			logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	cleanup := func() {
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				logger.Warn("Failed to close AMQP client", applog.FieldError, err.Error())
			}
		}
	}

	ctx, done := cli.GracefulShutdown(logger, cfg.ShutdownTimeout, cleanup)

	svc := services.NewLedgerService(b, publisher, logger)
	shell := cli.NewShell(svc, os.Stdin, os.Stdout, logger)

	shellErr := make(chan error, 1)
	go func() { shellErr <- shell.Run(ctx) }()

	select {
	case err := <-shellErr:
		cleanup()
		logger.Info("Session ended",
			applog.FieldOperation, applog.OpShutdown,
			"accounts_created", svc.TotalAccountsCreated())
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Shell failed", applog.FieldError, err.Error())
			os.Exit(1)
		}
	case <-ctx.Done():
		<-done
	}
}
