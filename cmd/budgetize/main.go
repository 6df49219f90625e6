package main

import (
	"context"
	"flag"
	"os"

	"budgetize/internal/amqp"
	"budgetize/internal/backend"
	"budgetize/internal/cli"
	"budgetize/internal/config"
	"budgetize/internal/core"
	"budgetize/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	periodFlag := flag.String("period", "", "budget period to run (YYYY-MM, default: current month)")
	flag.Parse()

	cfg := cli.LoadAndValidateConfig(logger)
	if *periodFlag != "" {
		cfg.Period = *periodFlag
	}
	period := cli.ResolvePeriod(logger, cfg)

	logger.Info("Starting budgetize run",
		"period", period.String(),
		"backend", cfg.DataBackend)

	ctx := context.Background()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	// AMQP is optional; without it the run completes locally and the sync
	// worker catches up on its next pass.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without sync", "error", err)
		} else {
			defer amqpClient.Close()
		}
	}

	defaults := defaultsLoader(cfg)
	service := services.NewPeriodService(result.Store, amqpClient, defaults, period)

	run, err := service.Run(ctx)
	if err != nil {
		logger.Error("Budgetize run failed", "period", period.String(), "error", err)
		os.Exit(1)
	}

	logger.Info("Budgetize run finished",
		"period", period.String(),
		"burndown_rows", len(run.Report.Rows),
		"accounts", len(run.Report.AccountNames),
		"budget_created", run.Created)
}

func defaultsLoader(cfg *config.Config) services.DefaultsLoader {
	if cfg.DefaultsFile == "" {
		return nil
	}
	if _, err := os.Stat(cfg.DefaultsFile); err != nil {
		return nil
	}
	path := cfg.DefaultsFile
	return func() (*core.MonthlyBudget, error) {
		return config.LoadBudgetDefaults(path)
	}
}
