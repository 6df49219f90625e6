// budget-init seeds a period in the local store: the reporting window, a
// budget snapshot bootstrapped from the defaults file and, when a seed
// directory is configured, the period's form rows (balances, transactions,
// recurring rules, total groups, actuals) copied from seed files. Run it
// once at the start of a month; budgetize runs then reconcile against the
// snapshot.
package main

import (
	"context"
	"flag"
	"os"

	"budgetize/internal/cli"
	"budgetize/internal/config"
	"budgetize/internal/core"
	"budgetize/internal/tabular/memory"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	periodFlag := flag.String("period", "", "budget period to seed (YYYY-MM, default: current month)")
	startFlag := flag.String("start", "", "reporting window start (MM/DD/YY, default: first of the month)")
	endFlag := flag.String("end", "", "reporting window end (MM/DD/YY, default: last of the month)")
	seedFlag := flag.String("seed", "", "directory of seed files to copy into the period (default: MEMORY_SEED_DIR)")
	force := flag.Bool("force", false, "overwrite an existing budget snapshot")
	flag.Parse()

	cfg := cli.LoadAndValidateConfig(logger)
	if *periodFlag != "" {
		cfg.Period = *periodFlag
	}
	period := cli.ResolvePeriod(logger, cfg)

	start := core.NewDate(period.Year, period.Month, 1)
	end := core.NewDate(period.Year, period.Month, core.DaysInMonth(period.Year, period.Month))
	var err error
	if *startFlag != "" {
		if start, err = core.ParseDate(*startFlag); err != nil {
			logger.Error("Invalid window start", "start", *startFlag, "error", err)
			os.Exit(1)
		}
	}
	if *endFlag != "" {
		if end, err = core.ParseDate(*endFlag); err != nil {
			logger.Error("Invalid window end", "end", *endFlag, "error", err)
			os.Exit(1)
		}
	}

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath, period)
	defer repo.Close()

	ctx := context.Background()

	if err := repo.EnsurePeriod(ctx, start, end); err != nil {
		logger.Error("Failed to record period window", "error", err)
		os.Exit(1)
	}

	seedDir := cfg.SeedDir
	if *seedFlag != "" {
		seedDir = *seedFlag
	}
	if seedDir != "" {
		if err := repo.Seed(ctx, memory.NewFromFiles(seedDir)); err != nil {
			logger.Error("Failed to seed period from files", "dir", seedDir, "error", err)
			os.Exit(1)
		}
		// Explicit window flags win over the seed files' balance header.
		if *startFlag != "" || *endFlag != "" {
			if err := repo.EnsurePeriod(ctx, start, end); err != nil {
				logger.Error("Failed to record period window", "error", err)
				os.Exit(1)
			}
		}
	}

	if _, exists, err := repo.ReadBudget(ctx, period); err != nil {
		logger.Error("Failed to read existing snapshot", "error", err)
		os.Exit(1)
	} else if exists && !*force {
		logger.Info("Budget snapshot already exists, leaving it alone (use -force to overwrite)",
			"period", period.String())
		return
	}

	budget, err := config.LoadBudgetDefaults(cfg.DefaultsFile)
	if err != nil {
		logger.Error("Failed to load budget defaults", "file", cfg.DefaultsFile, "error", err)
		os.Exit(1)
	}

	if err := repo.WriteBudget(ctx, period, budget); err != nil {
		logger.Error("Failed to write budget snapshot", "error", err)
		os.Exit(1)
	}

	logger.Info("Period seeded",
		"period", period.String(),
		"window_start", start.Format(),
		"window_end", end.Format(),
		"sections", len(budget.Sections),
		"incomes", len(budget.Incomes))
}
