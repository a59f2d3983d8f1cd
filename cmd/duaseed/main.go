// Command duaseed loads the site configuration, connects to MongoDB and
// seeds an empty database with the first admin and starter content.
//
// With seed_reset=true (DUASITE_SEED_RESET or --seed_reset) it clears every
// content collection first.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dalemusser/duasite/internal/app/bootstrap"
	"github.com/dalemusser/duasite/internal/app/system/seed"
	"github.com/dalemusser/duasite/internal/app/system/timeouts"
	"github.com/fatih/color"
	"go.uber.org/zap"
)

var (
	ok   = color.New(color.FgGreen, color.Bold).SprintFunc()
	warn = color.New(color.FgYellow).SprintFunc()
	bad  = color.New(color.FgRed, color.Bold).SprintFunc()
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, bad("logger:"), err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger); err != nil {
		fmt.Fprintln(os.Stderr, bad("seed failed:"), err)
		os.Exit(1)
	}
}

func run(logger *zap.Logger) error {
	coreCfg, appCfg, err := bootstrap.LoadConfig(logger)
	if err != nil {
		return err
	}
	if err := bootstrap.ValidateConfig(coreCfg, appCfg, logger); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Long())
	defer cancel()

	deps, err := bootstrap.ConnectDB(ctx, coreCfg, appCfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = deps.MongoClient.Disconnect(context.Background()) }()

	if err := bootstrap.EnsureSchema(ctx, coreCfg, appCfg, deps, logger); err != nil {
		return err
	}

	if appCfg.SeedReset {
		fmt.Println(warn("clearing content collections in"), appCfg.MongoDatabase)
		if err := seed.Reset(ctx, deps.MongoDatabase, logger); err != nil {
			return err
		}
	}

	counts, err := seed.Run(ctx, deps.MongoDatabase, seed.Options{
		AdminEmail:    appCfg.AdminEmail,
		AdminPassword: appCfg.AdminPassword,
	}, logger)
	if errors.Is(err, seed.ErrAlreadySeeded) {
		fmt.Println(warn("an admin already exists; nothing seeded (use seed_reset=true to start over)"))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(ok("database seeded"))
	fmt.Printf("  admin:            %s\n", appCfg.AdminEmail)
	fmt.Printf("  team members:     %d\n", counts.TeamMembers)
	fmt.Printf("  advisors:         %d\n", counts.Advisors)
	fmt.Printf("  partners:         %d\n", counts.Partners)
	fmt.Printf("  initiatives:      %d\n", counts.Initiatives)
	fmt.Printf("  impact stats:     %d\n", counts.ImpactStats)
	fmt.Printf("  donation options: %d\n", counts.DonationOptions)
	return nil
}
