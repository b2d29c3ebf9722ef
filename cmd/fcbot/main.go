package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"fcbot/bot"
	"fcbot/bot/features/buffs"
	"fcbot/bot/features/managerutils"
	"fcbot/config"
	"fcbot/database"
	"fcbot/domain/services"
	"fcbot/repository"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Optional .env for local development; production sets real env vars
	if err := godotenv.Load(); err == nil {
		log.Info("Loaded configuration from .env")
	}

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := handleMigrationCommand(); err != nil {
			log.Fatalf("Migration error: %v", err)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	if err := run(ctx); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg := config.Get()

	if err := database.MigrateUp(cfg.GetDatabaseURL()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	client, err := bot.New(bot.Config{Token: cfg.DiscordToken})
	if err != nil {
		return fmt.Errorf("failed to create bot client: %w", err)
	}

	buffConfigs := repository.NewBuffConfigRepository(db)
	managerConfigs := repository.NewManagerConfigRepository(db)
	transport := client.Transport()

	schedule := services.NewBuffScheduleService(buffConfigs)
	moderation := services.NewModerationService(managerConfigs, transport)

	buffsFeature := buffs.NewFeature(schedule, buffConfigs, transport)
	managerFeature := managerutils.NewFeature(moderation, managerConfigs)

	if err := client.Register(buffsFeature.Module()); err != nil {
		return fmt.Errorf("failed to register buffs module: %w", err)
	}
	if err := client.Register(managerFeature.Module()); err != nil {
		return fmt.Errorf("failed to register manager utils module: %w", err)
	}

	if err := client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start bot: %w", err)
	}
	defer client.Close()

	<-ctx.Done()
	log.Info("Shutdown complete")
	return nil
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: fcbot migrate [up|down|status] [args...]")
	}

	databaseURL := config.Get().GetDatabaseURL()

	switch os.Args[2] {
	case "up":
		return database.MigrateUp(databaseURL)
	case "down":
		steps := 1
		if len(os.Args) > 3 {
			parsed, err := strconv.Atoi(os.Args[3])
			if err != nil {
				return fmt.Errorf("invalid step count %q", os.Args[3])
			}
			steps = parsed
		}
		return database.MigrateDown(databaseURL, steps)
	case "status":
		return database.MigrateStatus(databaseURL)
	default:
		return fmt.Errorf("unknown migration command: %s", os.Args[2])
	}
}
