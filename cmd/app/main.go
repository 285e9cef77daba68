package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fooddelivery/cmd"
	"fooddelivery/internal/adapters/out/kafka"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/core/domain/model/worker"
	"fooddelivery/internal/pkg/auth"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var envFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "delivery",
		Short: "Order visibility and status updates for delivery workers",
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	rootCmd.AddCommand(serveCmd(), migrateCmd(), tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func getConfigs() cmd.Config {
	configs, err := cmd.LoadConfig(envFile)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	return configs
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the order events relay",
		RunE: func(_ *cobra.Command, _ []string) error {
			configs := getConfigs()
			if err := configs.Validate(); err != nil {
				return err
			}

			gormDB := mustGormOpen(configs.DSN())
			logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

			app := cmd.NewCompositionRoot(configs, gormDB, logger)

			if configs.KafkaHost != "" {
				producer, err := kafka.NewOrderEventsProducer(configs.KafkaHost, configs.KafkaOrderChangedTopic)
				if err != nil {
					return err
				}
				defer producer.Close()

				jobManager := app.CreateJobManager(producer)
				if err := jobManager.StartAll(); err != nil {
					return err
				}
				defer jobManager.StopAll()
			} else {
				log.Warn("KAFKA_HOST is not set, order events stay in the outbox")
			}

			startWebServer(app, configs)
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			configs := getConfigs()
			if err := postgres.Migrate(mustGormOpen(configs.DSN())); err != nil {
				return err
			}
			log.Info("Migrations applied")
			return nil
		},
	}
}

func tokenCmd() *cobra.Command {
	var (
		role string
		ttl  time.Duration
	)
	c := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue a bearer token for local testing",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			configs := getConfigs()
			token, err := auth.IssueToken(configs.JWTSecret, args[0], role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(command.OutOrStdout(), token)
			return nil
		},
	}
	c.Flags().StringVar(&role, "role", worker.Role, "role claim")
	c.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return c
}

func mustGormOpen(dsn string) *gorm.DB {
	gormDB, err := gorm.Open(gorm_postgres.New(gorm_postgres.Config{DSN: dsn}), &gorm.Config{})
	if err != nil {
		log.Fatalf("connection to postgres through gorm\n: %s", err)
	}
	return gormDB
}

func startWebServer(app cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()
	if err := app.CreateHTTPServer().Register(e, configs.JWTSecret); err != nil {
		log.Fatalf("Error registering routes: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
