package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oncoseed/internal/checkpoint"
	"github.com/oncoseed/internal/config"
	"github.com/oncoseed/internal/constraint"
	"github.com/oncoseed/internal/gateway"
	"github.com/oncoseed/internal/generator"
	"github.com/oncoseed/internal/pipeline"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		patients          int
		baseURL           string
		seed              int64
		fromStage         string
		checkpointBackend string
		checkpointDir     string
	)

	cmd := &cobra.Command{
		Use:   "oncoseed",
		Short: "Generate and load a synthetic clinical genomics dataset",
		Long: `oncoseed synthesizes an internally consistent oncology dataset (patients,
diagnoses, samples, sequencing runs, variant calling jobs, variants,
interpretations, therapy recommendations, and follow-ups) and loads it into
a running oncology service over HTTP. Each stage is checkpointed, so an
interrupted run can resume from any stage with --from-stage.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configManager, err := config.NewManager()
			if err != nil {
				return err
			}
			cfg := configManager.GetConfig()

			// Flags override file and environment configuration.
			if cmd.Flags().Changed("patients") {
				cfg.Generate.Patients = patients
			}
			if cmd.Flags().Changed("base-url") {
				cfg.Service.BaseURL = baseURL
			}
			if cmd.Flags().Changed("seed") {
				cfg.Generate.Seed = seed
			}
			if cmd.Flags().Changed("checkpoint-backend") {
				cfg.Checkpoint.Backend = checkpointBackend
			}
			if cmd.Flags().Changed("checkpoint-dir") {
				cfg.Checkpoint.Dir = checkpointDir
			}

			if err := configManager.Validate(); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigChan
				cancel()
			}()

			return run(ctx, cfg, fromStage)
		},
	}

	cmd.Flags().IntVar(&patients, "patients", 20, "number of patients to generate")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "base URL of the oncology service API")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses a time-based seed)")
	cmd.Flags().StringVar(&fromStage, "from-stage", "", "resume the pipeline from the named stage")
	cmd.Flags().StringVar(&checkpointBackend, "checkpoint-backend", "", "checkpoint backend: file, sqlite, postgres, or redis")
	cmd.Flags().StringVar(&checkpointDir, "checkpoint-dir", "", "directory for file and sqlite checkpoints")

	return cmd
}

func run(ctx context.Context, cfg *config.Config, fromStage string) error {
	logger := newLogger(cfg.Logging)

	store, err := newStore(ctx, cfg.Checkpoint)
	if err != nil {
		return fmt.Errorf("checkpoint store: %w", err)
	}
	defer store.Close()

	gw, err := gateway.New(gateway.Config{
		BaseURL:       cfg.Service.BaseURL,
		Timeout:       cfg.Service.Timeout,
		HealthPath:    cfg.Service.HealthPath,
		ProbeInterval: cfg.Service.ProbeInterval,
		ProbeAttempts: cfg.Service.ProbeAttempts,
		RateLimit:     cfg.Service.RateLimit,
	}, logger)
	if err != nil {
		return err
	}

	engine := constraint.New(cfg.Generate.Seed)
	gen := generator.New(gw, engine, logger)

	summary, err := pipeline.New(gen, gw, store, logger).Run(ctx, pipeline.Options{
		Patients:             cfg.Generate.Patients,
		FromStage:            fromStage,
		InvalidateDownstream: cfg.Checkpoint.InvalidateDownstream,
	})
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"run_id":   summary.RunID,
		"created":  summary.Created,
		"failed":   summary.Failed,
		"duration": summary.Duration.String(),
	}).Info("Dataset load complete")
	return nil
}

func newLogger(cfg config.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

func newStore(ctx context.Context, cfg config.CheckpointConfig) (checkpoint.Store, error) {
	switch cfg.Backend {
	case "file":
		return checkpoint.NewFileStore(cfg.Dir)
	case "sqlite":
		return checkpoint.NewSQLiteStore(cfg.Dir + "/checkpoints.db")
	case "postgres":
		return checkpoint.NewPostgresStoreFromURL(cfg.PostgresURL)
	case "redis":
		return checkpoint.NewRedisStoreFromURL(ctx, cfg.RedisURL)
	default:
		return nil, fmt.Errorf("unknown checkpoint backend %q", cfg.Backend)
	}
}
