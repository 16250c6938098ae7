package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"artmuseum/internal/config"
	"artmuseum/internal/db"
	"artmuseum/internal/log"
	"artmuseum/internal/metrics"
	"artmuseum/internal/migration"
)

const (
	configFlag = "config"
	stepFlag   = "step"
)

var mongoFlags = map[string]cobraflags.Flag{
	configFlag: &cobraflags.StringFlag{
		Name:  configFlag,
		Value: "",
		Usage: "Config file (defaults to CONFIG_FILE, then environment only)",
	},
}

var neo4jFlags = map[string]cobraflags.Flag{
	configFlag: &cobraflags.StringFlag{
		Name:  configFlag,
		Value: "",
		Usage: "Config file (defaults to CONFIG_FILE, then environment only)",
	},
	stepFlag: &cobraflags.StringFlag{
		Name:  stepFlag,
		Value: string(migration.StepAll),
		Usage: "Phases to run: nodes, relationships or all",
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "migrate",
		Short: "Copy the relational museum catalog into MongoDB or Neo4j",
		Long: `Copy the relational museum catalog into one of the other backends.

Available subcommands:
  mongo   - insert every table into its document collection (not idempotent)
  neo4j   - merge nodes and relationships into the graph (re-runnable)`,
		SilenceUsage: true,
	}
	root.AddCommand(newMongoCommand(), newNeo4jCommand())
	return root
}

func newMongoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mongo",
		Short: "Copy every relational table into MongoDB",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, source, err := setup(mongoFlags[configFlag].GetString())
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			mdb, err := db.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
			if err != nil {
				logger.Error().Err(err).Msg("mongo connect failed")
				return err
			}
			defer func() { _ = mdb.Client().Disconnect(context.Background()) }()

			counts, err := migration.NewDocumentCopier(source, migration.NewMongoWriter(mdb), logger, metrics.New()).Run(ctx)
			logger.Info().Interface("counts", counts).Msg("mongo copy finished")
			return err
		},
	}
	cobraflags.RegisterMap(cmd, mongoFlags)
	return cmd
}

func newNeo4jCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "neo4j",
		Short: "Merge the relational catalog into Neo4j",
		RunE: func(cmd *cobra.Command, _ []string) error {
			step, err := migration.ParseStep(neo4jFlags[stepFlag].GetString())
			if err != nil {
				return err
			}
			cfg, logger, source, err := setup(neo4jFlags[configFlag].GetString())
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			graph, err := db.NewNeo4j(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase)
			if err != nil {
				logger.Error().Err(err).Msg("neo4j connect failed")
				return err
			}
			defer func() { _ = graph.Close(context.Background()) }()

			counts, err := migration.NewGraphCopier(source, graph, logger, metrics.New()).Run(ctx, step)
			logger.Info().Str("step", string(step)).Interface("counts", counts).Msg("neo4j merge finished")
			return err
		},
	}
	cobraflags.RegisterMap(cmd, neo4jFlags)
	return cmd
}

func setup(configPath string) (*config.Config, log.Logger, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, log.Logger{}, nil, err
	}
	logger, err := log.NewLogger(cfg.LogLevel, cfg.LogOutput)
	if err != nil {
		return nil, log.Logger{}, nil, fmt.Errorf("logger: %w", err)
	}

	logger.Info().Str("dsn", db.MaskDSN(cfg.MySQLDSN)).Msg("reading relational catalog")
	source, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Error().Err(err).Msg("mysql connect failed")
		return nil, log.Logger{}, nil, err
	}
	return cfg, logger, source, nil
}
