package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arxos/geoplan/internal/config"
	"github.com/arxos/geoplan/internal/entity"
	"github.com/arxos/geoplan/internal/obslog"
	"github.com/arxos/geoplan/internal/pipeline"
	"github.com/arxos/geoplan/internal/sink"
)

var runCmd = newRunCmd()

// newRunCmd builds the run subcommand fresh each call so tests can invoke
// the command repeatedly without flag state leaking between invocations.
func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <input-document>",
		Short: "Run the geometry pipeline against an extracted drawing document",
		Long: `run loads an extracted drawing document (the JSON layer/entity format
section 3 of the spec describes), runs all eleven pipeline stages against
it, and prints the resulting run report.

The sink artifacts land in Postgres when --sink-dsn (or GEOPLAN_SINK_DSN)
is set; otherwise they're held in memory for the duration of the run and
discarded, which is the right default for a dry run.`,
		Args: cobra.ExactArgs(1),
		RunE: runPipeline,
	}

	cmd.Flags().StringSlice("layers", nil, "layer names to extract (required, comma-separated or repeated)")
	cmd.Flags().String("job-id", "", "job identifier under which artifacts are persisted (default: derived from input filename)")
	cmd.Flags().String("config", "", "path to a YAML config file")
	cmd.Flags().String("sink-dsn", "", "Postgres DSN to persist artifacts to (overrides GEOPLAN_SINK_DSN, default: in-memory)")
	cmd.Flags().String("log-level", "", "log level: debug, info, warn, error (overrides config)")
	return cmd
}

func runPipeline(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}

	logger, err := obslog.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	layers, _ := cmd.Flags().GetStringSlice("layers")
	if len(layers) == 0 {
		return fmt.Errorf("at least one --layers value is required")
	}

	jobID, _ := cmd.Flags().GetString("job-id")
	if jobID == "" {
		base := filepath.Base(inputPath)
		jobID = strings.TrimSuffix(base, filepath.Ext(base))
	}

	document, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	dsn, _ := cmd.Flags().GetString("sink-dsn")
	if dsn == "" {
		dsn = cfg.SinkDSN
	}

	artifactSink, err := buildSink(dsn)
	if err != nil {
		return fmt.Errorf("building artifact sink: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	executor := pipeline.NewExecutor(artifactSink, logger, cfg.Algorithm)
	bundle := entity.NewBundle(document, layers)

	_, report, runErr := executor.Run(ctx, jobID, bundle)

	encoded, encodeErr := json.MarshalIndent(report, "", "  ")
	if encodeErr == nil {
		fmt.Println(string(encoded))
	}

	if runErr != nil {
		return fmt.Errorf("pipeline run failed at stage %s: %w", report.FailedStage, runErr)
	}
	return nil
}

// buildSink picks the artifact sink a run writes to: Postgres when a DSN
// is configured, otherwise an in-memory sink whose contents never outlive
// the process.
func buildSink(dsn string) (sink.ArtifactSink, error) {
	if dsn == "" {
		return sink.NewMemorySink(), nil
	}
	return sink.NewPostgresSink(dsn)
}
