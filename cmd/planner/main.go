package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"survey-route-service/internal/adapters/locations"
	"survey-route-service/internal/adapters/metrics"
	"survey-route-service/internal/adapters/region"
	"survey-route-service/internal/domain"
	"survey-route-service/internal/platform/db"
	"survey-route-service/internal/platform/obs"
	"survey-route-service/internal/ports"
	"survey-route-service/internal/services"
)

// main is the planner composition root. It wires the CSV site source, the
// table-backed region classifier and the metric sinks behind ports, runs the
// selected routing strategy over the loaded sites, validates the result and
// persists the run's diagnostics.
func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("no .env file found (using environment variables)")
	}

	if err := run(logger); err != nil {
		logger.Fatal().Err(err).Msg("planner failed")
	}
}

func run(logger zerolog.Logger) error {
	locationsPath := os.Getenv("LOCATIONS_PATH")
	if locationsPath == "" {
		return fmt.Errorf("LOCATIONS_PATH is required")
	}

	diagsDir := getEnv("DIAGS_DIR", "diags")
	strategy := getEnv("STRATEGY", "greedy")
	optimize := getEnvBool("OPTIMIZE", true)
	clusterCount := getEnvInt("CLUSTER_COUNT", services.DefaultClusterCount)
	clusterMax := getEnvInt("CLUSTER_MAX", clusterCount)
	seed := int64(getEnvInt("KMEANS_SEED", 42))
	workers := getEnvInt("WORKERS", 0)
	runID := getEnv("RUN_ID", time.Now().UTC().Format("20060102T150405Z"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder := obs.NewRecorder(logger)

	source := locations.NewCSVSource(locationsPath)
	if col := os.Getenv("REGION_COLUMN"); col != "" {
		source.RegionColumn = col
	}

	var sites []ports.Site
	err := recorder.Phase("load locations", func() error {
		var loadErr error
		sites, loadErr = source.LoadSites(ctx)
		return loadErr
	})
	if err != nil {
		return err
	}
	logger.Info().Int("sites", len(sites)).Str("path", locationsPath).Msg("locations loaded")

	points := make([]domain.Coordinate, 0, len(sites))
	for _, s := range sites {
		points = append(points, s.Coordinate)
	}
	classifier := region.NewTableClassifier(sites)

	var index domain.DistanceIndex
	_ = recorder.Phase("calculate distances", func() error {
		index = services.BuildDistanceIndex(points, services.GreatCircle, workers)
		return nil
	})
	logger.Info().Int("points", len(index)).Msg("distance index built")

	var route domain.Route
	err = recorder.Phase("calculate route", func() error {
		var routeErr error
		route, routeErr = buildRoute(ctx, logger, strategy, optimize, clusterCount, clusterMax, seed, workers, points, index, classifier)
		return routeErr
	})
	if err != nil {
		return err
	}
	logger.Info().
		Int("steps", len(route.Steps)).
		Float64("total_distance_feet", route.TotalDistance()).
		Float64("total_distance_miles", route.TotalDistance()/5280).
		Msg("route calculated")

	var report services.Report
	_ = recorder.Phase("validate route", func() error {
		report = services.ValidateRoute(route, points)
		return nil
	})
	for _, p := range report.Problems {
		logger.Error().Str("problem", p).Msg("route validation")
	}

	if err := persistMetrics(ctx, logger, recorder.Metrics(), diagsDir, runID); err != nil {
		return err
	}

	if !report.Valid {
		return fmt.Errorf("route failed validation with %d problems", len(report.Problems))
	}
	logger.Info().Str("run_id", runID).Msg("planner completed")
	return nil
}

func buildRoute(
	ctx context.Context,
	logger zerolog.Logger,
	strategy string,
	optimize bool,
	clusterCount, clusterMax int,
	seed int64,
	workers int,
	points []domain.Coordinate,
	index domain.DistanceIndex,
	classifier ports.RegionClassifier,
) (domain.Route, error) {
	if len(points) == 0 {
		logger.Warn().Msg("no sites loaded; producing an empty route")
		return domain.Route{}, nil
	}

	var builder ports.RouteBuilder
	switch strategy {
	case "greedy":
		builder = services.NewGreedyRouter(classifier)
	case "cluster":
		builder = services.NewClusterRouter(classifier, clusterCount, seed)
	default:
		return domain.Route{}, fmt.Errorf("unknown strategy %q (want greedy or cluster)", strategy)
	}

	if !optimize {
		return builder.BuildRoute(points[0], index)
	}

	optimizer := &services.Optimizer{Workers: workers}

	var result services.OptimizerResult
	var err error
	if strategy == "cluster" {
		result, err = optimizer.BestClusterPlan(ctx, points, index, func(k int) ports.RouteBuilder {
			return services.NewClusterRouter(classifier, k, seed)
		}, 1, clusterMax)
	} else {
		result, err = optimizer.BestStart(ctx, points, index, builder)
	}
	if err != nil {
		return domain.Route{}, fmt.Errorf("optimize route: %w", err)
	}

	logger.Info().
		Str("start", result.Start.String()).
		Int("cluster_count", result.ClusterCount).
		Int("trials", result.Trials).
		Float64("best_distance_feet", result.TotalDistance).
		Msg("optimizer finished")
	return result.Route, nil
}

func persistMetrics(ctx context.Context, logger zerolog.Logger, stepMetrics []domain.StepMetric, diagsDir, runID string) error {
	csvPath := filepath.Join(diagsDir, "step_metrics.csv")
	if err := metrics.WriteCSV(csvPath, stepMetrics); err != nil {
		return err
	}
	logger.Info().Str("path", csvPath).Msg("metrics written")

	if sqlitePath := os.Getenv("METRICS_DB_PATH"); sqlitePath != "" {
		sdb, err := sql.Open("sqlite", sqlitePath)
		if err != nil {
			return fmt.Errorf("open metrics sqlite database %q: %w", sqlitePath, err)
		}
		defer sdb.Close()

		if err := metrics.InitSqliteSchema(sdb); err != nil {
			return err
		}
		if err := metrics.NewSqliteStore(sdb).SaveMetrics(ctx, runID, stepMetrics); err != nil {
			return err
		}
		logger.Info().Str("path", sqlitePath).Msg("metrics stored in sqlite")
	}

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		pdb, err := db.Open(databaseURL)
		if err != nil {
			return err
		}
		defer pdb.Close()

		if err := metrics.NewPostgresStore(pdb).SaveMetrics(ctx, runID, stepMetrics); err != nil {
			return err
		}
		logger.Info().Msg("metrics stored in postgres")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
