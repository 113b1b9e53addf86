package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mikey/gym-consistency/internal/adapters/logsource"
	"github.com/mikey/gym-consistency/internal/adapters/modelstore"
	"github.com/mikey/gym-consistency/internal/core"
	"github.com/mikey/gym-consistency/internal/logging"
	"go.uber.org/zap"
)

var (
	rfid      = flag.String("rfid", "", "RFID identifier to score")
	csvPath   = flag.String("csv", "RFID_logs.csv", "Path to the RFID log CSV file")
	modelsDir = flag.String("models", "./models", "Directory holding trained model artifacts")
	listUIDs  = flag.Bool("list", false, "List known identifiers and exit")
	train     = flag.Bool("train", false, "Train models from the log and exit")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog   = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	source := logsource.NewCSVSource(*csvPath, logger)
	store, err := modelstore.NewFileStore(*modelsDir, logger)
	if err != nil {
		logger.Fatal("Failed to open model store", zap.Error(err))
	}

	ctx := context.Background()

	if *listUIDs {
		members, err := source.Members(ctx)
		if err != nil {
			logger.Fatal("Failed to read log", zap.Error(err))
		}
		fmt.Printf("=== Known identifiers ===\n")
		for _, m := range members {
			fmt.Printf("%s  (%d records)\n", m.Identifier, m.Records)
		}
		return
	}

	if *train {
		trainer := core.NewTrainer(source, store, logger)
		if err := trainer.Train(ctx); err != nil {
			logger.Fatal("Training failed", zap.Error(err))
		}
		fmt.Printf("Models trained successfully\n")
		return
	}

	if *rfid == "" {
		fmt.Printf("Usage: gym-score -rfid <identifier> [-csv <path>] [-models <dir>]\n")
		os.Exit(1)
	}

	service := core.NewConsistencyService(source, store, logger)
	result, err := service.Score(ctx, *rfid)
	if err != nil {
		logger.Fatal("Failed to compute score", zap.Error(err))
	}

	printResult(result)
}

func printResult(r *core.ScoreResult) {
	fmt.Printf("\n=== Consistency Score ===\n")
	fmt.Printf("Score: %d/100\n", r.Score)
	fmt.Printf("Profile: %s\n", r.UserType)

	fmt.Printf("\n=== Frequency ===\n")
	fmt.Printf("Days visited: %d of %d (%.1f%%), score %d/40\n",
		r.Frequency.DaysVisited, r.Frequency.TotalDays, r.Frequency.Percentage, r.Frequency.Score)

	fmt.Printf("\n=== Regularity ===\n")
	fmt.Printf("Distinct weekdays: %d\n", r.Regularity.DistinctDays)
	fmt.Printf("Average gap between visits: %.1f days\n", r.Regularity.AvgGapBetweenVisits)
	fmt.Printf("Consistency metric: %.1f, score %d/30\n",
		r.Regularity.ConsistencyMetric, r.Regularity.Score)
	fmt.Printf("Time pattern: morning %d%%, afternoon %d%%, evening %d%%\n",
		r.Regularity.TimePattern.Morning, r.Regularity.TimePattern.Afternoon, r.Regularity.TimePattern.Evening)

	fmt.Printf("\n=== Recency ===\n")
	fmt.Printf("Days since last visit: %d, score %d/30\n",
		r.Recency.DaysSinceLastVisit, r.Recency.Score)

	if len(r.Insights) > 0 {
		fmt.Printf("\n=== Insights ===\n")
		fmt.Printf("%s\n", strings.Join(r.Insights, "\n"))
	}
}
