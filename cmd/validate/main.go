package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib/dataset"
	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib/report/remote"
	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib/schema"
	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib/validate"
)

const (
	exitOK = 0
	// exitFail covers fatal findings and runs aborted by --timeout alike:
	// an aborted run has not shown the dataset consistent.
	exitFail  = 1
	exitUsage = 2
)

// config structure
type validateConfig struct {
	lib.BaseConfig
	Workers     int `mapstructure:"workers"`
	MaxExamples int `mapstructure:"max_examples"`
	Report      struct {
		Backend remote.Backend `mapstructure:"backend"`
	}
	Redis         remote.RedisConfig
	Elasticsearch remote.ElasticsearchConfig
}

var config validateConfig

var (
	cardName    = pflag.String("config", "", "The dataset card name, resolved as <name>.yml under the dataset path.")
	dataDir     = pflag.String("data-dir", "", "Directory the card's split files are resolved against. Defaults to the dataset path.")
	timeout     = pflag.Int("timeout", 0, "Global validation timeout in seconds. 0 disables the timeout.")
	jsonOutput  = pflag.Bool("json", false, "Emit one JSON object per split instead of the human-readable summary.")
	strict      = pflag.Bool("strict", false, "Treat offset mismatches, ragged spans included, as fatal.")
	maxExamples = pflag.Int("max-examples", -1, "Example findings printed per category, -1 for the configured default.")
)

func initConfig() error {
	// initialise config with defaults.
	return lib.InitializeConfig("./config/validate.yml", map[string]interface{}{
		"log_level":    "info",
		"workers":      0,
		"max_examples": 5,
		"report": map[string]interface{}{
			"backend": "",
		},
		"redis": map[string]interface{}{
			"host": "localhost",
			"port": 6379,
		},
		"elasticsearch": map[string]interface{}{
			"host":  "localhost",
			"port":  9200,
			"index": "validation-reports",
		},
	}, &config)
}

func main() {
	os.Exit(run())
}

func run() int {
	if err := initConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitUsage
	}

	args := pflag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: validate <dataset-path> --config <name> [--data-dir <path>] [--timeout <seconds>] [--json]")
		return exitUsage
	}
	datasetPath := args[0]

	if *cardName == "" {
		fmt.Fprintln(os.Stderr, "error: --config is required")
		return exitUsage
	}

	cardFile := *cardName
	if !strings.HasSuffix(cardFile, ".yml") && !strings.HasSuffix(cardFile, ".yaml") {
		cardFile += ".yml"
	}
	card, err := dataset.LoadCard(filepath.Join(datasetPath, cardFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitUsage
	}

	splitDir := *dataDir
	if splitDir == "" {
		splitDir = datasetPath
	}

	splits := make(map[string][]schema.Record, len(card.Splits))
	for name, file := range card.Splits {
		records, err := dataset.ReadSplit(filepath.Join(splitDir, file), card.Schema, card.Format)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: split %s: %v\n", name, err)
			return exitUsage
		}
		splits[name] = records
	}

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(*timeout)*time.Second)
		defer cancel()
	}

	validator := validate.NewValidator(validate.Config{
		Tasks:   card.Tasks,
		Workers: config.Workers,
		Strict:  *strict || card.Strict,
	})

	report, err := validator.Validate(ctx, card.Schema, splits)
	report.Dataset = card.Name
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: validation aborted: %v\n", err)
		return exitFail
	}

	if err := writeReport(report); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitFail
	}

	pushReport(report)

	if report.HasFatalError() {
		return exitFail
	}
	return exitOK
}

func writeReport(report *validate.Report) error {
	if *jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		for _, split := range report.Splits {
			if err := enc.Encode(split); err != nil {
				return err
			}
		}
		return nil
	}

	examples := *maxExamples
	if examples < 0 {
		examples = config.MaxExamples
	}
	return report.WriteSummary(os.Stdout, examples)
}

// pushReport exports the report to the configured sink, if any. Sink
// failures are logged, never fatal: the exit code reflects the data, not
// the dashboard.
func pushReport(report *validate.Report) {
	var client remote.Client
	var err error
	switch config.Report.Backend {
	case "":
		return
	case remote.Redis:
		client = remote.NewRedisClient(config.Redis)
	case remote.Elasticsearch:
		client, err = remote.NewElasticsearchClient(config.Elasticsearch)
		if err != nil {
			log.Warn().Err(err).Msg("report sink unavailable")
			return
		}
	default:
		log.Warn().Str("backend", string(config.Report.Backend)).Msg("unknown report backend")
		return
	}

	if !client.Ready() {
		log.Warn().Str("backend", string(config.Report.Backend)).Msg("report sink not ready")
		return
	}
	if err := client.Push(report.Dataset, report); err != nil {
		log.Warn().Err(err).Msg("failed to push report")
	}
}
