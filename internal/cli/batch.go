package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vportnov/indago/internal/pipeline"
	"github.com/vportnov/indago/internal/util"
	"github.com/vportnov/indago/internal/worker"
)

var (
	batchWorkers int
	outputDir    string
	batchTimeout time.Duration
	metricsAddr  string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Research multiple questions from a file in parallel",
	Long: `Batch processes multiple research questions concurrently:
- Read questions from the input file (one per line, # comments skipped)
- Run the full research pipeline for each with a bounded worker pool
- Write one JSON and one Markdown report per question

Example:
  indago batch questions.txt
  indago batch questions.txt --workers 4 --output-dir ./reports
  indago batch questions.txt --metrics-addr :9090 --timeout 1h`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Batch flags
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "number of concurrent research runs (default: 2)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./indago-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "expose Prometheus metrics on this address while the batch runs")

	// Shared pipeline flags
	batchCmd.Flags().StringVar(&searxURL, "searx-url", "", "SearXNG instance URL (default: https://searx.be)")
	batchCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the fetch cache (force fresh fetches)")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in reports")
	batchCmd.Flags().BoolVar(&gdprMode, "gdpr", false, "redact personal data from answers and quotes, never log query text")

	// LLM flags
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	// Build configuration: file and environment first, flags on top
	cfg := loadConfig()
	if searxURL != "" {
		cfg.Search.BaseURL = searxURL
	}
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if gdprMode {
		cfg.Privacy.GDPRMode = true
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if batchWorkers > 0 {
		cfg.Concurrency.BatchWorkers = batchWorkers
	}
	if metricsAddr != "" {
		cfg.Output.MetricsAddr = metricsAddr
	}
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	// Get API key from environment
	if err := resolveAPIKey(&cfg); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Indago Batch Research\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.BatchWorkers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	fmt.Fprintf(os.Stderr, "\n")

	// Expose metrics while the batch runs
	if cfg.Output.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.Output.MetricsAddr, mux); err != nil {
				fmt.Fprintf(os.Stderr, "metrics server: %v\n", err)
			}
		}()
		fmt.Fprintf(os.Stderr, "  Metrics:      http://%s/metrics\n", cfg.Output.MetricsAddr)
		fmt.Fprintf(os.Stderr, "\n")
	}

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// Create pipeline
	p, err := pipeline.NewPipeline(&cfg, logger)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	// Create batch processor
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.BatchWorkers)

	// Process questions
	fmt.Fprintf(os.Stderr, "⚙️  Reading questions from file...\n")
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Processed %d questions with %d workers\n", len(results), cfg.Concurrency.BatchWorkers)
	fmt.Fprintf(os.Stderr, "\n")

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0

	for i, result := range results {
		label := result.Query
		if cfg.Privacy.GDPRMode {
			label = fmt.Sprintf("question %d", i+1)
		}

		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", label, result.Error)
			continue
		}

		// Generate output file names
		slug := util.SafeFilename(result.Query)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		// Render report
		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", label, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", label, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s (confidence: %s, sources: %d)\n", label, result.Report.Confidence, len(result.Report.Sources))
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d questions\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}
