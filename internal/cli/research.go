package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vportnov/indago/internal/pipeline"
)

var (
	outJSON     string
	outMD       string
	timeout     time.Duration
	searxURL    string
	maxResults  int
	maxPages    int
	topDocs     int
	llmRerank   bool
	userAgent   string
	maxBytes    int64
	proxyURL    string
	noCache     bool
	noFooter    bool
	insecureTLS bool
	gdprMode    bool
	llmProvider string
	llmModel    string
)

// researchCmd represents the research command
var researchCmd = &cobra.Command{
	Use:   "research <query>",
	Short: "Research a question and generate a cited answer",
	Long: `Research runs the full pipeline for one question:
- Analyze the question and expand it into search query variants
- Run the variants against a SearXNG instance and merge the results
- Scrape the top hits, respecting robots.txt and per-host rate limits
- Rank the extracted documents and keep the best
- Synthesize a cited answer and fact-check it against the sources
- Build an evidence matrix linking every claim to a supporting quote

Example:
  indago research "impact of heat pumps on electricity demand"
  indago research "EU AI act timeline" --json report.json --md report.md
  indago research "latest fusion results" --llm-provider ollama --llm-model llama3`,
	Args: cobra.ExactArgs(1),
	RunE: runResearch,
}

func init() {
	rootCmd.AddCommand(researchCmd)

	// Output flags
	researchCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	researchCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	researchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in reports")

	// Search flags
	researchCmd.Flags().StringVar(&searxURL, "searx-url", "", "SearXNG instance URL (default: https://searx.be)")
	researchCmd.Flags().IntVar(&maxResults, "max-results", 0, "search result pool size after dedupe (default: 24)")
	researchCmd.Flags().IntVar(&maxPages, "pages", 0, "pages handed to the scraper (default: 12)")
	researchCmd.Flags().IntVar(&topDocs, "top", 0, "documents handed to synthesis (default: 8)")
	researchCmd.Flags().BoolVar(&llmRerank, "rerank", false, "enable the LLM rerank pass for large document pools")

	// HTTP flags
	researchCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall research timeout")
	researchCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	researchCmd.Flags().Int64Var(&maxBytes, "max-bytes", 0, "max response bytes to read per page (default: 2000000)")
	researchCmd.Flags().StringVar(&proxyURL, "proxy", "", "outbound HTTP proxy URL")
	researchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the fetch cache (force fresh fetches)")
	researchCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")

	// Privacy flags
	researchCmd.Flags().BoolVar(&gdprMode, "gdpr", false, "redact personal data from answers and quotes, never log query text")

	// LLM flags
	researchCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama)")
	researchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runResearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Build configuration: file and environment first, flags on top
	cfg := loadConfig()
	if searxURL != "" {
		cfg.Search.BaseURL = searxURL
	}
	if maxResults > 0 {
		cfg.Search.MaxResults = maxResults
	}
	if maxPages > 0 {
		cfg.Concurrency.MaxPages = maxPages
	}
	if topDocs > 0 {
		cfg.Rank.TopDocs = topDocs
	}
	if llmRerank {
		cfg.Rank.LLMRerank = true
	}
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	if maxBytes > 0 {
		cfg.HTTP.MaxBodyBytes = maxBytes
	}
	if proxyURL != "" {
		cfg.HTTP.ProxyURL = proxyURL
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if insecureTLS {
		cfg.HTTP.InsecureTLS = true
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
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	// Get API key from environment
	if err := resolveAPIKey(&cfg); err != nil {
		return err
	}

	if verbose {
		if cfg.Privacy.GDPRMode {
			fmt.Fprintf(os.Stderr, "Researching (GDPR mode, query withheld from logs)\n")
		} else {
			fmt.Fprintf(os.Stderr, "Researching: %s\n", query)
		}
		fmt.Fprintf(os.Stderr, "SearXNG: %s\n", cfg.Search.BaseURL)
		fmt.Fprintf(os.Stderr, "LLM: %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
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

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Researching...\n")
	}

	report, err := p.Run(ctx, query)
	if err != nil {
		return fmt.Errorf("research failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Found %d sources, used %d\n", report.Stats.SourcesFound, report.Stats.SourcesUsed)
		fmt.Fprintf(os.Stderr, "✓ Confidence: %s (fact-check %s)\n", report.Confidence, report.FactcheckStatus)
		fmt.Fprintf(os.Stderr, "✓ Evidence entries: %d\n", len(report.EvidenceMatrix))
		if len(report.Validation) > 0 {
			fmt.Fprintf(os.Stderr, "✓ Validation issues: %d\n", len(report.Validation))
		}
		fmt.Fprintln(os.Stderr)
	}

	// Render outputs
	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
