package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vportnov/indago/internal/model"
)

// Runner executes a single research query end to end.
type Runner interface {
	Run(ctx context.Context, query string) (*model.Report, error)
}

// QueryJob wraps one query for execution on a pool.
type QueryJob struct {
	Query  string
	Runner Runner
}

// Execute runs the query and wraps the outcome.
func (j *QueryJob) Execute(ctx context.Context) Result {
	report, err := j.Runner.Run(ctx, j.Query)
	if err != nil {
		return &QueryResult{Query: j.Query, Error: err}
	}
	return &QueryResult{Query: j.Query, Report: report}
}

// QueryResult is the outcome of one batched query.
type QueryResult struct {
	Query  string
	Report *model.Report
	Error  error
}

// Err returns the query error, if any.
func (r *QueryResult) Err() error {
	return r.Error
}

// BatchProcessor runs many research queries concurrently.
type BatchProcessor struct {
	runner      Runner
	concurrency int
}

// NewBatchProcessor creates a batch processor backed by the given runner.
func NewBatchProcessor(runner Runner, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
	}
}

// ProcessQueries runs all queries on a worker pool and returns every result.
func (b *BatchProcessor) ProcessQueries(ctx context.Context, queries []string) []*QueryResult {
	if len(queries) == 0 {
		return []*QueryResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, query := range queries {
		pool.Submit(&QueryJob{Query: query, Runner: b.runner})
	}

	results := pool.Wait()

	queryResults := make([]*QueryResult, len(results))
	for i, result := range results {
		queryResults[i] = result.(*QueryResult)
	}

	return queryResults
}

// ProcessFile reads queries from a file and runs them concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*QueryResult, error) {
	queries, err := ReadQueriesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read queries: %w", err)
	}

	return b.ProcessQueries(ctx, queries), nil
}

// ReadQueriesFromFile reads one query per line, skipping blanks and
// #-comments and dropping duplicate lines.
func ReadQueriesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var queries []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			queries = append(queries, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return queries, nil
}
