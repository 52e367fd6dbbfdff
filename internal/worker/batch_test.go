package worker

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/vportnov/indago/internal/model"
)

// mockRunner implements Runner
type mockRunner struct {
	ShouldError bool
}

func (m *mockRunner) Run(ctx context.Context, query string) (*model.Report, error) {
	time.Sleep(10 * time.Millisecond)
	if m.ShouldError {
		return nil, errors.New("research error")
	}
	return &model.Report{
		Query:  query,
		Answer: "Test answer [1]",
	}, nil
}

func TestBatchProcessor_ProcessQueries(t *testing.T) {
	runner := &mockRunner{}
	processor := NewBatchProcessor(runner, 2)

	queries := []string{"query one", "query two", "query three"}
	ctx := context.Background()

	results := processor.ProcessQueries(ctx, queries)

	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}

	successCount := 0
	for _, res := range results {
		if res.Error == nil {
			successCount++
			if res.Report == nil {
				t.Error("expected report for successful query")
			}
		} else {
			t.Errorf("unexpected error for %q: %v", res.Query, res.Error)
		}
	}

	if successCount != 3 {
		t.Errorf("expected 3 successes, got %d", successCount)
	}
}

func TestBatchProcessor_ProcessQueries_Error(t *testing.T) {
	runner := &mockRunner{ShouldError: true}
	processor := NewBatchProcessor(runner, 2)

	results := processor.ProcessQueries(context.Background(), []string{"failing query"})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	if results[0].Error == nil {
		t.Error("expected error, got nil")
	}
	if results[0].Report != nil {
		t.Error("expected nil report on error")
	}
}

func TestBatchProcessor_ProcessQueries_Empty(t *testing.T) {
	runner := &mockRunner{}
	processor := NewBatchProcessor(runner, 2)

	results := processor.ProcessQueries(context.Background(), []string{})
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestReadQueriesFromFile(t *testing.T) {
	content := `What is the EU AI Act?
# comment
How does GDPR apply to LLMs?

Latest advances in battery storage   `

	tmpfile, err := os.CreateTemp("", "queries")
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = os.Remove(tmpfile.Name())
	}()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	queries, err := ReadQueriesFromFile(tmpfile.Name())
	if err != nil {
		t.Fatalf("ReadQueriesFromFile failed: %v", err)
	}

	expected := []string{
		"What is the EU AI Act?",
		"How does GDPR apply to LLMs?",
		"Latest advances in battery storage",
	}
	if len(queries) != len(expected) {
		t.Fatalf("expected %d queries, got %d", len(expected), len(queries))
	}

	for i, query := range queries {
		if query != expected[i] {
			t.Errorf("expected query %q at index %d, got %q", expected[i], i, query)
		}
	}
}

func TestReadQueriesFromFile_NonExistent(t *testing.T) {
	_, err := ReadQueriesFromFile("non_existent_file.txt")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestReadQueriesFromFile_Deduplication(t *testing.T) {
	content := `same query
same query`

	tmpfile, err := os.CreateTemp("", "queries_dedup")
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = os.Remove(tmpfile.Name())
	}()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	queries, err := ReadQueriesFromFile(tmpfile.Name())
	if err != nil {
		t.Fatalf("ReadQueriesFromFile failed: %v", err)
	}

	if len(queries) != 1 {
		t.Errorf("expected 1 query after deduplication, got %d", len(queries))
	}
}

func TestQueryResult_Err(t *testing.T) {
	r1 := &QueryResult{Query: "ok"}
	if r1.Err() != nil {
		t.Errorf("expected nil error, got %v", r1.Err())
	}

	expected := errors.New("research failed")
	r2 := &QueryResult{Query: "bad", Error: expected}
	if r2.Err() != expected {
		t.Errorf("expected %v, got %v", expected, r2.Err())
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	content := "first query\nsecond query\n# comment\n\nthird query\n"

	tmpfile, err := os.CreateTemp("", "batch_queries")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	runner := &mockRunner{}
	processor := NewBatchProcessor(runner, 2)

	results, err := processor.ProcessFile(context.Background(), tmpfile.Name())
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessFile_NonExistent(t *testing.T) {
	runner := &mockRunner{}
	processor := NewBatchProcessor(runner, 2)

	_, err := processor.ProcessFile(context.Background(), "no_such_file.txt")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestBatchProcessor_ProcessFile_Empty(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "empty_queries")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	runner := &mockRunner{}
	processor := NewBatchProcessor(runner, 2)

	results, err := processor.ProcessFile(context.Background(), tmpfile.Name())
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected 0 results for empty file, got %d", len(results))
	}
}
