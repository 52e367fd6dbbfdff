package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vportnov/indago/internal/llm"
)

var healthTimeout time.Duration

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the configured LLM provider responds",
	Long: `Health verifies the configured LLM provider: first that the endpoint is
reachable, then that a one-line chat probe comes back. Use it to check
credentials and connectivity before starting a long batch.

Example:
  indago health
  indago health --llm-provider ollama --llm-model llama3`,
	RunE: runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)

	healthCmd.Flags().DurationVar(&healthTimeout, "timeout", 30*time.Second, "probe timeout")

	// LLM flags
	healthCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama)")
	healthCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runHealth(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
	defer cancel()

	cfg := loadConfig()
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}

	// Get API key from environment
	if err := resolveAPIKey(&cfg); err != nil {
		return err
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP.ProxyURL))
	if err != nil {
		return fmt.Errorf("create LLM provider: %w", err)
	}

	fmt.Printf("Provider: %s\n", provider.Name())
	fmt.Printf("Model:    %s\n", cfg.LLM.Model)

	if !provider.IsAvailable(ctx) {
		fmt.Printf("Status:   unhealthy\n")
		return fmt.Errorf("provider %s is not reachable", provider.Name())
	}

	response, err := provider.Chat(ctx, []llm.Message{
		{Role: llm.RoleUser, Content: "Hello, respond with 'OK' if you're working."},
	}, llm.ChatOptions{MaxTokens: 10})
	if err != nil {
		fmt.Printf("Status:   unhealthy\n")
		return fmt.Errorf("LLM probe failed: %w", err)
	}

	if len(response) > 50 {
		response = response[:50]
	}
	fmt.Printf("Status:   healthy\n")
	fmt.Printf("Response: %s\n", strings.TrimSpace(response))

	return nil
}
